package interest

import (
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// BonusInterestStrategy decorates a base strategy: it computes the base
// interest, then adds a flat bonus rate over the same period's average
// balance when the bonus eligibility threshold is met.
type BonusInterestStrategy struct {
	base                Strategy
	calcCtx             CalculationContext
	bonusRate           decimal.Decimal
	bonusMinimumBalance decimal.Decimal
}

func NewBonusInterestStrategy(base Strategy, calcCtx CalculationContext, bonusRate, bonusMinimumBalance decimal.Decimal) *BonusInterestStrategy {
	return &BonusInterestStrategy{
		base:                base,
		calcCtx:             calcCtx,
		bonusRate:           bonusRate,
		bonusMinimumBalance: bonusMinimumBalance,
	}
}

func (s *BonusInterestStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	baseInterest, err := s.base.CalculateInterest(currency, data, annualRate, daysInYear)
	if err != nil {
		return domain.Money{}, err
	}

	if !EligibleForInterestCalculation(data.AverageBalance(), s.bonusMinimumBalance) {
		return baseInterest, nil
	}

	bonus := DailyInterest(s.calcCtx, data.AverageBalance(), s.bonusRate, data.DaysInPeriod(), daysInYear)
	return baseInterest.Add(domain.MoneyOf(currency, bonus))
}

func (s *BonusInterestStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyBonusInterest
}

func (s *BonusInterestStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return s.base.IsEligibleForInterestCalculation(balance, minimumBalance)
}
