package interest

import (
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// YouthAccountStrategy decorates a base strategy with an age-adjusted rate:
// the full boost below the phase-out-start age, a linearly declining boost
// between phase-out-start and the maximum youth age, and no boost beyond it.
// Youth accounts also qualify at half the usual minimum-balance threshold.
type YouthAccountStrategy struct {
	base             Strategy
	holderAge        int
	maxYouthAge      int
	phaseOutStartAge int
	rateBoost        decimal.Decimal
}

func NewYouthAccountStrategy(base Strategy, holderAge, maxYouthAge, phaseOutStartAge int, rateBoost decimal.Decimal) *YouthAccountStrategy {
	return &YouthAccountStrategy{
		base:             base,
		holderAge:        holderAge,
		maxYouthAge:      maxYouthAge,
		phaseOutStartAge: phaseOutStartAge,
		rateBoost:        rateBoost,
	}
}

// effectiveBoost returns the boost for the holder's age. At age 17 with
// phase-out 16..18 and boost 0.02 the result is 0.01.
func (s *YouthAccountStrategy) effectiveBoost() decimal.Decimal {
	switch {
	case s.holderAge < s.phaseOutStartAge:
		return s.rateBoost
	case s.holderAge >= s.maxYouthAge:
		return decimal.Zero
	default:
		span := decimal.NewFromInt(int64(s.maxYouthAge - s.phaseOutStartAge))
		left := decimal.NewFromInt(int64(s.maxYouthAge - s.holderAge))
		return s.rateBoost.Mul(left).Div(span)
	}
}

func (s *YouthAccountStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	adjustedRate := annualRate.Add(s.effectiveBoost())
	return s.base.CalculateInterest(currency, data, adjustedRate, daysInYear)
}

func (s *YouthAccountStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyYouthAccount
}

// IsEligibleForInterestCalculation halves the minimum-balance threshold for
// youth accounts before delegating.
func (s *YouthAccountStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	halved := minimumBalance.Div(decimal.NewFromInt(2))
	return s.base.IsEligibleForInterestCalculation(balance, halved)
}
