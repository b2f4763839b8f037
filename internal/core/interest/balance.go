package interest

import (
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// DailyBalanceStrategy applies the shared formula to the period's average
// balance. Negative or zero balances earn nothing.
type DailyBalanceStrategy struct {
	calcCtx CalculationContext
}

func NewDailyBalanceStrategy(calcCtx CalculationContext) *DailyBalanceStrategy {
	return &DailyBalanceStrategy{calcCtx: calcCtx}
}

func (s *DailyBalanceStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	balance := data.AverageBalance()
	if balance.LessThanOrEqual(decimal.Zero) {
		return domain.ZeroMoney(currency), nil
	}
	amount := DailyInterest(s.calcCtx, balance, annualRate, data.DaysInPeriod(), daysInYear)
	return domain.MoneyOf(currency, amount), nil
}

func (s *DailyBalanceStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyDailyBalance
}

func (s *DailyBalanceStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return EligibleForInterestCalculation(balance, minimumBalance)
}

// AverageDailyBalanceStrategy is the default base strategy for the decorated
// variants: the shared formula over the period's average balance.
type AverageDailyBalanceStrategy struct {
	calcCtx CalculationContext
}

func NewAverageDailyBalanceStrategy(calcCtx CalculationContext) *AverageDailyBalanceStrategy {
	return &AverageDailyBalanceStrategy{calcCtx: calcCtx}
}

func (s *AverageDailyBalanceStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	balance := data.AverageBalance()
	if balance.LessThanOrEqual(decimal.Zero) {
		return domain.ZeroMoney(currency), nil
	}
	amount := DailyInterest(s.calcCtx, balance, annualRate, data.DaysInPeriod(), daysInYear)
	return domain.MoneyOf(currency, amount), nil
}

func (s *AverageDailyBalanceStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyAverageDailyBalance
}

func (s *AverageDailyBalanceStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return EligibleForInterestCalculation(balance, minimumBalance)
}

// MinimumBalanceStrategy pays interest on the lowest balance held during the
// period, a common passbook-savings convention.
type MinimumBalanceStrategy struct {
	calcCtx CalculationContext
}

func NewMinimumBalanceStrategy(calcCtx CalculationContext) *MinimumBalanceStrategy {
	return &MinimumBalanceStrategy{calcCtx: calcCtx}
}

func (s *MinimumBalanceStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	balance := data.MinimumBalance()
	if balance.LessThanOrEqual(decimal.Zero) {
		return domain.ZeroMoney(currency), nil
	}
	amount := DailyInterest(s.calcCtx, balance, annualRate, data.DaysInPeriod(), daysInYear)
	return domain.MoneyOf(currency, amount), nil
}

func (s *MinimumBalanceStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyMinimumBalance
}

func (s *MinimumBalanceStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return EligibleForInterestCalculation(balance, minimumBalance)
}
