package interest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
)

// Strategy computes interest for one balance/period record. Implementations
// must be pure: same inputs, same output, no side effects.
type Strategy interface {
	// CalculateInterest computes the interest earned over the period at the
	// given annual rate. Implementations fail loudly on inconsistent input
	// rather than defaulting to zero.
	CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error)

	// Type identifies the strategy.
	Type() domain.InterestCalculationStrategyType

	// IsEligibleForInterestCalculation reports whether a balance qualifies
	// under this strategy's minimum-balance rules.
	IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool
}

// StrategyConfig carries the per-account parameters the decorated strategies
// need. Only the fields relevant to the requested strategy type are read.
type StrategyConfig struct {
	// Tiers for StrategyTieredBalance, ascending by upper bound.
	Tiers []domain.InterestTier

	// Bonus interest.
	BonusRate           decimal.Decimal
	BonusMinimumBalance decimal.Decimal

	// Youth account.
	HolderAge        int
	MaxYouthAge      int
	PhaseOutStartAge int
	YouthRateBoost   decimal.Decimal

	// Promotional interest.
	PromotionalPeriods []domain.PromotionalPeriod
}

// NewStrategy builds the strategy for the given type. Decorated strategies
// (bonus, youth, promotional) wrap an average-daily-balance base. Requesting
// StrategyInvalid is a validation error: the caller decides what "no
// calculation" means, the factory never silently substitutes one.
func NewStrategy(strategyType domain.InterestCalculationStrategyType, calcCtx CalculationContext, cfg StrategyConfig) (Strategy, error) {
	switch strategyType {
	case domain.StrategyDailyBalance:
		return NewDailyBalanceStrategy(calcCtx), nil
	case domain.StrategyAverageDailyBalance:
		return NewAverageDailyBalanceStrategy(calcCtx), nil
	case domain.StrategyMinimumBalance:
		return NewMinimumBalanceStrategy(calcCtx), nil
	case domain.StrategyTieredBalance:
		return NewTieredBalanceStrategy(calcCtx, cfg.Tiers), nil
	case domain.StrategyBonusInterest:
		base := NewAverageDailyBalanceStrategy(calcCtx)
		return NewBonusInterestStrategy(base, calcCtx, cfg.BonusRate, cfg.BonusMinimumBalance), nil
	case domain.StrategyYouthAccount:
		base := NewAverageDailyBalanceStrategy(calcCtx)
		return NewYouthAccountStrategy(base, cfg.HolderAge, cfg.MaxYouthAge, cfg.PhaseOutStartAge, cfg.YouthRateBoost), nil
	case domain.StrategyPromotionalInterest:
		base := NewAverageDailyBalanceStrategy(calcCtx)
		return NewPromotionalInterestStrategy(base, calcCtx, cfg.PromotionalPeriods), nil
	default:
		return nil, fmt.Errorf("%w: no interest calculation strategy for type %d", apperrors.ErrValidation, strategyType)
	}
}
