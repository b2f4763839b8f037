package interest

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// TieredBalanceStrategy partitions the balance into contiguous brackets, each
// carrying its own rate, and sums the per-tier interest over the same period.
// A balance exactly on a tier boundary belongs to the lower tier; only the
// excess spills into the next. With no tiers configured it falls back to the
// flat rate passed to CalculateInterest.
type TieredBalanceStrategy struct {
	calcCtx CalculationContext
	tiers   []domain.InterestTier
}

func NewTieredBalanceStrategy(calcCtx CalculationContext, tiers []domain.InterestTier) *TieredBalanceStrategy {
	sorted := make([]domain.InterestTier, len(tiers))
	copy(sorted, tiers)
	// Ascending upper bounds; the open-ended tier (nil bound) sorts last.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UpperBound == nil {
			return false
		}
		if sorted[j].UpperBound == nil {
			return true
		}
		return sorted[i].UpperBound.LessThan(*sorted[j].UpperBound)
	})
	return &TieredBalanceStrategy{calcCtx: calcCtx, tiers: sorted}
}

func (s *TieredBalanceStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	balance := data.AverageBalance()
	if balance.LessThanOrEqual(decimal.Zero) {
		return domain.ZeroMoney(currency), nil
	}

	if len(s.tiers) == 0 {
		amount := DailyInterest(s.calcCtx, balance, annualRate, data.DaysInPeriod(), daysInYear)
		return domain.MoneyOf(currency, amount), nil
	}

	total := decimal.Zero
	lowerBound := decimal.Zero
	remaining := balance

	for i, tier := range s.tiers {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		var slice decimal.Decimal
		if tier.UpperBound == nil {
			slice = remaining
		} else {
			if tier.UpperBound.LessThanOrEqual(lowerBound) {
				return domain.Money{}, fmt.Errorf("interest tier %d upper bound %s does not exceed previous bound %s", i, tier.UpperBound, lowerBound)
			}
			width := tier.UpperBound.Sub(lowerBound)
			slice = decimal.Min(remaining, width)
			lowerBound = *tier.UpperBound
		}

		total = total.Add(DailyInterest(s.calcCtx, slice, tier.AnnualRate, data.DaysInPeriod(), daysInYear))
		remaining = remaining.Sub(slice)
	}

	// A balance above the last bounded tier with no open-ended tier is a
	// configuration gap; the leftover must not silently earn nothing.
	if remaining.GreaterThan(decimal.Zero) {
		return domain.Money{}, fmt.Errorf("balance %s exceeds highest configured tier bound; no open-ended tier present", balance)
	}

	return domain.MoneyOf(currency, total), nil
}

func (s *TieredBalanceStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyTieredBalance
}

func (s *TieredBalanceStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return EligibleForInterestCalculation(balance, minimumBalance)
}
