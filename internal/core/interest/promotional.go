package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// PromotionalInterestStrategy decorates a base strategy with promotional-rate
// windows. A request period that misses every window delegates untouched; a
// period fully inside a window delegates at the promotional rate; a partial
// overlap is split day-exact: standard-rate interest for the days outside the
// window plus promotional-rate interest for the days inside, both over the
// same average balance. No blended rate is ever used.
type PromotionalInterestStrategy struct {
	base    Strategy
	calcCtx CalculationContext
	periods []domain.PromotionalPeriod
}

func NewPromotionalInterestStrategy(base Strategy, calcCtx CalculationContext, periods []domain.PromotionalPeriod) *PromotionalInterestStrategy {
	return &PromotionalInterestStrategy{base: base, calcCtx: calcCtx, periods: periods}
}

func (s *PromotionalInterestStrategy) CalculateInterest(currency domain.Currency, data domain.InterestCalculationData, annualRate decimal.Decimal, daysInYear int) (domain.Money, error) {
	from := data.FromDate()
	to := data.ToDate()

	promo, overlapStart, overlapEnd, found := s.firstOverlap(from, to)
	if !found {
		return s.base.CalculateInterest(currency, data, annualRate, daysInYear)
	}

	// Fully inside the window: same balance record, promotional rate.
	if !overlapStart.After(from) && !overlapEnd.Before(to) {
		return s.base.CalculateInterest(currency, data, promo.Rate, daysInYear)
	}

	promoDays := domain.DaysBetweenInclusive(overlapStart, overlapEnd)
	standardDays := data.DaysInPeriod() - promoDays

	balance := data.AverageBalance()
	if balance.LessThanOrEqual(decimal.Zero) {
		return domain.ZeroMoney(currency), nil
	}

	standardInterest := DailyInterest(s.calcCtx, balance, annualRate, standardDays, daysInYear)
	promoInterest := DailyInterest(s.calcCtx, balance, promo.Rate, promoDays, daysInYear)
	return domain.MoneyOf(currency, standardInterest.Add(promoInterest)), nil
}

// firstOverlap returns the first configured window intersecting [from, to]
// along with the clamped overlap bounds.
func (s *PromotionalInterestStrategy) firstOverlap(from, to time.Time) (domain.PromotionalPeriod, time.Time, time.Time, bool) {
	for _, p := range s.periods {
		start := domain.TruncateToDay(p.StartDate)
		end := domain.TruncateToDay(p.EndDate)
		if end.Before(from) || start.After(to) {
			continue
		}
		overlapStart := start
		if from.After(start) {
			overlapStart = from
		}
		overlapEnd := end
		if to.Before(end) {
			overlapEnd = to
		}
		return p, overlapStart, overlapEnd, true
	}
	return domain.PromotionalPeriod{}, time.Time{}, time.Time{}, false
}

func (s *PromotionalInterestStrategy) Type() domain.InterestCalculationStrategyType {
	return domain.StrategyPromotionalInterest
}

func (s *PromotionalInterestStrategy) IsEligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	return s.base.IsEligibleForInterestCalculation(balance, minimumBalance)
}
