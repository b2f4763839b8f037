package interest_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
)

func TestPromotionalInterestStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	base := interest.NewAverageDailyBalanceStrategy(calcCtx)
	standardRate := decimal.NewFromFloat(0.03)
	promoRate := decimal.NewFromFloat(0.08)
	balance := decimal.NewFromInt(10000)

	day := func(month time.Month, d int) time.Time {
		return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("no overlap delegates at the standard rate", func(t *testing.T) {
		strategy := interest.NewPromotionalInterestStrategy(base, calcCtx, []domain.PromotionalPeriod{
			{StartDate: day(time.March, 1), EndDate: day(time.March, 31), Rate: promoRate},
		})
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)

		expected, err := base.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)
		assert.True(t, expected.Equal(got))
	})

	t.Run("full containment delegates at the promotional rate", func(t *testing.T) {
		strategy := interest.NewPromotionalInterestStrategy(base, calcCtx, []domain.PromotionalPeriod{
			{StartDate: day(time.January, 1), EndDate: day(time.February, 15), Rate: promoRate},
		})
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)

		expected, err := base.CalculateInterest(usd, data, promoRate, 365)
		require.NoError(t, err)
		assert.True(t, expected.Equal(got))
	})

	t.Run("partial overlap splits the period day-exact", func(t *testing.T) {
		strategy := interest.NewPromotionalInterestStrategy(base, calcCtx, []domain.PromotionalPeriod{
			{StartDate: day(time.January, 20), EndDate: day(time.February, 10), Rate: promoRate},
		})
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)

		// Jan 20..31 inclusive is 12 promotional days, the first 19 days earn
		// the standard rate. No blended rate.
		expected := domain.MoneyOf(usd,
			interest.DailyInterest(calcCtx, balance, standardRate, 19, 365).
				Add(interest.DailyInterest(calcCtx, balance, promoRate, 12, 365)))
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	})

	t.Run("no configured windows delegates untouched", func(t *testing.T) {
		strategy := interest.NewPromotionalInterestStrategy(base, calcCtx, nil)
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)

		expected, err := base.CalculateInterest(usd, data, standardRate, 365)
		require.NoError(t, err)
		assert.True(t, expected.Equal(got))
	})

	strategy := interest.NewPromotionalInterestStrategy(base, calcCtx, nil)
	assert.Equal(t, domain.StrategyPromotionalInterest, strategy.Type())
}
