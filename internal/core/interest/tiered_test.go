package interest_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
)

func tierBound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestTieredBalanceStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	tiers := []domain.InterestTier{
		{UpperBound: tierBound(1000), AnnualRate: decimal.NewFromFloat(0.03)},
		{UpperBound: tierBound(5000), AnnualRate: decimal.NewFromFloat(0.04)},
		{UpperBound: nil, AnnualRate: decimal.NewFromFloat(0.05)},
	}
	strategy := interest.NewTieredBalanceStrategy(calcCtx, tiers)
	flatRate := decimal.NewFromFloat(0.02)

	t.Run("balance spans all tiers", func(t *testing.T) {
		data := januaryData(t, decimal.NewFromInt(6000))

		got, err := strategy.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)

		// 1000 at 3%, 4000 at 4%, the remaining 1000 at 5%.
		expected := domain.MoneyOf(usd,
			interest.DailyInterest(calcCtx, decimal.NewFromInt(1000), decimal.NewFromFloat(0.03), 31, 365).
				Add(interest.DailyInterest(calcCtx, decimal.NewFromInt(4000), decimal.NewFromFloat(0.04), 31, 365)).
				Add(interest.DailyInterest(calcCtx, decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 31, 365)))
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	})

	t.Run("balance exactly on a tier boundary stays in the lower tier", func(t *testing.T) {
		data := januaryData(t, decimal.NewFromInt(1000))

		got, err := strategy.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)

		expected := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, decimal.NewFromInt(1000), decimal.NewFromFloat(0.03), 31, 365))
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	})

	t.Run("tiers are sorted on construction", func(t *testing.T) {
		shuffled := interest.NewTieredBalanceStrategy(calcCtx, []domain.InterestTier{
			{UpperBound: nil, AnnualRate: decimal.NewFromFloat(0.05)},
			{UpperBound: tierBound(5000), AnnualRate: decimal.NewFromFloat(0.04)},
			{UpperBound: tierBound(1000), AnnualRate: decimal.NewFromFloat(0.03)},
		})
		data := januaryData(t, decimal.NewFromInt(6000))

		fromSorted, err := strategy.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)
		fromShuffled, err := shuffled.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)
		assert.True(t, fromSorted.Equal(fromShuffled))
	})

	t.Run("no tiers falls back to the flat rate", func(t *testing.T) {
		flat := interest.NewTieredBalanceStrategy(calcCtx, nil)
		balance := decimal.NewFromInt(6000)
		data := januaryData(t, balance)

		got, err := flat.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)

		expected := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, balance, flatRate, 31, 365))
		assert.True(t, expected.Equal(got))
	})

	t.Run("non-increasing bounds rejected", func(t *testing.T) {
		broken := interest.NewTieredBalanceStrategy(calcCtx, []domain.InterestTier{
			{UpperBound: tierBound(1000), AnnualRate: decimal.NewFromFloat(0.03)},
			{UpperBound: tierBound(1000), AnnualRate: decimal.NewFromFloat(0.04)},
		})
		data := januaryData(t, decimal.NewFromInt(2000))

		_, err := broken.CalculateInterest(usd, data, flatRate, 365)
		assert.Error(t, err)
	})

	t.Run("balance above highest bounded tier with no open tier rejected", func(t *testing.T) {
		capped := interest.NewTieredBalanceStrategy(calcCtx, []domain.InterestTier{
			{UpperBound: tierBound(1000), AnnualRate: decimal.NewFromFloat(0.03)},
		})
		data := januaryData(t, decimal.NewFromInt(1500))

		_, err := capped.CalculateInterest(usd, data, flatRate, 365)
		assert.Error(t, err)
	})

	t.Run("non-positive balance earns nothing", func(t *testing.T) {
		data := januaryData(t, decimal.Zero)
		got, err := strategy.CalculateInterest(usd, data, flatRate, 365)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	assert.Equal(t, domain.StrategyTieredBalance, strategy.Type())
}
