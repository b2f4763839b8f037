package interest_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
)

func TestBonusInterestStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	base := interest.NewAverageDailyBalanceStrategy(calcCtx)
	bonusRate := decimal.NewFromFloat(0.01)
	bonusMin := decimal.NewFromInt(1000)
	strategy := interest.NewBonusInterestStrategy(base, calcCtx, bonusRate, bonusMin)
	rate := decimal.NewFromFloat(0.05)

	t.Run("bonus added when balance meets the threshold", func(t *testing.T) {
		balance := decimal.NewFromInt(2000)
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)

		baseAmount, err := base.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)
		bonus := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, balance, bonusRate, 31, 365))
		expected, err := baseAmount.Add(bonus)
		require.NoError(t, err)
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		assert.True(t, got.Amount.GreaterThan(baseAmount.Amount))
	})

	t.Run("below threshold equals the base strategy", func(t *testing.T) {
		data := januaryData(t, decimal.NewFromInt(500))

		got, err := strategy.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)

		baseAmount, err := base.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)
		assert.True(t, baseAmount.Equal(got))
	})

	t.Run("eligibility delegates to the base", func(t *testing.T) {
		assert.True(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.Zero))
		assert.False(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(1000)))
	})

	assert.Equal(t, domain.StrategyBonusInterest, strategy.Type())
}
