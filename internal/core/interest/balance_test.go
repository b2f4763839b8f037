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

func TestAverageDailyBalanceStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	strategy := interest.NewAverageDailyBalanceStrategy(calcCtx)
	rate := decimal.NewFromFloat(0.05)

	t.Run("positive balance", func(t *testing.T) {
		balance := decimal.NewFromInt(10000)
		data := januaryData(t, balance)

		got, err := strategy.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)

		expected := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, balance, rate, 31, 365))
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	})

	t.Run("non-positive balance earns nothing", func(t *testing.T) {
		data := januaryData(t, decimal.NewFromInt(-200))
		got, err := strategy.CalculateInterest(usd, data, rate, 365)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	assert.Equal(t, domain.StrategyAverageDailyBalance, strategy.Type())
}

func TestMinimumBalanceStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	strategy := interest.NewMinimumBalanceStrategy(calcCtx)
	rate := decimal.NewFromFloat(0.04)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	data, err := domain.NewInterestCalculationData(from, to,
		decimal.NewFromInt(5000), decimal.NewFromInt(8000),
		decimal.NewFromInt(6500), decimal.NewFromInt(4200))
	require.NoError(t, err)

	got, err := strategy.CalculateInterest(usd, data, rate, 365)
	require.NoError(t, err)

	// Only the minimum balance held during the period earns interest.
	expected := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, decimal.NewFromInt(4200), rate, 31, 365))
	assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	assert.Equal(t, domain.StrategyMinimumBalance, strategy.Type())
}

func TestDailyBalanceStrategyLeapYearPeriod(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	strategy := interest.NewDailyBalanceStrategy(calcCtx)
	rate := decimal.NewFromFloat(0.05)
	balance := decimal.NewFromInt(10000)

	// Feb 2024 has 29 days.
	data := calcData(t,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		balance)
	require.Equal(t, 29, data.DaysInPeriod())

	got, err := strategy.CalculateInterest(usd, data, rate, 366)
	require.NoError(t, err)

	expected := domain.MoneyOf(usd, interest.DailyInterest(calcCtx, balance, rate, 29, 366))
	assert.True(t, expected.Equal(got))
	assert.Equal(t, domain.StrategyDailyBalance, strategy.Type())
}

func TestFlatStrategiesEligibility(t *testing.T) {
	strategy := interest.NewAverageDailyBalanceStrategy(interest.DefaultCalculationContext())

	assert.True(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.Zero))
	assert.False(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(1000)))
}
