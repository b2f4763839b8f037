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

var usd = domain.Currency{CurrencyCode: "USD", DecimalPlaces: 2}

// calcData builds a balance record where opening, closing, average and
// minimum all equal the given balance.
func calcData(t *testing.T, from, to time.Time, balance decimal.Decimal) domain.InterestCalculationData {
	t.Helper()
	data, err := domain.NewInterestCalculationData(from, to, balance, balance, balance, balance)
	require.NoError(t, err)
	return data
}

func januaryData(t *testing.T, balance decimal.Decimal) domain.InterestCalculationData {
	return calcData(t,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		balance)
}

func TestDailyInterest(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	balance := decimal.NewFromInt(10000)
	rate := decimal.NewFromFloat(0.05)

	t.Run("basic formula", func(t *testing.T) {
		got := interest.DailyInterest(calcCtx, balance, rate, 30, 365)
		expected := balance.Mul(rate.DivRound(decimal.NewFromInt(365), calcCtx.Precision)).Mul(decimal.NewFromInt(30))
		assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
	})

	t.Run("zero days in period", func(t *testing.T) {
		assert.True(t, interest.DailyInterest(calcCtx, balance, rate, 0, 365).IsZero())
		assert.True(t, interest.DailyInterest(calcCtx, balance, rate, -3, 365).IsZero())
	})

	t.Run("zero days in year", func(t *testing.T) {
		assert.True(t, interest.DailyInterest(calcCtx, balance, rate, 30, 0).IsZero())
	})
}

func TestEligibleForInterestCalculation(t *testing.T) {
	assert.True(t, interest.EligibleForInterestCalculation(decimal.NewFromInt(500), decimal.Zero))
	assert.True(t, interest.EligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(-10)))
	assert.True(t, interest.EligibleForInterestCalculation(decimal.NewFromInt(1000), decimal.NewFromInt(1000)))
	assert.False(t, interest.EligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(1000)))
}
