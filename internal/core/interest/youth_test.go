package interest_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
)

func TestYouthAccountStrategy(t *testing.T) {
	calcCtx := interest.DefaultCalculationContext()
	base := interest.NewAverageDailyBalanceStrategy(calcCtx)
	boost := decimal.NewFromFloat(0.02)
	rate := decimal.NewFromFloat(0.05)
	balance := decimal.NewFromInt(1000)

	expectedFor := func(t *testing.T, effectiveRate decimal.Decimal) domain.Money {
		t.Helper()
		return domain.MoneyOf(usd, interest.DailyInterest(calcCtx, balance, effectiveRate, 31, 365))
	}

	// Phase-out window 16..18: full boost below 16, linear decline up to 18.
	cases := []struct {
		name          string
		holderAge     int
		effectiveRate decimal.Decimal
	}{
		{"below phase-out gets the full boost", 15, rate.Add(boost)},
		{"inside phase-out gets half the boost", 17, rate.Add(decimal.NewFromFloat(0.01))},
		{"at the maximum youth age gets no boost", 18, rate},
		{"beyond the maximum youth age gets no boost", 19, rate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			strategy := interest.NewYouthAccountStrategy(base, tc.holderAge, 18, 16, boost)
			data := januaryData(t, balance)

			got, err := strategy.CalculateInterest(usd, data, rate, 365)
			require.NoError(t, err)

			expected := expectedFor(t, tc.effectiveRate)
			assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		})
	}

	t.Run("eligibility threshold is halved", func(t *testing.T) {
		strategy := interest.NewYouthAccountStrategy(base, 15, 18, 16, boost)

		// 500 fails a 1000 minimum normally but passes the halved threshold.
		assert.False(t, base.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(1000)))
		assert.True(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(500), decimal.NewFromInt(1000)))
		assert.False(t, strategy.IsEligibleForInterestCalculation(decimal.NewFromInt(400), decimal.NewFromInt(1000)))
	})

	strategy := interest.NewYouthAccountStrategy(base, 15, 18, 16, boost)
	assert.Equal(t, domain.StrategyYouthAccount, strategy.Type())
}
