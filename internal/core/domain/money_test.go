package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin/accounting_core/internal/core/domain"
)

var (
	usd = domain.Currency{CurrencyCode: "USD", DecimalPlaces: 2}
	eur = domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}
	jpy = domain.Currency{CurrencyCode: "JPY", DecimalPlaces: 0}
)

func TestMoneyOfRoundsHalfEven(t *testing.T) {
	cases := []struct {
		name     string
		currency domain.Currency
		amount   string
		expected string
	}{
		{"round down to even", usd, "2.345", "2.34"},
		{"round up to even", usd, "2.355", "2.36"},
		{"plain rounding", usd, "2.346", "2.35"},
		{"zero-decimal currency", jpy, "100.5", "100"},
		{"zero-decimal currency to even", jpy, "101.5", "102"},
		{"negative amount", usd, "-2.345", "-2.34"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := domain.MoneyOf(tc.currency, decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.expected, m.Amount.String())
			assert.Equal(t, tc.currency.CurrencyCode, m.Currency.CurrencyCode)
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := domain.MoneyOf(usd, decimal.RequireFromString("10.50"))
	b := domain.MoneyOf(usd, decimal.RequireFromString("4.25"))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "14.75", sum.Amount.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "6.25", diff.Amount.String())

	scaled := a.Mul(decimal.NewFromInt(3))
	assert.Equal(t, "31.5", scaled.Amount.String())

	neg := a.Neg()
	assert.True(t, neg.IsLessThanZero())
	assert.True(t, a.IsGreaterThanZero())
	assert.True(t, domain.ZeroMoney(usd).IsZero())
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := domain.MoneyOf(usd, decimal.NewFromInt(10))
	b := domain.MoneyOf(eur, decimal.NewFromInt(10))

	_, err := a.Add(b)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = a.Sub(b)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	assert.False(t, a.Equal(b))
}
