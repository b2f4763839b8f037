package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when arithmetic is attempted across currencies.
var ErrCurrencyMismatch = fmt.Errorf("money arithmetic across different currencies")

// Money is a currency-tagged decimal amount. Arithmetic preserves currency
// identity: combining two Money values of different currencies is an error,
// never a silent coercion.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// MoneyOf creates a Money rounded to the currency's posting precision using
// banker's rounding.
func MoneyOf(currency Currency, amount decimal.Decimal) Money {
	return Money{
		Amount:   amount.RoundBank(currency.DecimalPlaces),
		Currency: currency,
	}
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return MoneyOf(m.Currency, m.Amount.Add(other.Amount)), nil
}

// Sub returns m minus other.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return MoneyOf(m.Currency, m.Amount.Sub(other.Amount)), nil
}

// Mul returns m scaled by the given factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return MoneyOf(m.Currency, m.Amount.Mul(factor))
}

// Neg returns m with the sign flipped.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsGreaterThanZero reports whether the amount is strictly positive.
func (m Money) IsGreaterThanZero() bool {
	return m.Amount.GreaterThan(decimal.Zero)
}

// IsLessThanZero reports whether the amount is strictly negative.
func (m Money) IsLessThanZero() bool {
	return m.Amount.LessThan(decimal.Zero)
}

// Equal reports whether two Money values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.Currency.CurrencyCode == other.Currency.CurrencyCode && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.CurrencyCode, m.Amount.String())
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency.CurrencyCode != other.Currency.CurrencyCode {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency.CurrencyCode, other.Currency.CurrencyCode)
	}
	return nil
}
