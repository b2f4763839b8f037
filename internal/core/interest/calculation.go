// Package interest implements the interest calculation strategy framework:
// a family of pluggable strategies computing interest for a balance/period
// record, several of which decorate a base strategy.
package interest

import (
	"github.com/shopspring/decimal"
)

// CalculationContext carries the numeric settings for interest arithmetic.
// It is explicit configuration threaded through the engine rather than a
// package constant, so currency-specific rounding rules can vary. Final
// currency-scale rounding is applied separately by domain.MoneyOf.
type CalculationContext struct {
	// Precision is the number of decimal digits retained when dividing
	// (annual rate by days in year).
	Precision int32
}

// DefaultCalculationContext returns the standard 19-digit context.
func DefaultCalculationContext() CalculationContext {
	return CalculationContext{Precision: 19}
}

// DailyInterest is the shared arithmetic primitive of the framework:
//
//	balance x (annualRate / daysInYear) x daysInPeriod
//
// It is a free function rather than a base-type method so decorators compose
// strategies without inheriting helpers. The division is carried out at the
// context's precision with half-even rounding; no currency-scale rounding
// happens here.
func DailyInterest(calcCtx CalculationContext, balance, annualRate decimal.Decimal, daysInPeriod, daysInYear int) decimal.Decimal {
	if daysInYear <= 0 || daysInPeriod <= 0 {
		return decimal.Zero
	}
	dailyRate := annualRate.DivRound(decimal.NewFromInt(int64(daysInYear)), calcCtx.Precision)
	return balance.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysInPeriod)))
}

// EligibleForInterestCalculation reports whether a balance qualifies for
// interest: eligible iff no minimum is configured (zero or negative) or the
// balance meets it.
func EligibleForInterestCalculation(balance, minimumBalance decimal.Decimal) bool {
	if minimumBalance.LessThanOrEqual(decimal.Zero) {
		return true
	}
	return balance.GreaterThanOrEqual(minimumBalance)
}
