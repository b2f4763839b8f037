package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestAccountConfig is the per-account interest configuration the accrual
// scheduler iterates over. The strategy parameters beyond the type (tiers,
// bonus, youth, promotional windows) travel as an opaque JSON document and
// are decoded by the scheduler.
type InterestAccountConfig struct {
	AccountID      string                          `json:"accountID"`
	AccountType    EntityType                      `json:"accountType"`
	ProductID      string                          `json:"productID"`
	OfficeID       string                          `json:"officeID"`
	CurrencyCode   string                          `json:"currencyCode"`
	DecimalPlaces  int32                           `json:"decimalPlaces"`
	AnnualRate     decimal.Decimal                 `json:"annualRate"`
	StrategyType   InterestCalculationStrategyType `json:"strategyType"`
	StrategyParams []byte                          `json:"-"`
	DaysInYear     int                             `json:"daysInYear"`
	MinimumBalance decimal.Decimal                 `json:"minimumBalance"`
	ActivatedOn    time.Time                       `json:"activatedOn"`
	IsActive       bool                            `json:"isActive"`
}
