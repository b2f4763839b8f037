package domain

// Currency represents a currency with its posting precision.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // ISO 4217 code, e.g. "USD"
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimalPlaces"` // scale applied when amounts are posted
}
