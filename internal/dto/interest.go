package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
)

// InterestTierDTO is one bracket of a tiered configuration.
type InterestTierDTO struct {
	UpperBound *decimal.Decimal `json:"upperBound,omitempty"`
	AnnualRate decimal.Decimal  `json:"annualRate" binding:"required"`
}

// PromotionalPeriodDTO is one promotional rate window.
type PromotionalPeriodDTO struct {
	StartDate time.Time       `json:"startDate" binding:"required"`
	EndDate   time.Time       `json:"endDate" binding:"required"`
	Rate      decimal.Decimal `json:"rate" binding:"required"`
}

// CalculateInterestRequest asks for an interest figure over a period.
type CalculateInterestRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	AccountType    string          `json:"accountType" binding:"required,oneof=LOAN SAVINGS SHARES"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,len=3"`
	DecimalPlaces  int32           `json:"decimalPlaces"`
	FromDate       time.Time       `json:"fromDate" binding:"required"`
	ToDate         time.Time       `json:"toDate" binding:"required"`
	AnnualRate     decimal.Decimal `json:"annualRate" binding:"required"`
	StrategyType   int             `json:"strategyType" binding:"required"`
	DaysInYear     int             `json:"daysInYear" binding:"required,oneof=360 365 366"`
	MinimumBalance decimal.Decimal `json:"minimumBalance"`

	Tiers               []InterestTierDTO      `json:"tiers,omitempty"`
	BonusRate           decimal.Decimal        `json:"bonusRate"`
	BonusMinimumBalance decimal.Decimal        `json:"bonusMinimumBalance"`
	HolderAge           int                    `json:"holderAge"`
	MaxYouthAge         int                    `json:"maxYouthAge"`
	PhaseOutStartAge    int                    `json:"phaseOutStartAge"`
	YouthRateBoost      decimal.Decimal        `json:"youthRateBoost"`
	PromotionalPeriods  []PromotionalPeriodDTO `json:"promotionalPeriods,omitempty"`
}

// InterestAmountResponse is a calculated or accrued interest figure.
type InterestAmountResponse struct {
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// PostingDueResponse reports whether an interest posting is due.
type PostingDueResponse struct {
	AccountID string `json:"accountID"`
	Due       bool   `json:"due"`
}

// RecordInterestPostingRequest records a completed interest posting.
type RecordInterestPostingRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	AccountType   string          `json:"accountType" binding:"required,oneof=LOAN SAVINGS SHARES"`
	ProductID     string          `json:"productID" binding:"required"`
	OfficeID      string          `json:"officeID" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	DecimalPlaces int32           `json:"decimalPlaces"`
	FromDate      time.Time       `json:"fromDate" binding:"required"`
	ToDate        time.Time       `json:"toDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// ToServiceRequest converts the DTO to the engine's request form.
func (d CalculateInterestRequest) ToServiceRequest() portssvc.CalculateInterestRequest {
	tiers := make([]domain.InterestTier, len(d.Tiers))
	for i, t := range d.Tiers {
		tiers[i] = domain.InterestTier{UpperBound: t.UpperBound, AnnualRate: t.AnnualRate}
	}
	periods := make([]domain.PromotionalPeriod, len(d.PromotionalPeriods))
	for i, p := range d.PromotionalPeriods {
		periods[i] = domain.PromotionalPeriod{StartDate: p.StartDate, EndDate: p.EndDate, Rate: p.Rate}
	}
	return portssvc.CalculateInterestRequest{
		AccountID:      d.AccountID,
		AccountType:    domain.EntityType(d.AccountType),
		Currency:       domain.Currency{CurrencyCode: d.CurrencyCode, DecimalPlaces: d.DecimalPlaces},
		FromDate:       d.FromDate,
		ToDate:         d.ToDate,
		AnnualRate:     d.AnnualRate,
		StrategyType:   domain.InterestStrategyTypeFromValue(d.StrategyType),
		DaysInYear:     d.DaysInYear,
		MinimumBalance: d.MinimumBalance,
		StrategyConfig: interest.StrategyConfig{
			Tiers:               tiers,
			BonusRate:           d.BonusRate,
			BonusMinimumBalance: d.BonusMinimumBalance,
			HolderAge:           d.HolderAge,
			MaxYouthAge:         d.MaxYouthAge,
			PhaseOutStartAge:    d.PhaseOutStartAge,
			YouthRateBoost:      d.YouthRateBoost,
			PromotionalPeriods:  periods,
		},
	}
}

// ToServiceRequest converts the DTO to the engine's request form.
func (d RecordInterestPostingRequest) ToServiceRequest() portssvc.RecordPostingRequest {
	currency := domain.Currency{CurrencyCode: d.CurrencyCode, DecimalPlaces: d.DecimalPlaces}
	return portssvc.RecordPostingRequest{
		AccountID:   d.AccountID,
		AccountType: domain.EntityType(d.AccountType),
		ProductID:   d.ProductID,
		OfficeID:    d.OfficeID,
		Currency:    currency,
		FromDate:    d.FromDate,
		ToDate:      d.ToDate,
		Amount:      domain.MoneyOf(currency, d.Amount),
	}
}
