package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
)

// CalculateInterestRequest carries everything one interest calculation needs.
type CalculateInterestRequest struct {
	AccountID      string
	AccountType    domain.EntityType
	Currency       domain.Currency
	FromDate       time.Time
	ToDate         time.Time
	AnnualRate     decimal.Decimal
	StrategyType   domain.InterestCalculationStrategyType
	DaysInYear     int
	MinimumBalance decimal.Decimal
	StrategyConfig interest.StrategyConfig
}

// RecordPostingRequest records one successful interest posting.
type RecordPostingRequest struct {
	AccountID   string
	AccountType domain.EntityType
	ProductID   string
	OfficeID    string
	Currency    domain.Currency
	FromDate    time.Time
	ToDate      time.Time
	Amount      domain.Money
}

// InterestEngine orchestrates interest calculation for savings-like
// accounts: it resolves the strategy, fetches balance history, invokes the
// strategy and records accrued/posted interest.
//
// Lifecycle per account: ACCRUING -> POSTING-DUE (IsInterestPostingDue) ->
// POSTED (RecordInterestPosting) -> ACCRUING for the next period.
type InterestEngine interface {
	// CalculateInterest computes interest for the requested period without
	// recording anything.
	CalculateInterest(ctx context.Context, req CalculateInterestRequest) (domain.Money, error)

	// ProcessAccruals accrues interest from the end of the last recorded
	// accrual up to asOf, records it, and returns the newly accrued amount.
	ProcessAccruals(ctx context.Context, req CalculateInterestRequest, asOf time.Time) (domain.Money, error)

	// GetAccruedInterest returns interest accrued but not yet posted as of
	// the given date.
	GetAccruedInterest(ctx context.Context, accountID string, accountType domain.EntityType, currency domain.Currency, asOf time.Time) (domain.Money, error)

	// IsInterestPostingDue reports whether the account's posting period has
	// elapsed since the last posting.
	IsInterestPostingDue(ctx context.Context, accountID string, accountType domain.EntityType, asOf time.Time) (bool, error)

	// RecordInterestPosting appends a posting history row and emits the
	// balancing GL entry pair for the posted amount. Called after a
	// successful posting to the account, never before.
	RecordInterestPosting(ctx context.Context, req RecordPostingRequest) error
}
