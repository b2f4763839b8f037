package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// BalanceHistoryProvider supplies the balance/period record for an account
// over a date range. Gaps or missing days are the provider's responsibility
// to resolve (e.g. by forward-filling), not the engine's.
type BalanceHistoryProvider interface {
	FindBalanceData(ctx context.Context, accountID string, accountType domain.EntityType, fromDate, toDate time.Time) (domain.InterestCalculationData, error)
}

// InterestPostingRepository persists the append-only accrual/posting history
// for an account.
type InterestPostingRepository interface {
	// SavePosting appends one history row.
	SavePosting(ctx context.Context, posting domain.InterestPosting) error

	// SumAccrued returns the total of the given posting type up to and
	// including asOf.
	SumAccrued(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType, asOf time.Time) (decimal.Decimal, error)

	// FindLastPostingDate returns the toDate of the most recent row of the
	// given type, or nil when no history exists.
	FindLastPostingDate(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType) (*time.Time, error)
}
