package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

type PgxInterestPostingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInterestPostingRepository creates a new repository for the
// append-only interest accrual/posting history.
func NewPgxInterestPostingRepository(pool *pgxpool.Pool) portsrepo.InterestPostingRepository {
	return &PgxInterestPostingRepository{pool: pool}
}

// SavePosting appends one history row.
func (r *PgxInterestPostingRepository) SavePosting(ctx context.Context, posting domain.InterestPosting) error {
	query := `
		INSERT INTO acc_interest_posting (posting_id, account_id, account_type, from_date, to_date, amount, currency_code, posting_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		posting.PostingID,
		posting.AccountID,
		posting.AccountType,
		posting.FromDate,
		posting.ToDate,
		posting.Amount,
		posting.CurrencyCode,
		posting.PostingType,
		posting.CreatedAt,
		posting.CreatedBy,
		posting.LastUpdatedAt,
		posting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save interest posting for account %s: %w", posting.AccountID, err)
	}
	return nil
}

// SumAccrued totals rows of the given posting type up to and including asOf.
func (r *PgxInterestPostingRepository) SumAccrued(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM acc_interest_posting
		WHERE account_id = $1 AND account_type = $2 AND posting_type = $3 AND to_date <= $4;
	`
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, query, accountID, accountType, postingType, asOf).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s interest for account %s: %w", postingType, accountID, err)
	}
	return sum, nil
}

// FindLastPostingDate returns the toDate of the most recent row of the given
// type, or nil when no history exists.
func (r *PgxInterestPostingRepository) FindLastPostingDate(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType) (*time.Time, error) {
	query := `
		SELECT to_date
		FROM acc_interest_posting
		WHERE account_id = $1 AND account_type = $2 AND posting_type = $3
		ORDER BY to_date DESC
		LIMIT 1;
	`
	var toDate time.Time
	err := r.pool.QueryRow(ctx, query, accountID, accountType, postingType).Scan(&toDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last %s date for account %s: %w", postingType, accountID, err)
	}
	return &toDate, nil
}
