package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

type PgxClosureRepository struct {
	pool *pgxpool.Pool
}

// NewPgxClosureRepository creates a new repository for accounting closures.
func NewPgxClosureRepository(pool *pgxpool.Pool) portsrepo.ClosureRepository {
	return &PgxClosureRepository{pool: pool}
}

// FindLatestClosureDate returns the most recent closing date for the office,
// or nil when the office has never been closed.
func (r *PgxClosureRepository) FindLatestClosureDate(ctx context.Context, officeID string) (*time.Time, error) {
	query := `
		SELECT closing_date
		FROM acc_gl_closure
		WHERE office_id = $1
		ORDER BY closing_date DESC
		LIMIT 1;
	`
	var closingDate time.Time
	err := r.pool.QueryRow(ctx, query, officeID).Scan(&closingDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest closure for office %s: %w", officeID, err)
	}
	return &closingDate, nil
}
