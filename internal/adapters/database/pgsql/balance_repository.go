package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

type PgxBalanceHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBalanceHistoryRepository creates a new provider of daily balance
// history for interest calculation.
func NewPgxBalanceHistoryRepository(pool *pgxpool.Pool) portsrepo.BalanceHistoryProvider {
	return &PgxBalanceHistoryRepository{pool: pool}
}

type balanceRow struct {
	date    time.Time
	balance decimal.Decimal
}

// FindBalanceData loads the daily balance rows in [fromDate, toDate] and
// derives the opening, closing, average and minimum balance. Days without a
// row carry the previous day's balance forward; a day before the first row
// carries the balance of the day preceding the range (or zero when the
// account has no earlier history).
func (r *PgxBalanceHistoryRepository) FindBalanceData(ctx context.Context, accountID string, accountType domain.EntityType, fromDate, toDate time.Time) (domain.InterestCalculationData, error) {
	from := domain.TruncateToDay(fromDate)
	to := domain.TruncateToDay(toDate)

	query := `
		SELECT balance_date, balance
		FROM acc_balance_history
		WHERE account_id = $1 AND account_type = $2 AND balance_date BETWEEN $3 AND $4
		ORDER BY balance_date;
	`
	rows, err := r.pool.Query(ctx, query, accountID, accountType, from, to)
	if err != nil {
		return domain.InterestCalculationData{}, fmt.Errorf("failed to query balance history for account %s: %w", accountID, err)
	}
	defer rows.Close()

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (balanceRow, error) {
		var b balanceRow
		err := row.Scan(&b.date, &b.balance)
		return b, err
	})
	if err != nil {
		return domain.InterestCalculationData{}, fmt.Errorf("failed to scan balance history for account %s: %w", accountID, err)
	}

	carried, err := r.balanceBefore(ctx, accountID, accountType, from)
	if err != nil {
		return domain.InterestCalculationData{}, err
	}
	if len(history) == 0 && carried == nil {
		return domain.InterestCalculationData{}, fmt.Errorf("%w: no balance history for account %s", apperrors.ErrNotFound, accountID)
	}

	opening := decimal.Zero
	if carried != nil {
		opening = *carried
	}

	current := opening
	sum := decimal.Zero
	minimum := decimal.Decimal{}
	minimumSet := false
	days := 0
	idx := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for idx < len(history) && history[idx].date.Equal(day) {
			current = history[idx].balance
			idx++
		}
		sum = sum.Add(current)
		if !minimumSet || current.LessThan(minimum) {
			minimum = current
			minimumSet = true
		}
		if days == 0 {
			opening = current
		}
		days++
	}
	average := sum.Div(decimal.NewFromInt(int64(days)))

	return domain.NewInterestCalculationData(from, to, opening, current, average, minimum)
}

func (r *PgxBalanceHistoryRepository) balanceBefore(ctx context.Context, accountID string, accountType domain.EntityType, before time.Time) (*decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM acc_balance_history
		WHERE account_id = $1 AND account_type = $2 AND balance_date < $3
		ORDER BY balance_date DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.pool.QueryRow(ctx, query, accountID, accountType, before).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query prior balance for account %s: %w", accountID, err)
	}
	return &balance, nil
}
