package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

type PgxInterestConfigRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInterestConfigRepository creates a new repository for per-account
// interest configuration.
func NewPgxInterestConfigRepository(pool *pgxpool.Pool) portsrepo.InterestConfigRepository {
	return &PgxInterestConfigRepository{pool: pool}
}

// ListActiveConfigs returns the interest configuration of every active
// interest-bearing account.
func (r *PgxInterestConfigRepository) ListActiveConfigs(ctx context.Context) ([]domain.InterestAccountConfig, error) {
	query := `
		SELECT account_id, account_type, product_id, office_id, currency_code, decimal_places, annual_rate, strategy_type, strategy_params, days_in_year, minimum_balance, activated_on, is_active
		FROM acc_interest_config
		WHERE is_active = TRUE
		ORDER BY account_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query interest configs: %w", err)
	}
	defer rows.Close()

	configs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InterestAccountConfig, error) {
		var c domain.InterestAccountConfig
		var strategyType int
		err := row.Scan(
			&c.AccountID,
			&c.AccountType,
			&c.ProductID,
			&c.OfficeID,
			&c.CurrencyCode,
			&c.DecimalPlaces,
			&c.AnnualRate,
			&strategyType,
			&c.StrategyParams,
			&c.DaysInYear,
			&c.MinimumBalance,
			&c.ActivatedOn,
			&c.IsActive,
		)
		c.StrategyType = domain.InterestStrategyTypeFromValue(strategyType)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan interest configs: %w", err)
	}
	return configs, nil
}
