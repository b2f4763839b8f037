package repositories

import (
	"context"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// InterestConfigRepository lists the accounts the accrual scheduler runs
// over.
type InterestConfigRepository interface {
	// ListActiveConfigs returns the interest configuration of every active
	// interest-bearing account.
	ListActiveConfigs(ctx context.Context) ([]domain.InterestAccountConfig, error)
}
