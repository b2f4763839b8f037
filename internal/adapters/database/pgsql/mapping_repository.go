package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

type PgxMappingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMappingRepository creates a new repository for product-to-GL-account
// mapping configuration.
func NewPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepository {
	return &PgxMappingRepository{pool: pool}
}

const mappingColumns = `mapping_id, product_id, product_type, role, gl_account_id, payment_type_id, charge_id, charge_off_reason_id, created_at, created_by, last_updated_at, last_updated_by`

func scanMapping(row pgx.Row) (*domain.ProductToAccountMapping, error) {
	var m domain.ProductToAccountMapping
	err := row.Scan(
		&m.MappingID,
		&m.ProductID,
		&m.ProductType,
		&m.Role,
		&m.GLAccountID,
		&m.PaymentTypeID,
		&m.ChargeID,
		&m.ChargeOffReasonID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByProductAndRole resolves the regular mapping for a role.
func (r *PgxMappingRepository) FindByProductAndRole(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole) (*domain.ProductToAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM acc_product_mapping
		WHERE product_id = $1 AND product_type = $2 AND role = $3
		  AND payment_type_id IS NULL AND charge_id IS NULL AND charge_off_reason_id IS NULL;
	`
	mapping, err := scanMapping(r.pool.QueryRow(ctx, query, productID, productType, role))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find mapping for product %s role %d: %w", productID, role, err)
	}
	return mapping, nil
}

// FindByProductRoleAndPaymentType resolves a payment-type-specific mapping.
func (r *PgxMappingRepository) FindByProductRoleAndPaymentType(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole, paymentTypeID string) (*domain.ProductToAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM acc_product_mapping
		WHERE product_id = $1 AND product_type = $2 AND role = $3 AND payment_type_id = $4;
	`
	mapping, err := scanMapping(r.pool.QueryRow(ctx, query, productID, productType, role, paymentTypeID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find mapping for product %s role %d payment type %s: %w", productID, role, paymentTypeID, err)
	}
	return mapping, nil
}

// FindByProductAndCharge resolves the income account mapped to one charge.
func (r *PgxMappingRepository) FindByProductAndCharge(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeID string) (*domain.ProductToAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM acc_product_mapping
		WHERE product_id = $1 AND product_type = $2 AND charge_id = $3;
	`
	mapping, err := scanMapping(r.pool.QueryRow(ctx, query, productID, productType, chargeID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find mapping for product %s charge %s: %w", productID, chargeID, err)
	}
	return mapping, nil
}

// FindByProductAndChargeOffReason resolves the expense account mapped to a
// charge-off reason.
func (r *PgxMappingRepository) FindByProductAndChargeOffReason(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeOffReasonID string) (*domain.ProductToAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM acc_product_mapping
		WHERE product_id = $1 AND product_type = $2 AND charge_off_reason_id = $3;
	`
	mapping, err := scanMapping(r.pool.QueryRow(ctx, query, productID, productType, chargeOffReasonID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find mapping for product %s charge-off reason %s: %w", productID, chargeOffReasonID, err)
	}
	return mapping, nil
}

// FindGLAccountByID loads a GL account row.
func (r *PgxMappingRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	query := `
		SELECT gl_account_id, gl_code, name, type, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM acc_gl_account
		WHERE gl_account_id = $1;
	`
	var account domain.GLAccount
	err := r.pool.QueryRow(ctx, query, glAccountID).Scan(
		&account.GLAccountID,
		&account.GLCode,
		&account.Name,
		&account.Type,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find GL account by ID %s: %w", glAccountID, err)
	}
	return &account, nil
}

// FindFinancialActivityAccount resolves the organisation-level account for a
// financial activity.
func (r *PgxMappingRepository) FindFinancialActivityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	query := `
		SELECT a.gl_account_id, a.gl_code, a.name, a.type, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM acc_financial_activity_account f
		JOIN acc_gl_account a ON a.gl_account_id = f.gl_account_id
		WHERE f.financial_activity = $1;
	`
	var account domain.GLAccount
	err := r.pool.QueryRow(ctx, query, activity).Scan(
		&account.GLAccountID,
		&account.GLCode,
		&account.Name,
		&account.Type,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial activity account %d: %w", activity, err)
	}
	return &account, nil
}
