package repositories

import (
	"context"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// MappingRepository reads product-to-GL-account configuration. It is
// read-only from the posting engine's perspective; mappings are administered
// elsewhere. Implementations must return apperrors.ErrNotFound (wrapped or
// bare) when no mapping exists for a tuple.
type MappingRepository interface {
	// FindByProductAndRole resolves the regular mapping for a role.
	FindByProductAndRole(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole) (*domain.ProductToAccountMapping, error)

	// FindByProductRoleAndPaymentType resolves a payment-type-specific
	// mapping (fund source variants).
	FindByProductRoleAndPaymentType(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole, paymentTypeID string) (*domain.ProductToAccountMapping, error)

	// FindByProductAndCharge resolves the income account mapped to one
	// specific fee or penalty charge.
	FindByProductAndCharge(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeID string) (*domain.ProductToAccountMapping, error)

	// FindByProductAndChargeOffReason resolves the expense account mapped to
	// a charge-off reason code value.
	FindByProductAndChargeOffReason(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeOffReasonID string) (*domain.ProductToAccountMapping, error)

	// FindGLAccountByID loads a GL account row.
	FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error)

	// FindFinancialActivityAccount resolves the organisation-level account
	// for a financial activity (asset/liability transfer).
	FindFinancialActivityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error)
}
