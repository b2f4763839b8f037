package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

// GLAccountResolver turns (product, semantic role[, discriminator]) tuples
// into concrete GL accounts. Pure lookup: the only logic here is key
// composition and the documented fallbacks. A missing mapping is a
// configuration error that must propagate, since posting against a defaulted
// account would corrupt the ledger.
type GLAccountResolver struct {
	mappingRepo portsrepo.MappingRepository
}

// NewGLAccountResolver creates a new GLAccountResolver.
func NewGLAccountResolver(mappingRepo portsrepo.MappingRepository) *GLAccountResolver {
	return &GLAccountResolver{mappingRepo: mappingRepo}
}

// Resolve returns the GL account mapped to the role for a product.
func (r *GLAccountResolver) Resolve(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole) (*domain.GLAccount, error) {
	mapping, err := r.mappingRepo.FindByProductAndRole(ctx, productID, productType, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no GL account mapped for product %s (%s) role %d", apperrors.ErrConfiguration, productID, productType, role)
		}
		return nil, fmt.Errorf("resolving GL mapping for product %s role %d: %w", productID, role, err)
	}
	return r.loadAccount(ctx, mapping.GLAccountID)
}

// ResolveWithPaymentType returns the payment-type-specific account for the
// role when one is configured, falling back to the regular mapping. Used for
// fund source variants keyed by how the money moved.
func (r *GLAccountResolver) ResolveWithPaymentType(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole, paymentTypeID *string) (*domain.GLAccount, error) {
	if paymentTypeID != nil {
		mapping, err := r.mappingRepo.FindByProductRoleAndPaymentType(ctx, productID, productType, role, *paymentTypeID)
		if err == nil {
			return r.loadAccount(ctx, mapping.GLAccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("resolving payment-type GL mapping for product %s role %d payment type %s: %w", productID, role, *paymentTypeID, err)
		}
		// No payment-type-specific account configured; the regular mapping applies.
	}
	return r.Resolve(ctx, productID, productType, role)
}

// ResolveChargeAccount returns the income account mapped to one specific
// charge, falling back to the product's generic fee/penalty income role.
func (r *GLAccountResolver) ResolveChargeAccount(ctx context.Context, productID string, productType domain.PortfolioProductType, fallbackRole domain.AccountRole, chargeID *string) (*domain.GLAccount, error) {
	if chargeID != nil {
		mapping, err := r.mappingRepo.FindByProductAndCharge(ctx, productID, productType, *chargeID)
		if err == nil {
			return r.loadAccount(ctx, mapping.GLAccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("resolving charge GL mapping for product %s charge %s: %w", productID, *chargeID, err)
		}
	}
	return r.Resolve(ctx, productID, productType, fallbackRole)
}

// ResolveChargeOffExpense returns the expense account for a charge-off. A
// reason-specific mapping takes priority; without one (or without a recorded
// reason) the fraud/non-fraud default expense role applies.
func (r *GLAccountResolver) ResolveChargeOffExpense(ctx context.Context, loan domain.Loan) (*domain.GLAccount, error) {
	if loan.ChargeOffReasonID != nil {
		mapping, err := r.mappingRepo.FindByProductAndChargeOffReason(ctx, loan.ProductID, domain.ProductTypeLoan, *loan.ChargeOffReasonID)
		if err == nil {
			return r.loadAccount(ctx, mapping.GLAccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("resolving charge-off reason GL mapping for product %s reason %s: %w", loan.ProductID, *loan.ChargeOffReasonID, err)
		}
	}
	role := domain.LoanAccrualChargeOffExpense
	if loan.IsFraud {
		role = domain.LoanAccrualChargeOffFraudExpense
	}
	return r.Resolve(ctx, loan.ProductID, domain.ProductTypeLoan, role.Value())
}

// ResolveFinancialActivityAccount returns the organisation-level account for
// asset or liability transfers.
func (r *GLAccountResolver) ResolveFinancialActivityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	account, err := r.mappingRepo.FindFinancialActivityAccount(ctx, activity)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no GL account mapped for financial activity %d", apperrors.ErrConfiguration, activity)
		}
		return nil, fmt.Errorf("resolving financial activity account %d: %w", activity, err)
	}
	return account, nil
}

func (r *GLAccountResolver) loadAccount(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	account, err := r.mappingRepo.FindGLAccountByID(ctx, glAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: mapped GL account %s does not exist", apperrors.ErrConfiguration, glAccountID)
		}
		return nil, fmt.Errorf("loading GL account %s: %w", glAccountID, err)
	}
	return account, nil
}
