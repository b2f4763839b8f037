package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

// --- Mock MappingRepository ---
type MockMappingRepository struct {
	mock.Mock
}

var _ portsrepo.MappingRepository = (*MockMappingRepository)(nil)

func (m *MockMappingRepository) FindByProductAndRole(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole) (*domain.ProductToAccountMapping, error) {
	args := m.Called(ctx, productID, productType, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductToAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindByProductRoleAndPaymentType(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole, paymentTypeID string) (*domain.ProductToAccountMapping, error) {
	args := m.Called(ctx, productID, productType, role, paymentTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductToAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindByProductAndCharge(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeID string) (*domain.ProductToAccountMapping, error) {
	args := m.Called(ctx, productID, productType, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductToAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindByProductAndChargeOffReason(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeOffReasonID string) (*domain.ProductToAccountMapping, error) {
	args := m.Called(ctx, productID, productType, chargeOffReasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductToAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockMappingRepository) FindFinancialActivityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepository = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) MarkReversed(ctx context.Context, reversalIDs map[string]string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reversalIDs, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock ClosureRepository ---
type MockClosureRepository struct {
	mock.Mock
}

var _ portsrepo.ClosureRepository = (*MockClosureRepository)(nil)

func (m *MockClosureRepository) FindLatestClosureDate(ctx context.Context, officeID string) (*time.Time, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// --- Mock BalanceHistoryProvider ---
type MockBalanceHistoryProvider struct {
	mock.Mock
}

var _ portsrepo.BalanceHistoryProvider = (*MockBalanceHistoryProvider)(nil)

func (m *MockBalanceHistoryProvider) FindBalanceData(ctx context.Context, accountID string, accountType domain.EntityType, fromDate, toDate time.Time) (domain.InterestCalculationData, error) {
	args := m.Called(ctx, accountID, accountType, fromDate, toDate)
	return args.Get(0).(domain.InterestCalculationData), args.Error(1)
}

// --- Mock InterestPostingRepository ---
type MockInterestPostingRepository struct {
	mock.Mock
}

var _ portsrepo.InterestPostingRepository = (*MockInterestPostingRepository)(nil)

func (m *MockInterestPostingRepository) SavePosting(ctx context.Context, posting domain.InterestPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockInterestPostingRepository) SumAccrued(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, accountType, postingType, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInterestPostingRepository) FindLastPostingDate(ctx context.Context, accountID string, accountType domain.EntityType, postingType domain.InterestPostingType) (*time.Time, error) {
	args := m.Called(ctx, accountID, accountType, postingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
