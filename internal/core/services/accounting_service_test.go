package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/core/services"
)

// --- Mock AccountingProcessor ---
type MockAccountingProcessor struct {
	mock.Mock
}

var _ portssvc.AccountingProcessor = (*MockAccountingProcessor)(nil)

func (m *MockAccountingProcessor) CreateJournalEntries(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, loan, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingProcessor) SkippedTransactionCount() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

type AccountingServiceTestSuite struct {
	suite.Suite
	mockAccrual     *MockAccountingProcessor
	mockCash        *MockAccountingProcessor
	mockJournalRepo *MockJournalEntryRepository
	mockClosureRepo *MockClosureRepository
	service         *services.AccountingService
	loan            domain.Loan
	txn             domain.LoanTransaction
	entries         []domain.JournalEntry
}

func (suite *AccountingServiceTestSuite) SetupTest() {
	suite.mockAccrual = new(MockAccountingProcessor)
	suite.mockCash = new(MockAccountingProcessor)
	suite.mockJournalRepo = new(MockJournalEntryRepository)
	suite.mockClosureRepo = new(MockClosureRepository)
	poster := services.NewJournalEntryPoster(suite.mockJournalRepo, suite.mockClosureRepo)
	suite.service = services.NewAccountingService(suite.mockAccrual, suite.mockCash, poster, suite.mockJournalRepo)

	suite.loan = domain.Loan{
		LoanID:         "loan-1",
		ProductID:      "prod-1",
		OfficeID:       "office-1",
		CurrencyCode:   "USD",
		AccountingRule: domain.AccountingRuleAccrualPeriodic,
	}
	suite.txn = domain.LoanTransaction{
		TransactionID: "txn-1",
		OfficeID:      "office-1",
		Type:          domain.LoanTxnRepayment,
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	suite.entries = []domain.JournalEntry{
		{EntryID: "e1", TransactionID: "txn-1", OfficeID: "office-1", GLAccountID: "a1", Type: domain.Debit, Amount: decimal.NewFromInt(100), EntryDate: suite.txn.Date},
		{EntryID: "e2", TransactionID: "txn-1", OfficeID: "office-1", GLAccountID: "a2", Type: domain.Credit, Amount: decimal.NewFromInt(100), EntryDate: suite.txn.Date},
	}
}

func (suite *AccountingServiceTestSuite) expectPosting() {
	suite.mockClosureRepo.On("FindLatestClosureDate", mock.Anything, "office-1").Return(nil, nil)
	suite.mockJournalRepo.On("SaveEntries", mock.Anything, suite.entries).Return(nil)
}

func (suite *AccountingServiceTestSuite) TestRuleNoneSkipsPosting() {
	suite.loan.AccountingRule = domain.AccountingRuleNone

	entries, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.NoError(err)
	suite.Nil(entries)
	suite.mockAccrual.AssertNotCalled(suite.T(), "CreateJournalEntries", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCash.AssertNotCalled(suite.T(), "CreateJournalEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestCashRuleDispatchesToCashProcessor() {
	suite.loan.AccountingRule = domain.AccountingRuleCash
	suite.mockCash.On("CreateJournalEntries", mock.Anything, suite.loan, suite.txn).Return(suite.entries, nil)
	suite.expectPosting()

	entries, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.Require().NoError(err)
	suite.Equal(suite.entries, entries)
	suite.mockAccrual.AssertNotCalled(suite.T(), "CreateJournalEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestAccrualRulesDispatchToAccrualProcessor() {
	for _, rule := range []domain.AccountingRuleType{domain.AccountingRuleAccrualPeriodic, domain.AccountingRuleAccrualUpfront} {
		suite.SetupTest()
		suite.loan.AccountingRule = rule
		suite.mockAccrual.On("CreateJournalEntries", mock.Anything, suite.loan, suite.txn).Return(suite.entries, nil)
		suite.expectPosting()

		entries, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
		suite.Require().NoError(err)
		suite.Equal(suite.entries, entries)
		suite.mockCash.AssertNotCalled(suite.T(), "CreateJournalEntries", mock.Anything, mock.Anything, mock.Anything)
	}
}

func (suite *AccountingServiceTestSuite) TestUnknownRuleIsConfigurationError() {
	suite.loan.AccountingRule = domain.AccountingRuleType(99)

	_, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *AccountingServiceTestSuite) TestEmptyBatchFromProcessorIsNotPosted() {
	suite.mockAccrual.On("CreateJournalEntries", mock.Anything, suite.loan, suite.txn).Return(nil, nil)

	entries, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.NoError(err)
	suite.Nil(entries)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestProcessorErrorPropagates() {
	suite.mockAccrual.On("CreateJournalEntries", mock.Anything, suite.loan, suite.txn).Return(nil, apperrors.ErrConfiguration)

	_, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestReversedTransactionShortCircuitsToReversal() {
	suite.txn.Reversed = true
	suite.mockClosureRepo.On("FindLatestClosureDate", mock.Anything, "office-1").Return(nil, nil)
	suite.mockJournalRepo.On("FindByTransactionID", mock.Anything, "txn-1").Return(suite.entries, nil)
	suite.mockJournalRepo.On("SaveEntries", mock.Anything, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("MarkReversed", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reversals, err := suite.service.ProcessLoanTransaction(context.Background(), suite.loan, suite.txn)
	suite.Require().NoError(err)
	suite.Require().Len(reversals, 2)
	suite.Equal(domain.Credit, reversals[0].Type)
	suite.Equal(domain.Debit, reversals[1].Type)
	suite.mockAccrual.AssertNotCalled(suite.T(), "CreateJournalEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestFindEntries() {
	suite.mockJournalRepo.On("FindByTransactionID", mock.Anything, "txn-1").Return(suite.entries, nil)

	entries, err := suite.service.FindEntries(context.Background(), "txn-1")
	suite.Require().NoError(err)
	suite.Equal(suite.entries, entries)
}

func TestAccountingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingServiceTestSuite))
}
