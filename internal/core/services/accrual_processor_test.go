package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/services"
)

const testProductID = "loan-prod-1"

// accountIDForRole derives the deterministic test account id for a role code.
func accountIDForRole(role domain.AccountRole) string {
	return fmt.Sprintf("acct-%d", role)
}

type AccrualProcessorTestSuite struct {
	suite.Suite
	mockMappingRepo *MockMappingRepository
	processor       *services.AccrualAccountingProcessor
	loan            domain.Loan
}

func (suite *AccrualProcessorTestSuite) SetupTest() {
	suite.mockMappingRepo = new(MockMappingRepository)

	// Every loan accrual role resolves to its own GL account.
	for code := 1; code <= 21; code++ {
		role := domain.AccountRole(code)
		accountID := accountIDForRole(role)
		mapping := &domain.ProductToAccountMapping{
			MappingID:   fmt.Sprintf("map-%d", code),
			ProductID:   testProductID,
			ProductType: domain.ProductTypeLoan,
			Role:        role,
			GLAccountID: accountID,
		}
		suite.mockMappingRepo.On("FindByProductAndRole", mock.Anything, testProductID, domain.ProductTypeLoan, role).Return(mapping, nil)
		suite.mockMappingRepo.On("FindGLAccountByID", mock.Anything, accountID).Return(&domain.GLAccount{
			GLAccountID: accountID,
			GLCode:      accountID,
			Name:        accountID,
			IsActive:    true,
		}, nil)
	}
	suite.mockMappingRepo.On("FindByProductAndCharge", mock.Anything, testProductID, domain.ProductTypeLoan, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockMappingRepo.On("FindByProductAndChargeOffReason", mock.Anything, testProductID, domain.ProductTypeLoan, mock.Anything).Return(nil, apperrors.ErrNotFound)

	resolver := services.NewGLAccountResolver(suite.mockMappingRepo)
	poster := services.NewJournalEntryPoster(nil, nil)
	suite.processor = services.NewAccrualAccountingProcessor(resolver, poster)

	suite.loan = domain.Loan{
		LoanID:         "loan-1",
		ProductID:      testProductID,
		OfficeID:       "office-1",
		CurrencyCode:   "USD",
		AccountingRule: domain.AccountingRuleAccrualPeriodic,
	}
}

func (suite *AccrualProcessorTestSuite) baseTxn(txnType domain.LoanTransactionType) domain.LoanTransaction {
	return domain.LoanTransaction{
		TransactionID: "txn-1",
		OfficeID:      "office-1",
		Type:          txnType,
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func sumBySide(entries []domain.JournalEntry, side domain.JournalEntryType) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.Type == side {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

func entriesForAccount(entries []domain.JournalEntry, glAccountID string) []domain.JournalEntry {
	var matched []domain.JournalEntry
	for _, e := range entries {
		if e.GLAccountID == glAccountID {
			matched = append(matched, e)
		}
	}
	return matched
}

// Every transaction type must yield a balanced batch with positive amounts.
func (suite *AccrualProcessorTestSuite) TestAllTransactionTypesProduceBalancedEntries() {
	cases := []struct {
		name      string
		chargeOff bool
		txn       func() domain.LoanTransaction
	}{
		{"disbursement", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnDisbursement)
			t.Amount = decimal.NewFromInt(1000)
			t.PrincipalPortion = decimal.NewFromInt(1000)
			return t
		}},
		{"repayment", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnRepayment)
			t.Amount = decimal.NewFromInt(350)
			t.PrincipalPortion = decimal.NewFromInt(200)
			t.InterestPortion = decimal.NewFromInt(100)
			t.FeesPortion = decimal.NewFromInt(30)
			t.PenaltiesPortion = decimal.NewFromInt(20)
			return t
		}},
		{"repayment charged off", true, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnRepayment)
			t.Amount = decimal.NewFromInt(350)
			t.PrincipalPortion = decimal.NewFromInt(200)
			t.InterestPortion = decimal.NewFromInt(100)
			t.FeesPortion = decimal.NewFromInt(30)
			t.PenaltiesPortion = decimal.NewFromInt(20)
			return t
		}},
		{"refund", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnRefund)
			t.PrincipalPortion = decimal.NewFromInt(120)
			t.InterestPortion = decimal.NewFromInt(30)
			return t
		}},
		{"write off", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnWriteOff)
			t.PrincipalPortion = decimal.NewFromInt(500)
			t.InterestPortion = decimal.NewFromInt(40)
			return t
		}},
		{"waive interest", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnWaiveInterest)
			t.InterestPortion = decimal.NewFromInt(75)
			return t
		}},
		{"waive charges", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnWaiveCharges)
			t.FeesPortion = decimal.NewFromInt(25)
			t.PenaltiesPortion = decimal.NewFromInt(10)
			return t
		}},
		{"recovery repayment", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnRecoveryRepayment)
			t.Amount = decimal.NewFromInt(300)
			return t
		}},
		{"accrual", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnAccrual)
			t.InterestPortion = decimal.NewFromInt(55)
			t.FeesPortion = decimal.NewFromInt(5)
			return t
		}},
		{"accrual adjustment", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnAccrualAdjustment)
			t.InterestPortion = decimal.NewFromInt(15)
			return t
		}},
		{"goodwill credit charged off", true, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnGoodwillCredit)
			t.PrincipalPortion = decimal.NewFromInt(80)
			t.InterestPortion = decimal.NewFromInt(20)
			return t
		}},
		{"charge refund", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnChargeRefund)
			t.Amount = decimal.NewFromInt(45)
			return t
		}},
		{"chargeback", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnChargeback)
			t.PrincipalCredited = decimal.NewFromInt(150)
			t.FeeCredited = decimal.NewFromInt(10)
			return t
		}},
		{"charge adjustment", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnChargeAdjustment)
			t.PrincipalPortion = decimal.NewFromInt(60)
			t.OverpaymentPortion = decimal.NewFromInt(15)
			return t
		}},
		{"charge off", true, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnChargeOff)
			t.PrincipalPortion = decimal.NewFromInt(800)
			t.InterestPortion = decimal.NewFromInt(90)
			t.FeesPortion = decimal.NewFromInt(20)
			t.PenaltiesPortion = decimal.NewFromInt(10)
			return t
		}},
		{"credit balance refund", false, func() domain.LoanTransaction {
			t := suite.baseTxn(domain.LoanTxnCreditBalanceRefund)
			t.OverpaymentPortion = decimal.NewFromInt(70)
			return t
		}},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			loan := suite.loan
			loan.IsChargedOff = tc.chargeOff

			entries, err := suite.processor.CreateJournalEntries(context.Background(), loan, tc.txn())
			suite.Require().NoError(err)
			suite.Require().NotEmpty(entries, "expected entries for %s", tc.name)

			debits := sumBySide(entries, domain.Debit)
			credits := sumBySide(entries, domain.Credit)
			suite.True(debits.Equal(credits), "debits %s != credits %s", debits, credits)
			suite.True(debits.GreaterThan(decimal.Zero))
			for _, e := range entries {
				suite.True(e.Amount.GreaterThan(decimal.Zero), "entry amount must be positive")
				suite.Equal("txn-1", e.TransactionID)
				suite.Equal(domain.EntityLoan, e.EntityType)
			}
		})
	}
}

func (suite *AccrualProcessorTestSuite) TestRepaymentRoutesInterestToReceivable() {
	txn := suite.baseTxn(domain.LoanTxnRepayment)
	txn.PrincipalPortion = decimal.NewFromInt(200)
	txn.InterestPortion = decimal.NewFromInt(100)

	entries, err := suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.Require().NoError(err)

	receivable := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualInterestReceivable.Value()))
	suite.Require().Len(receivable, 1)
	suite.Equal(domain.Credit, receivable[0].Type)
	suite.True(receivable[0].Amount.Equal(decimal.NewFromInt(100)))

	// Under accrual accounting a repayment never touches interest income.
	suite.Empty(entriesForAccount(entries, accountIDForRole(domain.LoanAccrualInterestOnLoans.Value())))

	fundSource := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualFundSource.Value()))
	suite.Require().Len(fundSource, 1)
	suite.Equal(domain.Debit, fundSource[0].Type)
	suite.True(fundSource[0].Amount.Equal(decimal.NewFromInt(300)))
}

func (suite *AccrualProcessorTestSuite) TestChargedOffRepaymentRouting() {
	txn := suite.baseTxn(domain.LoanTxnRepayment)
	txn.PrincipalPortion = decimal.NewFromInt(200)
	txn.InterestPortion = decimal.NewFromInt(50)

	loan := suite.loan
	loan.IsChargedOff = true

	entries, err := suite.processor.CreateJournalEntries(context.Background(), loan, txn)
	suite.Require().NoError(err)

	expense := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualChargeOffExpense.Value()))
	suite.Require().Len(expense, 1)
	suite.Equal(domain.Credit, expense[0].Type)
	suite.True(expense[0].Amount.Equal(decimal.NewFromInt(200)))

	interest := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualIncomeFromChargeOffInterest.Value()))
	suite.Require().Len(interest, 1)
	suite.True(interest[0].Amount.Equal(decimal.NewFromInt(50)))
}

// The fraud flag must switch the principal to the fraud expense account while
// keeping the batch balanced.
func (suite *AccrualProcessorTestSuite) TestFraudFlagSwitchesChargeOffExpenseAccount() {
	txn := suite.baseTxn(domain.LoanTxnRepayment)
	txn.PrincipalPortion = decimal.NewFromInt(200)

	loan := suite.loan
	loan.IsChargedOff = true
	loan.IsFraud = true

	entries, err := suite.processor.CreateJournalEntries(context.Background(), loan, txn)
	suite.Require().NoError(err)

	suite.Empty(entriesForAccount(entries, accountIDForRole(domain.LoanAccrualChargeOffExpense.Value())))
	fraud := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualChargeOffFraudExpense.Value()))
	suite.Require().Len(fraud, 1)
	suite.True(sumBySide(entries, domain.Debit).Equal(sumBySide(entries, domain.Credit)))
}

// Components resolving to the same account must merge into one entry.
func (suite *AccrualProcessorTestSuite) TestChargePaymentsAggregateIntoSingleEntry() {
	txn := suite.baseTxn(domain.LoanTxnRepayment)
	txn.FeesPortion = decimal.NewFromInt(30)
	txn.FeePayments = []domain.ChargePayment{
		{ChargeID: "charge-a", Amount: decimal.NewFromInt(10)},
		{ChargeID: "charge-b", Amount: decimal.NewFromInt(20)},
	}

	loan := suite.loan
	loan.FeeIncomeOnCollection = true

	entries, err := suite.processor.CreateJournalEntries(context.Background(), loan, txn)
	suite.Require().NoError(err)

	// Neither charge has a dedicated mapping, so both fall back to the fee
	// income account and merge.
	feeIncome := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualIncomeFromFees.Value()))
	suite.Require().Len(feeIncome, 1)
	suite.True(feeIncome[0].Amount.Equal(decimal.NewFromInt(30)))
}

func (suite *AccrualProcessorTestSuite) TestAccrualAdjustmentSwapsSides() {
	txn := suite.baseTxn(domain.LoanTxnAccrualAdjustment)
	txn.InterestPortion = decimal.NewFromInt(40)

	entries, err := suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.Require().NoError(err)

	receivable := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualInterestReceivable.Value()))
	suite.Require().Len(receivable, 1)
	suite.Equal(domain.Credit, receivable[0].Type)

	income := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualInterestOnLoans.Value()))
	suite.Require().Len(income, 1)
	suite.Equal(domain.Debit, income[0].Type)
}

func (suite *AccrualProcessorTestSuite) TestChargeOffTransitionAggregatesSingleExpenseDebit() {
	txn := suite.baseTxn(domain.LoanTxnChargeOff)
	txn.PrincipalPortion = decimal.NewFromInt(800)
	txn.InterestPortion = decimal.NewFromInt(90)
	txn.FeesPortion = decimal.NewFromInt(20)
	txn.PenaltiesPortion = decimal.NewFromInt(10)

	loan := suite.loan
	loan.IsChargedOff = true

	entries, err := suite.processor.CreateJournalEntries(context.Background(), loan, txn)
	suite.Require().NoError(err)

	expense := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualChargeOffExpense.Value()))
	suite.Require().Len(expense, 1)
	suite.Equal(domain.Debit, expense[0].Type)
	suite.True(expense[0].Amount.Equal(decimal.NewFromInt(920)))
}

// A charge refund travelling with other refunded portions touches the fund
// source twice while the batch is assembled. The merged result must carry one
// entry per (account, side) or the posting uniqueness key rejects it.
func (suite *AccrualProcessorTestSuite) TestChargeRefundWithPrincipalMergesFundSourceCredit() {
	txn := suite.baseTxn(domain.LoanTxnChargeRefund)
	txn.Amount = decimal.NewFromInt(45)
	txn.PrincipalPortion = decimal.NewFromInt(100)

	entries, err := suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.Require().NoError(err)

	keys := make(map[string]int)
	for _, e := range entries {
		keys[e.GLAccountID+"/"+string(e.Type)]++
	}
	for key, count := range keys {
		suite.Equalf(1, count, "posting key %s appears %d times", key, count)
	}

	fundSource := entriesForAccount(entries, accountIDForRole(domain.LoanAccrualFundSource.Value()))
	suite.Require().Len(fundSource, 1)
	suite.Equal(domain.Credit, fundSource[0].Type)
	suite.True(fundSource[0].Amount.Equal(decimal.NewFromInt(145)))
	suite.True(sumBySide(entries, domain.Debit).Equal(sumBySide(entries, domain.Credit)))
}

func (suite *AccrualProcessorTestSuite) TestUnknownTransactionTypeSkipsWithCounter() {
	txn := suite.baseTxn(domain.LoanTxnInvalid)
	txn.Amount = decimal.NewFromInt(100)

	entries, err := suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.NoError(err)
	suite.Nil(entries)
	suite.Equal(uint64(1), suite.processor.SkippedTransactionCount())

	_, err = suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.NoError(err)
	suite.Equal(uint64(2), suite.processor.SkippedTransactionCount())
}

func (suite *AccrualProcessorTestSuite) TestMissingMappingIsConfigurationError() {
	mockRepo := new(MockMappingRepository)
	mockRepo.On("FindByProductAndRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)

	resolver := services.NewGLAccountResolver(mockRepo)
	poster := services.NewJournalEntryPoster(nil, nil)
	processor := services.NewAccrualAccountingProcessor(resolver, poster)

	txn := suite.baseTxn(domain.LoanTxnDisbursement)
	txn.PrincipalPortion = decimal.NewFromInt(100)

	_, err := processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *AccrualProcessorTestSuite) TestTransferOverridesFundSource() {
	faAccount := &domain.GLAccount{GLAccountID: "acct-fa-100", Name: "asset transfers", IsActive: true}
	suite.mockMappingRepo.On("FindFinancialActivityAccount", mock.Anything, domain.FinancialActivityAssetTransfer).Return(faAccount, nil)

	txn := suite.baseTxn(domain.LoanTxnRepayment)
	txn.PrincipalPortion = decimal.NewFromInt(100)
	txn.IsLoanToLoanTransfer = true

	entries, err := suite.processor.CreateJournalEntries(context.Background(), suite.loan, txn)
	suite.Require().NoError(err)

	suite.Empty(entriesForAccount(entries, accountIDForRole(domain.LoanAccrualFundSource.Value())))
	fa := entriesForAccount(entries, "acct-fa-100")
	suite.Require().Len(fa, 1)
	suite.Equal(domain.Debit, fa[0].Type)
}

func TestAccrualProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(AccrualProcessorTestSuite))
}
