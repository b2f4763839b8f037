package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/middleware"
)

// CashAccountingProcessor maps loan transactions to journal entries under
// cash-basis accounting: income is recognised only when money is collected,
// so no receivable accounts exist and accrual transactions produce no
// entries.
type CashAccountingProcessor struct {
	resolver *GLAccountResolver
	poster   *JournalEntryPoster
	skipped  atomic.Uint64
}

// NewCashAccountingProcessor creates a new CashAccountingProcessor.
func NewCashAccountingProcessor(resolver *GLAccountResolver, poster *JournalEntryPoster) *CashAccountingProcessor {
	return &CashAccountingProcessor{resolver: resolver, poster: poster}
}

var _ portssvc.AccountingProcessor = (*CashAccountingProcessor)(nil)

// SkippedTransactionCount reports how many transactions were skipped because
// their type is not recognised.
func (p *CashAccountingProcessor) SkippedTransactionCount() uint64 {
	return p.skipped.Load()
}

// CreateJournalEntries implements portssvc.AccountingProcessor. The final
// merge pass collapses sub-batches that hit the same account and side into
// one entry per posting key.
func (p *CashAccountingProcessor) CreateJournalEntries(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	entries, err := p.entriesForTransaction(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	return mergeByAccountAndSide(entries), nil
}

func (p *CashAccountingProcessor) entriesForTransaction(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	switch txn.Type {
	case domain.LoanTxnDisbursement:
		return p.entriesForDisbursement(ctx, loan, txn)
	case domain.LoanTxnRepayment, domain.LoanTxnRepaymentAtDisbursement, domain.LoanTxnChargePayment:
		return p.entriesForRepayment(ctx, loan, txn, false, nil)
	case domain.LoanTxnRefund, domain.LoanTxnRefundForActiveLoan,
		domain.LoanTxnMerchantIssuedRefund, domain.LoanTxnPayoutRefund:
		return p.entriesForRepayment(ctx, loan, txn, true, nil)
	case domain.LoanTxnWriteOff:
		return p.entriesForWriteOff(ctx, loan, txn)
	case domain.LoanTxnWaiveInterest, domain.LoanTxnWaiveCharges:
		// Nothing was ever recognised, so a waiver has no ledger effect on a
		// cash basis.
		return nil, nil
	case domain.LoanTxnAccrual, domain.LoanTxnAccrualAdjustment:
		return nil, nil
	case domain.LoanTxnRecoveryRepayment:
		return p.entriesForRecovery(ctx, loan, txn)
	case domain.LoanTxnGoodwillCredit:
		return p.entriesForGoodwillCredit(ctx, loan, txn)
	case domain.LoanTxnChargeRefund:
		return p.entriesForChargeRefund(ctx, loan, txn)
	case domain.LoanTxnChargeback:
		return p.entriesForChargeback(ctx, loan, txn)
	case domain.LoanTxnChargeAdjustment:
		return p.entriesForChargeAdjustment(ctx, loan, txn)
	case domain.LoanTxnChargeOff:
		return p.entriesForChargeOffTransition(ctx, loan, txn)
	case domain.LoanTxnCreditBalanceRefund:
		return p.entriesForCreditBalanceRefund(ctx, loan, txn)
	default:
		p.skipped.Add(1)
		middleware.GetLoggerFromCtx(ctx).Warn("Unrecognized loan transaction type, no journal entries emitted",
			slog.String("loan_id", loan.LoanID),
			slog.String("transaction_id", txn.TransactionID),
			slog.Int("transaction_type", int(txn.Type)))
		return nil, nil
	}
}

func (p *CashAccountingProcessor) loanAccount(ctx context.Context, loan domain.Loan, role domain.LoanCashRole) (*domain.GLAccount, error) {
	return p.resolver.Resolve(ctx, loan.ProductID, domain.ProductTypeLoan, role.Value())
}

func (p *CashAccountingProcessor) fundSourceAccount(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*domain.GLAccount, error) {
	if txn.IsLoanToLoanTransfer {
		return p.resolver.ResolveFinancialActivityAccount(ctx, domain.FinancialActivityAssetTransfer)
	}
	if txn.IsAccountTransfer {
		return p.resolver.ResolveFinancialActivityAccount(ctx, domain.FinancialActivityLiabilityTransfer)
	}
	return p.resolver.ResolveWithPaymentType(ctx, loan.ProductID, domain.ProductTypeLoan, domain.LoanCashFundSource.Value(), txn.PaymentTypeID)
}

func (p *CashAccountingProcessor) buildEntries(loan domain.Loan, txn domain.LoanTransaction, componentSide domain.JournalEntryType, components *accountAmounts, counter *domain.GLAccount) []domain.JournalEntry {
	if components.isEmpty() {
		return nil
	}
	entries := make([]domain.JournalEntry, 0, len(components.order)+1)
	components.each(func(account *domain.GLAccount, amount decimal.Decimal) {
		if componentSide == domain.Credit {
			entries = append(entries, p.poster.NewCredit(loan.OfficeID, loan.CurrencyCode, account, amount, txn.Date, txn.TransactionID, domain.EntityLoan, loan.LoanID))
		} else {
			entries = append(entries, p.poster.NewDebit(loan.OfficeID, loan.CurrencyCode, account, amount, txn.Date, txn.TransactionID, domain.EntityLoan, loan.LoanID))
		}
	})
	total := components.total()
	if componentSide == domain.Credit {
		entries = append(entries, p.poster.NewDebit(loan.OfficeID, loan.CurrencyCode, counter, total, txn.Date, txn.TransactionID, domain.EntityLoan, loan.LoanID))
	} else {
		entries = append(entries, p.poster.NewCredit(loan.OfficeID, loan.CurrencyCode, counter, total, txn.Date, txn.TransactionID, domain.EntityLoan, loan.LoanID))
	}
	return entries
}

func (p *CashAccountingProcessor) addChargeComponents(ctx context.Context, loan domain.Loan, portion decimal.Decimal, payments []domain.ChargePayment, fallbackRole domain.LoanCashRole, target *accountAmounts) error {
	if portion.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if len(payments) == 0 {
		account, err := p.loanAccount(ctx, loan, fallbackRole)
		if err != nil {
			return err
		}
		target.add(account, portion)
		return nil
	}
	for _, payment := range payments {
		chargeID := payment.ChargeID
		account, err := p.resolver.ResolveChargeAccount(ctx, loan.ProductID, domain.ProductTypeLoan, fallbackRole.Value(), &chargeID)
		if err != nil {
			return err
		}
		target.add(account, payment.Amount)
	}
	return nil
}

func (p *CashAccountingProcessor) entriesForDisbursement(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	principal := txn.PrincipalPortion
	if principal.LessThanOrEqual(decimal.Zero) && txn.OverpaymentPortion.LessThanOrEqual(decimal.Zero) {
		principal = txn.Amount
	}
	if principal.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
		if err != nil {
			return nil, err
		}
		debits.add(portfolio, principal)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanCashOverpayment)
		if err != nil {
			return nil, err
		}
		debits.add(overpayment, txn.OverpaymentPortion)
	}

	fundSource, err := p.fundSourceAccount(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Debit, debits, fundSource), nil
}

// entriesForRepayment recognises interest, fees and penalties directly as
// income since no receivables exist on a cash basis.
func (p *CashAccountingProcessor) entriesForRepayment(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction, moneyOut bool, debitOverride *domain.GLAccount) ([]domain.JournalEntry, error) {
	var components *accountAmounts
	var err error
	if loan.IsChargedOff {
		components, err = p.chargedOffRepaymentComponents(ctx, loan, txn)
	} else {
		components, err = p.repaymentComponents(ctx, loan, txn)
	}
	if err != nil {
		return nil, err
	}
	if components.isEmpty() {
		return nil, nil
	}

	counter := debitOverride
	if counter == nil {
		counter, err = p.fundSourceAccount(ctx, loan, txn)
		if err != nil {
			return nil, err
		}
	}

	componentSide := domain.Credit
	if moneyOut {
		componentSide = domain.Debit
	}
	return p.buildEntries(loan, txn, componentSide, components, counter), nil
}

func (p *CashAccountingProcessor) repaymentComponents(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*accountAmounts, error) {
	components := newAccountAmounts()

	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
		if err != nil {
			return nil, err
		}
		components.add(portfolio, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashInterestOnLoans)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		if err := p.addChargeComponents(ctx, loan, txn.FeesPortion, txn.FeePayments, domain.LoanCashIncomeFromFees, components); err != nil {
			return nil, err
		}
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		if err := p.addChargeComponents(ctx, loan, txn.PenaltiesPortion, txn.PenaltyPayments, domain.LoanCashIncomeFromPenalties, components); err != nil {
			return nil, err
		}
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanCashOverpayment)
		if err != nil {
			return nil, err
		}
		components.add(overpayment, txn.OverpaymentPortion)
	}
	return components, nil
}

func (p *CashAccountingProcessor) chargedOffRepaymentComponents(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*accountAmounts, error) {
	components := newAccountAmounts()

	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		expense, err := p.resolver.ResolveChargeOffExpense(ctx, loan)
		if err != nil {
			return nil, err
		}
		components.add(expense, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromChargeOffInterest)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromChargeOffFees)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.FeesPortion)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromChargeOffPenalty)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.PenaltiesPortion)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanCashOverpayment)
		if err != nil {
			return nil, err
		}
		components.add(overpayment, txn.OverpaymentPortion)
	}
	return components, nil
}

// entriesForWriteOff credits the outstanding principal and debits losses
// written off. Uncollected interest and charges were never recognised, so
// only the principal portion moves.
func (p *CashAccountingProcessor) entriesForWriteOff(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	writtenOff := txn.PrincipalPortion
	if writtenOff.LessThanOrEqual(decimal.Zero) {
		writtenOff = txn.Amount
	}
	if writtenOff.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
	if err != nil {
		return nil, err
	}
	losses, err := p.loanAccount(ctx, loan, domain.LoanCashLossesWrittenOff)
	if err != nil {
		return nil, err
	}
	credits := newAccountAmounts()
	credits.add(portfolio, writtenOff)
	return p.buildEntries(loan, txn, domain.Credit, credits, losses), nil
}

func (p *CashAccountingProcessor) entriesForRecovery(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromRecovery)
	if err != nil {
		return nil, err
	}
	fundSource, err := p.fundSourceAccount(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	credits := newAccountAmounts()
	credits.add(income, txn.Amount)
	return p.buildEntries(loan, txn, domain.Credit, credits, fundSource), nil
}

func (p *CashAccountingProcessor) entriesForGoodwillCredit(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	if !loan.IsChargedOff {
		return p.entriesForRepayment(ctx, loan, txn, false, nil)
	}

	credits := newAccountAmounts()
	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		recovery, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromRecovery)
		if err != nil {
			return nil, err
		}
		credits.add(recovery, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashInterestOnLoans)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromFees)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.FeesPortion)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromPenalties)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.PenaltiesPortion)
	}
	if credits.isEmpty() {
		return nil, nil
	}

	goodwill, err := p.loanAccount(ctx, loan, domain.LoanCashGoodwillCredit)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Credit, credits, goodwill), nil
}

func (p *CashAccountingProcessor) entriesForChargeRefund(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	fallbackRole := domain.LoanCashIncomeFromFees
	if txn.AdjustedChargeIsPenalty {
		fallbackRole = domain.LoanCashIncomeFromPenalties
	}
	income, err := p.resolver.ResolveChargeAccount(ctx, loan.ProductID, domain.ProductTypeLoan, fallbackRole.Value(), txn.AdjustedChargeID)
	if err != nil {
		return nil, err
	}
	fundSource, err := p.fundSourceAccount(ctx, loan, txn)
	if err != nil {
		return nil, err
	}

	refunded := txn.Amount
	if refunded.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	debits := newAccountAmounts()
	debits.add(income, refunded)
	entries := p.buildEntries(loan, txn, domain.Debit, debits, fundSource)

	leftover := txn
	leftover.Amount = decimal.Zero
	leftover.FeesPortion = decimal.Zero
	leftover.PenaltiesPortion = decimal.Zero
	extra, err := p.entriesForRepayment(ctx, loan, leftover, true, nil)
	if err != nil {
		return nil, err
	}
	return append(entries, extra...), nil
}

func (p *CashAccountingProcessor) entriesForChargeback(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	if txn.PrincipalCredited.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
		if err != nil {
			return nil, err
		}
		debits.add(portfolio, txn.PrincipalCredited)
	}
	if txn.FeeCredited.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromFees)
		if err != nil {
			return nil, err
		}
		debits.add(income, txn.FeeCredited)
	}
	if txn.PenaltyCredited.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanCashIncomeFromPenalties)
		if err != nil {
			return nil, err
		}
		debits.add(income, txn.PenaltyCredited)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanCashOverpayment)
		if err != nil {
			return nil, err
		}
		debits.add(overpayment, txn.OverpaymentPortion)
	}
	if debits.isEmpty() {
		return nil, nil
	}

	fundSource, err := p.fundSourceAccount(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Debit, debits, fundSource), nil
}

func (p *CashAccountingProcessor) entriesForChargeAdjustment(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	var components *accountAmounts
	var err error
	if loan.IsChargedOff {
		components, err = p.chargedOffRepaymentComponents(ctx, loan, txn)
	} else {
		components, err = p.repaymentComponents(ctx, loan, txn)
	}
	if err != nil {
		return nil, err
	}
	if components.isEmpty() {
		return nil, nil
	}

	fallbackRole := domain.LoanCashIncomeFromFees
	if txn.AdjustedChargeIsPenalty {
		fallbackRole = domain.LoanCashIncomeFromPenalties
	}
	income, err := p.resolver.ResolveChargeAccount(ctx, loan.ProductID, domain.ProductTypeLoan, fallbackRole.Value(), txn.AdjustedChargeID)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Credit, components, income), nil
}

// entriesForChargeOffTransition moves the outstanding principal off the
// books. Only the principal carries a book value on a cash basis.
func (p *CashAccountingProcessor) entriesForChargeOffTransition(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	outstanding := txn.PrincipalPortion
	if outstanding.LessThanOrEqual(decimal.Zero) {
		outstanding = txn.Amount
	}
	if outstanding.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
	if err != nil {
		return nil, err
	}
	expense, err := p.resolver.ResolveChargeOffExpense(ctx, loan)
	if err != nil {
		return nil, err
	}
	credits := newAccountAmounts()
	credits.add(portfolio, outstanding)
	return p.buildEntries(loan, txn, domain.Credit, credits, expense), nil
}

func (p *CashAccountingProcessor) entriesForCreditBalanceRefund(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanCashOverpayment)
		if err != nil {
			return nil, err
		}
		debits.add(overpayment, txn.OverpaymentPortion)
	}
	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanCashLoanPortfolio)
		if err != nil {
			return nil, err
		}
		debits.add(portfolio, txn.PrincipalPortion)
	}
	if debits.isEmpty() {
		return nil, nil
	}

	fundSource, err := p.fundSourceAccount(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Debit, debits, fundSource), nil
}
