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

// AccrualAccountingProcessor maps loan transactions to balanced journal
// entries under accrual accounting: interest, fees and penalties are
// recognised as receivables before collection. Account selection branches on
// the transaction type first and on the loan's charge-off and fraud status
// second. Entries for one transaction are built fully in memory and returned
// as a single batch; the processor never persists anything itself.
type AccrualAccountingProcessor struct {
	resolver *GLAccountResolver
	poster   *JournalEntryPoster
	skipped  atomic.Uint64
}

// NewAccrualAccountingProcessor creates a new AccrualAccountingProcessor.
func NewAccrualAccountingProcessor(resolver *GLAccountResolver, poster *JournalEntryPoster) *AccrualAccountingProcessor {
	return &AccrualAccountingProcessor{resolver: resolver, poster: poster}
}

var _ portssvc.AccountingProcessor = (*AccrualAccountingProcessor)(nil)

// SkippedTransactionCount reports how many transactions were skipped because
// their type is not recognised.
func (p *AccrualAccountingProcessor) SkippedTransactionCount() uint64 {
	return p.skipped.Load()
}

// CreateJournalEntries implements portssvc.AccountingProcessor. The final
// merge pass collapses sub-batches that hit the same account and side into
// one entry per posting key.
func (p *AccrualAccountingProcessor) CreateJournalEntries(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	entries, err := p.entriesForTransaction(ctx, loan, txn)
	if err != nil {
		return nil, err
	}
	return mergeByAccountAndSide(entries), nil
}

func (p *AccrualAccountingProcessor) entriesForTransaction(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	switch txn.Type {
	case domain.LoanTxnDisbursement:
		return p.entriesForDisbursement(ctx, loan, txn)
	case domain.LoanTxnRepayment, domain.LoanTxnRepaymentAtDisbursement, domain.LoanTxnChargePayment:
		return p.entriesForRepayment(ctx, loan, txn, false, nil)
	case domain.LoanTxnRefund, domain.LoanTxnRefundForActiveLoan,
		domain.LoanTxnMerchantIssuedRefund, domain.LoanTxnPayoutRefund:
		// Money flowing back out: same account selection, sides swapped.
		return p.entriesForRepayment(ctx, loan, txn, true, nil)
	case domain.LoanTxnWriteOff:
		return p.entriesForWriteOff(ctx, loan, txn)
	case domain.LoanTxnWaiveInterest:
		return p.entriesForInterestWaiver(ctx, loan, txn)
	case domain.LoanTxnWaiveCharges:
		return p.entriesForChargeWaiver(ctx, loan, txn)
	case domain.LoanTxnRecoveryRepayment:
		return p.entriesForRecovery(ctx, loan, txn)
	case domain.LoanTxnAccrual:
		return p.entriesForAccrual(ctx, loan, txn, false)
	case domain.LoanTxnAccrualAdjustment:
		return p.entriesForAccrual(ctx, loan, txn, true)
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

// loanAccount resolves one regular loan-product role.
func (p *AccrualAccountingProcessor) loanAccount(ctx context.Context, loan domain.Loan, role domain.LoanAccrualRole) (*domain.GLAccount, error) {
	return p.resolver.Resolve(ctx, loan.ProductID, domain.ProductTypeLoan, role.Value())
}

// fundSourceAccount resolves the counter account for money movements: the
// payment-type-specific fund source, unless the transaction is part of a
// transfer, in which case the financial-activity transfer account replaces
// it.
func (p *AccrualAccountingProcessor) fundSourceAccount(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*domain.GLAccount, error) {
	if txn.IsLoanToLoanTransfer {
		return p.resolver.ResolveFinancialActivityAccount(ctx, domain.FinancialActivityAssetTransfer)
	}
	if txn.IsAccountTransfer {
		return p.resolver.ResolveFinancialActivityAccount(ctx, domain.FinancialActivityLiabilityTransfer)
	}
	return p.resolver.ResolveWithPaymentType(ctx, loan.ProductID, domain.ProductTypeLoan, domain.LoanAccrualFundSource.Value(), txn.PaymentTypeID)
}

// buildEntries turns aggregated component amounts plus one counter account
// into a balanced batch: components on componentSide, the counter account on
// the opposite side carrying the components' total.
func (p *AccrualAccountingProcessor) buildEntries(loan domain.Loan, txn domain.LoanTransaction, componentSide domain.JournalEntryType, components *accountAmounts, counter *domain.GLAccount) []domain.JournalEntry {
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

// addChargeComponents spreads a fee/penalty portion over per-charge income
// accounts when a breakdown is available, falling back to the product-level
// role for the whole portion otherwise.
func (p *AccrualAccountingProcessor) addChargeComponents(ctx context.Context, loan domain.Loan, portion decimal.Decimal, payments []domain.ChargePayment, fallbackRole domain.LoanAccrualRole, target *accountAmounts) error {
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

// entriesForDisbursement debits the loan portfolio (and the overpayment
// account for any portion that settles an existing overpayment) against the
// fund source.
func (p *AccrualAccountingProcessor) entriesForDisbursement(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	principal := txn.PrincipalPortion
	if principal.LessThanOrEqual(decimal.Zero) && txn.OverpaymentPortion.LessThanOrEqual(decimal.Zero) {
		principal = txn.Amount
	}
	if principal.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanAccrualLoanPortfolio)
		if err != nil {
			return nil, err
		}
		debits.add(portfolio, principal)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanAccrualOverpayment)
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

// entriesForRepayment covers repayments and their money-out mirror images
// (refunds). Per present component one account is selected; components
// resolving to the same concrete account are merged. On a charged-off loan
// the receivable/portfolio accounts are replaced by the charge-off expense
// and charge-off income accounts, with the fraud flag switching the expense
// account. debitOverride, when set, replaces the fund source (write-offs).
func (p *AccrualAccountingProcessor) entriesForRepayment(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction, moneyOut bool, debitOverride *domain.GLAccount) ([]domain.JournalEntry, error) {
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

func (p *AccrualAccountingProcessor) repaymentComponents(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*accountAmounts, error) {
	components := newAccountAmounts()

	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanAccrualLoanPortfolio)
		if err != nil {
			return nil, err
		}
		components.add(portfolio, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestReceivable)
		if err != nil {
			return nil, err
		}
		components.add(receivable, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		if loan.FeeIncomeOnCollection {
			if err := p.addChargeComponents(ctx, loan, txn.FeesPortion, txn.FeePayments, domain.LoanAccrualIncomeFromFees, components); err != nil {
				return nil, err
			}
		} else {
			receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualFeesReceivable)
			if err != nil {
				return nil, err
			}
			components.add(receivable, txn.FeesPortion)
		}
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		if loan.FeeIncomeOnCollection {
			if err := p.addChargeComponents(ctx, loan, txn.PenaltiesPortion, txn.PenaltyPayments, domain.LoanAccrualIncomeFromPenalties, components); err != nil {
				return nil, err
			}
		} else {
			receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualPenaltiesReceivable)
			if err != nil {
				return nil, err
			}
			components.add(receivable, txn.PenaltiesPortion)
		}
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanAccrualOverpayment)
		if err != nil {
			return nil, err
		}
		components.add(overpayment, txn.OverpaymentPortion)
	}
	return components, nil
}

func (p *AccrualAccountingProcessor) chargedOffRepaymentComponents(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) (*accountAmounts, error) {
	components := newAccountAmounts()

	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		expense, err := p.resolver.ResolveChargeOffExpense(ctx, loan)
		if err != nil {
			return nil, err
		}
		components.add(expense, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromChargeOffInterest)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromChargeOffFees)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.FeesPortion)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromChargeOffPenalty)
		if err != nil {
			return nil, err
		}
		components.add(income, txn.PenaltiesPortion)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanAccrualOverpayment)
		if err != nil {
			return nil, err
		}
		components.add(overpayment, txn.OverpaymentPortion)
	}
	return components, nil
}

// entriesForWriteOff credits the outstanding components and debits the whole
// loss against the losses-written-off account.
func (p *AccrualAccountingProcessor) entriesForWriteOff(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	losses, err := p.loanAccount(ctx, loan, domain.LoanAccrualLossesWrittenOff)
	if err != nil {
		return nil, err
	}
	return p.entriesForRepayment(ctx, loan, txn, false, losses)
}

// entriesForInterestWaiver reverses recognised interest income against the
// interest receivable it will never collect.
func (p *AccrualAccountingProcessor) entriesForInterestWaiver(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	waived := txn.InterestPortion
	if waived.LessThanOrEqual(decimal.Zero) {
		waived = txn.Amount
	}
	if waived.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestReceivable)
	if err != nil {
		return nil, err
	}
	income, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestOnLoans)
	if err != nil {
		return nil, err
	}
	credits := newAccountAmounts()
	credits.add(receivable, waived)
	return p.buildEntries(loan, txn, domain.Credit, credits, income), nil
}

// entriesForChargeWaiver reverses fee/penalty income against the matching
// receivables.
func (p *AccrualAccountingProcessor) entriesForChargeWaiver(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry

	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualFeesReceivable)
		if err != nil {
			return nil, err
		}
		income := newAccountAmounts()
		if err := p.addChargeComponents(ctx, loan, txn.FeesPortion, txn.FeePayments, domain.LoanAccrualIncomeFromFees, income); err != nil {
			return nil, err
		}
		entries = append(entries, p.buildEntries(loan, txn, domain.Debit, income, receivable)...)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualPenaltiesReceivable)
		if err != nil {
			return nil, err
		}
		income := newAccountAmounts()
		if err := p.addChargeComponents(ctx, loan, txn.PenaltiesPortion, txn.PenaltyPayments, domain.LoanAccrualIncomeFromPenalties, income); err != nil {
			return nil, err
		}
		entries = append(entries, p.buildEntries(loan, txn, domain.Debit, income, receivable)...)
	}
	return entries, nil
}

// entriesForRecovery posts a recovery on a written-off loan: one debit to the
// fund source, one credit to recovery income.
func (p *AccrualAccountingProcessor) entriesForRecovery(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromRecovery)
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

// entriesForAccrual recognises receivables against income per component.
// An accrual adjustment posts the same pairs with the sides swapped.
func (p *AccrualAccountingProcessor) entriesForAccrual(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction, adjustment bool) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry

	receivableSide := domain.Debit
	if adjustment {
		receivableSide = domain.Credit
	}

	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestReceivable)
		if err != nil {
			return nil, err
		}
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestOnLoans)
		if err != nil {
			return nil, err
		}
		side := newAccountAmounts()
		side.add(receivable, txn.InterestPortion)
		entries = append(entries, p.buildEntries(loan, txn, receivableSide, side, income)...)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualFeesReceivable)
		if err != nil {
			return nil, err
		}
		income := newAccountAmounts()
		if err := p.addChargeComponents(ctx, loan, txn.FeesPortion, txn.FeePayments, domain.LoanAccrualIncomeFromFees, income); err != nil {
			return nil, err
		}
		// Income side carries the breakdown; the receivable side aggregates.
		incomeSide := domain.Credit
		if adjustment {
			incomeSide = domain.Debit
		}
		entries = append(entries, p.buildEntries(loan, txn, incomeSide, income, receivable)...)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualPenaltiesReceivable)
		if err != nil {
			return nil, err
		}
		income := newAccountAmounts()
		if err := p.addChargeComponents(ctx, loan, txn.PenaltiesPortion, txn.PenaltyPayments, domain.LoanAccrualIncomeFromPenalties, income); err != nil {
			return nil, err
		}
		incomeSide := domain.Credit
		if adjustment {
			incomeSide = domain.Debit
		}
		entries = append(entries, p.buildEntries(loan, txn, incomeSide, income, receivable)...)
	}
	return entries, nil
}

// entriesForGoodwillCredit handles a goodwill credit. On a charged-off loan
// the principal portion is recognised as recovery income and the charge
// components as goodwill-credit income, all debited against the goodwill
// credit expense account. On a live loan it behaves as a regular repayment.
func (p *AccrualAccountingProcessor) entriesForGoodwillCredit(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	if !loan.IsChargedOff {
		return p.entriesForRepayment(ctx, loan, txn, false, nil)
	}

	credits := newAccountAmounts()
	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		recovery, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromRecovery)
		if err != nil {
			return nil, err
		}
		credits.add(recovery, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromGoodwillCreditInterest)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromGoodwillCreditFees)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.FeesPortion)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromGoodwillCreditPenalty)
		if err != nil {
			return nil, err
		}
		credits.add(income, txn.PenaltiesPortion)
	}
	if credits.isEmpty() {
		return nil, nil
	}

	goodwill, err := p.loanAccount(ctx, loan, domain.LoanAccrualGoodwillCredit)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Credit, credits, goodwill), nil
}

// entriesForChargeRefund refunds a collected charge: the charge's income
// account is debited against the fund source for the refund amount, on top
// of the regular money-out entries for any other refunded portions.
func (p *AccrualAccountingProcessor) entriesForChargeRefund(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	fallbackRole := domain.LoanAccrualIncomeFromFees
	if txn.AdjustedChargeIsPenalty {
		fallbackRole = domain.LoanAccrualIncomeFromPenalties
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

	// Any principal/interest portions travelling with the refund follow the
	// regular money-out repayment routing.
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

// entriesForChargeback reconstructs the deltas between what was credited and
// what has since been repaid: portfolio, income and overpayment are debited
// per component and the fund source is credited for the chargeback total.
func (p *AccrualAccountingProcessor) entriesForChargeback(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	if txn.PrincipalCredited.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanAccrualLoanPortfolio)
		if err != nil {
			return nil, err
		}
		debits.add(portfolio, txn.PrincipalCredited)
	}
	if txn.FeeCredited.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromFees)
		if err != nil {
			return nil, err
		}
		debits.add(income, txn.FeeCredited)
	}
	if txn.PenaltyCredited.GreaterThan(decimal.Zero) {
		income, err := p.loanAccount(ctx, loan, domain.LoanAccrualIncomeFromPenalties)
		if err != nil {
			return nil, err
		}
		debits.add(income, txn.PenaltyCredited)
	}
	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanAccrualOverpayment)
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

// entriesForChargeAdjustment mirrors the repayment accounts per component on
// the credit side and debits the adjustment total against the income account
// of the adjusted charge.
func (p *AccrualAccountingProcessor) entriesForChargeAdjustment(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
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

	fallbackRole := domain.LoanAccrualIncomeFromFees
	if txn.AdjustedChargeIsPenalty {
		fallbackRole = domain.LoanAccrualIncomeFromPenalties
	}
	income, err := p.resolver.ResolveChargeAccount(ctx, loan.ProductID, domain.ProductTypeLoan, fallbackRole.Value(), txn.AdjustedChargeID)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Credit, components, income), nil
}

// entriesForChargeOffTransition moves the outstanding balance off the books:
// portfolio and receivables are credited and the whole amount is debited to
// the charge-off expense account, with a reason-specific mapping taking
// priority over the generic fraud/non-fraud role.
func (p *AccrualAccountingProcessor) entriesForChargeOffTransition(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	credits := newAccountAmounts()

	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanAccrualLoanPortfolio)
		if err != nil {
			return nil, err
		}
		credits.add(portfolio, txn.PrincipalPortion)
	}
	if txn.InterestPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualInterestReceivable)
		if err != nil {
			return nil, err
		}
		credits.add(receivable, txn.InterestPortion)
	}
	if txn.FeesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualFeesReceivable)
		if err != nil {
			return nil, err
		}
		credits.add(receivable, txn.FeesPortion)
	}
	if txn.PenaltiesPortion.GreaterThan(decimal.Zero) {
		receivable, err := p.loanAccount(ctx, loan, domain.LoanAccrualPenaltiesReceivable)
		if err != nil {
			return nil, err
		}
		credits.add(receivable, txn.PenaltiesPortion)
	}
	if credits.isEmpty() {
		return nil, nil
	}

	expense, err := p.resolver.ResolveChargeOffExpense(ctx, loan)
	if err != nil {
		return nil, err
	}
	return p.buildEntries(loan, txn, domain.Credit, credits, expense), nil
}

// entriesForCreditBalanceRefund returns an overpayment (and any principal
// portion) to the client: the liability is debited, the fund source credited.
func (p *AccrualAccountingProcessor) entriesForCreditBalanceRefund(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	debits := newAccountAmounts()

	if txn.OverpaymentPortion.GreaterThan(decimal.Zero) {
		overpayment, err := p.loanAccount(ctx, loan, domain.LoanAccrualOverpayment)
		if err != nil {
			return nil, err
		}
		debits.add(overpayment, txn.OverpaymentPortion)
	}
	if txn.PrincipalPortion.GreaterThan(decimal.Zero) {
		portfolio, err := p.loanAccount(ctx, loan, domain.LoanAccrualLoanPortfolio)
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
