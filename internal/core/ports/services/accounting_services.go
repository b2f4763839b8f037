package services

import (
	"context"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// AccountingProcessor derives a balanced set of journal entries from one loan
// transaction snapshot. Implementations exist per accounting method (cash,
// accrual). Processors only build entries; posting is the facade's job.
type AccountingProcessor interface {
	// CreateJournalEntries maps the transaction to debit/credit entries.
	// A nil, nil return means the transaction type produces no postings.
	CreateJournalEntries(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error)

	// SkippedTransactionCount reports how many transactions were skipped
	// because their type is not recognised by this processor.
	SkippedTransactionCount() uint64
}

// AccountingSvcFacade is the entry point for posting loan lifecycle events to
// the general ledger.
type AccountingSvcFacade interface {
	// ProcessLoanTransaction selects the processor for the loan's accounting
	// rule, derives balanced entries and persists them atomically. Reversed
	// transactions short-circuit into a reversal of the prior posting.
	ProcessLoanTransaction(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error)

	// ReverseTransaction re-posts all entries of a prior transaction with
	// debit/credit sides swapped, tagged with a reversal reference.
	ReverseTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// FindEntries returns the journal entries posted for a transaction.
	FindEntries(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)
}
