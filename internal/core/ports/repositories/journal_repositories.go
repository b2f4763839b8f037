package repositories

import (
	"context"
	"time"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveEntries persists a batch of journal entries atomically: either the
	// whole set lands or none of it does. A duplicate external transaction id
	// must surface as apperrors.ErrDuplicate.
	SaveEntries(ctx context.Context, entries []domain.JournalEntry) error

	// MarkReversed flags the given entries as reversed, linking each to the
	// entry that reverses it.
	MarkReversed(ctx context.Context, reversalIDs map[string]string, updatedBy string, updatedAt time.Time) error
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindByTransactionID retrieves all entries posted for an external
	// business transaction, in insertion order.
	FindByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)
}

// JournalEntryRepository combines entry reads and writes.
type JournalEntryRepository interface {
	JournalEntryWriter
	JournalEntryReader
}

// ClosureRepository reads accounting-period closures per office.
type ClosureRepository interface {
	// FindLatestClosureDate returns the most recent closing date for the
	// office, or nil when the office has never been closed.
	FindLatestClosureDate(ctx context.Context, officeID string) (*time.Time, error)
}
