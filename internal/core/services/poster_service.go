package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
	"github.com/microfin/accounting_core/internal/middleware"
)

var (
	// ErrUnbalancedEntries indicates a batch whose debits and credits do not
	// sum to the same amount per transaction.
	ErrUnbalancedEntries = errors.New("journal entries do not balance")
)

// JournalEntryPoster creates and persists journal entries. It enforces the
// branch-closure date check and the double-entry balance invariant, and
// persists each transaction's entries as one atomic batch so a mid-batch
// failure can never leave an unbalanced ledger behind.
type JournalEntryPoster struct {
	journalRepo portsrepo.JournalEntryRepository
	closureRepo portsrepo.ClosureRepository
}

// NewJournalEntryPoster creates a new JournalEntryPoster.
func NewJournalEntryPoster(journalRepo portsrepo.JournalEntryRepository, closureRepo portsrepo.ClosureRepository) *JournalEntryPoster {
	return &JournalEntryPoster{journalRepo: journalRepo, closureRepo: closureRepo}
}

// NewDebit builds (without persisting) one debit entry.
func (p *JournalEntryPoster) NewDebit(officeID, currencyCode string, account *domain.GLAccount, amount decimal.Decimal, date time.Time, transactionID string, entityType domain.EntityType, entityID string) domain.JournalEntry {
	return p.newEntry(domain.Debit, officeID, currencyCode, account, amount, date, transactionID, entityType, entityID)
}

// NewCredit builds (without persisting) one credit entry.
func (p *JournalEntryPoster) NewCredit(officeID, currencyCode string, account *domain.GLAccount, amount decimal.Decimal, date time.Time, transactionID string, entityType domain.EntityType, entityID string) domain.JournalEntry {
	return p.newEntry(domain.Credit, officeID, currencyCode, account, amount, date, transactionID, entityType, entityID)
}

func (p *JournalEntryPoster) newEntry(entryType domain.JournalEntryType, officeID, currencyCode string, account *domain.GLAccount, amount decimal.Decimal, date time.Time, transactionID string, entityType domain.EntityType, entityID string) domain.JournalEntry {
	now := time.Now().UTC()
	return domain.JournalEntry{
		EntryID:       uuid.NewString(),
		OfficeID:      officeID,
		GLAccountID:   account.GLAccountID,
		CurrencyCode:  currencyCode,
		TransactionID: transactionID,
		EntityType:    entityType,
		EntityID:      entityID,
		Type:          entryType,
		Amount:        amount,
		EntryDate:     domain.TruncateToDay(date),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// ValidatePostingDate fails with ErrBranchClosed when the date falls on or
// before the office's latest accounting closure.
func (p *JournalEntryPoster) ValidatePostingDate(ctx context.Context, officeID string, date time.Time) error {
	closureDate, err := p.closureRepo.FindLatestClosureDate(ctx, officeID)
	if err != nil {
		return fmt.Errorf("checking accounting closures for office %s: %w", officeID, err)
	}
	if closureDate != nil && !domain.TruncateToDay(date).After(domain.TruncateToDay(*closureDate)) {
		return fmt.Errorf("%w: office %s is closed through %s", apperrors.ErrBranchClosed, officeID, closureDate.Format("2006-01-02"))
	}
	return nil
}

// PostEntries validates and persists a batch of entries in one atomic write.
// The batch must balance per transaction id: sum(debits) == sum(credits).
func (p *JournalEntryPoster) PostEntries(ctx context.Context, entries []domain.JournalEntry) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(entries) == 0 {
		return nil
	}
	if err := validateBalanced(entries); err != nil {
		return err
	}
	for _, e := range entries {
		if err := p.ValidatePostingDate(ctx, e.OfficeID, e.EntryDate); err != nil {
			return err
		}
	}

	if err := p.journalRepo.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("persisting journal entries for transaction %s: %w", entries[0].TransactionID, err)
	}

	logger.Info("Journal entries posted",
		slog.String("transaction_id", entries[0].TransactionID),
		slog.Int("entry_count", len(entries)))
	return nil
}

// ReverseEntries posts a mirror image of a prior transaction's entries: same
// accounts and amounts, debit/credit sides swapped, each original entry
// linked to the entry that reverses it. A reversal is a posting like any
// other: when the original entry date falls inside a closed accounting
// period it is rejected with ErrBranchClosed.
func (p *JournalEntryPoster) ReverseEntries(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	originals, err := p.journalRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("loading entries for reversal of transaction %s: %w", transactionID, err)
	}
	if len(originals) == 0 {
		return nil, fmt.Errorf("%w: no journal entries for transaction %s", apperrors.ErrNotFound, transactionID)
	}

	now := time.Now().UTC()
	reversals := make([]domain.JournalEntry, 0, len(originals))
	reversalIDs := make(map[string]string, len(originals))
	for _, orig := range originals {
		if orig.Reversed {
			return nil, fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, transactionID)
		}
		if err := p.ValidatePostingDate(ctx, orig.OfficeID, orig.EntryDate); err != nil {
			return nil, err
		}
		side := domain.Credit
		if orig.Type == domain.Credit {
			side = domain.Debit
		}
		rev := orig
		rev.EntryID = uuid.NewString()
		rev.Type = side
		rev.Reversed = false
		rev.ReversalID = nil
		rev.Description = fmt.Sprintf("Reversal of entry %s", orig.EntryID)
		rev.CreatedAt = now
		rev.LastUpdatedAt = now
		reversals = append(reversals, rev)
		reversalIDs[orig.EntryID] = rev.EntryID
	}

	if err := p.journalRepo.SaveEntries(ctx, reversals); err != nil {
		return nil, fmt.Errorf("persisting reversal entries for transaction %s: %w", transactionID, err)
	}
	if err := p.journalRepo.MarkReversed(ctx, reversalIDs, "", now); err != nil {
		return nil, fmt.Errorf("marking entries reversed for transaction %s: %w", transactionID, err)
	}

	logger.Info("Journal entries reversed",
		slog.String("transaction_id", transactionID),
		slog.Int("entry_count", len(reversals)))
	return reversals, nil
}

// validateBalanced checks the double-entry invariant per transaction id.
func validateBalanced(entries []domain.JournalEntry) error {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive for account %s", apperrors.ErrValidation, e.GLAccountID)
		}
		if e.Type == domain.Debit {
			debits[e.TransactionID] = debits[e.TransactionID].Add(e.Amount)
		} else {
			credits[e.TransactionID] = credits[e.TransactionID].Add(e.Amount)
		}
	}
	for txnID, debitSum := range debits {
		if !debitSum.Equal(credits[txnID]) {
			return fmt.Errorf("%w: transaction %s has debits %s and credits %s",
				ErrUnbalancedEntries, txnID, debitSum.String(), credits[txnID].String())
		}
	}
	for txnID, creditSum := range credits {
		if _, ok := debits[txnID]; !ok {
			return fmt.Errorf("%w: transaction %s has credits %s and no debits",
				ErrUnbalancedEntries, txnID, creditSum.String())
		}
	}
	return nil
}
