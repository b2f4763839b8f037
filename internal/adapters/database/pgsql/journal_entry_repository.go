package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

const pgUniqueViolation = "23505"

type PgxJournalEntryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalEntryRepository creates a new repository for journal entries.
func NewPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepository {
	return &PgxJournalEntryRepository{pool: pool}
}

// SaveEntries persists a batch of journal entries inside one DB transaction so
// a partial batch can never land. A unique violation on the posting key maps
// to apperrors.ErrDuplicate.
func (r *PgxJournalEntryRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	query := `
		INSERT INTO acc_gl_journal_entry (entry_id, office_id, gl_account_id, currency_code, transaction_id, entity_type, entity_id, type, amount, entry_date, reversed, reversal_id, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, e := range entries {
		batch.Queue(query,
			e.EntryID,
			e.OfficeID,
			e.GLAccountID,
			e.CurrencyCode,
			e.TransactionID,
			e.EntityType,
			e.EntityID,
			e.Type,
			e.Amount,
			e.EntryDate,
			e.Reversed,
			e.ReversalID,
			e.Description,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: journal entries already exist for transaction %s", apperrors.ErrDuplicate, entries[0].TransactionID)
		}
		return fmt.Errorf("failed to execute entry batch for transaction %s: %w", entries[0].TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entries for transaction %s: %w", entries[0].TransactionID, err)
	}
	return nil
}

// MarkReversed flags original entries as reversed, linking each to the entry
// that reverses it, inside one DB transaction.
func (r *PgxJournalEntryRepository) MarkReversed(ctx context.Context, reversalIDs map[string]string, updatedBy string, updatedAt time.Time) error {
	if len(reversalIDs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	query := `
		UPDATE acc_gl_journal_entry
		SET reversed = TRUE, reversal_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	for entryID, reversalID := range reversalIDs {
		batch.Queue(query, entryID, reversalID, updatedAt, updatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to mark entries reversed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reversal flags: %w", err)
	}
	return nil
}

// FindByTransactionID retrieves all entries for a business transaction in
// insertion order.
func (r *PgxJournalEntryRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, office_id, gl_account_id, currency_code, transaction_id, entity_type, entity_id, type, amount, entry_date, reversed, reversal_id, description, created_at, created_by, last_updated_at, last_updated_by
		FROM acc_gl_journal_entry
		WHERE transaction_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		var e domain.JournalEntry
		err := row.Scan(
			&e.EntryID,
			&e.OfficeID,
			&e.GLAccountID,
			&e.CurrencyCode,
			&e.TransactionID,
			&e.EntityType,
			&e.EntityID,
			&e.Type,
			&e.Amount,
			&e.EntryDate,
			&e.Reversed,
			&e.ReversalID,
			&e.Description,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries for transaction %s: %w", transactionID, err)
	}
	return entries, nil
}
