package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		MappingRepo:  NewPgxMappingRepository(pool),
		JournalRepo:  NewPgxJournalEntryRepository(pool),
		ClosureRepo:  NewPgxClosureRepository(pool),
		BalanceRepo:  NewPgxBalanceHistoryRepository(pool),
		InterestRepo: NewPgxInterestPostingRepository(pool),
	}
}
