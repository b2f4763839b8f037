package services

import (
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// accountAmounts aggregates amounts per concrete GL account while preserving
// first-seen order. When several transaction components resolve to the same
// account their amounts merge into one journal line: financially they are a
// single balance change, and emitting one line per component would clutter
// the ledger. Insertion order is kept so that emitted entries are
// deterministic.
type accountAmounts struct {
	order    []string
	amounts  map[string]decimal.Decimal
	accounts map[string]*domain.GLAccount
}

func newAccountAmounts() *accountAmounts {
	return &accountAmounts{
		amounts:  make(map[string]decimal.Decimal),
		accounts: make(map[string]*domain.GLAccount),
	}
}

// add merges amount into the running total for the account. Zero and
// negative amounts are ignored; a component is only "present" when strictly
// positive.
func (a *accountAmounts) add(account *domain.GLAccount, amount decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}
	id := account.GLAccountID
	if _, seen := a.amounts[id]; !seen {
		a.order = append(a.order, id)
		a.accounts[id] = account
	}
	a.amounts[id] = a.amounts[id].Add(amount)
}

func (a *accountAmounts) isEmpty() bool {
	return len(a.order) == 0
}

// total sums all aggregated amounts; this is what the counter side of the
// posting must carry for the batch to balance.
func (a *accountAmounts) total() decimal.Decimal {
	sum := decimal.Zero
	for _, id := range a.order {
		sum = sum.Add(a.amounts[id])
	}
	return sum
}

// each walks the aggregated accounts in insertion order.
func (a *accountAmounts) each(fn func(account *domain.GLAccount, amount decimal.Decimal)) {
	for _, id := range a.order {
		fn(a.accounts[id], a.amounts[id])
	}
}

// mergeByAccountAndSide collapses a batch to one entry per (GL account, side),
// summing amounts and preserving first-seen order. A transaction assembled
// from several sub-batches can touch the same concrete account on the same
// side more than once; the ledger admits only one row per transaction,
// account and side.
func mergeByAccountAndSide(entries []domain.JournalEntry) []domain.JournalEntry {
	if len(entries) < 2 {
		return entries
	}
	type postingKey struct {
		glAccountID string
		side        domain.JournalEntryType
	}
	index := make(map[postingKey]int, len(entries))
	merged := make([]domain.JournalEntry, 0, len(entries))
	for _, e := range entries {
		key := postingKey{glAccountID: e.GLAccountID, side: e.Type}
		if i, seen := index[key]; seen {
			merged[i].Amount = merged[i].Amount.Add(e.Amount)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, e)
	}
	return merged
}
