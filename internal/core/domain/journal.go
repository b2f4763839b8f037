package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryType indicates whether an entry is a Debit or a Credit.
type JournalEntryType string

const (
	Debit  JournalEntryType = "DEBIT"
	Credit JournalEntryType = "CREDIT"
)

// EntityType tags which product family a journal entry originated from.
type EntityType string

const (
	EntityLoan    EntityType = "LOAN"
	EntitySavings EntityType = "SAVINGS"
	EntityShares  EntityType = "SHARES"
)

// JournalEntry is one debit or credit line against a GL account. Entries are
// immutable once created; corrections happen through reversals, never
// updates. For any single business transaction the sum of debit amounts must
// equal the sum of credit amounts.
type JournalEntry struct {
	EntryID       string           `json:"entryID"`
	OfficeID      string           `json:"officeID"`
	GLAccountID   string           `json:"glAccountID"`
	CurrencyCode  string           `json:"currencyCode"`
	TransactionID string           `json:"transactionID"` // external business transaction id
	EntityType    EntityType       `json:"entityType"`
	EntityID      string           `json:"entityID"` // loan or savings account id
	Type          JournalEntryType `json:"type"`
	Amount        decimal.Decimal  `json:"amount"` // always positive; the side is carried by Type
	EntryDate     time.Time        `json:"entryDate"`
	Reversed      bool             `json:"reversed"`
	ReversalID    *string          `json:"reversalID,omitempty"` // id of the entry that reverses this one
	Description   string           `json:"description"`
	AuditFields
}

// GLClosure marks an accounting period as closed for an office. Entries dated
// on or before the latest closure date must be rejected.
type GLClosure struct {
	ClosureID   string    `json:"closureID"`
	OfficeID    string    `json:"officeID"`
	ClosingDate time.Time `json:"closingDate"`
	Comments    string    `json:"comments"`
	AuditFields
}
