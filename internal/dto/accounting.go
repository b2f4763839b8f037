package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
)

// ChargePaymentDTO is one charge's share of a transaction.
type ChargePaymentDTO struct {
	ChargeID  string          `json:"chargeID" binding:"required"`
	IsPenalty bool            `json:"isPenalty"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// LoanDTO carries the loan-level facts needed to post a transaction.
type LoanDTO struct {
	LoanID                string  `json:"loanID" binding:"required"`
	ProductID             string  `json:"productID" binding:"required"`
	OfficeID              string  `json:"officeID" binding:"required"`
	CurrencyCode          string  `json:"currencyCode" binding:"required,len=3"`
	AccountingRule        int     `json:"accountingRule" binding:"required"`
	IsChargedOff          bool    `json:"isChargedOff"`
	IsFraud               bool    `json:"isFraud"`
	ChargeOffReasonID     *string `json:"chargeOffReasonID,omitempty"`
	FeeIncomeOnCollection bool    `json:"feeIncomeOnCollection"`
}

// LoanTransactionDTO is the monetary breakdown of one loan transaction.
type LoanTransactionDTO struct {
	TransactionID string    `json:"transactionID" binding:"required"`
	Type          int       `json:"type" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	PaymentTypeID *string   `json:"paymentTypeID,omitempty"`

	Amount             decimal.Decimal `json:"amount"`
	PrincipalPortion   decimal.Decimal `json:"principalPortion"`
	InterestPortion    decimal.Decimal `json:"interestPortion"`
	FeesPortion        decimal.Decimal `json:"feesPortion"`
	PenaltiesPortion   decimal.Decimal `json:"penaltiesPortion"`
	OverpaymentPortion decimal.Decimal `json:"overpaymentPortion"`

	FeePayments     []ChargePaymentDTO `json:"feePayments,omitempty"`
	PenaltyPayments []ChargePaymentDTO `json:"penaltyPayments,omitempty"`

	PrincipalCredited decimal.Decimal `json:"principalCredited"`
	FeeCredited       decimal.Decimal `json:"feeCredited"`
	PenaltyCredited   decimal.Decimal `json:"penaltyCredited"`

	AdjustedChargeID        *string `json:"adjustedChargeID,omitempty"`
	AdjustedChargeIsPenalty bool    `json:"adjustedChargeIsPenalty"`

	Reversed             bool `json:"reversed"`
	IsAccountTransfer    bool `json:"isAccountTransfer"`
	IsLoanToLoanTransfer bool `json:"isLoanToLoanTransfer"`
}

// ProcessTransactionRequest posts one loan transaction to the ledger.
type ProcessTransactionRequest struct {
	Loan        LoanDTO            `json:"loan" binding:"required"`
	Transaction LoanTransactionDTO `json:"transaction" binding:"required"`
}

// JournalEntryResponse is one posted journal entry line.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	OfficeID      string          `json:"officeID"`
	GLAccountID   string          `json:"glAccountID"`
	CurrencyCode  string          `json:"currencyCode"`
	TransactionID string          `json:"transactionID"`
	EntityType    string          `json:"entityType"`
	EntityID      string          `json:"entityID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	EntryDate     time.Time       `json:"entryDate"`
	Reversed      bool            `json:"reversed"`
	ReversalID    *string         `json:"reversalID,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// ToLoan converts the DTO to its domain form.
func (d LoanDTO) ToLoan() domain.Loan {
	return domain.Loan{
		LoanID:                d.LoanID,
		ProductID:             d.ProductID,
		OfficeID:              d.OfficeID,
		CurrencyCode:          d.CurrencyCode,
		AccountingRule:        domain.AccountingRuleType(d.AccountingRule),
		IsChargedOff:          d.IsChargedOff,
		IsFraud:               d.IsFraud,
		ChargeOffReasonID:     d.ChargeOffReasonID,
		FeeIncomeOnCollection: d.FeeIncomeOnCollection,
	}
}

// ToLoanTransaction converts the DTO to its domain form. The integer type
// code maps through LoanTransactionTypeFromValue, so unknown codes arrive at
// the processor as LoanTxnInvalid rather than failing here.
func (d LoanTransactionDTO) ToLoanTransaction(officeID string) domain.LoanTransaction {
	return domain.LoanTransaction{
		TransactionID:           d.TransactionID,
		OfficeID:                officeID,
		Type:                    domain.LoanTransactionTypeFromValue(d.Type),
		Date:                    d.Date,
		PaymentTypeID:           d.PaymentTypeID,
		Amount:                  d.Amount,
		PrincipalPortion:        d.PrincipalPortion,
		InterestPortion:         d.InterestPortion,
		FeesPortion:             d.FeesPortion,
		PenaltiesPortion:        d.PenaltiesPortion,
		OverpaymentPortion:      d.OverpaymentPortion,
		FeePayments:             toChargePayments(d.FeePayments),
		PenaltyPayments:         toChargePayments(d.PenaltyPayments),
		PrincipalCredited:       d.PrincipalCredited,
		FeeCredited:             d.FeeCredited,
		PenaltyCredited:         d.PenaltyCredited,
		AdjustedChargeID:        d.AdjustedChargeID,
		AdjustedChargeIsPenalty: d.AdjustedChargeIsPenalty,
		Reversed:                d.Reversed,
		IsAccountTransfer:       d.IsAccountTransfer,
		IsLoanToLoanTransfer:    d.IsLoanToLoanTransfer,
	}
}

func toChargePayments(dtos []ChargePaymentDTO) []domain.ChargePayment {
	if len(dtos) == 0 {
		return nil
	}
	payments := make([]domain.ChargePayment, len(dtos))
	for i, d := range dtos {
		payments[i] = domain.ChargePayment{ChargeID: d.ChargeID, IsPenalty: d.IsPenalty, Amount: d.Amount}
	}
	return payments
}

// FromJournalEntry converts a domain entry to its response form.
func FromJournalEntry(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		OfficeID:      e.OfficeID,
		GLAccountID:   e.GLAccountID,
		CurrencyCode:  e.CurrencyCode,
		TransactionID: e.TransactionID,
		EntityType:    string(e.EntityType),
		EntityID:      e.EntityID,
		Type:          string(e.Type),
		Amount:        e.Amount,
		EntryDate:     e.EntryDate,
		Reversed:      e.Reversed,
		ReversalID:    e.ReversalID,
		Description:   e.Description,
	}
}

// FromJournalEntries converts a batch of domain entries.
func FromJournalEntries(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = FromJournalEntry(e)
	}
	return responses
}
