package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/middleware"
)

// AccountingService is the posting entry point for loan lifecycle events. It
// picks the processor matching the loan product's accounting rule, lets it
// derive a balanced entry batch and posts the batch atomically through the
// JournalEntryPoster.
type AccountingService struct {
	accrualProcessor portssvc.AccountingProcessor
	cashProcessor    portssvc.AccountingProcessor
	poster           *JournalEntryPoster
	journalReader    portsrepo.JournalEntryReader
}

// NewAccountingService creates a new AccountingService.
func NewAccountingService(accrualProcessor, cashProcessor portssvc.AccountingProcessor, poster *JournalEntryPoster, journalReader portsrepo.JournalEntryReader) *AccountingService {
	return &AccountingService{
		accrualProcessor: accrualProcessor,
		cashProcessor:    cashProcessor,
		poster:           poster,
		journalReader:    journalReader,
	}
}

var _ portssvc.AccountingSvcFacade = (*AccountingService)(nil)

// ProcessLoanTransaction implements portssvc.AccountingSvcFacade.
func (s *AccountingService) ProcessLoanTransaction(ctx context.Context, loan domain.Loan, txn domain.LoanTransaction) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if txn.Reversed {
		return s.ReverseTransaction(ctx, txn.TransactionID)
	}

	var processor portssvc.AccountingProcessor
	switch loan.AccountingRule {
	case domain.AccountingRuleNone:
		logger.Debug("Accounting disabled for product, skipping transaction",
			slog.String("loan_id", loan.LoanID),
			slog.String("transaction_id", txn.TransactionID))
		return nil, nil
	case domain.AccountingRuleCash:
		processor = s.cashProcessor
	case domain.AccountingRuleAccrualPeriodic, domain.AccountingRuleAccrualUpfront:
		processor = s.accrualProcessor
	default:
		return nil, fmt.Errorf("%w: unknown accounting rule %d on loan %s", apperrors.ErrConfiguration, loan.AccountingRule, loan.LoanID)
	}

	entries, err := processor.CreateJournalEntries(ctx, loan, txn)
	if err != nil {
		return nil, fmt.Errorf("deriving journal entries for transaction %s: %w", txn.TransactionID, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	if err := s.poster.PostEntries(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReverseTransaction implements portssvc.AccountingSvcFacade.
func (s *AccountingService) ReverseTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	return s.poster.ReverseEntries(ctx, transactionID)
}

// FindEntries implements portssvc.AccountingSvcFacade.
func (s *AccountingService) FindEntries(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalReader.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("loading journal entries for transaction %s: %w", transactionID, err)
	}
	return entries, nil
}
