package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/middleware"
)

// InterestEngineService orchestrates interest calculation and the
// accrual/posting history for savings-like accounts. Strategies themselves
// are pure; everything stateful (balance history, posting rows, GL entries)
// lives here.
type InterestEngineService struct {
	balanceRepo       portsrepo.BalanceHistoryProvider
	postingRepo       portsrepo.InterestPostingRepository
	resolver          *GLAccountResolver
	poster            *JournalEntryPoster
	calcCtx           interest.CalculationContext
	postingPeriodDays int
}

// NewInterestEngineService creates a new InterestEngineService.
// postingPeriodDays is the number of days after which accrued interest
// becomes due for posting.
func NewInterestEngineService(balanceRepo portsrepo.BalanceHistoryProvider, postingRepo portsrepo.InterestPostingRepository, resolver *GLAccountResolver, poster *JournalEntryPoster, calcCtx interest.CalculationContext, postingPeriodDays int) *InterestEngineService {
	return &InterestEngineService{
		balanceRepo:       balanceRepo,
		postingRepo:       postingRepo,
		resolver:          resolver,
		poster:            poster,
		calcCtx:           calcCtx,
		postingPeriodDays: postingPeriodDays,
	}
}

var _ portssvc.InterestEngine = (*InterestEngineService)(nil)

// CalculateInterest implements portssvc.InterestEngine. A request carrying
// StrategyInvalid yields zero with a warning rather than an error, since the
// code may have been written by a newer version.
func (s *InterestEngineService) CalculateInterest(ctx context.Context, req portssvc.CalculateInterestRequest) (domain.Money, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.StrategyType == domain.StrategyInvalid {
		logger.Warn("Unrecognized interest calculation strategy, no calculation performed",
			slog.String("account_id", req.AccountID))
		return domain.ZeroMoney(req.Currency), nil
	}

	strategy, err := interest.NewStrategy(req.StrategyType, s.calcCtx, req.StrategyConfig)
	if err != nil {
		return domain.Money{}, err
	}

	data, err := s.balanceRepo.FindBalanceData(ctx, req.AccountID, req.AccountType, req.FromDate, req.ToDate)
	if err != nil {
		return domain.Money{}, fmt.Errorf("loading balance history for account %s: %w", req.AccountID, err)
	}

	if !strategy.IsEligibleForInterestCalculation(data.AverageBalance(), req.MinimumBalance) {
		logger.Debug("Account balance below interest eligibility threshold",
			slog.String("account_id", req.AccountID))
		return domain.ZeroMoney(req.Currency), nil
	}

	amount, err := strategy.CalculateInterest(req.Currency, data, req.AnnualRate, req.DaysInYear)
	if err != nil {
		return domain.Money{}, fmt.Errorf("calculating interest for account %s: %w", req.AccountID, err)
	}
	return amount, nil
}

// ProcessAccruals implements portssvc.InterestEngine. The accrual window
// starts the day after the last recorded accrual (or at req.FromDate when no
// history exists) and ends at asOf.
func (s *InterestEngineService) ProcessAccruals(ctx context.Context, req portssvc.CalculateInterestRequest, asOf time.Time) (domain.Money, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from := domain.TruncateToDay(req.FromDate)
	lastAccrued, err := s.postingRepo.FindLastPostingDate(ctx, req.AccountID, req.AccountType, domain.PostingAccrual)
	if err != nil {
		return domain.Money{}, fmt.Errorf("loading last accrual date for account %s: %w", req.AccountID, err)
	}
	if lastAccrued != nil {
		from = domain.TruncateToDay(*lastAccrued).AddDate(0, 0, 1)
	}

	to := domain.TruncateToDay(asOf)
	if to.Before(from) {
		return domain.ZeroMoney(req.Currency), nil
	}

	req.FromDate = from
	req.ToDate = to
	amount, err := s.CalculateInterest(ctx, req)
	if err != nil {
		return domain.Money{}, err
	}
	if amount.IsZero() {
		return amount, nil
	}

	now := time.Now().UTC()
	posting := domain.InterestPosting{
		PostingID:    uuid.NewString(),
		AccountID:    req.AccountID,
		AccountType:  req.AccountType,
		FromDate:     from,
		ToDate:       to,
		Amount:       amount.Amount,
		CurrencyCode: req.Currency.CurrencyCode,
		PostingType:  domain.PostingAccrual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.postingRepo.SavePosting(ctx, posting); err != nil {
		return domain.Money{}, fmt.Errorf("recording interest accrual for account %s: %w", req.AccountID, err)
	}

	logger.Info("Interest accrued",
		slog.String("account_id", req.AccountID),
		slog.String("amount", amount.String()),
		slog.Time("from", from),
		slog.Time("to", to))
	return amount, nil
}

// GetAccruedInterest implements portssvc.InterestEngine: total accrued minus
// total already posted, as of the given date.
func (s *InterestEngineService) GetAccruedInterest(ctx context.Context, accountID string, accountType domain.EntityType, currency domain.Currency, asOf time.Time) (domain.Money, error) {
	accrued, err := s.postingRepo.SumAccrued(ctx, accountID, accountType, domain.PostingAccrual, asOf)
	if err != nil {
		return domain.Money{}, fmt.Errorf("summing accrued interest for account %s: %w", accountID, err)
	}
	posted, err := s.postingRepo.SumAccrued(ctx, accountID, accountType, domain.PostingPosted, asOf)
	if err != nil {
		return domain.Money{}, fmt.Errorf("summing posted interest for account %s: %w", accountID, err)
	}
	return domain.MoneyOf(currency, accrued.Sub(posted)), nil
}

// IsInterestPostingDue implements portssvc.InterestEngine. With no posting
// history the first posting is immediately due.
func (s *InterestEngineService) IsInterestPostingDue(ctx context.Context, accountID string, accountType domain.EntityType, asOf time.Time) (bool, error) {
	lastPosted, err := s.postingRepo.FindLastPostingDate(ctx, accountID, accountType, domain.PostingPosted)
	if err != nil {
		return false, fmt.Errorf("loading last posting date for account %s: %w", accountID, err)
	}
	if lastPosted == nil {
		return true, nil
	}
	due := domain.TruncateToDay(*lastPosted).AddDate(0, 0, s.postingPeriodDays)
	return !domain.TruncateToDay(asOf).Before(due), nil
}

// RecordInterestPosting implements portssvc.InterestEngine: one POSTED
// history row plus the balancing GL pair, interest expense against the
// control liability owed to account holders.
func (s *InterestEngineService) RecordInterestPosting(ctx context.Context, req portssvc.RecordPostingRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.Amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	now := time.Now().UTC()
	posting := domain.InterestPosting{
		PostingID:    uuid.NewString(),
		AccountID:    req.AccountID,
		AccountType:  req.AccountType,
		FromDate:     domain.TruncateToDay(req.FromDate),
		ToDate:       domain.TruncateToDay(req.ToDate),
		Amount:       req.Amount.Amount,
		CurrencyCode: req.Currency.CurrencyCode,
		PostingType:  domain.PostingPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.postingRepo.SavePosting(ctx, posting); err != nil {
		return fmt.Errorf("recording interest posting for account %s: %w", req.AccountID, err)
	}

	expense, err := s.resolver.Resolve(ctx, req.ProductID, domain.ProductTypeSavings, domain.SavingsAccrualInterestOnSavings.Value())
	if err != nil {
		return err
	}
	control, err := s.resolver.Resolve(ctx, req.ProductID, domain.ProductTypeSavings, domain.SavingsAccrualSavingsControl.Value())
	if err != nil {
		return err
	}

	transactionID := uuid.NewString()
	entries := []domain.JournalEntry{
		s.poster.NewDebit(req.OfficeID, req.Currency.CurrencyCode, expense, req.Amount.Amount, req.ToDate, transactionID, req.AccountType, req.AccountID),
		s.poster.NewCredit(req.OfficeID, req.Currency.CurrencyCode, control, req.Amount.Amount, req.ToDate, transactionID, req.AccountType, req.AccountID),
	}
	if err := s.poster.PostEntries(ctx, entries); err != nil {
		return err
	}

	logger.Info("Interest posting recorded",
		slog.String("account_id", req.AccountID),
		slog.String("amount", req.Amount.String()),
		slog.String("transaction_id", transactionID))
	return nil
}
