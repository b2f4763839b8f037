package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/microfin/accounting_core/internal/adapters/database/pgsql"
	"github.com/microfin/accounting_core/internal/core/domain"
	"github.com/microfin/accounting_core/internal/core/interest"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/platform/bootstrap"
	"github.com/microfin/accounting_core/internal/platform/config"
	"github.com/microfin/accounting_core/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	services := bootstrap.BuildServices(cfg, dbPool, nil)
	configRepo := pgsql.NewPgxInterestConfigRepository(dbPool)

	c := cron.New(cron.WithSeconds())
	_, err = c.AddFunc(cfg.AccrualCronSpec, func() {
		runAccruals(logger, services.Interest, configRepo)
	})
	if err != nil {
		logger.Error("Failed to schedule accrual job", slog.String("error", err.Error()), slog.String("spec", cfg.AccrualCronSpec))
		os.Exit(1)
	}

	c.Start()
	logger.Info("Accrual scheduler started", slog.String("spec", cfg.AccrualCronSpec))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down accrual scheduler...")
	ctx := c.Stop()
	<-ctx.Done()
	logger.Info("Accrual scheduler stopped")
}

type interestConfigLister interface {
	ListActiveConfigs(ctx context.Context) ([]domain.InterestAccountConfig, error)
}

// runAccruals accrues interest up to today for every active interest-bearing
// account. Failures are per account: one bad configuration must not stall the
// whole run.
func runAccruals(logger *slog.Logger, engine portssvc.InterestEngine, configRepo interestConfigLister) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	configs, err := configRepo.ListActiveConfigs(ctx)
	if err != nil {
		logger.Error("Failed to list interest configs", slog.String("error", err.Error()))
		return
	}

	asOf := time.Now().UTC()
	accrued := 0
	failed := 0
	for _, cfg := range configs {
		var strategyCfg interest.StrategyConfig
		if len(cfg.StrategyParams) > 0 {
			if err := json.Unmarshal(cfg.StrategyParams, &strategyCfg); err != nil {
				logger.Error("Skipping account with undecodable strategy params",
					slog.String("account_id", cfg.AccountID), slog.String("error", err.Error()))
				failed++
				continue
			}
		}

		req := portssvc.CalculateInterestRequest{
			AccountID:      cfg.AccountID,
			AccountType:    cfg.AccountType,
			Currency:       domain.Currency{CurrencyCode: cfg.CurrencyCode, DecimalPlaces: cfg.DecimalPlaces},
			FromDate:       cfg.ActivatedOn,
			ToDate:         asOf,
			AnnualRate:     cfg.AnnualRate,
			StrategyType:   cfg.StrategyType,
			DaysInYear:     cfg.DaysInYear,
			MinimumBalance: cfg.MinimumBalance,
			StrategyConfig: strategyCfg,
		}

		amount, err := engine.ProcessAccruals(ctx, req, asOf)
		if err != nil {
			logger.Error("Accrual failed for account",
				slog.String("account_id", cfg.AccountID), slog.String("error", err.Error()))
			failed++
			continue
		}
		if !amount.IsZero() {
			accrued++
		}
	}

	logger.Info("Accrual run finished",
		slog.Int("accounts", len(configs)),
		slog.Int("accrued", accrued),
		slog.Int("failed", failed))
}
