package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/microfin/accounting_core/internal/adapters/cache"
	"github.com/microfin/accounting_core/internal/adapters/database/pgsql"
	"github.com/microfin/accounting_core/internal/core/interest"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/core/services"
	"github.com/microfin/accounting_core/internal/platform/config"
)

// BuildServices wires repositories, cache and services into the container the
// transport layer consumes. redisClient may be nil, in which case mapping
// lookups go straight to the database.
func BuildServices(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) *portssvc.ServiceContainer {
	repos := pgsql.NewRepositoryProvider(pool)
	if redisClient != nil {
		repos.MappingRepo = cache.NewCachedMappingRepository(repos.MappingRepo, redisClient, cfg.MappingCacheTTL)
	}

	resolver := services.NewGLAccountResolver(repos.MappingRepo)
	poster := services.NewJournalEntryPoster(repos.JournalRepo, repos.ClosureRepo)

	accrualProcessor := services.NewAccrualAccountingProcessor(resolver, poster)
	cashProcessor := services.NewCashAccountingProcessor(resolver, poster)
	accounting := services.NewAccountingService(accrualProcessor, cashProcessor, poster, repos.JournalRepo)

	calcCtx := interest.CalculationContext{Precision: cfg.CalculationPrecision}
	engine := services.NewInterestEngineService(repos.BalanceRepo, repos.InterestRepo, resolver, poster, calcCtx, cfg.InterestPostingPeriodDays)

	return &portssvc.ServiceContainer{
		Accounting: accounting,
		Interest:   engine,
	}
}
