package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/microfin/accounting_core/internal/core/domain"
	portsrepo "github.com/microfin/accounting_core/internal/core/ports/repositories"
	"github.com/microfin/accounting_core/internal/middleware"
)

// CachedMappingRepository is a read-through cache in front of the mapping
// repository. Mapping configuration changes rarely but is read on every
// posted transaction, so hits are served from redis and misses fall through
// to the wrapped repository. Negative results are never cached: a missing
// mapping is a configuration error the operator is about to fix.
//
// A redis failure degrades to the underlying repository; the cache must
// never turn a resolvable mapping into an error.
type CachedMappingRepository struct {
	inner  portsrepo.MappingRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedMappingRepository creates a new CachedMappingRepository.
func NewCachedMappingRepository(inner portsrepo.MappingRepository, client *redis.Client, ttl time.Duration) portsrepo.MappingRepository {
	return &CachedMappingRepository{inner: inner, client: client, ttl: ttl}
}

func (c *CachedMappingRepository) getMapping(ctx context.Context, key string, load func(context.Context) (*domain.ProductToAccountMapping, error)) (*domain.ProductToAccountMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var mapping domain.ProductToAccountMapping
		if err := json.Unmarshal(cached, &mapping); err == nil {
			return &mapping, nil
		}
		logger.Warn("Dropping undecodable cache entry", slog.String("key", key))
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("Mapping cache read failed, falling through", slog.String("key", key), slog.Any("error", err))
	}

	mapping, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(mapping); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logger.Warn("Mapping cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return mapping, nil
}

func (c *CachedMappingRepository) getAccount(ctx context.Context, key string, load func(context.Context) (*domain.GLAccount, error)) (*domain.GLAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var account domain.GLAccount
		if err := json.Unmarshal(cached, &account); err == nil {
			return &account, nil
		}
		logger.Warn("Dropping undecodable cache entry", slog.String("key", key))
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("Mapping cache read failed, falling through", slog.String("key", key), slog.Any("error", err))
	}

	account, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(account); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logger.Warn("Mapping cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return account, nil
}

// FindByProductAndRole implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindByProductAndRole(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole) (*domain.ProductToAccountMapping, error) {
	key := fmt.Sprintf("accmap:role:%s:%d:%d", productID, productType, role)
	return c.getMapping(ctx, key, func(ctx context.Context) (*domain.ProductToAccountMapping, error) {
		return c.inner.FindByProductAndRole(ctx, productID, productType, role)
	})
}

// FindByProductRoleAndPaymentType implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindByProductRoleAndPaymentType(ctx context.Context, productID string, productType domain.PortfolioProductType, role domain.AccountRole, paymentTypeID string) (*domain.ProductToAccountMapping, error) {
	key := fmt.Sprintf("accmap:paytype:%s:%d:%d:%s", productID, productType, role, paymentTypeID)
	return c.getMapping(ctx, key, func(ctx context.Context) (*domain.ProductToAccountMapping, error) {
		return c.inner.FindByProductRoleAndPaymentType(ctx, productID, productType, role, paymentTypeID)
	})
}

// FindByProductAndCharge implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindByProductAndCharge(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeID string) (*domain.ProductToAccountMapping, error) {
	key := fmt.Sprintf("accmap:charge:%s:%d:%s", productID, productType, chargeID)
	return c.getMapping(ctx, key, func(ctx context.Context) (*domain.ProductToAccountMapping, error) {
		return c.inner.FindByProductAndCharge(ctx, productID, productType, chargeID)
	})
}

// FindByProductAndChargeOffReason implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindByProductAndChargeOffReason(ctx context.Context, productID string, productType domain.PortfolioProductType, chargeOffReasonID string) (*domain.ProductToAccountMapping, error) {
	key := fmt.Sprintf("accmap:coreason:%s:%d:%s", productID, productType, chargeOffReasonID)
	return c.getMapping(ctx, key, func(ctx context.Context) (*domain.ProductToAccountMapping, error) {
		return c.inner.FindByProductAndChargeOffReason(ctx, productID, productType, chargeOffReasonID)
	})
}

// FindGLAccountByID implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	key := fmt.Sprintf("accmap:glaccount:%s", glAccountID)
	return c.getAccount(ctx, key, func(ctx context.Context) (*domain.GLAccount, error) {
		return c.inner.FindGLAccountByID(ctx, glAccountID)
	})
}

// FindFinancialActivityAccount implements portsrepo.MappingRepository.
func (c *CachedMappingRepository) FindFinancialActivityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	key := fmt.Sprintf("accmap:finactivity:%d", activity)
	return c.getAccount(ctx, key, func(ctx context.Context) (*domain.GLAccount, error) {
		return c.inner.FindFinancialActivityAccount(ctx, activity)
	})
}
