package services

import (
	"context"
	"fmt"
	"log/slog"

	"procurement-service/internal/infra"
	"procurement-service/internal/infra/cache"

	"github.com/pkg/errors"
)

const allProductsKey = "products:all"

func vendorProductsKey(vendorID uint64) string {
	return fmt.Sprintf("products:vendor:%d", vendorID)
}

// catalogCache wraps an optional infra.Cache. Cache failures are logged and
// treated as misses; the store stays the source of truth.
type catalogCache struct {
	cache  infra.Cache
	logger *slog.Logger
}

func newCatalogCache(c infra.Cache, logger *slog.Logger) *catalogCache {
	return &catalogCache{cache: c, logger: logger}
}

func (c *catalogCache) get(ctx context.Context, key string, dest any) bool {
	if c.cache == nil {
		return false
	}
	err := c.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return false
}

func (c *catalogCache) set(ctx context.Context, key string, value any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// invalidate drops the listings a change to vendorID's catalog affects.
func (c *catalogCache) invalidate(ctx context.Context, vendorID uint64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, allProductsKey, vendorProductsKey(vendorID)); err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed", slog.Uint64("vendorId", vendorID), slog.String("error", err.Error()))
	}
}
