package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltshop/inventory-api/internal/models"
)

// CatalogCache caches catalog listing results in Redis. It is best-effort:
// every cache failure is logged and treated as a miss, never surfaced to
// the caller.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

// GetProducts returns the cached listing for key, if present.
func (c *CatalogCache) GetProducts(ctx context.Context, key string) ([]models.Product, bool) {
	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dropping undecodable catalog cache entry")
		_ = c.redis.Delete(ctx, key)
		return nil, false
	}
	return products, true
}

// SetProducts stores a listing under key with the configured TTL.
func (c *CatalogCache) SetProducts(ctx context.Context, key string, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode catalog cache entry")
		return
	}
	if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write catalog cache entry")
	}
}

// InvalidateProducts drops the given listing keys.
func (c *CatalogCache) InvalidateProducts(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}
