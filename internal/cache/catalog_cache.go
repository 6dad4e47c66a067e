package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/persistence"
)

// Keys for the hot public product lists.
const (
	KeyTrending = "catalog:products:trending"
	KeyFeatured = "catalog:products:featured"
)

const listTTL = 5 * time.Minute

// CatalogCache is a read-through Redis cache for public catalog lists.
// A missing or unreachable Redis degrades to cache misses.
type CatalogCache struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewCatalogCache creates the cache.
func NewCatalogCache(redis *persistence.Redis, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{redis: redis, logger: logger}
}

// GetProducts fetches a cached product list; the second return reports a hit.
func (c *CatalogCache) GetProducts(ctx context.Context, key string) ([]*domain.Product, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}

	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.redis.Client.Del(ctx, key).Err()
		return nil, false
	}
	return products, true
}

// SetProducts stores a product list under the given key.
func (c *CatalogCache) SetProducts(ctx context.Context, key string, products []*domain.Product) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, key, raw, listTTL).Err(); err != nil {
		c.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateLists drops the cached product lists.
func (c *CatalogCache) InvalidateLists(ctx context.Context) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, KeyTrending, KeyFeatured).Err(); err != nil {
		c.logger.Debug("cache invalidation failed", zap.Error(err))
	}
}
