package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playlog/playlog-api/internal/api/metrics"
	"github.com/playlog/playlog-api/internal/core/domain"
)

// CatalogCache stores catalog search results in Redis.
// Key format: catalog:<lowercased query>
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached results for query and whether the key existed.
// Anything short of a decodable entry counts as a miss in the metrics; the
// caller falls through to the upstream catalog either way.
func (c *CatalogCache) Get(ctx context.Context, query string) ([]domain.CatalogGame, bool, error) {
	data, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var results []domain.CatalogGame
	if err := json.Unmarshal(data, &results); err != nil {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}

	metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
	return results, true, nil
}

// Set stores the results for query, expiring after the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, query string, results []domain.CatalogGame) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(query), data, c.ttl).Err()
}

func (c *CatalogCache) key(query string) string {
	return "catalog:" + strings.ToLower(strings.TrimSpace(query))
}
