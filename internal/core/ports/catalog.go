package ports

import (
	"context"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// CatalogClient talks to the external game-catalog HTTP API.
type CatalogClient interface {
	Search(ctx context.Context, query string) ([]domain.CatalogGame, error)
}

// CatalogCache caches catalog search results keyed by query.
type CatalogCache interface {
	// Get returns the cached results and true on a hit, nil and false on a
	// miss. Cache errors are reported so the caller can fall through to the
	// upstream client.
	Get(ctx context.Context, query string) ([]domain.CatalogGame, bool, error)
	Set(ctx context.Context, query string, results []domain.CatalogGame) error
}

// CatalogService proxies catalog searches through the cache.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]domain.CatalogGame, error)
}
