package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type catalogService struct {
	client ports.CatalogClient
	cache  ports.CatalogCache
	logger zerolog.Logger
}

// NewCatalogService returns a CatalogService that serves searches from the
// cache when possible and falls through to the upstream catalog otherwise.
func NewCatalogService(client ports.CatalogClient, cache ports.CatalogCache, logger zerolog.Logger) ports.CatalogService {
	return &catalogService{client: client, cache: cache, logger: logger}
}

func (s *catalogService) Search(ctx context.Context, query string) ([]domain.CatalogGame, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	// Cache errors are non-fatal: log and ask the upstream anyway.
	results, hit, err := s.cache.Get(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("catalog cache read failed")
	} else if hit {
		return results, nil
	}

	results, err = s.client.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("catalog lookup failed")
		return nil, err
	}

	if err := s.cache.Set(ctx, query, results); err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("catalog cache write failed")
	}

	return results, nil
}
