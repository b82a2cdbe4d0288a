package ports

import (
	"context"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// ListGamesFilter carries the query parameters for listing games.
type ListGamesFilter struct {
	Genre    string // optional: exact genre match
	Platform string // optional: exact platform match
	Search   string // optional: partial match on title or developer
	Page     int    // 1-based
	Limit    int    // rows per page (capped at 100 by the service)
}

// GameRepository defines persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	// List returns a page of games matching filter and the total count.
	List(ctx context.Context, filter ListGamesFilter) ([]*domain.Game, int64, error)
	Update(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}
