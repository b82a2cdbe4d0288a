package ports

import (
	"context"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// CreateGameInput carries the data for adding a game to the collection.
type CreateGameInput struct {
	Title       string
	Developer   string
	Genres      []string
	Platforms   []string
	ReleaseYear int
	CoverURL    string
	// UserID is the authenticated caller, recorded as the game's creator.
	UserID string
}

// UpdateGameInput carries mutable game fields. Zero values leave the stored
// field untouched.
type UpdateGameInput struct {
	Title       string
	Developer   string
	Genres      []string
	Platforms   []string
	ReleaseYear int
	CoverURL    string
}

// ListGamesResult is returned by List.
type ListGamesResult struct {
	Items      []*domain.Game
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GameService defines use-case operations for the game collection.
type GameService interface {
	Create(ctx context.Context, input CreateGameInput) (*domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	List(ctx context.Context, filter ListGamesFilter) (*ListGamesResult, error)
	// Update and Delete are restricted to the game's creator.
	Update(ctx context.Context, id, userID string, input UpdateGameInput) (*domain.Game, error)
	Delete(ctx context.Context, id, userID string) error
}
