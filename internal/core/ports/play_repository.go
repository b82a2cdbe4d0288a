package ports

import (
	"context"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// ListPlaysFilter carries the query parameters for listing plays. UserID is
// always set by the service layer; plays are never listed across users.
type ListPlaysFilter struct {
	UserID string
	GameID string // optional: scope to one game
	Page   int    // 1-based
	Limit  int    // rows per page (capped at 100 by the service)
}

// PlayRepository defines persistence operations for play records.
type PlayRepository interface {
	Create(ctx context.Context, play *domain.Play) (*domain.Play, error)
	FindByID(ctx context.Context, id string) (*domain.Play, error)
	List(ctx context.Context, filter ListPlaysFilter) ([]*domain.Play, int64, error)
	Update(ctx context.Context, play *domain.Play) (*domain.Play, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUserID removes all plays owned by the user (account deletion).
	DeleteByUserID(ctx context.Context, userID string) error
}
