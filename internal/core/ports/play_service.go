package ports

import (
	"context"
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// RecordPlayInput is the DTO for recording a single play session. It is used
// both by the synchronous POST /plays path and by the asynchronous import
// dispatcher.
type RecordPlayInput struct {
	UserID      string
	GameID      string
	PlayedAt    time.Time
	DurationMin int
	Rating      int
	Notes       string
}

// UpdatePlayInput carries mutable play fields. Zero values leave the stored
// field untouched.
type UpdatePlayInput struct {
	PlayedAt    time.Time
	DurationMin int
	Rating      int
	Notes       string
}

// ListPlaysResult is returned by List.
type ListPlaysResult struct {
	Items      []*domain.Play
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PlayService defines use-case operations for play records. Every operation
// is owner-scoped: callerID must match the play's owner or the call fails
// with ErrForbidden.
type PlayService interface {
	Record(ctx context.Context, input RecordPlayInput) (*domain.Play, error)
	Get(ctx context.Context, id, callerID string) (*domain.Play, error)
	List(ctx context.Context, filter ListPlaysFilter) (*ListPlaysResult, error)
	Update(ctx context.Context, id, callerID string, input UpdatePlayInput) (*domain.Play, error)
	Delete(ctx context.Context, id, callerID string) error
}
