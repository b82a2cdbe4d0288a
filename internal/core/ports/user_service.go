package ports

import (
	"context"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// UpdateUserInput carries profile fields a user may change. Empty fields are
// left untouched.
type UpdateUserInput struct {
	Username string
	Email    string
}

// UserService handles profile operations for the authenticated user.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the account and cascades to the user's refresh tokens
	// and plays.
	Delete(ctx context.Context, userID string) error
}
