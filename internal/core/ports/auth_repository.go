package ports

import (
	"context"
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines persistence operations for refresh tokens.
// All lookups are keyed by the token's stored hash, never the opaque value.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	// Rotate atomically replaces the hash and expiry of the row currently
	// holding oldHash. It must be a single conditional update: when the row
	// was already rotated (or deleted) by a concurrent request the old hash
	// no longer matches and ErrRefreshTokenNotFound is returned, so at most
	// one caller wins per stored value.
	Rotate(ctx context.Context, oldHash, newHash string, expiresAt time.Time) error
	Delete(ctx context.Context, hash string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
