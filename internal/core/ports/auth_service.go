package ports

import (
	"context"
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// LoginInput carries credentials for Login. Exactly one of Username or Email
// must be set; the transport layer rejects requests with both or neither
// before the service is reached.
type LoginInput struct {
	Username  string
	Email     string
	Password  string
	UserAgent string
}

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	UserAgent string
}

// Session is the result of a successful login, registration, or refresh.
// AccessToken is a signed JWT; RefreshToken is the opaque value the client
// must present on the next refresh (the server stores only its hash).
type Session struct {
	User             domain.Identity
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionService owns the session lifecycle: credential verification, token
// issuance, refresh-token rotation, and revocation.
type SessionService interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Refresh(ctx context.Context, rawToken string) (*Session, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate verifies credentials and returns the user without issuing
	// any token. Deprecated: kept for the legacy /auth/token endpoint; new
	// clients use Login and the cookie-based session flow.
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
}
