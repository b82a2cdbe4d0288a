package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

// SessionService orchestrates the session lifecycle: it composes the
// password hasher, token signer, and the user/refresh-token repositories.
// It holds no mutable state of its own; correctness under concurrent
// refreshes rests on the conditional rotation in the token repository.
type SessionService struct {
	users      ports.UserRepository
	tokens     ports.RefreshTokenRepository
	hasher     *PasswordHasher
	signer     *TokenSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	tokens ports.RefreshTokenRepository,
	hasher *PasswordHasher,
	signer *TokenSigner,
	accessTTL, refreshTTL time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &SessionService{
		users:      users,
		tokens:     tokens,
		hasher:     hasher,
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Register creates an account and opens a session, mirroring Login's
// issuance so a fresh registration lands the client fully signed in.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	if input.Username == "" || input.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return s.openSession(ctx, user, input.UserAgent)
}

// Login verifies credentials and opens a session. Unknown identifier and
// wrong password collapse into the same ErrInvalidCredentials so responses
// cannot be used to enumerate accounts.
func (s *SessionService) Login(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
	var (
		user *domain.User
		err  error
	)
	if input.Username != "" {
		user, err = s.users.FindByUsername(ctx, input.Username)
	} else {
		user, err = s.users.FindByEmail(ctx, input.Email)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.logger.Info().Str("user_id", user.ID).Msg("password verification failed")
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user, input.UserAgent)
}

// Refresh exchanges a valid refresh token for a new access token and
// rotates the refresh value in place. Presenting an already-rotated value
// fails the hash lookup, which also makes token reuse after theft visible
// as 401s.
func (s *SessionService) Refresh(ctx context.Context, rawToken string) (*ports.Session, error) {
	token, user, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	newValue, err := NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}
	newHash := HashRefreshTokenValue(newValue)
	refreshExpiry := time.Now().UTC().Add(s.refreshTTL)

	// Signing has no side effects, so it happens before the rotation; a
	// signing failure must not leave the stored hash replaced with a value
	// the client never received.
	access, accessExpiry, err := s.signAccess(user.ID)
	if err != nil {
		return nil, err
	}

	// Conditional update keyed on the old hash: of two concurrent requests
	// bearing the same stale value only one rotation matches, the other
	// fails the lookup and surfaces as 401.
	if err := s.tokens.Rotate(ctx, token.TokenHash, newHash, refreshExpiry); err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			s.logger.Warn().Str("user_id", user.ID).Msg("refresh token rotated concurrently")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return &ports.Session{
		User:             user.Identity(),
		AccessToken:      access,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     newValue,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// Logout validates the refresh token like Refresh and deletes its row.
func (s *SessionService) Logout(ctx context.Context, rawToken string) error {
	token, user, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return err
	}

	if err := s.tokens.Delete(ctx, token.TokenHash); err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged out")
	return nil
}

// Authenticate verifies credentials against the username or the email and
// returns the user with no token issuance.
//
// Deprecated: legacy path for /auth/token; the cookie session flow is
// canonical.
func (s *SessionService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.users.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// resolveToken performs the shared Refresh/Logout validation: hash lookup,
// owner resolution, expiry check. Every failure collapses into
// ErrInvalidCredentials.
func (s *SessionService) resolveToken(ctx context.Context, rawToken string) (*domain.RefreshToken, *domain.User, error) {
	if rawToken == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.FindByHash(ctx, HashRefreshTokenValue(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if token.ExpiredAt(time.Now().UTC()) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	return token, user, nil
}

// openSession issues an access token and persists a brand-new refresh row.
func (s *SessionService) openSession(ctx context.Context, user *domain.User, userAgent string) (*ports.Session, error) {
	access, accessExpiry, err := s.signAccess(user.ID)
	if err != nil {
		return nil, err
	}

	value, err := NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	refreshExpiry := now.Add(s.refreshTTL)
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		TokenHash: HashRefreshTokenValue(value),
		UserID:    user.ID,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: refreshExpiry,
	}); err != nil {
		return nil, err
	}

	return &ports.Session{
		User:             user.Identity(),
		AccessToken:      access,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     value,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (s *SessionService) signAccess(userID string) (string, time.Time, error) {
	expiry := time.Now().UTC().Add(s.accessTTL)
	token, err := s.signer.Issue(userID, NewTokenID(), s.accessTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiry, nil
}
