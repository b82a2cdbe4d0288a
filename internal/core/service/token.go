package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when the signing secret is not configured.
// It maps to a 500 at the API boundary; requests must never succeed with an
// unsigned or weakly signed token.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

const refreshTokenBytes = 32

// TokenSigner issues HS256-signed access tokens. Issuer, audience, and the
// shared secret come from configuration, injected once at construction.
type TokenSigner struct {
	secret   string
	issuer   string
	audience string
}

func NewTokenSigner(secret, issuer, audience string) *TokenSigner {
	return &TokenSigner{secret: secret, issuer: issuer, audience: audience}
}

// Issue signs an access token for the given subject with expiry now+ttl.
// tokenID becomes the jti claim.
func (s *TokenSigner) Issue(subject, tokenID string, ttl time.Duration) (string, error) {
	if s.secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        tokenID,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// NewTokenID returns a random identifier for the jti claim.
func NewTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// NewRefreshTokenValue returns the opaque refresh value handed to the
// client: 32 random bytes, base64-encoded for cookie transport.
func NewRefreshTokenValue() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshTokenValue returns the value persisted and looked up in the
// store: the hex SHA-256 digest of the base64 string the client holds. The
// server never keeps a reversible form of the bearer value.
func HashRefreshTokenValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
