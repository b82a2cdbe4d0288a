package domain

import (
	"errors"
	"time"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshToken is the persisted half of a long-lived session credential.
// The opaque value handed to the client is never stored; TokenHash holds the
// hex SHA-256 digest of it, and lookups go through that digest. On each
// successful refresh the row is rotated in place: TokenHash and ExpiresAt
// are overwritten while UserID and CreatedAt are preserved.
type RefreshToken struct {
	TokenHash string    `json:"-" bson:"token_hash"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserAgent string    `json:"user_agent" bson:"user_agent"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// ExpiredAt reports whether the token is expired at the given instant.
// The boundary is exclusive: a token expiring exactly at now is still valid.
func (t *RefreshToken) ExpiredAt(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
