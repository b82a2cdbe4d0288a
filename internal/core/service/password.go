package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/playlog/playlog-api/internal/core/domain"
)

// PasswordHasher wraps bcrypt with a fixed cost. Hashing is an explicit
// call, never a side effect of assigning to a model field.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. Empty or whitespace-only input
// is rejected with ErrInvalidInput. Each call salts independently, so the
// same plaintext hashed twice yields different outputs.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes verify as
// false; this never returns an error so credential checks stay uniform.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
