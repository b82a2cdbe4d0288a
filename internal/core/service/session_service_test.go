package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTokenRepo struct {
	tokens map[string]*domain.RefreshToken // keyed by hash
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func cloneToken(t *domain.RefreshToken) *domain.RefreshToken {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.tokens[token.TokenHash] = cloneToken(token)
	return nil
}

func (r *stubTokenRepo) FindByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	if t, ok := r.tokens[hash]; ok {
		return cloneToken(t), nil
	}
	return nil, domain.ErrRefreshTokenNotFound
}

func (r *stubTokenRepo) Rotate(_ context.Context, oldHash, newHash string, expiresAt time.Time) error {
	t, ok := r.tokens[oldHash]
	if !ok {
		return domain.ErrRefreshTokenNotFound
	}
	rotated := cloneToken(t)
	rotated.TokenHash = newHash
	rotated.ExpiresAt = expiresAt
	delete(r.tokens, oldHash)
	r.tokens[newHash] = rotated
	return nil
}

func (r *stubTokenRepo) Delete(_ context.Context, hash string) error {
	if _, ok := r.tokens[hash]; !ok {
		return domain.ErrRefreshTokenNotFound
	}
	delete(r.tokens, hash)
	return nil
}

func (r *stubTokenRepo) DeleteByUserID(_ context.Context, userID string) error {
	for hash, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func newTestSessionService(users *stubUserRepo, tokens *stubTokenRepo) *SessionService {
	return NewSessionService(
		users,
		tokens,
		NewPasswordHasher(bcrypt.MinCost),
		NewTokenSigner("test-secret", "playlog-api", "playlog-web"),
		15*time.Minute,
		30*24*time.Hour,
		zerolog.Nop(),
	)
}

func registerTestUser(t *testing.T, svc *SessionService) *ports.Session {
	t.Helper()
	session, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return session
}

func TestSessionService_Register(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)

	session := registerTestUser(t, svc)

	if session.User.Username != "alice" {
		t.Fatalf("username = %q, want alice", session.User.Username)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}

	stored, err := users.FindByID(context.Background(), session.User.ID)
	if err != nil {
		t.Fatalf("stored user lookup failed: %v", err)
	}
	if stored.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// The repo keeps the hash of the client value, never the value itself.
	if _, ok := tokens.tokens[session.RefreshToken]; ok {
		t.Fatal("refresh token stored unhashed")
	}
	if _, ok := tokens.tokens[HashRefreshTokenValue(session.RefreshToken)]; !ok {
		t.Fatal("hashed refresh token not persisted")
	}
}

func TestSessionService_Register_Duplicate(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "another password",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestSessionService_Register_Validation(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@example.com", Password: "password"},
		{Username: "alice", Email: "", Password: "password"},
		{Username: "alice", Email: "a@example.com", Password: "   "},
	}
	for _, input := range cases {
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Register(%+v) = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestSessionService_Login(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())
	registerTestUser(t, svc)

	byUsername, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "alice",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
	if byUsername.User.Username != "alice" {
		t.Fatalf("username = %q, want alice", byUsername.User.Username)
	}

	byEmail, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if byEmail.RefreshToken == byUsername.RefreshToken {
		t.Fatal("each login must issue a distinct refresh token")
	}
}

func TestSessionService_Login_GenericDenial(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())
	registerTestUser(t, svc)

	// Unknown user and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(context.Background(), ports.LoginInput{
		Username: "nobody",
		Password: "whatever",
	})
	_, wrongPassErr := svc.Login(context.Background(), ports.LoginInput{
		Username: "alice",
		Password: "not the password",
	})

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", wrongPassErr)
	}
}

func TestSessionService_Refresh_RotatesInPlace(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)
	session := registerTestUser(t, svc)

	rotated, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rotated.RefreshToken == session.RefreshToken {
		t.Fatal("refresh must issue a new opaque value")
	}
	if rotated.AccessToken == "" {
		t.Fatal("refresh must issue a new access token")
	}

	// Rotation replaces the row rather than adding one.
	if len(tokens.tokens) != 1 {
		t.Fatalf("token rows = %d, want 1", len(tokens.tokens))
	}

	// The pre-rotation value is dead.
	if _, err := svc.Refresh(context.Background(), session.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("stale value refresh = %v, want ErrInvalidCredentials", err)
	}

	// The new value works.
	if _, err := svc.Refresh(context.Background(), rotated.RefreshToken); err != nil {
		t.Fatalf("rotated value refresh failed: %v", err)
	}
}

func TestSessionService_Refresh_PreservesOwnerAndCreatedAt(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)
	session := registerTestUser(t, svc)

	before := tokens.tokens[HashRefreshTokenValue(session.RefreshToken)]

	rotated, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	after := tokens.tokens[HashRefreshTokenValue(rotated.RefreshToken)]
	if after.UserID != before.UserID {
		t.Fatalf("rotation changed the owner: %q -> %q", before.UserID, after.UserID)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatal("rotation must preserve created_at")
	}
	if !after.ExpiresAt.After(before.ExpiresAt.Add(-time.Second)) {
		t.Fatal("rotation must push the expiry forward")
	}
}

func TestSessionService_Refresh_ExpiredToken(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)
	session := registerTestUser(t, svc)

	hash := HashRefreshTokenValue(session.RefreshToken)
	tokens.tokens[hash].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	if _, err := svc.Refresh(context.Background(), session.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expired token refresh = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionService_Refresh_ConcurrentLoser(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)
	session := registerTestUser(t, svc)

	// Simulate the race: the row was rotated between this request's lookup
	// and its conditional update.
	racing := &racingTokenRepo{stubTokenRepo: tokens, svc: svc, stale: session.RefreshToken}
	loser := NewSessionService(
		users,
		racing,
		NewPasswordHasher(bcrypt.MinCost),
		NewTokenSigner("test-secret", "playlog-api", "playlog-web"),
		15*time.Minute,
		30*24*time.Hour,
		zerolog.Nop(),
	)

	if _, err := loser.Refresh(context.Background(), session.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("losing refresh = %v, want ErrInvalidCredentials", err)
	}
}

// racingTokenRepo lets the first lookup succeed, then rotates the row out
// from under the caller before its own Rotate runs.
type racingTokenRepo struct {
	*stubTokenRepo
	svc   *SessionService
	stale string
	raced bool
}

func (r *racingTokenRepo) Rotate(ctx context.Context, oldHash, newHash string, expiresAt time.Time) error {
	if !r.raced {
		r.raced = true
		if _, err := r.svc.Refresh(ctx, r.stale); err != nil {
			return err
		}
	}
	return r.stubTokenRepo.Rotate(ctx, oldHash, newHash, expiresAt)
}

func TestSessionService_Logout(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)
	session := registerTestUser(t, svc)

	if err := svc.Logout(context.Background(), session.RefreshToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(tokens.tokens) != 0 {
		t.Fatalf("token rows after logout = %d, want 0", len(tokens.tokens))
	}

	// Second logout with the same value is a 401, not a no-op.
	if err := svc.Logout(context.Background(), session.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("repeated logout = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionService_Logout_EmptyToken(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())

	if err := svc.Logout(context.Background(), ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty token logout = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionService_Authenticate(t *testing.T) {
	svc := newTestSessionService(newStubUserRepo(), newStubTokenRepo())
	registerTestUser(t, svc)

	byUsername, err := svc.Authenticate(context.Background(), "alice", "correct horse battery")
	if err != nil {
		t.Fatalf("authenticate by username failed: %v", err)
	}
	byEmail, err := svc.Authenticate(context.Background(), "alice@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("authenticate by email failed: %v", err)
	}
	if byUsername.ID != byEmail.ID {
		t.Fatal("both identifier forms must resolve the same user")
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown identifier = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionService_Refresh_SigningFailureLeavesTokenUsable(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestSessionService(users, tokens)

	session := registerTestUser(t, svc)

	// Same stores, but a signer that cannot issue tokens. Its refresh must
	// fail without consuming the stored hash.
	broken := NewSessionService(
		users,
		tokens,
		NewPasswordHasher(bcrypt.MinCost),
		NewTokenSigner("", "playlog-api", "playlog-web"),
		15*time.Minute,
		30*24*time.Hour,
		zerolog.Nop(),
	)

	if _, err := broken.Refresh(context.Background(), session.RefreshToken); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("refresh with empty secret = %v, want ErrMissingSecret", err)
	}

	rotated, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("refresh after failed attempt = %v, want the token still usable", err)
	}
	if rotated.RefreshToken == session.RefreshToken {
		t.Fatal("successful refresh must rotate the token value")
	}
}
