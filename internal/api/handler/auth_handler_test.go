package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
	"github.com/playlog/playlog-api/internal/infrastructure/config"
)

type stubSessionService struct {
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*ports.Session, error)
	loginFn        func(ctx context.Context, input ports.LoginInput) (*ports.Session, error)
	refreshFn      func(ctx context.Context, rawToken string) (*ports.Session, error)
	logoutFn       func(ctx context.Context, rawToken string) error
	authenticateFn func(ctx context.Context, identifier, password string) (*domain.User, error)
}

func (s *stubSessionService) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, input)
}

func (s *stubSessionService) Login(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
	return s.loginFn(ctx, input)
}

func (s *stubSessionService) Refresh(ctx context.Context, rawToken string) (*ports.Session, error) {
	return s.refreshFn(ctx, rawToken)
}

func (s *stubSessionService) Logout(ctx context.Context, rawToken string) error {
	return s.logoutFn(ctx, rawToken)
}

func (s *stubSessionService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, identifier, password)
}

func testCookieWriter() *CookieWriter {
	return NewCookieWriter(config.CookieConfig{
		AccessName:  "playlog_access",
		RefreshName: "playlog_refresh",
		Secure:      true,
		SameSite:    "none",
	})
}

func testSession() *ports.Session {
	now := time.Now().UTC()
	return &ports.Session{
		User:             domain.Identity{ID: "user-1", Username: "alice", Email: "alice@example.com"},
		AccessToken:      "signed.access.jwt",
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshToken:     "opaque-refresh-value",
		RefreshExpiresAt: now.Add(30 * 24 * time.Hour),
	}
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsCookies(t *testing.T) {
	session := testSession()
	stub := &stubSessionService{
		loginFn: func(_ context.Context, input ports.LoginInput) (*ports.Session, error) {
			if input.Username != "alice" || input.Password != "secret-password" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return session, nil
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"username":"alice","password":"secret-password"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	access := findCookie(cookies, "playlog_access")
	refresh := findCookie(cookies, "playlog_refresh")
	if access == nil || refresh == nil {
		t.Fatal("expected both session cookies to be set")
	}
	if access.Value != "signed.access.jwt" {
		t.Fatalf("access cookie value = %q", access.Value)
	}
	if refresh.Value != "opaque-refresh-value" {
		t.Fatalf("refresh cookie value = %q", refresh.Value)
	}
	for _, cookie := range []*http.Cookie{access, refresh} {
		if !cookie.HttpOnly {
			t.Fatalf("cookie %s must be http-only", cookie.Name)
		}
		if !cookie.Secure {
			t.Fatalf("cookie %s must be secure", cookie.Name)
		}
		if cookie.Path != "/" {
			t.Fatalf("cookie %s path = %q, want /", cookie.Name, cookie.Path)
		}
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatal("response must not carry the password hash")
	}
}

func TestAuthHandler_Login_ExactlyOneIdentifier(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testCookieWriter(), zerolog.Nop())

	bodies := []string{
		`{"password":"secret-password"}`,
		`{"username":"alice","email":"alice@example.com","password":"secret-password"}`,
	}
	for _, body := range bodies {
		c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", body)
		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("Login(%s) = %v, want 400", body, err)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"username":"alice","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookies may be set on a failed login")
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	session := testSession()
	stub := &stubSessionService{
		refreshFn: func(_ context.Context, rawToken string) (*ports.Session, error) {
			if rawToken != "old-refresh-value" {
				t.Fatalf("raw token = %q", rawToken)
			}
			return session, nil
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: "playlog_refresh", Value: "old-refresh-value"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	refresh := findCookie(rec.Result().Cookies(), "playlog_refresh")
	if refresh == nil || refresh.Value != "opaque-refresh-value" {
		t.Fatalf("rotated refresh cookie not set: %+v", refresh)
	}
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testCookieWriter(), zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/refresh", "")
	if err := h.Refresh(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	stub := &stubSessionService{
		logoutFn: func(_ context.Context, rawToken string) error {
			if rawToken != "current-refresh-value" {
				t.Fatalf("raw token = %q", rawToken)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: "playlog_refresh", Value: "current-refresh-value"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, name := range []string{"playlog_access", "playlog_refresh"} {
		cookie := findCookie(rec.Result().Cookies(), name)
		if cookie == nil {
			t.Fatalf("expected expired %s cookie", name)
		}
		if cookie.Value != "" || cookie.MaxAge != -1 {
			t.Fatalf("cookie %s not expired: value=%q maxage=%d", name, cookie.Value, cookie.MaxAge)
		}
	}
}

func TestAuthHandler_Logout_FailureKeepsCookies(t *testing.T) {
	stub := &stubSessionService{
		logoutFn: func(context.Context, string) error {
			return domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: "playlog_refresh", Value: "stale-value"})

	if err := h.Logout(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("failed logout must not touch cookies")
	}
}

func TestAuthHandler_Token(t *testing.T) {
	stub := &stubSessionService{
		authenticateFn: func(_ context.Context, identifier, password string) (*domain.User, error) {
			if identifier != "alice@example.com" || password != "secret-password" {
				t.Fatalf("unexpected args: %s", identifier)
			}
			return &domain.User{ID: "user-1", Username: "alice", Email: identifier, PasswordHash: "$2a$x"}, nil
		},
	}
	h := NewAuthHandler(stub, testCookieWriter(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/token", `{"identifier":"alice@example.com","password":"secret-password"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("legacy credential check must not open a session")
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatal("response must not leak the password hash")
	}
}
