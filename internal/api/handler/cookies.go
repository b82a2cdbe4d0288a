package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/playlog/playlog-api/internal/infrastructure/config"
)

// CookieWriter builds the access- and refresh-token cookies from one shared
// attribute set. Both are HTTP-only and Path=/; Secure and SameSite come
// from configuration so local development can run without TLS. Deletion
// reuses the exact same attributes with an expired lifetime, which is what
// makes browsers reliably drop the cookie.
type CookieWriter struct {
	cfg config.CookieConfig
}

func NewCookieWriter(cfg config.CookieConfig) *CookieWriter {
	return &CookieWriter{cfg: cfg}
}

// RefreshName reports the configured refresh-cookie name so handlers can
// read the incoming value.
func (w *CookieWriter) RefreshName() string {
	return w.cfg.RefreshName
}

// Access returns the session (access-token) cookie.
func (w *CookieWriter) Access(token string, expires time.Time) *http.Cookie {
	return w.cookie(w.cfg.AccessName, token, expires)
}

// Refresh returns the refresh-token cookie.
func (w *CookieWriter) Refresh(token string, expires time.Time) *http.Cookie {
	return w.cookie(w.cfg.RefreshName, token, expires)
}

// ExpireAccess returns an immediately-expired access cookie.
func (w *CookieWriter) ExpireAccess() *http.Cookie {
	return w.expired(w.cfg.AccessName)
}

// ExpireRefresh returns an immediately-expired refresh cookie.
func (w *CookieWriter) ExpireRefresh() *http.Cookie {
	return w.expired(w.cfg.RefreshName)
}

func (w *CookieWriter) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   w.cfg.Secure,
		SameSite: w.sameSite(),
	}
}

func (w *CookieWriter) expired(name string) *http.Cookie {
	c := w.cookie(name, "", time.Unix(0, 0))
	c.MaxAge = -1
	return c
}

func (w *CookieWriter) sameSite() http.SameSite {
	switch strings.ToLower(w.cfg.SameSite) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
