package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/playlog/playlog-api/internal/infrastructure/config"
)

func TestCookieWriterAttributes(t *testing.T) {
	w := NewCookieWriter(config.CookieConfig{
		AccessName:  "playlog_access",
		RefreshName: "playlog_refresh",
		Secure:      true,
		SameSite:    "none",
	})

	expires := time.Now().Add(time.Hour)
	cookie := w.Access("token-value", expires)

	if cookie.Name != "playlog_access" || cookie.Value != "token-value" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.Path != "/" {
		t.Fatalf("wrong attributes: %+v", cookie)
	}
	if cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("samesite = %v, want None", cookie.SameSite)
	}
	if !cookie.Expires.Equal(expires) {
		t.Fatalf("expires = %v, want %v", cookie.Expires, expires)
	}
}

func TestCookieWriterSameSiteMapping(t *testing.T) {
	cases := []struct {
		value string
		want  http.SameSite
	}{
		{"none", http.SameSiteNoneMode},
		{"strict", http.SameSiteStrictMode},
		{"lax", http.SameSiteLaxMode},
		{"", http.SameSiteLaxMode},
		{"nonsense", http.SameSiteLaxMode},
	}
	for _, tc := range cases {
		w := NewCookieWriter(config.CookieConfig{AccessName: "a", RefreshName: "r", SameSite: tc.value})
		if got := w.Access("v", time.Now()).SameSite; got != tc.want {
			t.Fatalf("SameSite(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestCookieWriterExpire(t *testing.T) {
	w := NewCookieWriter(config.CookieConfig{
		AccessName:  "playlog_access",
		RefreshName: "playlog_refresh",
		Secure:      true,
		SameSite:    "none",
	})

	for _, cookie := range []*http.Cookie{w.ExpireAccess(), w.ExpireRefresh()} {
		if cookie.Value != "" {
			t.Fatalf("expired cookie %s keeps a value: %q", cookie.Name, cookie.Value)
		}
		if cookie.MaxAge != -1 {
			t.Fatalf("expired cookie %s MaxAge = %d, want -1", cookie.Name, cookie.MaxAge)
		}
		if !cookie.Expires.Equal(time.Unix(0, 0)) {
			t.Fatalf("expired cookie %s Expires = %v", cookie.Name, cookie.Expires)
		}
		// Deletion must carry the same scoping attributes as creation.
		if !cookie.HttpOnly || !cookie.Secure || cookie.Path != "/" || cookie.SameSite != http.SameSiteNoneMode {
			t.Fatalf("expired cookie %s attributes differ: %+v", cookie.Name, cookie)
		}
	}
}
