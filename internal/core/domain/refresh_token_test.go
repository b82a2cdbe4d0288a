package domain

import (
	"testing"
	"time"
)

func TestRefreshTokenExpiredAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{"future expiry", now.Add(time.Hour), false},
		{"exactly now is still valid", now, false},
		{"one nanosecond past", now.Add(-time.Nanosecond), true},
		{"long expired", now.Add(-24 * time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := RefreshToken{ExpiresAt: tc.expiresAt}
			if got := token.ExpiredAt(now); got != tc.expired {
				t.Fatalf("ExpiredAt(%v) with expiry %v = %v, want %v", now, tc.expiresAt, got, tc.expired)
			}
		})
	}
}
