package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/service"
)

func TestHTTPErrorHandlerMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"game not found", domain.ErrGameNotFound, http.StatusNotFound, "game not found"},
		{"play not found", domain.ErrPlayNotFound, http.StatusNotFound, "play not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "username or email already taken"},
		{"duplicate game", domain.ErrDuplicateGame, http.StatusConflict, "game already exists"},
		{"missing secret hides cause", service.ErrMissingSecret, http.StatusInternalServerError, "internal server error"},
		{"unknown error hides cause", errors.New("mongo: socket closed"), http.StatusInternalServerError, "internal server error"},
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] != tc.message {
				t.Fatalf("message = %q, want %q", body["error"], tc.message)
			}
		})
	}
}

func TestHTTPErrorHandlerWrappedError(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Services wrap domain sentinels; errors.Is must still resolve them.
	handler(fmt.Errorf("refresh: %w", domain.ErrInvalidCredentials), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
