package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/api/metrics"
	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

// AuthHandler exposes the session lifecycle: login, refresh, logout and the
// legacy credential check.
type AuthHandler struct {
	sessions ports.SessionService
	cookies  *CookieWriter
	logger   zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionService, cookies *CookieWriter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cookies:  cookies,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login godoc
// @Summary      Log in with username or email
// @Description  Verifies credentials, opens a session and sets the access and refresh cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials; exactly one of username or email"
// @Success      200 {object} identityResponse
// @Failure      400 {object} errorResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if (req.Username == "") == (req.Email == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of username or email is required")
	}

	session, err := h.sessions.Login(c.Request().Context(), ports.LoginInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return err
	}

	h.setSessionCookies(c, session)
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, toIdentityResponse(session.User))
}

// Refresh godoc
// @Summary      Rotate the refresh token
// @Description  Exchanges the refresh cookie for a fresh access token and a new refresh value.
// @Tags         auth
// @Produce      json
// @Success      200 {object} identityResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	value, ok := h.refreshCookie(c)
	if !ok {
		metrics.RefreshesTotal.WithLabelValues("denied").Inc()
		return domain.ErrInvalidCredentials
	}

	session, err := h.sessions.Refresh(c.Request().Context(), value)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("denied").Inc()
		return err
	}

	h.setSessionCookies(c, session)
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, toIdentityResponse(session.User))
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the refresh token and clears both session cookies.
// @Tags         auth
// @Produce      json
// @Success      200 {object} messageResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	value, ok := h.refreshCookie(c)
	if !ok {
		return domain.ErrInvalidCredentials
	}

	if err := h.sessions.Logout(c.Request().Context(), value); err != nil {
		// Cookies stay in place so the client can retry.
		return err
	}

	c.SetCookie(h.cookies.ExpireAccess())
	c.SetCookie(h.cookies.ExpireRefresh())
	metrics.LogoutsTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Token godoc
// @Summary      Verify raw credentials
// @Description  Checks a username-or-email identifier against a password without opening a session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body tokenRequest true "Identifier and password"
// @Success      200 {object} identityResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/auth/token [post]
// @Deprecated
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.sessions.Authenticate(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIdentityResponse(user.Identity()))
}

func (h *AuthHandler) setSessionCookies(c echo.Context, s *ports.Session) {
	c.SetCookie(h.cookies.Access(s.AccessToken, s.AccessExpiresAt))
	c.SetCookie(h.cookies.Refresh(s.RefreshToken, s.RefreshExpiresAt))
}

func (h *AuthHandler) refreshCookie(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(h.cookies.RefreshName())
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
	}
}
