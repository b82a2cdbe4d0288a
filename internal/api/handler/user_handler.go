package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/api/metrics"
	mw "github.com/playlog/playlog-api/internal/api/middleware"
	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type updateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=32"`
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserHandler exposes registration and the authenticated user's profile.
type UserHandler struct {
	sessions ports.SessionService
	users    ports.UserService
	cookies  *CookieWriter
	logger   zerolog.Logger
}

func NewUserHandler(sessions ports.SessionService, users ports.UserService, cookies *CookieWriter, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		sessions: sessions,
		users:    users,
		cookies:  cookies,
		logger:   logger.With().Str("handler", "user").Logger(),
	}
}

// Register godoc
// @Summary      Create an account
// @Description  Registers a new user and opens a session, setting both session cookies.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "New account"
// @Success      201 {object} identityResponse
// @Failure      400 {object} errorResponse
// @Failure      409 {object} errorResponse
// @Router       /v1/users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	session, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	c.SetCookie(h.cookies.Access(session.AccessToken, session.AccessExpiresAt))
	c.SetCookie(h.cookies.Refresh(session.RefreshToken, session.RefreshExpiresAt))
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusCreated, toIdentityResponse(session.User))
}

// Me godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} userResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), mw.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body updateUserRequest true "Fields to change; empty fields are ignored"
// @Success      200 {object} userResponse
// @Failure      400 {object} errorResponse
// @Failure      409 {object} errorResponse
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), mw.UserID(c), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteMe godoc
// @Summary      Delete the authenticated user's account
// @Description  Removes the account, its refresh tokens and play history, and clears the session cookies.
// @Tags         users
// @Produce      json
// @Success      200 {object} messageResponse
// @Failure      401 {object} errorResponse
// @Router       /v1/users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID := mw.UserID(c)
	if err := h.users.Delete(c.Request().Context(), userID); err != nil {
		return err
	}

	c.SetCookie(h.cookies.ExpireAccess())
	c.SetCookie(h.cookies.ExpireRefresh())
	h.logger.Info().Str("user_id", userID).Msg("account deleted")

	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
