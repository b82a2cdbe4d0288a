package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	mw "github.com/playlog/playlog-api/internal/api/middleware"
	"github.com/playlog/playlog-api/internal/core/ports"
	"github.com/playlog/playlog-api/internal/infrastructure/queue"
)

// PlayHandler exposes the authenticated user's play history. The Import
// endpoint hands batches to the background dispatcher instead of writing
// inline.
type PlayHandler struct {
	plays      ports.PlayService
	dispatcher *queue.Dispatcher
	logger     zerolog.Logger
}

func NewPlayHandler(plays ports.PlayService, dispatcher *queue.Dispatcher, logger zerolog.Logger) *PlayHandler {
	return &PlayHandler{
		plays:      plays,
		dispatcher: dispatcher,
		logger:     logger.With().Str("handler", "play").Logger(),
	}
}

// Record godoc
// @Summary      Record a play session
// @Tags         plays
// @Accept       json
// @Produce      json
// @Param        request body recordPlayRequest true "Play session"
// @Success      201 {object} playResponse
// @Failure      400 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/plays [post]
func (h *PlayHandler) Record(c echo.Context) error {
	var req recordPlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	play, err := h.plays.Record(c.Request().Context(), toRecordPlayInput(req, mw.UserID(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPlayResponse(play))
}

// Import godoc
// @Summary      Import play sessions in bulk
// @Description  Queues up to 500 records for background persistence; per-user ordering is preserved.
// @Tags         plays
// @Accept       json
// @Produce      json
// @Param        request body importPlaysRequest true "Batch of play sessions"
// @Success      202 {object} importPlaysResponse
// @Failure      400 {object} errorResponse
// @Router       /v1/plays/import [post]
func (h *PlayHandler) Import(c echo.Context) error {
	var req importPlaysRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := mw.UserID(c)
	inputs := make([]ports.RecordPlayInput, 0, len(req.Plays))
	for _, p := range req.Plays {
		inputs = append(inputs, toRecordPlayInput(p, userID))
	}
	h.dispatcher.EnqueueBatch(inputs)
	h.logger.Info().Str("user_id", userID).Int("count", len(inputs)).Msg("play import accepted")

	return c.JSON(http.StatusAccepted, importPlaysResponse{Accepted: len(inputs)})
}

// Get godoc
// @Summary      Get a play record
// @Tags         plays
// @Produce      json
// @Param        id path string true "Play id"
// @Success      200 {object} playResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/plays/{id} [get]
func (h *PlayHandler) Get(c echo.Context) error {
	play, err := h.plays.Get(c.Request().Context(), c.Param("id"), mw.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlayResponse(play))
}

// List godoc
// @Summary      List the caller's play records
// @Tags         plays
// @Produce      json
// @Param        game_id query string false "Filter by game"
// @Param        page    query int    false "Page (1-based)"
// @Param        limit   query int    false "Page size (max 100)"
// @Success      200 {object} playListResponse
// @Router       /v1/plays [get]
func (h *PlayHandler) List(c echo.Context) error {
	result, err := h.plays.List(c.Request().Context(), ports.ListPlaysFilter{
		UserID: mw.UserID(c),
		GameID: c.QueryParam("game_id"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]playResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toPlayResponse(p))
	}
	return c.JSON(http.StatusOK, playListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Update godoc
// @Summary      Update a play record
// @Tags         plays
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Play id"
// @Param        request body updatePlayRequest true "Fields to change; empty fields are ignored"
// @Success      200 {object} playResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/plays/{id} [put]
func (h *PlayHandler) Update(c echo.Context) error {
	var req updatePlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	play, err := h.plays.Update(c.Request().Context(), c.Param("id"), mw.UserID(c), ports.UpdatePlayInput{
		PlayedAt:    req.PlayedAt,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlayResponse(play))
}

// Delete godoc
// @Summary      Delete a play record
// @Tags         plays
// @Produce      json
// @Param        id path string true "Play id"
// @Success      200 {object} messageResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/plays/{id} [delete]
func (h *PlayHandler) Delete(c echo.Context) error {
	if err := h.plays.Delete(c.Request().Context(), c.Param("id"), mw.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "play deleted"})
}

func toRecordPlayInput(req recordPlayRequest, userID string) ports.RecordPlayInput {
	return ports.RecordPlayInput{
		UserID:      userID,
		GameID:      req.GameID,
		PlayedAt:    req.PlayedAt,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		Notes:       req.Notes,
	}
}
