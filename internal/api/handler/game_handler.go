package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	mw "github.com/playlog/playlog-api/internal/api/middleware"
	"github.com/playlog/playlog-api/internal/core/ports"
)

// GameHandler exposes the shared game collection.
type GameHandler struct {
	games  ports.GameService
	logger zerolog.Logger
}

func NewGameHandler(games ports.GameService, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		games:  games,
		logger: logger.With().Str("handler", "game").Logger(),
	}
}

// Create godoc
// @Summary      Add a game to the collection
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        request body createGameRequest true "Game"
// @Success      201 {object} gameResponse
// @Failure      400 {object} errorResponse
// @Failure      409 {object} errorResponse
// @Router       /v1/games [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req createGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	game, err := h.games.Create(c.Request().Context(), ports.CreateGameInput{
		Title:       req.Title,
		Developer:   req.Developer,
		Genres:      req.Genres,
		Platforms:   req.Platforms,
		ReleaseYear: req.ReleaseYear,
		CoverURL:    req.CoverURL,
		UserID:      mw.UserID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGameResponse(game))
}

// Get godoc
// @Summary      Get a game by id
// @Tags         games
// @Produce      json
// @Param        id path string true "Game id"
// @Success      200 {object} gameResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	game, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameResponse(game))
}

// List godoc
// @Summary      List games
// @Description  Filters by genre, platform and a case-insensitive title/developer search.
// @Tags         games
// @Produce      json
// @Param        genre    query string false "Exact genre"
// @Param        platform query string false "Exact platform"
// @Param        search   query string false "Title or developer substring"
// @Param        page     query int    false "Page (1-based)"
// @Param        limit    query int    false "Page size (max 100)"
// @Success      200 {object} gameListResponse
// @Router       /v1/games [get]
func (h *GameHandler) List(c echo.Context) error {
	filter := ports.ListGamesFilter{
		Genre:    c.QueryParam("genre"),
		Platform: c.QueryParam("platform"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	result, err := h.games.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := make([]gameResponse, 0, len(result.Items))
	for _, g := range result.Items {
		items = append(items, toGameResponse(g))
	}
	return c.JSON(http.StatusOK, gameListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Update godoc
// @Summary      Update a game
// @Description  Only the user who added the game may change it.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Game id"
// @Param        request body updateGameRequest true "Fields to change; empty fields are ignored"
// @Success      200 {object} gameResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	var req updateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	game, err := h.games.Update(c.Request().Context(), c.Param("id"), mw.UserID(c), ports.UpdateGameInput{
		Title:       req.Title,
		Developer:   req.Developer,
		Genres:      req.Genres,
		Platforms:   req.Platforms,
		ReleaseYear: req.ReleaseYear,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameResponse(game))
}

// Delete godoc
// @Summary      Remove a game
// @Description  Only the user who added the game may remove it.
// @Tags         games
// @Produce      json
// @Param        id path string true "Game id"
// @Success      200 {object} messageResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Router       /v1/games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.games.Delete(c.Request().Context(), c.Param("id"), mw.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "game deleted"})
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed; services apply their own defaults and clamps.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
