package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type catalogSearchResponse struct {
	Query   string               `json:"query"`
	Results []domain.CatalogGame `json:"results"`
}

// CatalogHandler proxies game lookups against the external catalog.
type CatalogHandler struct {
	catalog ports.CatalogService
	logger  zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Search godoc
// @Summary      Search the external game catalog
// @Description  Results are cached; repeated queries are served from Redis.
// @Tags         catalog
// @Produce      json
// @Param        q query string true "Search query"
// @Success      200 {object} catalogSearchResponse
// @Failure      400 {object} errorResponse
// @Failure      502 {object} errorResponse
// @Router       /v1/catalog/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	results, err := h.catalog.Search(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
		}
		h.logger.Error().Err(err).Str("query", query).Msg("catalog search failed")
		return echo.NewHTTPError(http.StatusBadGateway, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, catalogSearchResponse{Query: query, Results: results})
}
