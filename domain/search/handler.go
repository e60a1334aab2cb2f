package search

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
)

// Handler handles HTTP requests for studio search.
type Handler struct {
	svc *Service
}

// NewHandler creates a new search handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search runs a full-text query over studios
// GET /api/studios/search?q=...&limit=...
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperror.ErrBadRequest.WithMessage("query parameter 'q' is required")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperror.ErrBadRequest.WithMessage("limit must be an integer")
		}
		limit = n
	}

	results, err := h.svc.Query(c.Request().Context(), query, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}
