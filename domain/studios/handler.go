package studios

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
)

// Handler handles HTTP requests for studios.
type Handler struct {
	svc *Service
}

// NewHandler creates a new studios handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create adds a new studio
// POST /api/studios
func (h *Handler) Create(c echo.Context) error {
	var req CreateStudioRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if req.Name == "" {
		return apperror.ErrBadRequest.WithMessage("name is required")
	}

	studio, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, studio)
}

// Update applies a sparse options record to a batch of studios
// PATCH /api/studios
func (h *Handler) Update(c echo.Context) error {
	var req UpdateStudiosRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if len(req.IDs) == 0 {
		return apperror.ErrBadRequest.WithMessage("ids must not be empty")
	}

	updated, err := h.svc.Update(c.Request().Context(), req.IDs, req.Options)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"studios": updated})
}

// Remove deletes a batch of studios with cascade cleanup
// DELETE /api/studios
func (h *Handler) Remove(c echo.Context) error {
	var req RemoveStudiosRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if len(req.IDs) == 0 {
		return apperror.ErrBadRequest.WithMessage("ids must not be empty")
	}

	if err := h.svc.Remove(c.Request().Context(), req.IDs); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Get returns one studio with its labels
// GET /api/studios/:id
func (h *Handler) Get(c echo.Context) error {
	studio, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, studio)
}

// AttachUnmatched re-runs the unmatched-scene matcher for one studio
// POST /api/studios/:id/attach-unmatched
func (h *Handler) AttachUnmatched(c echo.Context) error {
	studio, err := h.svc.AttachUnmatched(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	// A missing studio or matcher failure yields an absent result, not an
	// error response.
	return c.JSON(http.StatusOK, map[string]any{"studio": studio})
}

// RunPlugins re-runs the custom labeling hook over a batch of studios
// POST /api/studios/run-plugins
func (h *Handler) RunPlugins(c echo.Context) error {
	var req RunPluginsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if len(req.IDs) == 0 {
		return apperror.ErrBadRequest.WithMessage("ids must not be empty")
	}

	processed, err := h.svc.RunPlugins(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"studios": processed})
}
