package studios

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the studio routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/studios")

	g.POST("", h.Create)
	g.PATCH("", h.Update)
	g.DELETE("", h.Remove)
	g.POST("/run-plugins", h.RunPlugins)
	g.GET("/:id", h.Get)
	g.POST("/:id/attach-unmatched", h.AttachUnmatched)
}
