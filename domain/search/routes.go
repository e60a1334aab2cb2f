package search

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the search routes
func RegisterRoutes(e *echo.Echo, handler *Handler) {
	e.GET("/api/studios/search", handler.Search)
}
