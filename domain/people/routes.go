package people

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers people routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/people")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}
