package tree

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers tree routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/tree")
	g.GET("/ancestors/:id", h.Ancestors)
	g.GET("/descendants/:id", h.Descendants)
	g.GET("/notable/:id", h.Notable)
	g.POST("/layout", h.Layout)
}
