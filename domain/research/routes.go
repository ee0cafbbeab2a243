package research

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers research routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/research/queue", h.Queue)
}
