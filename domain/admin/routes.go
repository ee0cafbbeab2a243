package admin

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers admin routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/admin/cache/clear", h.ClearCache)
}
