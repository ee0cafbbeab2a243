package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

// Handler handles administrative cache control requests. These endpoints
// are for operators and debugging, not end users.
type Handler struct {
	cache rescache.Cache
	log   *slog.Logger
}

// NewHandler creates a new admin handler.
func NewHandler(cache rescache.Cache, log *slog.Logger) *Handler {
	return &Handler{
		cache: cache,
		log:   log.With(logger.Scope("admin")),
	}
}

// ClearCache handles POST /api/admin/cache/clear. Repeated "pattern" query
// parameters clear only keys containing those substrings; no pattern clears
// everything.
func (h *Handler) ClearCache(c echo.Context) error {
	patterns := c.QueryParams()["pattern"]

	before := h.cache.Len()
	h.cache.Clear(patterns...)
	cleared := before - h.cache.Len()

	h.log.Info("result cache cleared",
		slog.Any("patterns", patterns),
		slog.Int("cleared", cleared))

	return c.JSON(http.StatusOK, map[string]any{
		"cleared":   cleared,
		"remaining": h.cache.Len(),
	})
}
