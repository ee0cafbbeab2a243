package research

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/pagination"
)

// Handler handles research queue HTTP requests.
type Handler struct {
	svc *Service
}

// NewHandler creates a new research handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Queue handles GET /api/research/queue.
func (h *Handler) Queue(c echo.Context) error {
	var args pagination.PageArgs
	if err := c.Bind(&args); err != nil {
		return apperror.NewBadRequest("invalid pagination arguments")
	}

	conn, err := h.svc.Queue(c.Request().Context(), args)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, conn)
}
