package people

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/pagination"
)

// Handler handles people HTTP requests.
type Handler struct {
	svc *Service
}

// NewHandler creates a new people handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/people.
func (h *Handler) List(c echo.Context) error {
	var args pagination.PageArgs
	if err := c.Bind(&args); err != nil {
		return apperror.NewBadRequest("invalid pagination arguments")
	}

	conn, err := h.svc.List(c.Request().Context(), args)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, conn)
}

// Get handles GET /api/people/:id.
func (h *Handler) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}
