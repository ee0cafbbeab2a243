package tree

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingraph-app/kingraph/pkg/apperror"
)

// Handler handles tree HTTP requests.
type Handler struct {
	svc *Service
}

// NewHandler creates a new tree handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Ancestors handles GET /api/tree/ancestors/:id. A missing person renders
// as a JSON null body, not a 404.
func (h *Handler) Ancestors(c echo.Context) error {
	gens, err := generationsParam(c)
	if err != nil {
		return err
	}
	node, err := h.svc.Ancestors(c.Request().Context(), c.Param("id"), gens)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, node)
}

// Descendants handles GET /api/tree/descendants/:id.
func (h *Handler) Descendants(c echo.Context) error {
	gens, err := generationsParam(c)
	if err != nil {
		return err
	}
	node, err := h.svc.Descendants(c.Request().Context(), c.Param("id"), gens)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, node)
}

// Notable handles GET /api/tree/notable/:id.
func (h *Handler) Notable(c echo.Context) error {
	results, err := h.svc.NotableRelatives(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Layout handles POST /api/tree/layout.
func (h *Handler) Layout(c echo.Context) error {
	var req LayoutRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid layout request body")
	}
	res, err := h.svc.Layout(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func generationsParam(c echo.Context) (*int, error) {
	raw := c.QueryParam("generations")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.NewBadRequest("generations must be an integer")
	}
	return &n, nil
}
