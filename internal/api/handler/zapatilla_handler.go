package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pabloab/zapatillas-api/internal/api/middleware"
	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

// ZapatillaHandler serves the shoe catalog. Reads are public, writes are admin only.
type ZapatillaHandler struct {
	service ports.ZapatillaService
}

func NewZapatillaHandler(service ports.ZapatillaService) *ZapatillaHandler {
	return &ZapatillaHandler{service: service}
}

// List handles GET /api/v1/zapatillas.
//
// @Summary      List the catalog
// @Tags         zapatillas
// @Produce      json
// @Param        marca      query     string  false  "Brand, partial match"
// @Param        tipo       query     string  false  "Type, partial match"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Param        sortBy     query     string  false  "id, marca, modelo, talla, tipo, precio, stock or createdAt"
// @Param        direction  query     string  false  "asc or desc"
// @Success      200        {object}  listZapatillasResponse
// @Failure      400        {object}  errorResponse
// @Router       /api/v1/zapatillas [get]
func (h *ZapatillaHandler) List(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.Public()); err != nil {
		return err
	}

	var page, limit int
	if err := echo.QueryParamsBinder(c).Int("page", &page).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	result, err := h.service.ListZapatillas(c.Request().Context(), ports.ListZapatillasInput{
		Marca:     c.QueryParam("marca"),
		Tipo:      c.QueryParam("tipo"),
		SortBy:    c.QueryParam("sortBy"),
		Direction: c.QueryParam("direction"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	items := make([]zapatillaResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toZapatillaResponse(item))
	}
	return c.JSON(http.StatusOK, listZapatillasResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		SortBy:     result.SortBy,
		Direction:  result.Direction,
	})
}

// Get handles GET /api/v1/zapatillas/:id.
//
// @Summary      Get a catalog entry
// @Tags         zapatillas
// @Produce      json
// @Param        id   path      string  true  "Zapatilla id"
// @Success      200  {object}  zapatillaResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/zapatillas/{id} [get]
func (h *ZapatillaHandler) Get(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.Public()); err != nil {
		return err
	}

	z, err := h.service.GetZapatilla(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toZapatillaResponse(z))
}

// Create handles POST /api/v1/zapatillas.
//
// @Summary      Add a catalog entry
// @Tags         zapatillas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createZapatillaRequest  true  "Zapatilla"
// @Success      201   {object}  zapatillaResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/zapatillas [post]
func (h *ZapatillaHandler) Create(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	var req createZapatillaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	z, err := h.service.CreateZapatilla(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toZapatillaResponse(z))
}

// Update handles PUT and PATCH /api/v1/zapatillas/:id. Both apply only the
// fields present in the body.
//
// @Summary      Update a catalog entry
// @Tags         zapatillas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Zapatilla id"
// @Param        body  body      updateZapatillaRequest  true  "Fields to change"
// @Success      200   {object}  zapatillaResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/zapatillas/{id} [put]
// @Router       /api/v1/zapatillas/{id} [patch]
func (h *ZapatillaHandler) Update(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	var req updateZapatillaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	z, err := h.service.UpdateZapatilla(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toZapatillaResponse(z))
}

// Delete handles DELETE /api/v1/zapatillas/:id.
//
// @Summary      Remove a catalog entry
// @Tags         zapatillas
// @Security     BearerAuth
// @Param        id  path  string  true  "Zapatilla id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/zapatillas/{id} [delete]
func (h *ZapatillaHandler) Delete(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	if err := h.service.DeleteZapatilla(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
