package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pabloab/zapatillas-api/internal/api/middleware"
	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customers (clientes).
// Admins manage every customer; a user may read and edit only the one it owns.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /api/v1/clientes.
//
// @Summary      List customers
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listCustomersResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/clientes [get]
func (h *CustomerHandler) List(c echo.Context) error {
	p, err := middleware.Authorize(c, domain.AnyAuthenticated())
	if err != nil {
		return err
	}

	var page, limit int
	if err := echo.QueryParamsBinder(c).Int("page", &page).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	result, err := h.service.ListCustomers(c.Request().Context(), ports.ListCustomersInput{
		Scoped:  !p.HasRole(domain.RoleAdmin),
		OwnedID: p.OwnedResourceID,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	items := make([]customerResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toCustomerResponse(item))
	}
	return c.JSON(http.StatusOK, listCustomersResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /api/v1/clientes/:id.
//
// @Summary      Get a customer
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  customerResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/clientes/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if _, err := middleware.Authorize(c, domain.OwnerOrRole(id, domain.RoleAdmin)); err != nil {
		return err
	}

	customer, err := h.service.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Create handles POST /api/v1/clientes.
//
// @Summary      Create a customer
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/clientes [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.service.CreateCustomer(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// Update handles PUT /api/v1/clientes/:id.
//
// @Summary      Update a customer
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer"
// @Success      200   {object}  customerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/clientes/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if _, err := middleware.Authorize(c, domain.OwnerOrRole(id, domain.RoleAdmin)); err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.service.UpdateCustomer(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Delete handles DELETE /api/v1/clientes/:id.
//
// @Summary      Delete a customer
// @Tags         clientes
// @Security     BearerAuth
// @Param        id  path  string  true  "Customer id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/clientes/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	if err := h.service.DeleteCustomer(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
