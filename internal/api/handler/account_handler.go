package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pabloab/zapatillas-api/internal/api/middleware"
	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

// AccountHandler serves the signed-in user's profile and admin account controls.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type profileRequest struct {
	Nombre    string `json:"nombre"    validate:"notblank,max=100"`
	Apellidos string `json:"apellidos" validate:"max=150"`
	Email     string `json:"email"     validate:"required,email,max=254"`
}

type accountResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Nombre          string    `json:"nombre"`
	Apellidos       string    `json:"apellidos"`
	Roles           []string  `json:"roles"`
	Disabled        bool      `json:"disabled"`
	OwnedResourceID string    `json:"ownedResourceId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	roles := a.EffectiveRoles()
	out := accountResponse{
		ID:              a.ID,
		Username:        a.Username,
		Email:           a.Email,
		Nombre:          a.Nombre,
		Apellidos:       a.Apellidos,
		Roles:           make([]string, 0, len(roles)),
		Disabled:        a.Disabled,
		OwnedResourceID: a.OwnedResource(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	for _, r := range roles {
		out.Roles = append(out.Roles, string(r))
	}
	return out
}

// Me returns the caller's account.
//
// @Summary      Current account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/users/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	p, err := middleware.Authorize(c, domain.AnyAuthenticated())
	if err != nil {
		return err
	}

	account, err := h.service.GetByUsername(c.Request().Context(), p.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateMe edits the caller's profile fields.
//
// @Summary      Update current account profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/users/me [put]
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	p, err := middleware.Authorize(c, domain.AnyAuthenticated())
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.service.UpdateProfile(c.Request().Context(), p.Username, ports.ProfileInput{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Get returns any account by id.
//
// @Summary      Get account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin)); err != nil {
		return err
	}

	account, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Disable soft-disables an account.
//
// @Summary      Disable account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id}/disable [patch]
func (h *AccountHandler) Disable(c echo.Context) error {
	return h.setDisabled(c, true)
}

// Enable re-enables a disabled account.
//
// @Summary      Enable account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id}/enable [patch]
func (h *AccountHandler) Enable(c echo.Context) error {
	return h.setDisabled(c, false)
}

func (h *AccountHandler) setDisabled(c echo.Context, disabled bool) error {
	p, err := middleware.Authorize(c, domain.RoleRequired(domain.RoleAdmin))
	if err != nil {
		return err
	}

	account, err := h.service.SetDisabled(c.Request().Context(), p.Username, c.Param("id"), disabled)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}
