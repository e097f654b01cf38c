package handler

import (
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newRequestContext builds an echo.Context carrying p as the authenticated
// principal (nil for anonymous).
func newRequestContext(e *echo.Echo, method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(domain.WithIdentity(req.Context(), domain.Identity{Principal: p}))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func userPrincipal(username, owned string) *domain.Principal {
	return &domain.Principal{Username: username, AccountID: "acc-" + username, Roles: []domain.Role{domain.RoleUser}, OwnedResourceID: owned}
}

func adminPrincipal() *domain.Principal {
	return &domain.Principal{Username: "root", AccountID: "acc-root", Roles: []domain.Role{domain.RoleAdmin}}
}
