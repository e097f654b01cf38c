package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/pkg/metrics"
)

// Authorize evaluates req against the identity resolved by Authenticate and
// returns the principal when allowed. Handlers call it once, before any
// domain logic. An anonymous caller that presented a bad token gets the token
// error back so the response can say so.
func Authorize(c echo.Context, req domain.Requirement) (*domain.Principal, error) {
	id := domain.IdentityFrom(c.Request().Context())
	decision := domain.Decide(id.Principal, req)

	metrics.AuthorizationDecisionsTotal.
		WithLabelValues(req.Kind.String(), outcome(decision)).
		Inc()

	if decision.Allowed {
		return id.Principal, nil
	}
	if errors.Is(decision.Reason, domain.ErrUnauthenticated) && id.TokenErr != nil {
		return nil, id.TokenErr
	}
	return nil, decision.Reason
}

func outcome(d domain.Decision) string {
	switch {
	case d.Allowed:
		return "allow"
	case errors.Is(d.Reason, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "forbidden"
	}
}
