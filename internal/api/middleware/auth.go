package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
	"github.com/pabloab/zapatillas-api/internal/pkg/metrics"
)

// Authenticate resolves the bearer token into a domain.Identity stored on the
// request context. It never rejects: a missing or invalid token leaves the
// request anonymous and handlers decide through Authorize.
func Authenticate(tokens ports.TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := resolveIdentity(tokens, req.Header.Get(echo.HeaderAuthorization))

			if id.TokenErr != nil {
				reason := tokenFailureReason(id.TokenErr)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("path", req.URL.Path).
					Msg("bearer token rejected, continuing anonymously")
			}

			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

func resolveIdentity(tokens ports.TokenValidator, header string) domain.Identity {
	token, ok := bearerToken(header)
	if !ok {
		return domain.Identity{}
	}
	if token == "" {
		return domain.Identity{TokenErr: domain.ErrTokenMalformed}
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		return domain.Identity{TokenErr: err}
	}
	return domain.Identity{Principal: domain.NewPrincipal(*claims)}
}

// bearerToken reports whether header uses the Bearer scheme and returns its credential.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if len(parts) == 1 {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
