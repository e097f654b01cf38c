package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError(map[string]string{"email": "must be a valid email"}), http.StatusBadRequest, "validation failed"},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, "password confirmation does not match"},
		{"duplicate username", fmt.Errorf("register: %w", domain.ErrDuplicateUsername), http.StatusBadRequest, "username already taken"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "email already registered"},
		{"duplicate race", domain.ErrDuplicateCredential, http.StatusBadRequest, "username or email already in use"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "invalid or expired token"},
		{"bad signature", domain.ErrTokenInvalidSignature, http.StatusUnauthorized, "invalid or expired token"},
		{"malformed token", domain.ErrTokenMalformed, http.StatusUnauthorized, "invalid or expired token"},
		{"anonymous", domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts, try again later"},
		{"account missing", domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{"customer missing", domain.ErrCustomerNotFound, http.StatusNotFound, "customer not found"},
		{"customer exists", domain.ErrCustomerExists, http.StatusConflict, "customer already exists"},
		{"owner already linked", domain.ErrOwnerHasCustomer, http.StatusConflict, "account already owns a customer"},
		{"zapatilla not found", domain.ErrZapatillaNotFound, http.StatusNotFound, "zapatilla not found"},
		{"duplicate product code", domain.ErrZapatillaExists, http.StatusConflict, "product code already in catalog"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handle := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			handle(tt.err, e.NewContext(req, rec))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body.Error)
			}

			challenge := rec.Header().Get(echo.HeaderWWWAuthenticate)
			if (tt.wantCode == http.StatusUnauthorized) != (challenge != "") {
				t.Fatalf("unexpected WWW-Authenticate %q for status %d", challenge, rec.Code)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	handle := NewHTTPErrorHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()

	handle(domain.NewValidationError(map[string]string{"username": "is required"}), echo.New().NewContext(req, rec))

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Fields["username"] != "is required" {
		t.Fatalf("expected field detail, got %v", body.Fields)
	}
}
