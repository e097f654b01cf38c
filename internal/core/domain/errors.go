package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrPasswordMismatch    = errors.New("password confirmation does not match")
	ErrDuplicateCredential = errors.New("username or email already in use")
	ErrDuplicateUsername   = fmt.Errorf("%w: username already taken", ErrDuplicateCredential)
	ErrDuplicateEmail      = fmt.Errorf("%w: email already registered", ErrDuplicateCredential)
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTooManyAttempts     = errors.New("too many login attempts")
	ErrAccountNotFound     = errors.New("account not found")

	ErrTokenInvalid          = errors.New("invalid token")
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrTokenInvalid)
	ErrTokenInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrTokenInvalid)
	ErrTokenExpired          = errors.New("token expired")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer already exists")
	ErrOwnerHasCustomer = errors.New("account already owns a customer")

	ErrZapatillaNotFound = errors.New("zapatilla not found")
	ErrZapatillaExists   = errors.New("product code already in catalog")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
