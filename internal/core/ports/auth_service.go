package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.Register.
type RegisterInput struct {
	Nombre               string
	Apellidos            string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Credentials is the login DTO.
type Credentials struct {
	Username string
	Password string
}

// AuthResult pairs an account with a freshly issued token.
type AuthResult struct {
	Account *domain.Account
	Token   string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, credentials Credentials) (*AuthResult, error)
}
