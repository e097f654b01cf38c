package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs bearer tokens for an account.
type TokenIssuer interface {
	Issue(account *domain.Account) (string, error)
}

// TokenValidator verifies a bearer token and returns its claims.
// Failures are domain.ErrTokenMalformed, domain.ErrTokenInvalidSignature or domain.ErrTokenExpired.
type TokenValidator interface {
	Validate(token string) (*domain.TokenClaims, error)
}

// LoginThrottle counts failed logins per username.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
