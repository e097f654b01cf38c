package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// AccountRepository persists accounts keyed by unique username and unique email.
// Create must reject a username or email collision with domain.ErrDuplicateCredential
// even when the caller's existence pre-check raced with another insert.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update overwrites the mutable fields: profile, roles, disabled, owned resource, updated_at.
	Update(ctx context.Context, account *domain.Account) error
}
