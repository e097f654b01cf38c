package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// ProfileInput carries the editable profile fields of an account.
type ProfileInput struct {
	Nombre    string
	Apellidos string
	Email     string
}

// AccountService covers account reads, profile edits and soft-disable.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, username string, input ProfileInput) (*domain.Account, error)
	SetDisabled(ctx context.Context, actor, id string, disabled bool) (*domain.Account, error)
}
