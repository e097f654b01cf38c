package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

type AccountService struct {
	repo   ports.AccountRepository
	events ports.AccountEventRecorder
	log    zerolog.Logger
	now    func() time.Time
}

func NewAccountService(repo ports.AccountRepository, events ports.AccountEventRecorder, log zerolog.Logger) *AccountService {
	if events == nil {
		events = discardEvents{}
	}
	return &AccountService{repo: repo, events: events, log: log, now: time.Now}
}

func (s *AccountService) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile edits nombre, apellidos and email. A changed email must stay unique.
func (s *AccountService) UpdateProfile(ctx context.Context, username string, in ports.ProfileInput) (*domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(in.Email, account.Email) {
		other, err := s.repo.FindByEmail(ctx, in.Email)
		switch {
		case err == nil && other.ID != account.ID:
			return nil, domain.ErrDuplicateEmail
		case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	account.Nombre = in.Nombre
	account.Apellidos = in.Apellidos
	account.Email = in.Email
	account.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SetDisabled soft-disables or re-enables the account identified by id.
// Tokens already issued stay valid until they expire.
func (s *AccountService) SetDisabled(ctx context.Context, actor, id string, disabled bool) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Disabled == disabled {
		return account, nil
	}

	account.Disabled = disabled
	account.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	eventType := domain.EventEnabled
	if disabled {
		eventType = domain.EventDisabled
	}
	s.log.Info().Str("username", account.Username).Str("actor", actor).Bool("disabled", disabled).Msg("account status changed")
	s.events.Record(domain.AccountEvent{Type: eventType, Username: account.Username, Actor: actor, OccurredAt: account.UpdatedAt})

	return account, nil
}
