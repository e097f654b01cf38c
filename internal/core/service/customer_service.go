package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CustomerService struct {
	repo     ports.CustomerRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCustomerService(repo ports.CustomerRepository, accounts ports.AccountRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, accounts: accounts, logger: logger, now: time.Now}
}

// CreateCustomer stores a new customer. When OwnerUsername is set, the account
// is resolved first and then pointed at the new customer. An account owns at
// most one customer; if linking fails the new customer is removed again.
func (s *CustomerService) CreateCustomer(ctx context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	var owner *domain.Account
	if in.OwnerUsername != "" {
		acc, err := s.accounts.FindByUsername(ctx, in.OwnerUsername)
		if err != nil {
			return nil, err
		}
		if acc.OwnedResource() != "" {
			return nil, domain.ErrOwnerHasCustomer
		}
		owner = acc
	}

	now := s.now().UTC()
	customer := &domain.Customer{
		ID:        ulid.Make().String(),
		Nombre:    in.Nombre,
		Apellidos: in.Apellidos,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if owner != nil {
		id := customer.ID
		owner.OwnedResourceID = &id
		owner.UpdatedAt = now
		if err := s.accounts.Update(ctx, owner); err != nil {
			if delErr := s.repo.Delete(context.WithoutCancel(ctx), customer.ID); delErr != nil {
				s.logger.Error().Err(delErr).Str("customer_id", customer.ID).Msg("failed to remove unlinked customer")
			}
			return nil, fmt.Errorf("link customer to %s: %w", owner.Username, err)
		}
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("owner", in.OwnerUsername).Msg("customer created")
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// ListCustomers returns a page. A scoped caller only ever sees its owned customer.
func (s *CustomerService) ListCustomers(ctx context.Context, in ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	result := &ports.ListCustomersResult{Items: []*domain.Customer{}, Page: page, Limit: limit}

	filter := ports.ListCustomersFilter{Page: page, Limit: limit}
	if in.Scoped {
		if in.OwnedID == "" {
			return result, nil
		}
		filter.IDs = []string{in.OwnedID}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	result.Items = items
	result.Total = total
	result.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	return result, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, in ports.CustomerInput) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Nombre = in.Nombre
	customer.Apellidos = in.Apellidos
	customer.Email = in.Email
	customer.Telefono = in.Telefono
	customer.Direccion = in.Direccion
	customer.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}
