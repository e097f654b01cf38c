package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// CustomerInput carries the writable fields of a customer.
type CustomerInput struct {
	Nombre    string
	Apellidos string
	Email     string
	Telefono  string
	Direccion domain.Address
}

// CreateCustomerInput optionally links the new customer to an existing account.
type CreateCustomerInput struct {
	CustomerInput
	OwnerUsername string
}

// ListCustomersInput carries the list endpoint parameters. OwnedID scopes the
// result to a single customer for non-admin callers.
type ListCustomersInput struct {
	Scoped  bool
	OwnedID string
	Page    int
	Limit   int
}

// ListCustomersResult is returned by ListCustomers.
type ListCustomersResult struct {
	Items      []*domain.Customer
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, input ListCustomersInput) (*ListCustomersResult, error)
	UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}
