package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// ListCustomersFilter carries paging parameters. IDs, when non-empty, restricts the page to those ids.
type ListCustomersFilter struct {
	IDs   []string
	Page  int // 1-based
	Limit int
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}
