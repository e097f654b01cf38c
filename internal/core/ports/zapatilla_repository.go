package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// ListZapatillasFilter carries the catalog query. Marca and Tipo are
// case-insensitive partial matches; empty means no filter.
type ListZapatillasFilter struct {
	Marca  string
	Tipo   string
	SortBy string // bson field name
	Desc   bool
	Page   int // 1-based
	Limit  int
}

// ZapatillaRepository defines persistence operations for the catalog.
type ZapatillaRepository interface {
	Create(ctx context.Context, z *domain.Zapatilla) error
	FindByID(ctx context.Context, id string) (*domain.Zapatilla, error)
	List(ctx context.Context, filter ListZapatillasFilter) ([]*domain.Zapatilla, int64, error)
	Update(ctx context.Context, z *domain.Zapatilla) error
	Delete(ctx context.Context, id string) error
}
