package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// CreateZapatillaInput carries every field of a new catalog entry.
type CreateZapatillaInput struct {
	Marca          string
	Modelo         string
	CodigoProducto string
	Talla          float64
	Color          string
	Tipo           string
	Precio         float64
	Stock          int
}

// UpdateZapatillaInput is a partial update. Nil fields are left unchanged.
type UpdateZapatillaInput struct {
	CodigoProducto *string
	Talla          *float64
	Color          *string
	Tipo           *string
	Precio         *float64
	Stock          *int
}

// ListZapatillasInput carries the list endpoint parameters. SortBy uses the
// JSON field names (marca, precio, ...); Direction is "asc" or "desc".
type ListZapatillasInput struct {
	Marca     string
	Tipo      string
	SortBy    string
	Direction string
	Page      int
	Limit     int
}

// ListZapatillasResult is returned by ListZapatillas.
type ListZapatillasResult struct {
	Items      []*domain.Zapatilla
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	SortBy     string
	Direction  string
}

type ZapatillaService interface {
	CreateZapatilla(ctx context.Context, input CreateZapatillaInput) (*domain.Zapatilla, error)
	GetZapatilla(ctx context.Context, id string) (*domain.Zapatilla, error)
	ListZapatillas(ctx context.Context, input ListZapatillasInput) (*ListZapatillasResult, error)
	UpdateZapatilla(ctx context.Context, id string, input UpdateZapatillaInput) (*domain.Zapatilla, error)
	DeleteZapatilla(ctx context.Context, id string) error
}
