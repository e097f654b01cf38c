package handler

import (
	"time"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

type createZapatillaRequest struct {
	Marca          string  `json:"marca"          validate:"notblank,max=50"`
	Modelo         string  `json:"modelo"         validate:"notblank,max=100"`
	CodigoProducto string  `json:"codigoProducto" validate:"required,codigoproducto"`
	Talla          float64 `json:"talla"          validate:"gte=20,lte=52"`
	Color          string  `json:"color"          validate:"notblank,max=50"`
	Tipo           string  `json:"tipo"           validate:"required,oneof=Running Basketball Training Casual Trail"`
	Precio         float64 `json:"precio"         validate:"gte=0.01"`
	Stock          int     `json:"stock"          validate:"gte=0"`
}

// updateZapatillaRequest serves both PUT and PATCH; omitted fields are kept.
type updateZapatillaRequest struct {
	CodigoProducto *string  `json:"codigoProducto" validate:"omitempty,codigoproducto"`
	Talla          *float64 `json:"talla"          validate:"omitempty,gte=20,lte=52"`
	Color          *string  `json:"color"          validate:"omitempty,notblank,max=50"`
	Tipo           *string  `json:"tipo"           validate:"omitempty,oneof=Running Basketball Training Casual Trail"`
	Precio         *float64 `json:"precio"         validate:"omitempty,gte=0.01"`
	Stock          *int     `json:"stock"          validate:"omitempty,gte=0"`
}

type zapatillaResponse struct {
	ID             string    `json:"id"`
	Marca          string    `json:"marca"`
	Modelo         string    `json:"modelo"`
	CodigoProducto string    `json:"codigoProducto"`
	Talla          float64   `json:"talla"`
	Color          string    `json:"color"`
	Tipo           string    `json:"tipo"`
	Precio         float64   `json:"precio"`
	Stock          int       `json:"stock"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type listZapatillasResponse struct {
	Items      []zapatillaResponse `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
	SortBy     string              `json:"sortBy"`
	Direction  string              `json:"direction"`
}

func (r createZapatillaRequest) toInput() ports.CreateZapatillaInput {
	return ports.CreateZapatillaInput{
		Marca:          r.Marca,
		Modelo:         r.Modelo,
		CodigoProducto: r.CodigoProducto,
		Talla:          r.Talla,
		Color:          r.Color,
		Tipo:           r.Tipo,
		Precio:         r.Precio,
		Stock:          r.Stock,
	}
}

func (r updateZapatillaRequest) toInput() ports.UpdateZapatillaInput {
	return ports.UpdateZapatillaInput{
		CodigoProducto: r.CodigoProducto,
		Talla:          r.Talla,
		Color:          r.Color,
		Tipo:           r.Tipo,
		Precio:         r.Precio,
		Stock:          r.Stock,
	}
}

func toZapatillaResponse(z *domain.Zapatilla) zapatillaResponse {
	return zapatillaResponse{
		ID:             z.ID,
		Marca:          z.Marca,
		Modelo:         z.Modelo,
		CodigoProducto: z.CodigoProducto,
		Talla:          z.Talla,
		Color:          z.Color,
		Tipo:           z.Tipo,
		Precio:         z.Precio,
		Stock:          z.Stock,
		CreatedAt:      z.CreatedAt,
		UpdatedAt:      z.UpdatedAt,
	}
}
