package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

const defaultCatalogPageSize = 10

// zapatillaSortFields maps the sortable JSON names to stored field names.
var zapatillaSortFields = map[string]string{
	"id":        "_id",
	"marca":     "marca",
	"modelo":    "modelo",
	"talla":     "talla",
	"tipo":      "tipo",
	"precio":    "precio",
	"stock":     "stock",
	"createdAt": "created_at",
}

type ZapatillaService struct {
	repo   ports.ZapatillaRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewZapatillaService(repo ports.ZapatillaRepository, logger zerolog.Logger) *ZapatillaService {
	return &ZapatillaService{repo: repo, logger: logger, now: time.Now}
}

func (s *ZapatillaService) CreateZapatilla(ctx context.Context, in ports.CreateZapatillaInput) (*domain.Zapatilla, error) {
	now := s.now().UTC()
	z := &domain.Zapatilla{
		ID:             ulid.Make().String(),
		Marca:          strings.TrimSpace(in.Marca),
		Modelo:         strings.TrimSpace(in.Modelo),
		CodigoProducto: in.CodigoProducto,
		Talla:          in.Talla,
		Color:          strings.TrimSpace(in.Color),
		Tipo:           in.Tipo,
		Precio:         in.Precio,
		Stock:          in.Stock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, z); err != nil {
		return nil, err
	}

	s.logger.Info().Str("zapatilla_id", z.ID).Str("codigo", z.CodigoProducto).Msg("zapatilla created")
	return z, nil
}

func (s *ZapatillaService) GetZapatilla(ctx context.Context, id string) (*domain.Zapatilla, error) {
	return s.repo.FindByID(ctx, id)
}

// ListZapatillas returns a page of the catalog. Sorting defaults to id ascending.
func (s *ZapatillaService) ListZapatillas(ctx context.Context, in ports.ListZapatillasInput) (*ports.ListZapatillasResult, error) {
	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	field, ok := zapatillaSortFields[sortBy]
	if !ok {
		return nil, domain.NewValidationError(map[string]string{"sortBy": "unknown sort field"})
	}

	direction := strings.ToLower(in.Direction)
	switch direction {
	case "":
		direction = "asc"
	case "asc", "desc":
	default:
		return nil, domain.NewValidationError(map[string]string{"direction": "must be one of: asc desc"})
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultCatalogPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.repo.List(ctx, ports.ListZapatillasFilter{
		Marca:  strings.TrimSpace(in.Marca),
		Tipo:   strings.TrimSpace(in.Tipo),
		SortBy: field,
		Desc:   direction == "desc",
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list zapatillas: %w", err)
	}

	return &ports.ListZapatillasResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		SortBy:     sortBy,
		Direction:  direction,
	}, nil
}

// UpdateZapatilla applies the non-nil fields of in. Marca and modelo are fixed
// once created.
func (s *ZapatillaService) UpdateZapatilla(ctx context.Context, id string, in ports.UpdateZapatillaInput) (*domain.Zapatilla, error) {
	z, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CodigoProducto != nil {
		z.CodigoProducto = *in.CodigoProducto
	}
	if in.Talla != nil {
		z.Talla = *in.Talla
	}
	if in.Color != nil {
		z.Color = strings.TrimSpace(*in.Color)
	}
	if in.Tipo != nil {
		z.Tipo = *in.Tipo
	}
	if in.Precio != nil {
		z.Precio = *in.Precio
	}
	if in.Stock != nil {
		z.Stock = *in.Stock
	}
	z.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, z); err != nil {
		return nil, err
	}

	s.logger.Info().Str("zapatilla_id", z.ID).Int("stock", z.Stock).Msg("zapatilla updated")
	return z, nil
}

func (s *ZapatillaService) DeleteZapatilla(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("zapatilla_id", id).Msg("zapatilla deleted")
	return nil
}
