package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

const collectionZapatillas = "zapatillas"

type ZapatillaRepository struct {
	col *mongo.Collection
}

func NewZapatillaRepository(db *mongo.Database) *ZapatillaRepository {
	return &ZapatillaRepository{col: db.Collection(collectionZapatillas)}
}

func (r *ZapatillaRepository) Create(ctx context.Context, z *domain.Zapatilla) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, z); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrZapatillaExists
		}
		return fmt.Errorf("insert zapatilla: %w", err)
	}
	return nil
}

func (r *ZapatillaRepository) FindByID(ctx context.Context, id string) (*domain.Zapatilla, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var z domain.Zapatilla
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&z); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrZapatillaNotFound
		}
		return nil, fmt.Errorf("find zapatilla: %w", err)
	}
	return &z, nil
}

// List returns one page of the catalog and the number of matching documents.
func (r *ZapatillaRepository) List(ctx context.Context, f ports.ListZapatillasFilter) ([]*domain.Zapatilla, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := zapatillaFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count zapatillas: %w", err)
	}

	order := 1
	if f.Desc {
		order = -1
	}
	sort := bson.D{{Key: f.SortBy, Value: order}}
	if f.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find zapatillas: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Zapatilla, 0, f.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode zapatillas: %w", err)
	}
	return items, total, nil
}

// zapatillaFilter turns marca/tipo into case-insensitive substring matches.
func zapatillaFilter(f ports.ListZapatillasFilter) bson.M {
	filter := bson.M{}
	if f.Marca != "" {
		filter["marca"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Marca), Options: "i"}
	}
	if f.Tipo != "" {
		filter["tipo"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Tipo), Options: "i"}
	}
	return filter
}

func (r *ZapatillaRepository) Update(ctx context.Context, z *domain.Zapatilla) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"codigo_producto": z.CodigoProducto,
		"talla":           z.Talla,
		"color":           z.Color,
		"tipo":            z.Tipo,
		"precio":          z.Precio,
		"stock":           z.Stock,
		"updated_at":      z.UpdatedAt.UTC(),
	}}

	res, err := r.col.UpdateByID(ctx, z.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrZapatillaExists
		}
		return fmt.Errorf("update zapatilla: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrZapatillaNotFound
	}
	return nil
}

func (r *ZapatillaRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete zapatilla: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrZapatillaNotFound
	}
	return nil
}

// EnsureIndexes creates the unique product code index and the filter indexes.
func (r *ZapatillaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "codigo_producto", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_codigo_producto"),
		},
		{Keys: bson.D{{Key: "marca", Value: 1}}},
		{Keys: bson.D{{Key: "tipo", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
