package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

const collectionAccountEvents = "account_events"

// AccountEventRepository implements ports.AccountEventRepository using MongoDB.
type AccountEventRepository struct {
	col *mongo.Collection
}

func NewAccountEventRepository(db *mongo.Database) ports.AccountEventRepository {
	return &AccountEventRepository{col: db.Collection(collectionAccountEvents)}
}

// InsertEvent appends an entry to the account_events audit collection.
func (r *AccountEventRepository) InsertEvent(ctx context.Context, event *domain.AccountEvent) error {
	doc := bson.M{
		"type":         string(event.Type),
		"username":     event.Username,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
