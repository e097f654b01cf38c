package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

const collectionAccounts = "accounts"

// AccountRepository implements ports.AccountRepository on MongoDB. Username and
// email uniqueness is enforced by unique indexes, see EnsureIndexes.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type mongoAccount struct {
	ID              string    `bson:"_id"`
	Username        string    `bson:"username"`
	Email           string    `bson:"email"`
	EmailKey        string    `bson:"email_key"`
	Nombre          string    `bson:"nombre"`
	Apellidos       string    `bson:"apellidos"`
	PasswordHash    string    `bson:"password_hash"`
	Roles           []string  `bson:"roles"`
	Disabled        bool      `bson:"disabled"`
	OwnedResourceID *string   `bson:"owned_resource_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// emailKey is the case-insensitive form the unique index is built on.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toMongoAccount(a *domain.Account) mongoAccount {
	roles := make([]string, 0, len(a.Roles))
	for _, r := range a.EffectiveRoles() {
		roles = append(roles, string(r))
	}
	return mongoAccount{
		ID:              a.ID,
		Username:        a.Username,
		Email:           a.Email,
		EmailKey:        emailKey(a.Email),
		Nombre:          a.Nombre,
		Apellidos:       a.Apellidos,
		PasswordHash:    a.PasswordHash,
		Roles:           roles,
		Disabled:        a.Disabled,
		OwnedResourceID: a.OwnedResourceID,
		CreatedAt:       a.CreatedAt.UTC(),
		UpdatedAt:       a.UpdatedAt.UTC(),
	}
}

func (m mongoAccount) toDomain() *domain.Account {
	roles := make([]domain.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, domain.Role(r))
	}
	return &domain.Account{
		ID:              m.ID,
		Username:        m.Username,
		Email:           m.Email,
		Nombre:          m.Nombre,
		Apellidos:       m.Apellidos,
		PasswordHash:    m.PasswordHash,
		Roles:           roles,
		Disabled:        m.Disabled,
		OwnedResourceID: m.OwnedResourceID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Create inserts a new account. A unique index violation on either username or
// email is reported as domain.ErrDuplicateCredential.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoAccount(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCredential
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email_key": emailKey(email)})
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email_key": emailKey(email)})
}

// Update replaces the mutable fields of an existing account.
func (r *AccountRepository) Update(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoAccount(a)
	set := bson.M{
		"email":         doc.Email,
		"email_key":     doc.EmailKey,
		"nombre":        doc.Nombre,
		"apellidos":     doc.Apellidos,
		"password_hash": doc.PasswordHash,
		"roles":         doc.Roles,
		"disabled":      doc.Disabled,
		"updated_at":    doc.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if doc.OwnedResourceID != nil {
		set["owned_resource_id"] = *doc.OwnedResourceID
	} else {
		update["$unset"] = bson.M{"owned_resource_id": ""}
	}

	res, err := r.col.UpdateByID(ctx, a.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAccount
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique username and email indexes.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		{Keys: bson.D{{Key: "email_key", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "owned_resource_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
