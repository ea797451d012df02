package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const collectionClients = "clients"

type ClientRepository struct {
	*collection[domain.Client]
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{newCollection[domain.Client](db, collectionClients, true, domain.ErrClientExists)}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return r.insert(ctx, c)
}

func (r *ClientRepository) FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.Client, error) {
	return r.findOne(ctx, r.byID(ownerID, id), scope)
}

func (r *ClientRepository) FindByEmail(ctx context.Context, ownerID, email string, scope domain.Scope) (*domain.Client, error) {
	f := r.byOwner(ownerID)
	f["email"] = caseInsensitive(email)
	return r.findOne(ctx, f, scope)
}

func (r *ClientRepository) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Client, error) {
	return r.find(ctx, r.byOwner(ownerID), scope)
}

func (r *ClientRepository) Update(ctx context.Context, ownerID, id string, patch domain.ClientUpdate) (*domain.Client, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	return r.update(ctx, ownerID, id, set)
}

// EnsureIndexes makes client e-mails unique per owner.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	return r.createIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldOwner, Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	})
}
