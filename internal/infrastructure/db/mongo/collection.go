package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const (
	fieldID        = "_id"
	fieldOwner     = "user_id"
	fieldDeleted   = "deleted"
	fieldDeletedAt = "deleted_at"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// collection implements the soft-delete lifecycle for documents of type T.
// Owned collections scope every filter by user_id.
type collection[T any] struct {
	col      *mongo.Collection
	owned    bool
	conflict error
	now      func() time.Time
}

func newCollection[T any](db *mongo.Database, name string, owned bool, conflict error) *collection[T] {
	return &collection[T]{col: db.Collection(name), owned: owned, conflict: conflict, now: time.Now}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// byID builds the filter addressing one document of the owner.
func (c *collection[T]) byID(ownerID, id string) bson.M {
	f := bson.M{fieldID: id}
	if c.owned {
		f[fieldOwner] = ownerID
	}
	return f
}

// byOwner builds the base filter for queries over the owner's documents.
func (c *collection[T]) byOwner(ownerID string) bson.M {
	if !c.owned {
		return bson.M{}
	}
	return bson.M{fieldOwner: ownerID}
}

// withScope narrows f to the lifecycle states visible under scope. Documents
// written before the envelope existed have no deleted field and count as
// active.
func withScope(f bson.M, scope domain.Scope) bson.M {
	switch scope {
	case domain.ScopeDeleted:
		f[fieldDeleted] = true
	case domain.ScopeAll:
	default:
		f[fieldDeleted] = bson.M{"$ne": true}
	}
	return f
}

func (c *collection[T]) insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) && c.conflict != nil {
			return c.conflict
		}
		return fmt.Errorf("insert %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c *collection[T]) findOne(ctx context.Context, filter bson.M, scope domain.Scope) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	err := c.col.FindOne(ctx, withScope(filter, scope)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	return &doc, nil
}

func (c *collection[T]) find(ctx context.Context, filter bson.M, scope domain.Scope) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: fieldCreatedAt, Value: 1}})
	cur, err := c.col.Find(ctx, withScope(filter, scope), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
		}
		out = append(out, &doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.col.Name(), err)
	}
	return out, nil
}

// update applies set to an active document and returns the result.
func (c *collection[T]) update(ctx context.Context, ownerID, id string, set bson.M) (*T, error) {
	return c.updateWhere(ctx, withScope(c.byID(ownerID, id), domain.ScopeActive), set)
}

func (c *collection[T]) updateWhere(ctx context.Context, filter, set bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set[fieldUpdatedAt] = c.now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := c.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	switch {
	case err == nil:
		return &doc, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err) && c.conflict != nil:
		return nil, c.conflict
	default:
		return nil, fmt.Errorf("update %s: %w", c.col.Name(), err)
	}
}

func (c *collection[T]) MarkDeleted(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := withScope(c.byID(ownerID, id), domain.ScopeActive)
	res, err := c.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		fieldDeleted:   true,
		fieldDeletedAt: c.now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T]) Restore(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := withScope(c.byID(ownerID, id), domain.ScopeDeleted)
	res, err := c.col.UpdateOne(ctx, filter, bson.M{
		"$set":   bson.M{fieldDeleted: false},
		"$unset": bson.M{fieldDeletedAt: ""},
	})
	if err != nil {
		return fmt.Errorf("restore %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotDeleted
	}
	return nil
}

func (c *collection[T]) Purge(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, c.byID(ownerID, id))
	if err != nil {
		return fmt.Errorf("purge %s: %w", c.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T]) IsDeleted(ctx context.Context, ownerID, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var state domain.SoftDelete
	opts := options.FindOne().SetProjection(bson.M{fieldDeleted: 1, fieldDeletedAt: 1})
	err := c.col.FindOne(ctx, c.byID(ownerID, id), opts).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("state %s: %w", c.col.Name(), err)
	}
	return state.Deleted, nil
}

func (c *collection[T]) createIndexes(ctx context.Context, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := c.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("indexes %s: %w", c.col.Name(), err)
	}
	return nil
}
