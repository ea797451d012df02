package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const collectionDeliveryNotes = "deliverynotes"

type DeliveryNoteRepository struct {
	*collection[domain.DeliveryNote]
}

func NewDeliveryNoteRepository(db *mongo.Database) *DeliveryNoteRepository {
	return &DeliveryNoteRepository{newCollection[domain.DeliveryNote](db, collectionDeliveryNotes, true, nil)}
}

func (r *DeliveryNoteRepository) Create(ctx context.Context, n *domain.DeliveryNote) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return r.insert(ctx, n)
}

func (r *DeliveryNoteRepository) FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.DeliveryNote, error) {
	return r.findOne(ctx, r.byID(ownerID, id), scope)
}

func (r *DeliveryNoteRepository) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.DeliveryNote, error) {
	return r.find(ctx, r.byOwner(ownerID), scope)
}

// MarkSigned sets the signature references in a single conditional update so
// two concurrent signatures cannot both win.
func (r *DeliveryNoteRepository) MarkSigned(ctx context.Context, ownerID, id, signatureURL, pdfURL string, at time.Time) (*domain.DeliveryNote, error) {
	filter := withScope(r.byID(ownerID, id), domain.ScopeActive)
	filter["signed"] = false

	n, err := r.updateWhere(ctx, filter, bson.M{
		"signed":    true,
		"sign":      signatureURL,
		"pdf_url":   pdfURL,
		"signed_at": at.UTC(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		return n, err
	}

	// Tell a lost race apart from a missing note.
	if _, findErr := r.FindByID(ctx, ownerID, id, domain.ScopeActive); findErr == nil {
		return nil, domain.ErrAlreadySigned
	}
	return nil, domain.ErrNotFound
}

func (r *DeliveryNoteRepository) EnsureIndexes(ctx context.Context) error {
	return r.createIndexes(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: fieldOwner, Value: 1}, {Key: fieldCreatedAt, Value: 1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	})
}
