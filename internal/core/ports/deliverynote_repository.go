package ports

import (
	"context"
	"time"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// DeliveryNoteRepository handles delivery note persistence.
type DeliveryNoteRepository interface {
	Lifecycle

	Create(ctx context.Context, n *domain.DeliveryNote) error
	FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.DeliveryNote, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.DeliveryNote, error)

	// MarkSigned atomically stores the signature and PDF references on an
	// active, unsigned note. Returns domain.ErrAlreadySigned when the note
	// was signed in the meantime and domain.ErrNotFound when it is gone.
	MarkSigned(ctx context.Context, ownerID, id, signatureURL, pdfURL string, at time.Time) (*domain.DeliveryNote, error)
}
