package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// CreateDeliveryNoteInput carries a new note. Material and Hours are optional;
// the service applies their defaults.
type CreateDeliveryNoteInput struct {
	ClientID    string
	ProjectID   string
	Format      domain.NoteFormat
	Material    string
	Hours       float64
	Description string
}

// SignResult holds the references persisted by a successful signature.
type SignResult struct {
	SignatureURL string `json:"signatureUrl"`
	PDFURL       string `json:"pdfUrl"`
}

// PDFDocument is a rendered note ready to be streamed.
type PDFDocument struct {
	Filename string
	Content  []byte
}

// DeliveryNoteService implements delivery note use cases including signing.
type DeliveryNoteService interface {
	Create(ctx context.Context, ownerID string, in CreateDeliveryNoteInput) (*domain.DeliveryNote, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.DeliveryNoteDetail, error)
	Get(ctx context.Context, ownerID, id string) (*domain.DeliveryNoteDetail, error)
	PDF(ctx context.Context, ownerID, id string) (*PDFDocument, error)
	Sign(ctx context.Context, ownerID, id string, signature []byte, signatureName string) (*SignResult, error)
	Delete(ctx context.Context, ownerID, id string, soft bool) error
	Restore(ctx context.Context, ownerID, id string) error
}
