package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// UploadResult is the content address of an uploaded blob.
type UploadResult struct {
	ContentHash string `json:"contentHash"`
	GatewayURL  string `json:"gatewayUrl"`
}

// BlobUploader stores bytes in content-addressed remote storage.
type BlobUploader interface {
	Upload(ctx context.Context, data []byte, name string) (*UploadResult, error)
}

// Renderer turns a delivery note and its relations into a printable document.
// Callers must resolve project and client before rendering.
type Renderer interface {
	Render(note *domain.DeliveryNote, project *domain.Project, client *domain.Client) ([]byte, error)
}
