package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

type CreateClientInput struct {
	Name    string
	Address string
	Email   string
}

// ClientService implements client use cases for a single owner.
type ClientService interface {
	Create(ctx context.Context, ownerID string, in CreateClientInput) (*domain.Client, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Client, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Client, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, ownerID, id string, soft bool) error
	Restore(ctx context.Context, ownerID, id string) error
}
