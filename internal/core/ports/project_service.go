package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

type CreateProjectInput struct {
	Name        string
	ProjectCode string
	Code        string
	Address     domain.ProjectAddress
	ClientID    string
	Begin       string
	End         string
	Notes       string
}

// ProjectService implements project use cases for a single owner.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Project, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, id string, soft bool) error
	Restore(ctx context.Context, ownerID, id string) error
}
