package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// ClientRepository defines persistence for clients. Every lookup is scoped
// to the owning user.
type ClientRepository interface {
	Lifecycle

	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.Client, error)
	FindByEmail(ctx context.Context, ownerID, email string, scope domain.Scope) (*domain.Client, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Client, error)
	// Update patches an active client and returns the stored result.
	Update(ctx context.Context, ownerID, id string, patch domain.ClientUpdate) (*domain.Client, error)
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Lifecycle

	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.Project, error)
	FindByCode(ctx context.Context, ownerID, projectCode string, scope domain.Scope) (*domain.Project, error)
	List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Project, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ProjectUpdate) (*domain.Project, error)
}
