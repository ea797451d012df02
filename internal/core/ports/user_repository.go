package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Lifecycle

	// Create inserts the user, assigning its ID. Returns domain.ErrEmailTaken
	// when the email is already registered.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.User, error)
	FindByEmail(ctx context.Context, email string, scope domain.Scope) (*domain.User, error)
	// FindByCompanyCIF looks across all tenants; company tax ids are global.
	FindByCompanyCIF(ctx context.Context, cif string) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserUpdate) (*domain.User, error)
}
