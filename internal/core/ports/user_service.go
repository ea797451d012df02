package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// ProfileInput carries the personal data set by PUT /users/register.
type ProfileInput struct {
	Name     string
	Surnames string
	NIF      string
}

// InviteInput describes the guest account created by an invitation.
type InviteInput struct {
	Email    string
	Password string
	Name     string
	Surnames string
}

// UserService manages the authenticated user's own account.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
	UpdateCompany(ctx context.Context, userID string, company domain.Company) (*domain.User, error)
	UpdateLogo(ctx context.Context, userID string, data []byte, name string) (*domain.User, error)
	Delete(ctx context.Context, userID string, soft bool) error
	Invite(ctx context.Context, inviterID string, in InviteInput) (*domain.User, error)
}
