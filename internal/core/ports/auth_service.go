package ports

import (
	"context"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// TokenPurpose distinguishes session tokens from password-reset tokens.
type TokenPurpose string

const (
	PurposeSession TokenPurpose = "session"
	PurposeReset   TokenPurpose = "reset"
)

// TokenClaims is what a verified token tells the transport layer.
type TokenClaims struct {
	UserID  string
	Role    string
	Purpose TokenPurpose
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User, purpose TokenPurpose) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService covers account creation, e-mail verification and login.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Validate(ctx context.Context, userID, code string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// PasswordService implements the reset-token flow.
type PasswordService interface {
	// RequestReset issues a reset token for the account registered under email.
	RequestReset(ctx context.Context, email string) (string, error)
	ChangePassword(ctx context.Context, userID, password string) error
}
