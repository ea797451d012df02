package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type PasswordService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewPasswordService(users ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *PasswordService {
	return &PasswordService{users: users, tokens: tokens, log: log}
}

func (s *PasswordService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email), domain.ScopeActive)
	if err != nil {
		return "", userErr(err)
	}
	token, err := s.tokens.Issue(user, ports.PurposeReset)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return token, nil
}

func (s *PasswordService) ChangePassword(ctx context.Context, userID, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, userID, domain.UserUpdate{PasswordHash: &hash}); err != nil {
		return userErr(err)
	}
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
