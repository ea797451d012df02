package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type UserService struct {
	users    ports.UserRepository
	uploader ports.BlobUploader
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, uploader ports.BlobUploader, notifier ports.Notifier, log zerolog.Logger) *UserService {
	return &UserService{users: users, uploader: uploader, notifier: notifier, log: log}
}

// Get returns the active user. Guests see the company of the user who
// invited them.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID, domain.ScopeActive)
	if err != nil {
		return nil, userErr(err)
	}
	if user.Company == nil && user.InvitedBy != "" {
		inviter, err := s.users.FindByID(ctx, user.InvitedBy, domain.ScopeAll)
		switch {
		case err == nil:
			user.Company = inviter.Company
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	user, err := s.users.Update(ctx, userID, domain.UserUpdate{
		Name:     &in.Name,
		Surnames: &in.Surnames,
		NIF:      &in.NIF,
	})
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

func (s *UserService) UpdateCompany(ctx context.Context, userID string, company domain.Company) (*domain.User, error) {
	owner, err := s.users.FindByCompanyCIF(ctx, company.CIF)
	switch {
	case err == nil && owner.ID != userID:
		return nil, domain.ErrTaxIDTaken
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, domain.UserUpdate{Company: &company})
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

func (s *UserService) UpdateLogo(ctx context.Context, userID string, data []byte, name string) (*domain.User, error) {
	if _, err := s.users.FindByID(ctx, userID, domain.ScopeActive); err != nil {
		return nil, userErr(err)
	}

	res, err := s.uploader.Upload(ctx, data, name)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, domain.UserUpdate{Logo: &res.GatewayURL})
	if err != nil {
		return nil, userErr(err)
	}
	s.log.Info().Str("user_id", userID).Str("logo", res.GatewayURL).Msg("logo updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, userID string, soft bool) error {
	return remove(ctx, s.users, "user", "", userID, soft, domain.ErrUserNotFound)
}

// Invite creates a guest account attached to the inviter's company and mails
// it a verification code.
func (s *UserService) Invite(ctx context.Context, inviterID string, in ports.InviteInput) (*domain.User, error) {
	inviter, err := s.users.FindByID(ctx, inviterID, domain.ScopeActive)
	if err != nil {
		return nil, userErr(err)
	}
	if inviter.Role == domain.RoleGuest {
		return nil, domain.ErrForbidden
	}
	if inviter.Company == nil {
		return nil, domain.ErrCompanyRequired
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code, err := verificationCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	guest := &domain.User{
		Email:            normalizeEmail(in.Email),
		PasswordHash:     hash,
		Role:             domain.RoleGuest,
		VerificationCode: code,
		Name:             in.Name,
		Surnames:         in.Surnames,
		InvitedBy:        inviter.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.users.Create(ctx, guest); err != nil {
		return nil, err
	}

	s.notifier.Enqueue(ports.Notification{
		To:      guest.Email,
		Subject: "You have been invited to " + inviter.Company.Name,
		Body:    "Your verification code is " + code,
	})
	s.log.Info().Str("user_id", guest.ID).Str("invited_by", inviter.ID).Msg("guest invited")

	guest.Company = inviter.Company
	return guest, nil
}
