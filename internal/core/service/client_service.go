package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type ClientService struct {
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

// Create stores a client. The email must be unused among the owner's
// clients, deleted ones included.
func (s *ClientService) Create(ctx context.Context, ownerID string, in ports.CreateClientInput) (*domain.Client, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.clients.FindByEmail(ctx, ownerID, email, domain.ScopeAll); err == nil {
		return nil, domain.ErrClientExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Client{
		Name:      in.Name,
		Address:   in.Address,
		Email:     email,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", c.ID).Str("user_id", ownerID).Msg("client created")
	return c, nil
}

func (s *ClientService) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Client, error) {
	return s.clients.List(ctx, ownerID, scope)
}

func (s *ClientService) Get(ctx context.Context, ownerID, id string) (*domain.Client, error) {
	c, err := s.clients.FindByID(ctx, ownerID, id, domain.ScopeActive)
	if err != nil {
		return nil, clientErr(err)
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, ownerID, id string, patch domain.ClientUpdate) (*domain.Client, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	c, err := s.clients.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, clientErr(err)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, ownerID, id string, soft bool) error {
	return remove(ctx, s.clients, "client", ownerID, id, soft, domain.ErrClientNotFound)
}

func (s *ClientService) Restore(ctx context.Context, ownerID, id string) error {
	return restore(ctx, s.clients, "client", ownerID, id)
}

func clientErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrClientNotFound
	}
	return err
}
