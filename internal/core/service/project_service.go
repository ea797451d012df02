package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, clients ports.ClientRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, clients: clients, log: log}
}

// Create validates the date range and the client reference before storing
// the project. Project codes are unique per owner.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in ports.CreateProjectInput) (*domain.Project, error) {
	if err := domain.ValidateDateRange(in.Begin, in.End); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, ownerID, in.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByCode(ctx, ownerID, in.ProjectCode, domain.ScopeAll); err == nil {
		return nil, domain.ErrProjectExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Project{
		Name:        in.Name,
		ProjectCode: in.ProjectCode,
		Code:        in.Code,
		Address:     in.Address,
		OwnerID:     ownerID,
		ClientID:    in.ClientID,
		Begin:       in.Begin,
		End:         in.End,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("project_id", p.ID).Str("client_id", p.ClientID).Msg("project created")
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Project, error) {
	return s.projects.List(ctx, ownerID, scope)
}

func (s *ProjectService) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, ownerID, id, domain.ScopeActive)
	if err != nil {
		return nil, projectErr(err)
	}
	return p, nil
}

// Update re-validates the merged project: a patch touching one date is
// checked against the stored other one.
func (s *ProjectService) Update(ctx context.Context, ownerID, id string, patch domain.ProjectUpdate) (*domain.Project, error) {
	current, err := s.projects.FindByID(ctx, ownerID, id, domain.ScopeActive)
	if err != nil {
		return nil, projectErr(err)
	}
	merged := *current
	patch.Apply(&merged)

	if patch.Begin != nil || patch.End != nil {
		if err := domain.ValidateDateRange(merged.Begin, merged.End); err != nil {
			return nil, err
		}
	}
	if patch.ClientID != nil && *patch.ClientID != current.ClientID {
		if err := s.checkClient(ctx, ownerID, merged.ClientID); err != nil {
			return nil, err
		}
	}

	p, err := s.projects.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, projectErr(err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, id string, soft bool) error {
	return remove(ctx, s.projects, "project", ownerID, id, soft, domain.ErrProjectNotFound)
}

func (s *ProjectService) Restore(ctx context.Context, ownerID, id string) error {
	return restore(ctx, s.projects, "project", ownerID, id)
}

func (s *ProjectService) checkClient(ctx context.Context, ownerID, clientID string) error {
	if _, err := s.clients.FindByID(ctx, ownerID, clientID, domain.ScopeActive); err != nil {
		return clientErr(err)
	}
	return nil
}

func projectErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrProjectNotFound
	}
	return err
}
