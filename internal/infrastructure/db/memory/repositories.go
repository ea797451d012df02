package memory

import (
	"context"
	"strings"
	"time"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// UserRepository is the in-memory ports.UserRepository.
type UserRepository struct {
	*table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{newTable(
		func(u *domain.User) string { return u.ID },
		func(*domain.User) string { return "" },
		func(u *domain.User) *domain.SoftDelete { return &u.SoftDelete },
		func(a, b *domain.User) error {
			if strings.EqualFold(a.Email, b.Email) {
				return domain.ErrEmailTaken
			}
			if a.Company != nil && b.Company != nil && a.Company.CIF != "" && a.Company.CIF == b.Company.CIF {
				return domain.ErrTaxIDTaken
			}
			return nil
		},
	)}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return r.insert(u)
}

func (r *UserRepository) FindByID(_ context.Context, id string, scope domain.Scope) (*domain.User, error) {
	return r.get("", id, scope)
}

func (r *UserRepository) FindByEmail(_ context.Context, email string, scope domain.Scope) (*domain.User, error) {
	return r.first("", scope, func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindByCompanyCIF(_ context.Context, cif string) (*domain.User, error) {
	return r.first("", domain.ScopeAll, func(u *domain.User) bool {
		return u.Company != nil && u.Company.CIF == cif
	})
}

func (r *UserRepository) Update(_ context.Context, id string, patch domain.UserUpdate) (*domain.User, error) {
	return r.modify("", id, func(u *domain.User) error {
		patch.Apply(u)
		u.UpdatedAt = r.now().UTC()
		return nil
	})
}

// ClientRepository is the in-memory ports.ClientRepository.
type ClientRepository struct {
	*table[domain.Client]
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{newTable(
		func(c *domain.Client) string { return c.ID },
		func(c *domain.Client) string { return c.OwnerID },
		func(c *domain.Client) *domain.SoftDelete { return &c.SoftDelete },
		func(a, b *domain.Client) error {
			if a.OwnerID == b.OwnerID && strings.EqualFold(a.Email, b.Email) {
				return domain.ErrClientExists
			}
			return nil
		},
	)}
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return r.insert(c)
}

func (r *ClientRepository) FindByID(_ context.Context, ownerID, id string, scope domain.Scope) (*domain.Client, error) {
	return r.get(ownerID, id, scope)
}

func (r *ClientRepository) FindByEmail(_ context.Context, ownerID, email string, scope domain.Scope) (*domain.Client, error) {
	return r.first(ownerID, scope, func(c *domain.Client) bool { return strings.EqualFold(c.Email, email) })
}

func (r *ClientRepository) List(_ context.Context, ownerID string, scope domain.Scope) ([]*domain.Client, error) {
	return r.find(ownerID, scope, nil), nil
}

func (r *ClientRepository) Update(_ context.Context, ownerID, id string, patch domain.ClientUpdate) (*domain.Client, error) {
	return r.modify(ownerID, id, func(c *domain.Client) error {
		patch.Apply(c)
		c.UpdatedAt = r.now().UTC()
		return nil
	})
}

// ProjectRepository is the in-memory ports.ProjectRepository.
type ProjectRepository struct {
	*table[domain.Project]
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{newTable(
		func(p *domain.Project) string { return p.ID },
		func(p *domain.Project) string { return p.OwnerID },
		func(p *domain.Project) *domain.SoftDelete { return &p.SoftDelete },
		func(a, b *domain.Project) error {
			if a.OwnerID == b.OwnerID && a.ProjectCode == b.ProjectCode {
				return domain.ErrProjectExists
			}
			return nil
		},
	)}
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return r.insert(p)
}

func (r *ProjectRepository) FindByID(_ context.Context, ownerID, id string, scope domain.Scope) (*domain.Project, error) {
	return r.get(ownerID, id, scope)
}

func (r *ProjectRepository) FindByCode(_ context.Context, ownerID, code string, scope domain.Scope) (*domain.Project, error) {
	return r.first(ownerID, scope, func(p *domain.Project) bool { return p.ProjectCode == code })
}

func (r *ProjectRepository) List(_ context.Context, ownerID string, scope domain.Scope) ([]*domain.Project, error) {
	return r.find(ownerID, scope, nil), nil
}

func (r *ProjectRepository) Update(_ context.Context, ownerID, id string, patch domain.ProjectUpdate) (*domain.Project, error) {
	return r.modify(ownerID, id, func(p *domain.Project) error {
		patch.Apply(p)
		p.UpdatedAt = r.now().UTC()
		return nil
	})
}

// DeliveryNoteRepository is the in-memory ports.DeliveryNoteRepository.
type DeliveryNoteRepository struct {
	*table[domain.DeliveryNote]
}

func NewDeliveryNoteRepository() *DeliveryNoteRepository {
	return &DeliveryNoteRepository{newTable(
		func(n *domain.DeliveryNote) string { return n.ID },
		func(n *domain.DeliveryNote) string { return n.OwnerID },
		func(n *domain.DeliveryNote) *domain.SoftDelete { return &n.SoftDelete },
		nil,
	)}
}

func (r *DeliveryNoteRepository) Create(_ context.Context, n *domain.DeliveryNote) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return r.insert(n)
}

func (r *DeliveryNoteRepository) FindByID(_ context.Context, ownerID, id string, scope domain.Scope) (*domain.DeliveryNote, error) {
	return r.get(ownerID, id, scope)
}

func (r *DeliveryNoteRepository) List(_ context.Context, ownerID string, scope domain.Scope) ([]*domain.DeliveryNote, error) {
	return r.find(ownerID, scope, nil), nil
}

func (r *DeliveryNoteRepository) MarkSigned(_ context.Context, ownerID, id, signatureURL, pdfURL string, at time.Time) (*domain.DeliveryNote, error) {
	return r.modify(ownerID, id, func(n *domain.DeliveryNote) error {
		return n.MarkSigned(signatureURL, pdfURL, at)
	})
}

// Store bundles the four repositories.
type Store struct {
	Users         *UserRepository
	Clients       *ClientRepository
	Projects      *ProjectRepository
	DeliveryNotes *DeliveryNoteRepository
}

func NewStore() *Store {
	return &Store{
		Users:         NewUserRepository(),
		Clients:       NewClientRepository(),
		Projects:      NewProjectRepository(),
		DeliveryNotes: NewDeliveryNoteRepository(),
	}
}
