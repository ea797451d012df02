package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const collectionProjects = "projects"

type ProjectRepository struct {
	*collection[domain.Project]
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{newCollection[domain.Project](db, collectionProjects, true, domain.ErrProjectExists)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return r.insert(ctx, p)
}

func (r *ProjectRepository) FindByID(ctx context.Context, ownerID, id string, scope domain.Scope) (*domain.Project, error) {
	return r.findOne(ctx, r.byID(ownerID, id), scope)
}

func (r *ProjectRepository) FindByCode(ctx context.Context, ownerID, code string, scope domain.Scope) (*domain.Project, error) {
	f := r.byOwner(ownerID)
	f["project_code"] = code
	return r.findOne(ctx, f, scope)
}

func (r *ProjectRepository) List(ctx context.Context, ownerID string, scope domain.Scope) ([]*domain.Project, error) {
	return r.find(ctx, r.byOwner(ownerID), scope)
}

func (r *ProjectRepository) Update(ctx context.Context, ownerID, id string, patch domain.ProjectUpdate) (*domain.Project, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ProjectCode != nil {
		set["project_code"] = *patch.ProjectCode
	}
	if patch.Code != nil {
		set["code"] = *patch.Code
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.ClientID != nil {
		set["client_id"] = *patch.ClientID
	}
	if patch.Begin != nil {
		set["begin"] = *patch.Begin
	}
	if patch.End != nil {
		set["end"] = *patch.End
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	return r.update(ctx, ownerID, id, set)
}

// EnsureIndexes makes project codes unique per owner.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	return r.createIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldOwner, Value: 1}, {Key: "project_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	})
}
