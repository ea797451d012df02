package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	*collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{newCollection[domain.User](db, collectionUsers, false, domain.ErrEmailTaken)}
}

// Create inserts a new user. Duplicate e-mails map to ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return r.insert(ctx, u)
}

func (r *UserRepository) FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.User, error) {
	return r.findOne(ctx, r.byID("", id), scope)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string, scope domain.Scope) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": caseInsensitive(email)}, scope)
}

func (r *UserRepository) FindByCompanyCIF(ctx context.Context, cif string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"company.cif": cif}, domain.ScopeAll)
}

// Update applies the patch. A company tax id already used by another user
// maps to ErrTaxIDTaken.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserUpdate) (*domain.User, error) {
	set := bson.M{}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}
	if patch.VerificationCode != nil {
		set["verification_code"] = *patch.VerificationCode
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
	}
	if patch.Attempts != nil {
		set["attempts"] = *patch.Attempts
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Surnames != nil {
		set["surnames"] = *patch.Surnames
	}
	if patch.NIF != nil {
		set["nif"] = *patch.NIF
	}
	if patch.Logo != nil {
		set["logo"] = *patch.Logo
	}
	if patch.Company != nil {
		set["company"] = patch.Company
	}

	u, err := r.update(ctx, "", id, set)
	if errors.Is(err, domain.ErrEmailTaken) && patch.Company != nil {
		return nil, domain.ErrTaxIDTaken
	}
	return u, err
}

// EnsureIndexes creates the unique e-mail and company tax id indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return r.createIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
		{
			Keys: bson.D{{Key: "company.cif", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"company.cif": bson.M{"$exists": true}}),
		},
	})
}

func caseInsensitive(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}
