package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// MaxVerificationAttempts is the number of wrong codes tolerated before the
// account has to request a new one.
const MaxVerificationAttempts = 3

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTaxIDTaken         = errors.New("company tax id already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrForbidden          = errors.New("access forbidden")
	ErrCompanyRequired    = errors.New("company data must be set first")
)

// Company is the business the user invoices as.
type Company struct {
	Name     string `json:"name" bson:"name"`
	CIF      string `json:"cif" bson:"cif,omitempty"`
	Street   string `json:"street" bson:"street"`
	Number   int    `json:"number" bson:"number"`
	Postal   int    `json:"postal" bson:"postal"`
	City     string `json:"city" bson:"city"`
	Province string `json:"province" bson:"province"`
}

// User models an authenticated account. Clients, projects and delivery notes
// are owned by exactly one user.
type User struct {
	ID               string   `json:"_id" bson:"_id"`
	Email            string   `json:"email" bson:"email"`
	PasswordHash     string   `json:"-" bson:"password_hash"`
	Role             string   `json:"role" bson:"role"`
	VerificationCode string   `json:"-" bson:"verification_code"`
	Verified         bool     `json:"verified" bson:"verified"`
	Attempts         int      `json:"attempts" bson:"attempts"`
	Name             string   `json:"name,omitempty" bson:"name,omitempty"`
	Surnames         string   `json:"surnames,omitempty" bson:"surnames,omitempty"`
	NIF              string   `json:"nif,omitempty" bson:"nif,omitempty"`
	Logo             string   `json:"logo,omitempty" bson:"logo,omitempty"`
	Company          *Company `json:"company,omitempty" bson:"company,omitempty"`
	InvitedBy        string   `json:"invitedBy,omitempty" bson:"invited_by,omitempty"`

	SoftDelete `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// UserUpdate carries the fields to overwrite; nil fields are left untouched.
type UserUpdate struct {
	PasswordHash     *string
	VerificationCode *string
	Verified         *bool
	Attempts         *int
	Name             *string
	Surnames         *string
	NIF              *string
	Logo             *string
	Company          *Company
}

// Apply copies the non-nil fields onto u.
func (p UserUpdate) Apply(u *User) {
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.VerificationCode != nil {
		u.VerificationCode = *p.VerificationCode
	}
	if p.Verified != nil {
		u.Verified = *p.Verified
	}
	if p.Attempts != nil {
		u.Attempts = *p.Attempts
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Surnames != nil {
		u.Surnames = *p.Surnames
	}
	if p.NIF != nil {
		u.NIF = *p.NIF
	}
	if p.Logo != nil {
		u.Logo = *p.Logo
	}
	if p.Company != nil {
		c := *p.Company
		u.Company = &c
	}
}
