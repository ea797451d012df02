package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the display format project dates are stored in.
const DateLayout = "02-01-2006"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectExists    = errors.New("project already exists")
	ErrInvalidDate      = errors.New("invalid date, expected DD-MM-YYYY")
	ErrInvalidDateRange = errors.New("begin date must precede end date")
)

// ProjectAddress is the site address; every field is required.
type ProjectAddress struct {
	Street   string `json:"street" bson:"street"`
	Number   int    `json:"number" bson:"number"`
	Postal   int    `json:"postal" bson:"postal"`
	City     string `json:"city" bson:"city"`
	Province string `json:"province" bson:"province"`
}

// Project is a unit of work for one client of the owning user.
type Project struct {
	ID          string         `json:"_id" bson:"_id"`
	Name        string         `json:"name" bson:"name"`
	ProjectCode string         `json:"projectCode" bson:"project_code"`
	Code        string         `json:"code" bson:"code"`
	Address     ProjectAddress `json:"address" bson:"address"`
	OwnerID     string         `json:"userId" bson:"user_id"`
	ClientID    string         `json:"clientId" bson:"client_id"`
	Begin       string         `json:"begin" bson:"begin"`
	End         string         `json:"end" bson:"end"`
	Notes       string         `json:"notes" bson:"notes"`

	SoftDelete `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type ProjectUpdate struct {
	Name        *string
	ProjectCode *string
	Code        *string
	Address     *ProjectAddress
	ClientID    *string
	Begin       *string
	End         *string
	Notes       *string
}

func (p ProjectUpdate) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.ProjectCode != nil {
		pr.ProjectCode = *p.ProjectCode
	}
	if p.Code != nil {
		pr.Code = *p.Code
	}
	if p.Address != nil {
		pr.Address = *p.Address
	}
	if p.ClientID != nil {
		pr.ClientID = *p.ClientID
	}
	if p.Begin != nil {
		pr.Begin = *p.Begin
	}
	if p.End != nil {
		pr.End = *p.End
	}
	if p.Notes != nil {
		pr.Notes = *p.Notes
	}
}

// ParseDate parses a DD-MM-YYYY date strictly.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ValidateDateRange checks both dates and that begin is not after end.
// Equal dates are a valid one-day project.
func ValidateDateRange(begin, end string) error {
	b, err := ParseDate(begin)
	if err != nil {
		return err
	}
	e, err := ParseDate(end)
	if err != nil {
		return err
	}
	if b.After(e) {
		return ErrInvalidDateRange
	}
	return nil
}
