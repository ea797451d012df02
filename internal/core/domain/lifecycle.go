package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNotDeleted = errors.New("not found or not deleted")
)

// Scope selects which lifecycle states a read may return.
type Scope int

const (
	ScopeActive Scope = iota
	ScopeDeleted
	ScopeAll
)

// ParseScope maps the ?scope= query value to a Scope. Unknown values fall
// back to ScopeActive.
func ParseScope(s string) Scope {
	switch s {
	case "deleted":
		return ScopeDeleted
	case "all":
		return ScopeAll
	default:
		return ScopeActive
	}
}

// Includes reports whether a record in the given deleted state is visible
// under the scope.
func (s Scope) Includes(deleted bool) bool {
	switch s {
	case ScopeDeleted:
		return deleted
	case ScopeAll:
		return true
	default:
		return !deleted
	}
}

// SoftDelete is the deletion envelope embedded in every entity.
//
//	ACTIVE  --MarkDeleted-->  DELETED
//	DELETED --Restore------>  ACTIVE
//
// Purging removes the record from either state and lives in the store.
type SoftDelete struct {
	Deleted   bool       `json:"deleted" bson:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
}

func (s SoftDelete) IsDeleted() bool {
	return s.Deleted
}

// MarkDeleted moves an ACTIVE record to DELETED. A record that is already
// deleted is invisible to default reads, so it reports ErrNotFound.
func (s *SoftDelete) MarkDeleted(now time.Time) error {
	if s.Deleted {
		return ErrNotFound
	}
	at := now.UTC()
	s.Deleted = true
	s.DeletedAt = &at
	return nil
}

// Restore moves a DELETED record back to ACTIVE.
func (s *SoftDelete) Restore() error {
	if !s.Deleted {
		return ErrNotDeleted
	}
	s.Deleted = false
	s.DeletedAt = nil
	return nil
}
