package ports

import "context"

// Lifecycle is the soft-delete contract every entity store implements.
// ownerID scopes the operation to a tenant; it is empty for stores whose
// records have no owner (users).
type Lifecycle interface {
	// MarkDeleted moves an ACTIVE record to DELETED. Returns
	// domain.ErrNotFound when no active record matches.
	MarkDeleted(ctx context.Context, ownerID, id string) error
	// Restore moves a DELETED record back to ACTIVE. Returns
	// domain.ErrNotDeleted when the record is absent or active.
	Restore(ctx context.Context, ownerID, id string) error
	// Purge physically removes the record whatever its state. Returns
	// domain.ErrNotFound when nothing matches.
	Purge(ctx context.Context, ownerID, id string) error
	// IsDeleted reports the record's state. Returns domain.ErrNotFound when
	// the record does not exist at all.
	IsDeleted(ctx context.Context, ownerID, id string) (bool, error)
}
