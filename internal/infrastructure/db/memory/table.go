// Package memory holds map-backed repositories with the same lifecycle
// semantics as the Mongo ones. They back DB_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// table is a soft-delete aware collection of T keyed by ID.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string

	id    func(*T) string
	owner func(*T) string
	state func(*T) *domain.SoftDelete
	// unique returns a conflict error when a and b cannot coexist.
	unique func(a, b *T) error
	now    func() time.Time
}

func newTable[T any](id, owner func(*T) string, state func(*T) *domain.SoftDelete, unique func(a, b *T) error) *table[T] {
	return &table[T]{
		rows:   make(map[string]*T),
		id:     id,
		owner:  owner,
		state:  state,
		unique: unique,
		now:    time.Now,
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func clone[T any](row *T) *T {
	c := *row
	return &c
}

// lookup returns the stored row when it exists and belongs to ownerID.
// Caller must hold the lock.
func (t *table[T]) lookup(ownerID, id string) (*T, bool) {
	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	if ownerID != "" && t.owner(row) != ownerID {
		return nil, false
	}
	return row, true
}

func (t *table[T]) checkUnique(row *T) error {
	if t.unique == nil {
		return nil
	}
	for _, other := range t.rows {
		if t.id(other) == t.id(row) {
			continue
		}
		if err := t.unique(row, other); err != nil {
			return err
		}
	}
	return nil
}

func (t *table[T]) insert(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkUnique(row); err != nil {
		return err
	}
	id := t.id(row)
	t.rows[id] = clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(ownerID, id string, scope domain.Scope) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.lookup(ownerID, id)
	if !ok || !scope.Includes(t.state(row).Deleted) {
		return nil, domain.ErrNotFound
	}
	return clone(row), nil
}

// first returns the first row, in insertion order, accepted by match.
func (t *table[T]) first(ownerID string, scope domain.Scope, match func(*T) bool) (*T, error) {
	rows := t.find(ownerID, scope, match)
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (t *table[T]) find(ownerID string, scope domain.Scope, match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		row, ok := t.lookup(ownerID, id)
		if !ok || !scope.Includes(t.state(row).Deleted) {
			continue
		}
		if match != nil && !match(row) {
			continue
		}
		out = append(out, clone(row))
	}
	return out
}

// modify applies fn to a copy of an active row and stores it when fn and the
// uniqueness check succeed.
func (t *table[T]) modify(ownerID, id string, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.lookup(ownerID, id)
	if !ok || t.state(row).Deleted {
		return nil, domain.ErrNotFound
	}
	next := clone(row)
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := t.checkUnique(next); err != nil {
		return nil, err
	}
	t.rows[id] = next
	return clone(next), nil
}

func (t *table[T]) MarkDeleted(_ context.Context, ownerID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.lookup(ownerID, id)
	if !ok {
		return domain.ErrNotFound
	}
	return t.state(row).MarkDeleted(t.now())
}

func (t *table[T]) Restore(_ context.Context, ownerID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.lookup(ownerID, id)
	if !ok {
		return domain.ErrNotDeleted
	}
	return t.state(row).Restore()
}

func (t *table[T]) Purge(_ context.Context, ownerID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.lookup(ownerID, id); !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) IsDeleted(_ context.Context, ownerID, id string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.lookup(ownerID, id)
	if !ok {
		return false, domain.ErrNotFound
	}
	return t.state(row).Deleted, nil
}
