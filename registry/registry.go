// Package registry provides a generic id → item registry with an explicit
// startup phase: items are registered, the registry is sealed, and from then
// on it only serves reads.
package registry

import (
	"sort"
	"sync"

	"github.com/nathoo/triggerforge/errors"
)

// Registry stores items by unique id.
type Registry[T any] struct {
	kind   string
	mu     sync.RWMutex
	items  map[string]T
	order  []string
	sealed bool
}

// New creates an empty registry. kind names the item type in error messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

// Register adds an item. Empty and duplicate ids are rejected, as is any
// registration after Seal.
func (r *Registry[T]) Register(id string, item T) error {
	if id == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s id cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.Newf(errors.ErrRegistrySealed, "cannot register %s %q: registry is sealed", r.kind, id)
	}
	if _, exists := r.items[id]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s %q is already registered", r.kind, id)
	}

	r.items[id] = item
	r.order = append(r.order, id)
	return nil
}

// Seal ends the registration phase.
func (r *Registry[T]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry[T]) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get retrieves an item by id.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%s %q not found", r.kind, id)
	}
	return item, nil
}

// Has reports whether id is registered.
func (r *Registry[T]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok
}

// IDs returns all registered ids, sorted.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Items returns all items in registration order.
func (r *Registry[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Count returns the number of registered items.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
