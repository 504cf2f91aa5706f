// Package dispatcher defines the scope key used for configuration and
// probability lookups: either the global scope or one specific actor.
package dispatcher

import (
	"github.com/google/uuid"

	"github.com/nathoo/triggerforge/types"
)

// Dispatcher is a tagged value: the zero value is the global dispatcher,
// otherwise it is scoped to one actor. The actor is referenced, not owned.
type Dispatcher struct {
	actor types.Entity
}

// Global returns the global dispatcher. All global dispatchers are equal.
func Global() Dispatcher {
	return Dispatcher{}
}

// ForActor returns a dispatcher scoped to actor. A nil actor yields Global.
func ForActor(actor types.Entity) Dispatcher {
	if types.IsNilEntity(actor) {
		return Global()
	}
	return Dispatcher{actor: actor}
}

// IsGlobal reports whether d is the global dispatcher.
func (d Dispatcher) IsGlobal() bool {
	return d.actor == nil
}

// Actor returns the scoped actor, or nil for the global dispatcher.
func (d Dispatcher) Actor() types.Entity {
	return d.actor
}

// ID returns the scoped actor's UUID, or uuid.Nil for the global dispatcher.
func (d Dispatcher) ID() uuid.UUID {
	if d.actor == nil {
		return uuid.Nil
	}
	return d.actor.UUID()
}

// Key returns "global" or "entity:<uuid>".
func (d Dispatcher) Key() string {
	if d.actor == nil {
		return "global"
	}
	return "entity:" + d.actor.UUID().String()
}

// Equal reports whether both are global, or both are scoped to the same actor.
func (d Dispatcher) Equal(other Dispatcher) bool {
	if d.IsGlobal() || other.IsGlobal() {
		return d.IsGlobal() == other.IsGlobal()
	}
	return d.actor.UUID() == other.actor.UUID()
}

func (d Dispatcher) String() string {
	if d.actor == nil {
		return "global"
	}
	return "entity:" + d.actor.Name()
}
