// Package types defines the shared data structures for the trigger engine:
// host-side snapshots (locations, items, entities, events) and the holder
// definitions compiled from Lua content. Apart from the small accessor
// methods in actor.go and events.go it contains no logic.
package types

import "github.com/google/uuid"

// Location is a point in a named world.
type Location struct {
	World string
	X     float64
	Y     float64
	Z     float64
}

// Vector is a velocity or direction.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Block is a struck or broken block.
type Block struct {
	Material string
	At       Location
}

// Item is a snapshot of an item stack.
type Item struct {
	Material     string
	Amount       int
	DisplayName  string
	Lore         []string
	Enchantments map[string]int
}

// Projectile is an in-flight projectile.
type Projectile struct {
	ID      uuid.UUID
	Kind    string
	Shooter uuid.UUID
}

// Entity is the engine's view of a host actor. Implementations are owned by
// the host; the engine only reads them.
type Entity interface {
	UUID() uuid.UUID
	Name() string
	Location() *Location
	Velocity() *Vector
	HeldItem() *Item
}

// IsNilEntity reports whether e holds no actor. A nil *Actor stored in the
// interface counts as no actor.
func IsNilEntity(e Entity) bool {
	if e == nil {
		return true
	}
	a, ok := e.(*Actor)
	return ok && a == nil
}

// Event is a raw host occurrence. EventType is the tag adapters register under.
type Event interface {
	EventType() string
}

// Cancellable is a host event whose processing can be vetoed.
type Cancellable interface {
	Event
	IsCancelled() bool
	SetCancelled(cancelled bool)
}

// Condition is a predicate that must be true for a listener to fire.
type Condition struct {
	Type   string         // "in_world", "value_above", "holding_item", "not", etc.
	Params map[string]any // condition-specific parameters
	Inner  *Condition     // for Not(): the negated inner condition
}

// Effect is a single listener effect instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// ChanceDef declares a base chance (percent) a holder contributes to a
// chance-multiplier effect.
type ChanceDef struct {
	Effect string
	Chance float64
}

// MultiplierDef declares a multiplier a holder applies to a chance-multiplier
// effect.
type MultiplierDef struct {
	Effect     string
	Multiplier float64
}

// ListenerDef binds conditions and effects to a trigger id.
type ListenerDef struct {
	Trigger     string
	Chance      float64 // percent; 100 when omitted
	Conditions  []Condition
	Effects     []Effect
	SourceOrder int
}

// HolderDef is a configuration source: an item, set bonus or permanent
// modifier that supplies chances and listeners to whoever holds it.
type HolderDef struct {
	ID          string
	Name        string
	Global      bool // applies to every dispatcher, including the global one
	Provider    *Item
	Chances     []ChanceDef
	Multipliers []MultiplierDef
	Listeners   []ListenerDef
}

// ActorDef is a simulated actor declared in content.
type ActorDef struct {
	Name     string
	Kind     string // "player" or a mob kind
	Location Location
	Velocity Vector
	Holding  *Item
}

// Grant assigns a holder to an actor at startup.
type Grant struct {
	Actor  string
	Holder string
}

// Activation records one listener that fired for a dispatched trigger.
type Activation struct {
	Holder     string
	Trigger    string
	Dispatcher string
	Effects    []Effect
}

// Result is the outcome of one harness step or host event.
type Result struct {
	Handled     int // adapters that handled the event
	Activations []Activation
	Output      []string
	Cancelled   bool  // final cancellation flag of the host event
	Draws       int64 // RNG draws consumed
}

// World is the mutable simulation state: actors, holder grants and stats.
type World struct {
	Actors     map[string]*Actor            // keyed by lower-case name
	Grants     map[uuid.UUID][]string       // actor → holder ids, in grant order
	Stats      map[uuid.UUID]map[string]int // actor → stat → value
	RNGSeed    int64
	EventCount int
	CommandLog []string
}

// Command is a parsed harness command.
type Command struct {
	Verb string
	Args []string
}
