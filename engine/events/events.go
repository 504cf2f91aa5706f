// Package events routes raw host events to the adapters registered for
// their event tag. Routing is single pass and synchronous.
package events

import (
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/registry"
	"github.com/nathoo/triggerforge/types"
)

// Adapter turns one kind of host event into a trigger dispatch or an effect
// decision. Handle reports whether the event was relevant.
type Adapter interface {
	ID() string
	EventType() string
	Handle(ev types.Event) bool
}

// Registry maps event tags to adapters in registration order.
type Registry struct {
	adapters *registry.Registry[Adapter]
	byTag    map[string][]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: registry.New[Adapter]("adapter"),
		byTag:    map[string][]Adapter{},
	}
}

// Register adds an adapter. Adapter ids are unique across all tags.
func (r *Registry) Register(a Adapter) error {
	if a.EventType() == "" {
		return errors.Newf(errors.ErrInvalidInput, "adapter %q has no event type", a.ID())
	}
	if err := r.adapters.Register(a.ID(), a); err != nil {
		return err
	}
	r.byTag[a.EventType()] = append(r.byTag[a.EventType()], a)
	return nil
}

// Seal ends the startup phase.
func (r *Registry) Seal() { r.adapters.Seal() }

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.adapters.Sealed() }

// IDs returns every adapter id, sorted.
func (r *Registry) IDs() []string { return r.adapters.IDs() }

// For returns the adapters registered for an event tag.
func (r *Registry) For(tag string) []Adapter {
	return append([]Adapter(nil), r.byTag[tag]...)
}

// Route hands ev to every adapter for its tag and returns how many handled
// it. An event already cancelled when an adapter's turn comes is skipped by
// that adapter.
func (r *Registry) Route(ev types.Event) int {
	if ev == nil {
		return 0
	}
	log := logging.GetLogger("events")

	handled := 0
	for _, a := range r.byTag[ev.EventType()] {
		if c, ok := ev.(types.Cancellable); ok && c.IsCancelled() {
			log.Trace().Str("adapter", a.ID()).Msg("Skipping cancelled event")
			continue
		}
		if a.Handle(ev) {
			handled++
		}
	}
	log.Trace().Str("event", ev.EventType()).Int("handled", handled).Msg("Routed event")
	return handled
}
