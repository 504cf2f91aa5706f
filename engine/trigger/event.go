package trigger

import "github.com/nathoo/triggerforge/types"

// WrappedEvent exposes a cancellable host event behind a uniform type so
// effects can veto it without knowing the concrete event.
type WrappedEvent[E types.Cancellable] struct {
	Inner E
}

// Wrap returns ev behind a WrappedEvent.
func Wrap[E types.Cancellable](ev E) *WrappedEvent[E] {
	return &WrappedEvent[E]{Inner: ev}
}

func (w *WrappedEvent[E]) EventType() string   { return w.Inner.EventType() }
func (w *WrappedEvent[E]) IsCancelled() bool   { return w.Inner.IsCancelled() }
func (w *WrappedEvent[E]) SetCancelled(c bool) { w.Inner.SetCancelled(c) }

// Unwrap returns the host event.
func (w *WrappedEvent[E]) Unwrap() types.Event { return w.Inner }

// Identity hashes as the wrapped event, so two wrappers of the same host
// event compare equal.
func (w *WrappedEvent[E]) Identity() uint64 { return EventIdentity(w.Inner) }

// Unwrapper is implemented by events that wrap a host event.
type Unwrapper interface {
	Unwrap() types.Event
}

// HostEvent returns the innermost event behind any wrappers.
func HostEvent(ev types.Event) types.Event {
	for {
		u, ok := ev.(Unwrapper)
		if !ok {
			return ev
		}
		ev = u.Unwrap()
	}
}
