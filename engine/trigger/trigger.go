// Package trigger holds the dispatch core: parameters, the immutable Data
// snapshot, trigger definitions and the DispatchedTrigger handed to the
// matching layer.
package trigger

import (
	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// Trigger is a named rule type. IDs are globally unique.
type Trigger interface {
	ID() string
	RequiredParameters() []Parameter
}

// Sink receives dispatched triggers. The matching layer implements it and
// must finish every matched effect before Dispatch returns.
type Sink interface {
	Dispatch(dt DispatchedTrigger)
}

// DispatchedTrigger is a trigger bound to one dispatcher and one Data.
type DispatchedTrigger struct {
	Dispatcher dispatcher.Dispatcher
	Trigger    Trigger
	Data       Data
}

// WithTrigger returns a copy bound to t.
func (dt DispatchedTrigger) WithTrigger(t Trigger) DispatchedTrigger {
	dt.Trigger = t
	return dt
}

// TriggerID returns the bound trigger's id, or "" when unbound.
func (dt DispatchedTrigger) TriggerID() string {
	if dt.Trigger == nil {
		return ""
	}
	return dt.Trigger.ID()
}

// Blank is the placeholder trigger Data.Dispatch binds to before the real
// trigger is attached.
var Blank Trigger = blank{}

type blank struct{}

func (blank) ID() string                      { return "blank" }
func (blank) RequiredParameters() []Parameter { return nil }

// Base implements Trigger and the dispatch step shared by every concrete
// trigger.
type Base struct {
	id       string
	required []Parameter
	sink     Sink
}

// NewBase creates a trigger with the given id and required parameters.
func NewBase(id string, required ...Parameter) *Base {
	return &Base{id: id, required: required}
}

func (b *Base) ID() string { return b.id }

// RequiredParameters is advisory metadata for the matching layer.
func (b *Base) RequiredParameters() []Parameter {
	out := make([]Parameter, len(b.required))
	copy(out, b.required)
	return out
}

// Bind attaches the sink that receives dispatched occurrences.
func (b *Base) Bind(sink Sink) { b.sink = sink }

// Bound reports whether a sink is attached.
func (b *Base) Bound() bool { return b.sink != nil }

// ProcessTrigger dispatches data for actor and returns once the sink has
// finished. Missing required parameters do not stop the dispatch.
func (b *Base) ProcessTrigger(actor types.Entity, data Data) {
	log := logging.GetLogger("trigger")

	if !b.Bound() {
		log.Warn().Str("trigger", b.id).Msg("Trigger has no sink; occurrence dropped")
		return
	}

	if missing := Missing(data.Provided(), b.required); len(missing) > 0 {
		log.Debug().
			Str("trigger", b.id).
			Strs("missing", Names(missing)).
			Msg("Dispatching with missing required parameters")
	}

	d := dispatcher.ForActor(actor)
	dt := data.Dispatch(d).WithTrigger(b)
	log.Trace().Str("trigger", b.id).Str("dispatcher", d.Key()).Msg("Dispatching trigger")
	b.sink.Dispatch(dt)
}
