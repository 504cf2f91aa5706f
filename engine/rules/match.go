package rules

import (
	"github.com/nathoo/triggerforge/engine/effects"
	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// Matcher implements trigger.Sink. It is single-threaded: one dispatch at a
// time, results accumulated until Drain.
type Matcher struct {
	holders holder.Source
	world   *types.World
	roller  effects.Roller
	pending types.Result
}

// NewMatcher creates a matcher over the active-holder source and world.
// roller draws listener chances.
func NewMatcher(holders holder.Source, w *types.World, roller effects.Roller) *Matcher {
	return &Matcher{holders: holders, world: w, roller: roller}
}

// Dispatch runs every listener on dt's trigger whose conditions pass.
func (m *Matcher) Dispatch(dt trigger.DispatchedTrigger) {
	log := logging.GetLogger("rules")
	triggerID := dt.TriggerID()

	for _, c := range Collect(m.holders.HoldersFor(dt.Dispatcher), triggerID) {
		holderID := c.Provided.Holder().ID()

		if dt.Trigger != nil {
			if unmet := trigger.Missing(dt.Trigger.RequiredParameters(), Needs(c.Listener)); len(unmet) > 0 {
				log.Debug().
					Str("holder", holderID).
					Str("trigger", triggerID).
					Strs("unmet", trigger.Names(unmet)).
					Msg("Listener needs parameters the trigger does not declare")
			}
		}

		data := dt.Data.With(trigger.WithHolder(c.Provided))
		if !EvalAllConditions(c.Listener.Conditions, data, m.world) {
			log.Trace().Str("holder", holderID).Str("trigger", triggerID).Msg("Conditions failed")
			continue
		}
		if !m.rollListener(c.Listener.Chance) {
			log.Trace().Str("holder", holderID).Str("trigger", triggerID).Msg("Listener chance missed")
			continue
		}

		out := effects.Apply(m.world, data, c.Listener.Effects)
		m.pending.Output = append(m.pending.Output, out...)
		m.pending.Activations = append(m.pending.Activations, types.Activation{
			Holder:     holderID,
			Trigger:    triggerID,
			Dispatcher: dt.Dispatcher.String(),
			Effects:    c.Listener.Effects,
		})
		log.Debug().Str("holder", holderID).Str("trigger", triggerID).Msg("Listener fired")
	}
}

// Drain returns the activations and output collected since the last call.
func (m *Matcher) Drain() types.Result {
	r := m.pending
	m.pending = types.Result{}
	return r
}

// rollListener draws only for chances strictly between 0 and 100.
func (m *Matcher) rollListener(chance float64) bool {
	switch {
	case chance >= 100:
		return true
	case chance <= 0:
		return false
	}
	return m.roller.Float64()*100 < chance
}

// Needs lists the parameters a listener's conditions and effects read.
func Needs(l types.ListenerDef) []trigger.Parameter {
	var needs []trigger.Parameter
	add := func(p trigger.Parameter) {
		for _, x := range needs {
			if x == p {
				return
			}
		}
		needs = append(needs, p)
	}

	var visit func(c types.Condition)
	visit = func(c types.Condition) {
		switch c.Type {
		case "in_world":
			add(trigger.ParamLocation)
		case "value_above", "value_below":
			add(trigger.ParamValue)
		case "text_is":
			add(trigger.ParamText)
		case "holding_item":
			add(trigger.ParamItem)
		case "stat_above":
			add(trigger.ParamPlayer)
		case "not":
			if c.Inner != nil {
				visit(*c.Inner)
			}
		}
	}
	for _, c := range l.Conditions {
		visit(c)
	}

	for _, e := range l.Effects {
		switch e.Type {
		case effects.CancelEvent, effects.UncancelEvent:
			add(trigger.ParamEvent)
		case effects.AddStat:
			add(trigger.ParamPlayer)
		}
	}
	return needs
}
