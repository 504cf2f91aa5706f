// Package engine wires triggers, adapters, effects and the matching layer
// together and exposes the two entry points: Handle for host events and
// Step for harness commands.
package engine

import (
	"github.com/nathoo/triggerforge/engine/chance"
	"github.com/nathoo/triggerforge/engine/effects"
	"github.com/nathoo/triggerforge/engine/events"
	"github.com/nathoo/triggerforge/engine/rules"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/engine/triggers"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/registry"
	"github.com/nathoo/triggerforge/types"
)

// Options configures a new engine.
type Options struct {
	Seed int64
}

// adapterEffect is an effect that consumes host events directly.
type adapterEffect interface {
	effects.Effect
	EventType() string
	Handle(ev types.Event) bool
}

// Engine holds the definitions, the simulation world and the sealed
// registries built from them.
type Engine struct {
	Defs    *state.Defs
	World   *types.World
	RNG     *RNG
	Holders *state.Source
	Chances *chance.Table
	Matcher *rules.Matcher

	triggers *registry.Registry[trigger.Trigger]
	effects  *registry.Registry[effects.Effect]
	adapters *events.Registry
}

// New builds the registries, binds every trigger to the matcher and seals
// the registries. A duplicate trigger, effect or adapter id fails
// construction.
func New(defs *state.Defs, opts Options) (*Engine, error) {
	log := logging.GetLogger("engine")

	w := state.NewState(defs)
	w.RNGSeed = opts.Seed
	rng := NewRNG(opts.Seed)
	holders := state.NewSource(w, defs)

	e := &Engine{
		Defs:     defs,
		World:    w,
		RNG:      rng,
		Holders:  holders,
		Chances:  chance.NewTable(holders),
		Matcher:  rules.NewMatcher(holders, w, rng),
		triggers: registry.New[trigger.Trigger]("trigger"),
		effects:  registry.New[effects.Effect]("effect"),
		adapters: events.NewRegistry(),
	}

	for _, t := range triggers.All() {
		if err := e.registerTrigger(t); err != nil {
			return nil, err
		}
	}
	if err := e.registerEffect(effects.NewElytraBoostSaveChance(e.Chances, rng)); err != nil {
		return nil, err
	}

	e.triggers.Seal()
	e.effects.Seal()
	e.adapters.Seal()

	for _, id := range state.HolderIDs(defs) {
		for _, l := range defs.Holders[id].Listeners {
			if !e.triggers.Has(l.Trigger) {
				return nil, errors.Newf(errors.ErrContentInvalid, "holder %q listens on unknown trigger %q", id, l.Trigger)
			}
		}
	}

	log.Info().
		Int("triggers", e.triggers.Count()).
		Int("effects", e.effects.Count()).
		Int("holders", len(defs.Holders)).
		Int("actors", len(w.Actors)).
		Int64("seed", opts.Seed).
		Msg("Engine ready")
	return e, nil
}

func (e *Engine) registerTrigger(t triggers.Adapter) error {
	if err := e.triggers.Register(t.ID(), t); err != nil {
		return errors.Wrap(err, errors.CodeOf(err), "registering trigger")
	}
	t.Bind(e.Matcher)
	return e.adapters.Register(t)
}

func (e *Engine) registerEffect(eff adapterEffect) error {
	if err := e.effects.Register(eff.ID(), eff); err != nil {
		return errors.Wrap(err, errors.CodeOf(err), "registering effect")
	}
	e.Chances.Allow(eff.ID())
	return e.adapters.Register(eff)
}

// Handle routes one host event through the adapters and returns the
// activations, output and final cancellation flag.
func (e *Engine) Handle(ev types.Event) types.Result {
	log := logging.GetLogger("engine")
	before := e.RNG.Position()

	handled := e.adapters.Route(ev)

	res := e.Matcher.Drain()
	res.Handled = handled
	if c, ok := ev.(types.Cancellable); ok {
		res.Cancelled = c.IsCancelled()
	}
	res.Draws = e.RNG.Position() - before
	e.World.EventCount++

	if ev != nil {
		log.Debug().
			Str("event", ev.EventType()).
			Int("handled", handled).
			Int("activations", len(res.Activations)).
			Bool("cancelled", res.Cancelled).
			Msg("Handled event")
	}
	return res
}

// Triggers returns every registered trigger in registration order.
func (e *Engine) Triggers() []trigger.Trigger { return e.triggers.Items() }

// TriggerIDs returns every registered trigger id, sorted.
func (e *Engine) TriggerIDs() []string { return e.triggers.IDs() }

// EffectIDs returns every registered effect id, sorted.
func (e *Engine) EffectIDs() []string { return e.effects.IDs() }

// AdapterIDs returns every registered adapter id, sorted.
func (e *Engine) AdapterIDs() []string { return e.adapters.IDs() }
