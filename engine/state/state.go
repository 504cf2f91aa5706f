// Package state manages the simulation world: actors, holder grants and
// per-actor stats layered over the immutable definitions loaded from Lua.
package state

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/types"
)

// actorNamespace seeds deterministic actor UUIDs so traces are stable
// across runs.
var actorNamespace = uuid.MustParse("6f1c0f3e-4b8a-5d2e-9a57-3c1f0b7d2a90")

// Defs holds the immutable definitions loaded from Lua.
type Defs struct {
	Holders map[string]types.HolderDef
	Actors  []types.ActorDef
	Grants  []types.Grant
}

// ActorID returns the deterministic UUID for an actor name.
func ActorID(name string) uuid.UUID {
	return uuid.NewSHA1(actorNamespace, []byte(strings.ToLower(name)))
}

// NewState creates a fresh world from definitions. Grants naming unknown
// actors or holders are skipped; the loader rejects them before this point.
func NewState(defs *Defs) *types.World {
	w := &types.World{
		Actors:     map[string]*types.Actor{},
		Grants:     map[uuid.UUID][]string{},
		Stats:      map[uuid.UUID]map[string]int{},
		CommandLog: []string{},
	}
	for _, def := range defs.Actors {
		w.Actors[strings.ToLower(def.Name)] = newActor(def)
	}
	for _, g := range defs.Grants {
		_ = GrantHolder(w, defs, g.Actor, g.Holder)
	}
	return w
}

func newActor(def types.ActorDef) *types.Actor {
	loc := def.Location
	vel := def.Velocity
	kind := def.Kind
	if kind == "" {
		kind = "player"
	}
	a := &types.Actor{
		ID:          ActorID(def.Name),
		DisplayName: def.Name,
		Kind:        kind,
		Loc:         &loc,
		Vel:         &vel,
	}
	if def.Holding != nil {
		item := *def.Holding
		a.MainHand = &item
	}
	return a
}

// FindActor looks an actor up by name, case-insensitively.
func FindActor(w *types.World, name string) (*types.Actor, bool) {
	a, ok := w.Actors[strings.ToLower(name)]
	return a, ok
}

// ActorNames returns every actor's display name, sorted.
func ActorNames(w *types.World) []string {
	names := make([]string, 0, len(w.Actors))
	for _, a := range w.Actors {
		names = append(names, a.DisplayName)
	}
	sort.Strings(names)
	return names
}

// HolderIDs returns every defined holder id, sorted.
func HolderIDs(defs *Defs) []string {
	ids := make([]string, 0, len(defs.Holders))
	for id := range defs.Holders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GrantsOf returns the holder ids granted to an actor, in grant order.
func GrantsOf(w *types.World, id uuid.UUID) []string {
	return append([]string(nil), w.Grants[id]...)
}

// HasGrant reports whether the actor has been granted the holder.
func HasGrant(w *types.World, id uuid.UUID, holderID string) bool {
	for _, h := range w.Grants[id] {
		if h == holderID {
			return true
		}
	}
	return false
}

// GrantHolder gives a holder to an actor. Granting twice is a no-op.
func GrantHolder(w *types.World, defs *Defs, actorName, holderID string) error {
	a, ok := FindActor(w, actorName)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "unknown actor %q", actorName)
	}
	if _, ok := defs.Holders[holderID]; !ok {
		return errors.Newf(errors.ErrNotFound, "unknown holder %q", holderID)
	}
	if HasGrant(w, a.ID, holderID) {
		return nil
	}
	w.Grants[a.ID] = append(w.Grants[a.ID], holderID)
	return nil
}

// RevokeHolder takes a holder away from an actor.
func RevokeHolder(w *types.World, actorName, holderID string) error {
	a, ok := FindActor(w, actorName)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "unknown actor %q", actorName)
	}
	if !HasGrant(w, a.ID, holderID) {
		return errors.Newf(errors.ErrNotFound, "%s does not hold %q", a.DisplayName, holderID)
	}
	kept := w.Grants[a.ID][:0]
	for _, h := range w.Grants[a.ID] {
		if h != holderID {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		delete(w.Grants, a.ID)
	} else {
		w.Grants[a.ID] = kept
	}
	return nil
}

// GetStat returns a stat value. Unset stats return 0.
func GetStat(w *types.World, id uuid.UUID, stat string) int {
	return w.Stats[id][stat]
}

// AddStat adds delta to a stat.
func AddStat(w *types.World, id uuid.UUID, stat string, delta int) {
	stats, ok := w.Stats[id]
	if !ok {
		stats = map[string]int{}
		w.Stats[id] = stats
	}
	stats[stat] += delta
}

// Source resolves active holders from the world's grants. It implements
// holder.Source.
type Source struct {
	world   *types.World
	holders map[string]*holder.Configured
	global  []string
}

// NewSource compiles the holder definitions once and serves lookups against
// the live world.
func NewSource(w *types.World, defs *Defs) *Source {
	s := &Source{
		world:   w,
		holders: make(map[string]*holder.Configured, len(defs.Holders)),
	}
	for _, id := range HolderIDs(defs) {
		def := defs.Holders[id]
		s.holders[id] = holder.FromDef(def)
		if def.Global {
			s.global = append(s.global, id)
		}
	}
	return s
}

// HoldersFor returns global holders (sorted by id) followed by the holders
// granted to the dispatcher's actor in grant order. The global dispatcher
// sees only global holders.
func (s *Source) HoldersFor(d dispatcher.Dispatcher) []holder.Provided {
	var out []holder.Provided
	seen := map[string]bool{}
	add := func(id string) {
		h, ok := s.holders[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, holder.Provide(h, nil))
	}

	for _, id := range s.global {
		add(id)
	}
	if !d.IsGlobal() {
		for _, id := range s.world.Grants[d.ID()] {
			add(id)
		}
	}
	return out
}

// Holder returns the compiled holder for id.
func (s *Source) Holder(id string) (holder.Holder, bool) {
	h, ok := s.holders[id]
	if !ok {
		return nil, false
	}
	return h, true
}
