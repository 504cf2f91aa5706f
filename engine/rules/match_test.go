package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

type countingRoller struct {
	value float64
	draws int
}

func (c *countingRoller) Float64() float64 {
	c.draws++
	return c.value
}

func sendMessage(text string) types.Effect {
	return types.Effect{Type: "send_message", Params: map[string]any{"text": text}}
}

func matchDefs() *state.Defs {
	return &state.Defs{
		Holders: map[string]types.HolderDef{
			"lucky_charm": {
				ID:       "lucky_charm",
				Provider: &types.Item{Material: "rabbit_foot"},
				Listeners: []types.ListenerDef{
					{
						Trigger:     "catch_fish_fail",
						Chance:      100,
						Conditions:  []types.Condition{cond("in_world", map[string]any{"world": "overworld"})},
						Effects:     []types.Effect{sendMessage("Unlucky, %player%!"), {Type: "add_stat", Params: map[string]any{"stat": "misses", "amount": 1}}},
						SourceOrder: 1,
					},
					{
						Trigger:     "catch_fish_fail",
						Chance:      100,
						Effects:     []types.Effect{{Type: "cancel_event"}},
						SourceOrder: 0,
					},
					{
						Trigger: "mine_block",
						Chance:  100,
						Effects: []types.Effect{sendMessage("mined")},
					},
				},
			},
			"sea_blessing": {
				ID:     "sea_blessing",
				Global: true,
				Listeners: []types.ListenerDef{
					{Trigger: "catch_fish_fail", Chance: 25, Effects: []types.Effect{sendMessage("The sea sighs.")}},
				},
			},
		},
		Actors: []types.ActorDef{
			{Name: "alice", Location: types.Location{World: "overworld"}},
			{Name: "bob", Location: types.Location{World: "nether"}},
		},
		Grants: []types.Grant{{Actor: "alice", Holder: "lucky_charm"}},
	}
}

func setupMatcher(roller interface{ Float64() float64 }) (*Matcher, *types.World) {
	defs := matchDefs()
	w := state.NewState(defs)
	return NewMatcher(state.NewSource(w, defs), w, roller), w
}

func dispatchFor(tr trigger.Trigger, actor *types.Actor, opts ...trigger.DataOption) trigger.DispatchedTrigger {
	opts = append([]trigger.DataOption{trigger.WithPlayer(actor)}, opts...)
	d := dispatcher.ForActor(actor)
	return trigger.NewData(opts...).Dispatch(d).WithTrigger(tr)
}

func TestMatcher_FiresListenersInOrder(t *testing.T) {
	m, w := setupMatcher(fixedRoller(0.9))
	alice, _ := state.FindActor(w, "alice")
	ev := &types.FishEvent{Player: alice, State: types.FishFailedAttempt}
	tr := trigger.NewBase("catch_fish_fail", trigger.ParamPlayer, trigger.ParamLocation, trigger.ParamEvent, trigger.ParamItem)

	m.Dispatch(dispatchFor(tr, alice, trigger.WithEvent(trigger.Wrap(ev))))
	res := m.Drain()

	// sea_blessing's 25% listener misses on a 0.9 draw.
	require.Len(t, res.Activations, 2)
	assert.Equal(t, "lucky_charm", res.Activations[0].Holder)
	assert.Equal(t, []types.Effect{{Type: "cancel_event"}}, res.Activations[0].Effects, "lower source order first")
	assert.Equal(t, "catch_fish_fail", res.Activations[1].Trigger)
	assert.Equal(t, "entity:alice", res.Activations[1].Dispatcher)

	assert.True(t, ev.Cancelled)
	assert.Equal(t, []string{"Unlucky, alice!"}, res.Output)
	assert.Equal(t, 1, state.GetStat(w, alice.ID, "misses"))

	assert.Empty(t, m.Drain().Activations, "drain resets")
}

func TestMatcher_GlobalHolderListenerChance(t *testing.T) {
	m, w := setupMatcher(fixedRoller(0.1))
	bob, _ := state.FindActor(w, "bob")
	tr := trigger.NewBase("catch_fish_fail")

	m.Dispatch(dispatchFor(tr, bob))
	res := m.Drain()

	require.Len(t, res.Activations, 1)
	assert.Equal(t, "sea_blessing", res.Activations[0].Holder)
	assert.Equal(t, []string{"The sea sighs."}, res.Output)
}

func TestMatcher_ConditionsSeeTheHolder(t *testing.T) {
	defs := matchDefs()
	h := defs.Holders["lucky_charm"]
	h.Listeners = []types.ListenerDef{{
		Trigger:    "catch_fish_fail",
		Chance:     100,
		Conditions: []types.Condition{cond("holding_item", map[string]any{"item": "rabbit_foot"})},
		Effects:    []types.Effect{sendMessage("%item%")},
	}}
	defs.Holders["lucky_charm"] = h
	w := state.NewState(defs)
	m := NewMatcher(state.NewSource(w, defs), w, fixedRoller(0.99))
	alice, _ := state.FindActor(w, "alice")

	m.Dispatch(dispatchFor(trigger.NewBase("catch_fish_fail"), alice))
	assert.Equal(t, []string{"rabbit_foot"}, m.Drain().Output)
}

func TestMatcher_ConditionFailureSkips(t *testing.T) {
	m, w := setupMatcher(fixedRoller(0.99))
	alice, _ := state.FindActor(w, "alice")

	nether := &types.Location{World: "nether"}
	m.Dispatch(dispatchFor(trigger.NewBase("catch_fish_fail"), alice, trigger.WithLocation(nether)))
	res := m.Drain()

	require.Len(t, res.Activations, 1, "only the unconditional listener fires")
	assert.Empty(t, res.Output)
}

func TestMatcher_OtherTriggerIgnored(t *testing.T) {
	m, w := setupMatcher(fixedRoller(0))
	bob, _ := state.FindActor(w, "bob")

	m.Dispatch(dispatchFor(trigger.NewBase("melee_attack"), bob))
	assert.Empty(t, m.Drain().Activations)
}

func TestMatcher_ListenerChanceDraws(t *testing.T) {
	tests := []struct {
		chance    float64
		wantFired bool
		wantDraws int
	}{
		{100, true, 0},
		{0, false, 0},
		{50, true, 1},
		{25, false, 1},
	}
	for _, tt := range tests {
		roller := &countingRoller{value: 0.3}
		m := &Matcher{roller: roller}
		assert.Equal(t, tt.wantFired, m.rollListener(tt.chance), "chance %v", tt.chance)
		assert.Equal(t, tt.wantDraws, roller.draws, "chance %v", tt.chance)
	}
}

func TestNeeds(t *testing.T) {
	l := types.ListenerDef{
		Conditions: []types.Condition{
			cond("in_world", nil),
			not(cond("value_below", nil)),
			cond("holding_item", nil),
		},
		Effects: []types.Effect{{Type: "cancel_event"}, {Type: "add_stat"}, sendMessage("x")},
	}
	assert.Equal(t, []trigger.Parameter{
		trigger.ParamLocation, trigger.ParamValue, trigger.ParamItem, trigger.ParamEvent, trigger.ParamPlayer,
	}, Needs(l))
}
