package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

func testSetup() (*types.World, *types.Actor, *types.Actor) {
	defs := &state.Defs{
		Actors: []types.ActorDef{
			{Name: "alice", Location: types.Location{World: "overworld"}, Holding: &types.Item{Material: "fishing_rod"}},
			{Name: "bob", Location: types.Location{World: "nether"}},
		},
	}
	w := state.NewState(defs)
	alice, _ := state.FindActor(w, "alice")
	bob, _ := state.FindActor(w, "bob")
	return w, alice, bob
}

func msg(text string) types.Effect {
	return types.Effect{Type: SendMessage, Params: map[string]any{"text": text}}
}

func TestApply_SendMessage(t *testing.T) {
	w, alice, bob := testSetup()

	tests := []struct {
		name string
		data trigger.Data
		text string
		want string
	}{
		{
			name: "plain text",
			data: trigger.NewData(trigger.WithPlayer(alice)),
			text: "Nothing bites.",
			want: "Nothing bites.",
		},
		{
			name: "player and world",
			data: trigger.NewData(trigger.WithPlayer(alice)),
			text: "Unlucky, %player%! (%world%)",
			want: "Unlucky, alice! (overworld)",
		},
		{
			name: "value and text",
			data: trigger.NewData(trigger.WithValue(2.5), trigger.WithText("ouch")),
			text: "%text% for %value%",
			want: "ouch for 2.5",
		},
		{
			name: "item and victim",
			data: trigger.NewData(trigger.WithPlayer(alice), trigger.WithVictim(bob)),
			text: "%player% hits %victim% with %item%",
			want: "alice hits bob with fishing_rod",
		},
		{
			name: "player resolves against the original player",
			data: trigger.NewData(trigger.WithPlayer(alice)).With(trigger.WithPlayer(bob)),
			text: "%player%",
			want: "alice",
		},
		{
			name: "absent fields become empty",
			data: trigger.NewData(),
			text: "[%player%][%victim%][%world%]",
			want: "[][][]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(w, tt.data, []types.Effect{msg(tt.text)})
			assert.Equal(t, []string{tt.want}, out)
		})
	}
}

func TestApply_CancelEvent(t *testing.T) {
	w, alice, _ := testSetup()
	ev := &types.FishEvent{Player: alice, State: types.FishFailedAttempt}
	data := trigger.NewData(trigger.WithPlayer(alice), trigger.WithEvent(trigger.Wrap(ev)))

	Apply(w, data, []types.Effect{{Type: CancelEvent}})
	assert.True(t, ev.Cancelled)

	Apply(w, data, []types.Effect{{Type: UncancelEvent}})
	assert.False(t, ev.Cancelled)
}

func TestApply_CancelWithoutEvent(t *testing.T) {
	w, alice, _ := testSetup()
	assert.NotPanics(t, func() {
		Apply(w, trigger.NewData(trigger.WithPlayer(alice)), []types.Effect{{Type: CancelEvent}})
	})
}

func TestApply_AddStat(t *testing.T) {
	w, alice, bob := testSetup()
	add := types.Effect{Type: AddStat, Params: map[string]any{"stat": "misses", "amount": float64(2)}}

	Apply(w, trigger.NewData(trigger.WithPlayer(alice)), []types.Effect{add, add})
	assert.Equal(t, 4, state.GetStat(w, alice.ID, "misses"))
	assert.Equal(t, 0, state.GetStat(w, bob.ID, "misses"))

	// No player: nothing to credit.
	Apply(w, trigger.NewData(), []types.Effect{add})
	assert.Equal(t, 4, state.GetStat(w, alice.ID, "misses"))
}

func TestApply_Stop(t *testing.T) {
	w, alice, _ := testSetup()
	out := Apply(w, trigger.NewData(trigger.WithPlayer(alice)), []types.Effect{
		msg("one"),
		{Type: Stop},
		msg("two"),
	})
	assert.Equal(t, []string{"one"}, out)
}

func TestApply_UnknownIgnored(t *testing.T) {
	w, alice, _ := testSetup()
	out := Apply(w, trigger.NewData(trigger.WithPlayer(alice)), []types.Effect{
		{Type: "explode"},
		msg("still here"),
	})
	assert.Equal(t, []string{"still here"}, out)
}

func TestKnown(t *testing.T) {
	for _, typ := range []string{CancelEvent, UncancelEvent, SendMessage, AddStat, Stop} {
		assert.True(t, Known(typ), typ)
	}
	assert.False(t, Known("explode"))
}
