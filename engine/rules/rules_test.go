package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/types"
)

func TestCollect(t *testing.T) {
	a := holder.Provide(holder.FromDef(types.HolderDef{
		ID: "a",
		Listeners: []types.ListenerDef{
			{Trigger: "mine_block", SourceOrder: 3},
			{Trigger: "catch_fish", SourceOrder: 2},
			{Trigger: "mine_block", SourceOrder: 1},
		},
	}), nil)
	b := holder.Provide(holder.FromDef(types.HolderDef{
		ID:        "b",
		Listeners: []types.ListenerDef{{Trigger: "mine_block", SourceOrder: 0}},
	}), nil)

	got := Collect([]holder.Provided{a, holder.Empty, b}, "mine_block")

	var order []string
	for _, c := range got {
		order = append(order, c.Provided.Holder().ID()+":"+string(rune('0'+c.Listener.SourceOrder)))
	}
	assert.Equal(t, []string{"a:1", "a:3", "b:0"}, order, "holder order first, then source order")
}

func TestCollect_NoMatches(t *testing.T) {
	a := holder.Provide(holder.FromDef(types.HolderDef{ID: "a"}), nil)
	assert.Empty(t, Collect([]holder.Provided{a}, "mine_block"))
	assert.Empty(t, Collect(nil, "mine_block"))
}
