package triggers

import (
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

// Adapter is a trigger that also consumes host events.
type Adapter interface {
	trigger.Trigger
	Bind(sink trigger.Sink)
	EventType() string
	Handle(ev types.Event) bool
}

// All returns a fresh instance of every built-in trigger.
func All() []Adapter {
	return []Adapter{
		NewCatchFishFail(),
		NewCatchFish(),
		NewMineBlock(),
		NewMeleeAttack(),
		NewRangedAttack(),
	}
}

// IDs returns the ids of every built-in trigger.
func IDs() []string {
	all := All()
	ids := make([]string, len(all))
	for i, t := range all {
		ids[i] = t.ID()
	}
	return ids
}
