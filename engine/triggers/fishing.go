// Package triggers holds the concrete triggers. Each one is also the host
// event adapter that feeds it: it filters the raw event, builds one
// trigger.Data and calls ProcessTrigger.
package triggers

import (
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

// Trigger ids.
const (
	CatchFishFailID = "catch_fish_fail"
	CatchFishID     = "catch_fish"
	MineBlockID     = "mine_block"
	MeleeAttackID   = "melee_attack"
	RangedAttackID  = "ranged_attack"
)

// FishTrigger dispatches fishing events in one state.
type FishTrigger struct {
	*trigger.Base
	state types.FishState
}

// NewCatchFishFail creates the trigger for failed fishing attempts.
func NewCatchFishFail() *FishTrigger {
	return newFishTrigger(CatchFishFailID, types.FishFailedAttempt)
}

// NewCatchFish creates the trigger for successful catches.
func NewCatchFish() *FishTrigger {
	return newFishTrigger(CatchFishID, types.FishCaughtFish)
}

func newFishTrigger(id string, state types.FishState) *FishTrigger {
	return &FishTrigger{
		Base: trigger.NewBase(id,
			trigger.ParamPlayer,
			trigger.ParamLocation,
			trigger.ParamEvent,
			trigger.ParamItem,
		),
		state: state,
	}
}

func (t *FishTrigger) EventType() string { return types.EventFish }

// Handle dispatches ev when its state is the one this trigger listens for.
func (t *FishTrigger) Handle(ev types.Event) bool {
	data, ok := t.Extract(ev)
	if !ok {
		return false
	}
	t.ProcessTrigger(data.Player(), data)
	return true
}

// Extract builds the trigger data for ev, or reports false when ev is not
// a fishing event in this trigger's state. The item is the caught item when
// the hook pulled one in, otherwise the player's held item.
func (t *FishTrigger) Extract(ev types.Event) (trigger.Data, bool) {
	fish, ok := ev.(*types.FishEvent)
	if !ok || fish.State != t.state || types.IsNilEntity(fish.Player) {
		return trigger.Data{}, false
	}

	hook := fish.Hook
	opts := []trigger.DataOption{
		trigger.WithPlayer(fish.Player),
		trigger.WithLocation(&hook),
		trigger.WithEvent(trigger.Wrap(fish)),
	}
	if fish.CaughtItem != nil {
		opts = append(opts, trigger.WithItem(fish.CaughtItem))
	}
	return trigger.NewData(opts...), true
}
