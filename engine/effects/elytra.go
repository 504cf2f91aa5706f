package effects

import (
	"github.com/nathoo/triggerforge/engine/chance"
	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/types"
)

// ElytraBoostSaveChanceID is the effect id holders configure chances under.
const ElytraBoostSaveChanceID = "elytra_boost_save_chance"

// ElytraBoostSaveChance keeps the firework when a boosting player passes
// the save chance.
type ElytraBoostSaveChance struct {
	*ChanceMultiplier
}

// NewElytraBoostSaveChance binds the effect to a chance source and roller.
func NewElytraBoostSaveChance(source chance.Source, roller Roller) *ElytraBoostSaveChance {
	return &ElytraBoostSaveChance{NewChanceMultiplier(ElytraBoostSaveChanceID, source, roller)}
}

func (e *ElytraBoostSaveChance) EventType() string { return types.EventElytraBoost }

// Handle reports whether the event was one this effect consumes.
func (e *ElytraBoostSaveChance) Handle(ev types.Event) bool {
	boost, ok := ev.(*types.ElytraBoostEvent)
	if !ok || types.IsNilEntity(boost.Player) {
		return false
	}
	if e.PassesChance(dispatcher.ForActor(boost.Player)) {
		boost.ShouldConsume = false
	}
	return true
}

// ChanceEffectIDs lists the ids of every chance-multiplier effect, for
// content validation.
func ChanceEffectIDs() []string {
	return []string{ElytraBoostSaveChanceID}
}
