package triggers

import (
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

// MineBlock dispatches block breaks.
type MineBlock struct {
	*trigger.Base
}

// NewMineBlock creates the mine_block trigger.
func NewMineBlock() *MineBlock {
	return &MineBlock{trigger.NewBase(MineBlockID,
		trigger.ParamPlayer,
		trigger.ParamBlock,
		trigger.ParamLocation,
		trigger.ParamEvent,
	)}
}

func (t *MineBlock) EventType() string { return types.EventBlockBreak }

func (t *MineBlock) Handle(ev types.Event) bool {
	data, ok := t.Extract(ev)
	if !ok {
		return false
	}
	t.ProcessTrigger(data.Player(), data)
	return true
}

// Extract places the occurrence at the block, not the player.
func (t *MineBlock) Extract(ev types.Event) (trigger.Data, bool) {
	br, ok := ev.(*types.BlockBreakEvent)
	if !ok || types.IsNilEntity(br.Player) {
		return trigger.Data{}, false
	}
	block := br.Block
	at := block.At
	return trigger.NewData(
		trigger.WithPlayer(br.Player),
		trigger.WithBlock(&block),
		trigger.WithLocation(&at),
		trigger.WithEvent(trigger.Wrap(br)),
		trigger.WithText(block.Material),
	), true
}
