package triggers

import (
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

// MeleeAttack dispatches direct hits by one actor on another. Projectile
// and thorns damage are ignored.
type MeleeAttack struct {
	*trigger.Base
}

// NewMeleeAttack creates the melee_attack trigger.
func NewMeleeAttack() *MeleeAttack {
	return &MeleeAttack{trigger.NewBase(MeleeAttackID,
		trigger.ParamPlayer,
		trigger.ParamVictim,
		trigger.ParamEvent,
		trigger.ParamValue,
	)}
}

func (t *MeleeAttack) EventType() string { return types.EventEntityDamage }

func (t *MeleeAttack) Handle(ev types.Event) bool {
	data, ok := t.Extract(ev)
	if !ok {
		return false
	}
	t.ProcessTrigger(data.Player(), data)
	return true
}

// Extract reads the damager as the player and the damage as the value.
func (t *MeleeAttack) Extract(ev types.Event) (trigger.Data, bool) {
	dmg, ok := ev.(*types.EntityDamageEvent)
	if !ok || dmg.Cause != types.DamageEntityAttack || types.IsNilEntity(dmg.Damager) || types.IsNilEntity(dmg.Victim) {
		return trigger.Data{}, false
	}
	return trigger.NewData(
		trigger.WithPlayer(dmg.Damager),
		trigger.WithVictim(dmg.Victim),
		trigger.WithEvent(trigger.Wrap(dmg)),
		trigger.WithValue(dmg.Damage),
	), true
}

// RangedAttack dispatches projectile hits. The shooter is the player.
type RangedAttack struct {
	*trigger.Base
}

// NewRangedAttack creates the ranged_attack trigger.
func NewRangedAttack() *RangedAttack {
	return &RangedAttack{trigger.NewBase(RangedAttackID,
		trigger.ParamPlayer,
		trigger.ParamVictim,
		trigger.ParamProjectile,
		trigger.ParamEvent,
		trigger.ParamValue,
	)}
}

func (t *RangedAttack) EventType() string { return types.EventEntityDamage }

func (t *RangedAttack) Handle(ev types.Event) bool {
	data, ok := t.Extract(ev)
	if !ok {
		return false
	}
	t.ProcessTrigger(data.Player(), data)
	return true
}

func (t *RangedAttack) Extract(ev types.Event) (trigger.Data, bool) {
	dmg, ok := ev.(*types.EntityDamageEvent)
	if !ok || dmg.Cause != types.DamageProjectile || dmg.Projectile == nil || types.IsNilEntity(dmg.Damager) || types.IsNilEntity(dmg.Victim) {
		return trigger.Data{}, false
	}
	return trigger.NewData(
		trigger.WithPlayer(dmg.Damager),
		trigger.WithVictim(dmg.Victim),
		trigger.WithProjectile(dmg.Projectile),
		trigger.WithEvent(trigger.Wrap(dmg)),
		trigger.WithValue(dmg.Damage),
	), true
}
