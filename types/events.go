package types

// Host event tags.
const (
	EventFish         = "player_fish"
	EventElytraBoost  = "player_elytra_boost"
	EventBlockBreak   = "block_break"
	EventEntityDamage = "entity_damage_by_entity"
)

// FishState is the outcome of a fishing rod interaction.
type FishState string

const (
	FishFishing       FishState = "FISHING"
	FishCaughtFish    FishState = "CAUGHT_FISH"
	FishCaughtEntity  FishState = "CAUGHT_ENTITY"
	FishInGround      FishState = "IN_GROUND"
	FishFailedAttempt FishState = "FAILED_ATTEMPT"
	FishReelIn        FishState = "REEL_IN"
	FishBite          FishState = "BITE"
)

// DamageCause classifies an entity damage event.
type DamageCause string

const (
	DamageEntityAttack DamageCause = "ENTITY_ATTACK"
	DamageProjectile   DamageCause = "PROJECTILE"
	DamageThorns       DamageCause = "THORNS"
)

// FishEvent is raised when a player uses a fishing rod.
type FishEvent struct {
	Player     Entity
	Hook       Location
	State      FishState
	CaughtItem *Item // set only when the hook pulled in a dropped item
	Cancelled  bool
}

func (e *FishEvent) EventType() string   { return EventFish }
func (e *FishEvent) IsCancelled() bool   { return e.Cancelled }
func (e *FishEvent) SetCancelled(c bool) { e.Cancelled = c }

// ElytraBoostEvent is raised when a gliding player boosts with a firework.
type ElytraBoostEvent struct {
	Player        Entity
	Firework      *Item
	ShouldConsume bool
	Cancelled     bool
}

func (e *ElytraBoostEvent) EventType() string   { return EventElytraBoost }
func (e *ElytraBoostEvent) IsCancelled() bool   { return e.Cancelled }
func (e *ElytraBoostEvent) SetCancelled(c bool) { e.Cancelled = c }

// BlockBreakEvent is raised when a player breaks a block.
type BlockBreakEvent struct {
	Player    Entity
	Block     Block
	DropItems bool
	Cancelled bool
}

func (e *BlockBreakEvent) EventType() string   { return EventBlockBreak }
func (e *BlockBreakEvent) IsCancelled() bool   { return e.Cancelled }
func (e *BlockBreakEvent) SetCancelled(c bool) { e.Cancelled = c }

// EntityDamageEvent is raised when one entity damages another.
type EntityDamageEvent struct {
	Damager    Entity
	Victim     Entity
	Cause      DamageCause
	Projectile *Projectile
	Damage     float64
	Cancelled  bool
}

func (e *EntityDamageEvent) EventType() string   { return EventEntityDamage }
func (e *EntityDamageEvent) IsCancelled() bool   { return e.Cancelled }
func (e *EntityDamageEvent) SetCancelled(c bool) { e.Cancelled = c }
