package trigger

import (
	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/types"
)

// Data is an immutable snapshot of one occurrence. Build it with NewData and
// derive changed copies with With; there are no setters. Item pointers are
// shared snapshots and must be treated as read-only.
type Data struct {
	holder     holder.Provided
	dispatcher dispatcher.Dispatcher

	player     types.Entity
	victim     types.Entity
	block      *types.Block
	event      types.Event
	location   *types.Location
	projectile *types.Projectile
	velocity   *types.Vector
	item       *types.Item
	text       string
	hasText    bool
	value      float64

	// originalPlayer is captured from player exactly once, in NewData. With
	// copies it verbatim, including when the visible player is replaced, and
	// placeholder text is always resolved against it. Never reassign it.
	originalPlayer types.Entity
}

// DataOption sets one explicit field of a Data.
type DataOption func(*dataBuilder)

type dataBuilder struct {
	d           Data
	locationSet bool
	velocitySet bool
	itemSet     bool
}

// WithHolder sets the holder that produced the chance or effect.
func WithHolder(p holder.Provided) DataOption {
	return func(b *dataBuilder) {
		if p == nil {
			p = holder.Empty
		}
		b.d.holder = p
	}
}

// WithDispatcher sets the lookup scope.
func WithDispatcher(d dispatcher.Dispatcher) DataOption {
	return func(b *dataBuilder) { b.d.dispatcher = d }
}

// WithPlayer sets the primary actor.
func WithPlayer(e types.Entity) DataOption {
	return func(b *dataBuilder) { b.d.player = entityOrNil(e) }
}

// WithVictim sets the secondary actor.
func WithVictim(e types.Entity) DataOption {
	return func(b *dataBuilder) { b.d.victim = entityOrNil(e) }
}

// WithBlock sets the struck block.
func WithBlock(block *types.Block) DataOption {
	return func(b *dataBuilder) { b.d.block = copyBlock(block) }
}

// WithEvent sets the underlying host event.
func WithEvent(ev types.Event) DataOption {
	return func(b *dataBuilder) { b.d.event = ev }
}

// WithLocation sets the position explicitly. A nil location is kept as
// absent and is not derived from the actors.
func WithLocation(loc *types.Location) DataOption {
	return func(b *dataBuilder) {
		b.d.location = copyLocation(loc)
		b.locationSet = true
	}
}

// WithProjectile sets the projectile.
func WithProjectile(p *types.Projectile) DataOption {
	return func(b *dataBuilder) {
		if p == nil {
			b.d.projectile = nil
			return
		}
		c := *p
		b.d.projectile = &c
	}
}

// WithVelocity sets the velocity explicitly. A nil velocity is kept as absent.
func WithVelocity(v *types.Vector) DataOption {
	return func(b *dataBuilder) {
		b.d.velocity = copyVector(v)
		b.velocitySet = true
	}
}

// WithItem sets the item explicitly. A nil item is kept as absent.
func WithItem(item *types.Item) DataOption {
	return func(b *dataBuilder) {
		b.d.item = item
		b.itemSet = true
	}
}

// WithText sets the free-form text.
func WithText(text string) DataOption {
	return func(b *dataBuilder) {
		b.d.text = text
		b.d.hasText = true
	}
}

// WithValue sets the numeric value. The default is 1.
func WithValue(v float64) DataOption {
	return func(b *dataBuilder) { b.d.value = v }
}

// NewData builds a snapshot from explicit options. Fields not set explicitly
// are derived before the value is returned:
//
//	location: victim's location, else player's location
//	velocity: player's velocity, else victim's velocity
//	item:     player's held item, else victim's held item
func NewData(opts ...DataOption) Data {
	b := dataBuilder{d: Data{
		holder:     holder.Empty,
		dispatcher: dispatcher.Global(),
		value:      1.0,
	}}
	for _, opt := range opts {
		opt(&b)
	}

	if !b.locationSet {
		b.d.location = firstLocation(b.d.victim, b.d.player)
	}
	if !b.velocitySet {
		b.d.velocity = firstVelocity(b.d.player, b.d.victim)
	}
	if !b.itemSet {
		b.d.item = firstHeldItem(b.d.player, b.d.victim)
	}

	b.d.originalPlayer = b.d.player
	return b.d
}

// With returns a copy with the given options applied. Nothing is re-derived
// and the original player is carried over unchanged.
func (d Data) With(opts ...DataOption) Data {
	b := dataBuilder{d: d}
	for _, opt := range opts {
		opt(&b)
	}
	b.d.originalPlayer = d.originalPlayer
	return b.d
}

// Dispatch binds the data to d under the blank trigger. The copy carries d as
// its dispatcher so effects can read the scope back from the data.
func (d Data) Dispatch(disp dispatcher.Dispatcher) DispatchedTrigger {
	bound := d.With(WithDispatcher(disp))
	return DispatchedTrigger{
		Dispatcher: disp,
		Trigger:    Blank,
		Data:       bound,
	}
}

func (d Data) Holder() holder.Provided {
	if d.holder == nil {
		return holder.Empty
	}
	return d.holder
}

func (d Data) Dispatcher() dispatcher.Dispatcher { return d.dispatcher }
func (d Data) Player() types.Entity              { return d.player }
func (d Data) Victim() types.Entity              { return d.victim }
func (d Data) Event() types.Event                { return d.event }
func (d Data) Item() *types.Item                 { return d.item }
func (d Data) Value() float64                    { return d.value }
func (d Data) OriginalPlayer() types.Entity      { return d.originalPlayer }
func (d Data) Block() *types.Block               { return copyBlock(d.block) }
func (d Data) Location() *types.Location         { return copyLocation(d.location) }
func (d Data) Velocity() *types.Vector           { return copyVector(d.velocity) }
func (d Data) Projectile() *types.Projectile     { return d.projectile }
func (d Data) Text() string                      { return d.text }
func (d Data) HasText() bool                     { return d.hasText }

// FoundItem returns the holder's provider item when there is one, otherwise
// the item field.
func (d Data) FoundItem() *types.Item {
	if item := holder.ProviderItem(d.Holder()); item != nil {
		return item
	}
	return d.item
}

// Provided lists the parameters this snapshot actually carries.
func (d Data) Provided() []Parameter {
	var ps []Parameter
	if d.player != nil {
		ps = append(ps, ParamPlayer)
	}
	if d.victim != nil {
		ps = append(ps, ParamVictim)
	}
	if d.block != nil {
		ps = append(ps, ParamBlock)
	}
	if d.event != nil {
		ps = append(ps, ParamEvent)
	}
	if d.location != nil {
		ps = append(ps, ParamLocation)
	}
	if d.projectile != nil {
		ps = append(ps, ParamProjectile)
	}
	if d.velocity != nil {
		ps = append(ps, ParamVelocity)
	}
	if d.item != nil {
		ps = append(ps, ParamItem)
	}
	if d.hasText {
		ps = append(ps, ParamText)
	}
	return append(ps, ParamValue)
}

// Equal reports whether the two snapshots hash equal. A hash collision is
// treated as equality.
func (d Data) Equal(other Data) bool {
	return d.Hash() == other.Hash()
}

func entityOrNil(e types.Entity) types.Entity {
	if types.IsNilEntity(e) {
		return nil
	}
	return e
}

func firstLocation(entities ...types.Entity) *types.Location {
	for _, e := range entities {
		if e == nil {
			continue
		}
		if loc := e.Location(); loc != nil {
			return copyLocation(loc)
		}
	}
	return nil
}

func firstVelocity(entities ...types.Entity) *types.Vector {
	for _, e := range entities {
		if e == nil {
			continue
		}
		if v := e.Velocity(); v != nil {
			return copyVector(v)
		}
	}
	return nil
}

func firstHeldItem(entities ...types.Entity) *types.Item {
	for _, e := range entities {
		if e == nil {
			continue
		}
		if item := e.HeldItem(); item != nil {
			return item
		}
	}
	return nil
}

func copyLocation(l *types.Location) *types.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func copyVector(v *types.Vector) *types.Vector {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBlock(b *types.Block) *types.Block {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
