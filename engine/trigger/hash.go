package trigger

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/types"
)

// Identifiable events supply their own identity for hashing. Events that do
// not implement it are hashed by pointer identity, or by value when they are
// not pointers.
type Identifiable interface {
	Identity() uint64
}

// Hash combines every field except the dispatcher and the original player.
// Items contribute their content hash, so two stacks differing only in
// amount hash the same.
func (d Data) Hash() uint64 {
	h := hasher{d: xxhash.New()}

	p := d.Holder()
	if holder.IsEmpty(p) {
		h.absent()
	} else {
		h.present()
		h.string(p.Holder().ID())
		h.uint64(providerHash(p.Provider()))
	}

	h.entity(d.player)
	h.entity(d.victim)

	if d.block == nil {
		h.absent()
	} else {
		h.present()
		h.string(d.block.Material)
		h.location(&d.block.At)
	}

	if d.event == nil {
		h.absent()
	} else {
		h.present()
		h.uint64(EventIdentity(d.event))
	}

	h.location(d.location)

	if d.projectile == nil {
		h.absent()
	} else {
		h.present()
		h.uuid(d.projectile.ID)
	}

	if d.velocity == nil {
		h.absent()
	} else {
		h.present()
		h.float(d.velocity.X)
		h.float(d.velocity.Y)
		h.float(d.velocity.Z)
	}

	if d.item == nil {
		h.absent()
	} else {
		h.present()
		h.uint64(HashItem(d.item))
	}

	if d.hasText {
		h.present()
		h.string(d.text)
	} else {
		h.absent()
	}

	h.float(d.value)
	return h.d.Sum64()
}

// HashItem hashes the content of an item stack: material, display name, lore
// and enchantments. Amount is ignored.
func HashItem(item *types.Item) uint64 {
	if item == nil {
		return 0
	}
	h := hasher{d: xxhash.New()}
	h.string(item.Material)
	h.string(item.DisplayName)
	h.uint64(uint64(len(item.Lore)))
	for _, line := range item.Lore {
		h.string(line)
	}
	names := make([]string, 0, len(item.Enchantments))
	for name := range item.Enchantments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.string(name)
		h.uint64(uint64(item.Enchantments[name]))
	}
	return h.d.Sum64()
}

// EventIdentity returns a stable identity for a host event.
func EventIdentity(ev types.Event) uint64 {
	if ev == nil {
		return 0
	}
	if id, ok := ev.(Identifiable); ok {
		return id.Identity()
	}
	v := reflect.ValueOf(ev)
	if v.Kind() == reflect.Pointer {
		return uint64(v.Pointer())
	}
	return xxhash.Sum64String(fmt.Sprintf("%#v", ev))
}

func providerHash(provider any) uint64 {
	switch p := provider.(type) {
	case nil:
		return 0
	case *types.Item:
		return HashItem(p)
	case string:
		return xxhash.Sum64String(p)
	default:
		return xxhash.Sum64String(fmt.Sprintf("%#v", p))
	}
}

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) present() { h.d.Write([]byte{1}) }
func (h *hasher) absent()  { h.d.Write([]byte{0}) }

func (h *hasher) uint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
}

func (h *hasher) float(f float64) { h.uint64(math.Float64bits(f)) }

func (h *hasher) string(s string) {
	h.uint64(uint64(len(s)))
	h.d.WriteString(s)
}

func (h *hasher) uuid(id uuid.UUID) { h.d.Write(id[:]) }

func (h *hasher) entity(e types.Entity) {
	if e == nil {
		h.absent()
		return
	}
	h.present()
	h.uuid(e.UUID())
}

func (h *hasher) location(l *types.Location) {
	if l == nil {
		h.absent()
		return
	}
	h.present()
	h.string(l.World)
	h.float(l.X)
	h.float(l.Y)
	h.float(l.Z)
}
