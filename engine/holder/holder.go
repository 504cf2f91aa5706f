// Package holder models configuration sources ("holders") and the thing that
// provided them to an actor.
package holder

import (
	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/types"
)

// Holder is a configuration source with chances, multipliers and listeners.
type Holder interface {
	ID() string
	Definition() types.HolderDef
}

// Provided pairs a holder with its provider: the item that granted it, or nil.
type Provided interface {
	Holder() Holder
	Provider() any
}

// Source resolves the holders active for a dispatcher. Global holders apply
// to every dispatcher.
type Source interface {
	HoldersFor(d dispatcher.Dispatcher) []Provided
}

// Empty is the sentinel used when trigger data has no holder.
var Empty Provided = emptyProvided{}

type emptyHolder struct{}

func (emptyHolder) ID() string                  { return "" }
func (emptyHolder) Definition() types.HolderDef { return types.HolderDef{} }

type emptyProvided struct{}

func (emptyProvided) Holder() Holder { return emptyHolder{} }
func (emptyProvided) Provider() any  { return nil }

// IsEmpty reports whether p is nil or the Empty sentinel.
func IsEmpty(p Provided) bool {
	if p == nil {
		return true
	}
	_, ok := p.(emptyProvided)
	return ok
}

// Configured is a holder compiled from content.
type Configured struct {
	def types.HolderDef
}

// FromDef wraps a compiled holder definition.
func FromDef(def types.HolderDef) *Configured {
	return &Configured{def: def}
}

func (c *Configured) ID() string                  { return c.def.ID }
func (c *Configured) Definition() types.HolderDef { return c.def }

type provided struct {
	holder   Holder
	provider any
}

func (p provided) Holder() Holder { return p.holder }
func (p provided) Provider() any  { return p.provider }

// Provide pairs h with its provider. When provider is nil and the holder
// declares a provider item, that item is used.
func Provide(h Holder, provider any) Provided {
	if provider == nil {
		if item := h.Definition().Provider; item != nil {
			provider = item
		}
	}
	return provided{holder: h, provider: provider}
}

// ProviderItem returns p's provider when it is an item.
func ProviderItem(p Provided) *types.Item {
	if p == nil {
		return nil
	}
	item, _ := p.Provider().(*types.Item)
	return item
}
