// Package chance resolves the probability of a chance-multiplier effect for
// a dispatcher from the holders active for it.
package chance

import (
	"math"
	"sort"

	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/engine/holder"
	"github.com/nathoo/triggerforge/errors"
)

// Source is the configuration-layer boundary: one probability in [0,1] for
// an effect id and dispatcher.
type Source interface {
	Chance(effectID string, d dispatcher.Dispatcher) (float64, error)
}

// Contribution is one holder's part in a resolved probability.
type Contribution struct {
	Holder     string
	Chance     float64 // percent, 0 when the holder only multiplies
	Multiplier float64 // 1 when the holder only adds a chance
}

// Resolution is a probability with its breakdown.
type Resolution struct {
	Effect        string
	Base          float64
	Multiplier    float64
	Probability   float64
	Contributions []Contribution
}

// Table resolves chances from holder definitions:
//
//	base = 1 - Π(1 - c_i/100)  over holders declaring Chance(effect, c_i)
//	mult = Π m_j               over holders declaring Multiplier(effect, m_j)
//	p    = clamp(base × mult, 0, 1)
type Table struct {
	holders holder.Source
	known   map[string]bool
}

// NewTable creates a table over holders that answers for the given effect ids.
func NewTable(holders holder.Source, effectIDs ...string) *Table {
	known := make(map[string]bool, len(effectIDs))
	for _, id := range effectIDs {
		known[id] = true
	}
	return &Table{holders: holders, known: known}
}

// Allow adds effect ids the table answers for. Call it only during startup.
func (t *Table) Allow(effectIDs ...string) {
	for _, id := range effectIDs {
		t.known[id] = true
	}
}

// Effects returns the effect ids the table answers for, sorted.
func (t *Table) Effects() []string {
	ids := make([]string, 0, len(t.known))
	for id := range t.known {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Chance implements Source. Failures carry ErrChanceLookup around the cause.
func (t *Table) Chance(effectID string, d dispatcher.Dispatcher) (float64, error) {
	res, err := t.Resolve(effectID, d)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrChanceLookup, "chance for %s", effectID)
	}
	return res.Probability, nil
}

// Resolve computes the probability and records which holders contributed.
func (t *Table) Resolve(effectID string, d dispatcher.Dispatcher) (Resolution, error) {
	if !t.known[effectID] {
		return Resolution{}, errors.Newf(errors.ErrNotFound, "unknown chance effect %q", effectID).
			WithDetail("dispatcher", d.Key())
	}

	res := Resolution{Effect: effectID, Multiplier: 1}
	miss := 1.0
	for _, p := range t.holders.HoldersFor(d) {
		def := p.Holder().Definition()
		c := Contribution{Holder: def.ID, Multiplier: 1}
		touched := false
		for _, cd := range def.Chances {
			if cd.Effect != effectID {
				continue
			}
			miss *= 1 - clamp(cd.Chance/100)
			c.Chance += cd.Chance
			touched = true
		}
		for _, md := range def.Multipliers {
			if md.Effect != effectID {
				continue
			}
			res.Multiplier *= md.Multiplier
			c.Multiplier *= md.Multiplier
			touched = true
		}
		if touched {
			res.Contributions = append(res.Contributions, c)
		}
	}

	res.Base = 1 - miss
	res.Probability = clamp(res.Base * res.Multiplier)
	return res, nil
}

func clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
