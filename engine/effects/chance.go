package effects

import (
	"github.com/nathoo/triggerforge/engine/chance"
	"github.com/nathoo/triggerforge/engine/dispatcher"
	"github.com/nathoo/triggerforge/logging"
)

// Effect is a registered effect kind.
type Effect interface {
	ID() string
}

// Roller supplies uniform draws in [0,1).
type Roller interface {
	Float64() float64
}

// ChanceMultiplier decides whether a probabilistic effect fires for a
// dispatcher. The probability comes from the chance source keyed by the
// effect id.
type ChanceMultiplier struct {
	id     string
	source chance.Source
	roller Roller
}

// NewChanceMultiplier creates the effect template for id.
func NewChanceMultiplier(id string, source chance.Source, roller Roller) *ChanceMultiplier {
	return &ChanceMultiplier{id: id, source: source, roller: roller}
}

func (c *ChanceMultiplier) ID() string { return c.id }

// PassesChance does one probability lookup and one draw. A failed lookup
// counts as a miss and consumes no draw.
func (c *ChanceMultiplier) PassesChance(d dispatcher.Dispatcher) bool {
	p, err := c.source.Chance(c.id, d)
	if err != nil {
		log := logging.GetLogger("effects")
		log.Warn().
			Err(err).
			Str("effect", c.id).
			Str("dispatcher", d.Key()).
			Msg("Chance lookup failed; effect does not apply")
		return false
	}
	return c.roller.Float64() < p
}
