// Package rules is the matching layer: it finds the listeners of the holders
// active for a dispatched trigger, evaluates their conditions against the
// trigger data and applies the effects of those that pass.
package rules

import (
	"strings"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/types"
)

// Condition types understood by EvalCondition.
var conditionTypes = map[string]bool{
	"in_world":      true,
	"value_above":   true,
	"value_below":   true,
	"text_is":       true,
	"holding_item":  true,
	"has_parameter": true,
	"stat_above":    true,
	"is_global":     true,
	"not":           true,
}

// KnownCondition reports whether EvalCondition understands a condition type.
func KnownCondition(condType string) bool {
	return conditionTypes[condType]
}

// EvalCondition evaluates a single condition against trigger data.
func EvalCondition(c types.Condition, data trigger.Data, w *types.World) bool {
	switch c.Type {
	case "in_world":
		world, _ := c.Params["world"].(string)
		loc := data.Location()
		return loc != nil && strings.EqualFold(loc.World, world)

	case "value_above":
		return data.Value() > toFloat(c.Params["value"])

	case "value_below":
		return data.Value() < toFloat(c.Params["value"])

	case "text_is":
		text, _ := c.Params["text"].(string)
		return data.HasText() && strings.EqualFold(data.Text(), text)

	case "holding_item":
		material, _ := c.Params["item"].(string)
		item := data.FoundItem()
		return item != nil && strings.EqualFold(item.Material, material)

	case "has_parameter":
		name, _ := c.Params["parameter"].(string)
		p, ok := trigger.ParseParameter(name)
		if !ok {
			return false
		}
		return trigger.Satisfies(data.Provided(), p)

	case "stat_above":
		stat, _ := c.Params["stat"].(string)
		player := data.Player()
		if player == nil {
			return false
		}
		return state.GetStat(w, player.UUID(), stat) > toInt(c.Params["value"])

	case "is_global":
		return data.Dispatcher().IsGlobal()

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, data, w)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, data trigger.Data, w *types.World) bool {
	for _, c := range conditions {
		if !EvalCondition(c, data, w) {
			return false
		}
	}
	return true
}

// toInt converts an any value to int, handling float64 from Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
