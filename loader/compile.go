// Package loader loads Lua holder content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/types"
)

// rawHolder holds a holder table before compilation.
type rawHolder struct {
	id    string
	table *lua.LTable
	order int
}

// rawActor holds an actor table before compilation.
type rawActor struct {
	name  string
	table *lua.LTable
}

type rawGrant struct {
	actor  string
	holder string
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// arrayTables returns the table elements of a Lua array in index order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// item builds an item snapshot from a material name; "" means no item.
func item(material string) *types.Item {
	if material == "" {
		return nil
	}
	return &types.Item{Material: strings.ToUpper(material), Amount: 1}
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Holders: map[string]types.HolderDef{},
	}

	for _, raw := range coll.holders {
		if _, dup := defs.Holders[raw.id]; dup {
			return nil, fmt.Errorf("duplicate holder id %q", raw.id)
		}
		h, err := compileHolder(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling holder %s: %w", raw.id, err)
		}
		defs.Holders[h.ID] = h
	}

	seen := map[string]bool{}
	for _, raw := range coll.actors {
		key := strings.ToLower(raw.name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate actor %q", raw.name)
		}
		seen[key] = true
		defs.Actors = append(defs.Actors, compileActor(raw))
	}

	for _, g := range coll.grants {
		defs.Grants = append(defs.Grants, types.Grant{Actor: g.actor, Holder: g.holder})
	}

	return defs, nil
}

func compileHolder(raw rawHolder) (types.HolderDef, error) {
	tbl := raw.table
	h := types.HolderDef{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Global:   getBool(tbl, "global", false),
		Provider: item(getString(tbl, "provider")),
	}

	for i, eff := range arrayTables(getTable(tbl, "effects")) {
		effect := getString(eff, "effect")
		value := getNumber(eff, "value", 0)
		switch getString(eff, "kind") {
		case "chance":
			h.Chances = append(h.Chances, types.ChanceDef{Effect: effect, Chance: value})
		case "multiplier":
			h.Multipliers = append(h.Multipliers, types.MultiplierDef{Effect: effect, Multiplier: value})
		default:
			return h, fmt.Errorf("effects[%d] is not a Chance or Multiplier", i+1)
		}
	}

	for i, l := range arrayTables(getTable(tbl, "listeners")) {
		triggerID := getString(l, "__trigger")
		if triggerID == "" {
			return h, fmt.Errorf("listeners[%d] was not built with On()", i+1)
		}
		h.Listeners = append(h.Listeners, types.ListenerDef{
			Trigger:     triggerID,
			Chance:      getNumber(l, "chance", 100),
			Conditions:  compileConditions(getTable(l, "conditions")),
			Effects:     compileEffects(getTable(l, "effects")),
			SourceOrder: i,
		})
	}

	return h, nil
}

func compileActor(raw rawActor) types.ActorDef {
	tbl := raw.table
	return types.ActorDef{
		Name: raw.name,
		Kind: getString(tbl, "kind"),
		Location: types.Location{
			World: getString(tbl, "world"),
			X:     getNumber(tbl, "x", 0),
			Y:     getNumber(tbl, "y", 0),
			Z:     getNumber(tbl, "z", 0),
		},
		Velocity: types.Vector{
			X: getNumber(tbl, "vx", 0),
			Y: getNumber(tbl, "vy", 0),
			Z: getNumber(tbl, "vz", 0),
		},
		Holding: item(getString(tbl, "holding")),
	}
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for _, c := range arrayTables(tbl) {
		conditions = append(conditions, compileCondition(c))
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{Type: "not", Inner: &inner}
		}
	}

	return types.Condition{
		Type:   condType,
		Params: params(tbl),
	}
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effects []types.Effect
	for _, e := range arrayTables(tbl) {
		effects = append(effects, types.Effect{
			Type:   getString(e, "type"),
			Params: params(e),
		})
	}
	return effects
}

// params collects every string-keyed field except "type".
func params(tbl *lua.LTable) map[string]any {
	p := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			p[string(ks)] = toGoValue(v)
		}
	})
	return p
}
