package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHolderHelpers(L)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Holder "id" { ... } — curried: Holder("id") returns a function that takes a table.
	L.SetGlobal("Holder", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.holders = append(coll.holders, rawHolder{id: id, table: tbl, order: coll.nextSourceOrder()})
			return 0
		}))
		return 1
	}))

	// Actor "name" { world = "...", x = 0, ... } — curried.
	L.SetGlobal("Actor", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.actors = append(coll.actors, rawActor{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Grant("actor", "holder")
	L.SetGlobal("Grant", L.NewFunction(func(L *lua.LState) int {
		actor := L.CheckString(1)
		holder := L.CheckString(2)
		coll.grants = append(coll.grants, rawGrant{actor: actor, holder: holder})
		return 0
	}))
}

// registerHolderHelpers registers the constructors used inside a Holder
// table: Chance and Multiplier for its effects list, On for its listeners.
func registerHolderHelpers(L *lua.LState) {
	// Chance("effect_id", percent)
	L.SetGlobal("Chance", L.NewFunction(func(L *lua.LState) int {
		effect := L.CheckString(1)
		chance := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("chance"))
		tbl.RawSetString("effect", lua.LString(effect))
		tbl.RawSetString("value", chance)
		L.Push(tbl)
		return 1
	}))

	// Multiplier("effect_id", factor)
	L.SetGlobal("Multiplier", L.NewFunction(func(L *lua.LState) int {
		effect := L.CheckString(1)
		mult := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("multiplier"))
		tbl.RawSetString("effect", lua.LString(effect))
		tbl.RawSetString("value", mult)
		L.Push(tbl)
		return 1
	}))

	// On("trigger_id", { chance = ..., conditions = {...}, effects = {...} })
	// The options table may be omitted.
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		trigger := L.CheckString(1)
		tbl := L.OptTable(2, L.NewTable())
		tbl.RawSetString("__trigger", lua.LString(trigger))
		L.Push(tbl)
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	// InWorld("world")
	L.SetGlobal("InWorld", L.NewFunction(func(L *lua.LState) int {
		world := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("in_world"))
		tbl.RawSetString("world", lua.LString(world))
		L.Push(tbl)
		return 1
	}))

	// ValueAbove(n)
	L.SetGlobal("ValueAbove", L.NewFunction(func(L *lua.LState) int {
		value := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("value_above"))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))

	// ValueBelow(n)
	L.SetGlobal("ValueBelow", L.NewFunction(func(L *lua.LState) int {
		value := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("value_below"))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))

	// TextIs("text")
	L.SetGlobal("TextIs", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("text_is"))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// Holding("material")
	L.SetGlobal("Holding", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("holding_item"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// HasParameter("location")
	L.SetGlobal("HasParameter", L.NewFunction(func(L *lua.LState) int {
		param := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("has_parameter"))
		tbl.RawSetString("parameter", lua.LString(param))
		L.Push(tbl)
		return 1
	}))

	// StatAbove("stat", n)
	L.SetGlobal("StatAbove", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		value := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("stat_above"))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))

	// IsGlobal()
	L.SetGlobal("IsGlobal", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("is_global"))
		L.Push(tbl)
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// SendMessage("text")
	L.SetGlobal("SendMessage", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("send_message"))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// AddStat("stat", amount) — amount defaults to 1.
	L.SetGlobal("AddStat", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		amount := L.OptNumber(2, 1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("add_stat"))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("amount", amount)
		L.Push(tbl)
		return 1
	}))

	// CancelEvent()
	L.SetGlobal("CancelEvent", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("cancel_event"))
		L.Push(tbl)
		return 1
	}))

	// UncancelEvent()
	L.SetGlobal("UncancelEvent", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("uncancel_event"))
		L.Push(tbl)
		return 1
	}))

	// Stop()
	L.SetGlobal("Stop", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("stop"))
		L.Push(tbl)
		return 1
	}))
}
