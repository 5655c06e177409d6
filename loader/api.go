package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Location "id" { ... } — curried: Location("id") returns a function
	// that takes a table. Same shape for every catalog constructor.
	L.SetGlobal("Location", curried(L, func(id string, tbl *lua.LTable) {
		coll.locations = append(coll.locations, rawDef{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Event "id" { location = ..., age_range = {min, max}, ... }
	L.SetGlobal("Event", curried(L, func(id string, tbl *lua.LTable) {
		coll.events = append(coll.events, rawDef{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Ending "id" { title = ..., weight = ..., ambition_min = ..., ... }
	L.SetGlobal("Ending", curried(L, func(id string, tbl *lua.LTable) {
		coll.endings = append(coll.endings, rawDef{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// SpecialMap "id" { trigger_age = ..., done_flag = ..., nodes = {...} }
	L.SetGlobal("SpecialMap", curried(L, func(id string, tbl *lua.LTable) {
		coll.specials = append(coll.specials, rawDef{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Photo "id" { caption = "...", age = N }
	L.SetGlobal("Photo", curried(L, func(id string, tbl *lua.LTable) {
		coll.photos = append(coll.photos, rawDef{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Choice "id" { text = "...", deltas = {...}, ... } — curried, returns
	// its table with the id stamped in, for embedding in an event's choices.
	L.SetGlobal("Choice", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))

	// Node "id" { label = "...", event = "...", x = N, y = N } — curried,
	// returns its table, for embedding in a special map's nodes.
	L.SetGlobal("Node", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))

	// RequireStat("ambition", 40) — stat gate marker for a choice.
	L.SetGlobal("RequireStat", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		min := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("min", min)
		L.Push(tbl)
		return 1
	}))
}

// curried wraps a two-step constructor: Name("id") returns a closure that
// consumes the definition table.
func curried(L *lua.LState, collect func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			collect(id, tbl)
			return 0
		}))
		return 1
	})
}
