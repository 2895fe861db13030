package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

// curried returns a constructor used as Name "id" { ... }.
func curried(L *lua.LState, add func(rawDef)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			add(rawDef{id: id, table: tbl, line: L.Where(1)})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Room "id" { name = "...", width = 10, height = 8, ... }
	L.SetGlobal("Room", curried(L, func(r rawDef) { coll.rooms = append(coll.rooms, r) }))

	// NPC "id" { room = "...", position = { x = 1, y = 1 }, ... }
	L.SetGlobal("NPC", curried(L, func(r rawDef) { coll.npcs = append(coll.npcs, r) }))

	// Item "id" { name = "...", type = "consumable", ... }
	L.SetGlobal("Item", curried(L, func(r rawDef) { coll.items = append(coll.items, r) }))
}

func registerHelpers(L *lua.LState) {
	// Furniture("id", "type", x, y [, rotation])
	L.SetGlobal("Furniture", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("id", lua.LString(L.CheckString(1)))
		tbl.RawSetString("type", lua.LString(L.CheckString(2)))
		tbl.RawSetString("x", L.CheckNumber(3))
		tbl.RawSetString("y", L.CheckNumber(4))
		tbl.RawSetString("rotation", L.OptNumber(5, 0))
		L.Push(tbl)
		return 1
	}))

	// Portal("id", {x, y}, "target_room", {x, y} [, "label"])
	L.SetGlobal("Portal", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("id", lua.LString(L.CheckString(1)))
		tbl.RawSetString("position", L.CheckTable(2))
		tbl.RawSetString("target", lua.LString(L.CheckString(3)))
		tbl.RawSetString("target_position", L.CheckTable(4))
		tbl.RawSetString("label", lua.LString(L.OptString(5, "")))
		L.Push(tbl)
		return 1
	}))

	// Outfit("#body", "#hair", "#clothes")
	L.SetGlobal("Outfit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("body", lua.LString(L.CheckString(1)))
		tbl.RawSetString("hair", lua.LString(L.CheckString(2)))
		tbl.RawSetString("clothes", lua.LString(L.CheckString(3)))
		L.Push(tbl)
		return 1
	}))
}
