// Package loader loads the Lua world catalog into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua at play time.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// rawDef holds a constructor table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
	line  string // "file:line:" of the constructor call
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getIntOr returns an int field, or def when the field is absent.
func getIntOr(tbl *lua.LTable, key string, def int) int {
	if _, ok := tbl.RawGetString(key).(lua.LNumber); !ok {
		return def
	}
	return getInt(tbl, key)
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toPosition reads { x = 1, y = 2 } or { 1, 2 }.
func toPosition(tbl *lua.LTable) (types.Position, bool) {
	if tbl == nil {
		return types.Position{}, false
	}
	if x, ok := tbl.RawGetString("x").(lua.LNumber); ok {
		y, _ := tbl.RawGetString("y").(lua.LNumber)
		return types.Position{X: int(x), Y: int(y)}, true
	}
	x, okX := tbl.RawGetInt(1).(lua.LNumber)
	y, okY := tbl.RawGetInt(2).(lua.LNumber)
	if !okX || !okY {
		return types.Position{}, false
	}
	return types.Position{X: int(x), Y: int(y)}, true
}

// forEachTable calls fn for every table in an array-style table, in order.
func forEachTable(tbl *lua.LTable, fn func(i int, t *lua.LTable)) {
	if tbl == nil {
		return
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			fn(i, t)
		}
	}
}

// compile converts all collected Lua data into Defs. Duplicate ids and
// unknown tags are recorded on the returned ValidationError.
func compile(coll *collector) (*state.Defs, *ValidationError, error) {
	ve := &ValidationError{}
	defs := &state.Defs{
		Rooms: map[string]types.Room{},
		NPCs:  map[string][]types.Player{},
	}

	if coll.game == nil {
		return nil, nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game, defs.Player, defs.Welcome = compileGame(coll.game)

	for _, raw := range coll.rooms {
		if _, dup := defs.Rooms[raw.id]; dup {
			ve.errorf("%s duplicate room ID %q", raw.line, raw.id)
			continue
		}
		defs.Rooms[raw.id] = compileRoom(raw, ve)
	}

	npcIDs := map[string]bool{}
	for _, raw := range coll.npcs {
		if npcIDs[raw.id] {
			ve.errorf("%s duplicate NPC ID %q", raw.line, raw.id)
			continue
		}
		npcIDs[raw.id] = true
		roomID := getString(raw.table, "room")
		defs.NPCs[roomID] = append(defs.NPCs[roomID], compileNPC(raw, ve))
	}

	itemIDs := map[string]bool{}
	for _, raw := range coll.items {
		if itemIDs[raw.id] {
			ve.errorf("%s duplicate item ID %q", raw.line, raw.id)
			continue
		}
		itemIDs[raw.id] = true
		item, start := compileItem(raw, ve)
		defs.Items = append(defs.Items, item)
		if start > 0 {
			stack := item
			stack.Quantity = start
			defs.Starting = append(defs.Starting, stack)
		}
	}

	return defs, ve, nil
}

func compileGame(tbl *lua.LTable) (types.GameDef, types.Player, []types.WelcomeMessage) {
	game := types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Gold:    getInt(tbl, "gold"),
	}
	game.StartPosition, _ = toPosition(getTable(tbl, "start_position"))

	player := types.Player{ID: "player-1", Name: "Aventureiro", Level: 1}
	if p := getTable(tbl, "player"); p != nil {
		player = compilePlayer(p, player)
	}

	var welcome []types.WelcomeMessage
	forEachTable(getTable(tbl, "welcome"), func(_ int, w *lua.LTable) {
		welcome = append(welcome, types.WelcomeMessage{
			From: getString(w, "from"),
			Text: getString(w, "text"),
		})
	})
	return game, player, welcome
}

// compilePlayer reads the fields shared by the player and NPCs on top of
// base. Maxima default to the current values.
func compilePlayer(tbl *lua.LTable, base types.Player) types.Player {
	p := base
	if id := getString(tbl, "id"); id != "" {
		p.ID = id
	}
	if name := getString(tbl, "name"); name != "" {
		p.Name = name
	}
	if dir, ok := types.ParseDirection(getString(tbl, "direction")); ok {
		p.Direction = dir
	}
	if o := getTable(tbl, "outfit"); o != nil {
		p.Outfit = types.Outfit{
			Body:    getString(o, "body"),
			Hair:    getString(o, "hair"),
			Clothes: getString(o, "clothes"),
		}
	}
	p.Level = getIntOr(tbl, "level", p.Level)
	p.Health = getIntOr(tbl, "health", p.Health)
	p.MaxHealth = getIntOr(tbl, "max_health", p.Health)
	p.Mana = getIntOr(tbl, "mana", p.Mana)
	p.MaxMana = getIntOr(tbl, "max_mana", p.Mana)
	return p
}

func compileRoom(raw rawDef, ve *ValidationError) types.Room {
	tbl := raw.table
	room := types.Room{
		ID:     raw.id,
		Name:   getString(tbl, "name"),
		Width:  getInt(tbl, "width"),
		Height: getInt(tbl, "height"),
	}
	if room.Name == "" {
		room.Name = raw.id
	}

	var walls []types.Position
	forEachTable(getTable(tbl, "walls"), func(_ int, w *lua.LTable) {
		if pos, ok := toPosition(w); ok {
			walls = append(walls, pos)
		}
	})
	// Undersized rooms are reported by validate; only build grids that can hold one.
	if room.Width >= minRoomSize && room.Height >= minRoomSize {
		room.Floor = grid.NewFloor(room.Width, room.Height, walls)
	}

	forEachTable(getTable(tbl, "furniture"), func(_ int, f *lua.LTable) {
		tag := getString(f, "type")
		kind, ok := types.ParseFurnitureKind(tag)
		if !ok {
			ve.warnf("room %q furniture %q has unknown type %q", raw.id, getString(f, "id"), tag)
		}
		room.Furniture = append(room.Furniture, types.Furniture{
			ID:       getString(f, "id"),
			Kind:     kind,
			Tag:      tag,
			Position: types.Point{X: getNumber(f, "x"), Y: getNumber(f, "y")},
			Rotation: int(math.Round(getNumber(f, "rotation"))),
		})
	})

	portalIDs := map[string]bool{}
	forEachTable(getTable(tbl, "portals"), func(_ int, p *lua.LTable) {
		id := getString(p, "id")
		if portalIDs[id] {
			ve.errorf("room %q duplicate portal ID %q", raw.id, id)
			return
		}
		portalIDs[id] = true
		pos, _ := toPosition(getTable(p, "position"))
		target, _ := toPosition(getTable(p, "target_position"))
		room.Portals = append(room.Portals, types.Portal{
			ID:             id,
			Position:       pos,
			TargetRoomID:   getString(p, "target"),
			TargetPosition: target,
			Label:          getString(p, "label"),
		})
	})
	return room
}

func compileNPC(raw rawDef, ve *ValidationError) types.Player {
	npc := compilePlayer(raw.table, types.Player{ID: raw.id, Name: raw.id, Level: 1})
	npc.ID = raw.id
	pos, ok := toPosition(getTable(raw.table, "position"))
	if !ok {
		ve.errorf("%s NPC %q has no position", raw.line, raw.id)
	}
	npc.Position = pos
	return npc
}

// compileItem returns the template (quantity 1) and the starting quantity.
func compileItem(raw rawDef, ve *ValidationError) (types.InventoryItem, int) {
	tbl := raw.table
	item := types.InventoryItem{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Icon:     getString(tbl, "icon"),
		Quantity: 1,
	}
	if item.Name == "" {
		ve.errorf("%s item %q has no name", raw.line, raw.id)
	}

	if tag := getString(tbl, "rarity"); tag != "" {
		r, ok := types.ParseRarity(tag)
		if !ok {
			ve.warnf("item %q has unknown rarity %q", raw.id, tag)
		}
		item.Rarity = r
	} else {
		item.Rarity = types.Common
	}

	tag := getString(tbl, "type")
	t, ok := types.ParseItemType(tag)
	if !ok {
		ve.warnf("item %q has unknown type %q", raw.id, tag)
	}
	item.Type = t

	if eff := getTable(tbl, "effect"); eff != nil {
		item.Effect = &types.Effect{
			Health: getInt(eff, "health"),
			Mana:   getInt(eff, "mana"),
			Buff:   getString(eff, "buff"),
		}
	}
	return item, getInt(tbl, "start")
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
