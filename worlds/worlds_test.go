package worlds

import (
	"strings"
	"testing"

	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/loader"
	"github.com/nathoo/dragonsrealm/types"
)

func loadDefault(t *testing.T) *loader.LoadResult {
	t.Helper()
	res, err := loader.LoadFS(FS, Dir)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return res
}

func TestDefaultWorldLoads(t *testing.T) {
	defs := loadDefault(t).Defs

	if defs.Game.Title != "Dragon's Realm" {
		t.Errorf("title = %q", defs.Game.Title)
	}
	if defs.Game.Start != "tavern" {
		t.Errorf("start = %q, want tavern", defs.Game.Start)
	}
	if defs.Game.StartPosition != (types.Position{X: 5, Y: 5}) {
		t.Errorf("start position = %v, want (5, 5)", defs.Game.StartPosition)
	}
	if defs.Game.Gold != 1250 {
		t.Errorf("gold = %d, want 1250", defs.Game.Gold)
	}

	p := defs.Player
	if p.ID != "player-1" || p.Name != "Aventureiro" || p.Level != 45 {
		t.Errorf("player = %+v", p)
	}
	if p.Health != 450 || p.MaxHealth != 500 || p.Mana != 180 || p.MaxMana != 200 {
		t.Errorf("player stats = %d/%d %d/%d", p.Health, p.MaxHealth, p.Mana, p.MaxMana)
	}
	if p.Outfit.Clothes != "#2E7D32" {
		t.Errorf("player outfit = %+v", p.Outfit)
	}
}

func TestDefaultWorldRooms(t *testing.T) {
	defs := loadDefault(t).Defs

	want := map[string]struct {
		name          string
		width, height int
		furniture     int
		portals       int
	}{
		"tavern":           {"Praça Central", 28, 17, 9, 2},
		"town-square":      {"Praça Central", 16, 12, 7, 4},
		"forest":           {"Floresta Sombria", 14, 10, 7, 2},
		"cave":             {"Caverna Escura", 10, 8, 5, 1},
		"shop":             {"Loja de Itens", 10, 8, 5, 1},
		"cellar":           {"Porão da Taverna", 10, 8, 5, 1},
		"dungeon-entrance": {"Entrada da Masmorra", 12, 10, 7, 1},
	}
	if len(defs.Rooms) != len(want) {
		t.Fatalf("got %d rooms, want %d", len(defs.Rooms), len(want))
	}
	for id, w := range want {
		room, ok := defs.Rooms[id]
		if !ok {
			t.Errorf("room %q missing", id)
			continue
		}
		if room.Name != w.name || room.Width != w.width || room.Height != w.height {
			t.Errorf("room %q = %q %dx%d", id, room.Name, room.Width, room.Height)
		}
		if len(room.Furniture) != w.furniture {
			t.Errorf("room %q furniture = %d, want %d", id, len(room.Furniture), w.furniture)
		}
		if len(room.Portals) != w.portals {
			t.Errorf("room %q portals = %d, want %d", id, len(room.Portals), w.portals)
		}
		for _, f := range room.Furniture {
			if f.Kind == types.FurnitureUnknown {
				t.Errorf("room %q furniture %q has unknown kind %q", id, f.ID, f.Tag)
			}
		}
	}

	tavern := defs.Rooms["tavern"]
	torch := tavern.Furniture[5]
	if torch.ID != "torch_nw" || torch.Position != (types.Point{X: 0.5, Y: 0}) {
		t.Errorf("torch_nw = %+v", torch)
	}
	if tavern.Furniture[2].Rotation != 180 {
		t.Errorf("chair2 rotation = %d, want 180", tavern.Furniture[2].Rotation)
	}
	cellar := tavern.Portals[1]
	if cellar.ID != "portal-cellar" || cellar.TargetRoomID != "cellar" ||
		cellar.Position != (types.Position{X: 1, Y: 5}) || cellar.TargetPosition != (types.Position{X: 8, Y: 3}) {
		t.Errorf("portal-cellar = %+v", cellar)
	}
	if cellar.Label != "↓ Porão" {
		t.Errorf("portal-cellar label = %q", cellar.Label)
	}
}

func TestDefaultWorldNPCs(t *testing.T) {
	defs := loadDefault(t).Defs

	tests := []struct {
		id, room, name string
		pos            types.Position
		level          int
	}{
		{"npc-qenio", "tavern", "Qenio", types.Position{X: 6, Y: 2}, 50},
		{"npc-guardamonique", "town-square", "Guarda Monique", types.Position{X: 3, Y: 6}, 80},
		{"npc-dante", "town-square", "Dante", types.Position{X: 12, Y: 8}, 30},
		{"npc-hunterjonas", "forest", "Caçador Jonas", types.Position{X: 6, Y: 5}, 45},
		{"npc-shopkeepermarqes", "shop", "Vendedor Marqes", types.Position{X: 5, Y: 3}, 25},
		{"npc-skeletondan", "dungeon-entrance", "Esqueleto Dan", types.Position{X: 6, Y: 5}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			var found *types.Player
			for _, n := range state.NPCsIn(defs, tt.room) {
				if n.ID == tt.id {
					found = &n
					break
				}
			}
			if found == nil {
				t.Fatalf("NPC %q not in room %q", tt.id, tt.room)
			}
			if found.Name != tt.name || found.Position != tt.pos || found.Level != tt.level {
				t.Errorf("got %+v", *found)
			}
			if found.Health != found.MaxHealth || found.Mana != found.MaxMana {
				t.Errorf("NPC stats not full: %d/%d %d/%d", found.Health, found.MaxHealth, found.Mana, found.MaxMana)
			}
		})
	}
	if got := state.NPCsIn(defs, "cave"); len(got) != 0 {
		t.Errorf("cave has %d NPCs, want 0", len(got))
	}
}

func TestDefaultWorldStartingItems(t *testing.T) {
	defs := loadDefault(t).Defs

	want := []struct {
		id, name string
		qty      int
		typ      types.ItemType
	}{
		{"1", "Poção de Vida", 5, types.Consumable},
		{"2", "Poção de Mana", 3, types.Consumable},
		{"3", "Espada de Ferro", 1, types.Equipment},
		{"4", "Escudo de Madeira", 1, types.Equipment},
		{"5", "Anel Mágico", 1, types.Equipment},
		{"6", "Pergaminho", 2, types.Material},
		{"7", "Tocha", 10, types.Material},
		{"8", "Amuleto Antigo", 1, types.Equipment},
	}
	if len(defs.Starting) != len(want) {
		t.Fatalf("got %d starting stacks, want %d", len(defs.Starting), len(want))
	}
	if len(defs.Items) != len(want) {
		t.Errorf("got %d item templates, want %d", len(defs.Items), len(want))
	}
	for i, w := range want {
		got := defs.Starting[i]
		if got.ID != w.id || got.Name != w.name || got.Quantity != w.qty || got.Type != w.typ {
			t.Errorf("starting[%d] = %+v, want %s %s ×%d", i, got, w.id, w.name, w.qty)
		}
	}

	amulet := defs.Starting[7]
	if amulet.Rarity != types.Epic || amulet.Effect == nil || amulet.Effect.Health != 100 || amulet.Effect.Mana != 50 {
		t.Errorf("amulet = %+v", amulet)
	}
	if defs.Starting[2].Effect != nil {
		t.Errorf("sword has an effect: %+v", defs.Starting[2].Effect)
	}
}

func TestDefaultWorldWelcome(t *testing.T) {
	defs := loadDefault(t).Defs

	if len(defs.Welcome) != 2 {
		t.Fatalf("got %d welcome messages, want 2", len(defs.Welcome))
	}
	if defs.Welcome[0].From != "npc-qenio" || defs.Welcome[0].Text != "Bem-vindo à Taverna do Dragão!" {
		t.Errorf("welcome[0] = %+v", defs.Welcome[0])
	}
	if defs.Welcome[1].From != "npc-guardamonique" {
		t.Errorf("welcome[1] = %+v", defs.Welcome[1])
	}
}

// Three portals sit on the wall ring and can only be used by teleporting
// next to them; the loader reports each of them.
func TestDefaultWorldRingPortalWarnings(t *testing.T) {
	res := loadDefault(t)

	if len(res.Warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(res.Warnings), res.Warnings)
	}
	for _, portal := range []string{`"portal-dungeon"`, `"portal-forest"`, `"portal-town"`} {
		found := false
		for _, w := range res.Warnings {
			if strings.Contains(w, portal) && strings.Contains(w, "wall ring") {
				found = true
			}
		}
		if !found {
			t.Errorf("no wall ring warning for %s in %v", portal, res.Warnings)
		}
	}
}

func TestDefaultWorldStartIsWalkable(t *testing.T) {
	defs := loadDefault(t).Defs
	room, ok := state.Room(defs, defs.Game.Start)
	if !ok {
		t.Fatal("start room missing")
	}
	if !grid.IsValidPosition(room, state.NPCsIn(defs, room.ID), defs.Game.StartPosition) {
		t.Error("start position is not walkable")
	}
}
