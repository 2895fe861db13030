// Package state holds the immutable world catalog and the mutable session
// state, plus the read-only views derived from both.
package state

import (
	"sort"
	"strings"
	"time"

	"github.com/nathoo/dragonsrealm/engine/chatlog"
	"github.com/nathoo/dragonsrealm/engine/inventory"
	"github.com/nathoo/dragonsrealm/types"
)

// SystemID is the sender id of engine-generated chat messages.
const (
	SystemID   = "system"
	SystemName = "Sistema"
)

// Defs holds the immutable world catalog loaded from Lua.
type Defs struct {
	Game     types.GameDef
	Player   types.Player              // initial player record
	Rooms    map[string]types.Room     // room id -> room
	NPCs     map[string][]types.Player // room id -> stationary NPCs
	Items    []types.InventoryItem     // item templates, authored order
	Starting []types.InventoryItem     // initial inventory
	Welcome  []types.WelcomeMessage
}

// State is the complete mutable session state. It is owned by the engine.
type State struct {
	Player    types.Player
	RoomID    string
	Inventory *inventory.Inventory
	Gold      int
	Dropped   []types.DroppedItem
	Messages  *chatlog.Log
}

// NewState creates a fresh session from the catalog.
func NewState(defs *Defs, newID func() string, history int, now time.Time) *State {
	p := defs.Player
	p.Position = defs.Game.StartPosition
	p.Walking = false

	s := &State{
		Player:    p,
		RoomID:    defs.Game.Start,
		Inventory: inventory.New(newID),
		Gold:      defs.Game.Gold,
		Messages:  chatlog.New(history),
	}
	for _, item := range defs.Starting {
		s.Inventory.Add(item)
	}
	for _, w := range defs.Welcome {
		name := w.From
		if npc, ok := FindNPC(defs, w.From); ok {
			name = npc.Name
		}
		s.Messages.Append(types.ChatMessage{
			ID:         newID(),
			PlayerID:   w.From,
			PlayerName: name,
			Message:    w.Text,
			Timestamp:  now,
		})
	}
	return s
}

// Room returns the catalog room with the given id.
func Room(defs *Defs, id string) (*types.Room, bool) {
	r, ok := defs.Rooms[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

// CurrentRoom returns the room the player is in.
func CurrentRoom(s *State, defs *Defs) (*types.Room, bool) {
	return Room(defs, s.RoomID)
}

// NPCsIn returns the NPCs defined for a room. Never nil.
func NPCsIn(defs *Defs, roomID string) []types.Player {
	npcs := defs.NPCs[roomID]
	out := make([]types.Player, len(npcs))
	copy(out, npcs)
	return out
}

// FindNPC looks an NPC up by id across all rooms.
func FindNPC(defs *Defs, id string) (types.Player, bool) {
	for _, npcs := range defs.NPCs {
		for _, n := range npcs {
			if n.ID == id {
				return n, true
			}
		}
	}
	return types.Player{}, false
}

// DroppedIn returns the dropped items lying in a room, in drop order.
func DroppedIn(s *State, roomID string) []types.DroppedItem {
	var out []types.DroppedItem
	for _, d := range s.Dropped {
		if d.RoomID == roomID {
			out = append(out, d)
		}
	}
	return out
}

// FindDropped returns the dropped item with the given id and its index.
func FindDropped(s *State, id string) (types.DroppedItem, int, bool) {
	for i, d := range s.Dropped {
		if d.ID == id {
			return d, i, true
		}
	}
	return types.DroppedItem{}, -1, false
}

// ItemTemplate finds a template by id, then by case-insensitive name.
func ItemTemplate(defs *Defs, key string) (types.InventoryItem, bool) {
	for _, it := range defs.Items {
		if it.ID == key {
			return it, true
		}
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, it := range defs.Items {
		if strings.ToLower(it.Name) == lower {
			return it, true
		}
	}
	return types.InventoryItem{}, false
}

// RoomIDs returns all room ids, sorted.
func RoomIDs(defs *Defs) []string {
	ids := make([]string, 0, len(defs.Rooms))
	for id := range defs.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
