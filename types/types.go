// Package types defines the shared data structures for the Dragon's Realm
// engine. Apart from the enum helpers in kinds.go this package holds no logic.
package types

import "time"

// Position is an integer tile coordinate.
type Position struct {
	X int
	Y int
}

// Point is a furniture placement. Decorative pieces may sit on fractional
// offsets; they only occupy a tile when both coordinates are integral.
type Point struct {
	X float64
	Y float64
}

// Outfit holds the three avatar colors.
type Outfit struct {
	Body    string
	Hair    string
	Clothes string
}

// Player is the current player or a stationary NPC.
type Player struct {
	ID        string
	Name      string
	Position  Position
	Direction Direction
	Walking   bool // transient animation flag
	Outfit    Outfit
	Level     int
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
}

// Furniture is a static room decoration.
type Furniture struct {
	ID       string
	Kind     FurnitureKind
	Tag      string // authored type string, kept for unknown kinds
	Position Point
	Rotation int // degrees
}

// Portal relocates the player when stepped on. One-directional.
type Portal struct {
	ID             string
	Position       Position
	TargetRoomID   string
	TargetPosition Position
	Label          string
}

// Room is an immutable catalog entry: a tile grid plus furniture and portals.
type Room struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Floor     [][]Tile // Height rows of Width columns
	Furniture []Furniture
	Portals   []Portal
	Players   []Player // presentation only; always empty in a single-player session
}

// Effect describes what a consumable restores.
type Effect struct {
	Health int
	Mana   int
	Buff   string
}

// InventoryItem is a stack of items sharing a name.
type InventoryItem struct {
	ID       string
	Name     string
	Icon     string
	Quantity int
	Rarity   Rarity
	Type     ItemType
	Effect   *Effect // optional
}

// DroppedItem is a single item lying on a room floor.
type DroppedItem struct {
	ID       string
	Item     InventoryItem // Quantity is always 1
	Position Position
	RoomID   string
}

// ChatMessage is one entry of the message log.
type ChatMessage struct {
	ID         string
	PlayerID   string
	PlayerName string
	Message    string
	Timestamp  time.Time
}

// StatsPatch is a shallow partial update of the player record.
// Nil fields are left untouched.
type StatsPatch struct {
	Name      *string
	Level     *int
	Health    *int
	MaxHealth *int
	Mana      *int
	MaxMana   *int
	Outfit    *Outfit
}

// GameDef holds world metadata.
type GameDef struct {
	Title         string
	Author        string
	Version       string
	Start         string // starting room ID
	StartPosition Position
	Gold          int
}

// WelcomeMessage is a chat line present in the log when a session starts.
type WelcomeMessage struct {
	From string // NPC id
	Text string
}

// Event is emitted by an engine command after the state changed.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the outcome of a single engine command.
type Result struct {
	Events []Event
	Output []string
}

// Intent is the parsed representation of a typed command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}
