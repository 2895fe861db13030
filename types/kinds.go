package types

import "strings"

// Direction is the facing of a player.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

var directionNames = [...]string{Down: "down", Up: "up", Left: "left", Right: "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "down"
	}
	return directionNames[d]
}

// ParseDirection maps "up", "down", "left", "right" (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return Down, false
}

// Tile is the kind of one grid cell.
type Tile int

const (
	TileFloor Tile = iota
	TileWall
)

func (t Tile) String() string {
	if t == TileWall {
		return "wall"
	}
	return "floor"
}

// FurnitureKind is the closed set of furniture variants. FurnitureUnknown is
// the fallback for authored tags outside the set.
type FurnitureKind int

const (
	FurnitureUnknown FurnitureKind = iota
	FurnitureTable
	FurnitureChair
	FurnitureTorch
	FurnitureBarrel
	FurnitureChest
	FurnitureFountain
	FurnitureBench
	FurnitureTree
	FurnitureMushroom
	FurnitureRock
	FurnitureShelf
	FurnitureSkull
)

var furnitureNames = [...]string{
	FurnitureUnknown:  "unknown",
	FurnitureTable:    "table",
	FurnitureChair:    "chair",
	FurnitureTorch:    "torch",
	FurnitureBarrel:   "barrel",
	FurnitureChest:    "chest",
	FurnitureFountain: "fountain",
	FurnitureBench:    "bench",
	FurnitureTree:     "tree",
	FurnitureMushroom: "mushroom",
	FurnitureRock:     "rock",
	FurnitureShelf:    "shelf",
	FurnitureSkull:    "skull",
}

func (k FurnitureKind) String() string {
	if k < 0 || int(k) >= len(furnitureNames) {
		return "unknown"
	}
	return furnitureNames[k]
}

// ParseFurnitureKind returns FurnitureUnknown and false for tags outside the set.
func ParseFurnitureKind(s string) (FurnitureKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range furnitureNames {
		if i != int(FurnitureUnknown) && name == s {
			return FurnitureKind(i), true
		}
	}
	return FurnitureUnknown, false
}

// Rarity grades an item.
type Rarity int

const (
	RarityUnknown Rarity = iota
	Common
	Uncommon
	Rare
	Epic
	Legendary
)

var rarityNames = [...]string{
	RarityUnknown: "unknown",
	Common:        "common",
	Uncommon:      "uncommon",
	Rare:          "rare",
	Epic:          "epic",
	Legendary:     "legendary",
}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "unknown"
	}
	return rarityNames[r]
}

// ParseRarity returns RarityUnknown and false for tags outside the set.
func ParseRarity(s string) (Rarity, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range rarityNames {
		if i != int(RarityUnknown) && name == s {
			return Rarity(i), true
		}
	}
	return RarityUnknown, false
}

// ItemType decides what using an item does.
type ItemType int

const (
	ItemTypeUnknown ItemType = iota
	Consumable
	Equipment
	Material
	Quest
)

var itemTypeNames = [...]string{
	ItemTypeUnknown: "unknown",
	Consumable:      "consumable",
	Equipment:       "equipment",
	Material:        "material",
	Quest:           "quest",
}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return "unknown"
	}
	return itemTypeNames[t]
}

// ParseItemType returns ItemTypeUnknown and false for tags outside the set.
func ParseItemType(s string) (ItemType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range itemTypeNames {
		if i != int(ItemTypeUnknown) && name == s {
			return ItemType(i), true
		}
	}
	return ItemTypeUnknown, false
}
