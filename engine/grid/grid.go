// Package grid implements the tile-grid collision rules. Everything here is a
// pure function of its arguments.
package grid

import "github.com/nathoo/dragonsrealm/types"

// NewFloor builds a width×height grid whose outer ring is wall and whose
// interior is floor, then marks the given interior positions as wall.
// Negative sizes build an empty grid.
func NewFloor(width, height int, walls []types.Position) [][]types.Tile {
	width, height = max(width, 0), max(height, 0)
	floor := make([][]types.Tile, height)
	for y := 0; y < height; y++ {
		row := make([]types.Tile, width)
		for x := 0; x < width; x++ {
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				row[x] = types.TileWall
			} else {
				row[x] = types.TileFloor
			}
		}
		floor[y] = row
	}
	for _, w := range walls {
		if w.Y >= 0 && w.Y < height && w.X >= 0 && w.X < width {
			floor[w.Y][w.X] = types.TileWall
		}
	}
	return floor
}

// Step returns pos offset by one tile in dir.
func Step(pos types.Position, dir types.Direction) types.Position {
	switch dir {
	case types.Up:
		pos.Y--
	case types.Down:
		pos.Y++
	case types.Left:
		pos.X--
	case types.Right:
		pos.X++
	}
	return pos
}

// Manhattan returns the taxicab distance between two tiles.
func Manhattan(a, b types.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// InInterior reports whether pos lies inside [1, w-2] × [1, h-2]. The outer
// ring is impassable whatever its authored tile kind.
func InInterior(room *types.Room, pos types.Position) bool {
	return pos.X >= 1 && pos.X <= room.Width-2 && pos.Y >= 1 && pos.Y <= room.Height-2
}

// TileAt returns the authored tile at pos. Positions outside the grid, or
// rows shorter than the room width, read as wall.
func TileAt(room *types.Room, pos types.Position) types.Tile {
	if pos.Y < 0 || pos.Y >= len(room.Floor) {
		return types.TileWall
	}
	row := room.Floor[pos.Y]
	if pos.X < 0 || pos.X >= len(row) {
		return types.TileWall
	}
	return row[pos.X]
}

// Occupies reports whether a furniture placement sits exactly on pos.
func Occupies(p types.Point, pos types.Position) bool {
	return p.X == float64(pos.X) && p.Y == float64(pos.Y)
}

// Blocks reports whether a furniture kind stops movement. Torches and
// mushrooms are pass-through; unknown kinds block.
func Blocks(kind types.FurnitureKind) bool {
	return kind != types.FurnitureTorch && kind != types.FurnitureMushroom
}

// FurnitureAt returns the furniture placed on pos, if any.
func FurnitureAt(room *types.Room, pos types.Position) (types.Furniture, bool) {
	for _, f := range room.Furniture {
		if Occupies(f.Position, pos) {
			return f, true
		}
	}
	return types.Furniture{}, false
}

// PortalAt returns the portal whose trigger tile is pos, if any.
func PortalAt(room *types.Room, pos types.Position) (types.Portal, bool) {
	for _, p := range room.Portals {
		if p.Position == pos {
			return p, true
		}
	}
	return types.Portal{}, false
}

// NPCAt returns the NPC standing on pos, if any.
func NPCAt(npcs []types.Player, pos types.Position) (types.Player, bool) {
	for _, n := range npcs {
		if n.Position == pos {
			return n, true
		}
	}
	return types.Player{}, false
}

// IsValidPosition reports whether the player may stand on pos.
func IsValidPosition(room *types.Room, npcs []types.Player, pos types.Position) bool {
	if room == nil || !InInterior(room, pos) {
		return false
	}
	if TileAt(room, pos) == types.TileWall {
		return false
	}
	for _, f := range room.Furniture {
		if Blocks(f.Kind) && Occupies(f.Position, pos) {
			return false
		}
	}
	if _, ok := NPCAt(npcs, pos); ok {
		return false
	}
	return true
}
