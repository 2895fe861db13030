// Package render projects an engine snapshot onto a grid of cells that the
// plain CLI prints as ASCII and the TUI paints with lipgloss.
package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nathoo/dragonsrealm/engine"
	"github.com/nathoo/dragonsrealm/types"
)

// Kind says what a cell shows. Higher kinds are drawn over lower ones.
type Kind int

const (
	KindFloor Kind = iota
	KindWall
	KindFurniture
	KindPortal
	KindDropped
	KindNPC
	KindPlayer
)

var kindNames = [...]string{"floor", "wall", "furniture", "portal", "dropped", "npc", "player"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Cell is one projected tile.
type Cell struct {
	Kind      Kind
	Glyph     rune
	Name      string // furniture tag, portal label, item or NPC name
	Rarity    types.Rarity
	Furniture types.FurnitureKind
	Walking   bool
}

// Map is the projected room, Height rows of Width cells.
type Map struct {
	Width, Height int
	Rows          [][]Cell
}

const (
	glyphFloor   = '.'
	glyphWall    = '#'
	glyphPortal  = 'O'
	glyphDropped = '!'
	glyphNPC     = '&'
)

var furnitureGlyphs = map[types.FurnitureKind]rune{
	types.FurnitureTable:    'T',
	types.FurnitureChair:    'h',
	types.FurnitureTorch:    '*',
	types.FurnitureBarrel:   'o',
	types.FurnitureChest:    '=',
	types.FurnitureFountain: '~',
	types.FurnitureBench:    '_',
	types.FurnitureTree:     'Y',
	types.FurnitureMushroom: ',',
	types.FurnitureRock:     'R',
	types.FurnitureShelf:    '|',
	types.FurnitureSkull:    'x',
}

// FurnitureGlyph returns the map glyph for a furniture kind.
func FurnitureGlyph(k types.FurnitureKind) rune {
	if g, ok := furnitureGlyphs[k]; ok {
		return g
	}
	return '?'
}

// PlayerGlyph is an arrow pointing where the player faces.
func PlayerGlyph(d types.Direction) rune {
	switch d {
	case types.Up:
		return '^'
	case types.Left:
		return '<'
	case types.Right:
		return '>'
	default:
		return 'v'
	}
}

// Project builds the cell grid for the snapshot's current room. Layers are
// applied in Kind order so the player is always visible.
func Project(snap engine.Snapshot) Map {
	room := snap.Room
	m := Map{Width: room.Width, Height: room.Height}
	m.Rows = make([][]Cell, room.Height)
	for y := 0; y < room.Height; y++ {
		row := make([]Cell, room.Width)
		for x := range row {
			row[x] = Cell{Kind: KindFloor, Glyph: glyphFloor}
			if y < len(room.Floor) && x < len(room.Floor[y]) && room.Floor[y][x] == types.TileWall {
				row[x] = Cell{Kind: KindWall, Glyph: glyphWall}
			}
		}
		m.Rows[y] = row
	}

	// Decorative pieces with fractional offsets snap to the nearest tile.
	for _, f := range room.Furniture {
		pos := types.Position{X: int(math.Round(f.Position.X)), Y: int(math.Round(f.Position.Y))}
		m.set(pos, Cell{Kind: KindFurniture, Glyph: FurnitureGlyph(f.Kind), Name: f.Tag, Furniture: f.Kind})
	}
	for _, p := range room.Portals {
		label := p.Label
		if label == "" {
			label = p.TargetRoomID
		}
		m.set(p.Position, Cell{Kind: KindPortal, Glyph: glyphPortal, Name: label})
	}
	for _, d := range snap.Dropped {
		m.set(d.Position, Cell{Kind: KindDropped, Glyph: glyphDropped, Name: d.Item.Name, Rarity: d.Item.Rarity})
	}
	for _, n := range snap.NPCs {
		m.set(n.Position, Cell{Kind: KindNPC, Glyph: glyphNPC, Name: n.Name})
	}
	p := snap.Player
	m.set(p.Position, Cell{Kind: KindPlayer, Glyph: PlayerGlyph(p.Direction), Name: p.Name, Walking: p.Walking})
	return m
}

// set writes c at pos unless a higher layer is already there.
func (m *Map) set(pos types.Position, c Cell) {
	if pos.Y < 0 || pos.Y >= m.Height || pos.X < 0 || pos.X >= m.Width {
		return
	}
	cur := &m.Rows[pos.Y][pos.X]
	if cur.Kind > c.Kind && cur.Kind != KindWall {
		return
	}
	*cur = c
}

// At returns the cell at pos, or a wall outside the map.
func (m Map) At(pos types.Position) Cell {
	if pos.Y < 0 || pos.Y >= m.Height || pos.X < 0 || pos.X >= m.Width {
		return Cell{Kind: KindWall, Glyph: glyphWall}
	}
	return m.Rows[pos.Y][pos.X]
}

// Lines returns the map as one string of glyphs per row.
func (m Map) Lines() []string {
	lines := make([]string, 0, m.Height)
	for _, row := range m.Rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Glyph)
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (m Map) String() string {
	return strings.Join(m.Lines(), "\n")
}

// Legend lists the glyphs drawn on the map with what they stand for,
// one entry per glyph and name, sorted.
func (m Map) Legend() []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range m.Rows {
		for _, c := range row {
			if c.Kind == KindFloor || c.Kind == KindWall {
				continue
			}
			entry := fmt.Sprintf("%c %s", c.Glyph, c.Name)
			if c.Kind == KindPlayer {
				entry = fmt.Sprintf("%c %s (you)", c.Glyph, c.Name)
			}
			if !seen[entry] {
				seen[entry] = true
				out = append(out, entry)
			}
		}
	}
	sort.Strings(out)
	return out
}
