package grid

import (
	"testing"

	"github.com/nathoo/dragonsrealm/types"
)

func testRoom() *types.Room {
	return &types.Room{
		ID:     "hall",
		Name:   "Hall",
		Width:  8,
		Height: 6,
		Floor:  NewFloor(8, 6, []types.Position{{X: 5, Y: 4}}),
		Furniture: []types.Furniture{
			{ID: "table", Kind: types.FurnitureTable, Position: types.Point{X: 2, Y: 2}},
			{ID: "torch", Kind: types.FurnitureTorch, Position: types.Point{X: 3, Y: 2}},
			{ID: "shroom", Kind: types.FurnitureMushroom, Position: types.Point{X: 4, Y: 2}},
			{ID: "odd", Kind: types.FurnitureUnknown, Tag: "throne", Position: types.Point{X: 5, Y: 2}},
			{ID: "corner", Kind: types.FurnitureBarrel, Position: types.Point{X: 1.5, Y: 1}},
		},
		Portals: []types.Portal{
			{ID: "p", Position: types.Position{X: 6, Y: 4}, TargetRoomID: "cellar"},
		},
	}
}

func TestNewFloor_OuterRingIsWall(t *testing.T) {
	floor := NewFloor(5, 4, nil)
	if len(floor) != 4 || len(floor[0]) != 5 {
		t.Fatalf("floor is %dx%d, want 4 rows of 5", len(floor), len(floor[0]))
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			edge := x == 0 || x == 4 || y == 0 || y == 3
			want := types.TileFloor
			if edge {
				want = types.TileWall
			}
			if floor[y][x] != want {
				t.Errorf("tile (%d,%d) = %v, want %v", x, y, floor[y][x], want)
			}
		}
	}
}

func TestNewFloor_IgnoresWallsOutsideGrid(t *testing.T) {
	floor := NewFloor(3, 3, []types.Position{{X: 9, Y: 9}, {X: -1, Y: 0}})
	if floor[1][1] != types.TileFloor {
		t.Error("interior should remain floor")
	}
}

func TestNewFloor_NegativeSizeIsEmpty(t *testing.T) {
	tests := []struct {
		w, h     int
		rows     int
		rowWidth int
	}{
		{-2, 4, 4, 0},
		{4, -1, 0, 0},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		floor := NewFloor(tt.w, tt.h, []types.Position{{X: 1, Y: 1}})
		if len(floor) != tt.rows {
			t.Errorf("NewFloor(%d, %d) has %d rows, want %d", tt.w, tt.h, len(floor), tt.rows)
		}
		for _, row := range floor {
			if len(row) != tt.rowWidth {
				t.Errorf("NewFloor(%d, %d) row has %d tiles, want %d", tt.w, tt.h, len(row), tt.rowWidth)
			}
		}
	}
}

func TestStep(t *testing.T) {
	origin := types.Position{X: 5, Y: 5}
	tests := []struct {
		dir  types.Direction
		want types.Position
	}{
		{types.Up, types.Position{X: 5, Y: 4}},
		{types.Down, types.Position{X: 5, Y: 6}},
		{types.Left, types.Position{X: 4, Y: 5}},
		{types.Right, types.Position{X: 6, Y: 5}},
	}
	for _, tt := range tests {
		if got := Step(origin, tt.dir); got != tt.want {
			t.Errorf("Step(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestManhattan(t *testing.T) {
	if d := Manhattan(types.Position{X: 1, Y: 1}, types.Position{X: 4, Y: -1}); d != 5 {
		t.Errorf("Manhattan = %d, want 5", d)
	}
	if d := Manhattan(types.Position{X: 2, Y: 2}, types.Position{X: 2, Y: 2}); d != 0 {
		t.Errorf("Manhattan = %d, want 0", d)
	}
}

func TestIsValidPosition(t *testing.T) {
	room := testRoom()
	npcs := []types.Player{{ID: "npc", Position: types.Position{X: 1, Y: 3}}}

	tests := []struct {
		name string
		pos  types.Position
		want bool
	}{
		{"open floor", types.Position{X: 3, Y: 3}, true},
		{"left wall ring", types.Position{X: 0, Y: 3}, false},
		{"right wall ring", types.Position{X: 7, Y: 3}, false},
		{"top wall ring", types.Position{X: 3, Y: 0}, false},
		{"bottom wall ring", types.Position{X: 3, Y: 5}, false},
		{"outside grid", types.Position{X: -4, Y: 20}, false},
		{"table blocks", types.Position{X: 2, Y: 2}, false},
		{"torch passes", types.Position{X: 3, Y: 2}, true},
		{"mushroom passes", types.Position{X: 4, Y: 2}, true},
		{"unknown furniture blocks", types.Position{X: 5, Y: 2}, false},
		{"fractional placement occupies nothing", types.Position{X: 1, Y: 1}, true},
		{"npc blocks", types.Position{X: 1, Y: 3}, false},
		{"interior wall blocks", types.Position{X: 5, Y: 4}, false},
		{"portal tile is walkable", types.Position{X: 6, Y: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPosition(room, npcs, tt.pos); got != tt.want {
				t.Errorf("IsValidPosition(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsValidPosition_NilRoom(t *testing.T) {
	if IsValidPosition(nil, nil, types.Position{X: 1, Y: 1}) {
		t.Error("nil room must reject every position")
	}
}

func TestIsValidPosition_OuterRingEvenWhenAuthoredFloor(t *testing.T) {
	room := testRoom()
	room.Floor[0][3] = types.TileFloor
	if IsValidPosition(room, nil, types.Position{X: 3, Y: 0}) {
		t.Error("outer ring must stay impassable regardless of tile kind")
	}
}

func TestPortalAt(t *testing.T) {
	room := testRoom()
	p, ok := PortalAt(room, types.Position{X: 6, Y: 4})
	if !ok || p.TargetRoomID != "cellar" {
		t.Errorf("PortalAt = %v, %v", p, ok)
	}
	if _, ok := PortalAt(room, types.Position{X: 3, Y: 3}); ok {
		t.Error("unexpected portal")
	}
}

func TestFurnitureAt(t *testing.T) {
	room := testRoom()
	f, ok := FurnitureAt(room, types.Position{X: 3, Y: 2})
	if !ok || f.ID != "torch" {
		t.Errorf("FurnitureAt = %v, %v", f, ok)
	}
	if _, ok := FurnitureAt(room, types.Position{X: 6, Y: 3}); ok {
		t.Error("unexpected furniture")
	}
}

func TestTileAt_RaggedRow(t *testing.T) {
	room := &types.Room{Width: 4, Height: 3, Floor: [][]types.Tile{{}, {types.TileFloor}, {}}}
	if TileAt(room, types.Position{X: 2, Y: 1}) != types.TileWall {
		t.Error("missing cells read as wall")
	}
	if TileAt(room, types.Position{X: 0, Y: 1}) != types.TileFloor {
		t.Error("authored cell should be floor")
	}
}
