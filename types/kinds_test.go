package types

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", Up, true},
		{"DOWN", Down, true},
		{" left ", Left, true},
		{"right", Right, true},
		{"north", Down, false},
		{"", Down, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFurnitureKind_UnknownFallsBack(t *testing.T) {
	k, ok := ParseFurnitureKind("throne")
	if ok {
		t.Error("expected throne to be unknown")
	}
	if k != FurnitureUnknown {
		t.Errorf("kind = %v, want unknown", k)
	}
	if k.String() != "unknown" {
		t.Errorf("String() = %q", k.String())
	}
}

func TestParseFurnitureKind_RejectsUnknownName(t *testing.T) {
	if _, ok := ParseFurnitureKind("unknown"); ok {
		t.Error("the fallback name must not parse as a known kind")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for k := FurnitureTable; k <= FurnitureSkull; k++ {
		got, ok := ParseFurnitureKind(k.String())
		if !ok || got != k {
			t.Errorf("furniture %v did not round trip", k)
		}
	}
	for r := Common; r <= Legendary; r++ {
		got, ok := ParseRarity(r.String())
		if !ok || got != r {
			t.Errorf("rarity %v did not round trip", r)
		}
	}
	for it := Consumable; it <= Quest; it++ {
		got, ok := ParseItemType(it.String())
		if !ok || got != it {
			t.Errorf("item type %v did not round trip", it)
		}
	}
}

func TestOutOfRangeStrings(t *testing.T) {
	if Direction(42).String() != "down" {
		t.Error("out of range direction should render as down")
	}
	if Rarity(-1).String() != "unknown" {
		t.Error("out of range rarity should render as unknown")
	}
	if ItemType(99).String() != "unknown" {
		t.Error("out of range item type should render as unknown")
	}
	if TileWall.String() != "wall" || TileFloor.String() != "floor" {
		t.Error("tile names wrong")
	}
}
