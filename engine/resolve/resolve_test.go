package resolve

import (
	"errors"
	"testing"

	"github.com/nathoo/dragonsrealm/types"
)

func testItems() []types.InventoryItem {
	return []types.InventoryItem{
		{ID: "1", Name: "Poção de Vida", Quantity: 5},
		{ID: "2", Name: "Poção de Mana", Quantity: 3},
		{ID: "3", Name: "Espada de Ferro", Quantity: 1},
		{ID: "7", Name: "Tocha", Quantity: 10},
	}
}

func TestItem_ExactID(t *testing.T) {
	got, err := Item(testItems(), "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Espada de Ferro" {
		t.Errorf("got %q, want Espada de Ferro", got.Name)
	}
}

func TestItem_ByName_CaseInsensitive(t *testing.T) {
	got, err := Item(testItems(), "TOCHA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "7" {
		t.Errorf("got %q, want 7", got.ID)
	}
}

func TestItem_WordMatch(t *testing.T) {
	got, err := Item(testItems(), "espada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "3" {
		t.Errorf("got %q, want 3", got.ID)
	}
}

func TestItem_Ambiguous(t *testing.T) {
	_, err := Item(testItems(), "poção")
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if len(amb.Candidates) != 2 {
		t.Errorf("candidates = %v, want 2", amb.Candidates)
	}
}

func TestItem_ExactNameBeatsWordMatch(t *testing.T) {
	items := append(testItems(), types.InventoryItem{ID: "9", Name: "Vida"})
	got, err := Item(items, "vida")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "9" {
		t.Errorf("got %q, want 9", got.ID)
	}
}

func TestItem_NotFound(t *testing.T) {
	for _, q := range []string{"escudo", "", "   "} {
		_, err := Item(testItems(), q)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("Item(%q): expected NotFoundError, got %v", q, err)
		}
	}
}

func TestDropped_WrapsNotFound(t *testing.T) {
	dropped := []types.DroppedItem{{ID: "d1", Item: types.InventoryItem{Name: "Tocha"}}}
	if got, err := Dropped(dropped, "tocha"); err != nil || got.ID != "d1" {
		t.Errorf("Dropped(tocha) = %v, %v", got, err)
	}
	_, err := Dropped(dropped, "anel")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected wrapped NotFoundError, got %v", err)
	}
}

func TestNearestDropped(t *testing.T) {
	at := func(id, room string, x, y int) types.DroppedItem {
		return types.DroppedItem{ID: id, RoomID: room, Position: types.Position{X: x, Y: y}}
	}
	tests := []struct {
		name    string
		dropped []types.DroppedItem
		wantID  string
		ok      bool
	}{
		{"same tile", []types.DroppedItem{at("a", "hall", 5, 5)}, "a", true},
		{"adjacent", []types.DroppedItem{at("a", "hall", 5, 6)}, "a", true},
		{"diagonal is too far", []types.DroppedItem{at("a", "hall", 6, 6)}, "", false},
		{"other room", []types.DroppedItem{at("a", "cellar", 5, 5)}, "", false},
		{"closest wins", []types.DroppedItem{at("a", "hall", 4, 5), at("b", "hall", 5, 5)}, "b", true},
		{"tie goes to first dropped", []types.DroppedItem{at("a", "hall", 4, 5), at("b", "hall", 6, 5)}, "a", true},
		{"none", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestDropped(tt.dropped, "hall", types.Position{X: 5, Y: 5})
			if ok != tt.ok || got.ID != tt.wantID {
				t.Errorf("NearestDropped = %q, %v; want %q, %v", got.ID, ok, tt.wantID, tt.ok)
			}
		})
	}
}
