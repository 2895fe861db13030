// Package resolve maps names typed by the player to inventory stacks and
// dropped items.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/types"
)

// PickupRange is the maximum Manhattan distance for a nearby pickup.
const PickupRange = 1

// AmbiguityError indicates multiple entries matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no entry matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't have %q", e.Name)
}

// Item resolves a query against inventory stacks.
func Item(items []types.InventoryItem, query string) (types.InventoryItem, error) {
	i, err := find(len(items), query,
		func(i int) string { return items[i].ID },
		func(i int) string { return items[i].Name })
	if err != nil {
		return types.InventoryItem{}, err
	}
	return items[i], nil
}

// Dropped resolves a query against dropped items.
func Dropped(dropped []types.DroppedItem, query string) (types.DroppedItem, error) {
	i, err := find(len(dropped), query,
		func(i int) string { return dropped[i].ID },
		func(i int) string { return dropped[i].Item.Name })
	if err != nil {
		if nf, ok := err.(*NotFoundError); ok {
			return types.DroppedItem{}, fmt.Errorf("nothing called %q lies here: %w", nf.Name, err)
		}
		return types.DroppedItem{}, err
	}
	return dropped[i], nil
}

// NearestDropped returns the closest dropped item in roomID within
// PickupRange of pos. Ties go to the item dropped first.
func NearestDropped(dropped []types.DroppedItem, roomID string, pos types.Position) (types.DroppedItem, bool) {
	best := -1
	bestDist := PickupRange + 1
	for i, d := range dropped {
		if d.RoomID != roomID {
			continue
		}
		if dist := grid.Manhattan(d.Position, pos); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return types.DroppedItem{}, false
	}
	return dropped[best], true
}

// find matches by exact id, then by case-insensitive full name, then by
// any whole word of the name.
func find(n int, query string, id, name func(int) string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, &NotFoundError{Name: query}
	}
	for i := 0; i < n; i++ {
		if id(i) == strings.TrimSpace(query) {
			return i, nil
		}
	}

	var exact, partial []int
	for i := 0; i < n; i++ {
		lower := strings.ToLower(name(i))
		if lower == q {
			exact = append(exact, i)
			continue
		}
		for _, word := range strings.Fields(lower) {
			if word == q {
				partial = append(partial, i)
				break
			}
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return -1, &NotFoundError{Name: query}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for j, i := range matches {
			names[j] = name(i)
		}
		return -1, &AmbiguityError{Name: query, Candidates: names}
	}
}
