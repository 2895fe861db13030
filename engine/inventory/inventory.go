// Package inventory stores item stacks keyed by name. Each stack also carries
// a stable id so a UI can select it; the two keys are never conflated.
package inventory

import "github.com/nathoo/dragonsrealm/types"

// Inventory is an insertion-ordered set of stacks with a name index.
type Inventory struct {
	stacks []types.InventoryItem
	byName map[string]int // name -> index into stacks
	newID  func() string
}

// New creates an empty inventory. newID mints ids for stacks whose id is
// empty or already taken by another stack.
func New(newID func() string) *Inventory {
	return &Inventory{
		byName: map[string]int{},
		newID:  newID,
	}
}

// Add merges item into the stack with the same name, or appends a new stack.
// Quantities of zero or less are ignored. Returns the resulting stack.
func (inv *Inventory) Add(item types.InventoryItem) (types.InventoryItem, bool) {
	if item.Quantity <= 0 {
		return types.InventoryItem{}, false
	}
	if i, ok := inv.byName[item.Name]; ok {
		inv.stacks[i].Quantity += item.Quantity
		return copyItem(inv.stacks[i]), true
	}
	if item.ID == "" || inv.indexOf(item.ID) >= 0 {
		item.ID = inv.newID()
	}
	item = copyItem(item)
	inv.stacks = append(inv.stacks, item)
	inv.byName[item.Name] = len(inv.stacks) - 1
	return copyItem(item), true
}

// Remove takes n items from the stack with the given id, pruning the stack
// when it reaches zero. Returns a snapshot of the stack before removal.
func (inv *Inventory) Remove(id string, n int) (types.InventoryItem, bool) {
	i := inv.indexOf(id)
	if i < 0 || n <= 0 {
		return types.InventoryItem{}, false
	}
	before := copyItem(inv.stacks[i])
	inv.stacks[i].Quantity -= n
	if inv.stacks[i].Quantity <= 0 {
		inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
		inv.reindex()
	}
	return before, true
}

// Get returns the stack with the given id.
func (inv *Inventory) Get(id string) (types.InventoryItem, bool) {
	i := inv.indexOf(id)
	if i < 0 {
		return types.InventoryItem{}, false
	}
	return copyItem(inv.stacks[i]), true
}

// ByName returns the stack with the given name.
func (inv *Inventory) ByName(name string) (types.InventoryItem, bool) {
	i, ok := inv.byName[name]
	if !ok {
		return types.InventoryItem{}, false
	}
	return copyItem(inv.stacks[i]), true
}

// Items returns a copy of all stacks in insertion order.
func (inv *Inventory) Items() []types.InventoryItem {
	out := make([]types.InventoryItem, len(inv.stacks))
	for i, s := range inv.stacks {
		out[i] = copyItem(s)
	}
	return out
}

// Len returns the number of stacks.
func (inv *Inventory) Len() int {
	return len(inv.stacks)
}

func (inv *Inventory) indexOf(id string) int {
	for i, s := range inv.stacks {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) reindex() {
	inv.byName = make(map[string]int, len(inv.stacks))
	for i, s := range inv.stacks {
		inv.byName[s.Name] = i
	}
}

// copyItem detaches the optional effect so callers cannot mutate a stack.
func copyItem(item types.InventoryItem) types.InventoryItem {
	if item.Effect != nil {
		eff := *item.Effect
		item.Effect = &eff
	}
	return item
}
