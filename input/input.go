// Package input maps keyboard keys to engine commands.
package input

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nathoo/dragonsrealm/types"
)

// Commands is the part of the engine the dispatcher drives.
type Commands interface {
	Move(dir types.Direction) types.Result
	PickupNearby() types.Result
}

// KeyMap holds the gameplay bindings. Letters match in either case.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Pickup key.Binding
}

// DefaultKeyMap returns WASD plus arrows for movement and E for pickup.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "W", "up"),
			key.WithHelp("w/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "S", "down"),
			key.WithHelp("s/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "A", "left"),
			key.WithHelp("a/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "D", "right"),
			key.WithHelp("d/→", "move right"),
		),
		Pickup: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "pick up"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Pickup}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pickup},
	}
}

// Direction returns the movement direction bound to k.
func (k KeyMap) Direction(msg fmt.Stringer) (types.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return types.Up, true
	case key.Matches(msg, k.Down):
		return types.Down, true
	case key.Matches(msg, k.Left):
		return types.Left, true
	case key.Matches(msg, k.Right):
		return types.Right, true
	}
	return types.Down, false
}

// Dispatcher turns key presses into engine commands.
type Dispatcher struct {
	Keys   KeyMap
	Target Commands
}

// NewDispatcher creates a dispatcher with the default bindings.
func NewDispatcher(target Commands) *Dispatcher {
	return &Dispatcher{Keys: DefaultKeyMap(), Target: target}
}

// Handle runs the command bound to k. Keys typed while a text field has
// focus are left alone. The bool reports whether the key was consumed.
func (d *Dispatcher) Handle(k fmt.Stringer, textFocused bool) (types.Result, bool) {
	if textFocused {
		return types.Result{}, false
	}
	if dir, ok := d.Keys.Direction(k); ok {
		return d.Target.Move(dir), true
	}
	if key.Matches(k, d.Keys.Pickup) {
		return d.Target.PickupNearby(), true
	}
	return types.Result{}, false
}
