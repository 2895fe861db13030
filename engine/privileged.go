package engine

import (
	"fmt"

	"github.com/nathoo/dragonsrealm/engine/effects"
	"github.com/nathoo/dragonsrealm/engine/events"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// runPrivileged is run for commands gated by the admin flag.
func (e *Engine) runPrivileged(op string, fn func() types.Result) (types.Result, error) {
	if !e.admin.IsAdmin() {
		e.logger.Debug("Privileged command refused", "command", op)
		return types.Result{}, ErrNotAdmin
	}
	res := e.run(fn)
	e.logger.Info("Privileged command", "command", op, "events", events.Types(res.Events))
	return res, nil
}

// GiveItem adds item to the inventory, merging by name. No message is
// posted. Quantities of zero or less are ignored.
func (e *Engine) GiveItem(item types.InventoryItem) (types.Result, error) {
	return e.runPrivileged("give_item", func() types.Result {
		var res types.Result
		stack, ok := e.state.Inventory.Add(item)
		if !ok {
			return res
		}
		res.Events = append(res.Events, events.New(events.ItemGiven,
			"item", stack.Name, "added", item.Quantity, "quantity", stack.Quantity))
		res.Output = append(res.Output, fmt.Sprintf("Received %d× %s.", item.Quantity, stack.Name))
		return res
	})
}

// SetPlayerStats merges patch into the player record, then clamps the
// stats into range.
func (e *Engine) SetPlayerStats(patch types.StatsPatch) (types.Result, error) {
	return e.runPrivileged("set_player_stats", func() types.Result {
		var res types.Result
		changed := effects.ApplyPatch(&e.state.Player, patch)
		if len(changed) == 0 {
			return res
		}
		res.Events = append(res.Events, events.New(events.StatsChanged, "fields", changed))
		return res
	})
}

// TeleportTo places the player in roomID at pos, skipping collision and
// portal checks. Unknown rooms are ignored.
func (e *Engine) TeleportTo(roomID string, pos types.Position) (types.Result, error) {
	return e.runPrivileged("teleport", func() types.Result {
		var res types.Result
		room, ok := state.Room(e.defs, roomID)
		if !ok {
			return res
		}
		from := e.state.RoomID
		e.state.RoomID = room.ID
		e.state.Player.Position = pos
		res.Events = append(res.Events, events.New(events.Teleported,
			"from", from, "room", room.ID, "x", pos.X, "y", pos.Y))
		res.Output = append(res.Output, fmt.Sprintf("Teleported to %s (%d, %d).", room.Name, pos.X, pos.Y))
		return res
	})
}

// AddGold adds amount to the gold total. Negative totals are allowed.
func (e *Engine) AddGold(amount int) (types.Result, error) {
	return e.runPrivileged("add_gold", func() types.Result {
		e.state.Gold += amount
		return types.Result{
			Events: []types.Event{events.New(events.GoldChanged, "amount", amount, "gold", e.state.Gold)},
		}
	})
}
