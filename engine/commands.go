package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dragonsrealm/engine/effects"
	"github.com/nathoo/dragonsrealm/engine/events"
	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/engine/resolve"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// Move steps the player one tile. A blocked step only turns the player.
// Stepping onto a portal moves the player to the portal's target.
func (e *Engine) Move(dir types.Direction) types.Result {
	return e.run(func() types.Result { return e.move(dir) })
}

func (e *Engine) move(dir types.Direction) types.Result {
	var res types.Result
	p := &e.state.Player
	p.Direction = dir
	defer e.scheduleWalkReset()

	room, ok := state.CurrentRoom(e.state, e.defs)
	target := grid.Step(p.Position, dir)
	if !ok || !grid.IsValidPosition(room, state.NPCsIn(e.defs, e.state.RoomID), target) {
		e.logger.Debug("Move blocked", "room", e.state.RoomID, "x", target.X, "y", target.Y)
		res.Events = append(res.Events, events.New(events.PlayerTurned, "direction", dir.String()))
		return res
	}

	p.Position = target
	p.Walking = true
	res.Events = append(res.Events, events.New(events.PlayerMoved,
		"room", e.state.RoomID, "x", target.X, "y", target.Y, "direction", dir.String()))

	portal, ok := grid.PortalAt(room, target)
	if !ok {
		return res
	}
	dest, ok := state.Room(e.defs, portal.TargetRoomID)
	if !ok {
		e.logger.Warn("Portal target missing", "portal", portal.ID, "target", portal.TargetRoomID)
		return res
	}
	from := e.state.RoomID
	e.state.RoomID = dest.ID
	p.Position = portal.TargetPosition

	msg := fmt.Sprintf("You entered %s.", dest.Name)
	e.systemMessage(msg)
	e.logger.Debug("Room entered", "from", from, "to", dest.ID, "portal", portal.ID)
	res.Events = append(res.Events, events.New(events.RoomEntered,
		"from", from, "room", dest.ID, "portal", portal.ID))
	res.Output = append(res.Output, msg)
	return res
}

// scheduleWalkReset clears the walking flag walkDuration after the latest
// move. Any earlier pending reset is cancelled. Caller holds mu.
func (e *Engine) scheduleWalkReset() {
	if e.walkReset != nil {
		e.walkReset.Cancel()
	}
	e.walkGen++
	gen := e.walkGen
	e.walkReset = e.sched.After(e.walkDuration, func() { e.clearWalking(gen) })
}

func (e *Engine) clearWalking(gen uint64) {
	e.run(func() types.Result {
		// A timer that already fired cannot be stopped; drop its stale call.
		if gen != e.walkGen {
			return types.Result{}
		}
		e.walkReset = nil
		if !e.state.Player.Walking {
			return types.Result{}
		}
		e.state.Player.Walking = false
		return types.Result{Events: []types.Event{events.New(events.WalkStopped)}}
	})
}

// UseItem consumes one consumable or equips a piece of equipment.
// Unknown ids and other item types are ignored.
func (e *Engine) UseItem(id string) types.Result {
	return e.run(func() types.Result {
		var res types.Result
		item, ok := e.state.Inventory.Get(id)
		if !ok {
			return res
		}

		switch item.Type {
		case types.Consumable:
			if item.Effect == nil {
				return res
			}
			applied := effects.Restore(&e.state.Player, *item.Effect)
			e.state.Inventory.Remove(id, 1)
			msg := effects.Summary(item.Name, applied)
			e.systemMessage(msg)
			res.Events = append(res.Events, events.New(events.ItemUsed,
				"item", item.Name, "health", applied.Health, "mana", applied.Mana, "remaining", item.Quantity-1))
			res.Output = append(res.Output, msg)

		case types.Equipment:
			msg := fmt.Sprintf("You equipped %s.", item.Name)
			e.systemMessage(msg)
			res.Events = append(res.Events, events.New(events.ItemEquipped, "item", item.Name))
			res.Output = append(res.Output, msg)
		}
		return res
	})
}

// DropItem places one item from a stack on the floor at the player's feet.
func (e *Engine) DropItem(id string) types.Result {
	return e.run(func() types.Result {
		var res types.Result
		before, ok := e.state.Inventory.Remove(id, 1)
		if !ok {
			return res
		}
		item := before
		item.Quantity = 1
		dropped := types.DroppedItem{
			ID:       e.newID(),
			Item:     item,
			Position: e.state.Player.Position,
			RoomID:   e.state.RoomID,
		}
		e.state.Dropped = append(e.state.Dropped, dropped)

		msg := fmt.Sprintf("You dropped %s.", item.Name)
		e.systemMessage(msg)
		res.Events = append(res.Events, events.New(events.ItemDropped,
			"item", item.Name, "dropped_id", dropped.ID, "x", dropped.Position.X, "y", dropped.Position.Y))
		res.Output = append(res.Output, msg)
		return res
	})
}

// PickupItem moves a dropped item within reach back into the inventory.
func (e *Engine) PickupItem(droppedID string) types.Result {
	return e.run(func() types.Result { return e.pickup(droppedID) })
}

// PickupNearby picks up the closest dropped item within reach, if any.
func (e *Engine) PickupNearby() types.Result {
	return e.run(func() types.Result {
		d, ok := resolve.NearestDropped(e.state.Dropped, e.state.RoomID, e.state.Player.Position)
		if !ok {
			return types.Result{}
		}
		return e.pickup(d.ID)
	})
}

func (e *Engine) pickup(droppedID string) types.Result {
	var res types.Result
	d, i, ok := state.FindDropped(e.state, droppedID)
	if !ok || d.RoomID != e.state.RoomID {
		return res
	}
	if grid.Manhattan(d.Position, e.state.Player.Position) > resolve.PickupRange {
		return res
	}

	item := d.Item
	item.Quantity = 1
	stack, _ := e.state.Inventory.Add(item)
	e.state.Dropped = append(e.state.Dropped[:i], e.state.Dropped[i+1:]...)

	msg := fmt.Sprintf("You picked up %s.", item.Name)
	e.systemMessage(msg)
	res.Events = append(res.Events, events.New(events.ItemPickedUp,
		"item", item.Name, "dropped_id", d.ID, "quantity", stack.Quantity))
	res.Output = append(res.Output, msg)
	return res
}

// SendMessage posts a chat line from the player. Blank text is ignored and
// long text is cut to the maximum message length.
func (e *Engine) SendMessage(text string) types.Result {
	return e.run(func() types.Result {
		var res types.Result
		text = strings.TrimSpace(text)
		if text == "" {
			return res
		}
		if runes := []rune(text); e.maxMessage > 0 && len(runes) > e.maxMessage {
			text = string(runes[:e.maxMessage])
		}
		msg := types.ChatMessage{
			ID:         e.newID(),
			PlayerID:   e.state.Player.ID,
			PlayerName: e.state.Player.Name,
			Message:    text,
			Timestamp:  e.now(),
		}
		e.state.Messages.Append(msg)
		res.Events = append(res.Events, events.New(events.MessageSent, "id", msg.ID, "text", text))
		return res
	})
}
