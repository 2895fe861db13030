package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dragonsrealm/engine/events"
	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/engine/parser"
	"github.com/nathoo/dragonsrealm/engine/resolve"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// Step parses one typed command, runs it and returns the result with
// narration for a text front end.
func (e *Engine) Step(input string) types.Result {
	intent := parser.Parse(input)
	e.logger.Debug("Command", "input", input, "verb", intent.Verb, "object", intent.Object)

	switch intent.Verb {
	case "":
		return output("What do you want to do?")
	case "go":
		return e.stepGo(intent.Object)
	case "use":
		return e.stepInventory(intent.Object, "Use what?", e.UseItem, "Nothing happens.")
	case "drop":
		return e.stepInventory(intent.Object, "Drop what?", e.DropItem, "")
	case "take":
		return e.stepTake(intent.Object)
	case "say":
		if intent.Object == "" {
			return output("Say what?")
		}
		res := e.SendMessage(intent.Object)
		msgs := e.Messages()
		if len(res.Events) > 0 && len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			res.Output = append(res.Output, fmt.Sprintf("%s: %s", last.PlayerName, last.Message))
		}
		return res
	case "inventory":
		return output(e.describeInventory()...)
	case "look":
		return output(e.describeRoom()...)
	case "stats":
		return output(e.describeStats())
	case "wait":
		return output("Time passes.")
	case "help":
		return output(
			"Move: w/a/s/d, up/down/left/right, go <direction>.",
			"Items: use <item>, drop <item>, take [item] (or e), inventory.",
			"Other: look, stats, say <text> (or 'text), wait.",
		)
	default:
		return output("I don't understand that.")
	}
}

func output(lines ...string) types.Result {
	return types.Result{Output: lines}
}

func (e *Engine) stepGo(dir string) types.Result {
	if dir == "" {
		return output("Go where?")
	}
	d, ok := types.ParseDirection(dir)
	if !ok {
		return output("You can't go that way.")
	}
	res := e.Move(d)
	for _, ev := range res.Events {
		switch ev.Type {
		case events.PlayerTurned:
			res.Output = append([]string{fmt.Sprintf("Something blocks your way. You face %s.", d)}, res.Output...)
		case events.PlayerMoved:
			if len(res.Output) == 0 {
				p := e.Player()
				res.Output = append(res.Output, fmt.Sprintf("You walk %s to (%d, %d).", d, p.Position.X, p.Position.Y))
			}
		}
	}
	return res
}

// stepInventory resolves a typed name against the inventory and runs cmd
// on the matching stack.
func (e *Engine) stepInventory(query, prompt string, cmd func(string) types.Result, nothing string) types.Result {
	if query == "" {
		return output(prompt)
	}
	item, err := resolve.Item(e.Inventory(), query)
	if err != nil {
		return output(describeResolveError(err))
	}
	res := cmd(item.ID)
	if len(res.Events) == 0 && nothing != "" {
		res.Output = append(res.Output, nothing)
	}
	return res
}

func (e *Engine) stepTake(query string) types.Result {
	if query == "" {
		res := e.PickupNearby()
		if len(res.Events) == 0 {
			res.Output = append(res.Output, "There is nothing within reach.")
		}
		return res
	}
	snap := e.Snapshot()
	d, err := resolve.Dropped(snap.Dropped, query)
	if err != nil {
		return output(describeResolveError(err))
	}
	res := e.PickupItem(d.ID)
	if len(res.Events) == 0 {
		res.Output = append(res.Output, fmt.Sprintf("The %s is out of reach.", d.Item.Name))
	}
	return res
}

func describeResolveError(err error) string {
	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		return fmt.Sprintf("Which one? %s.", strings.Join(amb.Candidates, ", "))
	}
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) {
		return err.Error() + "."
	}
	return err.Error()
}

func (e *Engine) describeInventory() []string {
	items := e.Inventory()
	if len(items) == 0 {
		return []string{"You are carrying nothing."}
	}
	lines := []string{"You are carrying:"}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  [%s] %s %s ×%d (%s %s)", it.ID, it.Icon, it.Name, it.Quantity, it.Rarity, it.Type))
	}
	return lines
}

func (e *Engine) describeStats() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.state.Player
	return fmt.Sprintf("%s  Lv %d  HP %d/%d  MP %d/%d  Gold %d",
		p.Name, p.Level, p.Health, p.MaxHealth, p.Mana, p.MaxMana, e.state.Gold)
}

// describeRoom lists what the player can see in the current room.
func (e *Engine) describeRoom() []string {
	snap := e.Snapshot()
	if snap.Room.ID == "" {
		return []string{"You are somewhere unknown."}
	}
	p := snap.Player
	out := []string{fmt.Sprintf("%s (%d, %d), facing %s.", snap.Room.Name, p.Position.X, p.Position.Y, p.Direction)}

	if len(snap.NPCs) > 0 {
		var names []string
		for _, n := range snap.NPCs {
			names = append(names, fmt.Sprintf("%s (Lv %d) at (%d, %d)", n.Name, n.Level, n.Position.X, n.Position.Y))
		}
		out = append(out, "You see: "+strings.Join(names, ", ")+".")
	}

	if len(snap.Dropped) > 0 {
		var names []string
		for _, d := range snap.Dropped {
			names = append(names, fmt.Sprintf("%s at (%d, %d)", d.Item.Name, d.Position.X, d.Position.Y))
		}
		out = append(out, "On the floor: "+strings.Join(names, ", ")+".")
	}

	if len(snap.Room.Portals) > 0 {
		var exits []string
		for _, portal := range snap.Room.Portals {
			label := portal.Label
			if label == "" {
				label = portal.TargetRoomID
			}
			note := ""
			if !grid.InInterior(&snap.Room, portal.Position) {
				note = ", unreachable"
			}
			exits = append(exits, fmt.Sprintf("%s (%d, %d%s)", label, portal.Position.X, portal.Position.Y, note))
		}
		sort.Strings(exits)
		out = append(out, "Exits: "+strings.Join(exits, ", ")+".")
	}
	return out
}

// RoomNames returns "id: name" pairs for every room, sorted by id.
func (e *Engine) RoomNames() []string {
	var out []string
	for _, id := range state.RoomIDs(e.defs) {
		room, _ := state.Room(e.defs, id)
		out = append(out, fmt.Sprintf("%s: %s", id, room.Name))
	}
	return out
}
