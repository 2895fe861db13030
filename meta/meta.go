// Package meta implements the slash commands shared by the plain CLI and
// the TUI: session controls plus the admin panel surface.
package meta

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/dragonsrealm/engine"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// Reply is what a meta-command produced.
type Reply struct {
	Lines  []string
	Result types.Result // engine result for privileged commands
	Quit   bool
}

// Handler runs meta-commands against an engine.
type Handler struct {
	Engine *engine.Engine
	Trace  bool
}

// IsMeta reports whether input is a meta-command.
func IsMeta(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Run dispatches one meta-command line.
func (h *Handler) Run(ctx context.Context, input string) Reply {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return lines("Type /help for available commands.")
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		return Reply{Lines: []string{"Goodbye."}, Quit: true}
	case "/help":
		return lines(Help()...)
	case "/trace":
		h.Trace = !h.Trace
		if h.Trace {
			return lines("Trace output enabled.")
		}
		return lines("Trace output disabled.")
	case "/state":
		return lines(h.dumpState()...)
	case "/admin", "/grant", "/revoke":
		return h.admin(ctx, cmd)
	case "/rooms":
		return lines(h.Engine.RoomNames()...)
	case "/items":
		return lines(h.itemList()...)
	case "/tp", "/teleport":
		return h.teleport(args)
	case "/gold":
		return h.gold(args)
	case "/give":
		return h.give(args)
	case "/stats":
		return h.stats(args)
	case "/restore":
		p := h.Engine.Player()
		return h.privileged(h.Engine.SetPlayerStats(types.StatsPatch{Health: &p.MaxHealth, Mana: &p.MaxMana}))
	default:
		return lines(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
}

// Help lists the meta-commands.
func Help() []string {
	return []string{
		"System:",
		"  /help               Show this help",
		"  /quit               Exit game",
		"  /state              Dump the current state",
		"  /trace              Toggle event trace output",
		"Admin:",
		"  /admin              Toggle admin mode (/grant, /revoke)",
		"  /rooms              List rooms",
		"  /items              List item templates",
		"  /tp <room> [x y]    Teleport (default: room centre)",
		"  /gold <amount>      Add gold (negative to remove)",
		"  /give <item> [qty]  Give an item by id or name",
		"  /stats key=value    Set level, health, max_health, mana, max_mana, name",
		"  /restore            Refill health and mana",
	}
}

func lines(l ...string) Reply { return Reply{Lines: l} }

func (h *Handler) admin(ctx context.Context, cmd string) Reply {
	flag := h.Engine.Admin()
	if flag == nil {
		return lines("Admin mode is unavailable.")
	}
	switch cmd {
	case "/grant":
		return lines(adminLine(true, flag.Grant(ctx)))
	case "/revoke":
		return lines(adminLine(false, flag.Revoke(ctx)))
	default:
		on, err := flag.Toggle(ctx)
		return lines(adminLine(on, err))
	}
}

func adminLine(on bool, err error) string {
	word := "disabled"
	if on {
		word = "enabled"
	}
	if err != nil {
		return fmt.Sprintf("Admin mode %s (not saved: %v).", word, err)
	}
	return fmt.Sprintf("Admin mode %s.", word)
}

// privileged turns the outcome of an admin-gated command into a reply.
func (h *Handler) privileged(res types.Result, err error) Reply {
	if errors.Is(err, engine.ErrNotAdmin) {
		return lines("Admin mode is off. Use /admin to enable it.")
	}
	if err != nil {
		return lines(err.Error())
	}
	out := res.Output
	if len(out) == 0 && len(res.Events) == 0 {
		out = []string{"Nothing changed."}
	}
	return Reply{Lines: out, Result: res}
}

func (h *Handler) teleport(args []string) Reply {
	if len(args) != 1 && len(args) != 3 {
		return lines("Usage: /tp <room> [x y]")
	}
	room, ok := state.Room(h.Engine.Defs(), args[0])
	if !ok {
		return lines(fmt.Sprintf("Unknown room: %s. Type /rooms to list them.", args[0]))
	}
	pos := types.Position{X: room.Width / 2, Y: room.Height / 2}
	if len(args) == 3 {
		x, errX := strconv.Atoi(args[1])
		y, errY := strconv.Atoi(args[2])
		if errX != nil || errY != nil {
			return lines("Usage: /tp <room> [x y]")
		}
		pos = types.Position{X: x, Y: y}
	}
	return h.privileged(h.Engine.TeleportTo(room.ID, pos))
}

func (h *Handler) gold(args []string) Reply {
	if len(args) != 1 {
		return lines("Usage: /gold <amount>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return lines("Usage: /gold <amount>")
	}
	r := h.privileged(h.Engine.AddGold(n))
	if len(r.Result.Events) > 0 {
		r.Lines = []string{fmt.Sprintf("Gold: %d.", h.Engine.Gold())}
	}
	return r
}

func (h *Handler) give(args []string) Reply {
	if len(args) == 0 {
		return lines("Usage: /give <item> [qty]")
	}
	qty := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			qty = n
			args = args[:len(args)-1]
		}
	}
	key := strings.Join(args, " ")
	item, ok := state.ItemTemplate(h.Engine.Defs(), key)
	if !ok {
		return lines(fmt.Sprintf("Unknown item: %s. Type /items to list them.", key))
	}
	item.Quantity = qty
	return h.privileged(h.Engine.GiveItem(item))
}

func (h *Handler) stats(args []string) Reply {
	if len(args) == 0 {
		return lines("Usage: /stats key=value ...")
	}
	var patch types.StatsPatch
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return lines(fmt.Sprintf("Expected key=value, got %q.", arg))
		}
		if strings.ToLower(k) == "name" {
			name := v
			patch.Name = &name
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return lines(fmt.Sprintf("%s must be a number.", k))
		}
		switch strings.ToLower(k) {
		case "level", "lv":
			patch.Level = &n
		case "health", "hp":
			patch.Health = &n
		case "max_health", "maxhp":
			patch.MaxHealth = &n
		case "mana", "mp":
			patch.Mana = &n
		case "max_mana", "maxmp":
			patch.MaxMana = &n
		default:
			return lines(fmt.Sprintf("Unknown stat: %s.", k))
		}
	}
	r := h.privileged(h.Engine.SetPlayerStats(patch))
	if len(r.Result.Events) > 0 {
		p := h.Engine.Player()
		r.Lines = []string{fmt.Sprintf("%s  Lv %d  HP %d/%d  MP %d/%d",
			p.Name, p.Level, p.Health, p.MaxHealth, p.Mana, p.MaxMana)}
	}
	return r
}

func (h *Handler) itemList() []string {
	defs := h.Engine.Defs()
	if len(defs.Items) == 0 {
		return []string{"No item templates."}
	}
	out := make([]string, 0, len(defs.Items))
	for _, it := range defs.Items {
		out = append(out, fmt.Sprintf("%s: %s %s (%s %s)", it.ID, it.Icon, it.Name, it.Rarity, it.Type))
	}
	return out
}

func (h *Handler) dumpState() []string {
	snap := h.Engine.Snapshot()
	p := snap.Player
	return []string{
		fmt.Sprintf("Room: %s (%s)", snap.RoomID, snap.Room.Name),
		fmt.Sprintf("Position: (%d, %d) facing %s, walking=%t", p.Position.X, p.Position.Y, p.Direction, p.Walking),
		fmt.Sprintf("Stats: Lv %d HP %d/%d MP %d/%d", p.Level, p.Health, p.MaxHealth, p.Mana, p.MaxMana),
		fmt.Sprintf("Gold: %d", snap.Gold),
		fmt.Sprintf("Inventory: %d stacks", len(snap.Inventory)),
		fmt.Sprintf("Dropped here: %d", len(snap.Dropped)),
		fmt.Sprintf("Messages: %d", len(snap.Messages)),
		fmt.Sprintf("Admin: %t", snap.Admin),
	}
}

// Trace formats the events of a result for trace output.
func Trace(res types.Result) []string {
	if len(res.Events) == 0 {
		return nil
	}
	out := []string{fmt.Sprintf("[trace] Events: %d", len(res.Events))}
	for _, e := range res.Events {
		if len(e.Data) == 0 {
			out = append(out, fmt.Sprintf("[trace]   %s", e.Type))
			continue
		}
		out = append(out, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return out
}
