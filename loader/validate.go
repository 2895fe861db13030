package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dragonsrealm/engine/grid"
	"github.com/nathoo/dragonsrealm/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// minRoomSize leaves at least one interior tile inside the wall ring.
const minRoomSize = 3

// validate checks the compiled defs for referential integrity and
// consistency, appending to ve. Rooms are visited in id order so messages
// are stable.
func validate(defs *state.Defs, ve *ValidationError) {
	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}

	roomIDs := state.RoomIDs(defs)
	for _, id := range roomIDs {
		room := defs.Rooms[id]
		if room.Width < minRoomSize || room.Height < minRoomSize {
			ve.errorf("room %q is %dx%d, minimum is %dx%d", id, room.Width, room.Height, minRoomSize, minRoomSize)
		}
		for _, p := range room.Portals {
			if !grid.InInterior(&room, p.Position) {
				ve.warnf("room %q portal %q at (%d, %d) is on the wall ring and cannot be reached by walking",
					id, p.ID, p.Position.X, p.Position.Y)
			}
			target, ok := defs.Rooms[p.TargetRoomID]
			if !ok {
				ve.errorf("room %q portal %q points to undefined room %q", id, p.ID, p.TargetRoomID)
				continue
			}
			if !grid.InInterior(&target, p.TargetPosition) {
				ve.warnf("room %q portal %q lands outside the interior of %q at (%d, %d)",
					id, p.ID, p.TargetRoomID, p.TargetPosition.X, p.TargetPosition.Y)
			}
		}
	}

	npcRooms := make([]string, 0, len(defs.NPCs))
	for roomID := range defs.NPCs {
		npcRooms = append(npcRooms, roomID)
	}
	sort.Strings(npcRooms)
	for _, roomID := range npcRooms {
		room, ok := defs.Rooms[roomID]
		for _, npc := range defs.NPCs[roomID] {
			if !ok {
				ve.errorf("NPC %q is placed in undefined room %q", npc.ID, roomID)
				continue
			}
			if !grid.InInterior(&room, npc.Position) {
				ve.warnf("NPC %q at (%d, %d) is outside the interior of %q",
					npc.ID, npc.Position.X, npc.Position.Y, roomID)
			}
		}
	}

	if defs.Game.Start == "" {
		ve.errorf("Game.start is required")
	} else if start, ok := state.Room(defs, defs.Game.Start); !ok {
		ve.errorf("start room %q not found in defined rooms", defs.Game.Start)
	} else if !grid.IsValidPosition(start, defs.NPCs[defs.Game.Start], defs.Game.StartPosition) {
		pos := defs.Game.StartPosition
		ve.errorf("start position (%d, %d) is not walkable in room %q", pos.X, pos.Y, defs.Game.Start)
	}

	for _, w := range defs.Welcome {
		if _, ok := state.FindNPC(defs, w.From); !ok {
			ve.errorf("welcome message sender %q is not a defined NPC", w.From)
		}
	}
}
