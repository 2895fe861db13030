// Package engine owns the session state and exposes the game commands.
// Every command is synchronous: its effect is visible to the next read.
package engine

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/dragonsrealm/admin"
	"github.com/nathoo/dragonsrealm/engine/chatlog"
	"github.com/nathoo/dragonsrealm/engine/events"
	"github.com/nathoo/dragonsrealm/engine/schedule"
	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/types"
)

// ErrNotAdmin is returned by privileged commands when the admin flag is off.
var ErrNotAdmin = errors.New("admin privileges required")

// Defaults.
const (
	DefaultWalkDuration     = 200 * time.Millisecond
	DefaultMaxMessageLength = 140
)

// Engine holds the catalog and the mutable session state.
type Engine struct {
	mu    sync.Mutex
	defs  *state.Defs
	state *state.State

	admin        *admin.Flag
	sched        schedule.Scheduler
	now          func() time.Time
	newID        func() string
	logger       *slog.Logger
	walkDuration time.Duration
	maxMessage   int
	history      int

	walkReset schedule.Task
	walkGen   uint64
	handlers  []events.Handler
}

// Option configures an Engine.
type Option func(*Engine)

// WithAdmin injects the capability flag that gates privileged commands.
func WithAdmin(f *admin.Flag) Option { return func(e *Engine) { e.admin = f } }

// WithScheduler replaces the timer used for the walking-flag reset.
func WithScheduler(s schedule.Scheduler) Option { return func(e *Engine) { e.sched = s } }

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithIDs replaces the id generator.
func WithIDs(newID func() string) Option { return func(e *Engine) { e.newID = newID } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithWalkDuration sets how long the walking flag stays on after a move.
func WithWalkDuration(d time.Duration) Option { return func(e *Engine) { e.walkDuration = d } }

// WithMaxMessageLength sets the chat message limit in runes.
func WithMaxMessageLength(n int) Option { return func(e *Engine) { e.maxMessage = n } }

// WithMessageHistory sets how many prior messages the log retains.
func WithMessageHistory(n int) Option { return func(e *Engine) { e.history = n } }

// New creates an engine with a fresh session built from defs.
func New(defs *state.Defs, opts ...Option) *Engine {
	e := &Engine{
		defs:         defs,
		sched:        schedule.Real{},
		now:          time.Now,
		newID:        uuid.NewString,
		walkDuration: DefaultWalkDuration,
		maxMessage:   DefaultMaxMessageLength,
		history:      chatlog.DefaultHistory,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.state = state.NewState(defs, e.newID, e.history, e.now())
	return e
}

// Defs returns the immutable catalog.
func (e *Engine) Defs() *state.Defs { return e.defs }

// IsAdmin reports whether privileged commands are unlocked.
func (e *Engine) IsAdmin() bool { return e.admin.IsAdmin() }

// Admin returns the injected flag, which may be nil.
func (e *Engine) Admin() *admin.Flag { return e.admin }

// Subscribe registers a handler for emitted events. Handlers run after the
// command releases the engine lock, so they may read from the engine.
func (e *Engine) Subscribe(h events.Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, h)
}

// Snapshot is a deep copy of everything a renderer needs.
type Snapshot struct {
	Player    types.Player
	RoomID    string
	Room      types.Room
	NPCs      []types.Player
	Dropped   []types.DroppedItem
	Inventory []types.InventoryItem
	Gold      int
	Messages  []types.ChatMessage
	Admin     bool
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Player:    e.state.Player,
		RoomID:    e.state.RoomID,
		NPCs:      state.NPCsIn(e.defs, e.state.RoomID),
		Dropped:   state.DroppedIn(e.state, e.state.RoomID),
		Inventory: e.state.Inventory.Items(),
		Gold:      e.state.Gold,
		Messages:  e.state.Messages.Messages(),
		Admin:     e.admin.IsAdmin(),
	}
	if room, ok := state.CurrentRoom(e.state, e.defs); ok {
		snap.Room = copyRoom(*room)
	}
	return snap
}

// CurrentRoom returns a copy of the room the player is in.
func (e *Engine) CurrentRoom() (types.Room, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	room, ok := state.CurrentRoom(e.state, e.defs)
	if !ok {
		return types.Room{}, false
	}
	return copyRoom(*room), true
}

// Player returns a copy of the player record.
func (e *Engine) Player() types.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Player
}

// Gold returns the current gold total.
func (e *Engine) Gold() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Gold
}

// Inventory returns a copy of the inventory stacks.
func (e *Engine) Inventory() []types.InventoryItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Inventory.Items()
}

// Messages returns a copy of the message log.
func (e *Engine) Messages() []types.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Messages.Messages()
}

// run executes fn under the lock and dispatches its events afterwards.
func (e *Engine) run(fn func() types.Result) types.Result {
	e.mu.Lock()
	res := fn()
	handlers := e.handlers
	e.mu.Unlock()
	events.Dispatch(res.Events, handlers)
	return res
}

// systemMessage appends an engine-authored line to the log. Caller holds mu.
func (e *Engine) systemMessage(text string) {
	e.state.Messages.Append(types.ChatMessage{
		ID:         e.newID(),
		PlayerID:   state.SystemID,
		PlayerName: state.SystemName,
		Message:    text,
		Timestamp:  e.now(),
	})
}

func copyRoom(r types.Room) types.Room {
	floor := make([][]types.Tile, len(r.Floor))
	for i, row := range r.Floor {
		floor[i] = append([]types.Tile(nil), row...)
	}
	r.Floor = floor
	r.Furniture = append([]types.Furniture(nil), r.Furniture...)
	r.Portals = append([]types.Portal(nil), r.Portals...)
	r.Players = append([]types.Player(nil), r.Players...)
	return r
}
