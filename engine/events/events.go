// Package events names the events engine commands emit and dispatches them
// to subscribed handlers. Dispatch is single pass: handlers observe events
// but never produce new ones.
package events

import "github.com/nathoo/dragonsrealm/types"

// Event types.
const (
	PlayerMoved  = "player_moved"
	PlayerTurned = "player_turned" // blocked move, facing changed only
	WalkStopped  = "walk_stopped"
	RoomEntered  = "room_entered"
	ItemUsed     = "item_used"
	ItemEquipped = "item_equipped"
	ItemDropped  = "item_dropped"
	ItemPickedUp = "item_picked_up"
	MessageSent  = "message_sent"
	ItemGiven    = "item_given"
	StatsChanged = "stats_changed"
	Teleported   = "teleported"
	GoldChanged  = "gold_changed"
)

// Handler observes one event.
type Handler struct {
	// EventType filters events; empty matches every type.
	EventType string
	Fn        func(types.Event)
}

// New builds an event from alternating key/value pairs.
func New(eventType string, kv ...any) types.Event {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return types.Event{Type: eventType, Data: data}
}

// Dispatch calls every matching handler for each event, in handler order.
func Dispatch(evts []types.Event, handlers []Handler) int {
	calls := 0
	for _, event := range evts {
		for _, handler := range handlers {
			if handler.EventType != "" && handler.EventType != event.Type {
				continue
			}
			if handler.Fn == nil {
				continue
			}
			handler.Fn(event)
			calls++
		}
	}
	return calls
}

// Types returns the event types in order, for tracing.
func Types(evts []types.Event) []string {
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.Type
	}
	return out
}
