// Package chatlog holds the bounded message log.
package chatlog

import "github.com/nathoo/dragonsrealm/types"

// DefaultHistory is how many earlier messages survive an append.
const DefaultHistory = 50

// Log keeps the most recent messages. After an append it holds at most
// history+1 entries: the retained history plus the new message.
type Log struct {
	entries []types.ChatMessage
	history int
}

// New creates a log retaining history earlier messages on each append.
func New(history int) *Log {
	if history < 0 {
		history = 0
	}
	return &Log{history: history}
}

// Append truncates the log to the last history entries and appends msg.
func (l *Log) Append(msg types.ChatMessage) {
	if len(l.entries) > l.history {
		kept := make([]types.ChatMessage, l.history, l.history+1)
		copy(kept, l.entries[len(l.entries)-l.history:])
		l.entries = kept
	}
	l.entries = append(l.entries, msg)
}

// Messages returns a copy of the log, oldest first.
func (l *Log) Messages() []types.ChatMessage {
	out := make([]types.ChatMessage, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.entries)
}

// Cap returns the maximum number of messages the log can hold.
func (l *Log) Cap() int {
	return l.history + 1
}
