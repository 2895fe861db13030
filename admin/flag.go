// Package admin holds the persisted capability flag that unlocks the
// privileged engine commands, and the stores it persists through.
package admin

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Flag is a persisted boolean. Every change is written through to the
// store before the call returns.
type Flag struct {
	mu     sync.RWMutex
	on     bool
	store  Store
	logger *slog.Logger
}

// New loads the persisted value. A load failure leaves the flag off and is
// returned alongside a usable Flag.
func New(ctx context.Context, store Store, logger *slog.Logger) (*Flag, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f := &Flag{store: store, logger: logger}
	on, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load admin flag", "error", err)
		return f, err
	}
	f.on = on
	return f, nil
}

// IsAdmin reports the current value. A nil Flag is never admin.
func (f *Flag) IsAdmin() bool {
	if f == nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.on
}

// Toggle flips the flag and returns the new value.
func (f *Flag) Toggle(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setLocked(ctx, !f.on)
}

// Grant turns the flag on.
func (f *Flag) Grant(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.setLocked(ctx, true)
	return err
}

// Revoke turns the flag off.
func (f *Flag) Revoke(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.setLocked(ctx, false)
	return err
}

// setLocked updates the in-memory value even when persisting fails.
func (f *Flag) setLocked(ctx context.Context, on bool) (bool, error) {
	f.on = on
	if err := f.store.Save(ctx, on); err != nil {
		f.logger.Error("Failed to persist admin flag", "admin", on, "error", err)
		return on, err
	}
	f.logger.Info("Admin flag changed", "admin", on)
	return on, nil
}
