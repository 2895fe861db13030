// Package schedule runs deferred tasks that the issuer can cancel.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a pending deferred call.
type Task interface {
	// Cancel stops the call if it has not run yet. Safe to call twice.
	Cancel()
}

// Scheduler runs fn once after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Real schedules on the runtime timer. fn runs on its own goroutine.
type Real struct{}

// After implements Scheduler.
func (Real) After(d time.Duration, fn func()) Task {
	return realTask{t: time.AfterFunc(d, fn)}
}

type realTask struct {
	t *time.Timer
}

func (r realTask) Cancel() {
	r.t.Stop()
}

// Manual is a deterministic scheduler driven by Advance. Tasks run on the
// goroutine that calls Advance or Flush.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m         *Manual
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.m.mu.Lock()
	t.cancelled = true
	t.m.mu.Unlock()
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()
	m.runUntil(now)
}

// Flush runs every pending task regardless of its due time.
func (m *Manual) Flush() {
	m.mu.Lock()
	var last time.Duration
	for _, t := range m.tasks {
		if t.due > last {
			last = t.due
		}
	}
	if last > m.now {
		m.now = last
	}
	now := m.now
	m.mu.Unlock()
	m.runUntil(now)
}

// Pending returns the number of tasks that are neither run nor cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (m *Manual) runUntil(now time.Duration) {
	for {
		m.mu.Lock()
		sort.SliceStable(m.tasks, func(i, j int) bool {
			if m.tasks[i].due != m.tasks[j].due {
				return m.tasks[i].due < m.tasks[j].due
			}
			return m.tasks[i].seq < m.tasks[j].seq
		})
		var next *manualTask
		kept := m.tasks[:0]
		for _, t := range m.tasks {
			switch {
			case t.cancelled:
				// dropped
			case next == nil && t.due <= now:
				next = t
			default:
				kept = append(kept, t)
			}
		}
		m.tasks = kept
		m.mu.Unlock()

		if next == nil {
			return
		}
		// Run outside the lock: fn may schedule more work.
		next.fn()
	}
}
