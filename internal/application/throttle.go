package application

import (
	"sync"
	"time"
)

// Throttle rate-limits a zero-argument callback to at most one pending
// execution. Calls while a deferred execution is in flight are dropped,
// not queued; bursts collapse to a single trailing run. The callback is
// never invoked synchronously from Call.
type Throttle struct {
	mu   sync.Mutex
	busy bool

	fn       func()
	schedule func(func())
}

// NewThrottle wraps fn. The default scheduler defers execution to a
// later timer tick, which keeps Call cheap enough for high-frequency
// input events.
func NewThrottle(fn func()) *Throttle {
	return &Throttle{
		fn: fn,
		schedule: func(f func()) {
			time.AfterFunc(0, f)
		},
	}
}

// NewThrottleWithScheduler wraps fn with an explicit scheduler. Tests
// use this to drive deferred executions by hand.
func NewThrottleWithScheduler(fn func(), schedule func(func())) *Throttle {
	return &Throttle{fn: fn, schedule: schedule}
}

// Call requests an execution. A no-op while one is already pending; the
// busy mark clears only after the deferred execution completes.
func (t *Throttle) Call() {
	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return
	}
	t.busy = true
	t.mu.Unlock()

	t.schedule(func() {
		t.fn()
		t.mu.Lock()
		t.busy = false
		t.mu.Unlock()
	})
}
