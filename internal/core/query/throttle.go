package query

import (
	"sync"
	"time"
)

// throttle rate-limits a task to one run per cooldown with trailing
// edge semantics: a call during the cooldown stores the latest fn and
// arms a timer that fires it once the cooldown elapses. Fires run on
// their own goroutine so callers never block.
type throttle struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     time.Time
	timer    *time.Timer
	pending  func()
}

func newThrottle(cooldown time.Duration) *throttle {
	return &throttle{cooldown: cooldown}
}

func (t *throttle) Do(fn func()) {
	t.mu.Lock()
	now := time.Now()
	if now.Sub(t.last) >= t.cooldown {
		t.last = now
		t.mu.Unlock()
		go fn()
		return
	}
	t.pending = fn
	if t.timer == nil {
		t.timer = time.AfterFunc(t.cooldown-now.Sub(t.last), t.fire)
	}
	t.mu.Unlock()
}

func (t *throttle) fire() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()
	if fn != nil {
		go fn()
	}
}
