package session

import (
	"sync"
	"time"
)

// Watcher owns the single deferred action that ends a session at its expiry
// instant. Resetting replaces whatever was pending, so timers never stack
// across logins.
type Watcher struct {
	mu    sync.Mutex
	timer *time.Timer
	now   func() time.Time
	fn    func()
}

func NewWatcher(fn func()) *Watcher {
	return &Watcher{
		now: time.Now,
		fn:  fn,
	}
}

// Reset cancels any pending action and schedules the callback for
// expiresAt. A deadline already in the past fires the callback immediately,
// on the calling goroutine.
func (w *Watcher) Reset(expiresAt time.Time) {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	remaining := expiresAt.Sub(w.now())
	if remaining <= 0 {
		w.mu.Unlock()
		w.fn()
		return
	}

	w.timer = time.AfterFunc(remaining, w.fn)
	w.mu.Unlock()
}

// Stop cancels the pending action, if any. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}
