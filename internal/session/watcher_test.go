package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_FiresOnceAtExpiry(t *testing.T) {
	var fired atomic.Int32
	w := NewWatcher(func() { fired.Add(1) })
	defer w.Stop()

	w.Reset(time.Now().Add(20 * time.Millisecond))

	deadline := time.After(time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected the expiry action to fire")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one fire, got %d", got)
	}
}

func TestWatcher_ImmediateWhenAlreadyPast(t *testing.T) {
	var fired atomic.Int32
	w := NewWatcher(func() { fired.Add(1) })
	defer w.Stop()

	w.Reset(time.Now().Add(-time.Second))

	if got := fired.Load(); got != 1 {
		t.Errorf("expected immediate fire for past deadline, got %d", got)
	}
}

func TestWatcher_ResetReplacesPendingAction(t *testing.T) {
	var fired atomic.Int32
	w := NewWatcher(func() { fired.Add(1) })
	defer w.Stop()

	// The first deadline would fire quickly; replacing it must cancel it.
	w.Reset(time.Now().Add(30 * time.Millisecond))
	w.Reset(time.Now().Add(time.Hour))

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected replaced action not to fire, got %d fires", got)
	}
}

func TestWatcher_StopCancels(t *testing.T) {
	var fired atomic.Int32
	w := NewWatcher(func() { fired.Add(1) })

	w.Reset(time.Now().Add(30 * time.Millisecond))
	w.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no fire after stop, got %d", got)
	}

	// Stop with nothing pending is fine.
	w.Stop()
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "expired at zero", d: 0, want: "Expired"},
		{name: "expired when negative", d: -5 * time.Second, want: "Expired"},
		{name: "seconds padded", d: 65 * time.Second, want: "1:05"},
		{name: "under a minute", d: 3 * time.Second, want: "0:03"},
		{name: "full session", d: 30 * time.Minute, want: "30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.d); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestSessionValid(t *testing.T) {
	now := time.Now()

	s := Session{Token: "tok", ExpiresAt: now.Add(time.Minute)}
	if !s.Valid(now) {
		t.Error("expected session with future expiry to be valid")
	}
	if s.Valid(now.Add(time.Minute)) {
		t.Error("expected session to be invalid at its expiry instant")
	}
	if (Session{ExpiresAt: now.Add(time.Minute)}).Valid(now) {
		t.Error("expected session without token to be invalid")
	}
}
