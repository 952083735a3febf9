package rate

import (
	"fmt"
	"testing"
	"time"
)

func newFakeClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}

func TestAllowExactlyMaxWithinWindow(t *testing.T) {
	l := New(3, time.Minute)
	clock, now := newFakeClock(time.Unix(1_700_000_000, 0))
	l.SetClock(now)

	for i := 0; i < 3; i++ {
		if !l.Allow("login_a@example.com") {
			t.Fatalf("attempt %d unexpectedly denied", i+1)
		}
		*clock = clock.Add(time.Second)
	}

	if l.Allow("login_a@example.com") {
		t.Fatal("4th attempt within window should be denied")
	}
	// Denied attempts are not recorded, so repeating the check stays denied
	// without pushing the window out.
	if l.Allow("login_a@example.com") {
		t.Fatal("repeat attempt should still be denied")
	}
}

func TestWindowSlides(t *testing.T) {
	l := New(2, time.Minute)
	clock, now := newFakeClock(time.Unix(1_700_000_000, 0))
	l.SetClock(now)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("budget should allow two attempts")
	}
	if l.Allow("k") {
		t.Fatal("third attempt should be denied")
	}

	*clock = clock.Add(61 * time.Second)
	if !l.Allow("k") {
		t.Fatal("attempt after window elapsed should be allowed")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	l.SetClock(func() time.Time { return time.Unix(1_700_000_000, 0) })

	if !l.Allow("login_a") {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("login_a") {
		t.Fatal("first key should now be exhausted")
	}
	if !l.Allow("login_b") {
		t.Fatal("second key must have its own window")
	}
}

func TestRemaining(t *testing.T) {
	l := New(3, time.Minute)
	l.SetClock(func() time.Time { return time.Unix(1_700_000_000, 0) })

	if got := l.Remaining("k"); got != 3 {
		t.Fatalf("fresh key Remaining = %d, want 3", got)
	}
	l.Allow("k")
	l.Allow("k")
	if got := l.Remaining("k"); got != 1 {
		t.Fatalf("Remaining = %d, want 1", got)
	}
}

func TestSweepDropsIdleKeys(t *testing.T) {
	l := New(5, time.Minute)
	clock, now := newFakeClock(time.Unix(1_700_000_000, 0))
	l.SetClock(now)

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("key-%d", i))
	}
	if got := l.Keys(); got != 100 {
		t.Fatalf("expected 100 tracked keys, got %d", got)
	}

	// Let every window empty, then drive enough checks to trigger the sweep.
	*clock = clock.Add(2 * time.Minute)
	for i := 0; i < sweepEvery; i++ {
		l.Allow("active")
	}

	if got := l.Keys(); got > 2 {
		t.Fatalf("expected idle keys swept, still tracking %d", got)
	}
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	if l.max != DefaultMaxRequests || l.window != DefaultWindow {
		t.Fatalf("defaults not applied: max=%d window=%v", l.max, l.window)
	}
}
