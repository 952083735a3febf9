// Package rate implements the sliding-window admission control that gates
// the mutating auth operations.
package rate

import (
	"sync"
	"time"
)

const (
	// DefaultMaxRequests admitted per key within one window.
	DefaultMaxRequests = 10
	// DefaultWindow is the trailing interval requests are counted over.
	DefaultWindow = time.Minute

	// Every sweepEvery Allow calls the limiter drops keys whose window has
	// emptied, so long-lived processes do not accumulate idle keys.
	sweepEvery = 512
)

// Limiter admits at most max events per trailing window per key. Each key's
// window is independent; a denied call is not recorded, so being rate
// limited does not extend the lockout.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time

	windows map[string][]time.Time
	checks  int
}

// New creates a limiter. Non-positive arguments fall back to the defaults.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		windows: make(map[string][]time.Time),
	}
}

// SetClock replaces the time source. Test hook.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Allow reports whether key may proceed, recording the attempt when it may.
// Timestamps older than the window are pruned first.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := pruneBefore(l.windows[key], cutoff)

	l.checks++
	if l.checks >= sweepEvery {
		l.checks = 0
		l.sweepLocked(cutoff)
	}

	if len(recent) >= l.max {
		l.windows[key] = recent
		return false
	}

	l.windows[key] = append(recent, now)
	return true
}

// Remaining returns how many attempts key has left in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := pruneBefore(l.windows[key], l.now().Add(-l.window))
	if len(recent) >= l.max {
		return 0
	}
	return l.max - len(recent)
}

// Keys returns the number of tracked keys. Test hook for the sweep.
func (l *Limiter) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *Limiter) sweepLocked(cutoff time.Time) {
	for key, stamps := range l.windows {
		if len(pruneBefore(stamps, cutoff)) == 0 {
			delete(l.windows, key)
		}
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	// Timestamps are appended in order; find the first one still inside the
	// window and drop everything before it.
	for i, ts := range stamps {
		if ts.After(cutoff) {
			return stamps[i:]
		}
	}
	return nil
}
