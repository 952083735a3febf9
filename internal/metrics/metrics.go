// Package metrics holds the client's lock-free operation counters.
package metrics

import "sync/atomic"

// ID names one counter.
type ID uint16

const (
	LoginSuccess ID = iota
	LoginFailure
	LoginRateLimited
	RegisterSuccess
	RegisterFailure
	RegisterRateLimited
	Logout
	SessionRestored
	SessionCorrupt
	CartTransition
	CartHydrateCorrupt
	GuardDenied

	// IDCount sizes the counter array; keep it last.
	IDCount
)

// Metrics is a fixed set of atomic counters. A disabled instance keeps the
// call sites branch-free: Inc becomes a no-op and Snapshot returns nil.
type Metrics struct {
	enabled  bool
	counters [IDCount]atomic.Uint64
}

// New returns a counter set. Pass enabled=false to turn the whole surface
// into no-ops without nil checks at call sites.
func New(enabled bool) *Metrics {
	return &Metrics{enabled: enabled}
}

// Inc bumps one counter.
func (m *Metrics) Inc(id ID) {
	if m == nil || !m.enabled || id >= IDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot copies the current counter values. Returns nil when disabled.
func (m *Metrics) Snapshot() map[ID]uint64 {
	if m == nil || !m.enabled {
		return nil
	}
	out := make(map[ID]uint64, IDCount)
	for id := ID(0); id < IDCount; id++ {
		out[id] = m.counters[id].Load()
	}
	return out
}
