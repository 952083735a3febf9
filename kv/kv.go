// Package kv defines the durable key-value contract the storefront core
// persists through, together with in-memory, file, and Redis backings.
//
// The core stores two independent records through this interface: the current
// session and the cart line list. Payloads are opaque strings (JSON at the
// call sites); the store never inspects them. An absent key is reported as
// ok=false with a nil error, never as an error.
package kv

import (
	"context"
	"errors"
)

// ErrUnavailable wraps transport failures of a remote backing. Absent keys
// are not errors; only a backing that cannot be reached reports this.
var ErrUnavailable = errors.New("kv: storage unavailable")

// Store is the persistence contract consumed by the storefront core.
type Store interface {
	// Get returns the value for key, ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
