// Package session maintains the client's durable record of the currently
// authenticated identity. The record survives process restarts through the
// kv contract and is dropped, never trusted, when it fails to decode.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tradewind-labs/storefront/kv"
)

// DefaultStorageKey is the kv key the session record is persisted under.
const DefaultStorageKey = "storefront-session"

// Record is the persisted identity reference. CreatedAt travels as an
// RFC 3339 string and is reconstructed to a time value on read.
type Record struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store holds the in-memory session alongside its durable record. With a
// signing key the record is written as an HS256 token so any tampering with
// the underlying storage shows up as a decode failure; without one it is
// plain JSON.
type Store struct {
	mu         sync.Mutex
	storage    kv.Store
	key        string
	signingKey []byte
	log        *slog.Logger
	current    *Record
}

// NewStore creates an unauthenticated store. Call [Store.Hydrate] once at
// startup, before anything consults [Store.Current].
func NewStore(storage kv.Store, key string, signingKey []byte, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:    storage,
		key:        key,
		signingKey: signingKey,
		log:        logger,
	}
}

// Hydrate restores the persisted session, if any. A record that fails to
// decode (malformed JSON, bad signature, missing identity) is removed from
// storage and the process starts unauthenticated; only a storage transport
// failure is returned as an error, and even then the store stays
// unauthenticated (fail closed).
func (s *Store) Hydrate(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("session: hydrate: %w", err)
	}
	if !ok {
		return nil, nil
	}

	rec, err := s.decode(raw)
	if err != nil {
		s.log.Warn("discarding malformed session record", "key", s.key, "error", err)
		if rmErr := s.storage.Remove(ctx, s.key); rmErr != nil {
			s.log.Warn("failed to remove malformed session record", "key", s.key, "error", rmErr)
		}
		return nil, nil
	}

	s.current = &rec
	out := rec
	return &out, nil
}

// Set makes rec the current session and writes it through to storage. The
// in-memory session is updated even when the durable write fails.
func (s *Store) Set(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := rec
	s.current = &copied

	encoded, err := s.encode(rec)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}

// Clear drops the session in memory and in storage. The in-memory clear is
// unconditional; a storage failure is reported but leaves the process
// logged out.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Current returns a copy of the in-memory session, ok=false when
// unauthenticated.
func (s *Store) Current() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Record{}, false
	}
	return *s.current, true
}
