package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tradewind-labs/storefront/catalog"
	"github.com/tradewind-labs/storefront/kv"
)

// DefaultStorageKey is the kv key the line list is persisted under.
const DefaultStorageKey = "subscription-marketplace-cart"

// Store wraps the reducer with write-through persistence. Every transition
// runs atomically under the store lock: reduce, replace the held state,
// write the full line list (never the derived total) to storage.
//
// Transitions always apply in memory even when the persistence write fails;
// the returned error only reports that durability is behind.
type Store struct {
	mu      sync.Mutex
	storage kv.Store
	key     string
	log     *slog.Logger
	state   State
}

// NewStore creates an empty cart store. Call [Store.Hydrate] once at
// startup before serving reads.
func NewStore(storage kv.Store, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, key: key, log: logger}
}

// Hydrate loads the persisted line list and recomputes the total from it.
// A missing or malformed record yields an empty cart: the payload is a
// cache, so corruption is logged at warn and discarded, never surfaced.
// Hydrate reports whether a persisted cart was restored.
func (s *Store) Hydrate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("cart: hydrate: %w", err)
	}
	if !ok {
		return false, nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.log.Warn("discarding malformed cart record", "key", s.key, "error", err)
		s.state = State{}
		return false, nil
	}

	// The only transition allowed to set lines wholesale. Total is always
	// recomputed here, never trusted from storage.
	s.state = reduce(s.state, loadLines{lines: lines})
	return true, nil
}

// Add appends a line for the product or increments an existing line's
// quantity. The product should already be a snapshot copy.
func (s *Store) Add(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityInvalid
	}
	return s.apply(ctx, addItem{product: product, quantity: quantity})
}

// Remove deletes the line for productID; no-op when absent.
func (s *Store) Remove(ctx context.Context, productID string) error {
	return s.apply(ctx, removeItem{productID: productID})
}

// SetQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line, identical to [Store.Remove].
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	return s.apply(ctx, updateQuantity{productID: productID, quantity: quantity})
}

// Clear resets the cart to empty.
func (s *Store) Clear(ctx context.Context) error {
	return s.apply(ctx, clearCart{})
}

// State returns a deep copy of the current cart value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Lines: copyLines(s.state.Lines), Total: s.state.Total}
}

// ItemCount returns the summed quantity across lines, computed on demand.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount()
}

// Total returns the current derived total.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total
}

// Flush rewrites the persisted line list. Shutdown hook; append-only shells
// do not need it because every transition already wrote through.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) apply(ctx context.Context, act action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state, act)
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	lines := s.state.Lines
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(payload)); err != nil {
		s.log.Warn("cart write-through failed", "key", s.key, "error", err)
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}

func copyLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = line
		out[i].Product = copyProduct(line.Product)
	}
	return out
}

func copyProduct(p catalog.Product) catalog.Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
