package catalog

import (
	"context"
	"sync"
)

// Memory is a map-backed [Provider] for tests and local shells.
type Memory struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewMemory returns a provider seeded with the given products.
func NewMemory(products ...Product) *Memory {
	m := &Memory{products: make(map[string]Product, len(products))}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

// Put inserts or replaces a listing.
func (m *Memory) Put(p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// ProductByID implements [Provider].
func (m *Memory) ProductByID(_ context.Context, id string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

// ProductsBySeller implements [Provider].
func (m *Memory) ProductsBySeller(_ context.Context, sellerID string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Product
	for _, p := range m.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}
