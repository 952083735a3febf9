// Package catalog exposes the read-only product directory the storefront
// client consumes. Cart lines store snapshot copies of products taken at
// add time, never live references into the catalog.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrProductNotFound reports a lookup for an id the directory does not hold.
var ErrProductNotFound = errors.New("catalog: product not found")

// ErrUnavailable wraps transport failures of a remote catalog backing.
var ErrUnavailable = errors.New("catalog: backend unavailable")

// Condition describes the physical state of a listed product.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// Status is the listing lifecycle state. Only active products are
// purchasable.
type Status string

const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusInactive Status = "inactive"
)

// Product is a marketplace listing. The storefront core never mutates
// products; sellers manage them through their own surface.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Condition   Condition `json:"condition"`
	Images      []string  `json:"images"`
	Quantity    int       `json:"quantity"`
	Status      Status    `json:"status"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Purchasable reports whether the listing can currently be added to a cart.
func (p Product) Purchasable() bool {
	return p.Status == StatusActive && p.Quantity > 0
}

// Provider is the abstract product directory contract. Implementations must
// return [ErrProductNotFound] for unknown ids and wrap transport failures
// with [ErrUnavailable].
type Provider interface {
	ProductByID(ctx context.Context, id string) (Product, error)
	ProductsBySeller(ctx context.Context, sellerID string) ([]Product, error)
}
