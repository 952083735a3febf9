package storefront

import (
	"context"

	"github.com/tradewind-labs/storefront/cart"
	"github.com/tradewind-labs/storefront/catalog"
	"github.com/tradewind-labs/storefront/internal/metrics"
)

// AddProductToCart looks the product up in the catalog, takes a sanitized
// snapshot, and adds quantity units of it to the cart. Products that are
// not active or have no stock are rejected with [ErrProductUnavailable];
// non-positive quantities are rejected before the catalog round-trip.
func (c *Client) AddProductToCart(ctx context.Context, productID string, quantity int) error {
	if c.catalog == nil {
		return ErrNoCatalog
	}
	if quantity <= 0 {
		return cart.ErrQuantityInvalid
	}

	product, err := c.catalog.ProductByID(ctx, productID)
	if err != nil {
		// ErrProductNotFound or a catalog.ErrUnavailable wrap; both are
		// already shaped for the caller.
		return err
	}
	if !product.Purchasable() {
		return ErrProductUnavailable
	}

	if err := c.cart.Add(ctx, catalog.Snapshot(product), quantity); err != nil {
		return err
	}
	c.metrics.Inc(metrics.CartTransition)
	return nil
}

// AddToCart adds quantity units of an already-fetched product snapshot.
// Callers that hold a live catalog product should prefer
// [Client.AddProductToCart], which snapshots for them.
func (c *Client) AddToCart(ctx context.Context, product catalog.Product, quantity int) error {
	if err := c.cart.Add(ctx, catalog.Snapshot(product), quantity); err != nil {
		return err
	}
	c.metrics.Inc(metrics.CartTransition)
	return nil
}

// RemoveFromCart deletes the line for productID; no-op when absent.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	if err := c.cart.Remove(ctx, productID); err != nil {
		return err
	}
	c.metrics.Inc(metrics.CartTransition)
	return nil
}

// UpdateCartQuantity overwrites the line's quantity; zero or negative
// removes the line.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID string, quantity int) error {
	if err := c.cart.SetQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	c.metrics.Inc(metrics.CartTransition)
	return nil
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	if err := c.cart.Clear(ctx); err != nil {
		return err
	}
	c.metrics.Inc(metrics.CartTransition)
	return nil
}

// Cart returns a deep copy of the current cart state.
func (c *Client) Cart() cart.State {
	return c.cart.State()
}

// CartItemCount returns the summed quantity across cart lines.
func (c *Client) CartItemCount() int {
	return c.cart.ItemCount()
}

// CartTotal returns the derived cart total.
func (c *Client) CartTotal() float64 {
	return c.cart.Total()
}

// SellerListings returns the catalog listings owned by sellerID. Read path
// for the seller dashboard; requires a catalog provider.
func (c *Client) SellerListings(ctx context.Context, sellerID string) ([]catalog.Product, error) {
	if c.catalog == nil {
		return nil, ErrNoCatalog
	}
	return c.catalog.ProductsBySeller(ctx, sellerID)
}
