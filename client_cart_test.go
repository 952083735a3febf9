package storefront_test

import (
	"context"
	"errors"
	"testing"

	storefront "github.com/tradewind-labs/storefront"
	"github.com/tradewind-labs/storefront/cart"
	"github.com/tradewind-labs/storefront/catalog"
	"github.com/tradewind-labs/storefront/kv"
)

func seedCatalog(t *testing.T) *catalog.Memory {
	t.Helper()
	provider := catalog.NewMemory()
	provider.Put(catalog.Product{
		ID:       "prod-1",
		Title:    "Streaming Plus",
		Price:    10,
		SellerID: "seller-1",
		Status:   catalog.StatusActive,
		Quantity: 5,
	})
	provider.Put(catalog.Product{
		ID:       "prod-2",
		Title:    "News Daily",
		Price:    4.5,
		SellerID: "seller-1",
		Status:   catalog.StatusActive,
		Quantity: 2,
	})
	provider.Put(catalog.Product{
		ID:       "prod-sold",
		Title:    "Gone",
		Price:    99,
		SellerID: "seller-2",
		Status:   catalog.StatusSold,
		Quantity: 0,
	})
	return provider
}

func TestAddProductToCartAccumulates(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), seedCatalog(t))

	if err := client.AddProductToCart(ctx, "prod-1", 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := client.AddProductToCart(ctx, "prod-1", 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	state := client.Cart()
	if len(state.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(state.Lines))
	}
	if state.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", state.Lines[0].Quantity)
	}
	if state.Total != 30 {
		t.Fatalf("expected total 30, got %v", state.Total)
	}
	if client.CartItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", client.CartItemCount())
	}

	if err := client.RemoveFromCart(ctx, "prod-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if client.CartTotal() != 0 || client.CartItemCount() != 0 {
		t.Fatalf("expected empty cart, got total=%v count=%d", client.CartTotal(), client.CartItemCount())
	}
}

func TestAddProductToCartRejections(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), seedCatalog(t))

	if err := client.AddProductToCart(ctx, "nope", 1); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("unknown product: got %v", err)
	}
	if err := client.AddProductToCart(ctx, "prod-sold", 1); !errors.Is(err, storefront.ErrProductUnavailable) {
		t.Fatalf("sold product: got %v", err)
	}
	if err := client.AddProductToCart(ctx, "prod-1", 0); !errors.Is(err, cart.ErrQuantityInvalid) {
		t.Fatalf("zero quantity: got %v", err)
	}
	if count := client.CartItemCount(); count != 0 {
		t.Fatalf("rejected adds must not touch the cart, count=%d", count)
	}
}

func TestAddProductWithoutCatalog(t *testing.T) {
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), nil)

	if err := client.AddProductToCart(context.Background(), "prod-1", 1); !errors.Is(err, storefront.ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	dir := newTestDirectory(t)
	provider := seedCatalog(t)

	first := newTestClient(t, storage, dir, provider)
	if err := first.AddProductToCart(ctx, "prod-1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := first.AddProductToCart(ctx, "prod-2", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	second := newTestClient(t, storage, dir, provider)
	state := second.Cart()
	if len(state.Lines) != 2 {
		t.Fatalf("expected two restored lines, got %d", len(state.Lines))
	}
	// Total is recomputed from the restored lines, never trusted from disk.
	if state.Total != 24.5 {
		t.Fatalf("expected total 24.5, got %v", state.Total)
	}
	if second.CartItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", second.CartItemCount())
	}
}

func TestUpdateCartQuantityRemovesAtZero(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), seedCatalog(t))

	if err := client.AddProductToCart(ctx, "prod-1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := client.UpdateCartQuantity(ctx, "prod-1", 0); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(client.Cart().Lines) != 0 {
		t.Fatal("quantity zero must drop the line")
	}
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), seedCatalog(t))

	if err := client.AddProductToCart(ctx, "prod-1", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := client.ClearCart(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if client.CartTotal() != 0 {
		t.Fatalf("expected empty cart, total=%v", client.CartTotal())
	}
}

func TestSellerListings(t *testing.T) {
	client := newTestClient(t, kv.NewMemory(), newTestDirectory(t), seedCatalog(t))

	listings, err := client.SellerListings(context.Background(), "seller-1")
	if err != nil {
		t.Fatalf("SellerListings failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
}
