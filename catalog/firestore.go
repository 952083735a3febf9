package catalog

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const productsCollection = "products"

// Firestore reads listings from a "products" collection, doc id = product
// id. This is the remote document store variant of [Provider]; the shell
// owns the client lifecycle.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore wraps an existing Firestore client.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

type productDoc struct {
	SellerID    string    `firestore:"sellerId"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Price       float64   `firestore:"price"`
	Category    string    `firestore:"category"`
	Condition   string    `firestore:"condition"`
	Images      []string  `firestore:"images"`
	Quantity    int       `firestore:"quantity"`
	Status      string    `firestore:"status"`
	Tags        []string  `firestore:"tags"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func (d productDoc) toProduct(id string) Product {
	return Product{
		ID:          id,
		SellerID:    d.SellerID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Condition:   Condition(d.Condition),
		Images:      d.Images,
		Quantity:    d.Quantity,
		Status:      Status(d.Status),
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ProductByID implements [Provider].
func (f *Firestore) ProductByID(ctx context.Context, id string) (Product, error) {
	snap, err := f.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Product{}, ErrProductNotFound
		}
		return Product{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return doc.toProduct(snap.Ref.ID), nil
}

// ProductsBySeller implements [Provider].
func (f *Firestore) ProductsBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	iter := f.client.Collection(productsCollection).
		Where("sellerId", "==", sellerID).
		Documents(ctx)
	defer iter.Stop()

	var out []Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		out = append(out, doc.toProduct(snap.Ref.ID))
	}
	return out, nil
}
