package directory

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	storefront "github.com/tradewind-labs/storefront"
	"github.com/tradewind-labs/storefront/password"
)

const usersCollection = "users"

// Firestore keeps identities in a "users" collection, doc id = identity
// id, with the argon2id credential hash in the same document. Email
// uniqueness is enforced by a pre-create query; the document id remains the
// source of truth for the identity id.
type Firestore struct {
	client *firestore.Client
	hasher *password.Hasher
}

// NewFirestore wraps an existing Firestore client with default argon2id
// parameters.
func NewFirestore(client *firestore.Client) (*Firestore, error) {
	hasher, err := password.NewHasher(password.DefaultParams())
	if err != nil {
		return nil, err
	}
	return &Firestore{client: client, hasher: hasher}, nil
}

type userDoc struct {
	Email        string    `firestore:"email"`
	DisplayName  string    `firestore:"displayName"`
	Role         string    `firestore:"role"`
	CreatedAt    time.Time `firestore:"createdAt"`
	PasswordHash string    `firestore:"passwordHash"`
}

func (d userDoc) toIdentity(id string) storefront.Identity {
	return storefront.Identity{
		ID:          id,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		Role:        storefront.Role(d.Role),
		CreatedAt:   d.CreatedAt,
	}
}

func (f *Firestore) users() *firestore.CollectionRef {
	return f.client.Collection(usersCollection)
}

// FindByEmail implements [storefront.IdentityDirectory].
func (f *Firestore) FindByEmail(ctx context.Context, email string) (storefront.Identity, error) {
	identity, _, err := f.findByEmail(ctx, email)
	return identity, err
}

// Create implements [storefront.IdentityDirectory].
func (f *Firestore) Create(ctx context.Context, identity storefront.Identity, pw string) (storefront.Identity, error) {
	switch _, _, err := f.findByEmail(ctx, identity.Email); {
	case err == nil:
		return storefront.Identity{}, storefront.ErrEmailExists
	case err != storefront.ErrUserNotFound:
		return storefront.Identity{}, err
	}

	hash, err := f.hasher.Hash(pw)
	if err != nil {
		return storefront.Identity{}, err
	}

	doc := userDoc{
		Email:        identity.Email,
		DisplayName:  identity.DisplayName,
		Role:         string(identity.Role),
		CreatedAt:    identity.CreatedAt,
		PasswordHash: hash,
	}

	if _, err := f.users().Doc(identity.ID).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return storefront.Identity{}, storefront.ErrEmailExists
		}
		return storefront.Identity{}, fmt.Errorf("%w: %v", storefront.ErrDirectoryUnavailable, err)
	}
	return identity, nil
}

// VerifyCredentials implements [storefront.IdentityDirectory].
func (f *Firestore) VerifyCredentials(ctx context.Context, email, pw string) (storefront.Identity, error) {
	identity, hash, err := f.findByEmail(ctx, email)
	if err != nil {
		return storefront.Identity{}, err
	}

	match, err := f.hasher.Verify(pw, hash)
	if err != nil || !match {
		return storefront.Identity{}, storefront.ErrInvalidCredentials
	}
	return identity, nil
}

func (f *Firestore) findByEmail(ctx context.Context, email string) (storefront.Identity, string, error) {
	iter := f.users().
		Where("email", "==", normalizeEmail(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return storefront.Identity{}, "", storefront.ErrUserNotFound
	}
	if err != nil {
		return storefront.Identity{}, "", fmt.Errorf("%w: %v", storefront.ErrDirectoryUnavailable, err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return storefront.Identity{}, "", fmt.Errorf("%w: %v", storefront.ErrDirectoryUnavailable, err)
	}
	return doc.toIdentity(snap.Ref.ID), doc.PasswordHash, nil
}
