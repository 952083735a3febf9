// Package directory provides identity directory implementations for the
// storefront client: an in-memory directory for tests and local shells, and
// a Firestore-backed one for deployments using the remote document store.
//
// Both store credentials exclusively as argon2id hashes; plaintext
// passwords exist only in transit through VerifyCredentials and Create.
package directory

import (
	"context"
	"strings"
	"sync"

	storefront "github.com/tradewind-labs/storefront"
	"github.com/tradewind-labs/storefront/password"
)

type memoryRecord struct {
	identity     storefront.Identity
	passwordHash string
}

// Memory is a map-backed [storefront.IdentityDirectory].
type Memory struct {
	mu      sync.RWMutex
	hasher  *password.Hasher
	byEmail map[string]memoryRecord
}

// NewMemory creates an empty directory with default argon2id parameters.
func NewMemory() (*Memory, error) {
	return NewMemoryWithParams(password.DefaultParams())
}

// NewMemoryWithParams creates an empty directory with explicit hashing
// parameters. Tests use the minimum legal cost to stay fast.
func NewMemoryWithParams(params password.Params) (*Memory, error) {
	hasher, err := password.NewHasher(params)
	if err != nil {
		return nil, err
	}
	return &Memory{
		hasher:  hasher,
		byEmail: make(map[string]memoryRecord),
	}, nil
}

// FindByEmail implements [storefront.IdentityDirectory].
func (m *Memory) FindByEmail(_ context.Context, email string) (storefront.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return storefront.Identity{}, storefront.ErrUserNotFound
	}
	return rec.identity, nil
}

// Create implements [storefront.IdentityDirectory]. The password is hashed
// before the record is stored.
func (m *Memory) Create(_ context.Context, identity storefront.Identity, pw string) (storefront.Identity, error) {
	hash, err := m.hasher.Hash(pw)
	if err != nil {
		return storefront.Identity{}, err
	}

	key := normalizeEmail(identity.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[key]; exists {
		return storefront.Identity{}, storefront.ErrEmailExists
	}
	m.byEmail[key] = memoryRecord{identity: identity, passwordHash: hash}
	return identity, nil
}

// VerifyCredentials implements [storefront.IdentityDirectory].
func (m *Memory) VerifyCredentials(_ context.Context, email, pw string) (storefront.Identity, error) {
	m.mu.RLock()
	rec, ok := m.byEmail[normalizeEmail(email)]
	m.mu.RUnlock()

	if !ok {
		return storefront.Identity{}, storefront.ErrUserNotFound
	}

	match, err := m.hasher.Verify(pw, rec.passwordHash)
	if err != nil || !match {
		return storefront.Identity{}, storefront.ErrInvalidCredentials
	}
	return rec.identity, nil
}

// PasswordHash exposes the stored hash for an email. Test hook; it lets
// tests assert that plaintext never reaches storage.
func (m *Memory) PasswordHash(email string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byEmail[normalizeEmail(email)]
	return rec.passwordHash, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
