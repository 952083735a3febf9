package storefront

import (
	"context"
	"time"
)

// Role partitions accounts into the two marketplace populations.
type Role string

const (
	// RoleBuyer browses and purchases listings.
	RoleBuyer Role = "buyer"
	// RoleSeller additionally manages listings; seller-only views are
	// gated through [AccessGuard].
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// Identity is an authenticated account record. Email is unique within the
// directory, stored lowercased and sanitized. Identities are created on
// registration and otherwise read-only to this core.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IdentityDirectory is the external user directory the auth flows delegate
// to. Implementations own credential storage and verification; the core
// never holds or compares a password hash itself.
//
// Contract: FindByEmail and VerifyCredentials return [ErrUserNotFound] for
// unknown emails, VerifyCredentials returns [ErrInvalidCredentials] on a
// password mismatch, Create returns [ErrEmailExists] on a duplicate, and
// transport failures are wrapped with [ErrDirectoryUnavailable].
type IdentityDirectory interface {
	FindByEmail(ctx context.Context, email string) (Identity, error)
	Create(ctx context.Context, identity Identity, password string) (Identity, error)
	VerifyCredentials(ctx context.Context, email, password string) (Identity, error)
}
