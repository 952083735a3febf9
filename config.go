package storefront

import (
	"errors"
	"time"

	"github.com/tradewind-labs/storefront/cart"
	"github.com/tradewind-labs/storefront/internal/rate"
	"github.com/tradewind-labs/storefront/session"
)

// Config tunes the storefront client. Obtain a baseline from the builder's
// defaults (or [LoadConfig]) and override fields before Build; treat it as
// immutable afterwards.
type Config struct {
	RateLimit RateLimitConfig
	Login     LoginConfig
	Register  RegisterConfig
	Session   SessionConfig
	Cart      CartConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// RateLimitConfig bounds mutating auth attempts per email.
type RateLimitConfig struct {
	// MaxRequests admitted per key within one trailing Window.
	MaxRequests int
	Window      time.Duration
}

// LoginConfig tunes the login precheck. The real credential policy lives in
// the identity directory; this only rejects obviously unusable input before
// spending a directory round-trip.
type LoginConfig struct {
	MinPasswordLength int
}

// RegisterConfig bounds the sanitized display name.
type RegisterConfig struct {
	DisplayNameMin int
	DisplayNameMax int
}

// SessionConfig controls the durable session record.
type SessionConfig struct {
	// StorageKey names the kv key for the session record.
	StorageKey string
	// SigningKey, when set, switches the record to a signed HS256 token so
	// storage tampering is detected on rehydration. Empty means plain JSON.
	SigningKey []byte
}

// CartConfig controls cart persistence.
type CartConfig struct {
	StorageKey string
}

// AuditConfig controls the async audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is full.
	// Dropped events are counted and observable via [Client.AuditDropped].
	DropIfFull bool
}

// MetricsConfig toggles the internal counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the configuration Build uses when none is supplied.
// Callers that only want to override a field or two should start from here.
func DefaultConfig() Config {
	return Config{
		RateLimit: RateLimitConfig{
			MaxRequests: rate.DefaultMaxRequests,
			Window:      rate.DefaultWindow,
		},
		Login: LoginConfig{MinPasswordLength: 6},
		Register: RegisterConfig{
			DisplayNameMin: 2,
			DisplayNameMax: 50,
		},
		Session: SessionConfig{StorageKey: session.DefaultStorageKey},
		Cart:    CartConfig{StorageKey: cart.DefaultStorageKey},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate rejects configurations the client cannot run with.
func (c Config) Validate() error {
	if c.RateLimit.MaxRequests <= 0 {
		return errors.New("RateLimit.MaxRequests must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RateLimit.Window must be positive")
	}
	if c.Login.MinPasswordLength <= 0 {
		return errors.New("Login.MinPasswordLength must be positive")
	}
	if c.Register.DisplayNameMin <= 0 || c.Register.DisplayNameMax < c.Register.DisplayNameMin {
		return errors.New("Register display name bounds must satisfy 0 < min <= max")
	}
	if c.Session.StorageKey == "" {
		return errors.New("Session.StorageKey must not be empty")
	}
	if c.Cart.StorageKey == "" {
		return errors.New("Cart.StorageKey must not be empty")
	}
	if c.Cart.StorageKey == c.Session.StorageKey {
		return errors.New("Cart and Session storage keys must differ")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	return nil
}

func cloneConfig(c Config) Config {
	out := c
	out.Session.SigningKey = cloneBytes(c.Session.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
