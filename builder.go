package storefront

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tradewind-labs/storefront/cart"
	"github.com/tradewind-labs/storefront/catalog"
	"github.com/tradewind-labs/storefront/internal/metrics"
	"github.com/tradewind-labs/storefront/internal/rate"
	"github.com/tradewind-labs/storefront/kv"
	"github.com/tradewind-labs/storefront/session"
)

// Builder assembles a [Client]. Construction is allocation-only until
// Build, which validates the configuration, wires the stores, and performs
// the one-time session and cart rehydration.
type Builder struct {
	config    Config
	storage   kv.Store
	directory IdentityDirectory
	catalog   catalog.Provider
	logger    *slog.Logger
	auditSink AuditSink
	built     bool
}

// New returns a builder carrying the default configuration.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage sets the durable key-value backing for session and cart
// records. Required.
func (b *Builder) WithStorage(store kv.Store) *Builder {
	b.storage = store
	return b
}

// WithDirectory sets the identity directory collaborator. Required.
func (b *Builder) WithDirectory(dir IdentityDirectory) *Builder {
	b.directory = dir
	return b
}

// WithCatalog sets the product directory. Optional; without it the
// catalog-backed cart conveniences return [ErrNoCatalog].
func (b *Builder) WithCatalog(provider catalog.Provider) *Builder {
	b.catalog = provider
	return b
}

// WithLogger sets the structured logger. Defaults to [slog.Default].
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the audit destination; events flow only when
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the internal counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build wires the client and rehydrates persisted state. The session and
// cart are restored (or failed closed to unauthenticated/empty) before
// Build returns, so a shell can render immediately afterwards without a
// flash of wrong state. A builder builds at most once.
func (b *Builder) Build(ctx context.Context) (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.storage == nil {
		return nil, errors.New("storage backing required")
	}
	if b.directory == nil {
		return nil, errors.New("identity directory required")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		config:    cfg,
		log:       logger,
		directory: b.directory,
		catalog:   b.catalog,
		sessions:  session.NewStore(b.storage, cfg.Session.StorageKey, cfg.Session.SigningKey, logger),
		cart:      cart.NewStore(b.storage, cfg.Cart.StorageKey, logger),
		limiter:   rate.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		metrics:   metrics.New(cfg.Metrics.Enabled),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	if rec, err := c.sessions.Hydrate(ctx); err != nil {
		// Storage transport failure: start unauthenticated rather than fail
		// the whole client.
		logger.Warn("session rehydration failed, starting unauthenticated", "error", err)
		c.metrics.Inc(metrics.SessionCorrupt)
	} else if rec != nil {
		c.metrics.Inc(metrics.SessionRestored)
	}

	if _, err := c.cart.Hydrate(ctx); err != nil {
		logger.Warn("cart rehydration failed, starting empty", "error", err)
		c.metrics.Inc(metrics.CartHydrateCorrupt)
	}

	b.built = true
	return c, nil
}
