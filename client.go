package storefront

import (
	"context"
	"log/slog"

	"github.com/tradewind-labs/storefront/cart"
	"github.com/tradewind-labs/storefront/catalog"
	"github.com/tradewind-labs/storefront/internal/metrics"
	"github.com/tradewind-labs/storefront/internal/rate"
	"github.com/tradewind-labs/storefront/session"
)

// Client is the assembled storefront core. Construct it through [Builder];
// after Build it is safe for concurrent use and holds no global state, so
// several independent clients can coexist in one process.
type Client struct {
	config    Config
	log       *slog.Logger
	directory IdentityDirectory
	catalog   catalog.Provider
	sessions  *session.Store
	cart      *cart.Store
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
	audit     *auditDispatcher
}

// MetricID identifies one internal counter in [Client.MetricsSnapshot].
type MetricID = metrics.ID

// Counter ids exposed through MetricsSnapshot.
const (
	MetricLoginSuccess        = metrics.LoginSuccess
	MetricLoginFailure        = metrics.LoginFailure
	MetricLoginRateLimited    = metrics.LoginRateLimited
	MetricRegisterSuccess     = metrics.RegisterSuccess
	MetricRegisterFailure     = metrics.RegisterFailure
	MetricRegisterRateLimited = metrics.RegisterRateLimited
	MetricLogout              = metrics.Logout
	MetricSessionRestored     = metrics.SessionRestored
	MetricSessionCorrupt      = metrics.SessionCorrupt
	MetricCartTransition      = metrics.CartTransition
	MetricCartHydrateCorrupt  = metrics.CartHydrateCorrupt
	MetricGuardDenied         = metrics.GuardDenied
)

// MetricsSnapshot returns a point-in-time copy of the internal counters.
func (c *Client) MetricsSnapshot() map[MetricID]uint64 {
	if c == nil {
		return map[MetricID]uint64{}
	}
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events discarded because the buffer was full.
func (c *Client) AuditDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.audit.droppedCount()
}

// Close flushes the cart to storage and stops the audit dispatcher. The
// context bounds the final cart write.
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	err := c.cart.Flush(ctx)
	c.audit.close()
	return err
}
