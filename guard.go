package storefront

import "github.com/tradewind-labs/storefront/internal/metrics"

// AccessGuard gates navigation to restricted views on the current session.
// The two failure modes are distinct so a shell can redirect anonymous
// visitors to login while showing authenticated-but-wrong-role users a
// denial instead.
type AccessGuard struct {
	client *Client
}

// Guard returns the access guard bound to this client's session.
func (c *Client) Guard() *AccessGuard {
	return &AccessGuard{client: c}
}

// RequireAuthenticated returns the current identity or
// [ErrNotAuthenticated].
func (g *AccessGuard) RequireAuthenticated() (Identity, error) {
	identity, ok := g.client.CurrentIdentity()
	if !ok {
		g.client.metrics.Inc(metrics.GuardDenied)
		return Identity{}, ErrNotAuthenticated
	}
	return identity, nil
}

// RequireRole returns the current identity when it holds role; otherwise
// [ErrNotAuthenticated] or [ErrRoleDenied].
func (g *AccessGuard) RequireRole(role Role) (Identity, error) {
	identity, err := g.RequireAuthenticated()
	if err != nil {
		return Identity{}, err
	}
	if identity.Role != role {
		g.client.metrics.Inc(metrics.GuardDenied)
		return Identity{}, ErrRoleDenied
	}
	return identity, nil
}

// RequireSeller gates seller-only views such as the listings dashboard.
func (g *AccessGuard) RequireSeller() (Identity, error) {
	return g.RequireRole(RoleSeller)
}
