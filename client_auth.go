package storefront

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradewind-labs/storefront/internal/metrics"
	"github.com/tradewind-labs/storefront/internal/validate"
	"github.com/tradewind-labs/storefront/session"
)

// Login authenticates email/password against the identity directory and,
// on success, makes the returned identity the current session. The order
// of checks is fixed: rate limit, email syntax, password precheck, then
// the directory round-trip. Every failure leaves the session untouched.
func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	if !c.limiter.Allow("login_" + email) {
		c.metrics.Inc(metrics.LoginRateLimited)
		c.auditAuth(ctx, AuditLogin, "", email, ErrRateLimited)
		return Identity{}, ErrRateLimited
	}

	sanitized := validate.Sanitize(strings.ToLower(strings.TrimSpace(email)))
	if !validate.ValidEmail(sanitized) {
		c.metrics.Inc(metrics.LoginFailure)
		return Identity{}, ErrEmailInvalid
	}
	if password == "" || len(password) < c.config.Login.MinPasswordLength {
		c.metrics.Inc(metrics.LoginFailure)
		return Identity{}, ErrPasswordRequired
	}

	identity, err := c.directory.VerifyCredentials(ctx, sanitized, password)
	if err != nil {
		c.metrics.Inc(metrics.LoginFailure)
		c.auditAuth(ctx, AuditLogin, "", sanitized, err)
		return Identity{}, err
	}

	c.persistSession(ctx, identity)
	c.metrics.Inc(metrics.LoginSuccess)
	c.auditAuth(ctx, AuditLogin, identity.ID, identity.Email, nil)
	return identity, nil
}

// Register creates a new identity in the directory and logs it in. The
// validation order is fixed: rate limit, email syntax, password strength,
// display name bounds, then the duplicate check against the directory.
func (c *Client) Register(ctx context.Context, email, password, displayName string, role Role) (Identity, error) {
	if !c.limiter.Allow("register_" + email) {
		c.metrics.Inc(metrics.RegisterRateLimited)
		c.auditAuth(ctx, AuditRegister, "", email, ErrRateLimited)
		return Identity{}, ErrRateLimited
	}

	sanitizedEmail := validate.Sanitize(strings.ToLower(strings.TrimSpace(email)))
	sanitizedName := validate.Sanitize(strings.TrimSpace(displayName))

	if !validate.ValidEmail(sanitizedEmail) {
		c.metrics.Inc(metrics.RegisterFailure)
		return Identity{}, ErrEmailInvalid
	}
	if !validate.StrongPassword(password) {
		c.metrics.Inc(metrics.RegisterFailure)
		return Identity{}, ErrPasswordWeak
	}
	if n := len(sanitizedName); n < c.config.Register.DisplayNameMin || n > c.config.Register.DisplayNameMax {
		c.metrics.Inc(metrics.RegisterFailure)
		return Identity{}, ErrDisplayNameLength
	}
	if !role.Valid() {
		c.metrics.Inc(metrics.RegisterFailure)
		return Identity{}, ErrRoleInvalid
	}

	_, err := c.directory.FindByEmail(ctx, sanitizedEmail)
	switch {
	case err == nil:
		c.metrics.Inc(metrics.RegisterFailure)
		c.auditAuth(ctx, AuditRegister, "", sanitizedEmail, ErrEmailExists)
		return Identity{}, ErrEmailExists
	case errors.Is(err, ErrUserNotFound):
		// Free to register.
	default:
		c.metrics.Inc(metrics.RegisterFailure)
		c.auditAuth(ctx, AuditRegister, "", sanitizedEmail, err)
		return Identity{}, err
	}

	identity := Identity{
		ID:          uuid.NewString(),
		Email:       sanitizedEmail,
		DisplayName: sanitizedName,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := c.directory.Create(ctx, identity, password)
	if err != nil {
		c.metrics.Inc(metrics.RegisterFailure)
		c.auditAuth(ctx, AuditRegister, "", sanitizedEmail, err)
		return Identity{}, err
	}

	c.persistSession(ctx, created)
	c.metrics.Inc(metrics.RegisterSuccess)
	c.auditAuth(ctx, AuditRegister, created.ID, created.Email, nil)
	return created, nil
}

// Logout clears the session in memory and in durable storage. It always
// succeeds: a storage failure is logged and the process is logged out
// regardless.
func (c *Client) Logout(ctx context.Context) {
	current, _ := c.sessions.Current()
	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Warn("failed to remove durable session record", "error", err)
	}
	c.metrics.Inc(metrics.Logout)
	c.auditAuth(ctx, AuditLogout, current.ID, current.Email, nil)
}

// CurrentIdentity returns the authenticated identity, ok=false when the
// session is unauthenticated.
func (c *Client) CurrentIdentity() (Identity, bool) {
	rec, ok := c.sessions.Current()
	if !ok {
		return Identity{}, false
	}
	return identityFromRecord(rec), true
}

// persistSession updates the in-memory session and writes it through. A
// durable write failure downgrades to a warning: the user is logged in for
// this process lifetime even if the record will not survive a restart.
func (c *Client) persistSession(ctx context.Context, identity Identity) {
	if err := c.sessions.Set(ctx, recordFromIdentity(identity)); err != nil {
		c.log.Warn("failed to persist session record", "error", err)
	}
}

func (c *Client) auditAuth(ctx context.Context, eventType, userID, email string, err error) {
	if c.audit == nil {
		return
	}
	event := AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	c.audit.emit(ctx, event)
}

func recordFromIdentity(id Identity) session.Record {
	return session.Record{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        string(id.Role),
		CreatedAt:   id.CreatedAt,
	}
}

func identityFromRecord(rec session.Record) Identity {
	return Identity{
		ID:          rec.ID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		Role:        Role(rec.Role),
		CreatedAt:   rec.CreatedAt,
	}
}
