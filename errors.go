package storefront

import "errors"

var (
	// ErrRateLimited reports that the sliding-window budget for this email
	// and operation is exhausted. Recoverable after the window passes.
	ErrRateLimited = errors.New("too many attempts, try again later")
	// ErrEmailInvalid reports a syntactically invalid email address.
	ErrEmailInvalid = errors.New("invalid email address")
	// ErrPasswordRequired reports an empty or too-short login password.
	ErrPasswordRequired = errors.New("password is required")
	// ErrPasswordWeak reports a registration password that fails the
	// strength policy (8+ characters with upper, lower, and digit).
	ErrPasswordWeak = errors.New("password does not meet strength policy")
	// ErrDisplayNameLength reports a display name outside the allowed
	// length bounds after sanitization.
	ErrDisplayNameLength = errors.New("display name length out of bounds")
	// ErrRoleInvalid reports a role other than buyer or seller.
	ErrRoleInvalid = errors.New("invalid account role")
	// ErrEmailExists reports a registration against an email the identity
	// directory already holds.
	ErrEmailExists = errors.New("email already registered")
	// ErrUserNotFound reports a login for an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials reports a password mismatch for a known email.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDirectoryUnavailable wraps transport failures of the identity
	// directory. The core's own state is unchanged when it is returned.
	ErrDirectoryUnavailable = errors.New("identity directory unavailable")
	// ErrNotAuthenticated reports a guarded action without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRoleDenied reports an authenticated identity lacking the required
	// role for a guarded action.
	ErrRoleDenied = errors.New("role not permitted")
	// ErrProductUnavailable reports an attempt to add a product that is not
	// active or has no stock.
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrNoCatalog reports a catalog operation on a client built without a
	// catalog provider.
	ErrNoCatalog = errors.New("no catalog provider configured")
)
