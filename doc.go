// Package storefront is the client core of a subscription marketplace:
// buyers browse and purchase listings, sellers pay a recurring subscription
// to list them. The package owns the two pieces of client state with real
// invariants, the shopping cart state machine and the authenticated
// session, plus the validation, rate limiting, and role guards that gate
// mutating actions. Rendering, routing, payments, and search belong to the
// shell around it.
//
// # Architecture boundaries
//
// storefront is the public surface. It exposes [Client], [Builder],
// [Config], the [Identity] model, and the sentinel error taxonomy. State
// machinery lives in the sub-packages cart and session, collaborator
// contracts in kv, catalog, and directory, and coordination internals under
// internal/.
//
// Backing stores are injected, never chosen here: the same client runs
// against in-memory doubles, a local file, Redis, or Firestore depending on
// what the shell wires in through the builder.
//
// # Failure contract
//
// Nothing in this package terminates the process. Validation, rate-limit,
// and credential failures come back as distinct sentinel errors for the
// shell to render; a durable record that no longer parses is logged,
// discarded, and replaced with the safe empty default.
package storefront
