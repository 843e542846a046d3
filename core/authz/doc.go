// Package authz is the single authorization gate of the inventory engine.
//
// The gate is a set of pure predicates over a role, not over individual users.
// Every engine entry point consults the relevant predicate before touching any store
// and fails closed with apperr.ErrForbidden.
//
//   - CanSubmitRequest: requester only.
//   - CanDecideRequest: storekeeper only.
//   - CanManageCatalog: storekeeper only.
package authz
