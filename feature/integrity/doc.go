// Package integrity provides system health checks.
//
// # Checks Provided
//
//   - Conservation: every item's baseline plus ledger "in" minus "out" equals its stock on hand.
//   - Schema: the connected database has every table and column of the persisted models.
//   - Storage: the snapshot bucket exists; ?fix=true creates it.
//   - Journal: number of changes the database journal failed to write.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/conservation : Runs the conservation audit.
//   - GET /integrity/schema : Runs the database schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
