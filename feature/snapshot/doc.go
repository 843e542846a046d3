// Package snapshot exports the inventory state to object storage.
//
// A snapshot is one JSON document holding the catalog, every request and the whole
// ledger, the same shape the database journal persists. Objects are named by export
// time under the configured prefix, so lexical order is chronological; after each
// export the oldest snapshots beyond the retention count are deleted.
//
// Concurrent export triggers share one upload.
//
// # HTTP Endpoints
//
//   - POST /snapshots : Exports a snapshot (storekeeper).
//   - GET /snapshots : Lists stored snapshot keys, oldest first.
//   - GET /snapshots/latest : Downloads the newest snapshot.
package snapshot
