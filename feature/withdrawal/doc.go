// Package withdrawal exposes the withdrawal request lifecycle over HTTP.
//
// Requesters submit requests against an item; storekeepers approve them with the
// serial-number disposition of the units handed out, or reject them. Serial lists may be
// sent as JSON arrays or as free text separated by commas, spaces or newlines.
//
// # HTTP Endpoints
//
//   - POST /requests : Submits a request (requester). Guarded by Idempotency-Key.
//   - GET /requests : Lists visible requests, optionally filtered by ?status=.
//   - GET /requests/pending : Lists visible pending requests.
//   - GET /requests/:id : Returns one visible request.
//   - POST /requests/:id/approve : Approves with serials (storekeeper).
//   - POST /requests/:id/reject : Rejects (storekeeper).
package withdrawal
