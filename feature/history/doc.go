// Package history exposes the stock ledger over HTTP.
//
// # HTTP Endpoints
//
//   - GET /ledger/:itemId : Lists the item's movements in timestamp order. History of removed items stays readable.
//   - GET /ledger/:itemId/verify : Replays the item's ledger and compares it with the stock on hand.
package history
