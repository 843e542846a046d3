// Package inventory exposes the catalog over HTTP.
//
// # HTTP Endpoints
//
//   - GET /catalog : Lists every item with its stock on hand.
//   - GET /catalog/:id : Returns one item.
//   - POST /catalog : Adds an item (storekeeper). The initial quantity is logged as an "in" entry.
//   - DELETE /catalog/:id : Removes an item without pending requests (storekeeper).
//   - POST /catalog/:id/checkin : Adds stock as a manual adjustment (storekeeper).
package inventory
