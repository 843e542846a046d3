// Package reconcile is the request lifecycle and inventory reconciliation engine.
//
// The Engine turns a requester's withdrawal request into either an approved,
// stock-decremented, serial-tracked transaction or a rejection. It is the only writer
// of the catalog, the request store and the ledger, and it keeps three invariants true
// at every observable point:
//
//   - Stock never goes negative.
//   - Every approved request carries exactly quantityRequested distinct serials.
//   - Every stock change is backed by exactly one ledger entry, so
//     baseline + sum(in) - sum(out) equals the quantity on hand.
//
// # Concurrency
//
// Every mutating operation holds a per-item lock for its whole read-check-write
// sequence. Operations on different items proceed in parallel. Submission is an
// admission check only: stock is not reserved, so approval re-validates stock under the
// item lock and refuses with apperr.ErrInsufficientStock when another approval consumed
// it first. The request then stays pending.
//
// # Atomicity
//
// An approval validates everything that can fail (stock, serials, ledger entry shape)
// before mutating anything, then decrements stock, decides the request and appends the
// ledger entry. If the request store refuses the decision (a race in the calling layer),
// the stock decrement is compensated before the lock is released, so no partial state
// is ever observable.
//
// # Journal
//
// An optional Journal receives every committed change while the item lock is held, in
// commit order. Implementations must not block or perform I/O in the call.
package reconcile
