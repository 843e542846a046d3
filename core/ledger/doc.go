// Package ledger is the append-only log of stock movements.
//
// Each Entry records one check-in ("in") or check-out ("out") of an item. Entries are
// immutable once appended and are ordered by a strictly increasing sequence number and
// timestamp, which makes the ledger the durable record from which stock levels can be
// reconstructed: baseline + sum(in) - sum(out) equals the current quantity on hand.
//
// EntriesForItem and All return iter.Seq values. Every iteration takes a fresh snapshot,
// so a sequence is finite and can be ranged over again.
package ledger
