// Package catalog holds the current stock level of every item in the store.
//
// The Catalog is a leaf data store. Its only stock mutation entry point is AdjustStock,
// which performs the non-negative check and the write as one atomic step, so a
// negative delta can never drive QuantityOnHand below zero.
//
// Every item also remembers its Baseline: the quantity it had when it entered the
// catalog without a ledger entry (seeded reference data). Items created through
// AddItem start from a zero baseline because their initial quantity is recorded as an
// "in" movement by the engine.
//
// # Seeding
//
// LoadSeedFile reads the static catalog reference data from a JSON array:
//
//	[{"id": "item-tm-1", "name": "Traction Motor Complete", "part_number": "MB-5117-A",
//	  "system": "Traction Motor", "quantity_on_hand": 2}]
package catalog
