// Package database persists the inventory stores through GORM.
//
// Connect opens MySQL or SQLite depending on the configured driver. Migrate creates the
// inventory_items, withdrawal_requests and ledger_entries tables.
//
// # Journal
//
// Journal implements reconcile.Journal. The engine records every committed change while
// it still holds the item lock; the journal queues it and a single worker writes the
// queue in order, so rows reach the database in commit order. LoadState and Restore
// rebuild the in-memory stores from those rows on start.
//
// # Schema Inspection
//
// GetTableColumns and ExpectedSchema let the integrity check compare the live schema
// with the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("database unavailable", zap.Error(err))
//	}
//	j := database.NewJournal(db, log)
//	j.Start(ctx)
//	defer j.Close(ctx)
package database
