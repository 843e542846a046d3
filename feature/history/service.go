package history

import (
	"slices"

	"store-inventory/core/ledger"
	"store-inventory/core/reconcile"

	"go.uber.org/zap"
)

// Service reads the ledger through the engine.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new history service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Entries returns the item's ledger entries, optionally restricted to one direction.
func (s *Service) Entries(itemID string, direction ledger.Direction) []ledger.Entry {
	entries := slices.Collect(s.engine.LedgerFor(itemID))
	if entries == nil {
		entries = []ledger.Entry{}
	}
	if direction == "" {
		return entries
	}
	return slices.DeleteFunc(entries, func(e ledger.Entry) bool {
		return e.Direction != direction
	})
}

// Verify audits one item.
func (s *Service) Verify(itemID string) (reconcile.Audit, error) {
	return s.engine.Verify(itemID)
}
