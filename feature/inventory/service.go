package inventory

import (
	"store-inventory/core/authz"
	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/reconcile"

	"go.uber.org/zap"
)

// Service runs catalog operations through the engine.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// List returns the catalog in insertion order.
func (s *Service) List() []catalog.Item {
	return s.engine.CatalogSnapshot()
}

// Get returns one item.
func (s *Service) Get(id string) (catalog.Item, error) {
	return s.engine.GetItem(id)
}

// Add creates an item from the caller's spec.
func (s *Service) Add(p authz.Principal, spec catalog.ItemSpec) (catalog.Item, error) {
	return s.engine.AddItem(p, spec)
}

// Remove deletes an item.
func (s *Service) Remove(p authz.Principal, id string) error {
	return s.engine.RemoveItem(p, id)
}

// CheckIn adds stock to an item.
func (s *Service) CheckIn(p authz.Principal, id string, quantity int, remarks string) (catalog.Item, ledger.Entry, error) {
	return s.engine.CheckIn(p, id, quantity, remarks)
}
