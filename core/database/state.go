package database

import (
	"context"
	"fmt"

	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/reconcile"
	"store-inventory/core/requests"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadState reads every persisted item, request and ledger entry.
// Requests come back in submission order and entries in sequence order.
func LoadState(ctx context.Context, db *gorm.DB) (reconcile.State, error) {
	var state reconcile.State
	tx := db.WithContext(ctx)

	var items []ItemModel
	if err := tx.Order("created_at, id").Find(&items).Error; err != nil {
		return state, fmt.Errorf("failed to load items: %w", err)
	}
	for _, m := range items {
		state.Items = append(state.Items, m.toItem())
	}

	var reqs []RequestModel
	if err := tx.Order("submitted_at, id").Find(&reqs).Error; err != nil {
		return state, fmt.Errorf("failed to load requests: %w", err)
	}
	for _, m := range reqs {
		r, err := m.toRequest()
		if err != nil {
			return state, err
		}
		state.Requests = append(state.Requests, r)
	}

	var entries []LedgerEntryModel
	if err := tx.Order("seq").Find(&entries).Error; err != nil {
		return state, fmt.Errorf("failed to load ledger: %w", err)
	}
	for _, m := range entries {
		state.Entries = append(state.Entries, m.toEntry())
	}

	return state, nil
}

// Restore rebuilds fresh stores from a loaded state.
func Restore(state reconcile.State) (*catalog.Catalog, *requests.Store, *ledger.Ledger, error) {
	c := catalog.New()
	if err := c.Seed(state.Items); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to restore catalog: %w", err)
	}
	r := requests.NewStore()
	if err := r.Restore(state.Requests); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to restore requests: %w", err)
	}
	l := ledger.New()
	if err := l.Restore(state.Entries); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to restore ledger: %w", err)
	}
	return c, r, l, nil
}

// SeedItems inserts catalog items, leaving rows with the same id untouched.
// It returns the number of rows inserted.
func SeedItems(ctx context.Context, db *gorm.DB, items []catalog.Item) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	models := make([]ItemModel, 0, len(items))
	for _, it := range items {
		models = append(models, itemToModel(it))
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed items: %w", res.Error)
	}
	return res.RowsAffected, nil
}
