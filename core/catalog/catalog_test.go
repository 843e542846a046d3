package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"store-inventory/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, qty int) *Catalog {
	t.Helper()
	c := New()
	require.NoError(t, c.Seed([]Item{{ID: "item-x", Name: "Test Item A", PartNumber: "TEST-001", System: "Testing", QuantityOnHand: qty, Baseline: qty}}))
	return c
}

func TestCatalog_Get(t *testing.T) {
	c := seeded(t, 10)

	item, err := c.Get("item-x")
	require.NoError(t, err)
	assert.Equal(t, 10, item.QuantityOnHand)
	assert.Equal(t, 10, item.Baseline)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_AdjustStock(t *testing.T) {
	c := seeded(t, 10)

	t.Run("Decrement", func(t *testing.T) {
		item, err := c.AdjustStock("item-x", -4)
		require.NoError(t, err)
		assert.Equal(t, 6, item.QuantityOnHand)
	})

	t.Run("WouldGoNegative", func(t *testing.T) {
		_, err := c.AdjustStock("item-x", -7)
		assert.ErrorIs(t, err, apperr.ErrWouldGoNegative)

		item, _ := c.Get("item-x")
		assert.Equal(t, 6, item.QuantityOnHand)
	})

	t.Run("ExactlyToZero", func(t *testing.T) {
		item, err := c.AdjustStock("item-x", -6)
		require.NoError(t, err)
		assert.Equal(t, 0, item.QuantityOnHand)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := c.AdjustStock("missing", 1)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCatalog_AdjustStockConcurrent(t *testing.T) {
	c := seeded(t, 50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.AdjustStock("item-x", -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	item, _ := c.Get("item-x")
	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 0, item.QuantityOnHand)
}

func TestCatalog_AddItem(t *testing.T) {
	c := New()

	item, err := c.AddItem(ItemSpec{Name: "  Head Light ", PartNumber: "YSP2180", System: "Exterior Lighting", Quantity: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Head Light", item.Name)
	assert.Equal(t, 20, item.QuantityOnHand)
	assert.Equal(t, 0, item.Baseline)

	// Duplicate part numbers are allowed.
	other, err := c.AddItem(ItemSpec{Name: "Head Light spare", PartNumber: "YSP2180", System: "Exterior Lighting", Quantity: 1})
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, other.ID)

	_, err = c.AddItem(ItemSpec{Name: "x", PartNumber: "", System: "y", Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = c.AddItem(ItemSpec{Name: "x", PartNumber: "p", System: "y", Quantity: 0})
	assert.ErrorIs(t, err, apperr.ErrInvalidQuantity)

	assert.Equal(t, 2, c.Len())
}

func TestCatalog_RemoveItem(t *testing.T) {
	c := seeded(t, 3)

	err := c.RemoveItem("item-x", func(string) bool { return true })
	assert.ErrorIs(t, err, apperr.ErrHasPendingRequests)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.RemoveItem("item-x", func(string) bool { return false }))
	assert.Equal(t, 0, c.Len())

	assert.ErrorIs(t, c.RemoveItem("item-x", nil), apperr.ErrNotFound)
}

func TestCatalog_Seed(t *testing.T) {
	c := seeded(t, 1)

	err := c.Seed([]Item{{ID: "item-x", QuantityOnHand: 1}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	err = c.Seed([]Item{{ID: "item-y", QuantityOnHand: -1}})
	assert.ErrorIs(t, err, apperr.ErrInvalidQuantity)

	err = c.Seed([]Item{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_SnapshotIsStable(t *testing.T) {
	c := New()
	require.NoError(t, c.Seed([]Item{{ID: "b", QuantityOnHand: 1}, {ID: "a", QuantityOnHand: 2}}))

	first := c.Snapshot()
	second := c.Snapshot()
	assert.Equal(t, first, second)
	assert.Equal(t, "b", first[0].ID)

	// Mutating the returned slice does not leak into the catalog.
	first[0].QuantityOnHand = 99
	item, _ := c.Get("b")
	assert.Equal(t, 1, item.QuantityOnHand)
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[{"id":"item-ls-1","name":"SALOON LIGHT","part_number":"TVN8502","system":"Lighting System","quantity_on_hand":25}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	items, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 25, items[0].Baseline)

	_, err = LoadSeedFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadSeedFile(path)
	assert.Error(t, err)
}

func TestCatalog_AddItemAs(t *testing.T) {
	c := New()
	id := NewItemID()

	item, err := c.AddItemAs(id, ItemSpec{Name: "Insulator LH", PartNumber: "64025", System: "Current Collector", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)

	_, err = c.AddItemAs(id, ItemSpec{Name: "Insulator RH", PartNumber: "63823", System: "Current Collector", Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
