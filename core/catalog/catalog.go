package catalog

import (
	"fmt"
	"sync"
	"time"

	"store-inventory/core/apperr"

	"github.com/google/uuid"
)

// Catalog is the in-memory stock store.
// It is safe for concurrent use; readers receive copies.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]*Item
	order []string
	now   func() time.Time
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		items: make(map[string]*Item),
		now:   time.Now,
	}
}

// Seed loads existing items as they are, including their Baseline.
// Seeding an id twice or a negative quantity is rejected and leaves the catalog unchanged.
func (c *Catalog) Seed(items []Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return fmt.Errorf("seed item without id: %w", apperr.ErrInvalidInput)
		}
		if _, dup := c.items[it.ID]; dup {
			return fmt.Errorf("seed item %q already exists: %w", it.ID, apperr.ErrInvalidInput)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("seed item %q listed twice: %w", it.ID, apperr.ErrInvalidInput)
		}
		if it.QuantityOnHand < 0 {
			return fmt.Errorf("seed item %q quantity %d: %w", it.ID, it.QuantityOnHand, apperr.ErrInvalidQuantity)
		}
		seen[it.ID] = struct{}{}
	}

	for _, it := range items {
		item := it
		if item.CreatedAt.IsZero() {
			item.CreatedAt = c.now()
		}
		c.items[item.ID] = &item
		c.order = append(c.order, item.ID)
	}
	return nil
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("item %q: %w", id, apperr.ErrNotFound)
	}
	return *item, nil
}

// AdjustStock adds delta to the item's quantity on hand.
// A delta that would make the quantity negative fails with apperr.ErrWouldGoNegative
// and performs no mutation.
func (c *Catalog) AdjustStock(id string, delta int) (Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("item %q: %w", id, apperr.ErrNotFound)
	}
	if item.QuantityOnHand+delta < 0 {
		return *item, fmt.Errorf("item %q has %d, adjust by %d: %w", id, item.QuantityOnHand, delta, apperr.ErrWouldGoNegative)
	}
	item.QuantityOnHand += delta
	return *item, nil
}

// NewItemID returns a fresh item identity.
func NewItemID() string {
	return "item-" + uuid.NewString()
}

// AddItem validates spec and creates an item with a fresh id.
// The initial quantity is on hand immediately and the baseline is zero.
func (c *Catalog) AddItem(spec ItemSpec) (Item, error) {
	return c.AddItemAs(NewItemID(), spec)
}

// AddItemAs is AddItem with an id obtained from NewItemID beforehand, so the caller
// can hold the item's lock before the item becomes visible.
func (c *Catalog) AddItemAs(id string, spec ItemSpec) (Item, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.items[id]; dup || id == "" {
		return Item{}, fmt.Errorf("item id %q unavailable: %w", id, apperr.ErrInvalidInput)
	}
	item := &Item{
		ID:             id,
		Name:           spec.Name,
		PartNumber:     spec.PartNumber,
		System:         spec.System,
		QuantityOnHand: spec.Quantity,
		CreatedAt:      c.now(),
	}
	c.items[item.ID] = item
	c.order = append(c.order, item.ID)
	return *item, nil
}

// RemoveItem deletes the item unless hasPending reports pending requests for it.
// hasPending is evaluated while the catalog is locked.
func (c *Catalog) RemoveItem(id string, hasPending func(itemID string) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("item %q: %w", id, apperr.ErrNotFound)
	}
	if hasPending != nil && hasPending(id) {
		return fmt.Errorf("item %q: %w", id, apperr.ErrHasPendingRequests)
	}

	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Snapshot returns every item in catalog order.
func (c *Catalog) Snapshot() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
