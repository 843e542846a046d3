package database

import (
	"context"
	"testing"
	"time"

	"store-inventory/core/authz"
	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/reconcile"
	"store-inventory/core/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	requester   = authz.Principal{UserID: "user-1", Role: authz.RoleRequester}
	storekeeper = authz.Principal{UserID: "user-9", Role: authz.RoleStorekeeper}
)

func migratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func flush(t *testing.T, j *Journal) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, j.Flush(ctx))
}

func TestJournal_RoundTrip(t *testing.T) {
	db := migratedDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed := []catalog.Item{{ID: "item-x", Name: "Air Spring", PartNumber: "AS-1", System: "Bogie", QuantityOnHand: 10, Baseline: 10}}
	inserted, err := SeedItems(ctx, db, seed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted)

	state, err := LoadState(ctx, db)
	require.NoError(t, err)
	c, r, l, err := Restore(state)
	require.NoError(t, err)

	j := NewJournal(db, nil)
	j.Start(ctx)
	engine := reconcile.NewEngine(c, r, l, reconcile.WithJournal(j))

	approved, err := engine.SubmitRequest(requester, "item-x", 3, requests.Context{NCRNumber: "NCR-1", CarNumber: "DMC2"})
	require.NoError(t, err)
	pending, err := engine.SubmitRequest(requester, "item-x", 1, requests.Context{})
	require.NoError(t, err)
	_, err = engine.DecideRequest(storekeeper, approved.ID, requests.OutcomeApproved,
		&requests.Serials{Healthy: []string{"a", "b"}, Faulty: []string{"c"}})
	require.NoError(t, err)
	added, err := engine.AddItem(storekeeper, catalog.ItemSpec{Name: "Wiper", PartNumber: "W-2", System: "Cab", Quantity: 4})
	require.NoError(t, err)
	require.NoError(t, engine.RemoveItem(storekeeper, added.ID))

	flush(t, j)
	require.NoError(t, j.Close(ctx))
	assert.Zero(t, j.Failed())

	reloaded, err := LoadState(ctx, db)
	require.NoError(t, err)

	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 7, reloaded.Items[0].QuantityOnHand)
	assert.Equal(t, 10, reloaded.Items[0].Baseline)

	require.Len(t, reloaded.Requests, 2)
	assert.Equal(t, approved.ID, reloaded.Requests[0].ID)
	assert.Equal(t, requests.StatusApproved, reloaded.Requests[0].Status)
	assert.Equal(t, "NCR-1", reloaded.Requests[0].Context.NCRNumber)
	require.NotNil(t, reloaded.Requests[0].Decision)
	assert.Equal(t, []string{"a", "b"}, reloaded.Requests[0].Decision.Serials.Healthy)
	assert.Equal(t, pending.ID, reloaded.Requests[1].ID)
	assert.Nil(t, reloaded.Requests[1].Decision)

	// Ledger history of the removed item survives.
	require.Len(t, reloaded.Entries, 2)
	assert.Equal(t, ledger.DirectionOut, reloaded.Entries[0].Direction)
	assert.Equal(t, added.ID, reloaded.Entries[1].ItemID)

	c2, r2, l2, err := Restore(reloaded)
	require.NoError(t, err)
	restored := reconcile.NewEngine(c2, r2, l2)
	summary := restored.VerifyAll()
	assert.Equal(t, 0, summary.Unbalanced)
	assert.True(t, r2.HasPending("item-x"))

	// New appends continue the sequence.
	_, entry, err := restored.CheckIn(storekeeper, "item-x", 1, "")
	require.NoError(t, err)
	assert.Greater(t, entry.Seq, reloaded.Entries[1].Seq)
}

func TestJournal_Closed(t *testing.T) {
	db := migratedDB(t)
	j := NewJournal(db, nil)

	ctx := context.Background()
	require.NoError(t, j.Close(ctx))

	j.RecordItem(catalog.Item{ID: "late"})
	assert.EqualValues(t, 1, j.Failed())
	assert.ErrorIs(t, j.Flush(ctx), ErrJournalClosed)
}

func TestJournal_WriteFailureIsCounted(t *testing.T) {
	db := migratedDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	j := NewJournal(db, nil)
	j.Start(ctx)

	entry := ledger.Entry{ID: "txn-1", Seq: 1, Direction: ledger.DirectionIn, ItemID: "i", Quantity: 1, ActorID: "a", Timestamp: time.Now()}
	j.RecordEntry(entry)
	j.RecordEntry(entry)
	flush(t, j)

	assert.EqualValues(t, 1, j.Failed())
	var count int64
	require.NoError(t, db.Model(&LedgerEntryModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeedItems_Idempotent(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	items := []catalog.Item{{ID: "a", Name: "A", QuantityOnHand: 1, Baseline: 1}}

	n, err := SeedItems(ctx, db, items)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	items[0].QuantityOnHand = 99
	n, err = SeedItems(ctx, db, items)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	state, err := LoadState(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Items[0].QuantityOnHand)

	n, err = SeedItems(ctx, db, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
