package requests

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"store-inventory/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draft(item string, qty int, requester string) Draft {
	return Draft{
		ItemID:      item,
		ItemName:    "Test Item A",
		Quantity:    qty,
		RequesterID: requester,
		Context:     Context{NCRNumber: "NCR-7", TrainSetNumber: "TS03", CarNumber: "MC1"},
	}
}

func TestStore_Create(t *testing.T) {
	s := NewStore()

	req := s.Create(draft("item-x", 4, "user-1"))
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, 4, req.QuantityRequested)
	assert.False(t, req.SubmittedAt.IsZero())
	assert.Nil(t, req.Decision)
	assert.True(t, s.HasPending("item-x"))

	got, err := s.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_Decide(t *testing.T) {
	s := NewStore()
	req := s.Create(draft("item-x", 2, "user-1"))

	serials := &Serials{Healthy: []string{"SN1"}, Faulty: []string{"SN2"}}
	decided, err := s.Decide(req.ID, OutcomeApproved, "user-9", serials)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)
	require.NotNil(t, decided.Decision)
	assert.Equal(t, "user-9", decided.Decision.DecidedBy)
	assert.Equal(t, 2, decided.Decision.Serials.Count())
	assert.False(t, s.HasPending("item-x"))

	// The caller's slice is not shared with the store.
	serials.Healthy[0] = "tampered"
	got, _ := s.Get(req.ID)
	assert.Equal(t, "SN1", got.Decision.Serials.Healthy[0])

	_, err = s.Decide(req.ID, OutcomeRejected, "user-9", nil)
	assert.ErrorIs(t, err, apperr.ErrAlreadyDecided)
	got, _ = s.Get(req.ID)
	assert.Equal(t, StatusApproved, got.Status)

	_, err = s.Decide("missing", OutcomeRejected, "user-9", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Decide(req.ID, "maybe", "user-9", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestStore_DecideRace(t *testing.T) {
	s := NewStore()
	req := s.Create(draft("item-x", 1, "user-1"))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome := OutcomeRejected
			if i%2 == 0 {
				outcome = OutcomeApproved
			}
			if _, err := s.Decide(req.ID, outcome, "user-9", nil); err == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestStore_Listings(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a := s.Create(draft("item-x", 1, "user-1"))
	b := s.Create(draft("item-y", 1, "user-2"))
	c := s.Create(draft("item-x", 1, "user-1"))
	_, err := s.Decide(b.ID, OutcomeRejected, "user-9", nil)
	require.NoError(t, err)

	pending := s.ListByStatus(StatusPending)
	require.Len(t, pending, 2)
	assert.Equal(t, a.ID, pending[0].ID)
	assert.Equal(t, c.ID, pending[1].ID)
	assert.True(t, pending[1].SubmittedAt.After(pending[0].SubmittedAt))

	assert.Len(t, s.ListByStatus(StatusRejected), 1)
	assert.Empty(t, s.ListByStatus(StatusApproved))
	assert.Len(t, s.ListByRequester("user-1"), 2)
	assert.Len(t, s.All(), 3)
}

func TestStore_Restore(t *testing.T) {
	s := NewStore()
	ts := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	err := s.Restore([]Request{
		{ID: "req-1", ItemID: "item-x", QuantityRequested: 1, Status: StatusPending, SubmittedAt: ts},
		{ID: "req-2", ItemID: "item-x", QuantityRequested: 1, Status: StatusRejected, SubmittedAt: ts.Add(time.Minute),
			Decision: &Decision{DecidedBy: "user-9", Outcome: OutcomeRejected}},
	})
	require.NoError(t, err)
	assert.True(t, s.HasPending("item-x"))
	assert.Len(t, s.All(), 2)

	err = s.Restore([]Request{{ID: "req-3", Status: StatusApproved}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	err = s.Restore([]Request{{ID: "req-1", Status: StatusPending}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
