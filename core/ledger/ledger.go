package ledger

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"store-inventory/core/apperr"

	"github.com/google/uuid"
)

// Ledger is an in-memory append-only movement log.
type Ledger struct {
	mu     sync.RWMutex
	all    []Entry
	byItem map[string][]int
	seq    int64
	last   time.Time
	now    func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		byItem: make(map[string][]int),
		now:    time.Now,
	}
}

// Validate reports whether e is well-formed enough to append.
func Validate(e Entry) error {
	if !e.Direction.IsValid() {
		return fmt.Errorf("ledger direction %q: %w", e.Direction, apperr.ErrInvalidInput)
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("ledger quantity %d: %w", e.Quantity, apperr.ErrInvalidQuantity)
	}
	if e.ItemID == "" || e.ActorID == "" {
		return fmt.Errorf("ledger entry needs item and actor: %w", apperr.ErrInvalidInput)
	}
	if e.Direction == DirectionIn && e.RequestID != "" {
		return fmt.Errorf("check-in linked to request %q: %w", e.RequestID, apperr.ErrInvalidInput)
	}
	return nil
}

// Draft is an entry that passed Validate. Only Prepare creates one.
type Draft struct {
	entry    Entry
	prepared bool
}

// Prepare validates e for a later Commit.
func Prepare(e Entry) (Draft, error) {
	if err := Validate(e); err != nil {
		return Draft{}, err
	}
	return Draft{entry: e, prepared: true}, nil
}

// Commit assigns id, sequence number and timestamp to a prepared entry and stores it.
// It cannot fail, so callers may mutate other stores between Prepare and Commit.
// Committing the zero Draft panics.
func (l *Ledger) Commit(d Draft) Entry {
	if !d.prepared {
		panic("ledger: commit of unprepared draft")
	}
	e := d.entry

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().UTC()
	if !ts.After(l.last) {
		ts = l.last.Add(time.Nanosecond)
	}
	l.last = ts
	l.seq++

	e.ID = "txn-" + uuid.NewString()
	e.Seq = l.seq
	e.Timestamp = ts
	l.store(e)
	return e
}

// Append prepares and commits e in one step. It fails only when e is malformed.
func (l *Ledger) Append(e Entry) (Entry, error) {
	d, err := Prepare(e)
	if err != nil {
		return Entry{}, err
	}
	return l.Commit(d), nil
}

// Restore loads previously persisted entries in sequence order.
// Entries must be well-formed and strictly increasing in Seq.
func (l *Ledger) Restore(entries []Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.seq
	for _, e := range entries {
		if err := Validate(e); err != nil {
			return fmt.Errorf("restore entry %q: %w", e.ID, err)
		}
		if e.Seq <= seq {
			return fmt.Errorf("restore entry %q out of order (seq %d after %d): %w", e.ID, e.Seq, seq, apperr.ErrInvalidInput)
		}
		seq = e.Seq
	}

	for _, e := range entries {
		l.store(e)
		l.seq = e.Seq
		if e.Timestamp.After(l.last) {
			l.last = e.Timestamp
		}
	}
	return nil
}

func (l *Ledger) store(e Entry) {
	l.all = append(l.all, e)
	l.byItem[e.ItemID] = append(l.byItem[e.ItemID], len(l.all)-1)
}

// EntriesForItem returns the item's entries in timestamp order.
func (l *Ledger) EntriesForItem(itemID string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		l.mu.RLock()
		idx := l.byItem[itemID]
		snapshot := make([]Entry, len(idx))
		for i, pos := range idx {
			snapshot[i] = l.all[pos]
		}
		l.mu.RUnlock()

		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// All returns every entry in timestamp order.
func (l *Ledger) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		l.mu.RLock()
		snapshot := make([]Entry, len(l.all))
		copy(snapshot, l.all)
		l.mu.RUnlock()

		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.all)
}

// Totals sums the "in" and "out" quantities of entries.
func Totals(entries iter.Seq[Entry]) (in, out int) {
	for e := range entries {
		switch e.Direction {
		case DirectionIn:
			in += e.Quantity
		case DirectionOut:
			out += e.Quantity
		}
	}
	return in, out
}

// Replay reconstructs a stock level from a baseline and the item's entries.
func Replay(baseline int, entries iter.Seq[Entry]) int {
	in, out := Totals(entries)
	return baseline + in - out
}
