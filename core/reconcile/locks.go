package reconcile

import "sync"

// itemLocks hands out one mutex per item id and forgets it once no caller holds it.
type itemLocks struct {
	mu    sync.Mutex
	locks map[string]*itemLock
}

type itemLock struct {
	mu   sync.Mutex
	refs int
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[string]*itemLock)}
}

// lock acquires the item's mutex and returns the function that releases it.
func (l *itemLocks) lock(itemID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[itemID]
	if !ok {
		entry = &itemLock{}
		l.locks[itemID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, itemID)
		}
		l.mu.Unlock()
	}
}

func (l *itemLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
