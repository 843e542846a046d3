package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/requests"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrJournalClosed is returned by Flush once the journal has stopped.
var ErrJournalClosed = errors.New("journal closed")

type write struct {
	what  string
	id    string
	apply func(tx *gorm.DB) error
}

// Journal persists committed engine changes in the order they were recorded.
//
// Record methods only enqueue, so they are safe to call while the engine holds an item
// lock. A single worker drains the queue and writes each change with an upsert.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger

	mu      sync.Mutex
	queue   []write
	started bool
	closed  bool
	notify  chan struct{}
	stopped chan struct{}
	failed  atomic.Int64
}

// NewJournal creates a journal writing to db. Call Start to begin draining.
func NewJournal(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{
		db:      db,
		logger:  logger,
		notify:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

// Start runs the worker until Close is called or ctx is done.
func (j *Journal) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started || j.closed {
		return
	}
	j.started = true
	go j.run(ctx)
}

// RecordItem queues an upsert of the item row.
func (j *Journal) RecordItem(item catalog.Item) {
	m := itemToModel(item)
	j.enqueue(write{what: "item", id: item.ID, apply: func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
	}})
}

// RecordItemRemoved queues the deletion of the item row. Its ledger rows stay.
func (j *Journal) RecordItemRemoved(itemID string) {
	j.enqueue(write{what: "item_removed", id: itemID, apply: func(tx *gorm.DB) error {
		return tx.Delete(&ItemModel{}, "id = ?", itemID).Error
	}})
}

// RecordRequest queues an upsert of the request row.
func (j *Journal) RecordRequest(req requests.Request) {
	m, err := requestToModel(req)
	if err != nil {
		j.failed.Add(1)
		j.logger.Error("failed to encode request for journal", zap.String("request_id", req.ID), zap.Error(err))
		return
	}
	j.enqueue(write{what: "request", id: req.ID, apply: func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
	}})
}

// RecordEntry queues the insert of a ledger row.
func (j *Journal) RecordEntry(entry ledger.Entry) {
	m := entryToModel(entry)
	j.enqueue(write{what: "entry", id: entry.ID, apply: func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	}})
}

// Failed returns the number of changes that could not be written.
func (j *Journal) Failed() int64 {
	return j.failed.Load()
}

// Flush blocks until every change recorded before the call has been written.
func (j *Journal) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !j.enqueue(write{what: "barrier", apply: func(*gorm.DB) error {
		close(done)
		return nil
	}}) {
		return ErrJournalClosed
	}

	select {
	case <-done:
		return nil
	case <-j.stopped:
		return ErrJournalClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting changes and waits for the queue to drain.
func (j *Journal) Close(ctx context.Context) error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		if j.started {
			j.signal()
		} else {
			close(j.stopped)
		}
	}
	j.mu.Unlock()

	select {
	case <-j.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Journal) enqueue(w write) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		j.failed.Add(1)
		j.logger.Error("journal closed, change dropped", zap.String("kind", w.what), zap.String("id", w.id))
		return false
	}
	j.queue = append(j.queue, w)
	j.signal()
	return true
}

// signal must be called with mu held.
func (j *Journal) signal() {
	select {
	case j.notify <- struct{}{}:
	default:
	}
}

func (j *Journal) run(ctx context.Context) {
	defer close(j.stopped)

	for {
		select {
		case <-j.notify:
		case <-ctx.Done():
			j.logger.Warn("journal stopped with pending changes", zap.Int("pending", j.pending()))
			return
		}

		j.mu.Lock()
		batch := j.queue
		j.queue = nil
		closed := j.closed
		j.mu.Unlock()

		for _, w := range batch {
			if err := w.apply(j.db.WithContext(ctx)); err != nil {
				j.failed.Add(1)
				j.logger.Error("failed to journal change",
					zap.String("kind", w.what),
					zap.String("id", w.id),
					zap.Error(err),
				)
			}
		}

		if closed {
			return
		}
	}
}

func (j *Journal) pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.queue)
}
