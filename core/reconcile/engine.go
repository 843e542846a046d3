package reconcile

import (
	"errors"
	"fmt"
	"iter"

	"store-inventory/core/apperr"
	"store-inventory/core/authz"
	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/metrics"
	"store-inventory/core/requests"

	"go.uber.org/zap"
)

// Engine orchestrates the catalog, the request store and the ledger.
type Engine struct {
	catalog  *catalog.Catalog
	requests *requests.Store
	ledger   *ledger.Ledger
	locks    *itemLocks
	journal  Journal
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal forwards committed changes to j.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithMetrics records operation counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over the given stores.
// The engine must be the only writer of the stores from then on.
func NewEngine(c *catalog.Catalog, r *requests.Store, l *ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		catalog:  c,
		requests: r,
		ledger:   l,
		locks:    newItemLocks(),
		journal:  nopJournal{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitRequest admits a pending withdrawal request for p.
// Stock is checked but not reserved.
func (e *Engine) SubmitRequest(p authz.Principal, itemID string, quantity int, rc requests.Context) (requests.Request, error) {
	if err := authz.Require(p, authz.CanSubmitRequest, OpSubmitRequest); err != nil {
		return requests.Request{}, e.refuse(OpSubmitRequest, err)
	}

	unlock := e.locks.lock(itemID)
	defer unlock()

	item, err := e.catalog.Get(itemID)
	if err != nil {
		return requests.Request{}, e.refuse(OpSubmitRequest, err)
	}
	if quantity <= 0 {
		return requests.Request{}, e.refuse(OpSubmitRequest, fmt.Errorf("requested %d: %w", quantity, apperr.ErrInvalidQuantity))
	}
	if quantity > item.QuantityOnHand {
		return requests.Request{}, e.refuse(OpSubmitRequest,
			fmt.Errorf("requested %d of %q, %d available: %w", quantity, item.ID, item.QuantityOnHand, apperr.ErrInsufficientStock))
	}

	req := e.requests.Create(requests.Draft{
		ItemID:      item.ID,
		ItemName:    item.Name,
		Quantity:    quantity,
		RequesterID: p.UserID,
		Context:     rc,
	})
	e.journal.RecordRequest(req)
	e.metrics.RequestSubmitted()

	e.logger.Info("request submitted",
		zap.String("request_id", req.ID),
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.String("requester", p.UserID),
	)
	return req, nil
}

// DecideRequest approves or rejects a pending request.
//
// Approval re-validates stock and serials under the item lock, then decrements stock,
// records the decision and appends an "out" ledger entry as one unit. Any refusal
// leaves the request pending and the stores unchanged.
func (e *Engine) DecideRequest(p authz.Principal, requestID string, outcome requests.Outcome, serials *requests.Serials) (requests.Request, error) {
	if err := authz.Require(p, authz.CanDecideRequest, OpDecideRequest); err != nil {
		return requests.Request{}, e.refuse(OpDecideRequest, err)
	}
	if !outcome.IsValid() {
		return requests.Request{}, e.refuse(OpDecideRequest, fmt.Errorf("outcome %q: %w", outcome, apperr.ErrInvalidInput))
	}

	req, err := e.requests.Get(requestID)
	if err != nil {
		return requests.Request{}, e.refuse(OpDecideRequest, err)
	}

	unlock := e.locks.lock(req.ItemID)
	defer unlock()

	// Re-read under the lock: another decision may have landed while waiting.
	req, err = e.requests.Get(requestID)
	if err != nil {
		return requests.Request{}, e.refuse(OpDecideRequest, err)
	}
	if req.Status != requests.StatusPending {
		return req, e.refuse(OpDecideRequest, fmt.Errorf("request %q is %s: %w", req.ID, req.Status, apperr.ErrAlreadyDecided))
	}

	if outcome == requests.OutcomeRejected {
		decided, err := e.requests.Decide(req.ID, requests.OutcomeRejected, p.UserID, nil)
		if err != nil {
			return decided, e.refuse(OpDecideRequest, err)
		}
		e.journal.RecordRequest(decided)
		e.metrics.Decision(string(requests.OutcomeRejected))
		e.logger.Info("request rejected",
			zap.String("request_id", decided.ID),
			zap.String("item_id", decided.ItemID),
			zap.String("actor", p.UserID),
		)
		return decided, nil
	}

	return e.approve(p, req, serials)
}

// approve runs with the item lock held.
func (e *Engine) approve(p authz.Principal, req requests.Request, serials *requests.Serials) (requests.Request, error) {
	item, err := e.catalog.Get(req.ItemID)
	if err != nil {
		return req, e.refuse(OpDecideRequest, err)
	}
	if item.QuantityOnHand < req.QuantityRequested {
		return req, e.refuse(OpDecideRequest,
			fmt.Errorf("approve %d of %q, %d available: %w", req.QuantityRequested, item.ID, item.QuantityOnHand, apperr.ErrInsufficientStock))
	}

	disposition, err := NormalizeSerials(serials, req.QuantityRequested)
	if err != nil {
		return req, e.refuse(OpDecideRequest, err)
	}

	draft, err := ledger.Prepare(ledger.Entry{
		Direction: ledger.DirectionOut,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  req.QuantityRequested,
		ActorID:   p.UserID,
		RequestID: req.ID,
	})
	if err != nil {
		return req, e.refuse(OpDecideRequest, err)
	}

	updated, err := e.catalog.AdjustStock(item.ID, -req.QuantityRequested)
	if err != nil {
		return req, e.refuse(OpDecideRequest, surfaceStock(err))
	}

	decided, err := e.requests.Decide(req.ID, requests.OutcomeApproved, p.UserID, disposition)
	if err != nil {
		if _, undoErr := e.catalog.AdjustStock(item.ID, req.QuantityRequested); undoErr != nil {
			e.logger.Error("failed to restore stock after refused decision",
				zap.String("item_id", item.ID), zap.Error(undoErr))
		}
		return decided, e.refuse(OpDecideRequest, err)
	}

	entry := e.ledger.Commit(draft)

	e.journal.RecordItem(updated)
	e.journal.RecordRequest(decided)
	e.journal.RecordEntry(entry)
	e.metrics.Decision(string(requests.OutcomeApproved))
	e.metrics.LedgerEntry(string(entry.Direction))

	e.logger.Info("request approved",
		zap.String("request_id", decided.ID),
		zap.String("item_id", item.ID),
		zap.Int("quantity", req.QuantityRequested),
		zap.Int("on_hand", updated.QuantityOnHand),
		zap.String("actor", p.UserID),
	)
	return decided, nil
}

// AddItem creates a catalog item and records its initial quantity as an "in" entry.
func (e *Engine) AddItem(p authz.Principal, spec catalog.ItemSpec) (catalog.Item, error) {
	if err := authz.Require(p, authz.CanManageCatalog, OpAddItem); err != nil {
		return catalog.Item{}, e.refuse(OpAddItem, err)
	}

	id := catalog.NewItemID()
	unlock := e.locks.lock(id)
	defer unlock()

	draft, err := ledger.Prepare(ledger.Entry{
		Direction: ledger.DirectionIn,
		ItemID:    id,
		ItemName:  spec.Normalize().Name,
		Quantity:  spec.Quantity,
		ActorID:   p.UserID,
		Remarks:   "initial stock",
	})
	if err != nil {
		return catalog.Item{}, e.refuse(OpAddItem, err)
	}

	item, err := e.catalog.AddItemAs(id, spec)
	if err != nil {
		return catalog.Item{}, e.refuse(OpAddItem, err)
	}
	entry := e.ledger.Commit(draft)

	e.journal.RecordItem(item)
	e.journal.RecordEntry(entry)
	e.metrics.LedgerEntry(string(entry.Direction))

	e.logger.Info("item added",
		zap.String("item_id", item.ID),
		zap.String("part_number", item.PartNumber),
		zap.Int("quantity", item.QuantityOnHand),
		zap.String("actor", p.UserID),
	)
	return item, nil
}

// RemoveItem deletes an item that no pending request references.
// Its ledger history is kept.
func (e *Engine) RemoveItem(p authz.Principal, itemID string) error {
	if err := authz.Require(p, authz.CanManageCatalog, OpRemoveItem); err != nil {
		return e.refuse(OpRemoveItem, err)
	}

	unlock := e.locks.lock(itemID)
	defer unlock()

	if err := e.catalog.RemoveItem(itemID, e.requests.HasPending); err != nil {
		return e.refuse(OpRemoveItem, err)
	}
	e.journal.RecordItemRemoved(itemID)

	e.logger.Info("item removed", zap.String("item_id", itemID), zap.String("actor", p.UserID))
	return nil
}

// CheckIn adds quantity to an item's stock as a manual adjustment.
func (e *Engine) CheckIn(p authz.Principal, itemID string, quantity int, remarks string) (catalog.Item, ledger.Entry, error) {
	if err := authz.Require(p, authz.CanManageCatalog, OpCheckIn); err != nil {
		return catalog.Item{}, ledger.Entry{}, e.refuse(OpCheckIn, err)
	}
	if quantity <= 0 {
		return catalog.Item{}, ledger.Entry{}, e.refuse(OpCheckIn, fmt.Errorf("check in %d: %w", quantity, apperr.ErrInvalidQuantity))
	}

	unlock := e.locks.lock(itemID)
	defer unlock()

	item, err := e.catalog.Get(itemID)
	if err != nil {
		return catalog.Item{}, ledger.Entry{}, e.refuse(OpCheckIn, err)
	}

	draft, err := ledger.Prepare(ledger.Entry{
		Direction: ledger.DirectionIn,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  quantity,
		ActorID:   p.UserID,
		Remarks:   remarks,
	})
	if err != nil {
		return catalog.Item{}, ledger.Entry{}, e.refuse(OpCheckIn, err)
	}

	updated, err := e.catalog.AdjustStock(item.ID, quantity)
	if err != nil {
		return catalog.Item{}, ledger.Entry{}, e.refuse(OpCheckIn, err)
	}
	entry := e.ledger.Commit(draft)

	e.journal.RecordItem(updated)
	e.journal.RecordEntry(entry)
	e.metrics.LedgerEntry(string(entry.Direction))

	e.logger.Info("stock checked in",
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.Int("on_hand", updated.QuantityOnHand),
		zap.String("actor", p.UserID),
	)
	return updated, entry, nil
}

// GetItem returns one catalog item.
func (e *Engine) GetItem(itemID string) (catalog.Item, error) {
	return e.catalog.Get(itemID)
}

// GetRequest returns one request.
func (e *Engine) GetRequest(requestID string) (requests.Request, error) {
	return e.requests.Get(requestID)
}

// CatalogSnapshot returns every item in catalog order.
func (e *Engine) CatalogSnapshot() []catalog.Item {
	return e.catalog.Snapshot()
}

// ListPendingRequests returns pending requests in submission order.
func (e *Engine) ListPendingRequests() []requests.Request {
	return e.requests.ListByStatus(requests.StatusPending)
}

// ListRequestsFor returns the requester's requests in submission order.
func (e *Engine) ListRequestsFor(requesterID string) []requests.Request {
	return e.requests.ListByRequester(requesterID)
}

// ListRequests returns the requests visible to p: every request for a storekeeper,
// their own for a requester. A non-empty status narrows the result.
func (e *Engine) ListRequests(p authz.Principal, status requests.Status) ([]requests.Request, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("status %q: %w", status, apperr.ErrInvalidInput)
	}

	var visible []requests.Request
	switch {
	case authz.CanDecideRequest(p.Role):
		visible = e.requests.All()
	case authz.CanSubmitRequest(p.Role) && p.UserID != "":
		visible = e.requests.ListByRequester(p.UserID)
	default:
		return nil, fmt.Errorf("list requests as %q: %w", p.Role, apperr.ErrForbidden)
	}

	if status == "" {
		return visible, nil
	}
	out := make([]requests.Request, 0, len(visible))
	for _, r := range visible {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

// LedgerFor returns the item's ledger entries in timestamp order.
// History of removed items stays readable.
func (e *Engine) LedgerFor(itemID string) iter.Seq[ledger.Entry] {
	return e.ledger.EntriesForItem(itemID)
}

// Verify replays the item's ledger and compares it with the stock on hand.
func (e *Engine) Verify(itemID string) (Audit, error) {
	unlock := e.locks.lock(itemID)
	defer unlock()

	item, err := e.catalog.Get(itemID)
	if err != nil {
		return Audit{}, err
	}
	return e.audit(item), nil
}

// VerifyAll audits every item in the catalog.
func (e *Engine) VerifyAll() Summary {
	items := e.catalog.Snapshot()
	summary := Summary{Audits: make([]Audit, 0, len(items))}
	for _, it := range items {
		a, err := e.Verify(it.ID)
		if err != nil {
			// Removed since the snapshot.
			continue
		}
		summary.Items++
		if !a.Balanced {
			summary.Unbalanced++
		}
		summary.Audits = append(summary.Audits, a)
	}
	return summary
}

func (e *Engine) audit(item catalog.Item) Audit {
	in, out := ledger.Totals(e.ledger.EntriesForItem(item.ID))
	expected := item.Baseline + in - out
	return Audit{
		ItemID:   item.ID,
		ItemName: item.Name,
		Baseline: item.Baseline,
		In:       in,
		Out:      out,
		Expected: expected,
		OnHand:   item.QuantityOnHand,
		Balanced: expected == item.QuantityOnHand,
	}
}

// State copies the three stores for export. The stores are read one after another,
// so a decision committed between reads may appear in some of them only.
func (e *Engine) State() State {
	state := State{
		Items:    e.catalog.Snapshot(),
		Requests: e.requests.All(),
	}
	for entry := range e.ledger.All() {
		state.Entries = append(state.Entries, entry)
	}
	return state
}

// refuse logs and counts a refused operation and returns err unchanged.
func (e *Engine) refuse(op string, err error) error {
	kind := apperr.KindName(err)
	e.metrics.Refusal(op, kind)
	e.logger.Warn("operation refused",
		zap.String("operation", op),
		zap.String("kind", kind),
		zap.Error(err),
	)
	return err
}

// surfaceStock reports the catalog's internal negative-stock guard as insufficient stock.
func surfaceStock(err error) error {
	if errors.Is(err, apperr.ErrWouldGoNegative) {
		return fmt.Errorf("%s: %w", err.Error(), apperr.ErrInsufficientStock)
	}
	return err
}

type nopJournal struct{}

func (nopJournal) RecordItem(catalog.Item) {}

func (nopJournal) RecordItemRemoved(string) {}

func (nopJournal) RecordRequest(requests.Request) {}

func (nopJournal) RecordEntry(ledger.Entry) {}
