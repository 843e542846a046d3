package requests

import (
	"fmt"
	"sync"
	"time"

	"store-inventory/core/apperr"

	"github.com/google/uuid"
)

// Store holds every request keyed by id, in submission order.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]*Request
	order   []string
	pending map[string]int
	last    time.Time
	now     func() time.Time
}

// NewStore creates an empty request store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]*Request),
		pending: make(map[string]int),
		now:     time.Now,
	}
}

// Create stores a new pending request with a fresh id and submission time.
func (s *Store) Create(d Draft) Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if !ts.After(s.last) {
		ts = s.last.Add(time.Nanosecond)
	}
	s.last = ts

	req := &Request{
		ID:                "req-" + uuid.NewString(),
		ItemID:            d.ItemID,
		ItemName:          d.ItemName,
		QuantityRequested: d.Quantity,
		RequesterID:       d.RequesterID,
		Context:           d.Context,
		Status:            StatusPending,
		SubmittedAt:       ts,
	}
	s.byID[req.ID] = req
	s.order = append(s.order, req.ID)
	s.pending[req.ItemID]++
	return req.clone()
}

// Get returns the request with the given id.
func (s *Store) Get(id string) (Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.byID[id]
	if !ok {
		return Request{}, fmt.Errorf("request %q: %w", id, apperr.ErrNotFound)
	}
	return req.clone(), nil
}

// Decide moves a pending request to the status matching outcome.
// Requests that are not pending fail with apperr.ErrAlreadyDecided and are left untouched.
func (s *Store) Decide(id string, outcome Outcome, actorID string, serials *Serials) (Request, error) {
	if !outcome.IsValid() {
		return Request{}, fmt.Errorf("outcome %q: %w", outcome, apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.byID[id]
	if !ok {
		return Request{}, fmt.Errorf("request %q: %w", id, apperr.ErrNotFound)
	}
	if req.Status != StatusPending {
		return req.clone(), fmt.Errorf("request %q is %s: %w", id, req.Status, apperr.ErrAlreadyDecided)
	}

	req.Status = outcome.Status()
	req.Decision = &Decision{
		DecidedBy: actorID,
		DecidedAt: s.now().UTC(),
		Outcome:   outcome,
		Serials:   serials.clone(),
	}
	s.pending[req.ItemID]--
	if s.pending[req.ItemID] <= 0 {
		delete(s.pending, req.ItemID)
	}
	return req.clone(), nil
}

// HasPending reports whether any pending request references itemID.
func (s *Store) HasPending(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[itemID] > 0
}

// ListByStatus returns requests with the given status in submission order.
func (s *Store) ListByStatus(status Status) []Request {
	return s.filter(func(r *Request) bool { return r.Status == status })
}

// ListByRequester returns the requester's requests in submission order.
func (s *Store) ListByRequester(requesterID string) []Request {
	return s.filter(func(r *Request) bool { return r.RequesterID == requesterID })
}

// All returns every request in submission order.
func (s *Store) All() []Request {
	return s.filter(func(*Request) bool { return true })
}

func (s *Store) filter(keep func(*Request) bool) []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Request, 0)
	for _, id := range s.order {
		if req := s.byID[id]; keep(req) {
			out = append(out, req.clone())
		}
	}
	return out
}

// Restore loads previously persisted requests. They must be given in submission order.
func (s *Store) Restore(reqs []Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if r.ID == "" || !r.Status.IsValid() {
			return fmt.Errorf("restore request %q with status %q: %w", r.ID, r.Status, apperr.ErrInvalidInput)
		}
		_, stored := s.byID[r.ID]
		_, listed := seen[r.ID]
		if stored || listed {
			return fmt.Errorf("restore request %q twice: %w", r.ID, apperr.ErrInvalidInput)
		}
		seen[r.ID] = struct{}{}
		if (r.Status == StatusPending) != (r.Decision == nil) {
			return fmt.Errorf("restore request %q: status %s disagrees with decision: %w", r.ID, r.Status, apperr.ErrInvalidInput)
		}
	}

	for _, r := range reqs {
		req := r.clone()
		s.byID[req.ID] = &req
		s.order = append(s.order, req.ID)
		if req.Status == StatusPending {
			s.pending[req.ItemID]++
		}
		if req.SubmittedAt.After(s.last) {
			s.last = req.SubmittedAt
		}
	}
	return nil
}
