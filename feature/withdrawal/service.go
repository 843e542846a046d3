package withdrawal

import (
	"fmt"

	"store-inventory/core/apperr"
	"store-inventory/core/authz"
	"store-inventory/core/reconcile"
	"store-inventory/core/requests"

	"go.uber.org/zap"
)

// Service runs request operations through the engine.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new withdrawal service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Submit creates a pending request for the caller.
func (s *Service) Submit(p authz.Principal, itemID string, quantity int, rc requests.Context) (requests.Request, error) {
	return s.engine.SubmitRequest(p, itemID, quantity, rc)
}

// Approve approves a request with the given serial disposition.
func (s *Service) Approve(p authz.Principal, id string, serials requests.Serials) (requests.Request, error) {
	return s.engine.DecideRequest(p, id, requests.OutcomeApproved, &serials)
}

// Reject rejects a request.
func (s *Service) Reject(p authz.Principal, id string) (requests.Request, error) {
	return s.engine.DecideRequest(p, id, requests.OutcomeRejected, nil)
}

// List returns the requests the caller may see.
func (s *Service) List(p authz.Principal, status requests.Status) ([]requests.Request, error) {
	return s.engine.ListRequests(p, status)
}

// Get returns a request the caller may see. Requesters only see their own.
func (s *Service) Get(p authz.Principal, id string) (requests.Request, error) {
	req, err := s.engine.GetRequest(id)
	if err != nil {
		return requests.Request{}, err
	}
	if authz.CanDecideRequest(p.Role) {
		return req, nil
	}
	if authz.CanSubmitRequest(p.Role) && p.UserID != "" && p.UserID == req.RequesterID {
		return req, nil
	}
	return requests.Request{}, fmt.Errorf("view request %q: %w", id, apperr.ErrForbidden)
}
