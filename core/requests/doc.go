// Package requests stores the lifecycle of every withdrawal request.
//
// A request is created pending and leaves that state exactly once, to approved or
// rejected. Decide refuses any request that is no longer pending with
// apperr.ErrAlreadyDecided, independently of whatever lock the caller holds, so a
// request can never be decided twice.
//
// The store returns copies; callers cannot mutate stored requests.
package requests
