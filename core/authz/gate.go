package authz

import (
	"fmt"

	"store-inventory/core/apperr"
)

// Role is the capability class of an authenticated user.
type Role string

const (
	RoleRequester   Role = "requester"
	RoleStorekeeper Role = "storekeeper"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleStorekeeper:
		return true
	default:
		return false
	}
}

// Principal is the authenticated {userId, role} pair supplied by the session layer.
type Principal struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// CanSubmitRequest reports whether role may submit withdrawal requests.
func CanSubmitRequest(role Role) bool {
	return role == RoleRequester
}

// CanDecideRequest reports whether role may approve or reject requests.
func CanDecideRequest(role Role) bool {
	return role == RoleStorekeeper
}

// CanManageCatalog reports whether role may add, remove or restock items.
func CanManageCatalog(role Role) bool {
	return role == RoleStorekeeper
}

// Require returns apperr.ErrForbidden unless allowed(p.Role) holds and p carries a user id.
func Require(p Principal, allowed func(Role) bool, action string) error {
	if p.UserID == "" || !allowed(p.Role) {
		return fmt.Errorf("%s as %q: %w", action, p.Role, apperr.ErrForbidden)
	}
	return nil
}
