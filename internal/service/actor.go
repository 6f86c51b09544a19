// Package service implements the transport-agnostic domain operations for
// the project/page/object/event tree. Both the REST handlers and the
// websocket dispatcher call into this package; no HTTP or websocket types
// appear below this line.
package service

// RoleAdmin grants access to any entity regardless of ownership. Admin
// authority comes from token claims evaluated at the access-check boundary,
// not from special accounts.
const RoleAdmin = "admin"

// Actor is the resolved caller identity for a single operation.
type Actor struct {
	ID     int64
	Handle string
	Roles  []string
}

// IsAdmin reports whether the actor carries the admin role claim.
func (a Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
