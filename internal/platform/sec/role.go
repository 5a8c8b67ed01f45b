// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including account deletion.
	RoleAdmin UserRole = "admin"

	// Library staff: maintains the catalog, renews and returns copies.
	RoleLibrarian UserRole = "librarian"

	// Default role for registered patrons who borrow copies.
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// CanMarkReturned reports whether the role may renew and return loaned copies.
func (r UserRole) CanMarkReturned() bool {
	return r.AtLeast(RoleLibrarian)
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleLibrarian:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
