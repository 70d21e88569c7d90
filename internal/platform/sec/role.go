// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// It is resolved once per request from the JWT claims and passed explicitly
// into workflow operations. Handlers never re-derive it from storage.
type Role string

const (
	// Unrestricted back-office access: confirms purchases and downloads,
	// manages the catalog, reads the notification inbox.
	RoleAdmin Role = "admin"

	// Can view the sales of their own published books.
	RoleAuthor Role = "author"

	// Default role for standard registered users.
	RoleClient Role = "client"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether the role carries staff/operator privileges.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsAuthor reports whether the role is the author classification.
// An unknown or absent role is a plain false, never an error.
func (r Role) IsAuthor() bool { return r == RoleAuthor }

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleAuthor:
		return 20
	case RoleClient:
		return 10
	default:
		return 0
	}
}
