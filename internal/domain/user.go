package domain

import "time"

// Role enumerates marketplace capabilities. Roles are flat, mutually
// exclusive tags: an admin is not implicitly a vendor and vice versa.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User is a role-store record keyed by email.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	IsFraud   bool
	CreatedAt time.Time
}
