package domain

import "time"

// Role enumerates authorization tiers for users.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// UserRole is a single role grant, optionally scoped to an object such as a
// franchise for franchisee grants.
type UserRole struct {
	Role     Role
	ObjectID string
}

// User is the domain model for diners, franchisees and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries the given role at any scope.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsFranchiseeOf reports whether the user holds a franchisee grant scoped to
// the given franchise.
func (u *User) IsFranchiseeOf(franchiseID string) bool {
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}
