package models

import "time"

// UserRole defines the privilege level of a user.
type UserRole string

const (
	// RoleAdmin is the platform administrator. Admins bypass tenant
	// isolation and every privileged check.
	RoleAdmin UserRole = "admin"
	// RolePastor has administrative rights within their own church.
	RolePastor UserRole = "pastor"
	// RoleMember is a regular church member.
	RoleMember UserRole = "member"
	// RoleGuest is an unregistered or public user.
	RoleGuest UserRole = "guest"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RolePastor, RoleMember, RoleGuest:
		return true
	}
	return false
}

// Privileged reports whether the role carries tenant-wide rights
// (pastor within their church, admin everywhere).
func (r UserRole) Privileged() bool {
	return r == RoleAdmin || r == RolePastor
}

// User represents a registered account scoped to a single church.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	// PasswordHash is never serialized; repositories only select it for
	// credential verification.
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	ChurchID     string    `json:"church_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
