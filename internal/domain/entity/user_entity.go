package entity

import (
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the aggregate root for the member domain.
// PasswordHash holds a bcrypt hash, never the plaintext.
type User struct {
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user currently holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Identity returns the snapshot of u that is stored in a session.
func (u *User) Identity() *Identity {
	return &Identity{Email: u.Email, Name: u.Name, Role: u.Role}
}
