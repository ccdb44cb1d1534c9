package model

import "time"

// Role describes the access level of an account.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RolePassenger || r == RoleAdmin
}

// User represents a provisioned account. Accounts are seeded at startup and
// immutable afterwards; PasswordHash never leaves the auth path.
type User struct {
	ID           string
	Email        string
	Username     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}
