package domain

import "time"

// Role is the authorization level of a user. There are exactly two:
// the first user ever created is the admin, everyone else contributes.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleContributor
}

// User is an identity record. Users are created on signup or invite
// acceptance and never mutated or deleted afterwards; there is no
// updated_at on purpose.
type User struct {
	ID           string
	Name         string
	Email        string // unique, lowercased and trimmed before storage
	PasswordHash string // bcrypt encoded, always present
	Role         Role
	CreatedAt    time.Time
}
