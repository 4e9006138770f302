package domain

import "time"

// RoleAdmin is the session metadata role that grants admin access when the
// profile record cannot be read.
const RoleAdmin = "admin"

// Profile is the per-user record keyed by the auth user id.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
