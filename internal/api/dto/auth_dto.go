package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the caller as returned by the auth endpoints.
type SessionUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// SessionResponse standard response for auth endpoints.
type SessionResponse struct {
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
}
