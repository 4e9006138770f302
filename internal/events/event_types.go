package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTokensPurchased EventType = "tokens_purchased"
	EventContentChanged  EventType = "content_changed"
)

// Actor identifies who caused an event. Empty for provider callbacks.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Subject   string    `json:"subject"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TokensPurchasedPayload is published once a checkout completes.
type TokensPurchasedPayload struct {
	UserID    string  `json:"user_id"`
	PackageID string  `json:"package_id,omitempty"`
	Tokens    int64   `json:"tokens"`
	Price     float64 `json:"price"`
	SessionID string  `json:"session_id"`
}

// Content kinds carried by ContentChangedPayload.
const (
	ContentFooter       = "footer"
	ContentPlanFeatures = "plan_features"
)

// ContentChangedPayload is published after an admin edit.
type ContentChangedPayload struct {
	Kind   string `json:"kind"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}
