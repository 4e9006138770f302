package dto

import "github.com/spec-kit/companion-service/internal/consent"

// ConsentResponse describes whether the disclaimer must be shown.
type ConsentResponse struct {
	State       string              `json:"state"`
	Preferences consent.Preferences `json:"preferences"`
	Scripts     []consent.Script    `json:"scripts"`
	Record      *consent.Record     `json:"record,omitempty"`
}
