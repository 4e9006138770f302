package dto

import "github.com/spec-kit/companion-service/internal/wizard"

// WizardAction moves the character wizard.
type WizardAction string

const (
	WizardNext     WizardAction = "next"
	WizardPrevious WizardAction = "previous"
	WizardSelect   WizardAction = "select"
	WizardFilter   WizardAction = "filter"
	WizardStyle    WizardAction = "style"
)

// WizardRequest carries the client's wizard state plus one action. A nil
// State starts a new wizard.
type WizardRequest struct {
	State  *wizard.State `json:"state"`
	Action WizardAction  `json:"action"`
	ID     string        `json:"id,omitempty"`
	Key    string        `json:"key,omitempty"`
	Value  string        `json:"value,omitempty"`
}

// WizardResponse is the wizard after the action.
type WizardResponse struct {
	State      wizard.State        `json:"state"`
	StepLabel  string              `json:"stepLabel"`
	Characters []wizard.Entry      `json:"characters"`
	Options    map[string][]string `json:"options"`
	Error      string              `json:"error,omitempty"`
}
