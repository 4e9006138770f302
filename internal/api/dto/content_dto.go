package dto

import "github.com/spec-kit/companion-service/internal/domain"

// ErrorBody is the flat error shape used by the plan feature API.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody acknowledges a delete.
type SuccessBody struct {
	Success bool `json:"success"`
}

// UpdatePlanFeatureRequest names the row to change. Only the patch fields
// present in the body are written.
type UpdatePlanFeatureRequest struct {
	ID string `json:"id"`
	domain.PlanFeaturePatch
}

// MoveRequest moves a plan feature up (-1) or down (+1).
type MoveRequest struct {
	Direction int `json:"direction"`
}

// SavePlanFeaturesRequest replaces the ordering of the whole table.
type SavePlanFeaturesRequest struct {
	Features []domain.PlanFeature `json:"features"`
}

// FooterResponse wraps the footer with whether it came from storage.
type FooterResponse struct {
	Content  domain.FooterContent `json:"content"`
	Stored   bool                 `json:"stored"`
	Language string               `json:"language"`
}

// FooterItemRequest adds a link to a section.
type FooterItemRequest struct {
	Section domain.FooterSection `json:"section"`
}

// FooterItemPatch changes a link; nil fields are untouched.
type FooterItemPatch struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
}
