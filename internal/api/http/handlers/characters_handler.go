package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/repository"
	"github.com/spec-kit/companion-service/internal/wizard"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// CharactersHandler serves the character templates and drives the wizard.
type CharactersHandler struct {
	characters repository.CharacterRepository
}

// NewCharactersHandler constructs handler.
func NewCharactersHandler(characters repository.CharacterRepository) *CharactersHandler {
	return &CharactersHandler{characters: characters}
}

// List handles GET /api/characters. Filter values come from the query string
// and only highlight matches; every character is returned.
func (h *CharactersHandler) List(c *fiber.Ctx) error {
	chars, err := h.characters.List(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	var state wizard.State
	w := wizard.Restore(chars, state)
	for _, key := range wizard.FilterKeys {
		if value := c.Query(key); value != "" {
			if err := w.SetFilter(key, value); err != nil {
				return apperrors.NewValidationError(err.Error(), map[string]any{"filter": key})
			}
		}
	}

	return c.JSON(fiber.Map{
		"characters": w.View(),
		"filters":    w.Filters(),
		"options":    w.AllOptions(),
	})
}

// Wizard handles POST /api/characters/wizard. The client keeps the state and
// sends it back with one action; the response carries the new state.
func (h *CharactersHandler) Wizard(c *fiber.Ctx) error {
	var req dto.WizardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid wizard payload", nil)
	}

	chars, err := h.characters.List(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	var w *wizard.Wizard
	if req.State == nil {
		w = wizard.New(chars)
	} else {
		w = wizard.Restore(chars, *req.State)
	}

	status := http.StatusOK
	var actionErr error
	switch req.Action {
	case "":
	case dto.WizardNext:
		actionErr = w.Next()
	case dto.WizardPrevious:
		w.Previous()
	case dto.WizardSelect:
		actionErr = w.Select(req.ID)
	case dto.WizardFilter:
		actionErr = w.SetFilter(req.Key, req.Value)
	case dto.WizardStyle:
		actionErr = w.SetStyle(req.Value)
	default:
		actionErr = fmt.Errorf("unknown action %q", req.Action)
	}

	resp := dto.WizardResponse{
		State:      w.State(),
		StepLabel:  w.Step().String(),
		Characters: w.View(),
		Options:    w.AllOptions(),
	}
	if actionErr != nil {
		status = http.StatusBadRequest
		resp.Error = actionErr.Error()
	}
	return c.Status(status).JSON(resp)
}
