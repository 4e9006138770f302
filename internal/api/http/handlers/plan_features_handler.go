package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/content"
	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/service"
)

const missingID = "Missing id"

// PlanFeaturesHandler serves the plan comparison table. The admin routes
// answer errors with a flat {"error": msg} body.
type PlanFeaturesHandler struct {
	content *service.ContentService
	logger  *zap.Logger
}

// NewPlanFeaturesHandler constructs handler.
func NewPlanFeaturesHandler(contentService *service.ContentService, logger *zap.Logger) *PlanFeaturesHandler {
	return &PlanFeaturesHandler{content: contentService, logger: logger.Named("plan_features_handler")}
}

// ListActive handles GET /api/plan-features.
func (h *PlanFeaturesHandler) ListActive(c *fiber.Ctx) error {
	items, err := h.content.ListActivePlanFeatures(c.UserContext())
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(items)
}

// List handles GET /api/admin/plan-features.
func (h *PlanFeaturesHandler) List(c *fiber.Ctx) error {
	items, err := h.content.ListPlanFeatures(c.UserContext())
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(items)
}

// Create handles POST /api/admin/plan-features.
func (h *PlanFeaturesHandler) Create(c *fiber.Ctx) error {
	var f domain.PlanFeature
	if err := c.BodyParser(&f); err != nil {
		return h.fail(c, http.StatusBadRequest, err)
	}
	f.ID = ""
	if err := h.content.CreatePlanFeature(c.UserContext(), actorFrom(c), &f); err != nil {
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(f)
}

// Update handles PUT /api/admin/plan-features.
func (h *PlanFeaturesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePlanFeatureRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, err)
	}
	if req.ID == "" {
		return c.Status(http.StatusBadRequest).JSON(dto.ErrorBody{Error: missingID})
	}
	f, err := h.content.UpdatePlanFeature(c.UserContext(), actorFrom(c), req.ID, req.PlanFeaturePatch)
	switch {
	case errors.Is(err, service.ErrFeatureNotFound):
		return h.fail(c, http.StatusNotFound, err)
	case err != nil:
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(f)
}

// Delete handles DELETE /api/admin/plan-features?id=.
func (h *PlanFeaturesHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(dto.ErrorBody{Error: missingID})
	}
	if err := h.content.DeletePlanFeature(c.UserContext(), actorFrom(c), id); err != nil {
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(dto.SuccessBody{Success: true})
}

// Move handles POST /api/admin/plan-features/:id/move.
func (h *PlanFeaturesHandler) Move(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(dto.ErrorBody{Error: missingID})
	}
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, err)
	}
	items, err := h.content.MovePlanFeature(c.UserContext(), actorFrom(c), id, req.Direction)
	switch {
	case errors.Is(err, service.ErrFeatureNotFound):
		return h.fail(c, http.StatusNotFound, err)
	case errors.Is(err, content.ErrIndexOutOfRange):
		return h.fail(c, http.StatusBadRequest, err)
	case err != nil:
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(items)
}

// SaveAll handles PUT /api/admin/plan-features/order.
func (h *PlanFeaturesHandler) SaveAll(c *fiber.Ctx) error {
	var req dto.SavePlanFeaturesRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, err)
	}
	items, err := h.content.SavePlanFeatures(c.UserContext(), actorFrom(c), req.Features)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, err)
	}
	return c.JSON(items)
}

func (h *PlanFeaturesHandler) fail(c *fiber.Ctx, status int, err error) error {
	if status >= http.StatusInternalServerError {
		h.logger.Error("plan feature request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(dto.ErrorBody{Error: err.Error()})
}
