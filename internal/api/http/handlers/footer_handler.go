package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/content"
	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/service"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// FooterHandler serves the site footer and its admin editor.
type FooterHandler struct {
	content *service.ContentService
}

// NewFooterHandler constructs handler.
func NewFooterHandler(contentService *service.ContentService) *FooterHandler {
	return &FooterHandler{content: contentService}
}

// Get handles GET /api/footer.
func (h *FooterHandler) Get(c *fiber.Ctx) error {
	lang := languageOf(c)
	footer, stored := h.content.Footer(c.UserContext(), lang)
	return c.JSON(dto.FooterResponse{Content: footer, Stored: stored, Language: lang})
}

// Replace handles PUT /api/admin/footer.
func (h *FooterHandler) Replace(c *fiber.Ctx) error {
	var body domain.FooterContent
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid footer payload", nil)
	}
	return h.edit(c, func(e *content.FooterEditor) error {
		return e.Replace(body)
	})
}

// Reset handles DELETE /api/admin/footer.
func (h *FooterHandler) Reset(c *fiber.Ctx) error {
	lang := languageOf(c)
	footer, err := h.content.ResetFooter(c.UserContext(), lang, actorFrom(c))
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}
	return c.JSON(dto.FooterResponse{Content: footer, Language: lang})
}

// AddItem handles POST /api/admin/footer/items.
func (h *FooterHandler) AddItem(c *fiber.Ctx) error {
	var req dto.FooterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid item payload", nil)
	}
	return h.edit(c, func(e *content.FooterEditor) error {
		_, err := e.AddItem(req.Section)
		return err
	})
}

// ChangeItem handles PATCH /api/admin/footer/items/:section/:id.
func (h *FooterHandler) ChangeItem(c *fiber.Ctx) error {
	section, id, err := itemRef(c)
	if err != nil {
		return err
	}
	var patch dto.FooterItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid item payload", nil)
	}
	return h.edit(c, func(e *content.FooterEditor) error {
		if patch.Title != nil {
			if err := e.ChangeItem(section, id, "title", *patch.Title); err != nil {
				return err
			}
		}
		if patch.URL != nil {
			return e.ChangeItem(section, id, "url", *patch.URL)
		}
		return nil
	})
}

// RemoveItem handles DELETE /api/admin/footer/items/:section/:id.
func (h *FooterHandler) RemoveItem(c *fiber.Ctx) error {
	section, id, err := itemRef(c)
	if err != nil {
		return err
	}
	return h.edit(c, func(e *content.FooterEditor) error {
		return e.RemoveItem(section, id)
	})
}

func (h *FooterHandler) edit(c *fiber.Ctx, apply func(*content.FooterEditor) error) error {
	lang := languageOf(c)
	footer, err := h.content.EditFooter(c.UserContext(), lang, actorFrom(c), apply)
	switch {
	case errors.Is(err, content.ErrUnknownSection), errors.Is(err, content.ErrUnknownField):
		return apperrors.NewValidationError(err.Error(), nil)
	case err != nil:
		return apperrors.NewUpstreamError(err)
	}
	return c.Status(http.StatusOK).JSON(dto.FooterResponse{Content: footer, Stored: true, Language: lang})
}

func itemRef(c *fiber.Ctx) (domain.FooterSection, int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return "", 0, apperrors.NewValidationError("invalid item id", map[string]any{"id": c.Params("id")})
	}
	return domain.FooterSection(c.Params("section")), id, nil
}
