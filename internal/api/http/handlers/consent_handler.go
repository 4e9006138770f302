package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/config"
	"github.com/spec-kit/companion-service/internal/consent"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// ConsentHandler reads and records the age and cookie disclaimer.
type ConsentHandler struct {
	analytics    config.AnalyticsConfig
	cookieSecure bool
	now          func() time.Time
}

// NewConsentHandler constructs handler.
func NewConsentHandler(analytics config.AnalyticsConfig, cookieSecure bool) *ConsentHandler {
	return &ConsentHandler{analytics: analytics, cookieSecure: cookieSecure, now: time.Now}
}

// Get handles GET /api/consent. ?settings=1 reopens the prompt.
func (h *ConsentHandler) Get(c *fiber.Ctx) error {
	gate := consent.Open(consent.NewCookieStore(c, h.cookieSecure))
	if c.QueryBool("settings") {
		gate.OpenSettings()
	}
	return c.JSON(h.response(c, gate))
}

// Post handles POST /api/consent.
func (h *ConsentHandler) Post(c *fiber.Ctx) error {
	var prefs consent.Preferences
	if err := c.BodyParser(&prefs); err != nil {
		return apperrors.NewValidationError("invalid consent payload", nil)
	}
	gate := consent.Open(consent.NewCookieStore(c, h.cookieSecure))
	if _, err := gate.Confirm(prefs, h.now()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(http.StatusOK).JSON(h.response(c, gate))
}

func (h *ConsentHandler) response(c *fiber.Ctx, gate *consent.Gate) dto.ConsentResponse {
	record := gate.Record()
	return dto.ConsentResponse{
		State:       gate.State().String(),
		Preferences: gate.Preferences(),
		Scripts:     consent.Scripts(record, c.Hostname(), h.analytics),
		Record:      record,
	}
}
