package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/payment"
	"github.com/spec-kit/companion-service/internal/service"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// SignatureHeader carries the payment provider's webhook signature.
const SignatureHeader = "Stripe-Signature"

// PremiumHandler serves the premium page, checkout and the payment webhook.
type PremiumHandler struct {
	premium   *service.PremiumService
	purchases *service.PurchaseService
	logger    *zap.Logger
}

// NewPremiumHandler constructs handler.
func NewPremiumHandler(premium *service.PremiumService, purchases *service.PurchaseService, logger *zap.Logger) *PremiumHandler {
	return &PremiumHandler{premium: premium, purchases: purchases, logger: logger.Named("premium_handler")}
}

// Page handles GET /api/premium.
func (h *PremiumHandler) Page(c *fiber.Ctx) error {
	return c.JSON(h.premium.Page(c.UserContext()))
}

// Checkout handles POST /api/checkout. RequireSession runs first.
func (h *PremiumHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil || req.PlanID == "" {
		return apperrors.NewValidationError(service.PackageNotFound, nil)
	}

	url, err := h.premium.Checkout(c.UserContext(), principal.UserID, principal.Email, req.PlanID)
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		return apperrors.NewValidationError(service.PackageNotFound, map[string]any{"planId": req.PlanID})
	case errors.Is(err, service.ErrPaymentUnavailable), errors.Is(err, payment.ErrNotConfigured):
		return apperrors.NewServiceUnavailable("payments are not configured")
	case err != nil:
		h.logger.Error("checkout failed", zap.String("plan_id", req.PlanID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}

// Webhook handles POST /api/webhooks/stripe.
func (h *PremiumHandler) Webhook(c *fiber.Ctx) error {
	err := h.purchases.HandleWebhook(c.UserContext(), c.Body(), c.Get(SignatureHeader))
	switch {
	case errors.Is(err, payment.ErrWebhookSignature), errors.Is(err, payment.ErrMissingMetadata):
		h.logger.Warn("rejected webhook", zap.Error(err))
		return apperrors.NewValidationError(err.Error(), nil)
	case errors.Is(err, payment.ErrNotConfigured):
		return apperrors.NewServiceUnavailable("payments are not configured")
	case err != nil:
		return apperrors.NewInternalError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"received": true})
}
