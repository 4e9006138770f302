package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/observability"
)

// AdminHandler serves the admin landing page. The gate has already checked
// the admin flag by the time it runs.
type AdminHandler struct {
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{metrics: metrics}
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	user := fiber.Map{}
	if principal != nil {
		user["id"] = principal.UserID
		user["email"] = principal.Email
	}

	body := fiber.Map{
		"user": user,
		"sections": []fiber.Map{
			{"name": "plan-features", "href": "/api/admin/plan-features"},
			{"name": "footer", "href": "/api/admin/footer"},
		},
	}
	if h.metrics != nil {
		routes, errs, gate := h.metrics.Snapshot()
		body["metrics"] = fiber.Map{"routes": routes, "errors": errs, "gate": gate}
	}
	return c.JSON(body)
}
