package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/repository"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// RequireSession ensures the gate attached a principal.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("session required")
		}
		return c.Next()
	}
}

// RequireAdmin guards admin API routes, which live outside the /admin page prefix.
func RequireAdmin(profiles repository.ProfileRepository, logger *zap.Logger) fiber.Handler {
	log := logger.Named("require_admin")
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("session required")
		}
		if !ResolveAdmin(c.UserContext(), profiles, principal, log) {
			return apperrors.NewForbidden("admin required")
		}
		return c.Next()
	}
}
