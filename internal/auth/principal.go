package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/repository"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	UserID        string
	Email         string
	Role          string
	IsAdmin       bool
	AdminResolved bool
}

// PrincipalFromContext retrieves the authenticated caller set by the gate.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}

func setPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// ResolveAdmin reports whether the caller holds the admin flag, from the
// profile record or, failing that, the session metadata role. A profile
// lookup error contributes "not admin".
func ResolveAdmin(ctx context.Context, profiles repository.ProfileRepository, p *Principal, logger *zap.Logger) bool {
	if p == nil {
		return false
	}
	if p.AdminResolved {
		return p.IsAdmin
	}

	isAdmin := false
	profile, err := profiles.GetByID(ctx, p.UserID)
	if err != nil {
		logger.Warn("profile lookup failed; treating as not admin",
			zap.String("user_id", p.UserID), zap.Error(err))
	} else {
		isAdmin = profile.IsAdmin
	}
	if !isAdmin && p.Role == domain.RoleAdmin {
		isAdmin = true
	}

	p.IsAdmin = isAdmin
	p.AdminResolved = true
	return isAdmin
}
