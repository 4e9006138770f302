package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/repository"
	"github.com/spec-kit/companion-service/internal/service"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

// AuthHandler exposes login, logout and session lookup.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, profiles repository.ProfileRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, profiles: profiles, logger: logger.Named("auth_handler")}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	profile, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return apperrors.NewUnauthorized(err.Error())
	}
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	session, err := h.sessions.Issue(c, profile)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User: dto.SessionUser{
				ID:      profile.ID,
				Email:   profile.Email,
				Role:    profile.Role,
				IsAdmin: profile.IsAdmin,
			},
			ExpiresAt: session.ExpiresAt,
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c); err != nil {
		h.logger.Warn("failed to revoke refresh token", zap.Error(err))
	}
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no active session")
	}
	isAdmin := auth.ResolveAdmin(c.UserContext(), h.profiles, principal, h.logger)
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User: dto.SessionUser{
				ID:      principal.UserID,
				Email:   principal.Email,
				Role:    principal.Role,
				IsAdmin: isAdmin,
			},
		},
	})
}
