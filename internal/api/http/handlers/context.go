package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/i18n"
)

func actorFrom(c *fiber.Ctx) events.Actor {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return events.Actor{}
	}
	return events.Actor{UserID: p.UserID, Email: p.Email}
}

func languageOf(c *fiber.Ctx) string {
	return i18n.Negotiate(c.Get(fiber.HeaderAcceptLanguage), c.Query("lang"))
}
