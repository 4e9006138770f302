package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/companion-service/internal/api/http/handlers"
	"github.com/spec-kit/companion-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Gate         *auth.Gate
	RequireAdmin fiber.Handler

	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	PlanFeatures *handlers.PlanFeaturesHandler
	Footer       *handlers.FooterHandler
	Consent      *handlers.ConsentHandler
	Characters   *handlers.CharactersHandler
	Chat         *handlers.ChatHandler
	Tokens       *handlers.TokensHandler
	EnvCheck     *handlers.EnvCheckHandler
	Premium      *handlers.PremiumHandler
}

// RegisterRoutes wires HTTP routes. The gate runs ahead of every route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	app.Get("/admin", cfg.Admin.Dashboard)

	api := app.Group("/api")
	api.Get("/footer", cfg.Footer.Get)
	api.Get("/plan-features", cfg.PlanFeatures.ListActive)
	api.Get("/consent", cfg.Consent.Get)
	api.Post("/consent", cfg.Consent.Post)
	api.Get("/characters", cfg.Characters.List)
	api.Post("/characters/wizard", cfg.Characters.Wizard)
	api.Post("/chat", cfg.Chat.Send)
	api.Get("/user-token-balance", cfg.Tokens.Balance)
	api.Get("/env-check", cfg.EnvCheck.Get)
	api.Get("/premium", cfg.Premium.Page)
	api.Post("/checkout", auth.RequireSession(), cfg.Premium.Checkout)
	api.Post("/webhooks/stripe", cfg.Premium.Webhook)

	admin := api.Group("/admin", cfg.RequireAdmin)
	admin.Get("/plan-features", cfg.PlanFeatures.List)
	admin.Post("/plan-features", cfg.PlanFeatures.Create)
	admin.Put("/plan-features", cfg.PlanFeatures.Update)
	admin.Delete("/plan-features", cfg.PlanFeatures.Delete)
	admin.Put("/plan-features/order", cfg.PlanFeatures.SaveAll)
	admin.Post("/plan-features/:id/move", cfg.PlanFeatures.Move)

	admin.Put("/footer", cfg.Footer.Replace)
	admin.Delete("/footer", cfg.Footer.Reset)
	admin.Post("/footer/items", cfg.Footer.AddItem)
	admin.Patch("/footer/items/:section/:id", cfg.Footer.ChangeItem)
	admin.Delete("/footer/items/:section/:id", cfg.Footer.RemoveItem)
}
