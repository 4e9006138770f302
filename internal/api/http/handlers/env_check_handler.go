package handlers

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

var (
	publicEnvKeys = []string{
		"NEXT_PUBLIC_SUPABASE_URL",
		"NEXT_PUBLIC_SUPABASE_ANON_KEY",
		"NEXT_PUBLIC_STRIPE_PUBLISHABLE_KEY",
	}
	secretEnvKeys = []string{
		"SUPABASE_SERVICE_ROLE_KEY",
		"STRIPE_SECRET_KEY",
		"STRIPE_WEBHOOK_SECRET",
	}
)

// EnvCheckHandler reports which deployment variables are present without
// exposing their values.
type EnvCheckHandler struct {
	lookup func(string) (string, bool)
}

// NewEnvCheckHandler reads the process environment.
func NewEnvCheckHandler() *EnvCheckHandler {
	return &EnvCheckHandler{lookup: os.LookupEnv}
}

// Get handles GET /api/env-check.
func (h *EnvCheckHandler) Get(c *fiber.Ctx) error {
	nodeEnv, _ := h.lookup("APP_ENV")
	body := fiber.Map{"nodeEnv": nodeEnv}

	loaded := make([]string, 0, len(publicEnvKeys)+len(secretEnvKeys))
	for _, key := range publicEnvKeys {
		v, ok := h.lookup(key)
		if ok {
			loaded = append(loaded, key)
		}
		body[key] = mask(v)
	}
	for _, key := range secretEnvKeys {
		v, ok := h.lookup(key)
		if ok {
			loaded = append(loaded, key)
		}
		body["has_"+key] = v != ""
	}
	body["loadedKeys"] = loaded

	return c.JSON(body)
}

// mask keeps the first eight characters and the length. Empty values are null.
func mask(v string) *string {
	if v == "" {
		return nil
	}
	runes := []rune(v)
	prefix := runes
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	out := fmt.Sprintf("%s… (%d chars)", string(prefix), len(runes))
	return &out
}
