package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	assert.Nil(t, mask(""))
	require.NotNil(t, mask("abc"))
	assert.Equal(t, "abc… (3 chars)", *mask("abc"))
	assert.Equal(t, "https://… (28 chars)", *mask("https://example.supabase.co/"))
	assert.Equal(t, "åäöåäöåä… (9 chars)", *mask("åäöåäöåäö"))
}

func TestEnvCheck_NeverLeaksValues(t *testing.T) {
	env := map[string]string{
		"APP_ENV":                       "production",
		"NEXT_PUBLIC_SUPABASE_URL":      "https://example.supabase.co",
		"NEXT_PUBLIC_SUPABASE_ANON_KEY": "",
		"STRIPE_SECRET_KEY":             "sk_live_0123456789",
	}
	h := &EnvCheckHandler{lookup: func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}}
	app := newTestApp(fakeProfiles{})
	app.Get("/api/env-check", h.Get)

	resp, body := do(t, app, http.MethodGet, "/api/env-check", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "sk_live_0123456789")
	assert.NotContains(t, body, "example.supabase.co")

	got := decode[map[string]any](t, body)
	assert.Equal(t, "production", got["nodeEnv"])
	assert.Equal(t, "https://… (27 chars)", got["NEXT_PUBLIC_SUPABASE_URL"])
	assert.Nil(t, got["NEXT_PUBLIC_SUPABASE_ANON_KEY"])
	assert.Nil(t, got["NEXT_PUBLIC_STRIPE_PUBLISHABLE_KEY"])
	assert.Equal(t, true, got["has_STRIPE_SECRET_KEY"])
	assert.Equal(t, false, got["has_STRIPE_WEBHOOK_SECRET"])
	assert.Equal(t, false, got["has_SUPABASE_SERVICE_ROLE_KEY"])
	assert.ElementsMatch(t,
		[]any{"NEXT_PUBLIC_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_ANON_KEY", "STRIPE_SECRET_KEY"},
		got["loadedKeys"])
}
