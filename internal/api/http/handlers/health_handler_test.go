package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/companion-service/internal/observability"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	app := newTestApp(fakeProfiles{})
	ok := NewHealthHandler("companion-service", "test", pinger{}, pinger{})
	down := NewHealthHandler("companion-service", "test", pinger{}, pinger{err: errBackendDown})
	app.Get("/live", ok.Live)
	app.Get("/ready", ok.Ready)
	app.Get("/ready-down", down.Ready)

	resp, body := do(t, app, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"alive"`)

	resp, _ = do(t, app, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/ready-down", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "connection refused")
}

func TestAdminDashboard(t *testing.T) {
	app := newTestApp(fakeProfiles{admins: map[string]bool{"admin-1": true}})
	metrics := observability.NewMetrics()
	metrics.RecordGateOutcome("refreshed")
	app.Get("/admin", NewAdminHandler(metrics).Dashboard)

	resp, _ := do(t, app, http.MethodGet, "/admin", "", testUserHeader, "someone")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/?reason=not_admin", resp.Header.Get("Location"))

	resp, body := do(t, app, http.MethodGet, "/admin", "", adminHeaders...)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"admin-1"`)
	assert.Contains(t, body, "/api/admin/footer")
	assert.Contains(t, body, `"refreshed":1`)
}
