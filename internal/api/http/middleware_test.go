package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/observability"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

func newMiddlewareApp(metrics *observability.Metrics, timeout time.Duration) *fiber.App {
	logger := zap.NewNop()
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: ErrorHandler(logger, metrics),
	})
	RegisterMiddlewares(app, logger, metrics, timeout)
	return app
}

func readErrorBody(t *testing.T, body io.Reader) ErrorBody {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var out ErrorBody
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return out
}

func TestErrorHandlingMiddleware_RendersDomainError(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareApp(metrics, 0)
	app.Get("/thing", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("bad section", map[string]any{"section": "nope"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/thing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := readErrorBody(t, resp.Body)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "bad section", body.Error.Message)
	assert.Equal(t, "nope", body.Error.Details["section"])

	_, errs, _ := metrics.Snapshot()
	assert.Equal(t, int64(1), errs["GET|/thing|VALIDATION_FAILED"])
}

func TestErrorHandlingMiddleware_RecoversPanic(t *testing.T) {
	app := newMiddlewareApp(observability.NewMetrics(), 0)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", readErrorBody(t, resp.Body).Error.Code)
}

func TestErrorHandlingMiddleware_HidesInternalMessage(t *testing.T) {
	app := newMiddlewareApp(nil, 0)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.1:5432: connection refused")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	body := readErrorBody(t, resp.Body)
	assert.Equal(t, "internal server error", body.Error.Message)
}

func TestRequestTimeoutMiddleware_MapsDeadlineToGatewayTimeout(t *testing.T) {
	app := newMiddlewareApp(nil, 10*time.Millisecond)
	app.Get("/slow", func(c *fiber.Ctx) error {
		<-c.UserContext().Done()
		return c.UserContext().Err()
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/slow", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", readErrorBody(t, resp.Body).Error.Code)
}

func TestErrorHandler_UnmatchedRoute(t *testing.T) {
	app := newMiddlewareApp(nil, 0)
	app.Get("/known", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", readErrorBody(t, resp.Body).Error.Code)
}
