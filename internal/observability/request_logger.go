package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceIDLocal is the fiber locals key holding the request trace identifier.
const TraceIDLocal = "trace_id"

// TraceID returns the trace identifier attached by the edge gate, if any.
func TraceID(c *fiber.Ctx) string {
	if v, ok := c.Locals(TraceIDLocal).(string); ok {
		return v
	}
	return ""
}

// RequestLogger logs one line per request and feeds the in-memory counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	log := logger.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(c.Route().Path, c.Method(), status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("trace_id", TraceID(c)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("request completed", fields...)
		} else {
			log.Debug("request completed", fields...)
		}
		return err
	}
}
