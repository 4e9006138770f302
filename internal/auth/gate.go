package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/observability"
	"github.com/spec-kit/companion-service/internal/repository"
)

// Response headers written by the gate.
const (
	TraceHeader   = "X-Trace-Id"
	RefreshHeader = "X-Session-Refresh"
	ReasonHeader  = "X-Gate-Reason"
)

// Reason codes attached to admin redirects.
const (
	ReasonNoSession          = "no_session"
	ReasonNotAdmin           = "not_admin"
	ReasonBackendUnavailable = "backend_unavailable"
)

// Refresh outcomes reported in RefreshHeader.
const (
	RefreshRefreshed = "refreshed"
	RefreshFailed    = "failed"
	RefreshSkipped   = "skipped"
)

const (
	adminPrefix     = "/admin"
	maxTraceIDBytes = 128
)

// SessionSource reads and refreshes cookie sessions.
type SessionSource interface {
	GetSession(c *fiber.Ctx) (*Session, error)
	Refresh(c *fiber.Ctx, s *Session) (*Session, error)
}

// GateConfig configures the edge gate.
type GateConfig struct {
	BackendConfigured bool
	FallbackPath      string
}

// Gate runs ahead of every route: it tags the request with a trace id,
// refreshes any session, and guards the admin section.
type Gate struct {
	cfg      GateConfig
	sessions SessionSource
	profiles repository.ProfileRepository
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewGate constructs the gate.
func NewGate(cfg GateConfig, sessions SessionSource, profiles repository.ProfileRepository, metrics *observability.Metrics, logger *zap.Logger) *Gate {
	if cfg.FallbackPath == "" {
		cfg.FallbackPath = "/"
	}
	return &Gate{
		cfg:      cfg,
		sessions: sessions,
		profiles: profiles,
		metrics:  metrics,
		logger:   logger.Named("gate"),
	}
}

// Handle is the fiber middleware.
func (g *Gate) Handle(c *fiber.Ctx) error {
	traceID := c.Get(TraceHeader)
	if traceID == "" || len(traceID) > maxTraceIDBytes {
		traceID = uuid.NewString()
	}
	c.Set(TraceHeader, traceID)
	c.Locals(observability.TraceIDLocal, traceID)
	log := g.logger.With(zap.String("trace_id", traceID))

	admin := IsAdminPath(c.Path())

	if !g.cfg.BackendConfigured {
		log.Error("backend connection configuration missing; set NEXT_PUBLIC_SUPABASE_URL and NEXT_PUBLIC_SUPABASE_ANON_KEY (or SUPABASE_URL/SUPABASE_ANON_KEY)")
		if admin {
			return g.deny(c, ReasonBackendUnavailable)
		}
		return c.Next()
	}

	session, err := g.sessions.GetSession(c)
	if err != nil {
		log.Info("session error", zap.Error(err))
	}

	outcome := RefreshSkipped
	if session != nil {
		refreshed, err := g.sessions.Refresh(c, session)
		if err != nil {
			log.Info("session refresh failed", zap.Error(err))
			outcome = RefreshFailed
		} else {
			log.Debug("session refreshed", zap.String("user_id", refreshed.UserID))
			session = refreshed
			outcome = RefreshRefreshed
		}
	} else {
		log.Debug("no session found, skipping refresh")
	}
	c.Set(RefreshHeader, outcome)
	g.metrics.RecordGateOutcome(outcome)

	var principal *Principal
	if session.HasUser() {
		principal = &Principal{UserID: session.UserID, Email: session.Email, Role: session.Role}
		setPrincipal(c, principal)
	}

	if !admin {
		return c.Next()
	}
	if principal == nil {
		return g.deny(c, ReasonNoSession)
	}
	if !ResolveAdmin(c.UserContext(), g.profiles, principal, log) {
		return g.deny(c, ReasonNotAdmin)
	}
	return c.Next()
}

func (g *Gate) deny(c *fiber.Ctx, reason string) error {
	g.metrics.RecordGateOutcome(reason)
	c.Set(ReasonHeader, reason)
	return c.Redirect(fallbackURL(g.cfg.FallbackPath, reason), fiber.StatusFound)
}

// IsAdminPath reports whether path lies in the protected admin section.
func IsAdminPath(path string) bool {
	return path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
}

func fallbackURL(path, reason string) string {
	u, err := url.Parse(path)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("reason", reason)
	u.RawQuery = q.Encode()
	return u.String()
}
