package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/domain"
	apperrors "github.com/spec-kit/companion-service/pkg/util/errorutil"
)

const testUserHeader = "X-Test-User"

var errBackendDown = errors.New("connection refused")

// headerSessions treats the test header as a logged-in user id.
type headerSessions struct{}

func (headerSessions) GetSession(c *fiber.Ctx) (*auth.Session, error) {
	id := c.Get(testUserHeader)
	if id == "" {
		return nil, nil
	}
	return &auth.Session{UserID: id, Email: id + "@example.com"}, nil
}

func (headerSessions) Refresh(_ *fiber.Ctx, s *auth.Session) (*auth.Session, error) {
	return s, nil
}

type fakeProfiles struct {
	admins map[string]bool
}

func (f fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	return &domain.Profile{ID: id, IsAdmin: f.admins[id]}, nil
}

func (f fakeProfiles) GetByEmail(context.Context, string) (*domain.Profile, error) {
	return nil, pgx.ErrNoRows
}

// newTestApp builds an app with the gate and the same error body shape as
// the production middleware.
func newTestApp(profiles fakeProfiles) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			d := apperrors.ToDomainError(err)
			return c.Status(d.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": d.Code, "message": d.Message}})
		},
	})
	gate := auth.NewGate(auth.GateConfig{BackendConfigured: true}, headerSessions{}, profiles, nil, zap.NewNop())
	app.Use(gate.Handle)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.UnmarshalString(body, &out))
	return out
}

type memoryFeatures struct {
	rows   map[string]domain.PlanFeature
	nextID int
	err    error
}

func newMemoryFeatures(items ...domain.PlanFeature) *memoryFeatures {
	m := &memoryFeatures{rows: map[string]domain.PlanFeature{}}
	for _, f := range items {
		m.rows[f.ID] = f
	}
	return m
}

func (m *memoryFeatures) List(context.Context) ([]domain.PlanFeature, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.PlanFeature, 0, len(m.rows))
	for _, f := range m.rows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *memoryFeatures) ListActive(ctx context.Context) ([]domain.PlanFeature, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, f := range all {
		if f.Active {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memoryFeatures) Create(_ context.Context, f *domain.PlanFeature) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	f.ID = "new-" + strconv.Itoa(m.nextID)
	m.rows[f.ID] = *f
	return nil
}

func (m *memoryFeatures) Update(_ context.Context, f *domain.PlanFeature) error {
	if m.err != nil {
		return m.err
	}
	m.rows[f.ID] = *f
	return nil
}

func (m *memoryFeatures) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.rows, id)
	return nil
}

type memoryFooter struct {
	stored *domain.StoredFooter
}

func (m *memoryFooter) Get(context.Context) (*domain.StoredFooter, error) {
	if m.stored == nil {
		return nil, pgx.ErrNoRows
	}
	return m.stored, nil
}

func (m *memoryFooter) Upsert(_ context.Context, content domain.FooterContent) error {
	m.stored = &domain.StoredFooter{Content: content.Clone()}
	return nil
}

func (m *memoryFooter) Delete(context.Context) error {
	m.stored = nil
	return nil
}

type memoryTokens struct {
	balances map[string]int64
	err      error
}

func (m *memoryTokens) GetBalance(_ context.Context, userID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.balances[userID], nil
}

func (m *memoryTokens) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	m.balances[userID] += amount
	return m.balances[userID], nil
}

type memoryPremium struct {
	packages []domain.TokenPackage
}

func (m *memoryPremium) ListPackages(context.Context) ([]domain.TokenPackage, error) {
	return m.packages, nil
}

func (m *memoryPremium) GetPackage(_ context.Context, id string) (*domain.TokenPackage, error) {
	for _, p := range m.packages {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryPremium) ListContent(context.Context) ([]domain.PremiumSection, error) {
	return nil, errBackendDown
}

type memoryCharacters struct {
	chars []domain.Character
}

func (m memoryCharacters) List(context.Context) ([]domain.Character, error) {
	return m.chars, nil
}
