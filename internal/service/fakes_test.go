package service

import (
	"context"
	"slices"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/payment"
)

type memoryFeatures struct {
	rows    map[string]domain.PlanFeature
	nextID  int
	updates int
}

func newMemoryFeatures(items ...domain.PlanFeature) *memoryFeatures {
	m := &memoryFeatures{rows: map[string]domain.PlanFeature{}}
	for _, f := range items {
		m.rows[f.ID] = f
	}
	return m
}

func (m *memoryFeatures) List(context.Context) ([]domain.PlanFeature, error) {
	out := make([]domain.PlanFeature, 0, len(m.rows))
	for _, f := range m.rows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *memoryFeatures) ListActive(ctx context.Context) ([]domain.PlanFeature, error) {
	all, _ := m.List(ctx)
	return slices.DeleteFunc(all, func(f domain.PlanFeature) bool { return !f.Active }), nil
}

func (m *memoryFeatures) Create(_ context.Context, f *domain.PlanFeature) error {
	m.nextID++
	f.ID = "gen-" + strconv.Itoa(m.nextID)
	m.rows[f.ID] = *f
	return nil
}

func (m *memoryFeatures) Update(_ context.Context, f *domain.PlanFeature) error {
	if _, ok := m.rows[f.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.updates++
	m.rows[f.ID] = *f
	return nil
}

func (m *memoryFeatures) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

type memoryFooter struct {
	stored *domain.StoredFooter
	getErr error
}

func (m *memoryFooter) Get(context.Context) (*domain.StoredFooter, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.stored == nil {
		return nil, pgx.ErrNoRows
	}
	return m.stored, nil
}

func (m *memoryFooter) Upsert(_ context.Context, c domain.FooterContent) error {
	m.stored = &domain.StoredFooter{Content: c}
	return nil
}

func (m *memoryFooter) Delete(context.Context) error {
	m.stored = nil
	return nil
}

type mockPremiumRepo struct{ mock.Mock }

func (m *mockPremiumRepo) ListPackages(ctx context.Context) ([]domain.TokenPackage, error) {
	args := m.Called(ctx)
	pkgs, _ := args.Get(0).([]domain.TokenPackage)
	return pkgs, args.Error(1)
}

func (m *mockPremiumRepo) GetPackage(ctx context.Context, id string) (*domain.TokenPackage, error) {
	args := m.Called(ctx, id)
	pkg, _ := args.Get(0).(*domain.TokenPackage)
	return pkg, args.Error(1)
}

func (m *mockPremiumRepo) ListContent(ctx context.Context) ([]domain.PremiumSection, error) {
	args := m.Called(ctx)
	sections, _ := args.Get(0).([]domain.PremiumSection)
	return sections, args.Error(1)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) ParseWebhook(payload []byte, signature string) (*domain.TokenPurchase, error) {
	args := m.Called(payload, signature)
	p, _ := args.Get(0).(*domain.TokenPurchase)
	return p, args.Error(1)
}

type memoryTokens struct {
	balances map[string]int64
	credits  int
}

func (m *memoryTokens) GetBalance(_ context.Context, userID string) (int64, error) {
	return m.balances[userID], nil
}

func (m *memoryTokens) Credit(_ context.Context, userID string, amount int64) (int64, error) {
	if m.balances == nil {
		m.balances = map[string]int64{}
	}
	m.credits++
	m.balances[userID] += amount
	return m.balances[userID], nil
}

type memoryDeduper struct{ seen map[string]bool }

func (d *memoryDeduper) First(_ context.Context, id string) (bool, error) {
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *memoryDeduper) Forget(_ context.Context, id string) error {
	delete(d.seen, id)
	return nil
}
