package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/domain"
)

type memoryProfileWriter struct {
	byEmail map[string]*domain.Profile
}

func (m *memoryProfileWriter) UpsertAdmin(_ context.Context, email, passwordHash string) (*domain.Profile, error) {
	p, ok := m.byEmail[email]
	if !ok {
		p = &domain.Profile{ID: "p-" + email, Email: email}
		m.byEmail[email] = p
	}
	p.PasswordHash = passwordHash
	p.IsAdmin = true
	return p, nil
}

func TestAdminService_ProvisionHashesWithConfiguredCost(t *testing.T) {
	writer := &memoryProfileWriter{byEmail: map[string]*domain.Profile{}}
	svc := NewAdminService(writer, 5)

	profile, err := svc.Provision(context.Background(), " admin@dintyp.se ", "hemligt123")
	require.NoError(t, err)
	assert.True(t, profile.IsAdmin)
	assert.Equal(t, "admin@dintyp.se", profile.Email)

	cost, err := bcrypt.Cost([]byte(profile.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
	assert.NoError(t, auth.ComparePassword(profile.PasswordHash, "hemligt123"))
}

func TestAdminService_ProvisionPromotesExisting(t *testing.T) {
	existing := &domain.Profile{ID: "u1", Email: "anna@dintyp.se"}
	writer := &memoryProfileWriter{byEmail: map[string]*domain.Profile{"anna@dintyp.se": existing}}

	profile, err := NewAdminService(writer, 4).Provision(context.Background(), "anna@dintyp.se", "långtlösen")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.True(t, profile.IsAdmin)
}

func TestAdminService_ProvisionValidates(t *testing.T) {
	svc := NewAdminService(&memoryProfileWriter{byEmail: map[string]*domain.Profile{}}, 4)

	_, err := svc.Provision(context.Background(), "  ", "hemligt123")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Provision(context.Background(), "a@b.se", "kort")
	assert.ErrorIs(t, err, ErrWeakPassword)
}
