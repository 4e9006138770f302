package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/companion-service/internal/domain"
)

var errProfilesDown = errors.New("connection refused")

type fakeProfiles struct {
	byID map[string]*domain.Profile
	err  error
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}
