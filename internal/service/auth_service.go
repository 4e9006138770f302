package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/repository"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies login credentials against stored profiles.
type AuthService struct {
	profiles repository.ProfileRepository
}

// NewAuthService builds the service.
func NewAuthService(profiles repository.ProfileRepository) *AuthService {
	return &AuthService{profiles: profiles}
}

// Authenticate returns the profile for email when password matches.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if profile.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return profile, nil
}
