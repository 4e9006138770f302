package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/repository"
)

const minPasswordLength = 8

var (
	ErrEmailRequired = errors.New("email is required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

// AdminService provisions admin accounts from the command line.
type AdminService struct {
	profiles   repository.ProfileWriter
	bcryptCost int
}

// NewAdminService builds the service. bcryptCost is AUTH_BCRYPT_COST.
func NewAdminService(profiles repository.ProfileWriter, bcryptCost int) *AdminService {
	return &AdminService{profiles: profiles, bcryptCost: bcryptCost}
}

// Provision creates or promotes the admin profile for email.
func (s *AdminService) Provision(ctx context.Context, email, password string) (*domain.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.profiles.UpsertAdmin(ctx, email, hash)
}
