package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/companion-service/internal/domain"
)

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
}

// ProfileWriter provisions profiles outside the login flow.
type ProfileWriter interface {
	UpsertAdmin(ctx context.Context, email, passwordHash string) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

// NewProfileWriter returns the Postgres-backed writer.
func NewProfileWriter(pool *pgxpool.Pool) ProfileWriter {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
        SELECT id, email, password_hash, is_admin, role, created_at, updated_at
        FROM profiles WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const query = `
        SELECT id, email, password_hash, is_admin, role, created_at, updated_at
        FROM profiles WHERE lower(email)=lower($1)`
	return r.scanOne(ctx, query, email)
}

// UpsertAdmin creates the profile or promotes the existing one with the same
// email, replacing its password hash.
func (r *profileRepository) UpsertAdmin(ctx context.Context, email, passwordHash string) (*domain.Profile, error) {
	const query = `
        INSERT INTO profiles (email, password_hash, is_admin)
        VALUES ($1, $2, TRUE)
        ON CONFLICT ((lower(email))) DO UPDATE
            SET password_hash = EXCLUDED.password_hash, is_admin = TRUE, updated_at = NOW()
        RETURNING id, email, password_hash, is_admin, role, created_at, updated_at`
	return r.scanOne(ctx, query, email, passwordHash)
}

func (r *profileRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Profile, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	var p domain.Profile
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.IsAdmin,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
