package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/companion-service/internal/domain"
)

// PremiumRepository reads token packages and premium page copy.
type PremiumRepository interface {
	ListPackages(ctx context.Context) ([]domain.TokenPackage, error)
	GetPackage(ctx context.Context, id string) (*domain.TokenPackage, error)
	ListContent(ctx context.Context) ([]domain.PremiumSection, error)
}

type premiumRepository struct {
	pool *pgxpool.Pool
}

// NewPremiumRepository builds the repository.
func NewPremiumRepository(pool *pgxpool.Pool) PremiumRepository {
	return &premiumRepository{pool: pool}
}

func (r *premiumRepository) ListPackages(ctx context.Context) ([]domain.TokenPackage, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name, tokens, price FROM token_packages ORDER BY price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.TokenPackage, 0)
	for rows.Next() {
		var p domain.TokenPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Tokens, &p.Price); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *premiumRepository) GetPackage(ctx context.Context, id string) (*domain.TokenPackage, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	var p domain.TokenPackage
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, tokens, price FROM token_packages WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Tokens, &p.Price); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *premiumRepository) ListContent(ctx context.Context) ([]domain.PremiumSection, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	rows, err := r.pool.Query(ctx, `SELECT section, content FROM premium_page_content`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PremiumSection
	for rows.Next() {
		var s domain.PremiumSection
		if err := rows.Scan(&s.Section, &s.Content); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
