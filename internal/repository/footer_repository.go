package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/companion-service/internal/domain"
)

// footerRowID is the single row holding the footer override.
const footerRowID = 1

// FooterRepository stores the footer override document.
type FooterRepository interface {
	Get(ctx context.Context) (*domain.StoredFooter, error)
	Upsert(ctx context.Context, content domain.FooterContent) error
	Delete(ctx context.Context) error
}

type footerRepository struct {
	pool *pgxpool.Pool
}

// NewFooterRepository builds the repository.
func NewFooterRepository(pool *pgxpool.Pool) FooterRepository {
	return &footerRepository{pool: pool}
}

func (r *footerRepository) Get(ctx context.Context) (*domain.StoredFooter, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	var stored domain.StoredFooter
	err := r.pool.QueryRow(ctx,
		`SELECT content, updated_at FROM footer_content WHERE id=$1`, footerRowID,
	).Scan(&stored.Content, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *footerRepository) Upsert(ctx context.Context, content domain.FooterContent) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        INSERT INTO footer_content (id, content, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()`
	_, err := r.pool.Exec(ctx, query, footerRowID, content)
	return err
}

func (r *footerRepository) Delete(ctx context.Context) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM footer_content WHERE id=$1`, footerRowID)
	return err
}
