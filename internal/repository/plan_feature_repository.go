package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/companion-service/internal/domain"
)

// PlanFeatureRepository manages plan_features rows.
type PlanFeatureRepository interface {
	List(ctx context.Context) ([]domain.PlanFeature, error)
	ListActive(ctx context.Context) ([]domain.PlanFeature, error)
	Create(ctx context.Context, feature *domain.PlanFeature) error
	Update(ctx context.Context, feature *domain.PlanFeature) error
	Delete(ctx context.Context, id string) error
}

type planFeatureRepository struct {
	pool *pgxpool.Pool
}

// NewPlanFeatureRepository builds the repository.
func NewPlanFeatureRepository(pool *pgxpool.Pool) PlanFeatureRepository {
	return &planFeatureRepository{pool: pool}
}

const planFeatureColumns = `id, feature_key, feature_label_en, feature_label_sv,
        free_value_en, free_value_sv, premium_value_en, premium_value_sv, sort_order, active`

func (r *planFeatureRepository) List(ctx context.Context) ([]domain.PlanFeature, error) {
	return r.query(ctx, `SELECT `+planFeatureColumns+` FROM plan_features ORDER BY sort_order`)
}

func (r *planFeatureRepository) ListActive(ctx context.Context) ([]domain.PlanFeature, error) {
	return r.query(ctx, `SELECT `+planFeatureColumns+` FROM plan_features WHERE active = TRUE ORDER BY sort_order`)
}

func (r *planFeatureRepository) Create(ctx context.Context, f *domain.PlanFeature) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        INSERT INTO plan_features (feature_key, feature_label_en, feature_label_sv,
            free_value_en, free_value_sv, premium_value_en, premium_value_sv, sort_order, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		f.FeatureKey,
		f.FeatureLabelEN,
		f.FeatureLabelSV,
		f.FreeValueEN,
		f.FreeValueSV,
		f.PremiumValueEN,
		f.PremiumValueSV,
		f.SortOrder,
		f.Active,
	).Scan(&f.ID)
}

func (r *planFeatureRepository) Update(ctx context.Context, f *domain.PlanFeature) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        UPDATE plan_features SET feature_key=$1, feature_label_en=$2, feature_label_sv=$3,
            free_value_en=$4, free_value_sv=$5, premium_value_en=$6, premium_value_sv=$7,
            sort_order=$8, active=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		f.FeatureKey,
		f.FeatureLabelEN,
		f.FeatureLabelSV,
		f.FreeValueEN,
		f.FreeValueSV,
		f.PremiumValueEN,
		f.PremiumValueSV,
		f.SortOrder,
		f.Active,
		f.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planFeatureRepository) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM plan_features WHERE id=$1`, id)
	return err
}

func (r *planFeatureRepository) query(ctx context.Context, query string) ([]domain.PlanFeature, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.PlanFeature, 0)
	for rows.Next() {
		var f domain.PlanFeature
		if err := rows.Scan(
			&f.ID,
			&f.FeatureKey,
			&f.FeatureLabelEN,
			&f.FeatureLabelSV,
			&f.FreeValueEN,
			&f.FreeValueSV,
			&f.PremiumValueEN,
			&f.PremiumValueSV,
			&f.SortOrder,
			&f.Active,
		); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}
