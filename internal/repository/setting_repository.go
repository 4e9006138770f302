package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepository reads key/value application settings.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

type settingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository builds the repository.
func NewSettingRepository(pool *pgxpool.Pool) SettingRepository {
	return &settingRepository{pool: pool}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	if r.pool == nil {
		return "", ErrNoDatabase
	}
	var value string
	if err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}
