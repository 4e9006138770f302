package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository reads and credits per-user token balances.
type TokenRepository interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository builds the repository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

// GetBalance returns zero when the user has no balance row.
func (r *tokenRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	if r.pool == nil {
		return 0, ErrNoDatabase
	}
	var balance int64
	err := r.pool.QueryRow(ctx, `SELECT balance FROM user_tokens WHERE user_id=$1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *tokenRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if r.pool == nil {
		return 0, ErrNoDatabase
	}
	const query = `
        INSERT INTO user_tokens (user_id, balance, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE SET balance = user_tokens.balance + EXCLUDED.balance, updated_at = NOW()
        RETURNING balance`
	var balance int64
	if err := r.pool.QueryRow(ctx, query, userID, amount).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}
