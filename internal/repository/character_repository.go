package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/companion-service/internal/domain"
)

// CharacterRepository lists wizard character templates.
type CharacterRepository interface {
	List(ctx context.Context) ([]domain.Character, error)
}

type characterRepository struct {
	pool *pgxpool.Pool
}

// NewCharacterRepository builds the repository.
func NewCharacterRepository(pool *pgxpool.Pool) CharacterRepository {
	return &characterRepository{pool: pool}
}

func (r *characterRepository) List(ctx context.Context) ([]domain.Character, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	const query = `
        SELECT id, name, age, image, description, personality, occupation,
            hobbies, body, ethnicity, language, relationship
        FROM characters ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Character, 0)
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Age,
			&c.Image,
			&c.Description,
			&c.Personality,
			&c.Occupation,
			&c.Hobbies,
			&c.Body,
			&c.Ethnicity,
			&c.Language,
			&c.Relationship,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
