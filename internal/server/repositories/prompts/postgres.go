// Package prompts provides the PostgreSQL-backed repository for seeded
// gratitude prompts.
package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
)

// PostgresRepository implements prompt storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gratitude_prompts WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) GetActiveByOffset(ctx context.Context, offset int64) (*models.GratitudePrompt, error) {
	query := `
		SELECT id, prompt_text, active, created_at
		FROM gratitude_prompts
		WHERE active
		ORDER BY created_at, id
		LIMIT 1 OFFSET $1
	`

	prompt := &models.GratitudePrompt{}
	err := r.db.QueryRowContext(ctx, query, offset).Scan(
		&prompt.ID, &prompt.Text, &prompt.Active, &prompt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return prompt, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE gratitude_prompts SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
