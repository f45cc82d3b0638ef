// Package genprompts provides the PostgreSQL-backed repository for generated
// creative prompts. The persona snapshot and exchange metadata are stored as
// jsonb so the record stays self-contained.
package genprompts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
)

// PostgresRepository implements generated-prompt storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, prompt *models.GeneratedPrompt) (*models.GeneratedPrompt, error) {
	personas, err := json.Marshal(prompt.Personas)
	if err != nil {
		return nil, fmt.Errorf("error encoding persona snapshot: %w", err)
	}
	metadata, err := json.Marshal(prompt.Metadata)
	if err != nil {
		return nil, fmt.Errorf("error encoding metadata: %w", err)
	}

	query := `
		INSERT INTO generated_prompts (personas, prompt_text, metadata, fallback)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		personas, prompt.PromptText, metadata, prompt.Fallback,
	).Scan(&prompt.ID, &prompt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return prompt, nil
}
