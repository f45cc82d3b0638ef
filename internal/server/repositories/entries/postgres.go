// Package entries provides the PostgreSQL-backed repository for journal
// entries and their paginated, owner-scoped retrieval.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `
	e.id, e.user_id, e.entry_type, e.title, e.body_markdown,
	e.anger_reason, e.gratitude_prompt_id, e.creative_prompt_id,
	gp.prompt_text, cp.prompt_text,
	e.created_at, e.updated_at
`

const selectJoins = `
	FROM journal_entries e
	LEFT JOIN gratitude_prompts gp ON gp.id = e.gratitude_prompt_id
	LEFT JOIN generated_prompts cp ON cp.id = e.creative_prompt_id
`

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	e := &models.Entry{}
	err := row.Scan(
		&e.ID, &e.UserID, &e.Type, &e.Title, &e.BodyMarkdown,
		&e.AngerReason, &e.GratitudePromptID, &e.CreativePromptID,
		&e.GratitudePromptText, &e.CreativePromptText,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO journal_entries
			(user_id, entry_type, title, body_markdown, anger_reason, gratitude_prompt_id, creative_prompt_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, string(entry.Type), entry.Title, entry.BodyMarkdown,
		entry.AngerReason, entry.GratitudePromptID, entry.CreativePromptID,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*models.Entry, error) {
	query := `SELECT ` + selectColumns + selectJoins + `
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Entry, error) {
	query := `SELECT ` + selectColumns + selectJoins + `
		WHERE e.id = $1 AND e.user_id = $2
	`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return entry, nil
}
