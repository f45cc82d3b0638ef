// Package personas provides the PostgreSQL-backed repository for creative
// writing personas.
package personas

import (
	"context"
	"fmt"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
)

// PostgresRepository implements persona storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.Persona, error) {
	query := `
		SELECT id, name, description, active, display_order, created_at, updated_at
		FROM creative_personas
		WHERE active
		ORDER BY display_order, created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select personas: %w", err)
	}
	defer rows.Close()

	var result []*models.Persona
	for rows.Next() {
		p := &models.Persona{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Active, &p.DisplayOrder,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE creative_personas SET active = $2, updated_at = now() WHERE id = $1`, id, active)
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
