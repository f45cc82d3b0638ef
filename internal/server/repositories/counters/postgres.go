// Package counters provides the PostgreSQL-backed per-category title counter.
package counters

import (
	"context"
	"fmt"

	"github.com/avolkova/inkwell/internal/dbx"
)

// PostgresRepository implements counter storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Increment is a single atomic upsert-with-increment; the database is the
// only synchronization point for concurrent creations in one category.
func (r *PostgresRepository) Increment(ctx context.Context, category string) (int64, error) {
	query := `
		INSERT INTO entry_counters (category, counter)
		VALUES ($1, 1)
		ON CONFLICT (category)
		DO UPDATE SET counter = entry_counters.counter + 1
		RETURNING counter
	`

	var counter int64
	if err := r.db.QueryRowContext(ctx, query, category).Scan(&counter); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}

	return counter, nil
}
