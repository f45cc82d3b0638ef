// Package users provides the PostgreSQL-backed repository for the single
// credential record.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetSingle(ctx context.Context) (*models.User, error) {
	query := `
		SELECT id, passcode_salt, passcode_hash, created_at, updated_at
		FROM users
		ORDER BY created_at
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&user.ID, &user.PasscodeSalt, &user.PasscodeHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context) (*models.User, error) {
	query := `
		INSERT INTO users DEFAULT VALUES
		RETURNING id, created_at, updated_at
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// SetPasscode relies on the row-count of the guarded update, so the database
// itself arbitrates concurrent first-time installs.
func (r *PostgresRepository) SetPasscode(ctx context.Context, id string, salt, hash []byte) error {
	query := `
		UPDATE users
		SET passcode_salt = $2, passcode_hash = $3, updated_at = now()
		WHERE id = $1 AND passcode_hash IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, id, salt, hash)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrConflict
	}

	return nil
}
