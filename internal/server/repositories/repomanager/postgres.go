// Package repomanager wires the PostgreSQL repositories together and runs
// the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/migrations"
	"github.com/avolkova/inkwell/internal/server/repositories/counters"
	"github.com/avolkova/inkwell/internal/server/repositories/entries"
	"github.com/avolkova/inkwell/internal/server/repositories/genprompts"
	"github.com/avolkova/inkwell/internal/server/repositories/personas"
	"github.com/avolkova/inkwell/internal/server/repositories/prompts"
	"github.com/avolkova/inkwell/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Counters(db dbx.DBTX) counters.Repository {
	return counters.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) GratitudePrompts(db dbx.DBTX) prompts.Repository {
	return prompts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Personas(db dbx.DBTX) personas.Repository {
	return personas.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) GeneratedPrompts(db dbx.DBTX) genprompts.Repository {
	return genprompts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
