package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/repositories/counters"
	"github.com/avolkova/inkwell/internal/server/repositories/entries"
	"github.com/avolkova/inkwell/internal/server/repositories/genprompts"
	"github.com/avolkova/inkwell/internal/server/repositories/personas"
	"github.com/avolkova/inkwell/internal/server/repositories/prompts"
	"github.com/avolkova/inkwell/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Counters(db dbx.DBTX) counters.Repository
	Entries(db dbx.DBTX) entries.Repository
	GratitudePrompts(db dbx.DBTX) prompts.Repository
	Personas(db dbx.DBTX) personas.Repository
	GeneratedPrompts(db dbx.DBTX) genprompts.Repository
}
