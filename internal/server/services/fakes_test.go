package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
	countersrepo "github.com/avolkova/inkwell/internal/server/repositories/counters"
	entriesrepo "github.com/avolkova/inkwell/internal/server/repositories/entries"
	genpromptsrepo "github.com/avolkova/inkwell/internal/server/repositories/genprompts"
	personasrepo "github.com/avolkova/inkwell/internal/server/repositories/personas"
	promptsrepo "github.com/avolkova/inkwell/internal/server/repositories/prompts"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
	usersrepo "github.com/avolkova/inkwell/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	getOut *models.User
	getErr error

	createOut *models.User
	createErr error

	setPasscodeErr error
	setPasscodeID  string
}

func (f *fakeUsersRepo) GetSingle(ctx context.Context) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) SetPasscode(ctx context.Context, id string, salt, hash []byte) error {
	f.setPasscodeID = id
	return f.setPasscodeErr
}

type fakeCountersRepo struct {
	next int64
	err  error

	lastCategory string
}

func (f *fakeCountersRepo) Increment(ctx context.Context, category string) (int64, error) {
	f.lastCategory = category
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

type fakeEntriesRepo struct {
	created *models.Entry

	createErr error

	getOut *models.Entry
	getErr error

	listOut []*models.Entry
	listErr error

	countOut int64
	countErr error

	lastLimit  int
	lastOffset int
}

func (f *fakeEntriesRepo) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	entry.ID = "e1"
	f.created = entry
	return entry, nil
}

func (f *fakeEntriesRepo) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*models.Entry, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeEntriesRepo) CountByOwner(ctx context.Context, userID string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

func (f *fakeEntriesRepo) GetByID(ctx context.Context, userID, id string) (*models.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakePromptsRepo struct {
	countOut int64
	countErr error

	byOffsetOut *models.GratitudePrompt
	byOffsetErr error

	setActiveErr error

	lastOffset int64
}

func (f *fakePromptsRepo) CountActive(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

func (f *fakePromptsRepo) GetActiveByOffset(ctx context.Context, offset int64) (*models.GratitudePrompt, error) {
	f.lastOffset = offset
	if f.byOffsetErr != nil {
		return nil, f.byOffsetErr
	}
	return f.byOffsetOut, nil
}

func (f *fakePromptsRepo) SetActive(ctx context.Context, id string, active bool) error {
	return f.setActiveErr
}

type fakePersonasRepo struct {
	listOut []*models.Persona
	listErr error

	setActiveErr error
}

func (f *fakePersonasRepo) ListActive(ctx context.Context) ([]*models.Persona, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakePersonasRepo) SetActive(ctx context.Context, id string, active bool) error {
	return f.setActiveErr
}

type fakeGenPromptsRepo struct {
	created *models.GeneratedPrompt

	createErr error
}

func (f *fakeGenPromptsRepo) Create(ctx context.Context, prompt *models.GeneratedPrompt) (*models.GeneratedPrompt, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	prompt.ID = "g1"
	f.created = prompt
	return prompt, nil
}

type fakeRepoManager struct {
	users      *fakeUsersRepo
	counters   *fakeCountersRepo
	entries    *fakeEntriesRepo
	prompts    *fakePromptsRepo
	personas   *fakePersonasRepo
	genprompts *fakeGenPromptsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository               { return m.users }
func (m *fakeRepoManager) Counters(db dbx.DBTX) countersrepo.Repository         { return m.counters }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entriesrepo.Repository           { return m.entries }
func (m *fakeRepoManager) GratitudePrompts(db dbx.DBTX) promptsrepo.Repository  { return m.prompts }
func (m *fakeRepoManager) Personas(db dbx.DBTX) personasrepo.Repository         { return m.personas }
func (m *fakeRepoManager) GeneratedPrompts(db dbx.DBTX) genpromptsrepo.Repository {
	return m.genprompts
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)
