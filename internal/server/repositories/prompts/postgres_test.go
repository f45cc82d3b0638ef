package prompts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkova/inkwell/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCountActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM gratitude_prompts WHERE active`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.CountActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestGetActiveByOffset(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE active\s+ORDER BY created_at, id\s+LIMIT 1 OFFSET \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "prompt_text", "active", "created_at"}).
			AddRow("p3", "Name a comfort you take for granted.", true, time.Now()))

	prompt, err := repo.GetActiveByOffset(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt.ID != "p3" {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}
}

func TestGetActiveByOffset_NoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`LIMIT 1 OFFSET \$1`).
		WithArgs(int64(0)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActiveByOffset(context.Background(), 0)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE gratitude_prompts SET active = \$2 WHERE id = \$1`).
		WithArgs("p1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetActive(context.Background(), "p1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetActive_UnknownID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE gratitude_prompts`).
		WithArgs("nope", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "nope", true)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
