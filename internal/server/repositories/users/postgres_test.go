package users

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

func TestGetSingle_ReturnsUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "passcode_salt", "passcode_hash", "created_at", "updated_at"}).
		AddRow("u1", []byte("salt"), []byte("hash"), now, now)

	mock.ExpectQuery(`SELECT id, passcode_salt, passcode_hash, created_at, updated_at\s+FROM users`).
		WillReturnRows(rows)

	user, err := repo.GetSingle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || !user.HasPasscode() {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSingle_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, passcode_salt, passcode_hash`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSingle(context.Background())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetSingle_NullPasscodeColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "passcode_salt", "passcode_hash", "created_at", "updated_at"}).
		AddRow("u1", nil, nil, now, now)

	mock.ExpectQuery(`SELECT id, passcode_salt, passcode_hash`).WillReturnRows(rows)

	user, err := repo.GetSingle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.HasPasscode() {
		t.Fatalf("user without hash must report HasPasscode=false")
	}
}

func TestCreate_ReturnsNewRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users DEFAULT VALUES`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u1", now, now))

	user, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected id: %q", user.ID)
	}
}

func TestSetPasscode_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users\s+SET passcode_salt = \$2, passcode_hash = \$3`).
		WithArgs("u1", []byte("salt"), []byte("hash")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetPasscode(context.Background(), "u1", []byte("salt"), []byte("hash"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPasscode_AlreadySetIsConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", []byte("salt"), []byte("hash")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPasscode(context.Background(), "u1", []byte("salt"), []byte("hash"))
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
