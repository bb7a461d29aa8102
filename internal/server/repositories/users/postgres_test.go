package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(id,\s*email,\s*name,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now)
	mock.ExpectQuery(q).
		WithArgs("u-1", "a@x.com", "Alice", sql.NullString{String: "hash", Valid: true}).
		WillReturnRows(rows)

	u := &models.User{ID: "u-1", Email: "a@x.com", Name: "Alice", PasswordHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("u-1", "a@x.com", "Alice", sql.NullString{String: "hash", Valid: true}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "a@x.com", Name: "Alice", PasswordHash: "hash"})
	if !errors.Is(err, common.ErrEmailExists) {
		t.Fatalf("want common.ErrEmailExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "a@x.com", Name: "Alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*email,\s*name,\s*COALESCE\(password_hash,\s*''\),\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow("u-1", "a@x.com", "Alice", "hash", now, now)
	mock.ExpectQuery(q).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*email`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*email`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindOrCreateByEmail_ReturnsSurvivingRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(id,\s*email,\s*name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(email\)\s*DO\s+UPDATE\s+SET\s+email\s*=\s*EXCLUDED\.email\s*RETURNING\b`

	now := time.Now()
	// The surviving row belongs to a concurrent winner: id differs from the input.
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow("existing-id", "b@x.com", "Bob", "", now, now)
	mock.ExpectQuery(q).
		WithArgs("candidate-id", "b@x.com", "Bob").
		WillReturnRows(rows)

	got, err := repo.FindOrCreateByEmail(context.Background(), &models.User{ID: "candidate-id", Email: "b@x.com", Name: "Bob"})
	if err != nil {
		t.Fatalf("FindOrCreateByEmail error: %v", err)
	}
	if got.ID != "existing-id" {
		t.Fatalf("expected the surviving row, got %+v", got)
	}
	if got.PasswordHash != "" {
		t.Fatalf("federated account must have no password hash: %+v", got)
	}
}
