package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskRows(tasks ...*models.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "priority", "status", "due_date", "user_id", "created_at", "updated_at"})
	for _, tk := range tasks {
		var due any
		if tk.DueDate != nil {
			due = *tk.DueDate
		}
		rows.AddRow(tk.ID, tk.Title, tk.Description, tk.Priority, tk.Status, due, tk.UserID, tk.CreatedAt, tk.UpdatedAt)
	}
	return rows
}

func TestList_NoFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*title.*FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", 10, 0).
		WillReturnRows(taskRows(
			&models.Task{ID: "task-2", Title: "Newest", Priority: models.PriorityHigh, Status: models.StatusPending, UserID: "u-1", CreatedAt: now, UpdatedAt: now},
			&models.Task{ID: "task-1", Title: "Older", Priority: models.PriorityLow, Status: models.StatusCompleted, UserID: "u-1", CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
		))

	got, err := repo.List(context.Background(), "u-1", models.TaskFilter{}, models.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "task-2" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
	if got[0].DueDate != nil {
		t.Fatalf("expected nil due date, got %v", got[0].DueDate)
	}
}

func TestList_AllFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+priority\s*=\s*\$2\s+AND\s+status\s*=\s*\$3\s+AND\s+\(title\s+ILIKE\s+\$4\s+OR\s+description\s+ILIKE\s+\$4\)`

	mock.ExpectQuery(q).
		WithArgs("u-1", "HIGH", "PENDING", "%report%", 5, 5).
		WillReturnRows(taskRows())

	got, err := repo.List(context.Background(), "u-1",
		models.TaskFilter{Priority: "HIGH", Status: "PENDING", Search: "report"},
		models.Page{Number: 2, Limit: 5})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %+v", got)
	}
}

func TestList_AllSentinelSkipsFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3`

	mock.ExpectQuery(q).
		WithArgs("u-1", 10, 0).
		WillReturnRows(taskRows())

	_, err := repo.List(context.Background(), "u-1",
		models.TaskFilter{Priority: FilterAll, Status: FilterAll},
		models.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
}

func TestCount_WithFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+status\s*=\s*\$2`).
		WithArgs("u-1", "COMPLETED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background(), "u-1", models.TaskFilter{Status: "COMPLETED"})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if total != 7 {
		t.Fatalf("want 7, got %d", total)
	}
}

func TestGet_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("task-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "task-1", "intruder")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_WithDueDate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	due := now.Add(48 * time.Hour)
	mock.ExpectQuery(`INSERT\s+INTO\s+tasks`).
		WithArgs("task-1", "Ship release", "cut the branch", "HIGH", "PENDING", due, "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	task := &models.Task{
		ID: "task-1", Title: "Ship release", Description: "cut the branch",
		Priority: models.PriorityHigh, Status: models.StatusPending,
		DueDate: &due, UserID: "u-1",
	}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at not populated: %+v", got)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tasks\s+SET\s+title\s*=\s*\$1`).
		WithArgs("Renamed", "", "LOW", "CANCELLED", nil, "task-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Task{
		ID: "task-1", Title: "Renamed",
		Priority: models.PriorityLow, Status: models.StatusCancelled,
		UserID: "intruder",
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("task-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "task-1", "u-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks`).
		WithArgs("ghost", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost", "u-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestReplaceTags_DeleteAndInsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+task_tags\s+WHERE\s+task_id\s*=\s*\$1`).
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT\s+INTO\s+task_tags\s+\(task_id,\s*tag_id\)\s+VALUES\s+\(\$1,\s*\$2\),\s*\(\$1,\s*\$3\)`).
		WithArgs("task-1", "t-1", "t-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReplaceTags(context.Background(), "task-1", []string{"t-1", "t-2"}); err != nil {
		t.Fatalf("ReplaceTags error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReplaceTags_EmptySetOnlyDeletes(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+task_tags\s+WHERE\s+task_id\s*=\s*\$1`).
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReplaceTags(context.Background(), "task-1", nil); err != nil {
		t.Fatalf("ReplaceTags error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
