package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// FilterAll is the sentinel filter value meaning "do not filter".
const FilterAll = "all"

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildFilter renders the WHERE conditions shared by List and Count.
// The returned SQL starts with "user_id = $1"; args line up with the
// placeholders.
func buildFilter(userID string, filter models.TaskFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Priority != "" && filter.Priority != FilterAll {
		args = append(args, filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.Status != "" && filter.Status != FilterAll {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{}
	var due sql.NullTime
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Priority, &task.Status,
		&due, &task.UserID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		task.DueDate = &due.Time
	}
	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TaskFilter, page models.Page) ([]*models.Task, error) {
	where, args := buildFilter(userID, filter)

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT id, title, description, priority, status, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string, filter models.TaskFilter) (int64, error) {
	where, args := buildFilter(userID, filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM tasks WHERE %s`, where)

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Task, error) {
	query := `
		SELECT id, title, description, priority, status, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, title, description, priority, status, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	var due sql.NullTime
	if task.DueDate != nil {
		due = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Status, due, task.UserID).
		Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, status = $4, due_date = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
	`
	var due sql.NullTime
	if task.DueDate != nil {
		due = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status, due, task.ID, task.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ReplaceTags rewrites the association set as delete-all/insert-new rather
// than a diff: last write wins.
func (r *PostgresRepository) ReplaceTags(ctx context.Context, taskID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	values := make([]string, 0, len(tagIDs))
	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, taskID)
	for _, tagID := range tagIDs {
		args = append(args, tagID)
		values = append(values, fmt.Sprintf("($1, $%d)", len(args)))
	}

	query := fmt.Sprintf(`INSERT INTO task_tags (task_id, tag_id) VALUES %s`, strings.Join(values, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
