package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements tag storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// placeholders renders "$start, $start+1, ..." for n arguments.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Tag, error) {
	query := `
		SELECT id, name, color, user_id, created_at, updated_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		var item models.Tag
		if err := rows.Scan(&item.ID, &item.Name, &item.Color, &item.UserID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Tag, error) {
	query := `
		SELECT id, name, color, user_id, created_at, updated_at
		FROM tags
		WHERE id = $1 AND user_id = $2
	`
	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&tag.ID, &tag.Name, &tag.Color, &tag.UserID, &tag.CreatedAt, &tag.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

// Create inserts a new tag row. The (user_id, name) unique constraint is the
// final arbiter for duplicates.
func (r *PostgresRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	query := `
		INSERT INTO tags (id, name, color, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, tag.ID, tag.Name, tag.Color, tag.UserID).
		Scan(&tag.CreatedAt, &tag.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrTagNameExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := `
		UPDATE tags
		SET name = $1, color = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
	`
	res, err := r.db.ExecContext(ctx, query, tag.Name, tag.Color, tag.ID, tag.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrTagNameExists
		}
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
		DELETE FROM tags
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

func (r *PostgresRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, name, color, user_id, created_at, updated_at
		FROM tags
		WHERE user_id = $1 AND id IN (%s)
		ORDER BY name ASC
	`, placeholders(2, len(ids)))

	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		var item models.Tag
		if err := rows.Scan(&item.ID, &item.Name, &item.Color, &item.UserID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]*models.Tag, error) {
	result := make(map[string][]*models.Tag, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT tt.task_id, t.id, t.name, t.color, t.user_id, t.created_at, t.updated_at
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.task_id IN (%s)
		ORDER BY t.name ASC
	`, placeholders(1, len(taskIDs)))

	args := make([]any, 0, len(taskIDs))
	for _, id := range taskIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var item models.Tag
		if err := rows.Scan(&taskID, &item.ID, &item.Name, &item.Color, &item.UserID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result[taskID] = append(result[taskID], &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
