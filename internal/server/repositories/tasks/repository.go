// Package tasks declares the server-side repository contract for tasks and
// their tag associations.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines storage operations for tasks. Every operation is scoped
// to an owning user id; rows belonging to other users are invisible and
// lookups on them return common.ErrorNotFound.
type Repository interface {
	// List returns one page of the tasks of userID matching filter, ordered
	// by creation time descending.
	List(ctx context.Context, userID string, filter models.TaskFilter, page models.Page) ([]*models.Task, error)

	// Count returns the total number of tasks of userID matching filter,
	// regardless of pagination.
	Count(ctx context.Context, userID string, filter models.TaskFilter) (int64, error)

	// Get returns the task identified by (id, userID),
	// common.ErrorNotFound when absent or owned by someone else.
	Get(ctx context.Context, id, userID string) (*models.Task, error)

	// Create inserts a new task row.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// Update rewrites the mutable columns of the task identified by
	// (ID, UserID). Absent or foreign rows fail with common.ErrorNotFound.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the task identified by (id, userID); tag associations
	// are cascaded by the schema. Absent rows fail with common.ErrorNotFound.
	Delete(ctx context.Context, id, userID string) error

	// ReplaceTags removes every association of taskID and inserts the given
	// set. Callers wrap it in a transaction together with the task update so
	// a crash cannot strand a task between the delete and the insert.
	ReplaceTags(ctx context.Context, taskID string, tagIDs []string) error
}
