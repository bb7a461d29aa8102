// Package tags declares the server-side repository contract for user-scoped
// tags and their task associations.
package tags

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines storage operations for tags. Every operation is scoped
// to an owning user id; rows belonging to other users are invisible and
// lookups on them return common.ErrorNotFound.
type Repository interface {
	// List returns all tags of userID ordered by name ascending.
	List(ctx context.Context, userID string) ([]*models.Tag, error)

	// Get returns the tag with the given id owned by userID.
	Get(ctx context.Context, id, userID string) (*models.Tag, error)

	// Create inserts a new tag. A (user_id, name) duplicate fails with
	// common.ErrTagNameExists.
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)

	// Update rewrites name and color of the tag identified by (ID, UserID).
	// Absent or foreign rows fail with common.ErrorNotFound, a name collision
	// with common.ErrTagNameExists.
	Update(ctx context.Context, tag *models.Tag) error

	// Delete removes the tag identified by (id, userID); task associations
	// are cascaded by the schema. Absent rows fail with common.ErrorNotFound.
	Delete(ctx context.Context, id, userID string) error

	// ListByIDs returns the tags of userID among the given ids. Ids that do
	// not resolve to a tag of this user are simply absent from the result.
	ListByIDs(ctx context.Context, userID string, ids []string) ([]*models.Tag, error)

	// ListByTaskIDs resolves the tags associated with each of the given
	// tasks, keyed by task id and ordered by tag name.
	ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]*models.Tag, error)
}
