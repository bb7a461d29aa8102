// Package users declares the server-side repository contract for user
// accounts in persistent storage.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines operations for creating and resolving user accounts.
type Repository interface {
	// Create inserts a new user. A duplicate email fails with
	// common.ErrEmailExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by its (lower-cased) email.
	// Implementations return common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by id. Returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// FindOrCreateByEmail atomically resolves the user with the given email,
	// inserting it if absent. Used by federated login: two concurrent calls
	// for a brand-new email must resolve to the same single row.
	FindOrCreateByEmail(ctx context.Context, user *models.User) (*models.User, error)
}
