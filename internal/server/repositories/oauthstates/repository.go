// Package oauthstates provides a PostgreSQL-backed repository for the
// short-lived state tokens that correlate an authorization redirect with its
// callback.
package oauthstates

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines storage operations for OAuth state tokens.
type Repository interface {
	// Create inserts a new state token with an expiry time of now+validity.
	Create(ctx context.Context, state string, validity time.Duration) error

	// Find returns the state row for the given token string,
	// common.ErrorNotFound when absent.
	Find(ctx context.Context, state string) (*models.OAuthState, error)

	// Delete removes a state token. States are single-use; the callback
	// deletes its state whether the exchange succeeds or not.
	Delete(ctx context.Context, state string) error

	// DeleteExpired removes every state whose expiry is in the past.
	DeleteExpired(ctx context.Context) error
}
