package oauthstates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// PostgresRepository implements state-token storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, state string, validity time.Duration) error {
	query := `
		INSERT INTO oauth_states (state, expires_at)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, state, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, state string) (*models.OAuthState, error) {
	query := `
		SELECT state, expires_at
		FROM oauth_states
		WHERE state = $1
	`
	row := &models.OAuthState{}
	if err := r.db.QueryRowContext(ctx, query, state).Scan(&row.State, &row.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, state string) error {
	query := `
		DELETE FROM oauth_states
		WHERE state = $1
	`
	if _, err := r.db.ExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) error {
	query := `
		DELETE FROM oauth_states
		WHERE expires_at < now()
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
