// Package services implements the application logic of the task-tracking
// server on top of the repository layer. Services own transaction scope and
// cross-repository coordination; handlers stay thin.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthResult pairs a freshly issued access token with the account it belongs to.
type AuthResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// normalizeEmail canonicalizes an address for storage and lookup. Uniqueness
// is enforced on the canonical form, so Foo@x.com and foo@x.com are one account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password-backed account and signs the user in.
// A taken email fails with common.ErrEmailExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return nil, common.ErrEmailExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials and issues an access token. Unknown emails,
// wrong passwords and federated accounts without a password all fail with the
// same common.ErrInvalidCredentials so the response does not leak which
// emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, common.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile returns the account behind an authenticated user id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return user, nil
}
