package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

// List returns every tag of the user ordered by name.
func (s *TagService) List(ctx context.Context, userID string) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx, userID)
}

// Get returns one tag, common.ErrorNotFound for absent or foreign ids.
func (s *TagService) Get(ctx context.Context, userID, id string) (*models.Tag, error) {
	return s.repomanager.Tags(s.db).Get(ctx, id, userID)
}

// Create inserts a new tag for the user. An empty color falls back to the
// default. A per-user name collision fails with common.ErrTagNameExists.
func (s *TagService) Create(ctx context.Context, userID, name, color string) (*models.Tag, error) {
	if color == "" {
		color = models.DefaultTagColor
	}

	tag := &models.Tag{
		ID:     uuid.NewString(),
		Name:   name,
		Color:  color,
		UserID: userID,
	}

	return s.repomanager.Tags(s.db).Create(ctx, tag)
}

// Update renames and recolors a tag. Absent or foreign ids fail with
// common.ErrorNotFound, a name collision with common.ErrTagNameExists.
func (s *TagService) Update(ctx context.Context, userID, id, name, color string) (*models.Tag, error) {
	repo := s.repomanager.Tags(s.db)

	tag, err := repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		tag.Name = name
	}
	if color != "" {
		tag.Color = color
	}

	if err := repo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return repo.Get(ctx, id, userID)
}

// Delete removes a tag; its task associations go with it.
func (s *TagService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Tags(s.db).Delete(ctx, id, userID)
}
