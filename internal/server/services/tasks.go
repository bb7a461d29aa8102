package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskInput carries the fields of a task creation request.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
	TagIDs      []string
}

// TaskUpdate carries a partial update. Nil pointers leave the field as is.
// DueDateSet distinguishes "clear the due date" (true, DueDate nil) from
// "do not touch it" (false). A nil TagIDs leaves associations alone; an
// empty non-nil slice removes them all.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *time.Time
	DueDateSet  bool
	TagIDs      []string
	TagIDsSet   bool
}

// TaskPage is one page of a task listing plus the unpaginated total.
type TaskPage struct {
	Tasks []*models.Task
	Total int64
}

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// resolveTagIDs checks that every id maps to a tag of userID and returns the
// resolved tags. Ids that do not fail with common.ErrTagNotOwned rather than
// being silently dropped.
func (s *TaskService) resolveTagIDs(ctx context.Context, db dbx.DBTX, userID string, tagIDs []string) ([]*models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	found, err := s.repomanager.Tags(db).ListByIDs(ctx, userID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving tags: %w", err)
	}

	byID := make(map[string]struct{}, len(found))
	for _, tag := range found {
		byID[tag.ID] = struct{}{}
	}
	for _, id := range tagIDs {
		if _, ok := byID[id]; !ok {
			return nil, common.ErrTagNotOwned
		}
	}

	return found, nil
}

// attachTags populates Tags on each task in one query. Tasks without
// associations get an empty slice, not nil, so they serialize as [].
func (s *TaskService) attachTags(ctx context.Context, tasks []*models.Task) error {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}

	byTask, err := s.repomanager.Tags(s.db).ListByTaskIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error resolving task tags: %w", err)
	}

	for _, task := range tasks {
		task.Tags = byTask[task.ID]
		if task.Tags == nil {
			task.Tags = []*models.Tag{}
		}
	}
	return nil
}

// List returns one page of the user's tasks, newest first, with tags
// resolved and the filter-matching total for pagination math.
func (s *TaskService) List(ctx context.Context, userID string, filter models.TaskFilter, page models.Page) (*TaskPage, error) {
	repo := s.repomanager.Tasks(s.db)

	tasks, err := repo.List(ctx, userID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	total, err := repo.Count(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting tasks: %w", err)
	}

	if err := s.attachTags(ctx, tasks); err != nil {
		return nil, err
	}

	return &TaskPage{Tasks: tasks, Total: total}, nil
}

// Get returns one task with tags resolved,
// common.ErrorNotFound for absent or foreign ids.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*models.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// Create inserts a task and its tag associations atomically. Unknown or
// foreign tag ids fail the whole operation with common.ErrTagNotOwned.
func (s *TaskService) Create(ctx context.Context, userID string, input TaskInput) (*models.Task, error) {

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		DueDate:     input.DueDate,
		UserID:      userID,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tags, err := s.resolveTagIDs(ctx, tx, userID, input.TagIDs)
		if err != nil {
			return err
		}

		task, err = s.repomanager.Tasks(tx).Create(ctx, task)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}

		if len(input.TagIDs) > 0 {
			if err := s.repomanager.Tasks(tx).ReplaceTags(ctx, task.ID, input.TagIDs); err != nil {
				return fmt.Errorf("error attaching tags: %w", err)
			}
		}

		task.Tags = tags
		if task.Tags == nil {
			task.Tags = []*models.Tag{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a partial update and, when TagIDsSet, replaces the
// association set, all in one transaction.
func (s *TaskService) Update(ctx context.Context, userID, id string, update TaskUpdate) (*models.Task, error) {

	var task *models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		var err error
		task, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		if update.DueDateSet {
			task.DueDate = update.DueDate
		}

		if err := repo.Update(ctx, task); err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}

		if update.TagIDsSet {
			if _, err := s.resolveTagIDs(ctx, tx, userID, update.TagIDs); err != nil {
				return err
			}
			if err := repo.ReplaceTags(ctx, id, update.TagIDs); err != nil {
				return fmt.Errorf("error replacing tags: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*models.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task; associations cascade.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, id, userID)
}
