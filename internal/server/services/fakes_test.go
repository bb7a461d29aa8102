package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	oauthstatesrepo "github.com/dmitrijs2005/taskvault/internal/server/repositories/oauthstates"
	tagsrepo "github.com/dmitrijs2005/taskvault/internal/server/repositories/tags"
	tasksrepo "github.com/dmitrijs2005/taskvault/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskvault/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	upsertOut *models.User
	upsertErr error
	upsertIn  *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeUsersRepo) FindOrCreateByEmail(ctx context.Context, u *models.User) (*models.User, error) {
	f.upsertIn = u
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.upsertOut != nil {
		return f.upsertOut, nil
	}
	return u, nil
}

type fakeTagsRepo struct {
	listOut []*models.Tag
	listErr error

	getOut *models.Tag
	getErr error

	createOut *models.Tag
	createErr error
	createIn  *models.Tag

	updateErr error
	updateIn  *models.Tag

	deleteErr error

	byIDsOut []*models.Tag
	byIDsErr error
	byIDsIn  []string

	byTasksOut map[string][]*models.Tag
	byTasksErr error
}

func (f *fakeTagsRepo) List(ctx context.Context, userID string) ([]*models.Tag, error) {
	return f.listOut, f.listErr
}
func (f *fakeTagsRepo) Get(ctx context.Context, id, userID string) (*models.Tag, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTagsRepo) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	f.createIn = tag
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return tag, nil
}
func (f *fakeTagsRepo) Update(ctx context.Context, tag *models.Tag) error {
	f.updateIn = tag
	return f.updateErr
}
func (f *fakeTagsRepo) Delete(ctx context.Context, id, userID string) error {
	return f.deleteErr
}
func (f *fakeTagsRepo) ListByIDs(ctx context.Context, userID string, ids []string) ([]*models.Tag, error) {
	f.byIDsIn = ids
	return f.byIDsOut, f.byIDsErr
}
func (f *fakeTagsRepo) ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]*models.Tag, error) {
	if f.byTasksErr != nil {
		return nil, f.byTasksErr
	}
	if f.byTasksOut != nil {
		return f.byTasksOut, nil
	}
	return map[string][]*models.Tag{}, nil
}

type fakeTasksRepo struct {
	listOut []*models.Task
	listErr error

	countOut int64
	countErr error

	getOut *models.Task
	getErr error

	createOut *models.Task
	createErr error
	createIn  *models.Task

	updateErr error
	updateIn  *models.Task

	deleteErr error

	replaceErr error
	replaceIn  []string
}

func (f *fakeTasksRepo) List(ctx context.Context, userID string, filter models.TaskFilter, page models.Page) ([]*models.Task, error) {
	return f.listOut, f.listErr
}
func (f *fakeTasksRepo) Count(ctx context.Context, userID string, filter models.TaskFilter) (int64, error) {
	return f.countOut, f.countErr
}
func (f *fakeTasksRepo) Get(ctx context.Context, id, userID string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.createIn = task
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return task, nil
}
func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	f.updateIn = task
	return f.updateErr
}
func (f *fakeTasksRepo) Delete(ctx context.Context, id, userID string) error {
	return f.deleteErr
}
func (f *fakeTasksRepo) ReplaceTags(ctx context.Context, taskID string, tagIDs []string) error {
	f.replaceIn = tagIDs
	return f.replaceErr
}

type fakeStatesRepo struct {
	createErr   error
	createdWith string

	findOut *models.OAuthState
	findErr error

	deleteErr error
	deleted   string
}

func (f *fakeStatesRepo) Create(ctx context.Context, state string, validity time.Duration) error {
	f.createdWith = state
	return f.createErr
}
func (f *fakeStatesRepo) Find(ctx context.Context, state string) (*models.OAuthState, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeStatesRepo) Delete(ctx context.Context, state string) error {
	f.deleted = state
	return f.deleteErr
}
func (f *fakeStatesRepo) DeleteExpired(ctx context.Context) error { return nil }

type fakeRepoManager struct {
	u  *fakeUsersRepo
	tg *fakeTagsRepo
	tk *fakeTasksRepo
	st *fakeStatesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository               { return m.u }
func (m *fakeRepoManager) Tags(db dbx.DBTX) tagsrepo.Repository                 { return m.tg }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository               { return m.tk }
func (m *fakeRepoManager) OAuthStates(db dbx.DBTX) oauthstatesrepo.Repository   { return m.st }
