// Command seed populates the database with a demo account, a few tags and a
// handful of tasks, so a fresh instance has something to look at. Running it
// twice leaves existing demo data in place.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	demoEmail    = "demo@taskvault.local"
	demoName     = "Demo User"
	demoPassword = "demo123"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		log.Fatalf("repository init error: %v", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := seed(ctx, db, rm, cfg); err != nil {
		log.Fatalf("seed error: %v", err)
	}
}

func seed(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) error {

	users := rm.Users(db)

	if _, err := users.GetByEmail(ctx, demoEmail); err == nil {
		fmt.Println("demo data already present, nothing to do")
		return nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := auth.HashPassword(demoPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}

	user, err := users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        demoEmail,
		Name:         demoName,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	tagDefs := []struct{ name, color string }{
		{"Work", "#EF4444"},
		{"Personal", "#3B82F6"},
		{"Urgent", "#F59E0B"},
		{"Ideas", "#10B981"},
	}

	tags := rm.Tags(db)
	tagIDs := make(map[string]string, len(tagDefs))
	for _, def := range tagDefs {
		tag, err := tags.Create(ctx, &models.Tag{
			ID:     uuid.NewString(),
			Name:   def.name,
			Color:  def.color,
			UserID: user.ID,
		})
		if err != nil {
			return err
		}
		tagIDs[def.name] = tag.ID
	}

	inWeek := time.Now().Add(7 * 24 * time.Hour)
	taskDefs := []struct {
		title, description, priority, status string
		due                                  *time.Time
		tags                                 []string
	}{
		{"Finish the quarterly report", "Numbers from finance are in the shared folder", models.PriorityHigh, models.StatusInProgress, &inWeek, []string{"Work", "Urgent"}},
		{"Plan the weekend trip", "", models.PriorityLow, models.StatusPending, nil, []string{"Personal"}},
		{"Review open pull requests", "At least the two oldest ones", models.PriorityMedium, models.StatusPending, nil, []string{"Work"}},
		{"Collect app ideas", "Anything goes, sort later", models.PriorityLow, models.StatusPending, nil, []string{"Ideas"}},
		{"Renew the gym membership", "", models.PriorityMedium, models.StatusCompleted, nil, []string{"Personal"}},
	}

	tasks := rm.Tasks(db)
	for _, def := range taskDefs {
		task, err := tasks.Create(ctx, &models.Task{
			ID:          uuid.NewString(),
			Title:       def.title,
			Description: def.description,
			Priority:    def.priority,
			Status:      def.status,
			DueDate:     def.due,
			UserID:      user.ID,
		})
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(def.tags))
		for _, name := range def.tags {
			ids = append(ids, tagIDs[name])
		}
		if err := tasks.ReplaceTags(ctx, task.ID, ids); err != nil {
			return err
		}
	}

	fmt.Printf("seeded demo user %s (password %s), %d tags, %d tasks\n",
		demoEmail, demoPassword, len(tagDefs), len(taskDefs))
	return nil
}
