// Package httpapi exposes the task-tracking service over HTTP/JSON. Handlers
// stay thin: decode, validate, call a service, map the result onto a status
// code and envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/logging"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

// UserService is the slice of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// TagService is the slice of services.TagService the handlers need.
type TagService interface {
	List(ctx context.Context, userID string) ([]*models.Tag, error)
	Get(ctx context.Context, userID, id string) (*models.Tag, error)
	Create(ctx context.Context, userID, name, color string) (*models.Tag, error)
	Update(ctx context.Context, userID, id, name, color string) (*models.Tag, error)
	Delete(ctx context.Context, userID, id string) error
}

// TaskService is the slice of services.TaskService the handlers need.
type TaskService interface {
	List(ctx context.Context, userID string, filter models.TaskFilter, page models.Page) (*services.TaskPage, error)
	Get(ctx context.Context, userID, id string) (*models.Task, error)
	Create(ctx context.Context, userID string, input services.TaskInput) (*models.Task, error)
	Update(ctx context.Context, userID, id string, update services.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

// FederationService is the slice of services.FederationService the handlers need.
type FederationService interface {
	Start(ctx context.Context) (string, error)
	Callback(ctx context.Context, state, code string) (*services.AuthResult, error)
}

type HTTPServer struct {
	address    string
	logger     logging.Logger
	users      UserService
	tags       TagService
	tasks      TaskService
	federation FederationService
	jwtSecret  []byte
	startedAt  time.Time
}

func NewHTTPServer(address string, l logging.Logger, us UserService, tgs TagService,
	tks TaskService, fed FederationService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:    address,
		logger:     l.With("module", "http_server"),
		users:      us,
		tags:       tgs,
		tasks:      tks,
		federation: fed,
		jwtSecret:  []byte(secretKey),
		startedAt:  time.Now(),
	}, nil
}

// routes wires every endpoint. Bearer-protected handlers are wrapped in
// withAuth; the rest are public.
func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/google", s.handleGoogleStart)
	mux.HandleFunc("GET /api/auth/google/callback", s.handleGoogleCallback)
	mux.HandleFunc("GET /api/auth/profile", s.withAuth(s.handleProfile))

	mux.HandleFunc("GET /api/tasks", s.withAuth(s.handleTaskList))
	mux.HandleFunc("POST /api/tasks", s.withAuth(s.handleTaskCreate))
	mux.HandleFunc("GET /api/tasks/{id}", s.withAuth(s.handleTaskGet))
	mux.HandleFunc("PUT /api/tasks/{id}", s.withAuth(s.handleTaskUpdate))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.withAuth(s.handleTaskDelete))

	mux.HandleFunc("GET /api/tags", s.withAuth(s.handleTagList))
	mux.HandleFunc("POST /api/tags", s.withAuth(s.handleTagCreate))
	mux.HandleFunc("GET /api/tags/{id}", s.withAuth(s.handleTagGet))
	mux.HandleFunc("PUT /api/tags/{id}", s.withAuth(s.handleTagUpdate))
	mux.HandleFunc("DELETE /api/tags/{id}", s.withAuth(s.handleTagDelete))

	return s.requestLogger(mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
