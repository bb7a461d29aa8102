package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
	"github.com/dmitrijs2005/taskvault/internal/server/validation"
)

type taskBody struct {
	Message string       `json:"message,omitempty"`
	Task    *models.Task `json:"task"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type taskListBody struct {
	Tasks      []*models.Task `json:"tasks"`
	Pagination pagination     `json:"pagination"`
}

// parseListQuery fills defaults for absent parameters; validation happens on
// the resulting struct.
func parseListQuery(r *http.Request) (*validation.TaskListQuery, error) {
	q := &validation.TaskListQuery{
		Priority: r.URL.Query().Get("priority"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		Page:     validation.DefaultPage,
		Limit:    validation.DefaultLimit,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, validation.FieldErrors{{Field: "page", Message: "must be a positive integer"}}
		}
		q.Page = n
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, validation.FieldErrors{{Field: "limit", Message: "must be between 1 and 100"}}
		}
		q.Limit = n
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *HTTPServer) handleTaskList(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	q, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.tasks.List(r.Context(), userID,
		models.TaskFilter{Priority: q.Priority, Status: q.Status, Search: q.Search},
		models.Page{Number: q.Page, Limit: q.Limit})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tasks := page.Tasks
	if tasks == nil {
		tasks = []*models.Task{}
	}

	pages := page.Total / int64(q.Limit)
	if page.Total%int64(q.Limit) != 0 {
		pages++
	}

	writeJSON(w, http.StatusOK, taskListBody{
		Tasks: tasks,
		Pagination: pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: page.Total,
			Pages: pages,
		},
	})
}

func (s *HTTPServer) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	task, err := s.tasks.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskBody{Task: task})
}

func (s *HTTPServer) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req validation.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.ParsedDueDate(),
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskBody{Message: "Task created successfully", Task: task})
}

func (s *HTTPServer) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req validation.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), userID, r.PathValue("id"), services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.ParsedDueDate(),
		DueDateSet:  req.DueDateSet,
		TagIDs:      req.TagIDs,
		TagIDsSet:   req.TagIDsSet,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskBody{Message: "Task updated successfully", Task: task})
}

func (s *HTTPServer) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
