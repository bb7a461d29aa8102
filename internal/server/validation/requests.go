package validation

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs FieldErrors
	if n := utf8.RuneCountInString(r.Name); n < 2 || n > 50 {
		errs.add("name", "must be between 2 and 50 characters")
	}
	checkEmail(&errs, r.Email)
	if utf8.RuneCountInString(r.Password) < 6 {
		errs.add("password", "must be at least 6 characters")
	}
	return errs.orNil()
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs FieldErrors
	checkEmail(&errs, r.Email)
	if r.Password == "" {
		errs.add("password", "is required")
	}
	return errs.orNil()
}

// CreateTagRequest is the payload of POST /api/tags.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (r *CreateTagRequest) Validate() error {
	var errs FieldErrors
	if n := utf8.RuneCountInString(r.Name); n < 1 || n > 50 {
		errs.add("name", "must be between 1 and 50 characters")
	}
	if r.Color != "" && !colorPattern.MatchString(r.Color) {
		errs.add("color", "must be a hex color like #3B82F6")
	}
	return errs.orNil()
}

// UpdateTagRequest is the payload of PUT /api/tags/{id}. Absent fields keep
// their current value.
type UpdateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (r *UpdateTagRequest) Validate() error {
	var errs FieldErrors
	if r.Name != "" && utf8.RuneCountInString(r.Name) > 50 {
		errs.add("name", "must be between 1 and 50 characters")
	}
	if r.Color != "" && !colorPattern.MatchString(r.Color) {
		errs.add("color", "must be a hex color like #3B82F6")
	}
	return errs.orNil()
}

// CreateTaskRequest is the payload of POST /api/tasks. DueDate is RFC 3339;
// empty means no due date.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	DueDate     string   `json:"dueDate"`
	TagIDs      []string `json:"tagIds"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs FieldErrors
	if n := utf8.RuneCountInString(r.Title); n < 1 || n > 255 {
		errs.add("title", "must be between 1 and 255 characters")
	}
	if utf8.RuneCountInString(r.Description) > 1000 {
		errs.add("description", "must be at most 1000 characters")
	}
	if r.Priority != "" {
		checkOneOf(&errs, "priority", r.Priority, models.Priorities)
	}
	if r.Status != "" {
		checkOneOf(&errs, "status", r.Status, models.Statuses)
	}
	if r.DueDate != "" {
		if _, err := time.Parse(time.RFC3339, r.DueDate); err != nil {
			errs.add("dueDate", "must be an RFC 3339 timestamp")
		}
	}
	return errs.orNil()
}

// ParsedDueDate returns the due date as a time, nil when unset. Call only
// after Validate.
func (r *CreateTaskRequest) ParsedDueDate() *time.Time {
	if r.DueDate == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, r.DueDate)
	if err != nil {
		return nil
	}
	return &t
}

// UpdateTaskRequest is the payload of PUT /api/tasks/{id}. Fields absent from
// the JSON body keep their current value; dueDate null or "" clears the due
// date; a present tagIds (even empty) replaces the association set.
type UpdateTaskRequest struct {
	Title       *string  `json:"-"`
	Description *string  `json:"-"`
	Priority    *string  `json:"-"`
	Status      *string  `json:"-"`
	DueDate     *string  `json:"-"`
	DueDateSet  bool     `json:"-"`
	TagIDs      []string `json:"-"`
	TagIDsSet   bool     `json:"-"`
}

// UnmarshalJSON records which keys were present so the handler can tell
// "absent" apart from "set to zero".
func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	str := func(key string) (*string, bool, error) {
		v, ok := raw[key]
		if !ok {
			return nil, false, nil
		}
		if string(v) == "null" {
			return nil, true, nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, true, err
		}
		return &s, true, nil
	}

	var err error
	if r.Title, _, err = str("title"); err != nil {
		return err
	}
	if r.Description, _, err = str("description"); err != nil {
		return err
	}
	if r.Priority, _, err = str("priority"); err != nil {
		return err
	}
	if r.Status, _, err = str("status"); err != nil {
		return err
	}
	if r.DueDate, r.DueDateSet, err = str("dueDate"); err != nil {
		return err
	}

	if v, ok := raw["tagIds"]; ok {
		r.TagIDsSet = true
		if string(v) != "null" {
			if err := json.Unmarshal(v, &r.TagIDs); err != nil {
				return err
			}
		}
		if r.TagIDs == nil {
			r.TagIDs = []string{}
		}
	}

	return nil
}

func (r *UpdateTaskRequest) Validate() error {
	var errs FieldErrors
	if r.Title != nil {
		if n := utf8.RuneCountInString(*r.Title); n < 1 || n > 255 {
			errs.add("title", "must be between 1 and 255 characters")
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 1000 {
		errs.add("description", "must be at most 1000 characters")
	}
	if r.Priority != nil {
		checkOneOf(&errs, "priority", *r.Priority, models.Priorities)
	}
	if r.Status != nil {
		checkOneOf(&errs, "status", *r.Status, models.Statuses)
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if _, err := time.Parse(time.RFC3339, *r.DueDate); err != nil {
			errs.add("dueDate", "must be an RFC 3339 timestamp")
		}
	}
	return errs.orNil()
}

// ParsedDueDate returns the new due date, nil when the request clears it.
// Meaningful only when DueDateSet. Call only after Validate.
func (r *UpdateTaskRequest) ParsedDueDate() *time.Time {
	if r.DueDate == nil || *r.DueDate == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *r.DueDate)
	if err != nil {
		return nil
	}
	return &t
}

// TaskListQuery carries the parsed query string of GET /api/tasks.
type TaskListQuery struct {
	Priority string
	Status   string
	Search   string
	Page     int
	Limit    int
}

// ListDefaults are applied before validation for absent query parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func (q *TaskListQuery) Validate() error {
	var errs FieldErrors
	if q.Priority != "" && q.Priority != "all" {
		checkOneOf(&errs, "priority", q.Priority, models.Priorities)
	}
	if q.Status != "" && q.Status != "all" {
		checkOneOf(&errs, "status", q.Status, models.Statuses)
	}
	if q.Page < 1 {
		errs.add("page", "must be a positive integer")
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		errs.add("limit", "must be between 1 and 100")
	}
	return errs.orNil()
}
