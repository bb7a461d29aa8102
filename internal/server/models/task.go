package models

import "time"

// Task priorities.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Task statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Priorities lists the accepted task priority literals.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// Statuses lists the accepted task status literals.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Task is a unit of work owned by exactly one user. Tags holds the resolved
// tag list, not the raw association rows; repositories leave it nil and the
// service populates it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Tags        []*Tag     `json:"tags"`
}

// TaskFilter narrows task listing. Empty values (or the sentinel "all")
// leave the corresponding dimension unfiltered; Search matches the title or
// description case-insensitively.
type TaskFilter struct {
	Priority string
	Status   string
	Search   string
}

// Page describes 1-indexed pagination.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
