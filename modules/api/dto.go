package api

import (
	"time"

	domain "github.com/example/task-statistics/domain/task"
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	Category    domain.Category `json:"category"`
	DueDate     *domain.Date    `json:"dueDate"`
	Tags        domain.Tags     `json:"tags"`
	AssignedTo  string          `json:"assignedTo"`
	UserID      string          `json:"userId"`
	Completed   bool            `json:"completed"`
}

func (r *CreateTaskRequest) toDomain() domain.Task {
	return domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
		AssignedTo:  r.AssignedTo,
		UserID:      r.UserID,
		Completed:   r.Completed,
	}
}

// HealthResponse is the HTTP response for the process health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// TaskServiceHealthResponse is the liveness marker probed by statistics consumers.
type TaskServiceHealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatisticsHealthResponse is the HTTP response for the statistics health check.
type StatisticsHealthResponse struct {
	Service              string `json:"service"`
	Status               string `json:"status"`
	TaskServiceAvailable bool   `json:"taskServiceAvailable"`
}

// Error codes returned in ErrorResponse.Error.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "RESOURCE_NOT_FOUND"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Details   map[string]string `json:"details,omitempty"`
}
