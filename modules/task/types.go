package task

import (
	"context"

	domain "github.com/example/task-statistics/domain/task"
)

// CreateTaskRequest is the request for creating a task. Id and timestamps are ignored.
type CreateTaskRequest struct {
	Task domain.Task `json:"task"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"taskId"`
}

// UpdateTaskRequest is the request for merging a partial update into a task.
type UpdateTaskRequest struct {
	TaskID string       `json:"taskId"`
	Patch  domain.Patch `json:"patch"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"taskId"`
}

// ListTasksRequest is the request for listing tasks. UserID is only read by
// the list-tasks-by-owner service.
type ListTasksRequest struct {
	UserID string `json:"userId,omitempty"`
}

// CountTasksRequest is the request for the store counters.
type CountTasksRequest struct{}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	Task  *domain.Task  `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// ListTasksResponse is the response for task listings.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	Error *ServiceError `json:"error,omitempty"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

// CountTasksResponse is the response carrying the store counters.
type CountTasksResponse struct {
	Counts domain.Counts `json:"counts"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the task module.
// Implementations return domain.ErrNotFound and *domain.ValidationError unchanged.
type TaskPort interface {
	CreateTask(ctx context.Context, t domain.Task) (*domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListTasksByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch domain.Patch) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	CountTasks(ctx context.Context) (domain.Counts, error)
}
