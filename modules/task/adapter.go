package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, t domain.Task) (*domain.Task, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		&CreateTaskRequest{Task: t},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-task service call failed: %w", err)
	}
	return taskResult(resp)
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-task",
		json.Marshal,
		json.Unmarshal,
		&GetTaskRequest{TaskID: taskID},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-task service call failed: %w", err)
	}
	return taskResult(resp)
}

// ListTasks lists every task via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&ListTasksRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	return listResult(resp)
}

// ListTasksByOwner lists the tasks of one owner via the list-tasks-by-owner service.
func (a *taskAdapter) ListTasksByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks-by-owner",
		json.Marshal,
		json.Unmarshal,
		&ListTasksRequest{UserID: userID},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks-by-owner service call failed: %w", err)
	}
	return listResult(resp)
}

// UpdateTask merges a partial update via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, taskID string, patch domain.Patch) (*domain.Task, error) {
	var resp TaskResponse
	req := UpdateTaskRequest{TaskID: taskID, Patch: patch}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-task service call failed: %w", err)
	}
	return taskResult(resp)
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID string) error {
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&DeleteTaskRequest{TaskID: taskID},
		&resp,
	); err != nil {
		return fmt.Errorf("delete-task service call failed: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %s", taskID)
	}
	return nil
}

// CountTasks returns the store counters via the count-tasks service.
func (a *taskAdapter) CountTasks(ctx context.Context) (domain.Counts, error) {
	var resp CountTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"count-tasks",
		json.Marshal,
		json.Unmarshal,
		&CountTasksRequest{},
		&resp,
	); err != nil {
		return domain.Counts{}, fmt.Errorf("count-tasks service call failed: %w", err)
	}
	return resp.Counts, nil
}

func taskResult(resp TaskResponse) (*domain.Task, error) {
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("empty task response")
	}
	return resp.Task, nil
}

func listResult(resp ListTasksResponse) ([]domain.Task, error) {
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Tasks, nil
}
