package task

import (
	"context"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/go-monolith/mono"
)

// handleCreate handles the create-task service request.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.service.Create(ctx, req.Task)
	if err != nil {
		return taskFailure(err)
	}
	return TaskResponse{Task: created}, nil
}

// handleGet handles the get-task service request.
func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Get(ctx, req.TaskID)
	if err != nil {
		return taskFailure(err)
	}
	return TaskResponse{Task: t}, nil
}

// handleUpdate handles the update-task service request.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.service.MergeUpdate(ctx, req.TaskID, req.Patch)
	if err != nil {
		return taskFailure(err)
	}
	return TaskResponse{Task: updated}, nil
}

// handleDelete handles the delete-task service request.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.TaskID); err != nil {
		if se, ok := toServiceError(err); ok {
			return DeleteTaskResponse{Error: se}, nil
		}
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

// handleList handles the list-tasks service request.
func (m *TaskModule) handleList(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return listResponse(tasks), nil
}

// handleListByOwner handles the list-tasks-by-owner service request.
func (m *TaskModule) handleListByOwner(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListByOwner(ctx, req.UserID)
	if err != nil {
		if se, ok := toServiceError(err); ok {
			return ListTasksResponse{Tasks: []domain.Task{}, Error: se}, nil
		}
		return ListTasksResponse{}, err
	}
	return listResponse(tasks), nil
}

// handleCount handles the count-tasks service request.
func (m *TaskModule) handleCount(ctx context.Context, _ CountTasksRequest, _ *mono.Msg) (CountTasksResponse, error) {
	counts, err := m.service.Counts(ctx)
	if err != nil {
		return CountTasksResponse{}, err
	}
	return CountTasksResponse{Counts: counts}, nil
}

func taskFailure(err error) (TaskResponse, error) {
	if se, ok := toServiceError(err); ok {
		return TaskResponse{Error: se}, nil
	}
	return TaskResponse{}, err
}

func listResponse(tasks []domain.Task) ListTasksResponse {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}
}
