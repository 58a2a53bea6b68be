package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerModule(seed ...domain.Task) *TaskModule {
	m := NewModule("", false, &mockLogger{})
	m.service = NewService(newMockStore(seed...), nil, &mockLogger{})
	return m
}

func TestHandleUpdate_NotFoundTravelsInBody(t *testing.T) {
	m := newHandlerModule()

	resp, err := m.handleUpdate(context.Background(), UpdateTaskRequest{TaskID: "missing"}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded TaskResponse
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, err = taskResult(decoded)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandleCreate_ValidationTravelsInBody(t *testing.T) {
	m := newHandlerModule()

	resp, err := m.handleCreate(context.Background(), CreateTaskRequest{Task: domain.Task{Title: "ok title"}}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)

	_, err = taskResult(resp)
	verr, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "userId")
}

func TestHandleList_EmptyIsNotNull(t *testing.T) {
	m := newHandlerModule()

	resp, err := m.handleList(context.Background(), ListTasksRequest{}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[],"total":0}`, string(data))
}

func TestHandleDelete(t *testing.T) {
	m := newHandlerModule(stored("task-1"))

	resp, err := m.handleDelete(context.Background(), DeleteTaskRequest{TaskID: "task-1"}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Nil(t, resp.Error)

	resp, err = m.handleDelete(context.Background(), DeleteTaskRequest{TaskID: "task-1"}, nil)
	require.NoError(t, err)
	assert.False(t, resp.Deleted)
	require.NotNil(t, resp.Error)
	assert.True(t, errors.Is(resp.Error, domain.ErrNotFound))
}

func TestToServiceError_UnknownErrorsStayTransportErrors(t *testing.T) {
	_, ok := toServiceError(errors.New("boom"))
	assert.False(t, ok)
}
