package statistics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/task-statistics/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func newTestSource(t *testing.T, handler http.HandlerFunc) *HTTPSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPSource(&fiber.Client{}, server.URL+"/", 2*time.Second, &mockLogger{})
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestHTTPSource_FetchAll(t *testing.T) {
	var gotPath string
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		respond(http.StatusOK, `[
			{"id":"1","title":"Remote one","priority":"URGENT","category":"WORK",
			 "dueDate":"2024-06-01","tags":["b","a"],"userId":"user-1","completed":false,
			 "createdAt":"2024-05-01T10:00:00","updatedAt":"2024-05-02T10:00:00.123Z"},
			{"id":"2","title":"Remote two","userId":"user-2","completed":true,"dueDate":null}
		]`)(w, r)
	})

	tasks, err := source.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/tasks", gotPath)
	require.Len(t, tasks, 2)

	first := tasks[0]
	assert.Equal(t, task.PriorityUrgent, first.Priority)
	assert.Equal(t, task.CategoryWork, first.Category)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, task.NewDate(2024, time.June, 1), *first.DueDate)
	assert.Equal(t, task.Tags{"a", "b"}, first.Tags)
	assert.Equal(t, time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt)

	second := tasks[1]
	assert.Equal(t, task.DefaultPriority, second.Priority)
	assert.Equal(t, task.DefaultCategory, second.Category)
	assert.Nil(t, second.DueDate)
	assert.True(t, second.Completed)
}

func TestHTTPSource_FetchAllEmpty(t *testing.T) {
	source := newTestSource(t, respond(http.StatusOK, `[]`))

	tasks, err := source.FetchAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestHTTPSource_FetchAllFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", respond(http.StatusInternalServerError, `{"error":"boom"}`)},
		{"not found", respond(http.StatusNotFound, ``)},
		{"malformed body", respond(http.StatusOK, `{"not":"an array"}`)},
		{"bad timestamp", respond(http.StatusOK, `[{"id":"1","createdAt":"yesterday"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTestSource(t, tt.handler)

			tasks, err := source.FetchAll(context.Background())

			assert.Error(t, err)
			assert.Nil(t, tasks)
		})
	}
}

func TestHTTPSource_FetchAllStatusError(t *testing.T) {
	source := newTestSource(t, respond(http.StatusServiceUnavailable, ``))

	_, err := source.FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(respond(http.StatusOK, `[]`))
	url := server.URL
	server.Close()

	source := NewHTTPSource(&fiber.Client{}, url, time.Second, &mockLogger{})

	_, err := source.FetchAll(context.Background())
	assert.Error(t, err)
	assert.False(t, source.IsAvailable(context.Background()))
}

func TestHTTPSource_CancelledContext(t *testing.T) {
	called := false
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		respond(http.StatusOK, `[]`)(w, r)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestHTTPSource_IsAvailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{"healthy", respond(http.StatusOK, `{"message":"Task Service is running","status":"UP"}`), true},
		{"no marker", respond(http.StatusOK, `{"status":"DOWN"}`), false},
		{"error status with marker", respond(http.StatusServiceUnavailable, `{"status":"UP"}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				tt.handler(w, r)
			})

			assert.Equal(t, tt.want, source.IsAvailable(context.Background()))
			assert.Equal(t, "/api/tasks/health", gotPath)
		})
	}
}
