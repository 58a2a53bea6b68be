package task

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/example/task-statistics/events"
	"github.com/go-monolith/mono/pkg/types"
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

// mockStore implements domain.Store in memory and records Save calls.
type mockStore struct {
	tasks     map[string]domain.Task
	saveCalls int
	nextID    int
	findErr   error
}

func newMockStore(seed ...domain.Task) *mockStore {
	s := &mockStore{tasks: make(map[string]domain.Task)}
	for _, t := range seed {
		s.tasks[t.ID] = t
	}
	return s
}

func (m *mockStore) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *mockStore) Save(_ context.Context, t *domain.Task) error {
	m.saveCalls++
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	if t.ID == "" {
		m.nextID++
		t.ID = "task-" + string(rune('0'+m.nextID))
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	m.tasks[t.ID] = *t
	return nil
}

func (m *mockStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockStore) FindAll(_ context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockStore) FindByOwner(_ context.Context, userID string) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) Counts(_ context.Context) (domain.Counts, error) {
	return domain.Counts{Total: int64(len(m.tasks))}, nil
}

// recordingPublisher implements EventPublisher and keeps every event.
type recordingPublisher struct {
	created   []events.TaskCreatedEvent
	updated   []events.TaskUpdatedEvent
	completed []events.TaskCompletedEvent
	deleted   []events.TaskDeletedEvent
	err       error
}

func (p *recordingPublisher) PublishCreated(e events.TaskCreatedEvent) error {
	p.created = append(p.created, e)
	return p.err
}

func (p *recordingPublisher) PublishUpdated(e events.TaskUpdatedEvent) error {
	p.updated = append(p.updated, e)
	return p.err
}

func (p *recordingPublisher) PublishCompleted(e events.TaskCompletedEvent) error {
	p.completed = append(p.completed, e)
	return p.err
}

func (p *recordingPublisher) PublishDeleted(e events.TaskDeletedEvent) error {
	p.deleted = append(p.deleted, e)
	return p.err
}

func stored(id string) domain.Task {
	return domain.Task{
		ID:       id,
		Title:    "Stored task",
		Priority: domain.PriorityLow,
		Category: domain.CategoryWork,
		Tags:     domain.NewTags("keep"),
		UserID:   "owner-1",
	}
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	store := newMockStore()
	pub := &recordingPublisher{}
	svc := NewService(store, pub, &mockLogger{})

	created, err := svc.Create(context.Background(), domain.Task{
		ID:     "client-chosen",
		Title:  "New task",
		UserID: "user-1",
		Tags:   domain.Tags{"b", "a", "b"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, "client-chosen", created.ID)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, domain.CategoryOther, created.Category)
	assert.Equal(t, domain.Tags{"a", "b"}, created.Tags)
	require.Len(t, pub.created, 1)
	assert.Equal(t, created.ID, pub.created[0].TaskID)
}

func TestService_CreateInvalid(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil, &mockLogger{})

	_, err := svc.Create(context.Background(), domain.Task{Title: "x"})

	verr, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "userId")
	assert.Zero(t, store.saveCalls)
}

func TestService_MergeUpdate_UnknownID(t *testing.T) {
	store := newMockStore(stored("task-1"))
	pub := &recordingPublisher{}
	svc := NewService(store, pub, &mockLogger{})

	_, err := svc.MergeUpdate(context.Background(), "missing", domain.Patch{Title: strPtr("Renamed")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.saveCalls)
	assert.Empty(t, pub.updated)
}

func TestService_MergeUpdate_Applies(t *testing.T) {
	store := newMockStore(stored("task-1"))
	pub := &recordingPublisher{}
	svc := NewService(store, pub, &mockLogger{})

	updated, err := svc.MergeUpdate(context.Background(), "task-1", domain.Patch{
		Title:     strPtr("Renamed task"),
		Tags:      domain.Tags{},
		Completed: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed task", updated.Title)
	assert.Equal(t, domain.NewTags("keep"), updated.Tags)
	assert.Equal(t, "owner-1", updated.UserID)
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, "Renamed task", store.tasks["task-1"].Title)
	require.Len(t, pub.updated, 1)
	assert.Empty(t, pub.completed)
}

func TestService_MergeUpdate_RejectsInvalidMerge(t *testing.T) {
	store := newMockStore(stored("task-1"))
	svc := NewService(store, nil, &mockLogger{})

	_, err := svc.MergeUpdate(context.Background(), "task-1", domain.Patch{
		Title: strPtr("no"),
		Tags:  domain.Tags{"NOT-VALID"},
	})

	verr, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "tags")
	assert.Zero(t, store.saveCalls)
	assert.Equal(t, "Stored task", store.tasks["task-1"].Title)
}

func TestService_MergeUpdate_RejectsBlankTitle(t *testing.T) {
	store := newMockStore(stored("task-1"))
	svc := NewService(store, nil, &mockLogger{})

	_, err := svc.MergeUpdate(context.Background(), "task-1", domain.Patch{Title: strPtr("   ")})

	verr, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "title is required", verr.Fields["title"])
	assert.Zero(t, store.saveCalls)
}

func TestService_MergeUpdate_CompletionEvent(t *testing.T) {
	tests := []struct {
		name          string
		wasCompleted  bool
		completed     bool
		wantCompleted int
	}{
		{"open to completed", false, true, 1},
		{"completed stays completed", true, true, 0},
		{"completed reopened", true, false, 0},
		{"open stays open", false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := stored("task-1")
			existing.Completed = tt.wasCompleted
			pub := &recordingPublisher{}
			svc := NewService(newMockStore(existing), pub, &mockLogger{})

			updated, err := svc.MergeUpdate(context.Background(), "task-1", domain.Patch{Completed: tt.completed})
			require.NoError(t, err)

			assert.Equal(t, tt.completed, updated.Completed)
			assert.Len(t, pub.updated, 1)
			assert.Len(t, pub.completed, tt.wantCompleted)
		})
	}
}

func TestService_PublishFailureDoesNotFail(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := NewService(newMockStore(stored("task-1")), pub, &mockLogger{})

	_, err := svc.MergeUpdate(context.Background(), "task-1", domain.Patch{Completed: true})

	assert.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	store := newMockStore(stored("task-1"))
	pub := &recordingPublisher{}
	svc := NewService(store, pub, &mockLogger{})

	require.NoError(t, svc.Delete(context.Background(), "task-1"))
	assert.Empty(t, store.tasks)
	require.Len(t, pub.deleted, 1)
	assert.Equal(t, "owner-1", pub.deleted[0].UserID)

	assert.ErrorIs(t, svc.Delete(context.Background(), "task-1"), domain.ErrNotFound)
}

func TestService_ListByOwner(t *testing.T) {
	other := stored("task-2")
	other.UserID = "owner-2"
	svc := NewService(newMockStore(stored("task-1"), other), nil, &mockLogger{})

	tasks, err := svc.ListByOwner(context.Background(), "owner-2")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-2", tasks[0].ID)

	_, err = svc.ListByOwner(context.Background(), "bad id!")
	_, ok := domain.IsValidationError(err)
	assert.True(t, ok)
}

func TestService_GetWrapsStoreErrors(t *testing.T) {
	store := newMockStore()
	store.findErr = errors.New("disk on fire")
	svc := NewService(store, nil, &mockLogger{})

	_, err := svc.Get(context.Background(), "task-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "disk on fire")
}
