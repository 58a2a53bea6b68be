package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/example/task-statistics/events"
	"github.com/go-monolith/mono/pkg/types"
)

// EventPublisher publishes task lifecycle events.
type EventPublisher interface {
	PublishCreated(event events.TaskCreatedEvent) error
	PublishUpdated(event events.TaskUpdatedEvent) error
	PublishCompleted(event events.TaskCompletedEvent) error
	PublishDeleted(event events.TaskDeletedEvent) error
}

// Service implements the task use cases on top of a task store.
type Service struct {
	store     domain.Store
	validator *domain.Validator
	events    EventPublisher
	logger    types.Logger
}

// NewService creates a new task service. publisher may be nil, in which case
// no events are emitted.
func NewService(store domain.Store, publisher EventPublisher, logger types.Logger) *Service {
	return &Service{
		store:     store,
		validator: domain.NewValidator(),
		events:    publisher,
		logger:    logger,
	}
}

// Create validates t, applies creation defaults and stores it.
func (s *Service) Create(ctx context.Context, t domain.Task) (*domain.Task, error) {
	t.ID = ""
	t.Tags = domain.NewTags(t.Tags...)
	t.ApplyDefaults()

	if err := s.validator.Validate(&t); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Info("Task created",
		"taskId", t.ID,
		"userId", domain.SanitizeForLog(t.UserID),
		"priority", t.Priority)

	s.publish("TaskCreated", t.ID, func(p EventPublisher) error {
		return p.PublishCreated(events.TaskCreatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Priority:  t.Priority,
			Category:  t.Category,
			UserID:    t.UserID,
			CreatedAt: t.CreatedAt,
		})
	})
	return &t, nil
}

// Get returns the task with the given id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", domain.SanitizeForLog(id), err)
	}
	return t, nil
}

// List returns every stored task.
func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.FindAll(ctx)
}

// ListByOwner returns the tasks owned by userID after checking the identifier format.
func (s *Service) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.store.FindByOwner(ctx, userID)
}

// MergeUpdate applies patch onto the stored task with the given id, validates the
// merged result and saves it. Nothing is saved when the task does not exist or the
// merged task breaks a field rule.
func (s *Service) MergeUpdate(ctx context.Context, id string, patch domain.Patch) (*domain.Task, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task %s: %w", domain.SanitizeForLog(id), err)
	}

	merged := domain.Merge(*existing, patch)
	if err := s.validator.Validate(&merged); err != nil {
		s.logger.Warn("Rejected task update", "taskId", existing.ID, "error", err)
		return nil, err
	}
	if err := s.store.Save(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Info("Task updated", "taskId", merged.ID, "completed", merged.Completed)

	s.publish("TaskUpdated", merged.ID, func(p EventPublisher) error {
		return p.PublishUpdated(events.TaskUpdatedEvent{
			TaskID:    merged.ID,
			UserID:    merged.UserID,
			Completed: merged.Completed,
			UpdatedAt: merged.UpdatedAt,
		})
	})
	if !existing.Completed && merged.Completed {
		s.publish("TaskCompleted", merged.ID, func(p EventPublisher) error {
			return p.PublishCompleted(events.TaskCompletedEvent{
				TaskID:      merged.ID,
				UserID:      merged.UserID,
				CompletedAt: merged.UpdatedAt,
			})
		})
	}
	return &merged, nil
}

// Delete removes the task with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", domain.SanitizeForLog(id), err)
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "taskId", existing.ID)

	s.publish("TaskDeleted", existing.ID, func(p EventPublisher) error {
		return p.PublishDeleted(events.TaskDeletedEvent{
			TaskID:    existing.ID,
			UserID:    existing.UserID,
			DeletedAt: time.Now().UTC(),
		})
	})
	return nil
}

// Counts returns the store-side counters.
func (s *Service) Counts(ctx context.Context) (domain.Counts, error) {
	return s.store.Counts(ctx)
}

// publish is best-effort: a failed event never fails the operation.
func (s *Service) publish(name, taskID string, fn func(EventPublisher) error) {
	if s.events == nil {
		return
	}
	if err := fn(s.events); err != nil {
		s.logger.Warn("Failed to publish event", "event", name, "taskId", taskID, "error", err)
	}
}
