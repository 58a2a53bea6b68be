package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/task-statistics/domain/task"
	"github.com/example/task-statistics/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// maxNotifications bounds the in-memory notification log.
const maxNotifications = 1000

// Notification is one recorded task lifecycle notification.
type Notification struct {
	TaskID    string    `json:"taskId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule records task lifecycle notifications as a driven adapter.
// It subscribes to domain events using the EventConsumerModule interface.
type NotificationModule struct {
	notifications []Notification
	mu            sync.RWMutex
	logger        types.Logger
	now           func() time.Time
}

var (
	_ mono.Module              = (*NotificationModule)(nil)
	_ mono.EventConsumerModule = (*NotificationModule)(nil)
)

func NewModule(logger types.Logger) *NotificationModule {
	return &NotificationModule{
		notifications: make([]Notification, 0),
		logger:        logger,
		now:           time.Now,
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TaskCreated, TaskUpdated, TaskCompleted, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	title := task.SanitizeForLog(event.Title)
	m.record(event.TaskID, "task_created",
		fmt.Sprintf("New %s task '%s' created for user %s", event.Priority, title, task.SanitizeForLog(event.UserID)))
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_updated", fmt.Sprintf("Task %s updated", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_completed", fmt.Sprintf("Task %s completed!", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_deleted", fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) record(taskID, notificationType, message string) {
	m.logger.Info("Task notification", "type", notificationType, "taskId", taskID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.notifications) >= maxNotifications {
		m.notifications = m.notifications[1:]
	}
	m.notifications = append(m.notifications, Notification{
		TaskID:    taskID,
		Type:      notificationType,
		Message:   message,
		Timestamp: m.now(),
	})
}

// Notifications returns a copy of the recorded notifications, oldest first.
func (m *NotificationModule) Notifications() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Notification, len(m.notifications))
	copy(result, m.notifications)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Notification module started, listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped")
	return nil
}
