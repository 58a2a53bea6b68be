package task

import (
	"github.com/example/task-statistics/events"
	"github.com/go-monolith/mono"
)

// busPublisher publishes task events on the mono event bus.
type busPublisher struct {
	bus mono.EventBus
}

var _ EventPublisher = busPublisher{}

func (p busPublisher) PublishCreated(event events.TaskCreatedEvent) error {
	return events.TaskCreatedV1.Publish(p.bus, event, nil)
}

func (p busPublisher) PublishUpdated(event events.TaskUpdatedEvent) error {
	return events.TaskUpdatedV1.Publish(p.bus, event, nil)
}

func (p busPublisher) PublishCompleted(event events.TaskCompletedEvent) error {
	return events.TaskCompletedV1.Publish(p.bus, event, nil)
}

func (p busPublisher) PublishDeleted(event events.TaskDeletedEvent) error {
	return events.TaskDeletedV1.Publish(p.bus, event, nil)
}
