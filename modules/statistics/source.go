package statistics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/task-statistics/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

const (
	tasksPath  = "/api/tasks"
	healthPath = "/api/tasks/health"
	upMarker   = "UP"
)

// TaskSource supplies the current task collection and reports whether it can be reached.
type TaskSource interface {
	FetchAll(ctx context.Context) ([]task.Task, error)
	IsAvailable(ctx context.Context) bool
}

// HTTPSource reads tasks from a remote task service over HTTP. Every call is a
// single attempt with no retry and no caching.
type HTTPSource struct {
	client  *fiber.Client
	baseURL string
	timeout time.Duration
	logger  types.Logger
}

var _ TaskSource = (*HTTPSource)(nil)

// NewHTTPSource creates a source for the task service at baseURL. client must not be nil.
func NewHTTPSource(client *fiber.Client, baseURL string, timeout time.Duration, logger types.Logger) *HTTPSource {
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// FetchAll retrieves the full task collection. Transport failures, non-2xx
// statuses and malformed bodies are returned as errors; an empty collection is not an error.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]task.Task, error) {
	code, body, err := s.get(ctx, tasksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("failed to fetch tasks: %w: %d", ErrUnexpectedStatus, code)
	}

	var remote []remoteTask
	if err := json.Unmarshal(body, &remote); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(remote))
	for i := range remote {
		tasks = append(tasks, remote[i].toDomain())
	}
	s.logger.Debug("Fetched tasks from task service", "count", len(tasks))
	return tasks, nil
}

// IsAvailable probes the task service health endpoint. It reports true only for a
// 2xx response whose body carries the UP marker.
func (s *HTTPSource) IsAvailable(ctx context.Context) bool {
	code, body, err := s.get(ctx, healthPath)
	if err != nil {
		s.logger.Warn("Task service health check failed", "url", s.baseURL+healthPath, "error", err)
		return false
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		s.logger.Warn("Task service health check failed", "url", s.baseURL+healthPath, "status", code)
		return false
	}
	return bytes.Contains(body, []byte(upMarker))
}

func (s *HTTPSource) get(ctx context.Context, path string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	agent := s.client.Get(s.baseURL + path)
	if s.timeout > 0 {
		agent.Timeout(s.timeout)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, errors.Join(errs...)
	}
	return code, body, nil
}

// remoteTask is the task representation served by the task service.
type remoteTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *task.Date `json:"dueDate"`
	Tags        []string   `json:"tags"`
	AssignedTo  string     `json:"assignedTo"`
	UserID      string     `json:"userId"`
	Completed   bool       `json:"completed"`
	CreatedAt   remoteTime `json:"createdAt"`
	UpdatedAt   remoteTime `json:"updatedAt"`
}

func (r *remoteTask) toDomain() task.Task {
	t := task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    task.Priority(r.Priority),
		Category:    task.Category(r.Category),
		DueDate:     r.DueDate,
		Tags:        task.NewTags(r.Tags...),
		AssignedTo:  r.AssignedTo,
		UserID:      r.UserID,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
	t.ApplyDefaults()
	return t
}

// remoteTimeLayouts are tried in order. The zone-less layout covers services that
// serialise local date-times.
var remoteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// remoteTime accepts RFC 3339 timestamps and zone-less ISO date-times (read as UTC).
type remoteTime struct {
	time.Time
}

func (rt *remoteTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	var err error
	for _, layout := range remoteTimeLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			rt.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q: %w", s, err)
}
