package statistics

import (
	"context"
	"time"

	"github.com/example/task-statistics/domain/stats"
	"github.com/example/task-statistics/domain/task"
	"github.com/go-monolith/mono/pkg/types"
)

// Service computes statistics over the tasks of a TaskSource. It never fails:
// an unreachable source yields the empty summary.
type Service struct {
	source TaskSource
	now    func() time.Time
	logger types.Logger
}

// NewService creates a statistics service. now supplies the reference date for
// overdue checks and defaults to time.Now.
func NewService(source TaskSource, now func() time.Time, logger types.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		source: source,
		now:    now,
		logger: logger,
	}
}

// Compute fetches the current tasks and aggregates them.
func (s *Service) Compute(ctx context.Context) stats.Summary {
	tasks, err := s.source.FetchAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch tasks, returning empty statistics", "error", err)
		return stats.Empty()
	}

	summary := stats.Compute(tasks, task.DateOf(s.now()))
	if summary.IsEmpty() {
		s.logger.Info("Task source returned no tasks")
		return summary
	}
	s.logger.Debug("Computed statistics",
		"total", summary.Total,
		"completed", summary.Completed,
		"overdue", summary.Overdue)
	return summary
}

// SourceAvailable reports whether the task source answers its health probe.
func (s *Service) SourceAvailable(ctx context.Context) bool {
	return s.source.IsAvailable(ctx)
}
