package statistics

import (
	"context"

	"github.com/example/task-statistics/domain/stats"
)

// GetStatisticsRequest is the request for the get-statistics service.
type GetStatisticsRequest struct{}

// GetStatisticsResponse carries the computed summary.
type GetStatisticsResponse struct {
	Summary stats.Summary `json:"summary"`
}

// SourceStatusRequest is the request for the source-status service.
type SourceStatusRequest struct{}

// SourceStatusResponse reports whether the task source is reachable.
type SourceStatusResponse struct {
	Available bool `json:"available"`
}

// StatisticsPort is the port driving adapters use to reach the statistics module.
type StatisticsPort interface {
	GetStatistics(ctx context.Context) (stats.Summary, error)
	SourceAvailable(ctx context.Context) (bool, error)
}
