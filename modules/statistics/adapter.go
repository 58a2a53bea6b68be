package statistics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-statistics/domain/stats"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

type statisticsAdapter struct {
	container mono.ServiceContainer
}

// NewStatisticsAdapter creates a StatisticsPort over the statistics module's service container.
func NewStatisticsAdapter(container mono.ServiceContainer) StatisticsPort {
	if container == nil {
		panic("statistics adapter requires non-nil ServiceContainer")
	}
	return &statisticsAdapter{container: container}
}

// GetStatistics calls the get-statistics service. Errors only come from the transport;
// the service itself never fails.
func (a *statisticsAdapter) GetStatistics(ctx context.Context) (stats.Summary, error) {
	var resp GetStatisticsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-statistics",
		json.Marshal,
		json.Unmarshal,
		&GetStatisticsRequest{},
		&resp,
	); err != nil {
		return stats.Summary{}, fmt.Errorf("get-statistics service call failed: %w", err)
	}
	return normalize(resp.Summary), nil
}

// SourceAvailable calls the source-status service.
func (a *statisticsAdapter) SourceAvailable(ctx context.Context) (bool, error) {
	var resp SourceStatusResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"source-status",
		json.Marshal,
		json.Unmarshal,
		&SourceStatusRequest{},
		&resp,
	); err != nil {
		return false, fmt.Errorf("source-status service call failed: %w", err)
	}
	return resp.Available, nil
}

// normalize restores non-nil maps after a JSON round trip of a summary.
func normalize(s stats.Summary) stats.Summary {
	empty := stats.Empty()
	if s.ByPriority == nil {
		s.ByPriority = empty.ByPriority
	}
	if s.ByCategory == nil {
		s.ByCategory = empty.ByCategory
	}
	return s
}
