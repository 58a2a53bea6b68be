package statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// StatisticsModule computes task statistics from a remote task service and
// exposes them as request-reply services.
type StatisticsModule struct {
	taskServiceURL string
	timeout        time.Duration
	service        *Service
	logger         types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*StatisticsModule)(nil)
	_ mono.ServiceProviderModule = (*StatisticsModule)(nil)
	_ mono.HealthCheckableModule = (*StatisticsModule)(nil)
)

// NewModule creates a StatisticsModule reading tasks from taskServiceURL.
func NewModule(taskServiceURL string, timeout time.Duration, logger types.Logger) *StatisticsModule {
	return &StatisticsModule{
		taskServiceURL: taskServiceURL,
		timeout:        timeout,
		logger:         logger,
	}
}

// Name returns the module name.
func (m *StatisticsModule) Name() string {
	return "statistics"
}

// RegisterServices registers request-reply services in the service container.
func (m *StatisticsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-statistics", json.Unmarshal, json.Marshal, m.handleGetStatistics,
	); err != nil {
		return fmt.Errorf("failed to register get-statistics service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "source-status", json.Unmarshal, json.Marshal, m.handleSourceStatus,
	); err != nil {
		return fmt.Errorf("failed to register source-status service: %w", err)
	}

	m.logger.Info("Registered statistics services", "services", "get-statistics, source-status")
	return nil
}

// Start builds the HTTP task source and the statistics service.
func (m *StatisticsModule) Start(_ context.Context) error {
	client := &fiber.Client{UserAgent: "task-statistics"}
	source := NewHTTPSource(client, m.taskServiceURL, m.timeout, m.logger)
	m.service = NewService(source, time.Now, m.logger)

	m.logger.Info("Statistics module started",
		"taskServiceUrl", m.taskServiceURL,
		"timeout", m.timeout.String())
	return nil
}

// Stop stops the module.
func (m *StatisticsModule) Stop(_ context.Context) error {
	m.logger.Info("Statistics module stopped")
	return nil
}

// Health reports the module state. The remote source is not probed here; use
// the source-status service for that.
func (m *StatisticsModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.service != nil,
		Message: "operational",
		Details: map[string]any{
			"taskServiceUrl": m.taskServiceURL,
		},
	}
}

func (m *StatisticsModule) handleGetStatistics(ctx context.Context, _ GetStatisticsRequest, _ *mono.Msg) (GetStatisticsResponse, error) {
	return GetStatisticsResponse{Summary: m.service.Compute(ctx)}, nil
}

func (m *StatisticsModule) handleSourceStatus(ctx context.Context, _ SourceStatusRequest, _ *mono.Msg) (SourceStatusResponse, error) {
	return SourceStatusResponse{Available: m.service.SourceAvailable(ctx)}, nil
}
