package api

import (
	"errors"

	"github.com/example/task-statistics/domain/stats"
	domain "github.com/example/task-statistics/domain/task"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/healthcheck", m.healthHandler)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	// Fixed paths must be registered before /:id.
	tasks.Get("/health", m.taskServiceHealth)
	tasks.Get("/stats", m.taskCounts)
	tasks.Get("/user/:userId", m.listTasksByOwner)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)

	statistics := app.Group("/api/statistics")
	statistics.Get("/", m.getStatistics)
	statistics.Get("/health", m.statisticsHealth)
}

// healthHandler handles GET /healthcheck.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

// taskServiceHealth handles GET /api/tasks/health.
func (m *APIModule) taskServiceHealth(c *fiber.Ctx) error {
	return c.JSON(TaskServiceHealthResponse{
		Message: "Task Service is running",
		Status:  "UP",
	})
}

// listTasks handles GET /api/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.taskPort.ListTasks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(tasks))
}

// listTasksByOwner handles GET /api/tasks/user/:userId.
func (m *APIModule) listTasksByOwner(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}

	tasks, err := m.taskPort.ListTasksByOwner(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(nonNil(tasks))
}

// getTask handles GET /api/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	t, err := m.taskPort.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := m.taskPort.CreateTask(c.UserContext(), req.toDomain())
	if err != nil {
		return err
	}

	c.Location("/api/tasks/" + created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// updateTask handles PUT /api/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var patch domain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := m.taskPort.UpdateTask(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.taskPort.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// taskCounts handles GET /api/tasks/stats.
func (m *APIModule) taskCounts(c *fiber.Ctx) error {
	counts, err := m.taskPort.CountTasks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(counts)
}

// getStatistics handles GET /api/statistics. It always answers 200.
func (m *APIModule) getStatistics(c *fiber.Ctx) error {
	summary, err := m.statsPort.GetStatistics(c.UserContext())
	if err != nil {
		m.logger.Error("Statistics service call failed", "error", err)
		summary = stats.Empty()
	}
	return c.JSON(summary)
}

// statisticsHealth handles GET /api/statistics/health.
func (m *APIModule) statisticsHealth(c *fiber.Ctx) error {
	available, err := m.statsPort.SourceAvailable(c.UserContext())
	if err != nil {
		m.logger.Warn("Source status call failed", "error", err)
		available = false
	}
	return c.JSON(StatisticsHealthResponse{
		Service:              "Statistics Service",
		Status:               "UP",
		TaskServiceAvailable: available,
	})
}

// errorHandler renders every error returned by a handler as an ErrorResponse.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{
		Timestamp: m.now().UTC(),
		Path:      c.Path(),
	}

	verr, isValidation := domain.IsValidationError(err)
	var fe *fiber.Error
	switch {
	case isValidation:
		resp.Status = fiber.StatusBadRequest
		resp.Error = ErrCodeValidation
		resp.Message = "Validation failed"
		resp.Details = verr.Fields
	case errors.Is(err, domain.ErrNotFound):
		resp.Status = fiber.StatusNotFound
		resp.Error = ErrCodeNotFound
		resp.Message = "Task not found"
	case errors.As(err, &fe):
		resp.Status = fe.Code
		resp.Message = fe.Message
		switch {
		case fe.Code == fiber.StatusNotFound:
			resp.Error = ErrCodeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			resp.Error = ErrCodeInvalidRequest
		default:
			resp.Error = ErrCodeInternal
		}
	default:
		m.logger.Error("Unhandled request error",
			"method", c.Method(),
			"path", domain.SanitizeForLog(c.Path()),
			"error", err)
		resp.Status = fiber.StatusInternalServerError
		resp.Error = ErrCodeInternal
		resp.Message = "An unexpected error occurred"
	}

	return c.Status(resp.Status).JSON(resp)
}

func nonNil(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}
