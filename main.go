package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-statistics/config"
	"github.com/example/task-statistics/modules/api"
	"github.com/example/task-statistics/modules/notification"
	"github.com/example/task-statistics/modules/statistics"
	"github.com/example/task-statistics/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Statistics Service ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	if cfg.LogLevel == config.LogLevelError {
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	// Order: independent modules first, then modules with dependencies
	modules := []mono.Module{
		notification.NewModule(logger.WithModule("notification")),
		task.NewModule(cfg.DBPath, cfg.DBDebug, logger.WithModule("task")),
		statistics.NewModule(cfg.TaskServiceURL, cfg.TaskSourceTimeout, logger.WithModule("statistics")),
		api.NewModule(cfg.HTTPPort, logger.WithModule("api")),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register %s module: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Database: %s", cfg.DBPath)
	log.Printf("Statistics read tasks from: %s", cfg.TaskServiceURL)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /api/tasks                - List all tasks")
	log.Println("  POST   /api/tasks                - Create a task")
	log.Println("  GET    /api/tasks/:id            - Get a task by ID")
	log.Println("  PUT    /api/tasks/:id            - Partially update a task")
	log.Println("  DELETE /api/tasks/:id            - Delete a task")
	log.Println("  GET    /api/tasks/user/:userId   - List tasks of one user")
	log.Println("  GET    /api/tasks/stats          - Store counters")
	log.Println("  GET    /api/tasks/health         - Task service health")
	log.Println("  GET    /api/statistics           - Task statistics")
	log.Println("  GET    /api/statistics/health    - Statistics service health")
	log.Println("  GET    /healthcheck              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
