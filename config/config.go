// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings read at startup.
type Config struct {
	HTTPPort          int
	DBPath            string
	DBDebug           bool
	TaskServiceURL    string
	TaskSourceTimeout time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
}

// Log levels accepted in LOG_LEVEL.
const (
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable, and validates the result.
func Load() (Config, error) {
	port := getEnvInt("HTTP_PORT", 3000)

	cfg := Config{
		HTTPPort:          port,
		DBPath:            getEnv("DB_PATH", "tasks.db"),
		DBDebug:           getEnvBool("DB_DEBUG", false),
		TaskServiceURL:    getEnv("TASK_SERVICE_URL", fmt.Sprintf("http://localhost:%d", port)),
		TaskSourceTimeout: getEnvDuration("TASK_SOURCE_TIMEOUT", 10*time.Second),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", LogLevelInfo)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if u, err := url.Parse(c.TaskServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("TASK_SERVICE_URL must be an absolute URL, got %q", c.TaskServiceURL))
	}
	if c.TaskSourceTimeout <= 0 {
		errs = append(errs, errors.New("TASK_SOURCE_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.LogLevel != LogLevelInfo && c.LogLevel != LogLevelError {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be %q or %q, got %q", LogLevelInfo, LogLevelError, c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
