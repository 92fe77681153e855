package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bmi-calculator/internal/config"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port            string
	TracingEnabled  bool
	MetricsEnabled  bool
	LogsEnabled     bool
	ShutdownTimeout time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            config.Env("PORT", "8080"),
		TracingEnabled:  isTruthy(config.Env("OTEL_TRACING_ENABLED", "true")),
		MetricsEnabled:  isTruthy(config.Env("OTEL_METRICS_ENABLED", "true")),
		LogsEnabled:     isTruthy(os.Getenv("OTEL_LOGS_ENABLED")),
		ShutdownTimeout: 5 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration")
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

// Addr is the listen address for Port, with or without a leading colon.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
