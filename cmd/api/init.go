package main

import (
	"context"

	"bmi-calculator/internal/calculator"
	"bmi-calculator/internal/observability"
)

// initMetrics initialises the metric provider (when enabled) and the BMI
// service's instruments. Instruments are always created; without a provider
// they record into the no-op default.
func initMetrics(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	shutdown := func(context.Context) error { return nil }

	if cfg.MetricsEnabled {
		var err error
		shutdown, err = observability.InitMetrics(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
