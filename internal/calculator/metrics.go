package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	calcCounter   metric.Int64Counter
	calcHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	lastBMIGauge  metric.Float64Gauge
)

// InitMetrics registers the BMI service's OTel instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	calcCounter, err = meter.Int64Counter("bmi.calculations.total",
		metric.WithDescription("Total number of BMI calculations performed"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculations counter: %w", err)
	}

	calcHistogram, err = meter.Float64Histogram("bmi.calculation.duration",
		metric.WithDescription("Duration of BMI calculations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating calculation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("bmi.errors.total",
		metric.WithDescription("Total number of rejected or failed BMI requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	lastBMIGauge, err = meter.Float64Gauge("bmi.last_value",
		metric.WithDescription("The BMI returned by the last calculation"),
		metric.WithUnit("kg/m2"),
	)
	if err != nil {
		return fmt.Errorf("creating last value gauge: %w", err)
	}

	return nil
}
