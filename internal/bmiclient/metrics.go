package bmiclient

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	requestCounter  metric.Int64Counter
	requestDuration metric.Float64Histogram
)

// InitMetrics registers the client's instruments on the global meter
// provider. Until it is called the client records nothing.
func InitMetrics() error {
	meter := otel.Meter("bmiclient")

	var err error

	requestCounter, err = meter.Int64Counter("bmi.client.requests.total",
		metric.WithDescription("Calculation requests sent, by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	requestDuration, err = meter.Float64Histogram("bmi.client.request.duration",
		metric.WithDescription("Round-trip time of calculation requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000),
	)
	if err != nil {
		return fmt.Errorf("creating request histogram: %w", err)
	}

	return nil
}
