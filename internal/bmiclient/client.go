// Package bmiclient talks to the BMI calculation service.
package bmiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bmi-calculator/internal/bmi"
	"bmi-calculator/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:8080/api/bmi"

const maxBodyBytes = 1 << 20

// Config configures a Client. Zero values select the defaults.
type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero means no timeout; callers rely on
	// the context instead.
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client calls the calculation service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New returns a Client for cfg. It fails only when the base URL does not
// parse. Requests go through an otelhttp transport.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(tr),
		},
		logger: logger,
	}, nil
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Calculate sends one calculation request. It never retries.
//
// Remote failures are returned as *CalculationError. For a non-2xx response
// the message is taken from the failure body in the order weight, height,
// message, falling back to FallbackMessage.
func (c *Client) Calculate(ctx context.Context, in bmi.MeasurementInput) (bmi.CalculationResult, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return bmi.CalculationResult{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calculate", bytes.NewReader(payload))
	if err != nil {
		return bmi.CalculationResult{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setRequestID(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, Unreachable.String(), start)
		c.logger.Warn("calculation service unreachable",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return bmi.CalculationResult{}, unreachable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.record(ctx, Unreachable.String(), start)
		return bmi.CalculationResult{}, unreachable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// A mistyped field still leaves the well-typed ones decoded.
		var body bmi.ErrorBody
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(raw, &body); err != nil && !errors.As(err, &typeErr) {
			body = bmi.ErrorBody{}
		}
		calcErr := statusError(resp.StatusCode, body.Field(), body.Select(FallbackMessage))
		c.record(ctx, calcErr.Kind.String(), start)
		c.logger.Info("calculation rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("kind", calcErr.Kind.String()),
			zap.String("message", calcErr.Message),
		)
		return bmi.CalculationResult{}, calcErr
	}

	var result bmi.CalculationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.record(ctx, GenericError.String(), start)
		return bmi.CalculationResult{}, &CalculationError{
			Kind:       GenericError,
			Message:    FallbackMessage,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	c.record(ctx, "success", start)
	c.logger.Debug("calculation completed",
		zap.Float64("bmi", result.BMI),
		zap.String("category", result.Category),
	)
	return result, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health calls GET {base}/health and returns the service's message.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	setRequestID(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("health: unexpected status %d", resp.StatusCode)
	}

	var body healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("health: decode: %w", err)
	}
	return body.Message, nil
}

// Probe is the liveness check run at startup. Failures are logged only.
func (c *Client) Probe(ctx context.Context) bool {
	msg, err := c.Health(ctx)
	if err != nil {
		c.logger.Warn("backend not reachable",
			zap.String("base_url", c.baseURL),
			zap.Bool("unreachable", errors.Is(err, ErrUnreachable)),
			zap.Error(err),
		)
		return false
	}
	c.logger.Info("backend status", zap.String("message", msg))
	return true
}

func (c *Client) record(ctx context.Context, outcome string, start time.Time) {
	if requestCounter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	requestCounter.Add(ctx, 1, attrs)
	requestDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, attrs)
}

func setRequestID(ctx context.Context, req *http.Request) {
	if id := observability.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(observability.RequestIDHeader, id)
	}
}
