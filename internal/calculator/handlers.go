package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"bmi-calculator/internal/handlers"
	"bmi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the BMI service's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// now is replaced in tests.
var now = time.Now

// Calculate handles POST /api/bmi/calculate.
func Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleCalculation(w, r, "calculate", nil, err)
		return
	}
	handleCalculation(w, r, "calculate", &req, nil)
}

// CalculateQuery handles GET /api/bmi/calculate?weight=70&height=1.75&unit=metric.
func CalculateQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := CalculateRequest{
		Weight: queryFloat(q.Get("weight")),
		Height: queryFloat(q.Get("height")),
		Unit:   q.Get("unit"),
	}
	handleCalculation(w, r, "calculate_query", &req, nil)
}

// Health handles GET /api/bmi/health.
func Health(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Message:   "BMI Calculator API is running! 🚀",
		Timestamp: strconv.FormatInt(now().UnixMilli(), 10),
	})
}

// queryFloat returns nil for absent or non-finite values so they are
// reported as missing.
func queryFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// handleCalculation is shared by both calculate endpoints: span, validation,
// timed computation, metrics, trace-correlated logging, and the JSON response.
// decodeErr is set when the body could not be parsed.
func handleCalculation(w http.ResponseWriter, r *http.Request, opName string, req *CalculateRequest, decodeErr error) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("bmi.%s", opName),
		trace.WithAttributes(
			attribute.String("bmi.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if decodeErr != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", decodeErr, http.StatusBadRequest, w,
			map[string]string{"error": "invalid request body", "message": "Request body must be JSON with weight, height and unit"})
		return
	}

	in, fieldErrs := validate(*req)
	if fieldErrs != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "validation failed", fieldError(fieldErrs), http.StatusBadRequest, w, fieldErrs)
		return
	}

	span.SetAttributes(
		attribute.Float64("bmi.input.weight", in.Weight),
		attribute.Float64("bmi.input.height", in.Height),
		attribute.String("bmi.input.unit", in.Unit.String()),
	)

	start := time.Now()
	resp := Compute(in)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if math.IsNaN(resp.BMI) || math.IsInf(resp.BMI, 0) {
		err := fmt.Errorf("non-finite bmi for weight=%g height=%g", in.Weight, in.Height)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "calculation failed", err, http.StatusInternalServerError, w,
			map[string]string{"error": "Something went wrong!", "message": err.Error()})
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("unit", in.Unit.String()),
		attribute.String("category", resp.Category),
	)
	calcCounter.Add(ctx, 1, attrs)
	calcHistogram.Record(ctx, elapsed, attrs)
	lastBMIGauge.Record(ctx, resp.BMI, attrs)

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.Float64("bmi", resp.BMI),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.Float64("bmi.result", resp.BMI),
		attribute.String("bmi.category", resp.Category),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("bmi calculated",
		zap.String("operation", opName),
		zap.String("unit", in.Unit.String()),
		zap.Float64("bmi", resp.BMI),
		zap.String("category", resp.Category),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// fieldError flattens field errors into one error for the span and log.
func fieldError(errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return errors.New(strings.Join(parts, "; "))
}
