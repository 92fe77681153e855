package bmi

import (
	"fmt"
	"strings"
)

// Unit selects which units the raw weight and height numbers are expressed in.
// The numbers are never converted on the client; the calculation service
// interprets them.
type Unit string

const (
	Metric   Unit = "metric"   // kilograms, meters
	Imperial Unit = "imperial" // pounds, inches
)

// ParseUnit accepts "metric" or "imperial" in any case.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Valid reports whether u is Metric or Imperial.
func (u Unit) Valid() bool {
	return u == Metric || u == Imperial
}

func (u Unit) String() string {
	return string(u)
}

// MeasurementInput is the request body for POST {base}/calculate.
// Field order matters: it is serialized verbatim.
type MeasurementInput struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// CalculationResult is the success body returned by the calculation service.
type CalculationResult struct {
	BMI           float64 `json:"bmi"`
	Category      string  `json:"category"`
	HealthMessage string  `json:"healthMessage"`
	HealthAdvice  string  `json:"healthAdvice"`
	// Weight and Height echo the inputs converted to kg and m.
	Weight    float64 `json:"weight,omitempty"`
	Height    float64 `json:"height,omitempty"`
	ColorCode string  `json:"colorCode"`
}

// ErrorBody is the failure body the service sends with a non-2xx status.
type ErrorBody struct {
	Weight  string `json:"weight,omitempty"`
	Height  string `json:"height,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Select returns the first populated of Weight, Height and Message, in that
// order, or fallback when none is set.
func (b ErrorBody) Select(fallback string) string {
	switch {
	case b.Weight != "":
		return b.Weight
	case b.Height != "":
		return b.Height
	case b.Message != "":
		return b.Message
	default:
		return fallback
	}
}

// Field names the populated field Select would pick, or "" for message/fallback.
func (b ErrorBody) Field() string {
	switch {
	case b.Weight != "":
		return "weight"
	case b.Height != "":
		return "height"
	default:
		return ""
	}
}
