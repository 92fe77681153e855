package bmi

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrNonPositive  = errors.New("non-positive value")
)

// FailureKind classifies a local validation failure.
type FailureKind int

const (
	MissingField FailureKind = iota + 1
	NonPositive
)

func (k FailureKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case NonPositive:
		return "non_positive"
	default:
		return "unknown"
	}
}

// ValidationFailure is returned by Collect. It is never sent to the service.
type ValidationFailure struct {
	Kind  FailureKind
	Field string // first offending field: "weight" or "height"
}

func (e *ValidationFailure) Error() string {
	switch e.Kind {
	case MissingField:
		return "Please enter both weight and height!"
	case NonPositive:
		return "Please enter valid positive numbers!"
	default:
		return "invalid input"
	}
}

func (e *ValidationFailure) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrNonPositive:
		return e.Kind == NonPositive
	}
	return false
}

// Fields holds the raw text of the two form inputs.
type Fields struct {
	Weight string
	Height string
}

// Collect validates the raw fields and pairs them with the selected unit.
// Values are returned exactly as entered.
func Collect(fields Fields, sel Selection) (MeasurementInput, error) {
	weight, okW := parseNumber(fields.Weight)
	height, okH := parseNumber(fields.Height)

	if !okW {
		return MeasurementInput{}, &ValidationFailure{Kind: MissingField, Field: "weight"}
	}
	if !okH {
		return MeasurementInput{}, &ValidationFailure{Kind: MissingField, Field: "height"}
	}
	if weight <= 0 {
		return MeasurementInput{}, &ValidationFailure{Kind: NonPositive, Field: "weight"}
	}
	if height <= 0 {
		return MeasurementInput{}, &ValidationFailure{Kind: NonPositive, Field: "height"}
	}

	return MeasurementInput{
		Weight: weight,
		Height: height,
		Unit:   sel.Unit(),
	}, nil
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
