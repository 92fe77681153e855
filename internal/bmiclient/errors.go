package bmiclient

import (
	"errors"
	"fmt"
)

const (
	// FallbackMessage is used when a failure body carries no usable text.
	FallbackMessage = "Error calculating BMI"
	// UnreachableMessage replaces any transport error text.
	UnreachableMessage = "Cannot connect to server. Make sure the backend is running."
)

var (
	ErrUnreachable  = errors.New("calculation service unreachable")
	ErrFieldInvalid = errors.New("field rejected by calculation service")
	ErrGeneric      = errors.New("calculation failed")
)

// ErrorKind classifies a CalculationError.
type ErrorKind int

const (
	FieldError ErrorKind = iota + 1
	GenericError
	Unreachable
)

func (k ErrorKind) String() string {
	switch k {
	case FieldError:
		return "field_error"
	case GenericError:
		return "generic_error"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// CalculationError is returned by Client.Calculate for every remote failure.
// Error() is always display-ready.
type CalculationError struct {
	Kind       ErrorKind
	Field      string // "weight" or "height" for FieldError
	Message    string
	StatusCode int // 0 for Unreachable
	Err        error
}

func (e *CalculationError) Error() string {
	return e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

func (e *CalculationError) Is(target error) bool {
	switch target {
	case ErrUnreachable:
		return e.Kind == Unreachable
	case ErrFieldInvalid:
		return e.Kind == FieldError
	case ErrGeneric:
		return e.Kind == GenericError
	}
	return false
}

func unreachable(err error) *CalculationError {
	return &CalculationError{
		Kind:    Unreachable,
		Message: UnreachableMessage,
		Err:     err,
	}
}

func statusError(status int, field, msg string) *CalculationError {
	kind := GenericError
	if field != "" {
		kind = FieldError
	}
	return &CalculationError{
		Kind:       kind,
		Field:      field,
		Message:    msg,
		StatusCode: status,
		Err:        fmt.Errorf("calculate: status %d", status),
	}
}
