package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solver and sweep operations.
var (
	// ErrInvalidParameter indicates a rate, initial state, grid or sweep axis outside its valid domain.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrDegenerateRates indicates splicing and decay rates equal within tolerance
	// while strict rate checking is enabled.
	ErrDegenerateRates = errors.New("dynamo: degenerate rates (decay equals splicing)")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// ParamError wraps a validation failure with the offending name and value.
type ParamError struct {
	Name    string
	Value   float64
	Reason  string
	Wrapped error
}

// NewParamError returns a ParamError wrapping ErrInvalidParameter.
func NewParamError(name string, value float64, reason string) *ParamError {
	return &ParamError{Name: name, Value: value, Reason: reason, Wrapped: ErrInvalidParameter}
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", e.Wrapped.Error(), e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
