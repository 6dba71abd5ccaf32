package dynamo

import "errors"

// Domain errors for state and parameter edits.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrNoTimeStep indicates a time step edit on a discrete map.
	ErrNoTimeStep = errors.New("dynamo: system has no time step")
)

// BoundsError wraps ErrParameterBounds with the offending value.
type BoundsError struct {
	Index int
	Value float64
	Range Range
}

func (e *BoundsError) Error() string {
	return ErrParameterBounds.Error() + ": " + e.Range.describe(e.Index, e.Value)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}
