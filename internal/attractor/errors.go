package attractor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttractor indicates a key or display name outside the catalog.
	ErrUnknownAttractor = errors.New("attractor: unknown attractor")

	// ErrMissingName indicates a record without its name discriminator.
	ErrMissingName = errors.New("attractor: record has no name")

	// ErrMalformedRecord indicates a record whose fields do not fit the variant.
	ErrMalformedRecord = errors.New("attractor: malformed record")
)

// DecodeError reports which field of a record could not be restored.
type DecodeError struct {
	Name   string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s.%s: %s", ErrMalformedRecord, e.Name, e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrMalformedRecord
}
