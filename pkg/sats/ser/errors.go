package ser

import (
	"errors"
	"fmt"
)

// Common sentinel errors surfaced by encoders.
var (
	// ErrLengthUnknown is returned when a compound begin is called with a
	// negative length. Formats in this package require lengths up front.
	ErrLengthUnknown = errors.New("ser: length must be known up front")

	// ErrNilSerializer is returned by Encode when given a nil serializer.
	ErrNilSerializer = errors.New("ser: nil serializer")
)

// UnsupportedError reports that a format does not support an operation.
// It is the error returned alongside an Impossible handle.
type UnsupportedError struct {
	Format string // format name, e.g. "flatkv"
	Kind   Kind   // operation the format rejected
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("ser: format %q does not support %s", e.Format, e.Kind)
}

// IsUnsupported reports whether err (or an error it wraps) is an
// UnsupportedError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

// EncodeError wraps a failure while encoding a Go value, recording the
// offending type and a short reason.
type EncodeError struct {
	Type   string // Go type being encoded
	Reason string
	Err    error // underlying error, may be nil
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ser: cannot encode %s: %s: %v", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("ser: cannot encode %s: %s", e.Type, e.Reason)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func encodeErrorf(typ, format string, args ...any) *EncodeError {
	return &EncodeError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}
