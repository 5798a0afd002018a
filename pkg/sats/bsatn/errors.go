package bsatn

import (
	"fmt"

	"github.com/clockworklabs/sats-go/internal/wire"
)

// Sentinel errors for malformed documents and unencodable values. They
// originate in the wire layer and are re-exported so callers never
// import internal packages.
var (
	ErrInvalidTag     = wire.ErrInvalidTag
	ErrBufferTooSmall = wire.ErrBufferTooSmall
	ErrInvalidUTF8    = wire.ErrInvalidUTF8
	ErrOverflow       = wire.ErrOverflow
	ErrInvalidFloat   = wire.ErrInvalidFloat
	ErrTooLarge       = wire.ErrTooLarge
	ErrLengthUnknown  = wire.ErrLengthUnknown
	ErrTrailingData   = wire.ErrTrailingData
)

// DecodeError reports where in the input decoding failed.
type DecodeError struct {
	Offset int // bytes consumed when the failure was detected
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bsatn: decode failed at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("bsatn: decode failed at offset %d: %s", e.Offset, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
