package wire

import "errors"

// Sentinel errors for the BSATN wire layer. Messages carry the format name
// rather than the package name because these surface through the public
// bsatn package unchanged.
var (
	ErrInvalidTag     = errors.New("bsatn: invalid type tag")
	ErrBufferTooSmall = errors.New("bsatn: buffer too small")
	ErrInvalidUTF8    = errors.New("bsatn: invalid utf8 string")
	ErrOverflow       = errors.New("bsatn: integer overflow")
	ErrInvalidFloat   = errors.New("bsatn: invalid float value (NaN or Inf)")
	ErrTooLarge       = errors.New("bsatn: payload too large")
	ErrLengthUnknown  = errors.New("bsatn: length must be known up front")
	ErrTrailingData   = errors.New("bsatn: trailing bytes after value")
)
