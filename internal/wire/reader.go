package wire

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Reader decodes BSATN-tagged values from an io.Reader, typically a
// *bytes.Reader. Like Writer it is error-sticky: after the first failure
// every call returns the same error.
type Reader struct {
	r         io.Reader
	bytesRead int
	err       error
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Error returns the first error recorded during reading, if any.
func (r *Reader) Error() error {
	return r.err
}

// BytesRead returns how many bytes have been consumed so far.
func (r *Reader) BytesRead() int {
	return r.bytesRead
}

func (r *Reader) recordError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) readByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	var b [1]byte
	n, err := io.ReadFull(r.r, b[:])
	r.bytesRead += n
	if err != nil {
		r.recordError(mapEOF(err))
		return 0, r.err
	}
	return b[0], nil
}

func (r *Reader) readFull(p []byte) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.r, p)
	r.bytesRead += n
	if err != nil {
		r.recordError(mapEOF(err))
		return r.err
	}
	return nil
}

// mapEOF turns end-of-input into ErrBufferTooSmall; other reader
// failures pass through unchanged.
func mapEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrBufferTooSmall
	}
	return err
}

func (r *Reader) readUint16LE() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func (r *Reader) readUint32LE() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (r *Reader) readUint64LE() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadTag reads the next tag byte.
func (r *Reader) ReadTag() (byte, error) {
	return r.readByte()
}

// ReadBool interprets a pre-read tag as a boolean.
func (r *Reader) ReadBool(tag byte) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	switch tag {
	case TagBoolFalse:
		return false, nil
	case TagBoolTrue:
		return true, nil
	default:
		r.recordError(ErrInvalidTag)
		return false, r.err
	}
}

// ReadUint8 reads a u8 payload. The tag must already be consumed.
func (r *Reader) ReadUint8() (uint8, error) {
	return r.readByte()
}

// ReadInt8 reads an i8 payload.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.readByte()
	return int8(v), err
}

// ReadUint16 reads a u16 payload.
func (r *Reader) ReadUint16() (uint16, error) {
	return r.readUint16LE()
}

// ReadInt16 reads an i16 payload.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.readUint16LE()
	return int16(v), err
}

// ReadUint32 reads a u32 payload.
func (r *Reader) ReadUint32() (uint32, error) {
	return r.readUint32LE()
}

// ReadInt32 reads an i32 payload.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.readUint32LE()
	return int32(v), err
}

// ReadUint64 reads a u64 payload.
func (r *Reader) ReadUint64() (uint64, error) {
	return r.readUint64LE()
}

// ReadInt64 reads an i64 payload.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.readUint64LE()
	return int64(v), err
}

// ReadFloat32 reads an f32 payload, rejecting NaN and Inf.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.readUint32LE()
	if err != nil {
		return 0, err
	}
	v := math.Float32frombits(bits)
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		r.recordError(ErrInvalidFloat)
		return 0, r.err
	}
	return v, nil
}

// ReadFloat64 reads an f64 payload, rejecting NaN and Inf.
func (r *Reader) ReadFloat64() (float64, error) {
	bits, err := r.readUint64LE()
	if err != nil {
		return 0, err
	}
	v := math.Float64frombits(bits)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.recordError(ErrInvalidFloat)
		return 0, r.err
	}
	return v, nil
}

// ReadString reads a length-prefixed string payload and validates UTF-8.
func (r *Reader) ReadString() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	size, err := r.readUint32LE()
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	if int(size) > MaxPayloadLen {
		r.recordError(ErrTooLarge)
		return "", r.err
	}
	data := make([]byte, size)
	if err := r.readFull(data); err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		r.recordError(ErrInvalidUTF8)
		return "", r.err
	}
	return string(data), nil
}

// ReadBlob reads a length-prefixed byte payload.
func (r *Reader) ReadBlob() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	size, err := r.readUint32LE()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	if int(size) > MaxPayloadLen {
		r.recordError(ErrTooLarge)
		return nil, r.err
	}
	data := make([]byte, size)
	if err := r.readFull(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadListHeader reads the element count after a TagList.
func (r *Reader) ReadListHeader() (uint32, error) {
	return r.readUint32LE()
}

// ReadTupleHeader reads the element count after a TagTuple.
func (r *Reader) ReadTupleHeader() (uint32, error) {
	return r.readUint32LE()
}

// ReadMapHeader reads the entry count after a TagMap.
func (r *Reader) ReadMapHeader() (uint32, error) {
	return r.readUint32LE()
}

// ReadStructHeader reads the field count after a TagStruct.
func (r *Reader) ReadStructHeader() (uint32, error) {
	return r.readUint32LE()
}

// ReadFieldName reads a u8-length-prefixed struct field name.
func (r *Reader) ReadFieldName() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	nameLen, err := r.readByte()
	if err != nil {
		return "", err
	}
	if nameLen == 0 {
		return "", nil
	}
	name := make([]byte, nameLen)
	if err := r.readFull(name); err != nil {
		return "", err
	}
	if !utf8.Valid(name) {
		r.recordError(ErrInvalidUTF8)
		return "", r.err
	}
	return string(name), nil
}

// ReadEnumHeader reads the variant index after a TagEnum.
func (r *Reader) ReadEnumHeader() (uint32, error) {
	return r.readUint32LE()
}
