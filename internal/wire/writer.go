package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Writer encodes BSATN-tagged values into an io.Writer, typically a
// *bytes.Buffer. The first error encountered sticks and turns every later
// call into a no-op, so call sites can chain writes and check Error once.
type Writer struct {
	w            io.Writer
	err          error
	bytesWritten int
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Bytes returns the accumulated bytes when the underlying writer is a
// *bytes.Buffer. It returns nil for other writers or after an error.
func (w *Writer) Bytes() []byte {
	if w.err != nil {
		return nil
	}
	if bb, ok := w.w.(*bytes.Buffer); ok {
		return bb.Bytes()
	}
	return nil
}

// Error returns the first error recorded during writing, if any.
func (w *Writer) Error() error {
	return w.err
}

// BytesWritten returns how many bytes have been successfully written so far.
func (w *Writer) BytesWritten() int {
	return w.bytesWritten
}

func (w *Writer) recordError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// writeRaw writes p verbatim and tracks the byte count.
func (w *Writer) writeRaw(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.bytesWritten += n
	w.recordError(err)
}

func (w *Writer) writeUint16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.writeRaw(buf[:])
}

func (w *Writer) writeUint32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.writeRaw(buf[:])
}

func (w *Writer) writeUint64LE(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.writeRaw(buf[:])
}

// WriteTag writes a bare tag byte.
func (w *Writer) WriteTag(tag byte) {
	w.writeRaw([]byte{tag})
}

// WriteBool writes a boolean as TagBoolTrue or TagBoolFalse.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteTag(TagBoolTrue)
	} else {
		w.WriteTag(TagBoolFalse)
	}
}

// WriteUint8 writes TagU8 followed by the value.
func (w *Writer) WriteUint8(v uint8) {
	w.WriteTag(TagU8)
	w.writeRaw([]byte{v})
}

// WriteInt8 writes TagI8 followed by the value.
func (w *Writer) WriteInt8(v int8) {
	w.WriteTag(TagI8)
	w.writeRaw([]byte{byte(v)})
}

// WriteUint16 writes TagU16 followed by the value in little-endian.
func (w *Writer) WriteUint16(v uint16) {
	w.WriteTag(TagU16)
	w.writeUint16LE(v)
}

// WriteInt16 writes TagI16 followed by the value in little-endian.
func (w *Writer) WriteInt16(v int16) {
	w.WriteTag(TagI16)
	w.writeUint16LE(uint16(v))
}

// WriteUint32 writes TagU32 followed by the value in little-endian.
func (w *Writer) WriteUint32(v uint32) {
	w.WriteTag(TagU32)
	w.writeUint32LE(v)
}

// WriteInt32 writes TagI32 followed by the value in little-endian.
func (w *Writer) WriteInt32(v int32) {
	w.WriteTag(TagI32)
	w.writeUint32LE(uint32(v))
}

// WriteUint64 writes TagU64 followed by the value in little-endian.
func (w *Writer) WriteUint64(v uint64) {
	w.WriteTag(TagU64)
	w.writeUint64LE(v)
}

// WriteInt64 writes TagI64 followed by the value in little-endian.
func (w *Writer) WriteInt64(v int64) {
	w.WriteTag(TagI64)
	w.writeUint64LE(uint64(v))
}

// WriteFloat32 writes TagF32 followed by the IEEE 754 bits. NaN and Inf are
// rejected with ErrInvalidFloat.
func (w *Writer) WriteFloat32(v float32) {
	if w.err != nil {
		return
	}
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		w.recordError(ErrInvalidFloat)
		return
	}
	w.WriteTag(TagF32)
	w.writeUint32LE(math.Float32bits(v))
}

// WriteFloat64 writes TagF64 followed by the IEEE 754 bits. NaN and Inf are
// rejected with ErrInvalidFloat.
func (w *Writer) WriteFloat64(v float64) {
	if w.err != nil {
		return
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.recordError(ErrInvalidFloat)
		return
	}
	w.WriteTag(TagF64)
	w.writeUint64LE(math.Float64bits(v))
}

// WriteString writes TagString, a u32 length prefix and the UTF-8 bytes.
func (w *Writer) WriteString(v string) {
	if w.err != nil {
		return
	}
	if !utf8.ValidString(v) {
		w.recordError(ErrInvalidUTF8)
		return
	}
	if len(v) > MaxPayloadLen {
		w.recordError(ErrTooLarge)
		return
	}
	w.WriteTag(TagString)
	w.writeUint32LE(uint32(len(v)))
	if len(v) > 0 {
		w.writeRaw([]byte(v))
	}
}

// WriteBytes writes TagBytes, a u32 length prefix and the raw bytes.
func (w *Writer) WriteBytes(v []byte) {
	if w.err != nil {
		return
	}
	if len(v) > MaxPayloadLen {
		w.recordError(ErrTooLarge)
		return
	}
	w.WriteTag(TagBytes)
	w.writeUint32LE(uint32(len(v)))
	if len(v) > 0 {
		w.writeRaw(v)
	}
}

// WriteNoneTag writes TagOptionNone.
func (w *Writer) WriteNoneTag() {
	w.WriteTag(TagOptionNone)
}

// WriteSomeTag writes TagOptionSome. The caller writes the wrapped value next.
func (w *Writer) WriteSomeTag() {
	w.WriteTag(TagOptionSome)
}

// checkCount validates an element count for a header. Negative counts mean
// the caller could not determine the length, which this format cannot encode.
func (w *Writer) checkCount(count int) bool {
	if w.err != nil {
		return false
	}
	if count < 0 {
		w.recordError(ErrLengthUnknown)
		return false
	}
	return true
}

// WriteListHeader writes TagList and the element count. The caller writes
// each element next.
func (w *Writer) WriteListHeader(count int) {
	if !w.checkCount(count) {
		return
	}
	w.WriteTag(TagList)
	w.writeUint32LE(uint32(count))
}

// WriteTupleHeader writes TagTuple and the element count. The caller writes
// each element positionally next.
func (w *Writer) WriteTupleHeader(count int) {
	if !w.checkCount(count) {
		return
	}
	w.WriteTag(TagTuple)
	w.writeUint32LE(uint32(count))
}

// WriteMapHeader writes TagMap and the entry count. The caller writes each
// key then value next.
func (w *Writer) WriteMapHeader(count int) {
	if !w.checkCount(count) {
		return
	}
	w.WriteTag(TagMap)
	w.writeUint32LE(uint32(count))
}

// WriteStructHeader writes TagStruct and the field count. The caller writes
// each field as WriteFieldName followed by the field value.
func (w *Writer) WriteStructHeader(fieldCount int) {
	if !w.checkCount(fieldCount) {
		return
	}
	w.WriteTag(TagStruct)
	w.writeUint32LE(uint32(fieldCount))
}

// WriteFieldName writes a struct field name as a u8 length prefix plus the
// UTF-8 bytes.
func (w *Writer) WriteFieldName(name string) {
	if w.err != nil {
		return
	}
	if len(name) > MaxFieldNameLen {
		w.recordError(fmt.Errorf("bsatn: field name %q too long (%d bytes), max %d", name, len(name), MaxFieldNameLen))
		return
	}
	if !utf8.ValidString(name) {
		w.recordError(fmt.Errorf("bsatn: field name %q is not valid UTF-8", name))
		return
	}
	w.writeRaw([]byte{byte(len(name))})
	if len(name) > 0 {
		w.writeRaw([]byte(name))
	}
}

// WriteEnumHeader writes TagEnum and the variant index. The caller writes the
// variant payload next; unit variants use an empty tuple as payload.
func (w *Writer) WriteEnumHeader(variantIndex uint32) {
	w.WriteTag(TagEnum)
	w.writeUint32LE(variantIndex)
}
