// Package bsatn implements the binary SATS encoding: every value is a
// tag byte followed by a little-endian payload. It is the reference
// backend with full compound support, and the only one with a decoder.
package bsatn

import (
	"io"

	"github.com/clockworklabs/sats-go/internal/wire"
	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// FormatName is the name this backend registers under.
const FormatName = "bsatn"

// Encoder implements ser.Serializer[int] over a wire.Writer. The Ok
// result is the cumulative byte count, so nested End calls report the
// running total and the outermost caller sees the document size.
type Encoder struct {
	w *wire.Writer
}

var _ ser.Serializer[int] = (*Encoder)(nil)

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: wire.NewWriter(w)}
}

// BytesWritten returns how many bytes have been emitted so far.
func (e *Encoder) BytesWritten() int {
	return e.w.BytesWritten()
}

func (e *Encoder) Format() string { return FormatName }

// result converts the writer's sticky state into the (Ok, error) shape.
func (e *Encoder) result() (int, error) {
	if err := e.w.Error(); err != nil {
		return 0, err
	}
	return e.w.BytesWritten(), nil
}

func (e *Encoder) encodeChild(v any) error {
	_, err := ser.Encode[int](e, v)
	return err
}

func (e *Encoder) EncodeBool(v bool) (int, error) {
	e.w.WriteBool(v)
	return e.result()
}

func (e *Encoder) EncodeInt8(v int8) (int, error) {
	e.w.WriteInt8(v)
	return e.result()
}

func (e *Encoder) EncodeInt16(v int16) (int, error) {
	e.w.WriteInt16(v)
	return e.result()
}

func (e *Encoder) EncodeInt32(v int32) (int, error) {
	e.w.WriteInt32(v)
	return e.result()
}

func (e *Encoder) EncodeInt64(v int64) (int, error) {
	e.w.WriteInt64(v)
	return e.result()
}

func (e *Encoder) EncodeUint8(v uint8) (int, error) {
	e.w.WriteUint8(v)
	return e.result()
}

func (e *Encoder) EncodeUint16(v uint16) (int, error) {
	e.w.WriteUint16(v)
	return e.result()
}

func (e *Encoder) EncodeUint32(v uint32) (int, error) {
	e.w.WriteUint32(v)
	return e.result()
}

func (e *Encoder) EncodeUint64(v uint64) (int, error) {
	e.w.WriteUint64(v)
	return e.result()
}

func (e *Encoder) EncodeFloat32(v float32) (int, error) {
	e.w.WriteFloat32(v)
	return e.result()
}

func (e *Encoder) EncodeFloat64(v float64) (int, error) {
	e.w.WriteFloat64(v)
	return e.result()
}

func (e *Encoder) EncodeString(v string) (int, error) {
	e.w.WriteString(v)
	return e.result()
}

func (e *Encoder) EncodeBytes(v []byte) (int, error) {
	e.w.WriteBytes(v)
	return e.result()
}

func (e *Encoder) EncodeNone() (int, error) {
	e.w.WriteNoneTag()
	return e.result()
}

func (e *Encoder) EncodeSome(v any) (int, error) {
	e.w.WriteSomeTag()
	if err := e.w.Error(); err != nil {
		return 0, err
	}
	if err := e.encodeChild(v); err != nil {
		return 0, err
	}
	return e.result()
}

// EncodeUnitVariant writes the variant index with an empty tuple as
// payload, keeping every enum decodable without lookahead.
func (e *Encoder) EncodeUnitVariant(name string, index uint32, variant string) (int, error) {
	e.w.WriteEnumHeader(index)
	e.w.WriteTupleHeader(0)
	return e.result()
}

func (e *Encoder) EncodeSeq(length int) (ser.SeqEncoder[int], error) {
	e.w.WriteListHeader(length)
	return e.section()
}

func (e *Encoder) EncodeTuple(length int) (ser.TupleEncoder[int], error) {
	e.w.WriteTupleHeader(length)
	return e.section()
}

// EncodeTupleStruct encodes like a plain tuple; the wire format does
// not carry type names.
func (e *Encoder) EncodeTupleStruct(name string, length int) (ser.TupleStructEncoder[int], error) {
	e.w.WriteTupleHeader(length)
	return e.section()
}

func (e *Encoder) EncodeTupleVariant(name string, index uint32, variant string, length int) (ser.TupleVariantEncoder[int], error) {
	e.w.WriteEnumHeader(index)
	e.w.WriteTupleHeader(length)
	return e.section()
}

func (e *Encoder) EncodeMap(length int) (ser.MapEncoder[int], error) {
	e.w.WriteMapHeader(length)
	return e.section()
}

func (e *Encoder) EncodeStruct(name string, length int) (ser.StructEncoder[int], error) {
	e.w.WriteStructHeader(length)
	return e.section()
}

func (e *Encoder) EncodeStructVariant(name string, index uint32, variant string, length int) (ser.StructVariantEncoder[int], error) {
	e.w.WriteEnumHeader(index)
	e.w.WriteStructHeader(length)
	return e.section()
}

// section hands out the compound handle, or the writer's error when the
// header already failed so no partial compound leaks out.
func (e *Encoder) section() (*section, error) {
	if err := e.w.Error(); err != nil {
		return nil, err
	}
	return &section{e: e}, nil
}

// section is the single handle type serving all seven compound kinds.
type section struct {
	e *Encoder
}

func (s *section) EncodeElement(v any) error {
	return s.e.encodeChild(v)
}

func (s *section) EncodeKey(k any) error {
	return s.e.encodeChild(k)
}

func (s *section) EncodeValue(v any) error {
	return s.e.encodeChild(v)
}

func (s *section) EncodeField(name string, v any) error {
	s.e.w.WriteFieldName(name)
	if err := s.e.w.Error(); err != nil {
		return err
	}
	return s.e.encodeChild(v)
}

func (s *section) End() (int, error) {
	return s.e.result()
}
