package flatkv

import (
	"encoding/hex"
	"errors"
	"strconv"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// Encoder flattens a value into Pairs. The zero prefix encoder is the
// top level, where only structs, struct variants and maps are
// accepted; scalars only appear below a key.
type Encoder struct {
	opts     Options
	prefix   string
	valuePos bool
}

var _ ser.Serializer[Pairs] = (*Encoder)(nil)

// NewEncoder creates a top-level encoder.
func NewEncoder(opts ...Options) *Encoder {
	options := DefaultOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return &Encoder{opts: options}
}

func (e *Encoder) Format() string { return FormatName }

func (e *Encoder) scalar(kind ser.Kind, rendered string) (Pairs, error) {
	if !e.valuePos {
		return nil, &ser.UnsupportedError{Format: FormatName, Kind: kind}
	}
	return Pairs{{Key: e.prefix, Value: rendered}}, nil
}

func (e *Encoder) EncodeBool(v bool) (Pairs, error) {
	return e.scalar(ser.KindBool, strconv.FormatBool(v))
}

func (e *Encoder) EncodeInt8(v int8) (Pairs, error) {
	return e.scalar(ser.KindInt8, strconv.FormatInt(int64(v), 10))
}

func (e *Encoder) EncodeInt16(v int16) (Pairs, error) {
	return e.scalar(ser.KindInt16, strconv.FormatInt(int64(v), 10))
}

func (e *Encoder) EncodeInt32(v int32) (Pairs, error) {
	return e.scalar(ser.KindInt32, strconv.FormatInt(int64(v), 10))
}

func (e *Encoder) EncodeInt64(v int64) (Pairs, error) {
	return e.scalar(ser.KindInt64, strconv.FormatInt(v, 10))
}

func (e *Encoder) EncodeUint8(v uint8) (Pairs, error) {
	return e.scalar(ser.KindUint8, strconv.FormatUint(uint64(v), 10))
}

func (e *Encoder) EncodeUint16(v uint16) (Pairs, error) {
	return e.scalar(ser.KindUint16, strconv.FormatUint(uint64(v), 10))
}

func (e *Encoder) EncodeUint32(v uint32) (Pairs, error) {
	return e.scalar(ser.KindUint32, strconv.FormatUint(uint64(v), 10))
}

func (e *Encoder) EncodeUint64(v uint64) (Pairs, error) {
	return e.scalar(ser.KindUint64, strconv.FormatUint(v, 10))
}

func (e *Encoder) EncodeFloat32(v float32) (Pairs, error) {
	return e.scalar(ser.KindFloat32, formatFloat(float64(v), 32))
}

func (e *Encoder) EncodeFloat64(v float64) (Pairs, error) {
	return e.scalar(ser.KindFloat64, formatFloat(v, 64))
}

func (e *Encoder) EncodeString(v string) (Pairs, error) {
	return e.scalar(ser.KindString, quoteIfNeeded(v))
}

func (e *Encoder) EncodeBytes(v []byte) (Pairs, error) {
	return e.scalar(ser.KindBytes, hex.EncodeToString(v))
}

// EncodeNone drops the key entirely; absent values have no line.
func (e *Encoder) EncodeNone() (Pairs, error) {
	if !e.valuePos {
		return nil, &ser.UnsupportedError{Format: FormatName, Kind: ser.KindNone}
	}
	return nil, nil
}

// EncodeSome flattens the wrapped value in place.
func (e *Encoder) EncodeSome(v any) (Pairs, error) {
	return ser.Encode[Pairs](e, v)
}

func (e *Encoder) EncodeUnitVariant(name string, index uint32, variant string) (Pairs, error) {
	if !e.valuePos {
		return nil, &ser.UnsupportedError{Format: FormatName, Kind: ser.KindUnitVariant}
	}
	return Pairs{{Key: e.prefix, Value: variant}}, nil
}

// Positional shapes have no flat representation.

func (e *Encoder) EncodeSeq(length int) (ser.SeqEncoder[Pairs], error) {
	return ser.Unsupported[Pairs](FormatName, ser.KindSeq)
}

func (e *Encoder) EncodeTuple(length int) (ser.TupleEncoder[Pairs], error) {
	return ser.Unsupported[Pairs](FormatName, ser.KindTuple)
}

func (e *Encoder) EncodeTupleStruct(name string, length int) (ser.TupleStructEncoder[Pairs], error) {
	return ser.Unsupported[Pairs](FormatName, ser.KindTupleStruct)
}

func (e *Encoder) EncodeTupleVariant(name string, index uint32, variant string, length int) (ser.TupleVariantEncoder[Pairs], error) {
	return ser.Unsupported[Pairs](FormatName, ser.KindTupleVariant)
}

func (e *Encoder) EncodeMap(length int) (ser.MapEncoder[Pairs], error) {
	if length < 0 {
		return nil, ser.ErrLengthUnknown
	}
	return &mapHandle{opts: e.opts, prefix: e.prefix}, nil
}

func (e *Encoder) EncodeStruct(name string, length int) (ser.StructEncoder[Pairs], error) {
	if length < 0 {
		return nil, ser.ErrLengthUnknown
	}
	return &structHandle{opts: e.opts, prefix: e.prefix}, nil
}

// EncodeStructVariant nests the variant's fields under the variant
// name, so the arm is readable from the keys themselves.
func (e *Encoder) EncodeStructVariant(name string, index uint32, variant string, length int) (ser.StructVariantEncoder[Pairs], error) {
	if length < 0 {
		return nil, ser.ErrLengthUnknown
	}
	return &structHandle{opts: e.opts, prefix: joinKey(e.prefix, variant, e.opts.separator())}, nil
}

// structHandle collects the flattened fields of a struct or struct
// variant.
type structHandle struct {
	opts   Options
	prefix string
	pairs  Pairs
}

var (
	_ ser.StructEncoder[Pairs]        = (*structHandle)(nil)
	_ ser.StructVariantEncoder[Pairs] = (*structHandle)(nil)
)

func (h *structHandle) EncodeField(name string, v any) error {
	child := &Encoder{opts: h.opts, prefix: joinKey(h.prefix, name, h.opts.separator()), valuePos: true}
	pairs, err := ser.Encode[Pairs](child, v)
	if err != nil {
		return err
	}
	h.pairs = append(h.pairs, pairs...)
	return nil
}

func (h *structHandle) End() (Pairs, error) {
	return h.pairs, nil
}

// mapHandle collects flattened map entries. Keys stringify through the
// key serializer, values flatten under the stringified key.
type mapHandle struct {
	opts    Options
	prefix  string
	pairs   Pairs
	pending string
	hasKey  bool
}

var _ ser.MapEncoder[Pairs] = (*mapHandle)(nil)

func (h *mapHandle) EncodeKey(k any) error {
	if h.hasKey {
		return errors.New("flatkv: EncodeKey called twice without EncodeValue")
	}
	key, err := ser.Encode[string](&keyEncoder{}, k)
	if err != nil {
		return err
	}
	h.pending = key
	h.hasKey = true
	return nil
}

func (h *mapHandle) EncodeValue(v any) error {
	if !h.hasKey {
		return errors.New("flatkv: EncodeValue called before EncodeKey")
	}
	child := &Encoder{opts: h.opts, prefix: joinKey(h.prefix, h.pending, h.opts.separator()), valuePos: true}
	pairs, err := ser.Encode[Pairs](child, v)
	if err != nil {
		return err
	}
	h.pairs = append(h.pairs, pairs...)
	h.pending = ""
	h.hasKey = false
	return nil
}

func (h *mapHandle) End() (Pairs, error) {
	return h.pairs, nil
}
