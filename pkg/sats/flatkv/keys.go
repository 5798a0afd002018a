package flatkv

import (
	"encoding/hex"
	"errors"
	"strconv"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

var errNonScalarKey = errors.New("flatkv: map keys must be scalar")

// keyEncoder stringifies map keys. Keys are scalars by construction,
// so every compound begin hands back an Impossible handle.
type keyEncoder struct{}

var _ ser.Serializer[string] = (*keyEncoder)(nil)

func (keyEncoder) Format() string { return FormatName }

func (keyEncoder) EncodeBool(v bool) (string, error) {
	return strconv.FormatBool(v), nil
}

func (keyEncoder) EncodeInt8(v int8) (string, error) {
	return strconv.FormatInt(int64(v), 10), nil
}

func (keyEncoder) EncodeInt16(v int16) (string, error) {
	return strconv.FormatInt(int64(v), 10), nil
}

func (keyEncoder) EncodeInt32(v int32) (string, error) {
	return strconv.FormatInt(int64(v), 10), nil
}

func (keyEncoder) EncodeInt64(v int64) (string, error) {
	return strconv.FormatInt(v, 10), nil
}

func (keyEncoder) EncodeUint8(v uint8) (string, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (keyEncoder) EncodeUint16(v uint16) (string, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (keyEncoder) EncodeUint32(v uint32) (string, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (keyEncoder) EncodeUint64(v uint64) (string, error) {
	return strconv.FormatUint(v, 10), nil
}

func (keyEncoder) EncodeFloat32(v float32) (string, error) {
	return formatFloat(float64(v), 32), nil
}

func (keyEncoder) EncodeFloat64(v float64) (string, error) {
	return formatFloat(v, 64), nil
}

func (keyEncoder) EncodeString(v string) (string, error) {
	return quoteIfNeeded(v), nil
}

func (keyEncoder) EncodeBytes(v []byte) (string, error) {
	return hex.EncodeToString(v), nil
}

func (keyEncoder) EncodeNone() (string, error) {
	return "", errNonScalarKey
}

func (keyEncoder) EncodeSome(v any) (string, error) {
	return "", errNonScalarKey
}

func (keyEncoder) EncodeUnitVariant(name string, index uint32, variant string) (string, error) {
	return "", errNonScalarKey
}

func (keyEncoder) EncodeSeq(length int) (ser.SeqEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindSeq)
}

func (keyEncoder) EncodeTuple(length int) (ser.TupleEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindTuple)
}

func (keyEncoder) EncodeTupleStruct(name string, length int) (ser.TupleStructEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindTupleStruct)
}

func (keyEncoder) EncodeTupleVariant(name string, index uint32, variant string, length int) (ser.TupleVariantEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindTupleVariant)
}

func (keyEncoder) EncodeMap(length int) (ser.MapEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindMap)
}

func (keyEncoder) EncodeStruct(name string, length int) (ser.StructEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindStruct)
}

func (keyEncoder) EncodeStructVariant(name string, index uint32, variant string, length int) (ser.StructVariantEncoder[string], error) {
	return ser.Unsupported[string](FormatName, ser.KindStructVariant)
}
