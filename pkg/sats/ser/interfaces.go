// Package ser defines the generic serialization contract shared by all
// format backends: the Serializer interface, the per-kind compound
// handles, the reflection driver, and the Impossible placeholder used
// by formats that support only a subset of kinds.
//
// A backend implements Serializer[Ok] for its own output type Ok (bytes
// written, a node tree, a pair list). Compound values are encoded
// through handles: the begin operation returns a handle, elements are
// appended through it, and End finishes the compound and yields the Ok
// result. Formats that cannot represent a compound kind return
// Unsupported from the begin operation and never hand out a live
// handle.
package ser

// Serializer is the format-side contract. Scalar, option and unit
// variant operations consume the value and return the backend's Ok
// result directly. Compound operations return a handle for appending
// elements; the element count must be known up front and backends may
// reject negative counts with ErrLengthUnknown.
type Serializer[Ok any] interface {
	// Format returns the registered format name, e.g. "bsatn".
	Format() string

	EncodeBool(v bool) (Ok, error)
	EncodeInt8(v int8) (Ok, error)
	EncodeInt16(v int16) (Ok, error)
	EncodeInt32(v int32) (Ok, error)
	EncodeInt64(v int64) (Ok, error)
	EncodeUint8(v uint8) (Ok, error)
	EncodeUint16(v uint16) (Ok, error)
	EncodeUint32(v uint32) (Ok, error)
	EncodeUint64(v uint64) (Ok, error)
	EncodeFloat32(v float32) (Ok, error)
	EncodeFloat64(v float64) (Ok, error)
	EncodeString(v string) (Ok, error)
	EncodeBytes(v []byte) (Ok, error)

	// EncodeNone and EncodeSome encode the two arms of an optional
	// value. The driver maps nil pointers to none and dereferenced
	// pointers to some.
	EncodeNone() (Ok, error)
	EncodeSome(v any) (Ok, error)

	// EncodeUnitVariant encodes a data-less variant of the named sum
	// type. name may be empty when the union type is anonymous.
	EncodeUnitVariant(name string, index uint32, variant string) (Ok, error)

	// Compound begin operations. length is the element (or field, or
	// entry) count.
	EncodeSeq(length int) (SeqEncoder[Ok], error)
	EncodeTuple(length int) (TupleEncoder[Ok], error)
	EncodeTupleStruct(name string, length int) (TupleStructEncoder[Ok], error)
	EncodeTupleVariant(name string, index uint32, variant string, length int) (TupleVariantEncoder[Ok], error)
	EncodeMap(length int) (MapEncoder[Ok], error)
	EncodeStruct(name string, length int) (StructEncoder[Ok], error)
	EncodeStructVariant(name string, index uint32, variant string, length int) (StructVariantEncoder[Ok], error)
}

// SeqEncoder appends elements of a variable-length sequence.
type SeqEncoder[Ok any] interface {
	EncodeElement(v any) error
	End() (Ok, error)
}

// TupleEncoder appends elements of a fixed-arity heterogeneous tuple.
type TupleEncoder[Ok any] interface {
	EncodeElement(v any) error
	End() (Ok, error)
}

// TupleStructEncoder appends positional elements of a named tuple
// struct.
type TupleStructEncoder[Ok any] interface {
	EncodeElement(v any) error
	End() (Ok, error)
}

// TupleVariantEncoder appends positional elements of a tuple-shaped
// variant of a sum type.
type TupleVariantEncoder[Ok any] interface {
	EncodeElement(v any) error
	End() (Ok, error)
}

// MapEncoder appends key/value entries. Each EncodeKey must be followed
// by exactly one EncodeValue before the next key.
type MapEncoder[Ok any] interface {
	EncodeKey(k any) error
	EncodeValue(v any) error
	End() (Ok, error)
}

// StructEncoder appends named fields of a struct.
type StructEncoder[Ok any] interface {
	EncodeField(name string, v any) error
	End() (Ok, error)
}

// StructVariantEncoder appends named fields of a struct-shaped variant
// of a sum type.
type StructVariantEncoder[Ok any] interface {
	EncodeField(name string, v any) error
	End() (Ok, error)
}

// Marshaler lets a type replace itself with a simpler value before
// encoding. The driver calls MarshalSATS first and encodes the returned
// value instead; returning an error aborts the encode.
type Marshaler interface {
	MarshalSATS() (any, error)
}
