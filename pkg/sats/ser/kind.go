package ser

// Kind identifies a serialization operation. It is carried inside
// UnsupportedError so callers can tell which operation a format
// rejected.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindNone
	KindSome
	KindUnitVariant
	KindSeq
	KindTuple
	KindTupleStruct
	KindTupleVariant
	KindMap
	KindStruct
	KindStructVariant
)

var kindNames = [...]string{
	KindInvalid:       "invalid",
	KindBool:          "bool",
	KindInt8:          "i8",
	KindInt16:         "i16",
	KindInt32:         "i32",
	KindInt64:         "i64",
	KindUint8:         "u8",
	KindUint16:        "u16",
	KindUint32:        "u32",
	KindUint64:        "u64",
	KindFloat32:       "f32",
	KindFloat64:       "f64",
	KindString:        "string",
	KindBytes:         "bytes",
	KindNone:          "none",
	KindSome:          "some",
	KindUnitVariant:   "unit variant",
	KindSeq:           "seq",
	KindTuple:         "tuple",
	KindTupleStruct:   "tuple struct",
	KindTupleVariant:  "tuple variant",
	KindMap:           "map",
	KindStruct:        "struct",
	KindStructVariant: "struct variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// IsCompound reports whether the kind opens a multi-element encoding
// (one of the seven compound kinds).
func (k Kind) IsCompound() bool {
	switch k {
	case KindSeq, KindTuple, KindTupleStruct, KindTupleVariant, KindMap, KindStruct, KindStructVariant:
		return true
	}
	return false
}
