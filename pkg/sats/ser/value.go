package ser

// Tuple marks a slice of values as a fixed-arity heterogeneous tuple.
// The driver encodes it through EncodeTuple rather than EncodeSeq.
type Tuple []any

// TupleStruct is a named tuple: positional elements carried under a
// struct name.
type TupleStruct struct {
	Name  string
	Elems []any
}

// Fields is a dynamically built struct value: named fields without a
// backing Go struct type. The driver encodes it as a struct with
// sorted field names, where a plain map[string]any encodes as a map.
type Fields map[string]any

// Variant is a dynamically built sum-type value. Name is the variant
// name and Index its position in the sum. The payload selects the
// encoded shape: nil encodes a unit variant, a Tuple a tuple variant,
// a Go struct, Fields or map[string]any a struct variant, and any
// other value a one-element tuple variant.
type Variant struct {
	Name  string
	Index uint32
	Value any
}

// NewVariant builds a variant carrying value as its payload.
func NewVariant(name string, index uint32, value any) Variant {
	return Variant{Name: name, Index: index, Value: value}
}

// NewUnitVariant builds a payload-less variant.
func NewUnitVariant(name string, index uint32) Variant {
	return Variant{Name: name, Index: index}
}

// IsUnit reports whether the variant carries no payload.
func (v Variant) IsUnit() bool {
	return v.Value == nil
}
