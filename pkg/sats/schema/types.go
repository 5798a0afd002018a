// Package schema models SATS algebraic types: primitives, options,
// arrays, maps, products (named fields) and sums (tagged variants). A
// schema can be derived from a Go type with the same rules the encode
// driver applies, validated against values, and registered under a
// canonical name.
package schema

import (
	"fmt"
	"strings"
)

// TypeKind discriminates the Type union.
type TypeKind uint32

const (
	KindInvalid TypeKind = iota
	KindBool
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindBytes
	KindOption
	KindArray
	KindMap
	KindProduct
	KindSum
)

var typeKindNames = map[TypeKind]string{
	KindBool:    "bool",
	KindI8:      "i8",
	KindU8:      "u8",
	KindI16:     "i16",
	KindU16:     "u16",
	KindI32:     "i32",
	KindU32:     "u32",
	KindI64:     "i64",
	KindU64:     "u64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindString:  "string",
	KindBytes:   "bytes",
	KindOption:  "option",
	KindArray:   "array",
	KindMap:     "map",
	KindProduct: "product",
	KindSum:     "sum",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Type is the union. Exactly one payload field is set for the compound
// kinds; primitives carry none.
type Type struct {
	Kind    TypeKind
	Option  *Type
	Array   *Type
	Map     *MapType
	Product *ProductType
	Sum     *SumType
}

// MapType describes key and value types of a map.
type MapType struct {
	Key   Type
	Value Type
}

// ProductType is a named collection of typed fields.
type ProductType struct {
	Name     string
	Elements []ProductElement
}

// ProductElement is one field of a product.
type ProductElement struct {
	Name string
	Type Type
}

// SumType is a tagged union; the variant index is the position in
// Variants.
type SumType struct {
	Name     string
	Variants []SumVariant
}

// SumVariant is one arm of a sum. A nil Type marks a unit variant.
type SumVariant struct {
	Name string
	Type *Type
}

// Constructors -------------------------------------------------------------

func BoolType() Type   { return Type{Kind: KindBool} }
func I8Type() Type     { return Type{Kind: KindI8} }
func U8Type() Type     { return Type{Kind: KindU8} }
func I16Type() Type    { return Type{Kind: KindI16} }
func U16Type() Type    { return Type{Kind: KindU16} }
func I32Type() Type    { return Type{Kind: KindI32} }
func U32Type() Type    { return Type{Kind: KindU32} }
func I64Type() Type    { return Type{Kind: KindI64} }
func U64Type() Type    { return Type{Kind: KindU64} }
func F32Type() Type    { return Type{Kind: KindF32} }
func F64Type() Type    { return Type{Kind: KindF64} }
func StringType() Type { return Type{Kind: KindString} }
func BytesType() Type  { return Type{Kind: KindBytes} }

func OptionTypeOf(inner Type) Type {
	return Type{Kind: KindOption, Option: &inner}
}

func ArrayTypeOf(elem Type) Type {
	return Type{Kind: KindArray, Array: &elem}
}

func MapTypeOf(key, value Type) Type {
	return Type{Kind: KindMap, Map: &MapType{Key: key, Value: value}}
}

func ProductTypeOf(name string, elems ...ProductElement) Type {
	return Type{Kind: KindProduct, Product: &ProductType{Name: name, Elements: elems}}
}

func SumTypeOf(name string, variants ...SumVariant) Type {
	return Type{Kind: KindSum, Sum: &SumType{Name: name, Variants: variants}}
}

// Element builds a ProductElement; Variant and UnitVariant build sum
// arms.
func Element(name string, t Type) ProductElement {
	return ProductElement{Name: name, Type: t}
}

func Variant(name string, t Type) SumVariant {
	return SumVariant{Name: name, Type: &t}
}

func UnitVariant(name string) SumVariant {
	return SumVariant{Name: name}
}

// IsPrimitive reports whether the type carries no nested payload.
func (t Type) IsPrimitive() bool {
	return t.Kind >= KindBool && t.Kind <= KindBytes
}

// String renders a compact diagnostic notation, e.g.
// "point { x: i32, y: i32 }" or "option<array<u8>>".
func (t Type) String() string {
	switch t.Kind {
	case KindOption:
		return "option<" + t.Option.String() + ">"
	case KindArray:
		return "array<" + t.Array.String() + ">"
	case KindMap:
		return "map<" + t.Map.Key.String() + ", " + t.Map.Value.String() + ">"
	case KindProduct:
		var b strings.Builder
		if t.Product.Name != "" {
			b.WriteString(t.Product.Name)
			b.WriteByte(' ')
		}
		b.WriteString("{")
		for i, el := range t.Product.Elements {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, " %s: %s", el.Name, el.Type)
		}
		if len(t.Product.Elements) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("}")
		return b.String()
	case KindSum:
		var b strings.Builder
		if t.Sum.Name != "" {
			b.WriteString(t.Sum.Name)
			b.WriteByte(' ')
		}
		b.WriteString("[")
		for i, v := range t.Sum.Variants {
			if i > 0 {
				b.WriteString(" |")
			}
			b.WriteByte(' ')
			b.WriteString(v.Name)
			if v.Type != nil {
				b.WriteString(": ")
				b.WriteString(v.Type.String())
			}
		}
		if len(t.Sum.Variants) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("]")
		return b.String()
	default:
		return t.Kind.String()
	}
}
