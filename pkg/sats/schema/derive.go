package schema

import (
	"fmt"
	"reflect"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// Derive builds the schema of a Go type by the rules the encode driver
// walks values: pointers become options, slices and arrays become
// arrays, byte slices the bytes primitive, maps become map types, and
// structs become products over the serialized field layout. int widens
// to i64 and uint to u64, matching the driver.
//
// Interfaces, channels, funcs and the dynamic ser value types carry no
// static schema and are rejected. Recursive types are rejected as
// well; the wire format has no type references to tie the knot with.
func Derive(t reflect.Type) (Type, error) {
	if t == nil {
		return Type{}, fmt.Errorf("schema: cannot derive a schema for a nil type")
	}
	return derive(t, make(map[reflect.Type]bool))
}

// DeriveFor derives the schema of v's dynamic type.
func DeriveFor(v any) (Type, error) {
	return Derive(reflect.TypeOf(v))
}

var dynamicSerTypes = map[reflect.Type]string{
	reflect.TypeOf(ser.Tuple(nil)):    "ser.Tuple",
	reflect.TypeOf(ser.TupleStruct{}): "ser.TupleStruct",
	reflect.TypeOf(ser.Fields(nil)):   "ser.Fields",
	reflect.TypeOf(ser.Variant{}):     "ser.Variant",
}

func derive(t reflect.Type, visiting map[reflect.Type]bool) (Type, error) {
	if name, ok := dynamicSerTypes[t]; ok {
		return Type{}, fmt.Errorf("schema: %s is dynamic and has no static schema", name)
	}

	switch t.Kind() {
	case reflect.Bool:
		return BoolType(), nil
	case reflect.Int8:
		return I8Type(), nil
	case reflect.Int16:
		return I16Type(), nil
	case reflect.Int32:
		return I32Type(), nil
	case reflect.Int, reflect.Int64:
		return I64Type(), nil
	case reflect.Uint8:
		return U8Type(), nil
	case reflect.Uint16:
		return U16Type(), nil
	case reflect.Uint32:
		return U32Type(), nil
	case reflect.Uint, reflect.Uint64:
		return U64Type(), nil
	case reflect.Float32:
		return F32Type(), nil
	case reflect.Float64:
		return F64Type(), nil
	case reflect.String:
		return StringType(), nil

	case reflect.Pointer:
		inner, err := derive(t.Elem(), visiting)
		if err != nil {
			return Type{}, err
		}
		return OptionTypeOf(inner), nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return BytesType(), nil
		}
		elem, err := derive(t.Elem(), visiting)
		if err != nil {
			return Type{}, err
		}
		return ArrayTypeOf(elem), nil

	case reflect.Array:
		elem, err := derive(t.Elem(), visiting)
		if err != nil {
			return Type{}, err
		}
		return ArrayTypeOf(elem), nil

	case reflect.Map:
		switch t.Key().Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return Type{}, fmt.Errorf("schema: map key type %s is not serializable", t.Key())
		}
		key, err := derive(t.Key(), visiting)
		if err != nil {
			return Type{}, err
		}
		value, err := derive(t.Elem(), visiting)
		if err != nil {
			return Type{}, err
		}
		return MapTypeOf(key, value), nil

	case reflect.Struct:
		if visiting[t] {
			return Type{}, fmt.Errorf("schema: recursive type %s cannot be described", t)
		}
		visiting[t] = true
		defer delete(visiting, t)

		layout := ser.FieldsOf(t)
		elems := make([]ProductElement, 0, len(layout))
		for _, f := range layout {
			ft, err := derive(f.Type, visiting)
			if err != nil {
				return Type{}, fmt.Errorf("schema: field %q of %s: %w", f.Name, t, err)
			}
			elems = append(elems, Element(f.Name, ft))
		}
		return ProductTypeOf(t.Name(), elems...), nil

	case reflect.Interface:
		return Type{}, fmt.Errorf("schema: cannot derive a schema for interface type %s", t)

	default:
		return Type{}, fmt.Errorf("schema: unsupported Go kind %s", t.Kind())
	}
}
