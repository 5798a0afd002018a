package ser

import (
	"reflect"
	"sort"

	"github.com/viant/xunsafe"
)

// Encode walks v and drives s with the matching operations. It is the
// shared front door of every backend's Marshal.
//
// The walk rules: nil encodes none; pointers encode as options (nil
// pointer none, otherwise some of the pointee); bool, fixed-width
// integers, floats, string encode as scalars; int and uint widen to 64
// bits; []byte and named byte-slice types encode as bytes; other slices
// and all arrays encode as seqs; maps encode with deterministically
// sorted string or integer keys; structs encode by their cached field
// table (see the `sats` tag rules on buildStructInfo); Tuple,
// TupleStruct and Variant encode their declared kinds. A type
// implementing Marshaler is replaced by its MarshalSATS result first.
func Encode[Ok any](s Serializer[Ok], v any) (Ok, error) {
	if s == nil {
		var zero Ok
		return zero, ErrNilSerializer
	}
	return encodeValue(s, v)
}

func encodeValue[Ok any](s Serializer[Ok], v any) (Ok, error) {
	if v == nil {
		return s.EncodeNone()
	}
	if m, ok := v.(Marshaler); ok {
		if isNilPointer(v) {
			return s.EncodeNone()
		}
		inner, err := m.MarshalSATS()
		if err != nil {
			var zero Ok
			return zero, &EncodeError{Type: reflect.TypeOf(v).String(), Reason: "MarshalSATS failed", Err: err}
		}
		return encodeValue(s, inner)
	}

	switch val := v.(type) {
	case bool:
		return s.EncodeBool(val)
	case int8:
		return s.EncodeInt8(val)
	case int16:
		return s.EncodeInt16(val)
	case int32:
		return s.EncodeInt32(val)
	case int64:
		return s.EncodeInt64(val)
	case int:
		return s.EncodeInt64(int64(val))
	case uint8:
		return s.EncodeUint8(val)
	case uint16:
		return s.EncodeUint16(val)
	case uint32:
		return s.EncodeUint32(val)
	case uint64:
		return s.EncodeUint64(val)
	case uint:
		return s.EncodeUint64(uint64(val))
	case float32:
		return s.EncodeFloat32(val)
	case float64:
		return s.EncodeFloat64(val)
	case string:
		return s.EncodeString(val)
	case []byte:
		return s.EncodeBytes(val)
	case Tuple:
		return encodeTuple(s, val)
	case TupleStruct:
		return encodeTupleStruct(s, val)
	case Fields:
		return encodeFields(s, val)
	case Variant:
		return encodeVariant(s, val)
	}

	return encodeReflect(s, v)
}

// encodeReflect covers named types and containers the fast-path type
// switch misses.
func encodeReflect[Ok any](s Serializer[Ok], v any) (Ok, error) {
	var zero Ok
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return s.EncodeBool(rv.Bool())
	case reflect.Int8:
		return s.EncodeInt8(int8(rv.Int()))
	case reflect.Int16:
		return s.EncodeInt16(int16(rv.Int()))
	case reflect.Int32:
		return s.EncodeInt32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return s.EncodeInt64(rv.Int())
	case reflect.Uint8:
		return s.EncodeUint8(uint8(rv.Uint()))
	case reflect.Uint16:
		return s.EncodeUint16(uint16(rv.Uint()))
	case reflect.Uint32:
		return s.EncodeUint32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64:
		return s.EncodeUint64(rv.Uint())
	case reflect.Float32:
		return s.EncodeFloat32(float32(rv.Float()))
	case reflect.Float64:
		return s.EncodeFloat64(rv.Float())
	case reflect.String:
		return s.EncodeString(rv.String())
	case reflect.Ptr:
		if rv.IsNil() {
			return s.EncodeNone()
		}
		return s.EncodeSome(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return s.EncodeBytes(rv.Bytes())
		}
		return encodeSeq(s, rv)
	case reflect.Array:
		return encodeSeq(s, rv)
	case reflect.Map:
		return encodeMap(s, rv)
	case reflect.Struct:
		return encodeStruct(s, v, rv.Type())
	}
	return zero, encodeErrorf(rv.Type().String(), "unsupported Go kind %s", rv.Kind())
}

func encodeSeq[Ok any](s Serializer[Ok], rv reflect.Value) (Ok, error) {
	var zero Ok
	n := rv.Len()
	seq, err := s.EncodeSeq(n)
	if err != nil {
		return zero, err
	}
	for i := 0; i < n; i++ {
		if err := seq.EncodeElement(rv.Index(i).Interface()); err != nil {
			return zero, err
		}
	}
	return seq.End()
}

func encodeTuple[Ok any](s Serializer[Ok], t Tuple) (Ok, error) {
	var zero Ok
	tup, err := s.EncodeTuple(len(t))
	if err != nil {
		return zero, err
	}
	for _, el := range t {
		if err := tup.EncodeElement(el); err != nil {
			return zero, err
		}
	}
	return tup.End()
}

func encodeTupleStruct[Ok any](s Serializer[Ok], ts TupleStruct) (Ok, error) {
	var zero Ok
	tup, err := s.EncodeTupleStruct(ts.Name, len(ts.Elems))
	if err != nil {
		return zero, err
	}
	for _, el := range ts.Elems {
		if err := tup.EncodeElement(el); err != nil {
			return zero, err
		}
	}
	return tup.End()
}

// encodeFields emits a dynamic struct with sorted field names. The
// struct name is unknown for dynamic values and passed empty.
func encodeFields[Ok any](s Serializer[Ok], f Fields) (Ok, error) {
	var zero Ok
	st, err := s.EncodeStruct("", len(f))
	if err != nil {
		return zero, err
	}
	for _, name := range sortedNames(f) {
		if err := st.EncodeField(name, f[name]); err != nil {
			return zero, err
		}
	}
	return st.End()
}

// encodeVariant maps the payload shape onto the three data-carrying
// variant kinds. The sum type name is unknown at this level and passed
// empty; backends that need one derive it from the schema layer.
func encodeVariant[Ok any](s Serializer[Ok], v Variant) (Ok, error) {
	var zero Ok
	switch payload := v.Value.(type) {
	case nil:
		return s.EncodeUnitVariant("", v.Index, v.Name)
	case Tuple:
		tv, err := s.EncodeTupleVariant("", v.Index, v.Name, len(payload))
		if err != nil {
			return zero, err
		}
		for _, el := range payload {
			if err := tv.EncodeElement(el); err != nil {
				return zero, err
			}
		}
		return tv.End()
	case Fields:
		return variantFields(s, v, payload)
	case map[string]any:
		return variantFields(s, v, payload)
	}

	if rt := reflect.TypeOf(v.Value); rt.Kind() == reflect.Struct {
		info := structInfoOf(rt)
		sv, err := s.EncodeStructVariant("", v.Index, v.Name, len(info.fields))
		if err != nil {
			return zero, err
		}
		ptr := xunsafe.AsPointer(v.Value)
		for i := range info.fields {
			f := &info.fields[i]
			if err := sv.EncodeField(f.name, f.xField.Value(ptr)); err != nil {
				return zero, err
			}
		}
		return sv.End()
	}

	tv, err := s.EncodeTupleVariant("", v.Index, v.Name, 1)
	if err != nil {
		return zero, err
	}
	if err := tv.EncodeElement(v.Value); err != nil {
		return zero, err
	}
	return tv.End()
}

func variantFields[Ok any](s Serializer[Ok], v Variant, fields map[string]any) (Ok, error) {
	var zero Ok
	sv, err := s.EncodeStructVariant("", v.Index, v.Name, len(fields))
	if err != nil {
		return zero, err
	}
	for _, name := range sortedNames(fields) {
		if err := sv.EncodeField(name, fields[name]); err != nil {
			return zero, err
		}
	}
	return sv.End()
}

func sortedNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func encodeMap[Ok any](s Serializer[Ok], rv reflect.Value) (Ok, error) {
	var zero Ok
	keys := rv.MapKeys()
	switch rv.Type().Key().Kind() {
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	default:
		return zero, encodeErrorf(rv.Type().String(), "map keys must be strings or integers")
	}
	m, err := s.EncodeMap(rv.Len())
	if err != nil {
		return zero, err
	}
	for _, k := range keys {
		if err := m.EncodeKey(k.Interface()); err != nil {
			return zero, err
		}
		if err := m.EncodeValue(rv.MapIndex(k).Interface()); err != nil {
			return zero, err
		}
	}
	return m.End()
}

func encodeStruct[Ok any](s Serializer[Ok], v any, rt reflect.Type) (Ok, error) {
	var zero Ok
	info := structInfoOf(rt)
	st, err := s.EncodeStruct(info.name, len(info.fields))
	if err != nil {
		return zero, err
	}
	ptr := xunsafe.AsPointer(v)
	for i := range info.fields {
		f := &info.fields[i]
		if err := st.EncodeField(f.name, f.xField.Value(ptr)); err != nil {
			return zero, err
		}
	}
	return st.End()
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
