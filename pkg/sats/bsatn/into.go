package bsatn

import (
	"fmt"
	"math"
	"reflect"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// UnmarshalInto decodes data into target, which must be a non-nil
// pointer. Struct fields follow the same `sats` tag rules as encoding
// and unknown document fields are ignored. Integer values are
// range-checked against the target width and fail with ErrOverflow.
func UnmarshalInto(data []byte, target any, opts ...DecodeOptions) error {
	v, err := Unmarshal(data, opts...)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("bsatn: target must be a non-nil pointer, got %T", target)
	}
	return assign(rv.Elem(), v)
}

func assign(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	// Unwrap the option marker the decoder uses for Some.
	if p, ok := v.(*any); ok {
		v = *p
	}
	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}

	switch dst.Kind() {
	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return assignErr(dst, v)
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := intValue(dst, v)
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return fmt.Errorf("%w: %d does not fit %s", ErrOverflow, i, dst.Type())
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := uintValue(dst, v)
		if err != nil {
			return err
		}
		if dst.OverflowUint(u) {
			return fmt.Errorf("%w: %d does not fit %s", ErrOverflow, u, dst.Type())
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		switch f := v.(type) {
		case float32:
			dst.SetFloat(float64(f))
		case float64:
			dst.SetFloat(f)
		default:
			return assignErr(dst, v)
		}
	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return assignErr(dst, v)
		}
		dst.SetString(s)
	case reflect.Slice:
		return assignSlice(dst, v)
	case reflect.Array:
		return assignArray(dst, v)
	case reflect.Map:
		return assignMap(dst, v)
	case reflect.Struct:
		return assignStruct(dst, v)
	case reflect.Interface:
		if !rv.Type().AssignableTo(dst.Type()) {
			return assignErr(dst, v)
		}
		dst.Set(rv)
	default:
		return assignErr(dst, v)
	}
	return nil
}

func assignSlice(dst reflect.Value, v any) error {
	if dst.Type().Elem().Kind() == reflect.Uint8 {
		b, ok := v.([]byte)
		if !ok {
			return assignErr(dst, v)
		}
		dst.SetBytes(append([]byte(nil), b...))
		return nil
	}
	elems, ok := elementList(v)
	if !ok {
		return assignErr(dst, v)
	}
	out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
	for i, el := range elems {
		if err := assign(out.Index(i), el); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func assignArray(dst reflect.Value, v any) error {
	elems, ok := elementList(v)
	if !ok {
		return assignErr(dst, v)
	}
	if len(elems) != dst.Len() {
		return fmt.Errorf("bsatn: %d elements do not fit %s", len(elems), dst.Type())
	}
	for i, el := range elems {
		if err := assign(dst.Index(i), el); err != nil {
			return err
		}
	}
	return nil
}

func assignMap(dst reflect.Value, v any) error {
	entries, ok := entryMap(v)
	if !ok {
		return assignErr(dst, v)
	}
	out := reflect.MakeMapWithSize(dst.Type(), len(entries))
	keyType := dst.Type().Key()
	valType := dst.Type().Elem()
	for k, mv := range entries {
		key := reflect.New(keyType).Elem()
		if err := assign(key, k); err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := assign(val, mv); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	dst.Set(out)
	return nil
}

func assignStruct(dst reflect.Value, v any) error {
	fields, ok := fieldMap(v)
	if !ok {
		return assignErr(dst, v)
	}
	for _, f := range ser.FieldsOf(dst.Type()) {
		fv, present := fields[f.Name]
		if !present {
			continue
		}
		if err := assign(dst.Field(f.Index), fv); err != nil {
			return fmt.Errorf("bsatn: field %q: %w", f.Name, err)
		}
	}
	return nil
}

// elementList accepts the two positional shapes the decoder produces.
func elementList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case ser.Tuple:
		return l, true
	}
	return nil, false
}

// entryMap flattens decoded map shapes to any-keyed entries.
func entryMap(v any) (map[any]any, bool) {
	switch m := v.(type) {
	case map[any]any:
		return m, true
	case map[string]any:
		out := make(map[any]any, len(m))
		for k, mv := range m {
			out[k] = mv
		}
		return out, true
	case ser.Fields:
		out := make(map[any]any, len(m))
		for k, mv := range m {
			out[k] = mv
		}
		return out, true
	}
	return nil, false
}

// fieldMap accepts the named-field shapes a struct can decode from.
func fieldMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case ser.Fields:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func intValue(dst reflect.Value, v any) (int64, error) {
	switch n := v.(type) {
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, dst.Type())
		}
		return int64(n), nil
	}
	return 0, assignErr(dst, v)
}

func uintValue(dst reflect.Value, v any) (uint64, error) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int8:
		return signedToUint(dst, int64(n))
	case int16:
		return signedToUint(dst, int64(n))
	case int32:
		return signedToUint(dst, int64(n))
	case int64:
		return signedToUint(dst, n)
	}
	return 0, assignErr(dst, v)
}

func signedToUint(dst reflect.Value, n int64) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, dst.Type())
	}
	return uint64(n), nil
}

func assignErr(dst reflect.Value, v any) error {
	return fmt.Errorf("bsatn: cannot assign %T into %s", v, dst.Type())
}
