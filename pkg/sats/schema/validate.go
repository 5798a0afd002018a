package schema

import (
	"fmt"
	"reflect"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// ValidationError reports one structural mismatch between a value and
// a schema.
type ValidationError struct {
	Path    string // dotted path into the value, empty at the root
	Message string
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Message
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Message)
}

// Validate checks v against t and returns every mismatch found. An
// empty result means the value conforms. Validation follows the encode
// driver's widening rules, so int satisfies i64 and uint satisfies
// u64.
func Validate(v any, t Type) []ValidationError {
	var errs []ValidationError
	validateValue(v, t, "", &errs)
	return errs
}

func validateValue(v any, t Type, path string, errs *[]ValidationError) {
	if t.IsPrimitive() {
		if v == nil {
			report(errs, path, "expected %s, got nil", t.Kind)
			return
		}
		if !primitiveMatches(v, t.Kind) {
			report(errs, path, "expected %s, got %T", t.Kind, v)
		}
		return
	}

	switch t.Kind {
	case KindOption:
		validateOption(v, t, path, errs)
	case KindArray:
		validateArray(v, t, path, errs)
	case KindMap:
		validateMap(v, t, path, errs)
	case KindProduct:
		validateProduct(v, t, path, errs)
	case KindSum:
		validateSum(v, t, path, errs)
	default:
		report(errs, path, "invalid schema kind %d", uint32(t.Kind))
	}
}

func primitiveMatches(v any, k TypeKind) bool {
	rv := reflect.ValueOf(v)
	switch k {
	case KindBool:
		return rv.Kind() == reflect.Bool
	case KindI8:
		return rv.Kind() == reflect.Int8
	case KindU8:
		return rv.Kind() == reflect.Uint8
	case KindI16:
		return rv.Kind() == reflect.Int16
	case KindU16:
		return rv.Kind() == reflect.Uint16
	case KindI32:
		return rv.Kind() == reflect.Int32
	case KindU32:
		return rv.Kind() == reflect.Uint32
	case KindI64:
		return rv.Kind() == reflect.Int64 || rv.Kind() == reflect.Int
	case KindU64:
		return rv.Kind() == reflect.Uint64 || rv.Kind() == reflect.Uint
	case KindF32:
		return rv.Kind() == reflect.Float32
	case KindF64:
		return rv.Kind() == reflect.Float64
	case KindString:
		return rv.Kind() == reflect.String
	case KindBytes:
		return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
	}
	return false
}

func validateOption(v any, t Type, path string, errs *[]ValidationError) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		validateValue(rv.Elem().Interface(), *t.Option, path, errs)
		return
	}
	// Non-pointer values count as present.
	validateValue(v, *t.Option, path, errs)
}

func validateArray(v any, t Type, path string, errs *[]ValidationError) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		report(errs, path, "expected array, got %T", v)
		return
	}
	for i := 0; i < rv.Len(); i++ {
		validateValue(rv.Index(i).Interface(), *t.Array, fmt.Sprintf("%s[%d]", path, i), errs)
	}
}

func validateMap(v any, t Type, path string, errs *[]ValidationError) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		report(errs, path, "expected map, got %T", v)
		return
	}
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		entry := fmt.Sprintf("%s[%v]", path, key)
		validateValue(key, t.Map.Key, entry, errs)
		validateValue(iter.Value().Interface(), t.Map.Value, entry, errs)
	}
}

func validateProduct(v any, t Type, path string, errs *[]ValidationError) {
	fields, ok := fieldValues(v)
	if !ok {
		report(errs, path, "expected %s, got %T", productLabel(t.Product), v)
		return
	}
	seen := make(map[string]bool, len(t.Product.Elements))
	for _, el := range t.Product.Elements {
		seen[el.Name] = true
		value, present := fields[el.Name]
		if !present {
			report(errs, path, "missing field %q", el.Name)
			continue
		}
		validateValue(value, el.Type, joinPath(path, el.Name), errs)
	}
	for name := range fields {
		if !seen[name] {
			report(errs, path, "unexpected field %q", name)
		}
	}
}

func validateSum(v any, t Type, path string, errs *[]ValidationError) {
	variant, ok := v.(ser.Variant)
	if !ok {
		report(errs, path, "expected %s variant, got %T", sumLabel(t.Sum), v)
		return
	}
	if int(variant.Index) >= len(t.Sum.Variants) {
		report(errs, path, "variant index %d out of range for %s", variant.Index, sumLabel(t.Sum))
		return
	}
	arm := t.Sum.Variants[variant.Index]
	if variant.Name != "" && arm.Name != "" && variant.Name != arm.Name {
		report(errs, path, "variant %d is named %q, value says %q", variant.Index, arm.Name, variant.Name)
	}
	armPath := joinPath(path, arm.Name)
	if arm.Type == nil {
		if variant.Value != nil {
			report(errs, armPath, "unit variant carries a payload")
		}
		return
	}
	if variant.Value == nil {
		report(errs, armPath, "variant requires a %s payload", arm.Type.Kind)
		return
	}
	payload := variant.Value
	if tup, isTuple := payload.(ser.Tuple); isTuple && len(tup) == 1 {
		payload = tup[0]
	}
	validateValue(payload, *arm.Type, armPath, errs)
}

// fieldValues flattens a product-shaped value into name/value pairs.
// Structs go through the serialized field layout, so renames and
// skips line up with what the encoder would emit.
func fieldValues(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case ser.Fields:
		return m, true
	case map[string]any:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	layout := ser.FieldsOf(rv.Type())
	out := make(map[string]any, len(layout))
	for _, f := range layout {
		out[f.Name] = rv.Field(f.Index).Interface()
	}
	return out, true
}

func productLabel(p *ProductType) string {
	if p.Name != "" {
		return "product " + p.Name
	}
	return "product"
}

func sumLabel(s *SumType) string {
	if s.Name != "" {
		return "sum " + s.Name
	}
	return "sum"
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func report(errs *[]ValidationError, path, format string, args ...any) {
	*errs = append(*errs, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}
