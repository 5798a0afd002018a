package ser

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/viant/xunsafe"
)

// structField is one encodable field of a struct type. The xunsafe
// accessor avoids per-field reflect.Value allocation on the encode
// path.
type structField struct {
	name   string // serialized name, after tag renames
	index  int    // Go field index
	typ    reflect.Type
	xField *xunsafe.Field
}

// structInfo lists the encodable fields of a struct type in serialized
// name order. Field order must not depend on declaration order so that
// reordering Go fields cannot silently change the wire layout.
type structInfo struct {
	name   string
	fields []structField
}

var structCache sync.Map // reflect.Type -> *structInfo

func structInfoOf(t reflect.Type) *structInfo {
	if cached, ok := structCache.Load(t); ok {
		return cached.(*structInfo)
	}
	actual, _ := structCache.LoadOrStore(t, buildStructInfo(t))
	return actual.(*structInfo)
}

// buildStructInfo collects exported fields, honoring `sats` tags:
// `sats:"name"` renames, `sats:"-"` skips. Unexported fields are
// skipped.
func buildStructInfo(t reflect.Type) *structInfo {
	info := &structInfo{name: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		sField := t.Field(i)
		if sField.PkgPath != "" {
			continue
		}
		name := sField.Name
		if tag, ok := sField.Tag.Lookup("sats"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		info.fields = append(info.fields, structField{
			name:   name,
			index:  i,
			typ:    sField.Type,
			xField: xunsafe.NewField(sField),
		})
	}
	sort.Slice(info.fields, func(i, j int) bool {
		return info.fields[i].name < info.fields[j].name
	})
	return info
}

// FieldInfo is the exported view of one serialized struct field.
// Decoders and the schema layer use it to agree with the encoder on
// names and order.
type FieldInfo struct {
	Name  string // serialized name
	Index int    // Go field index for reflect access
	Type  reflect.Type
}

// FieldsOf returns the serialized field layout of a struct type, in the
// order the encoder emits it. The layout comes from the same cached
// table the encoder uses.
func FieldsOf(t reflect.Type) []FieldInfo {
	info := structInfoOf(t)
	fields := make([]FieldInfo, len(info.fields))
	for i, f := range info.fields {
		fields[i] = FieldInfo{Name: f.name, Index: f.index, Type: f.typ}
	}
	return fields
}
