package ser

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// recorder is a fake backend that logs every operation. With compounds
// disabled it mimics a partial format: every compound begin returns
// Unsupported, the way flatkv rejects sequences.
type recorder struct {
	format    string
	compounds bool
	ops       []string
}

func newRecorder() *recorder {
	return &recorder{format: "record", compounds: true}
}

func (r *recorder) logf(format string, args ...any) (string, error) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
	return "ok", nil
}

func (r *recorder) Format() string { return r.format }

func (r *recorder) EncodeBool(v bool) (string, error)       { return r.logf("bool %v", v) }
func (r *recorder) EncodeInt8(v int8) (string, error)       { return r.logf("i8 %d", v) }
func (r *recorder) EncodeInt16(v int16) (string, error)     { return r.logf("i16 %d", v) }
func (r *recorder) EncodeInt32(v int32) (string, error)     { return r.logf("i32 %d", v) }
func (r *recorder) EncodeInt64(v int64) (string, error)     { return r.logf("i64 %d", v) }
func (r *recorder) EncodeUint8(v uint8) (string, error)     { return r.logf("u8 %d", v) }
func (r *recorder) EncodeUint16(v uint16) (string, error)   { return r.logf("u16 %d", v) }
func (r *recorder) EncodeUint32(v uint32) (string, error)   { return r.logf("u32 %d", v) }
func (r *recorder) EncodeUint64(v uint64) (string, error)   { return r.logf("u64 %d", v) }
func (r *recorder) EncodeFloat32(v float32) (string, error) { return r.logf("f32 %v", v) }
func (r *recorder) EncodeFloat64(v float64) (string, error) { return r.logf("f64 %v", v) }
func (r *recorder) EncodeString(v string) (string, error)   { return r.logf("string %q", v) }
func (r *recorder) EncodeBytes(v []byte) (string, error)    { return r.logf("bytes %x", v) }
func (r *recorder) EncodeNone() (string, error)             { return r.logf("none") }

func (r *recorder) EncodeSome(v any) (string, error) {
	r.ops = append(r.ops, "some")
	return Encode[string](r, v)
}

func (r *recorder) EncodeUnitVariant(name string, index uint32, variant string) (string, error) {
	return r.logf("unitvariant %q %d %q", name, index, variant)
}

func (r *recorder) EncodeSeq(length int) (SeqEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindSeq)
	}
	r.ops = append(r.ops, fmt.Sprintf("seq %d", length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeTuple(length int) (TupleEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindTuple)
	}
	r.ops = append(r.ops, fmt.Sprintf("tuple %d", length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeTupleStruct(name string, length int) (TupleStructEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindTupleStruct)
	}
	r.ops = append(r.ops, fmt.Sprintf("tuplestruct %q %d", name, length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeTupleVariant(name string, index uint32, variant string, length int) (TupleVariantEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindTupleVariant)
	}
	r.ops = append(r.ops, fmt.Sprintf("tuplevariant %q %d %q %d", name, index, variant, length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeMap(length int) (MapEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindMap)
	}
	r.ops = append(r.ops, fmt.Sprintf("map %d", length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeStruct(name string, length int) (StructEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindStruct)
	}
	r.ops = append(r.ops, fmt.Sprintf("struct %q %d", name, length))
	return &recHandle{r: r}, nil
}

func (r *recorder) EncodeStructVariant(name string, index uint32, variant string, length int) (StructVariantEncoder[string], error) {
	if !r.compounds {
		return Unsupported[string](r.format, KindStructVariant)
	}
	r.ops = append(r.ops, fmt.Sprintf("structvariant %q %d %q %d", name, index, variant, length))
	return &recHandle{r: r}, nil
}

// recHandle serves all seven compound kinds, the single-handle pattern
// real backends use.
type recHandle struct {
	r *recorder
}

func (h *recHandle) EncodeElement(v any) error {
	_, err := Encode[string](h.r, v)
	return err
}

func (h *recHandle) EncodeKey(k any) error {
	h.r.ops = append(h.r.ops, "key")
	_, err := Encode[string](h.r, k)
	return err
}

func (h *recHandle) EncodeValue(v any) error {
	h.r.ops = append(h.r.ops, "value")
	_, err := Encode[string](h.r, v)
	return err
}

func (h *recHandle) EncodeField(name string, v any) error {
	h.r.ops = append(h.r.ops, fmt.Sprintf("field %s", name))
	_, err := Encode[string](h.r, v)
	return err
}

func (h *recHandle) End() (string, error) {
	h.r.ops = append(h.r.ops, "end")
	return "ok", nil
}

type sample struct {
	B       int    `sats:"b"`
	A       string `sats:"a"`
	Scratch int    `sats:"-"`
	hidden  int
}

type upperID uint64

type blob []byte

// probe counts how often the driver reaches it.
type probe struct {
	visits *int
}

func (p probe) MarshalSATS() (any, error) {
	*p.visits++
	return int64(1), nil
}

func TestEncodeWalkRules(t *testing.T) {
	seven := int64(7)
	tests := []struct {
		name string
		v    any
		want []string
	}{
		{"bool", true, []string{"bool true"}},
		{"int widens", 5, []string{"i64 5"}},
		{"int32", int32(-3), []string{"i32 -3"}},
		{"uint widens", uint(9), []string{"u64 9"}},
		{"float32", float32(1.5), []string{"f32 1.5"}},
		{"string", "hi", []string{`string "hi"`}},
		{"bytes", []byte{0x01, 0x02}, []string{"bytes 0102"}},
		{"named byte slice", blob{0xAA}, []string{"bytes aa"}},
		{"named uint", upperID(12), []string{"u64 12"}},
		{"nil", nil, []string{"none"}},
		{"nil pointer", (*int64)(nil), []string{"none"}},
		{"pointer", &seven, []string{"some", "i64 7"}},
		{"slice", []int{1, 2}, []string{"seq 2", "i64 1", "i64 2", "end"}},
		{"array", [2]string{"a", "b"}, []string{"seq 2", `string "a"`, `string "b"`, "end"}},
		{"nil slice", []int(nil), []string{"seq 0", "end"}},
		{
			"string map sorted",
			map[string]int{"b": 2, "a": 1},
			[]string{"map 2", "key", `string "a"`, "value", "i64 1", "key", `string "b"`, "value", "i64 2", "end"},
		},
		{
			"int map sorted",
			map[int8]bool{3: true, -1: false},
			[]string{"map 2", "key", "i8 -1", "value", "bool false", "key", "i8 3", "value", "bool true", "end"},
		},
		{
			"struct tags and order",
			sample{B: 9, A: "x", Scratch: 1, hidden: 2},
			[]string{`struct "sample" 2`, "field a", `string "x"`, "field b", "i64 9", "end"},
		},
		{"tuple", Tuple{int64(1), "x"}, []string{"tuple 2", "i64 1", `string "x"`, "end"}},
		{
			"tuple struct",
			TupleStruct{Name: "Point", Elems: []any{int32(1), int32(2)}},
			[]string{`tuplestruct "Point" 2`, "i32 1", "i32 2", "end"},
		},
		{"unit variant", NewUnitVariant("Quit", 2), []string{`unitvariant "" 2 "Quit"`}},
		{
			"tuple variant",
			NewVariant("Rgb", 1, Tuple{uint8(1), uint8(2), uint8(3)}),
			[]string{`tuplevariant "" 1 "Rgb" 3`, "u8 1", "u8 2", "u8 3", "end"},
		},
		{
			"dynamic struct",
			Fields{"b": int64(1), "a": "x"},
			[]string{`struct "" 2`, "field a", `string "x"`, "field b", "i64 1", "end"},
		},
		{
			"struct variant from map",
			NewVariant("Move", 0, map[string]any{"y": int64(4), "x": int64(3)}),
			[]string{`structvariant "" 0 "Move" 2`, "field x", "i64 3", "field y", "i64 4", "end"},
		},
		{
			"struct variant from fields",
			NewVariant("Move", 0, Fields{"y": int64(4), "x": int64(3)}),
			[]string{`structvariant "" 0 "Move" 2`, "field x", "i64 3", "field y", "i64 4", "end"},
		},
		{
			"struct variant from struct",
			NewVariant("Move", 0, sample{B: 1, A: "s"}),
			[]string{`structvariant "" 0 "Move" 2`, "field a", `string "s"`, "field b", "i64 1", "end"},
		},
		{
			"scalar payload becomes one-element tuple variant",
			NewVariant("Code", 3, uint16(7)),
			[]string{`tuplevariant "" 3 "Code" 1`, "u16 7", "end"},
		},
		{
			"nested",
			map[string][]int{"xs": {1}},
			[]string{"map 1", "key", `string "xs"`, "value", "seq 1", "i64 1", "end", "end"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder()
			ok, err := Encode[string](rec, tc.v)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if ok != "ok" {
				t.Fatalf("unexpected result %q", ok)
			}
			if !reflect.DeepEqual(rec.ops, tc.want) {
				t.Fatalf("op trace mismatch\n got: %v\nwant: %v", rec.ops, tc.want)
			}
		})
	}
}

func TestEncodeMarshalerHook(t *testing.T) {
	visits := 0
	rec := newRecorder()
	if _, err := Encode[string](rec, probe{visits: &visits}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if visits != 1 {
		t.Fatalf("MarshalSATS called %d times, want 1", visits)
	}
	if !reflect.DeepEqual(rec.ops, []string{"i64 1"}) {
		t.Fatalf("unexpected trace %v", rec.ops)
	}
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalSATS() (any, error) {
	return nil, errors.New("boom")
}

func TestEncodeMarshalerError(t *testing.T) {
	rec := newRecorder()
	_, err := Encode[string](rec, failingMarshaler{})
	if err == nil {
		t.Fatal("expected error from failing MarshalSATS")
	}
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EncodeError, got %T", err)
	}
	if ee.Err == nil || ee.Err.Error() != "boom" {
		t.Fatalf("underlying error not preserved: %v", ee.Err)
	}
	if len(rec.ops) != 0 {
		t.Fatalf("output produced despite marshal failure: %v", rec.ops)
	}
}

func TestEncodeRejectsUnsupportedValues(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"float map keys", map[float64]int{1.5: 1}},
		{"channel", make(chan int)},
		{"function", func() {}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder()
			_, err := Encode[string](rec, tc.v)
			if err == nil {
				t.Fatal("expected error")
			}
			var ee *EncodeError
			if !errors.As(err, &ee) {
				t.Fatalf("expected EncodeError, got %T: %v", err, err)
			}
			if len(rec.ops) != 0 {
				t.Fatalf("partial output recorded: %v", rec.ops)
			}
		})
	}
}

func TestEncodeNilSerializer(t *testing.T) {
	if _, err := Encode[string](nil, 1); !errors.Is(err, ErrNilSerializer) {
		t.Fatalf("expected ErrNilSerializer, got %v", err)
	}
}
