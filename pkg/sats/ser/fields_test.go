package ser

import (
	"reflect"
	"testing"
)

func TestStructInfoFieldTable(t *testing.T) {
	type widget struct {
		Zeta    int
		Alpha   string `sats:"alpha"`
		Omitted int    `sats:"-"`
		Renamed bool   `sats:"on,extra"`
		private int
	}
	info := structInfoOf(reflect.TypeOf(widget{}))
	if info.name != "widget" {
		t.Fatalf("struct name %q, want widget", info.name)
	}
	var names []string
	for _, f := range info.fields {
		names = append(names, f.name)
	}
	want := []string{"Zeta", "alpha", "on"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("field names %v, want %v", names, want)
	}
}

func TestStructInfoCached(t *testing.T) {
	type pair struct {
		X int
		Y int
	}
	first := structInfoOf(reflect.TypeOf(pair{}))
	second := structInfoOf(reflect.TypeOf(pair{}))
	if first != second {
		t.Fatal("expected the cached table on repeat lookup")
	}
}

func TestFieldsOfMatchesEncoderLayout(t *testing.T) {
	type widget struct {
		Zeta  int
		Alpha string `sats:"alpha"`
	}
	fields := FieldsOf(reflect.TypeOf(widget{}))
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Name != "Zeta" || fields[0].Index != 0 || fields[0].Type.Kind() != reflect.Int {
		t.Fatalf("unexpected first field %+v", fields[0])
	}
	if fields[1].Name != "alpha" || fields[1].Index != 1 {
		t.Fatalf("unexpected second field %+v", fields[1])
	}
}

func TestStructFieldValuesReadThroughCache(t *testing.T) {
	type point struct {
		X int32 `sats:"x"`
		Y int32 `sats:"y"`
	}
	rec := newRecorder()
	if _, err := Encode[string](rec, point{X: -4, Y: 9}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []string{`struct "point" 2`, "field x", "i32 -4", "field y", "i32 9", "end"}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Fatalf("op trace mismatch\n got: %v\nwant: %v", rec.ops, want)
	}
}
