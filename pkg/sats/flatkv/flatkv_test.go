package flatkv

import (
	"errors"
	"reflect"
	"testing"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

type server struct {
	Host string `sats:"host"`
	Port uint16 `sats:"port"`
	TLS  bool   `sats:"tls"`
}

type limits struct {
	Conns uint32 `sats:"conns"`
	RPS   uint32 `sats:"rps"`
}

type gateway struct {
	Name   string            `sats:"name"`
	Limits limits            `sats:"limits"`
	Labels map[string]string `sats:"labels"`
}

func TestMarshalStruct(t *testing.T) {
	out, err := Marshal(server{Host: "db1", Port: 5432, TLS: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := "host=db1\nport=5432\ntls=true\n"
	if string(out) != want {
		t.Fatalf("Marshal = %q, want %q", out, want)
	}
}

func TestMarshalNested(t *testing.T) {
	v := gateway{
		Name:   "gw",
		Limits: limits{Conns: 10, RPS: 99},
		Labels: map[string]string{"region": "eu", "env": "prod"},
	}
	out, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := "labels.env=prod\nlabels.region=eu\nlimits.conns=10\nlimits.rps=99\nname=gw\n"
	if string(out) != want {
		t.Fatalf("Marshal = %q, want %q", out, want)
	}
}

func TestMarshalSeparatorOption(t *testing.T) {
	v := gateway{Name: "gw", Limits: limits{Conns: 1, RPS: 2}}
	out, err := Marshal(v, Options{Separator: "/"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := "limits/conns=1\nlimits/rps=2\nname=gw\n"
	if string(out) != want {
		t.Fatalf("Marshal = %q, want %q", out, want)
	}
}

func TestOptionFieldsOmitAbsent(t *testing.T) {
	type job struct {
		Note *string `sats:"note"`
		N    int64   `sats:"n"`
	}

	out, err := Marshal(job{N: 5})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(out), "n=5\n"; got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}

	note := "hi"
	out, err = Marshal(job{N: 5, Note: &note})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(out), "n=5\nnote=hi\n"; got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalTopLevelMap(t *testing.T) {
	out, err := Marshal(map[uint8]string{10: "a", 2: "b"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// Integer keys sort numerically.
	if got, want := string(out), "2=b\n10=a\n"; got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalVariants(t *testing.T) {
	out, err := Marshal(ser.NewVariant("move", 2, ser.Fields{"x": int64(3), "y": int64(4)}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(out), "move.x=3\nmove.y=4\n"; got != want {
		t.Fatalf("struct variant = %q, want %q", got, want)
	}

	type machine struct {
		State ser.Variant `sats:"state"`
	}
	out, err = Marshal(machine{State: ser.NewUnitVariant("idle", 0)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(out), "state=idle\n"; got != want {
		t.Fatalf("unit variant field = %q, want %q", got, want)
	}
}

func TestMarshalQuotesAwkwardStrings(t *testing.T) {
	out, err := Marshal(map[string]string{"a=b": "l1\nl2"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(out), "\"a=b\"=\"l1\\nl2\"\n"; got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name string
		v    any
		kind ser.Kind
	}{
		{"top-level scalar", int64(5), ser.KindInt64},
		{"top-level string", "x", ser.KindString},
		{"top-level bytes", []byte{1}, ser.KindBytes},
		{"top-level nil", nil, ser.KindNone},
		{"top-level unit variant", ser.NewUnitVariant("quit", 0), ser.KindUnitVariant},
		{"seq", []int64{1}, ser.KindSeq},
		{"nested seq", gatewayWithList{List: []int64{1}}, ser.KindSeq},
		{"tuple", ser.Tuple{int64(1)}, ser.KindTuple},
		{"tuple struct", ser.TupleStruct{Name: "pair", Elems: ser.Tuple{int64(1)}}, ser.KindTupleStruct},
		{"tuple variant", ser.NewVariant("move", 1, ser.Tuple{int64(1), int64(2)}), ser.KindTupleVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := Flatten(tt.v)
			if !ser.IsUnsupported(err) {
				t.Fatalf("Flatten(%v) error = %v, want UnsupportedError", tt.v, err)
			}
			var ue *ser.UnsupportedError
			if !errors.As(err, &ue) || ue.Kind != tt.kind {
				t.Fatalf("Flatten(%v) error = %v, want kind %s", tt.v, err, tt.kind)
			}
			if pairs != nil {
				t.Fatalf("rejected value still produced pairs: %v", pairs)
			}
		})
	}
}

type gatewayWithList struct {
	Name string  `sats:"name"`
	List []int64 `sats:"list"`
}

// A failing field aborts the whole document; no partial pairs leak.
func TestNoPartialOutputOnError(t *testing.T) {
	pairs, err := Flatten(gatewayWithList{Name: "gw", List: []int64{1, 2}})
	if !ser.IsUnsupported(err) {
		t.Fatalf("Flatten error = %v, want UnsupportedError", err)
	}
	if pairs != nil {
		t.Fatalf("partial pairs leaked: %v", pairs)
	}
}

func TestCompoundBeginsHandBackImpossible(t *testing.T) {
	enc := NewEncoder()
	h, err := enc.EncodeSeq(3)
	if !ser.IsUnsupported(err) {
		t.Fatalf("EncodeSeq error = %v, want UnsupportedError", err)
	}
	if _, ok := h.(*ser.Impossible[Pairs]); !ok {
		t.Fatalf("EncodeSeq handle is %T, want *ser.Impossible[Pairs]", h)
	}
}

func TestFlattenReturnsPairs(t *testing.T) {
	pairs, err := Flatten(server{Host: "h", Port: 1, TLS: false})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	want := Pairs{{Key: "host", Value: "h"}, {Key: "port", Value: "1"}, {Key: "tls", Value: "false"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("Flatten = %v, want %v", pairs, want)
	}
}

func TestPairsEncode(t *testing.T) {
	p := Pairs{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	if got, want := string(p.Encode()), "a=1\nb=2\n"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
	if p.String() != string(p.Encode()) {
		t.Fatal("String() and Encode() disagree")
	}
	if len(Pairs(nil).Encode()) != 0 {
		t.Fatal("empty Pairs should encode to nothing")
	}
}

func TestFormatRegistered(t *testing.T) {
	f, ok := ser.LookupFormat(FormatName)
	if !ok {
		t.Fatalf("format %q is not registered", FormatName)
	}
	direct, err := Marshal(server{Host: "h", Port: 2, TLS: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	viaRegistry, err := f.Marshal(server{Host: "h", Port: 2, TLS: true})
	if err != nil {
		t.Fatalf("registry Marshal failed: %v", err)
	}
	if string(direct) != string(viaRegistry) {
		t.Fatalf("registry output %q differs from direct output %q", viaRegistry, direct)
	}
}
