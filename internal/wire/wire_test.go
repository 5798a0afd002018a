package wire

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestWriterReaderScalarRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteUint8(42)
	w.WriteInt8(-5)
	w.WriteUint16(65500)
	w.WriteInt16(-1234)
	w.WriteUint32(4000000000)
	w.WriteInt32(-2000000000)
	w.WriteUint64(1 << 60)
	w.WriteInt64(-1 << 50)
	w.WriteFloat32(3.5)
	w.WriteFloat64(-6.25)
	w.WriteString("hello")
	w.WriteBytes([]byte{0x01, 0x02, 0x03})
	if err := w.Error(); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	expectTag := func(want byte) {
		t.Helper()
		tag, err := r.ReadTag()
		if err != nil {
			t.Fatalf("read tag: %v", err)
		}
		if tag != want {
			t.Fatalf("tag mismatch: got %s want %s", TagName(tag), TagName(want))
		}
	}

	expectTag(TagBoolTrue)
	expectTag(TagBoolFalse)

	expectTag(TagU8)
	if v, _ := r.ReadUint8(); v != 42 {
		t.Fatalf("u8 mismatch: %d", v)
	}
	expectTag(TagI8)
	if v, _ := r.ReadInt8(); v != -5 {
		t.Fatalf("i8 mismatch: %d", v)
	}
	expectTag(TagU16)
	if v, _ := r.ReadUint16(); v != 65500 {
		t.Fatalf("u16 mismatch: %d", v)
	}
	expectTag(TagI16)
	if v, _ := r.ReadInt16(); v != -1234 {
		t.Fatalf("i16 mismatch: %d", v)
	}
	expectTag(TagU32)
	if v, _ := r.ReadUint32(); v != 4000000000 {
		t.Fatalf("u32 mismatch: %d", v)
	}
	expectTag(TagI32)
	if v, _ := r.ReadInt32(); v != -2000000000 {
		t.Fatalf("i32 mismatch: %d", v)
	}
	expectTag(TagU64)
	if v, _ := r.ReadUint64(); v != 1<<60 {
		t.Fatalf("u64 mismatch: %d", v)
	}
	expectTag(TagI64)
	if v, _ := r.ReadInt64(); v != -1<<50 {
		t.Fatalf("i64 mismatch: %d", v)
	}
	expectTag(TagF32)
	if v, _ := r.ReadFloat32(); v != 3.5 {
		t.Fatalf("f32 mismatch: %v", v)
	}
	expectTag(TagF64)
	if v, _ := r.ReadFloat64(); v != -6.25 {
		t.Fatalf("f64 mismatch: %v", v)
	}
	expectTag(TagString)
	if v, _ := r.ReadString(); v != "hello" {
		t.Fatalf("string mismatch: %q", v)
	}
	expectTag(TagBytes)
	if v, _ := r.ReadBlob(); !bytes.Equal(v, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("bytes mismatch: %v", v)
	}

	if err := r.Error(); err != nil {
		t.Fatalf("reader error: %v", err)
	}
	if r.BytesRead() != len(buf.Bytes()) {
		t.Fatalf("bytes read %d, want %d", r.BytesRead(), len(buf.Bytes()))
	}
}

func TestWriterHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.WriteListHeader(3)
	w.WriteTupleHeader(2)
	w.WriteMapHeader(1)
	w.WriteStructHeader(4)
	w.WriteFieldName("name")
	w.WriteEnumHeader(7)
	if err := w.Error(); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))

	tag, _ := r.ReadTag()
	if tag != TagList {
		t.Fatalf("expected TagList, got %s", TagName(tag))
	}
	if n, _ := r.ReadListHeader(); n != 3 {
		t.Fatalf("list count: %d", n)
	}

	tag, _ = r.ReadTag()
	if tag != TagTuple {
		t.Fatalf("expected TagTuple, got %s", TagName(tag))
	}
	if n, _ := r.ReadTupleHeader(); n != 2 {
		t.Fatalf("tuple count: %d", n)
	}

	tag, _ = r.ReadTag()
	if tag != TagMap {
		t.Fatalf("expected TagMap, got %s", TagName(tag))
	}
	if n, _ := r.ReadMapHeader(); n != 1 {
		t.Fatalf("map count: %d", n)
	}

	tag, _ = r.ReadTag()
	if tag != TagStruct {
		t.Fatalf("expected TagStruct, got %s", TagName(tag))
	}
	if n, _ := r.ReadStructHeader(); n != 4 {
		t.Fatalf("struct count: %d", n)
	}
	if name, _ := r.ReadFieldName(); name != "name" {
		t.Fatalf("field name: %q", name)
	}

	tag, _ = r.ReadTag()
	if tag != TagEnum {
		t.Fatalf("expected TagEnum, got %s", TagName(tag))
	}
	if idx, _ := r.ReadEnumHeader(); idx != 7 {
		t.Fatalf("enum index: %d", idx)
	}
}

func TestWriterRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		write func(w *Writer)
		want  error
	}{
		{"nan float32", func(w *Writer) { w.WriteFloat32(float32(math.NaN())) }, ErrInvalidFloat},
		{"inf float64", func(w *Writer) { w.WriteFloat64(math.Inf(1)) }, ErrInvalidFloat},
		{"invalid utf8", func(w *Writer) { w.WriteString(string([]byte{0xff, 0xfe})) }, ErrInvalidUTF8},
		{"oversized string", func(w *Writer) { w.WriteString(strings.Repeat("a", MaxPayloadLen+1)) }, ErrTooLarge},
		{"oversized bytes", func(w *Writer) { w.WriteBytes(make([]byte, MaxPayloadLen+1)) }, ErrTooLarge},
		{"negative list count", func(w *Writer) { w.WriteListHeader(-1) }, ErrLengthUnknown},
		{"negative map count", func(w *Writer) { w.WriteMapHeader(-1) }, ErrLengthUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			tc.write(w)
			if !errors.Is(w.Error(), tc.want) {
				t.Fatalf("got error %v, want %v", w.Error(), tc.want)
			}
		})
	}
}

func TestWriterErrorSticks(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.WriteFloat64(math.NaN())
	if w.Error() == nil {
		t.Fatal("expected error after NaN")
	}
	before := buf.Len()

	// Writes after the first error must not touch the buffer.
	w.WriteUint32(99)
	w.WriteString("ignored")
	if buf.Len() != before {
		t.Fatalf("buffer grew after error: %d -> %d", before, buf.Len())
	}
	if !errors.Is(w.Error(), ErrInvalidFloat) {
		t.Fatalf("first error lost: %v", w.Error())
	}
	if w.Bytes() != nil {
		t.Fatal("Bytes should return nil after error")
	}
}

func TestWriterFieldNameLimits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteFieldName(strings.Repeat("x", MaxFieldNameLen+1))
	if w.Error() == nil {
		t.Fatal("expected error for oversized field name")
	}
}

func TestReaderTruncatedInput(t *testing.T) {
	// TagU64 with only 3 payload bytes.
	data := []byte{TagU64, 0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))
	if _, err := r.ReadTag(); err != nil {
		t.Fatalf("read tag: %v", err)
	}
	if _, err := r.ReadUint64(); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("got %v, want ErrBufferTooSmall", err)
	}
	// The error sticks.
	if _, err := r.ReadUint8(); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("sticky error lost: %v", err)
	}
}

func TestReaderRejectsInvalidStringBytes(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(TagString)
	buf.Write([]byte{2, 0, 0, 0, 0xff, 0xfe})

	r := NewReader(bytes.NewReader(buf.Bytes()))
	if _, err := r.ReadTag(); err != nil {
		t.Fatalf("read tag: %v", err)
	}
	if _, err := r.ReadString(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestBytesWrittenTracksOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteUint16(7)
	if w.BytesWritten() != 3 {
		t.Fatalf("bytes written %d, want 3", w.BytesWritten())
	}
	if w.BytesWritten() != buf.Len() {
		t.Fatalf("bytes written %d != buffer %d", w.BytesWritten(), buf.Len())
	}
}
