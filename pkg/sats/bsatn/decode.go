package bsatn

import (
	"bytes"
	"fmt"

	"github.com/clockworklabs/sats-go/internal/wire"
	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// DecodeOptions bounds resource use while decoding.
type DecodeOptions struct {
	// MaxDepth caps compound nesting. Zero or negative falls back to
	// the default.
	MaxDepth int
}

// DefaultDecodeOptions returns the limits Unmarshal applies when none
// are given.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{MaxDepth: 32}
}

// Unmarshal decodes a BSATN document into generic Go values: scalars
// keep their width (uint8, int32, ...), strings and byte blobs become
// string and []byte, options become nil or a pointer, lists []any,
// tuples ser.Tuple, structs ser.Fields, and enums ser.Variant. Maps
// become map[string]any when the keys are strings, map[any]any
// otherwise. Re-marshaling the result reproduces the input bytes,
// except for maps with non-string keys.
func Unmarshal(data []byte, opts ...DecodeOptions) (any, error) {
	opt := DefaultDecodeOptions()
	if len(opts) > 0 && opts[0].MaxDepth > 0 {
		opt = opts[0]
	}
	d := &decoder{r: wire.NewReader(bytes.NewReader(data)), maxDepth: opt.MaxDepth}
	v, err := d.decodeValue(0)
	if err != nil {
		return nil, err
	}
	if d.r.BytesRead() != len(data) {
		return nil, ErrTrailingData
	}
	return v, nil
}

type decoder struct {
	r        *wire.Reader
	maxDepth int
}

func (d *decoder) errAt(reason string, err error) error {
	return &DecodeError{Offset: d.r.BytesRead(), Reason: reason, Err: err}
}

func (d *decoder) decodeValue(depth int) (any, error) {
	if depth > d.maxDepth {
		return nil, d.errAt("nesting too deep", nil)
	}
	tag, err := d.r.ReadTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case wire.TagBoolFalse, wire.TagBoolTrue:
		return d.r.ReadBool(tag)
	case wire.TagU8:
		return d.r.ReadUint8()
	case wire.TagI8:
		return d.r.ReadInt8()
	case wire.TagU16:
		return d.r.ReadUint16()
	case wire.TagI16:
		return d.r.ReadInt16()
	case wire.TagU32:
		return d.r.ReadUint32()
	case wire.TagI32:
		return d.r.ReadInt32()
	case wire.TagU64:
		return d.r.ReadUint64()
	case wire.TagI64:
		return d.r.ReadInt64()
	case wire.TagF32:
		return d.r.ReadFloat32()
	case wire.TagF64:
		return d.r.ReadFloat64()
	case wire.TagString:
		return d.r.ReadString()
	case wire.TagBytes:
		return d.r.ReadBlob()
	case wire.TagOptionNone:
		return nil, nil
	case wire.TagOptionSome:
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case wire.TagList:
		count, err := d.r.ReadListHeader()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, prealloc(count))
		for i := uint32(0); i < count; i++ {
			el, err := d.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
		return out, nil
	case wire.TagTuple:
		count, err := d.r.ReadTupleHeader()
		if err != nil {
			return nil, err
		}
		out := make(ser.Tuple, 0, prealloc(count))
		for i := uint32(0); i < count; i++ {
			el, err := d.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
		return out, nil
	case wire.TagMap:
		return d.decodeMap(depth)
	case wire.TagStruct:
		count, err := d.r.ReadStructHeader()
		if err != nil {
			return nil, err
		}
		out := make(ser.Fields, prealloc(count))
		for i := uint32(0); i < count; i++ {
			name, err := d.r.ReadFieldName()
			if err != nil {
				return nil, err
			}
			if _, dup := out[name]; dup {
				return nil, d.errAt(fmt.Sprintf("duplicate field %q", name), nil)
			}
			v, err := d.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	case wire.TagEnum:
		index, err := d.r.ReadEnumHeader()
		if err != nil {
			return nil, err
		}
		payload, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if t, ok := payload.(ser.Tuple); ok && len(t) == 0 {
			// Empty tuple payload is the unit variant convention.
			return ser.Variant{Index: index}, nil
		}
		return ser.Variant{Index: index, Value: payload}, nil
	}
	return nil, d.errAt(fmt.Sprintf("unknown tag 0x%02X", tag), ErrInvalidTag)
}

func (d *decoder) decodeMap(depth int) (any, error) {
	count, err := d.r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	keys := make([]any, 0, prealloc(count))
	vals := make([]any, 0, prealloc(count))
	allStrings := true
	for i := uint32(0); i < count; i++ {
		k, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if !scalarKey(k) {
			return nil, d.errAt(fmt.Sprintf("map key of type %T is not a scalar", k), nil)
		}
		if _, ok := k.(string); !ok {
			allStrings = false
		}
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	if allStrings {
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			name := k.(string)
			if _, dup := out[name]; dup {
				return nil, d.errAt(fmt.Sprintf("duplicate map key %q", name), nil)
			}
			out[name] = vals[i]
		}
		return out, nil
	}
	out := make(map[any]any, len(keys))
	for i, k := range keys {
		if _, dup := out[k]; dup {
			return nil, d.errAt(fmt.Sprintf("duplicate map key %v", k), nil)
		}
		out[k] = vals[i]
	}
	return out, nil
}

// scalarKey keeps unhashable values out of decoded maps.
func scalarKey(k any) bool {
	switch k.(type) {
	case bool, int8, int16, int32, int64, uint8, uint16, uint32, uint64, float32, float64, string:
		return true
	}
	return false
}

// prealloc caps the allocation hint so a forged count cannot balloon
// memory before the payload runs out.
func prealloc(count uint32) int {
	if count > 1024 {
		return 1024
	}
	return int(count)
}
