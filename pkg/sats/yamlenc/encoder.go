// Package yamlenc renders values as YAML by building a yaml.v3 node
// tree. Every compound kind is supported: sequences and tuples become
// YAML sequences, maps and structs become mappings, and variants with
// a payload become single-entry mappings keyed by the variant name.
package yamlenc

import (
	"encoding/base64"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// FormatName is the name this backend registers under.
const FormatName = "yaml"

// Encoder builds *yaml.Node trees. It is stateless; nested values run
// through child encodes.
type Encoder struct{}

var _ ser.Serializer[*yaml.Node] = (*Encoder)(nil)

// NewEncoder creates an encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Format() string { return FormatName }

func (e *Encoder) encodeChild(v any) (*yaml.Node, error) {
	return ser.Encode[*yaml.Node](e, v)
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func intNode(v int64) *yaml.Node {
	return scalarNode("!!int", strconv.FormatInt(v, 10))
}

func uintNode(v uint64) *yaml.Node {
	return scalarNode("!!int", strconv.FormatUint(v, 10))
}

// floatNode follows YAML 1.2 core-schema spellings for the
// non-numeric floats.
func floatNode(f float64, bits int) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'g', -1, bits)
	}
	return scalarNode("!!float", s)
}

func (e *Encoder) EncodeBool(v bool) (*yaml.Node, error) {
	return scalarNode("!!bool", strconv.FormatBool(v)), nil
}

func (e *Encoder) EncodeInt8(v int8) (*yaml.Node, error) {
	return intNode(int64(v)), nil
}

func (e *Encoder) EncodeInt16(v int16) (*yaml.Node, error) {
	return intNode(int64(v)), nil
}

func (e *Encoder) EncodeInt32(v int32) (*yaml.Node, error) {
	return intNode(int64(v)), nil
}

func (e *Encoder) EncodeInt64(v int64) (*yaml.Node, error) {
	return intNode(v), nil
}

func (e *Encoder) EncodeUint8(v uint8) (*yaml.Node, error) {
	return uintNode(uint64(v)), nil
}

func (e *Encoder) EncodeUint16(v uint16) (*yaml.Node, error) {
	return uintNode(uint64(v)), nil
}

func (e *Encoder) EncodeUint32(v uint32) (*yaml.Node, error) {
	return uintNode(uint64(v)), nil
}

func (e *Encoder) EncodeUint64(v uint64) (*yaml.Node, error) {
	return uintNode(v), nil
}

func (e *Encoder) EncodeFloat32(v float32) (*yaml.Node, error) {
	return floatNode(float64(v), 32), nil
}

func (e *Encoder) EncodeFloat64(v float64) (*yaml.Node, error) {
	return floatNode(v, 64), nil
}

func (e *Encoder) EncodeString(v string) (*yaml.Node, error) {
	return scalarNode("!!str", v), nil
}

func (e *Encoder) EncodeBytes(v []byte) (*yaml.Node, error) {
	return scalarNode("!!binary", base64.StdEncoding.EncodeToString(v)), nil
}

func (e *Encoder) EncodeNone() (*yaml.Node, error) {
	return scalarNode("!!null", "null"), nil
}

// EncodeSome is transparent: the wrapped value stands on its own.
func (e *Encoder) EncodeSome(v any) (*yaml.Node, error) {
	return e.encodeChild(v)
}

// EncodeUnitVariant renders as the bare variant name.
func (e *Encoder) EncodeUnitVariant(name string, index uint32, variant string) (*yaml.Node, error) {
	return scalarNode("!!str", variant), nil
}

func (e *Encoder) EncodeSeq(length int) (ser.SeqEncoder[*yaml.Node], error) {
	return e.sequence(length, ""), nil
}

func (e *Encoder) EncodeTuple(length int) (ser.TupleEncoder[*yaml.Node], error) {
	return e.sequence(length, ""), nil
}

func (e *Encoder) EncodeTupleStruct(name string, length int) (ser.TupleStructEncoder[*yaml.Node], error) {
	return e.sequence(length, ""), nil
}

// EncodeTupleVariant wraps the element sequence in a single-entry
// mapping keyed by the variant name.
func (e *Encoder) EncodeTupleVariant(name string, index uint32, variant string, length int) (ser.TupleVariantEncoder[*yaml.Node], error) {
	return e.sequence(length, variant), nil
}

func (e *Encoder) EncodeMap(length int) (ser.MapEncoder[*yaml.Node], error) {
	return e.mapping(length, ""), nil
}

func (e *Encoder) EncodeStruct(name string, length int) (ser.StructEncoder[*yaml.Node], error) {
	return e.mapping(length, ""), nil
}

// EncodeStructVariant wraps the field mapping in a single-entry
// mapping keyed by the variant name.
func (e *Encoder) EncodeStructVariant(name string, index uint32, variant string, length int) (ser.StructVariantEncoder[*yaml.Node], error) {
	return e.mapping(length, variant), nil
}

func (e *Encoder) sequence(length int, variant string) *nodeHandle {
	return e.handleFor(&yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: contentHint(length)}, variant)
}

func (e *Encoder) mapping(length int, variant string) *nodeHandle {
	return e.handleFor(&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: contentHint(2 * length)}, variant)
}

func (e *Encoder) handleFor(inner *yaml.Node, variant string) *nodeHandle {
	h := &nodeHandle{enc: e, node: inner, result: inner}
	if variant != "" {
		h.result = &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{scalarNode("!!str", variant), inner},
		}
	}
	return h
}

func contentHint(length int) []*yaml.Node {
	if length <= 0 {
		return nil
	}
	return make([]*yaml.Node, 0, length)
}

// nodeHandle builds one sequence or mapping node. For variants the
// built node sits inside a wrapper mapping, which is what End returns.
type nodeHandle struct {
	enc    *Encoder
	node   *yaml.Node
	result *yaml.Node
}

var (
	_ ser.SeqEncoder[*yaml.Node]           = (*nodeHandle)(nil)
	_ ser.TupleEncoder[*yaml.Node]         = (*nodeHandle)(nil)
	_ ser.TupleStructEncoder[*yaml.Node]   = (*nodeHandle)(nil)
	_ ser.TupleVariantEncoder[*yaml.Node]  = (*nodeHandle)(nil)
	_ ser.MapEncoder[*yaml.Node]           = (*nodeHandle)(nil)
	_ ser.StructEncoder[*yaml.Node]        = (*nodeHandle)(nil)
	_ ser.StructVariantEncoder[*yaml.Node] = (*nodeHandle)(nil)
)

func (h *nodeHandle) append(v any) error {
	child, err := h.enc.encodeChild(v)
	if err != nil {
		return err
	}
	h.node.Content = append(h.node.Content, child)
	return nil
}

func (h *nodeHandle) EncodeElement(v any) error { return h.append(v) }

func (h *nodeHandle) EncodeKey(k any) error { return h.append(k) }

func (h *nodeHandle) EncodeValue(v any) error { return h.append(v) }

func (h *nodeHandle) EncodeField(name string, v any) error {
	child, err := h.enc.encodeChild(v)
	if err != nil {
		return err
	}
	h.node.Content = append(h.node.Content, scalarNode("!!str", name), child)
	return nil
}

func (h *nodeHandle) End() (*yaml.Node, error) {
	return h.result, nil
}
