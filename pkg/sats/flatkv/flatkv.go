// Package flatkv renders values as flat key/value lines, the kind of
// output that feeds property files and label sets. Nested structs and
// maps flatten into dotted keys; sequences and tuples have no flat
// representation and are rejected with ser.UnsupportedError.
package flatkv

import (
	"bytes"
	"strconv"
	"strings"
)

// FormatName is the name this backend registers under.
const FormatName = "flatkv"

// Pair is one key/value line of flattened output.
type Pair struct {
	Key   string
	Value string
}

// Pairs is the ordered, flattened output of the encoder. The driver
// visits struct fields and map keys in sorted order, so the pair order
// is deterministic for a given value.
type Pairs []Pair

// Encode renders the pairs as newline-terminated k=v lines.
func (p Pairs) Encode() []byte {
	var buf bytes.Buffer
	for _, kv := range p {
		buf.WriteString(kv.Key)
		buf.WriteByte('=')
		buf.WriteString(kv.Value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (p Pairs) String() string {
	return string(p.Encode())
}

// Options configures the encoder.
type Options struct {
	// Separator joins nested names into flat keys. Empty means ".".
	Separator string
}

// DefaultOptions returns the standard flattening behavior.
func DefaultOptions() Options {
	return Options{Separator: "."}
}

func (o Options) separator() string {
	if o.Separator == "" {
		return "."
	}
	return o.Separator
}

func joinKey(prefix, name, sep string) string {
	if prefix == "" {
		return name
	}
	return prefix + sep + name
}

// quoteIfNeeded protects strings that would corrupt the line format.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, "\n=") {
		return strconv.Quote(s)
	}
	return s
}

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}
