// Package satstest holds the canonical sample values shared by the
// cross-backend tests, the conformance harness and the CLI. Sample
// numbers are positions in Samples; a conformance guest implements the
// same numbering.
package satstest

import (
	"sort"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

// Sample is one canonical value with a stable name and position.
type Sample struct {
	Name  string
	Value any
}

// Event is the composite fixture: renamed fields, a skipped scratch
// field, an option, raw bytes and a nested map.
type Event struct {
	ID      uint64            `sats:"id"`
	Kind    string            `sats:"kind"`
	Seq     uint32            `sats:"seq"`
	Payload []byte            `sats:"payload"`
	Note    *string           `sats:"note"`
	Attrs   map[string]string `sats:"attrs"`
	Scratch int               `sats:"-"`
}

// SampleEvent returns the deterministic Event fixture.
func SampleEvent() Event {
	return Event{
		ID:      7712,
		Kind:    "insert",
		Seq:     3,
		Payload: []byte{0xCA, 0xFE},
		Note:    PtrTo("boot"),
		Attrs:   map[string]string{"region": "eu", "tier": "hot"},
	}
}

// Samples is the numbered fixture list.
var Samples = []Sample{
	{Name: "bool", Value: true},
	{Name: "u32", Value: uint32(0xDEADBEEF)},
	{Name: "string", Value: "spacetime"},
	{Name: "bytes", Value: []byte{0x01, 0x02, 0x03}},
	{Name: "list", Value: []uint32{1, 2, 3}},
	{Name: "option", Value: PtrTo(uint8(7))},
	{Name: "event", Value: SampleEvent()},
	{Name: "state", Value: ser.NewVariant("connected", 1, ser.Fields{"session": uint64(42)})},
}

// ByName finds a sample by its stable name.
func ByName(name string) (Sample, bool) {
	for _, s := range Samples {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}

// Names returns the sample names, sorted.
func Names() []string {
	names := make([]string, len(Samples))
	for i, s := range Samples {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}

// PtrTo returns a pointer to v.
func PtrTo[T any](v T) *T {
	return &v
}
