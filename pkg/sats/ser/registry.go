package ser

import (
	"fmt"
	"sort"
	"sync"
)

// Format is a registered backend in type-erased form. Backends
// instantiate Serializer with different Ok types, so the registry
// carries each format's Marshal closure rather than a shared
// constructor signature.
type Format struct {
	Name    string
	Marshal func(v any) ([]byte, error)
}

// FormatRegistry maps format names to backends. Safe for concurrent
// use.
type FormatRegistry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{formats: make(map[string]Format)}
}

// Register adds f. Registering an empty name, a nil Marshal, or a
// duplicate name is an error.
func (r *FormatRegistry) Register(f Format) error {
	if f.Name == "" {
		return fmt.Errorf("ser: format name is empty")
	}
	if f.Marshal == nil {
		return fmt.Errorf("ser: format %q has no Marshal function", f.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.formats[f.Name]; dup {
		return fmt.Errorf("ser: format %q already registered", f.Name)
	}
	r.formats[f.Name] = f
	return nil
}

// Lookup returns the format registered under name.
func (r *FormatRegistry) Lookup(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[name]
	return f, ok
}

// Names returns the registered format names in sorted order.
func (r *FormatRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registrations. Intended for tests.
func (r *FormatRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats = make(map[string]Format)
}

var globalFormats = NewFormatRegistry()

// RegisterFormat adds f to the process-wide registry.
func RegisterFormat(f Format) error {
	return globalFormats.Register(f)
}

// MustRegisterFormat is RegisterFormat panicking on error, for use in
// backend init functions.
func MustRegisterFormat(f Format) {
	if err := globalFormats.Register(f); err != nil {
		panic(err)
	}
}

// LookupFormat returns a format from the process-wide registry.
func LookupFormat(name string) (Format, bool) {
	return globalFormats.Lookup(name)
}

// Formats returns the names in the process-wide registry.
func Formats() []string {
	return globalFormats.Names()
}
