package schema

import (
	"fmt"
	"log"
	"reflect"
	"sort"
	"sync"
)

// Registration ties a canonical name to a Go type and its derived
// schema.
type Registration struct {
	Name   string
	GoType reflect.Type
	Schema Type
}

// TypeRegistry is a concurrency-safe name/type index of registered
// schemas.
type TypeRegistry struct {
	mutex  sync.RWMutex
	byName map[string]*Registration
	byType map[reflect.Type]*Registration
}

// RegistrationOptions configures Register.
type RegistrationOptions struct {
	// AllowOverwrite permits rebinding a name or Go type that is
	// already registered. Replacements are logged.
	AllowOverwrite bool
}

// DefaultRegistrationOptions returns the standard registration
// behavior: conflicts are errors.
func DefaultRegistrationOptions() RegistrationOptions {
	return RegistrationOptions{AllowOverwrite: false}
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]*Registration),
		byType: make(map[reflect.Type]*Registration),
	}
}

// Register derives the schema of instance's type and binds it to name.
// Pointer instances register their element type.
func (r *TypeRegistry) Register(instance any, name string, opts ...RegistrationOptions) (*Registration, error) {
	if instance == nil {
		return nil, fmt.Errorf("schema: cannot register a nil instance")
	}
	if name == "" {
		return nil, fmt.Errorf("schema: registration name must not be empty")
	}

	goType := reflect.TypeOf(instance)
	for goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}
	derived, err := Derive(goType)
	if err != nil {
		return nil, err
	}

	options := DefaultRegistrationOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, nameTaken := r.byName[name]
	if nameTaken && !options.AllowOverwrite {
		return nil, fmt.Errorf("schema: name %q is already registered to %s", name, existing.GoType)
	}
	prior, typeTaken := r.byType[goType]
	if typeTaken && !options.AllowOverwrite {
		return nil, fmt.Errorf("schema: type %s is already registered as %q", goType, prior.Name)
	}
	if nameTaken || typeTaken {
		log.Printf("schema: overwriting registration %q (%s)", name, goType)
	}

	// Drop stale cross references before rebinding.
	if nameTaken {
		delete(r.byType, existing.GoType)
	}
	if typeTaken {
		delete(r.byName, prior.Name)
	}

	reg := &Registration{Name: name, GoType: goType, Schema: derived}
	r.byName[name] = reg
	r.byType[goType] = reg
	return reg, nil
}

// RegisterSchema binds a hand-built schema to name without tying it to
// a Go type. This is the path for sum types, which cannot be derived.
func (r *TypeRegistry) RegisterSchema(name string, t Type, opts ...RegistrationOptions) (*Registration, error) {
	if name == "" {
		return nil, fmt.Errorf("schema: registration name must not be empty")
	}
	if t.Kind == KindInvalid {
		return nil, fmt.Errorf("schema: cannot register an invalid schema")
	}

	options := DefaultRegistrationOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, nameTaken := r.byName[name]
	if nameTaken && !options.AllowOverwrite {
		return nil, fmt.Errorf("schema: name %q is already registered to %s", name, existing.Schema.Kind)
	}
	if nameTaken {
		log.Printf("schema: overwriting registration %q", name)
		if existing.GoType != nil {
			delete(r.byType, existing.GoType)
		}
	}

	reg := &Registration{Name: name, Schema: t}
	r.byName[name] = reg
	return reg, nil
}

// MustRegister is Register but panics on error. Intended for init().
func (r *TypeRegistry) MustRegister(instance any, name string, opts ...RegistrationOptions) *Registration {
	reg, err := r.Register(instance, name, opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

// GetByName looks up a registration by its canonical name.
func (r *TypeRegistry) GetByName(name string) (*Registration, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}

// GetByType looks up the registration of instance's type.
func (r *TypeRegistry) GetByType(instance any) (*Registration, bool) {
	if instance == nil {
		return nil, false
	}
	goType := reflect.TypeOf(instance)
	for goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	reg, ok := r.byType[goType]
	return reg, ok
}

// HasName reports whether name is registered.
func (r *TypeRegistry) HasName(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Names returns all registered names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registrations.
func (r *TypeRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.byName)
}

// Remove unbinds name and reports whether it was present.
func (r *TypeRegistry) Remove(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	reg, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	delete(r.byType, reg.GoType)
	return true
}

// Clear removes every registration.
func (r *TypeRegistry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.byName = make(map[string]*Registration)
	r.byType = make(map[reflect.Type]*Registration)
}

// RegistryStats summarizes registry contents.
type RegistryStats struct {
	TotalTypes   int
	ProductTypes int
	SumTypes     int
	OtherTypes   int
}

// GetStats returns statistics about the registry.
func (r *TypeRegistry) GetStats() RegistryStats {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	stats := RegistryStats{TotalTypes: len(r.byName)}
	for _, reg := range r.byName {
		switch reg.Schema.Kind {
		case KindProduct:
			stats.ProductTypes++
		case KindSum:
			stats.SumTypes++
		default:
			stats.OtherTypes++
		}
	}
	return stats
}

func (r *TypeRegistry) String() string {
	return fmt.Sprintf("TypeRegistry{types: %d}", r.Count())
}

// Global registry -----------------------------------------------------------

var globalRegistry = NewTypeRegistry()

// GlobalRegister registers instance in the global registry.
func GlobalRegister(instance any, name string, opts ...RegistrationOptions) (*Registration, error) {
	return globalRegistry.Register(instance, name, opts...)
}

// GlobalMustRegister registers instance in the global registry and
// panics on error.
func GlobalMustRegister(instance any, name string, opts ...RegistrationOptions) *Registration {
	return globalRegistry.MustRegister(instance, name, opts...)
}

// GlobalRegisterSchema binds a hand-built schema in the global
// registry.
func GlobalRegisterSchema(name string, t Type, opts ...RegistrationOptions) (*Registration, error) {
	return globalRegistry.RegisterSchema(name, t, opts...)
}

// GlobalGetByName looks up a name in the global registry.
func GlobalGetByName(name string) (*Registration, bool) {
	return globalRegistry.GetByName(name)
}

// GlobalGetByType looks up instance's type in the global registry.
func GlobalGetByType(instance any) (*Registration, bool) {
	return globalRegistry.GetByType(instance)
}

// GlobalNames returns all names in the global registry, sorted.
func GlobalNames() []string {
	return globalRegistry.Names()
}

// GlobalCount returns the number of global registrations.
func GlobalCount() int {
	return globalRegistry.Count()
}

// GlobalClear empties the global registry. Mainly useful in tests.
func GlobalClear() {
	globalRegistry.Clear()
}

// GlobalGetStats returns statistics about the global registry.
func GlobalGetStats() RegistryStats {
	return globalRegistry.GetStats()
}
