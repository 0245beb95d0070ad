// File: hotload/register.go
package hotload

import "sync"

// Type identifies one semantic value type in the converter registry.
// The descriptors below cover the built-in converters; user code may define
// additional descriptors and register converters for them.
type Type string

const (
	TypeString  Type = "string"
	TypeRune    Type = "rune"
	TypeByte    Type = "byte"
	TypeInt16   Type = "int16"
	TypeInt     Type = "int"
	TypeInt64   Type = "int64"
	TypeFloat32 Type = "float32"
	TypeFloat64 Type = "float64"
	TypeBool    Type = "bool"

	// Zoned temporal types; parsed in the process's local time zone.
	TypeDate      Type = "date"
	TypeTime      Type = "time"
	TypeTimestamp Type = "timestamp"

	// Zone-free temporal types; parsed as wall-clock values in UTC.
	TypeLocalDate     Type = "local-date"
	TypeLocalTime     Type = "local-time"
	TypeLocalDateTime Type = "local-date-time"

	TypeGoType Type = "go-type"
	TypeFile   Type = "file"
	TypeURL    Type = "url"
)

// Converter parses a raw configuration string into one semantic type.
// pattern is an optional caller-supplied format overriding the converter's
// defaults; converters that have no notion of a format ignore it. The
// second result is false when the input does not parse ("no match");
// converters never return errors and never panic on malformed input.
//
// Converters must be stateless and safe for concurrent use.
type Converter interface {
	Convert(raw, pattern string) (any, bool)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(raw, pattern string) (any, bool)

// Convert implements Converter.
func (f ConverterFunc) Convert(raw, pattern string) (any, bool) {
	return f(raw, pattern)
}

// Registry maps type descriptors to converters. It is mutable at runtime
// and guarded by a single lock; its content is independent of the snapshot
// lifecycle and is never touched by reloads.
type Registry struct {
	mu         sync.RWMutex
	converters map[Type]Converter
}

// NewRegistry returns a registry seeded with the built-in converters.
func NewRegistry() *Registry {
	return &Registry{converters: defaultConverters()}
}

// Register installs or replaces the converter for t and returns the
// previous converter, or nil if none was registered.
func (r *Registry) Register(t Type, c Converter) Converter {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.converters[t]
	r.converters[t] = c
	return prev
}

// Unregister removes the converter for t and returns it, or nil if none
// was registered.
func (r *Registry) Unregister(t Type) Converter {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.converters[t]
	delete(r.converters, t)
	return prev
}

// Clear removes all registered converters.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.converters = make(map[Type]Converter)
}

// Count returns the number of registered type mappings.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.converters)
}

// Lookup returns the converter registered for t.
func (r *Registry) Lookup(t Type) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.converters[t]
	return c, ok
}
