// File: hotload/typereg.go
package hotload

import (
	"math/big"
	"net"
	"net/url"
	"reflect"
	"sync"
	"time"
)

// The type-reference converter resolves fully-qualified type names against
// an explicit process-wide registry; there is no way to look up an
// arbitrary Go type by name at runtime, so resolvable types must be
// registered. The registry is seeded with the predeclared scalar types and
// a few common stdlib types.
var goTypes = struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}{
	types: seedGoTypes(),
}

func seedGoTypes() map[string]reflect.Type {
	seed := []any{
		false,
		"",
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0),
		time.Time{},
		time.Duration(0),
		url.URL{},
		net.IP{},
		big.Int{},
	}
	m := make(map[string]reflect.Type, len(seed))
	for _, v := range seed {
		t := reflect.TypeOf(v)
		m[t.String()] = t
	}
	return m
}

// RegisterGoType makes the dynamic type of v resolvable by the
// type-reference converter and returns the name it was registered under
// (reflect.Type.String(), e.g. "time.Time" or "*mypkg.Widget").
func RegisterGoType(v any) string {
	t := reflect.TypeOf(v)
	goTypes.mu.Lock()
	defer goTypes.mu.Unlock()

	goTypes.types[t.String()] = t
	return t.String()
}

// RegisterGoTypeName registers the dynamic type of v under an explicit
// alias; use it when configuration files refer to a type by a name other
// than its Go spelling.
func RegisterGoTypeName(name string, v any) {
	goTypes.mu.Lock()
	defer goTypes.mu.Unlock()

	goTypes.types[name] = reflect.TypeOf(v)
}

// LookupGoType resolves a registered type name.
func LookupGoType(name string) (reflect.Type, bool) {
	goTypes.mu.RLock()
	defer goTypes.mu.RUnlock()

	t, ok := goTypes.types[name]
	return t, ok
}
