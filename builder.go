// File: hotload/builder.go
package hotload

import (
	"fmt"
	"time"
)

// Builder provides a fluent interface for constructing a Store.
type Builder struct {
	path       string
	format     string
	interval   time.Duration
	autoStart  bool
	converters map[Type]Converter
	onReload   ReloadCallback
}

// NewBuilder creates a new Store builder with the default polling interval.
func NewBuilder() *Builder {
	return &Builder{
		interval:   DefaultInterval,
		converters: make(map[Type]Converter),
	}
}

// WithFile sets the configuration source file path.
func (b *Builder) WithFile(path string) *Builder {
	b.path = path
	return b
}

// WithFormat forces the source format instead of detection.
func (b *Builder) WithFormat(format string) *Builder {
	b.format = format
	return b
}

// WithInterval sets the hot-load polling interval.
func (b *Builder) WithInterval(interval time.Duration) *Builder {
	b.interval = interval
	return b
}

// WithHotLoad opens hot loading as soon as the Store is built.
func (b *Builder) WithHotLoad() *Builder {
	b.autoStart = true
	return b
}

// WithConverter registers an additional or replacement converter for t on
// the built store's registry.
func (b *Builder) WithConverter(t Type, c Converter) *Builder {
	b.converters[t] = c
	return b
}

// WithReloadCallback sets the background reload observer.
func (b *Builder) WithReloadCallback(cb ReloadCallback) *Builder {
	b.onReload = cb
	return b
}

// Build creates the Store with all specified options.
func (b *Builder) Build() (*Store, error) {
	registry := NewRegistry()
	for t, c := range b.converters {
		registry.Register(t, c)
	}

	return NewWithOptions(b.path, b.interval, Options{
		Format:    b.format,
		AutoStart: b.autoStart,
		Registry:  registry,
		OnReload:  b.onReload,
	})
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Store {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("hotload: store build failed: %v", err))
	}
	return s
}
