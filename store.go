// File: hotload/store.go
package hotload

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Store provides typed access to one flat key-value configuration file and
// owns its hot-reload lifecycle. It holds exactly one live Snapshot at a
// time, replaced wholesale on reload, and one converter Registry, mutated
// only by explicit API calls.
type Store struct {
	path     string
	format   string
	interval time.Duration
	registry *Registry
	onReload ReloadCallback

	// snap is the single publication point for snapshots. Readers load it
	// without locking; reloadMu serializes writers.
	snap     atomic.Pointer[Snapshot]
	reloadMu sync.Mutex

	// watchMu serializes OpenHotLoad/CloseHotLoad against each other.
	watchMu sync.Mutex
	loader  *hotLoader
}

// Options configures optional Store behavior for NewWithOptions.
type Options struct {
	// Format forces the source format (FormatProperties, FormatTOML,
	// FormatJSON, FormatYAML). Empty means detect from the extension and
	// then the content.
	Format string

	// AutoStart opens hot loading immediately after construction.
	AutoStart bool

	// Registry supplies a converter registry; nil means a fresh registry
	// seeded with the built-in converters.
	Registry *Registry

	// OnReload, if set, is invoked after every background reload attempt
	// that observed a stale source, with the reload error if any.
	OnReload ReloadCallback
}

// New creates a Store for the given source file and polling interval and
// performs the mandatory synchronous initial load. Hot loading is not
// started; call OpenHotLoad or use NewWithOptions with AutoStart.
func New(path string, interval time.Duration) (*Store, error) {
	return NewWithOptions(path, interval, Options{})
}

// NewWithOptions is New with explicit Options.
//
// Construction fails with ErrNotFound when path does not resolve to an
// existing regular file, with ErrInvalidInterval for a non-positive
// interval, and with the underlying read/parse error when the initial load
// fails; no Store exists without a valid snapshot.
func NewWithOptions(path string, interval time.Duration, opts Options) (*Store, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}

	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	s := &Store{
		path:     path,
		format:   opts.Format,
		interval: interval,
		registry: registry,
		onReload: opts.OnReload,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	if opts.AutoStart {
		s.OpenHotLoad()
	}
	return s, nil
}

// Path returns the source file path.
func (s *Store) Path() string {
	return s.path
}

// Interval returns the polling interval.
func (s *Store) Interval() time.Duration {
	return s.interval
}

// Registry returns the store's converter registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Snapshot returns the currently published snapshot. Use it when several
// reads must observe one consistent state.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Reload reads the entire source, builds a new snapshot, and atomically
// publishes it. On failure the previously published snapshot is left
// untouched.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	pairs, err := readSource(s.path, s.format)
	if err != nil {
		return err
	}

	s.snap.Store(newSnapshot(pairs, sourceModTime(s.path)))
	return nil
}

// ReloadIfStale reloads when the source's current modification timestamp is
// known and differs from the snapshot's captured timestamp. An unreadable
// source (zero timestamp) never triggers a reload.
func (s *Store) ReloadIfStale() error {
	_, err := s.reloadIfStale()
	return err
}

func (s *Store) reloadIfStale() (bool, error) {
	mod := sourceModTime(s.path)
	if mod.IsZero() || mod.Equal(s.Snapshot().ModTime()) {
		return false, nil
	}
	return true, s.Reload()
}

// Len returns the number of key-value mappings in the current snapshot.
func (s *Store) Len() int {
	return s.Snapshot().Len()
}

// IsEmpty reports whether the current snapshot contains no mappings.
func (s *Store) IsEmpty() bool {
	return s.Snapshot().IsEmpty()
}

// ContainsKey reports whether the current snapshot contains key.
func (s *Store) ContainsKey(key string) bool {
	return s.Snapshot().ContainsKey(key)
}

// ContainsValue reports whether any key in the current snapshot maps to
// value.
func (s *Store) ContainsValue(value string) bool {
	return s.Snapshot().ContainsValue(value)
}

// Keys returns the current snapshot's keys in source order.
func (s *Store) Keys() []string {
	return s.Snapshot().Keys()
}

// Values returns the current snapshot's values in source key order.
func (s *Store) Values() []string {
	return s.Snapshot().Values()
}

// Entries returns the current snapshot's pairs in source key order.
func (s *Store) Entries() []Entry {
	return s.Snapshot().Entries()
}

// Lookup returns the raw string value for key from the current snapshot.
func (s *Store) Lookup(key string) (string, bool) {
	return s.Snapshot().Lookup(key)
}

// Get converts the value for key to type t. pattern overrides the
// converter's default formats ("" for none). It returns def when the key
// is absent or the value does not parse, and fails only with
// ErrUnsupportedType, independent of key presence, when no converter is
// registered for t.
func (s *Store) Get(t Type, key, pattern string, def any) (any, error) {
	conv, ok := s.registry.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}

	raw, ok := s.Snapshot().Lookup(key)
	if !ok {
		return def, nil
	}
	v, ok := conv.Convert(raw, pattern)
	if !ok {
		return def, nil
	}
	return v, nil
}

// GetList looks up key, splits the raw value by the delimiter regular
// expression (all segments kept, empty ones included), and converts each
// piece independently, substituting def for pieces that do not parse. An
// absent key yields an empty list.
func (s *Store) GetList(t Type, key, delim, pattern string, def any) ([]any, error) {
	conv, ok := s.registry.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
	re, err := regexp.Compile(delim)
	if err != nil {
		return nil, fmt.Errorf("hotload: invalid list delimiter %q: %w", delim, err)
	}

	raw, ok := s.Snapshot().Lookup(key)
	if !ok {
		return []any{}, nil
	}

	parts := re.Split(raw, -1)
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if v, ok := conv.Convert(p, pattern); ok {
			out = append(out, v)
		} else {
			out = append(out, def)
		}
	}
	return out, nil
}

// GroupNames scans keys in snapshot order and, for every key that starts
// with prefix and ends with suffix, yields the substring between them.
// When prefix and suffix overlap inside a key the range is degenerate and
// the group name is the empty string.
func (s *Store) GroupNames(prefix, suffix string) []string {
	snap := s.Snapshot()
	names := make([]string, 0)
	for _, key := range snap.keys {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, suffix) {
			continue
		}
		begin := strings.Index(key, prefix) + len(prefix)
		end := strings.LastIndex(key, suffix)
		if end < begin {
			names = append(names, "")
			continue
		}
		names = append(names, key[begin:end])
	}
	return names
}

// KeysByValue returns, in snapshot order, every key whose value exactly
// equals value.
func (s *Store) KeysByValue(value string) []string {
	snap := s.Snapshot()
	keys := make([]string, 0)
	for _, key := range snap.keys {
		if snap.values[key] == value {
			keys = append(keys, key)
		}
	}
	return keys
}

// Convert converts a raw string to type t outside of any snapshot lookup.
// The boolean result distinguishes "parsed" from "no match"; the error is
// ErrUnsupportedType when no converter is registered for t.
func (s *Store) Convert(t Type, raw, pattern string) (any, bool, error) {
	conv, ok := s.registry.Lookup(t)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
	v, ok := conv.Convert(raw, pattern)
	return v, ok, nil
}

// RegisterConverter installs or replaces the converter for t on the
// store's registry and returns the previous converter, if any.
func (s *Store) RegisterConverter(t Type, c Converter) Converter {
	return s.registry.Register(t, c)
}

// UnregisterConverter removes and returns the converter for t, if any.
func (s *Store) UnregisterConverter(t Type) Converter {
	return s.registry.Unregister(t)
}

// ClearConverters removes all converters from the store's registry.
func (s *Store) ClearConverters() {
	s.registry.Clear()
}

// CountConverters returns the number of registered type mappings.
func (s *Store) CountConverters() int {
	return s.registry.Count()
}
