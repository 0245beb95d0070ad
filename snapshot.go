// File: hotload/snapshot.go
package hotload

import "time"

// Entry is a single key-value pair from the configuration source.
type Entry struct {
	Key   string
	Value string
}

// Snapshot is an immutable view of the configuration source captured at one
// point in time. Keys keep the order they were first seen in the source; a
// duplicate key overwrites the value but keeps the original position.
// A Snapshot is never mutated after construction, so it may be read without
// synchronization.
type Snapshot struct {
	keys    []string
	values  map[string]string
	modTime time.Time
}

// newSnapshot builds a snapshot from an ordered pair sequence.
func newSnapshot(pairs []Entry, modTime time.Time) *Snapshot {
	s := &Snapshot{
		keys:    make([]string, 0, len(pairs)),
		values:  make(map[string]string, len(pairs)),
		modTime: modTime,
	}
	for _, p := range pairs {
		if _, seen := s.values[p.Key]; !seen {
			s.keys = append(s.keys, p.Key)
		}
		s.values[p.Key] = p.Value
	}
	return s
}

// Len returns the number of key-value mappings in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.keys)
}

// IsEmpty reports whether the snapshot contains no mappings.
func (s *Snapshot) IsEmpty() bool {
	return len(s.keys) == 0
}

// Lookup returns the raw string value for key.
func (s *Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// ContainsKey reports whether the snapshot contains key.
func (s *Snapshot) ContainsKey(key string) bool {
	_, ok := s.values[key]
	return ok
}

// ContainsValue reports whether any key maps to value.
func (s *Snapshot) ContainsValue(value string) bool {
	for _, v := range s.values {
		if v == value {
			return true
		}
	}
	return false
}

// Keys returns the keys in source order. The returned slice is a copy.
func (s *Snapshot) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Values returns the values in source key order.
func (s *Snapshot) Values() []string {
	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.values[k])
	}
	return out
}

// Entries returns the key-value pairs in source key order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry{Key: k, Value: s.values[k]})
	}
	return out
}

// ModTime returns the source's modification timestamp recorded when the
// snapshot was captured. A zero time means the source was unreadable.
func (s *Snapshot) ModTime() time.Time {
	return s.modTime
}
