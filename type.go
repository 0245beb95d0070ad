// File: hotload/type.go
package hotload

import "time"

// Generic accessors over the descriptor-keyed dispatch. The converter's
// result must have dynamic type T; a mismatch is treated as no-match and
// yields def. def is also returned alongside the error when the type has
// no registered converter.

// Get converts the value for key to type t using the converter's default
// formats, substituting def when the key is absent or does not parse.
func Get[T any](s *Store, t Type, key string, def T) (T, error) {
	return GetPattern[T](s, t, key, "", def)
}

// GetPattern is Get with an explicit format pattern.
func GetPattern[T any](s *Store, t Type, key, pattern string, def T) (T, error) {
	v, err := s.Get(t, key, pattern, def)
	if err != nil {
		return def, err
	}
	out, ok := v.(T)
	if !ok {
		return def, nil
	}
	return out, nil
}

// GetList converts a delimited value for key into a typed list; pieces
// that do not parse become def. An absent key yields an empty list.
func GetList[T any](s *Store, t Type, key, delim string, def T) ([]T, error) {
	return GetListPattern[T](s, t, key, delim, "", def)
}

// GetListPattern is GetList with an explicit format pattern.
func GetListPattern[T any](s *Store, t Type, key, delim, pattern string, def T) ([]T, error) {
	vs, err := s.GetList(t, key, delim, pattern, def)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		if typed, ok := v.(T); ok {
			out = append(out, typed)
		} else {
			out = append(out, def)
		}
	}
	return out, nil
}

// Typed convenience getters for the common descriptors. They substitute
// the default on absence or parse failure, and also when the built-in
// converter for the type has been unregistered.

// String returns the raw value for key, or "" when absent.
func (s *Store) String(key string) string {
	return s.StringOr(key, "")
}

// StringOr returns the raw value for key, or def when absent.
func (s *Store) StringOr(key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Int returns the value for key as an int, or def.
func (s *Store) Int(key string, def int) int {
	v, _ := Get(s, TypeInt, key, def)
	return v
}

// Int64 returns the value for key as an int64, or def.
func (s *Store) Int64(key string, def int64) int64 {
	v, _ := Get(s, TypeInt64, key, def)
	return v
}

// Float64 returns the value for key as a float64, or def.
func (s *Store) Float64(key string, def float64) float64 {
	v, _ := Get(s, TypeFloat64, key, def)
	return v
}

// Bool returns the value for key as a bool, or def.
func (s *Store) Bool(key string, def bool) bool {
	v, _ := Get(s, TypeBool, key, def)
	return v
}

// Timestamp returns the value for key as a zoned date-time, or def.
func (s *Store) Timestamp(key string, def time.Time) time.Time {
	v, _ := Get(s, TypeTimestamp, key, def)
	return v
}

// LocalDate returns the value for key as a zone-free date, or def.
func (s *Store) LocalDate(key string, def time.Time) time.Time {
	v, _ := Get(s, TypeLocalDate, key, def)
	return v
}
