// File: hotload/temporal.go
package hotload

import (
	"strings"
	"time"
)

// zone selects how temporal converters anchor parsed wall-clock values.
type zone int

const (
	zoneNone  zone = iota // zone-free: time.Parse, UTC
	zoneLocal             // zoned: time.ParseInLocation with time.Local
)

// temporalLayout is one entry in a fallback chain: a Go reference layout
// plus an optional input rewrite for encodings Go layouts cannot express.
type temporalLayout struct {
	layout  string
	prepare func(string) (string, bool)
}

// Default fallback chains. Order is a contract: an ambiguous string that
// satisfies more than one layout must resolve to the first match, so
// entries must not be reordered.
var (
	dateLayouts = []temporalLayout{
		{layout: "2006-01-02"},
		{layout: "20060102"},
	}

	timeLayouts = []temporalLayout{
		{layout: "15:04:05.000"},
		{layout: "150405.000"},
		{layout: "150405.000", prepare: dotMillis(6)},
		{layout: "15:04:05"},
		{layout: "150405"},
	}

	dateTimeLayouts = []temporalLayout{
		{layout: "2006-01-02 15:04:05.000"},
		{layout: "2006-01-02T15:04:05.000"},
		{layout: "20060102150405.000"},
		{layout: "20060102150405.000", prepare: dotMillis(14)},
		{layout: "2006-01-02 15:04:05"},
		{layout: "2006-01-02T15:04:05"},
		{layout: "20060102150405"},
	}
)

// dotMillis rewrites an all-digit string of exactly digits+3 characters by
// inserting a dot before the final three (the milliseconds). Go layouts
// only recognize fractional seconds after a separator, so the digit-run
// encodings HHmmssSSS and yyyyMMddHHmmssSSS are parsed via their dotted
// equivalents.
func dotMillis(digits int) func(string) (string, bool) {
	return func(s string) (string, bool) {
		if len(s) != digits+3 || !allDigits(s) {
			return "", false
		}
		return s[:digits] + "." + s[digits:], true
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// temporalConverter builds a converter over a fallback chain. An explicit
// pattern (a Go reference layout) gets exactly one parse attempt; with no
// pattern the chain is tried in order and the first layout that parses the
// entire string wins.
func temporalConverter(chain []temporalLayout, z zone) ConverterFunc {
	return func(raw, pattern string) (any, bool) {
		s := strings.TrimSpace(raw)
		if pattern != "" {
			return parseTemporal(pattern, s, z)
		}
		for _, l := range chain {
			in := s
			if l.prepare != nil {
				var ok bool
				if in, ok = l.prepare(s); !ok {
					continue
				}
			}
			if v, ok := parseTemporal(l.layout, in, z); ok {
				return v, true
			}
		}
		return nil, false
	}
}

func parseTemporal(layout, s string, z zone) (any, bool) {
	var (
		t   time.Time
		err error
	)
	if z == zoneLocal {
		t, err = time.ParseInLocation(layout, s, time.Local)
	} else {
		t, err = time.Parse(layout, s)
	}
	if err != nil {
		return nil, false
	}
	return t, true
}
