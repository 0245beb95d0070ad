// File: hotload/convert.go
package hotload

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultConverters returns the built-in type-to-converter seed mapping.
func defaultConverters() map[Type]Converter {
	return map[Type]Converter{
		TypeString:  ConverterFunc(convertString),
		TypeRune:    ConverterFunc(convertRune),
		TypeByte:    ConverterFunc(convertByte),
		TypeInt16:   ConverterFunc(convertInt16),
		TypeInt:     ConverterFunc(convertInt),
		TypeInt64:   ConverterFunc(convertInt64),
		TypeFloat32: ConverterFunc(convertFloat32),
		TypeFloat64: ConverterFunc(convertFloat64),
		TypeBool:    ConverterFunc(convertBool),

		TypeDate:      temporalConverter(dateLayouts, zoneLocal),
		TypeTime:      temporalConverter(timeLayouts, zoneLocal),
		TypeTimestamp: temporalConverter(dateTimeLayouts, zoneLocal),

		TypeLocalDate:     temporalConverter(dateLayouts, zoneNone),
		TypeLocalTime:     temporalConverter(timeLayouts, zoneNone),
		TypeLocalDateTime: temporalConverter(dateTimeLayouts, zoneNone),

		TypeGoType: ConverterFunc(convertGoType),
		TypeFile:   ConverterFunc(convertFile),
		TypeURL:    ConverterFunc(convertURL),
	}
}

// convertString returns the raw value unmodified, whitespace included.
func convertString(raw, _ string) (any, bool) {
	return raw, true
}

func convertRune(raw, _ string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	return []rune(s)[0], true
}

func convertByte(raw, _ string) (any, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 8)
	if err != nil {
		return nil, false
	}
	return byte(v), true
}

func convertInt16(raw, _ string) (any, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
	if err != nil {
		return nil, false
	}
	return int16(v), true
}

func convertInt(raw, _ string) (any, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	return v, true
}

func convertInt64(raw, _ string) (any, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, false
	}
	return v, true
}

func convertFloat32(raw, _ string) (any, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return nil, false
	}
	return float32(v), true
}

func convertFloat64(raw, _ string) (any, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, false
	}
	return v, true
}

// convertBool matches the permissive truth sets case-insensitively:
// {true, yes, y, 1} and {false, no, n, 0}. Anything else is no-match.
func convertBool(raw, _ string) (any, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	default:
		return nil, false
	}
}

// convertGoType resolves the trimmed string as a fully-qualified type name
// in the process type registry (see RegisterGoType).
func convertGoType(raw, _ string) (any, bool) {
	t, ok := LookupGoType(strings.TrimSpace(raw))
	if !ok {
		return nil, false
	}
	return t, true
}

// convertFile yields an absolute, cleaned path.
func convertFile(raw, _ string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return nil, false
	}
	return abs, true
}

// convertURL accepts absolute URLs only: a scheme plus a host, path, or
// opaque part. Relative references are no-match.
func convertURL(raw, _ string) (any, bool) {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return nil, false
	}
	return u, true
}
