// File: hotload/loader.go
package hotload

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Source formats. FormatProperties is the default: line-oriented key=value
// pairs with comments, escapes and continuations. The document formats are
// flattened to dotted keys; all formats yield the same ordered pair stream.
const (
	FormatProperties = "properties"
	FormatTOML       = "toml"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
)

// readSource reads path into an ordered (key, value) sequence, preserving
// first-seen key order. format may be empty, in which case it is detected
// from the extension and then the content.
func readSource(path, format string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file '%s': %w", path, err)
	}

	if format == "" {
		format = detectFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
		if format == "" {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
		}
	}

	switch format {
	case FormatProperties:
		return parseProperties(data)
	case FormatTOML:
		return parseTOML(data)
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// sourceModTime returns the file's modification timestamp, or the zero time
// when the path is unreadable or not a regular file ("can't tell, assume
// unchanged").
func sourceModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return time.Time{}
	}
	return info.ModTime()
}

// detectFormat determines the format from the file extension.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return FormatProperties
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect the format by parsing.
// Properties is tried last: almost any line-oriented text loads as
// properties, so the structured formats get first refusal.
func detectFormatFromContent(data []byte) string {
	if gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject() {
		return FormatJSON
	}

	var tomlTest map[string]any
	if _, err := toml.Decode(string(data), &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil && yamlTest != nil {
		return FormatYAML
	}

	if _, err := parseProperties(data); err == nil {
		return FormatProperties
	}

	return ""
}

// parseProperties parses Java-style properties. Key order and
// last-write-wins duplicate handling come from the properties library;
// expansion is disabled so ${...} references reach converters verbatim.
func parseProperties(data []byte) ([]Entry, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties source: %w", err)
	}

	keys := p.Keys()
	pairs := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		pairs = append(pairs, Entry{Key: k, Value: v})
	}
	return pairs, nil
}

// parseTOML flattens a TOML document to dotted keys. Document order is
// recovered from the decoder metadata, which lists keys in order of
// appearance.
func parseTOML(data []byte) ([]Entry, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML source: %w", err)
	}

	var pairs []Entry
	for _, key := range md.Keys() {
		v, ok := valueAt(doc, key)
		if !ok {
			continue
		}
		if _, isTable := v.(map[string]any); isTable {
			continue // table header; members appear as their own keys
		}
		s, ok := scalarString(v)
		if !ok {
			continue
		}
		pairs = append(pairs, Entry{Key: key.String(), Value: s})
	}
	return pairs, nil
}

// valueAt navigates a decoded TOML document along a key path.
func valueAt(doc map[string]any, key toml.Key) (any, bool) {
	var current any = doc
	for _, seg := range key {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return current, true
}

// parseJSON walks a JSON object in document order.
func parseJSON(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse JSON source: invalid document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("failed to parse JSON source: top-level value is not an object")
	}

	var pairs []Entry
	var walk func(prefix string, obj gjson.Result)
	walk = func(prefix string, obj gjson.Result) {
		obj.ForEach(func(key, value gjson.Result) bool {
			full := key.String()
			if prefix != "" {
				full = prefix + "." + full
			}
			switch {
			case value.IsObject():
				walk(full, value)
			case value.IsArray():
				parts := make([]string, 0)
				for _, el := range value.Array() {
					if !el.IsObject() && !el.IsArray() {
						parts = append(parts, el.String())
					}
				}
				pairs = append(pairs, Entry{Key: full, Value: strings.Join(parts, ",")})
			default:
				pairs = append(pairs, Entry{Key: full, Value: value.String()})
			}
			return true
		})
	}
	walk("", root)
	return pairs, nil
}

// parseYAML walks the YAML node tree, which preserves mapping order; scalar
// node values are the raw source text.
func parseYAML(data []byte) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML source: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return []Entry{}, nil
	}

	top := resolveAlias(root.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML source: top-level value is not a mapping")
	}

	var pairs []Entry
	var walk func(prefix string, node *yaml.Node)
	walk = func(prefix string, node *yaml.Node) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			value := resolveAlias(node.Content[i+1])
			switch value.Kind {
			case yaml.MappingNode:
				walk(key, value)
			case yaml.SequenceNode:
				parts := make([]string, 0, len(value.Content))
				for _, el := range value.Content {
					el = resolveAlias(el)
					if el.Kind == yaml.ScalarNode {
						parts = append(parts, el.Value)
					}
				}
				pairs = append(pairs, Entry{Key: key, Value: strings.Join(parts, ",")})
			case yaml.ScalarNode:
				pairs = append(pairs, Entry{Key: key, Value: value.Value})
			}
		}
	}
	walk("", top)
	return pairs, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

// scalarString renders a decoded scalar as its raw-text equivalent.
// Scalar arrays are comma-joined so list-valued keys work with GetList.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case []any:
		parts := make([]string, 0, len(x))
		for _, el := range x {
			s, ok := scalarString(el)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}
