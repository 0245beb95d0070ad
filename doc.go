// File: hotload/doc.go

// Package hotload provides typed, hot-reloadable access to a flat key-value
// configuration file. Values are requested by semantic type (numeric,
// boolean, date/time, Go type reference, file path, URL) instead of raw
// strings, and a background poller detects source changes and atomically
// republishes an updated snapshot without readers ever seeing torn state.
//
// Features:
//   - Immutable insertion-ordered snapshots published through an atomic
//     pointer; readers never lock and never block on a reload
//   - Interval-based hot reload keyed on the file's modification time,
//     started and stopped explicitly (both idempotent)
//   - Extensible converter registry seeded with converters for strings,
//     runes, integers, floats, booleans, temporal values, Go type
//     references, file paths, and URLs
//   - Ordered fallback layout chains for temporal values in multiple
//     literal encodings
//   - Java-style .properties sources by default, with flat TOML, JSON and
//     YAML documents supported through order-preserving parsers
//   - Struct scanning of a key group via mapstructure
//   - Builder pattern and file discovery for easy initialization
//
// Quick Start:
//
//	store, err := hotload.New("app.properties", 10*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store.OpenHotLoad()
//	defer store.CloseHotLoad()
//
//	host := store.StringOr("db.host", "localhost")
//	port, _ := hotload.Get(store, hotload.TypeInt, "db.port", 5432)
//
// Unparsable or absent values are substituted with the caller-supplied
// default; the only conversion-time error surfaced to callers is
// ErrUnsupportedType for a descriptor with no registered converter.
//
// Thread Safety:
// All operations are safe for concurrent use. Snapshot publication is the
// only write to shared read-path state and goes through a single atomic
// pointer, so a reader observes either the previous complete snapshot or
// the new complete one, never a mix.
package hotload
