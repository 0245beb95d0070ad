// File: hotload/store_test.go
package hotload

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestFile creates a config file in a fresh temp dir and returns its
// path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// rewrite replaces the file content and bumps its mtime so staleness checks
// see the change regardless of filesystem timestamp granularity.
func rewrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))
}

func newTestStore(t *testing.T, content string) *Store {
	t.Helper()
	s, err := New(writeTestFile(t, "app.properties", content), time.Minute)
	require.NoError(t, err)
	return s
}

func TestNewErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent.properties"), time.Minute)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := New(t.TempDir(), time.Minute)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ZeroInterval", func(t *testing.T) {
		_, err := New(writeTestFile(t, "a.properties", "k = v\n"), 0)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("NegativeInterval", func(t *testing.T) {
		_, err := New(writeTestFile(t, "a.properties", "k = v\n"), -time.Second)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestInitialLoad(t *testing.T) {
	path := writeTestFile(t, "app.properties", "name = demo\nport = 8080\n")
	s, err := New(path, 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path())
	assert.Equal(t, 30*time.Second, s.Interval())
	assert.False(t, s.IsHotLoading())

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []string{"name", "port"}, s.Keys())
	assert.Equal(t, []string{"demo", "8080"}, s.Values())
	assert.True(t, s.ContainsKey("port"))
	assert.True(t, s.ContainsValue("demo"))
	assert.False(t, s.Snapshot().ModTime().IsZero())

	v, ok := s.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "demo", v)
}

func TestGet(t *testing.T) {
	s := newTestStore(t, "port = 8080\nbad = not-a-number\n")

	v, err := s.Get(TypeInt, "port", "", -1)
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	// Absent key and unparseable value both fall back to the default.
	v, err = s.Get(TypeInt, "missing", "", -1)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	v, err = s.Get(TypeInt, "bad", "", -1)
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestGetUnsupportedType(t *testing.T) {
	s := newTestStore(t, "port = 8080\n")

	_, err := s.Get(Type("no-such-type"), "port", "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// The error is about the type, not the key, so an absent key fails the
	// same way instead of returning the default.
	_, err = s.Get(Type("no-such-type"), "missing", "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	s.UnregisterConverter(TypeInt)
	_, err = s.Get(TypeInt, "port", "", -1)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestGetWithPattern(t *testing.T) {
	s := newTestStore(t, "launch = 15/01/2023\n")

	v, err := s.Get(TypeLocalDate, "launch", "02/01/2006", time.Time{})
	require.NoError(t, err)
	assert.True(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))
}

func TestGetList(t *testing.T) {
	s := newTestStore(t, "ports = 1,,3\nmixed = 1, x ,3\n")

	// Empty segments are kept and fall back to the default.
	vs, err := s.GetList(TypeInt, "ports", ",", "", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 0, 3}, vs)

	vs, err = s.GetList(TypeInt, "mixed", ",", "", -1)
	require.NoError(t, err)
	assert.Equal(t, []any{1, -1, 3}, vs)
}

func TestGetListAbsentKey(t *testing.T) {
	s := newTestStore(t, "k = v\n")

	vs, err := s.GetList(TypeInt, "missing", ",", "", 0)
	require.NoError(t, err)
	assert.NotNil(t, vs)
	assert.Empty(t, vs)
}

func TestGetListErrors(t *testing.T) {
	s := newTestStore(t, "k = 1,2\n")

	_, err := s.GetList(Type("no-such-type"), "k", ",", "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.GetList(TypeInt, "k", "[", "", 0)
	assert.Error(t, err)
}

func TestGetListRegexpDelimiter(t *testing.T) {
	s := newTestStore(t, "hosts = a ; b;c\n")

	vs, err := s.GetList(TypeString, "hosts", `\s*;\s*`, "", "")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, vs)
}

func TestGroupNames(t *testing.T) {
	s := newTestStore(t, ""+
		"app.db.host = localhost\n"+
		"app.cache.host = cache-1\n"+
		"app.db.port = 5432\n"+
		"other.db.host = elsewhere\n")

	assert.Equal(t, []string{"db", "cache"}, s.GroupNames("app.", ".host"))
	assert.Empty(t, s.GroupNames("nope.", ".host"))
}

func TestGroupNamesDegenerate(t *testing.T) {
	// prefix and suffix overlap inside the key; the extracted range is
	// degenerate and yields the empty string rather than panicking.
	s := newTestStore(t, "app.host = h\napp.db.host = d\n")

	assert.Equal(t, []string{"", "db"}, s.GroupNames("app.", ".host"))
}

func TestKeysByValue(t *testing.T) {
	s := newTestStore(t, "a = on\nb = off\nc = on\n")

	assert.Equal(t, []string{"a", "c"}, s.KeysByValue("on"))
	assert.Empty(t, s.KeysByValue("unknown"))
}

func TestConvertStandalone(t *testing.T) {
	s := newTestStore(t, "k = v\n")

	v, ok, err := s.Convert(TypeInt, "42", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok, err = s.Convert(TypeInt, "nope", "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Convert(Type("no-such-type"), "42", "")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReloadPublishesNewSnapshot(t *testing.T) {
	s := newTestStore(t, "mode = old\n")
	require.Equal(t, "old", s.String("mode"))

	rewrite(t, s.Path(), "mode = new\nextra = 1\n")
	require.NoError(t, s.Reload())

	assert.Equal(t, "new", s.String("mode"))
	assert.Equal(t, 2, s.Len())
}

func TestReloadIfStale(t *testing.T) {
	s := newTestStore(t, "mode = old\n")
	before := s.Snapshot()

	// Unchanged mtime: no new snapshot is published.
	require.NoError(t, s.ReloadIfStale())
	assert.Same(t, before, s.Snapshot())

	// Content changed but the timestamp put back: staleness is keyed on the
	// timestamp alone, so the old value stays visible.
	mod := before.ModTime()
	require.NoError(t, os.WriteFile(s.Path(), []byte("mode = sneaky\n"), 0o644))
	require.NoError(t, os.Chtimes(s.Path(), mod, mod))
	require.NoError(t, s.ReloadIfStale())
	assert.Equal(t, "old", s.String("mode"))

	rewrite(t, s.Path(), "mode = new\n")
	require.NoError(t, s.ReloadIfStale())
	assert.NotSame(t, before, s.Snapshot())
	assert.Equal(t, "new", s.String("mode"))
}

func TestReloadIfStaleUnreadableSource(t *testing.T) {
	s := newTestStore(t, "mode = old\n")
	require.NoError(t, os.Remove(s.Path()))

	// A vanished source never triggers a reload; the snapshot stands.
	require.NoError(t, s.ReloadIfStale())
	assert.Equal(t, "old", s.String("mode"))
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	path := writeTestFile(t, "app.toml", "mode = \"old\"\n")
	s, err := New(path, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "old", s.String("mode"))

	rewrite(t, path, "mode = \"broken\n") // unterminated string
	assert.Error(t, s.Reload())
	assert.Equal(t, "old", s.String("mode"))
}

func TestRegistrySurvivesReload(t *testing.T) {
	const typeShout Type = "shout"

	s := newTestStore(t, "k = v\n")
	s.RegisterConverter(typeShout, ConverterFunc(func(raw, _ string) (any, bool) {
		return raw + "!", true
	}))
	n := s.CountConverters()

	rewrite(t, s.Path(), "k = w\n")
	require.NoError(t, s.Reload())

	assert.Equal(t, n, s.CountConverters())
	v, err := s.Get(typeShout, "k", "", "")
	require.NoError(t, err)
	assert.Equal(t, "w!", v)
}

func TestSharedRegistry(t *testing.T) {
	reg := NewRegistry()
	pathA := writeTestFile(t, "a.properties", "k = 1\n")
	pathB := writeTestFile(t, "b.properties", "k = 2\n")

	a, err := NewWithOptions(pathA, time.Minute, Options{Registry: reg})
	require.NoError(t, err)
	b, err := NewWithOptions(pathB, time.Minute, Options{Registry: reg})
	require.NoError(t, err)

	a.UnregisterConverter(TypeBool)
	_, err = b.Get(TypeBool, "k", "", false)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSnapshotConsistencyUnderReload(t *testing.T) {
	s := newTestStore(t, "a = 1\nb = 1\nc = 1\n")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers must only ever observe a generation where all three values
	// agree, never a mix of old and new.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				a, _ := snap.Lookup("a")
				b, _ := snap.Lookup("b")
				c, _ := snap.Lookup("c")
				if a != b || b != c {
					t.Errorf("torn snapshot: a=%s b=%s c=%s", a, b, c)
					return
				}
			}
		}()
	}

	for gen := 2; gen <= 20; gen++ {
		v := string(rune('0' + gen%10))
		rewrite(t, s.Path(), "a = "+v+"\nb = "+v+"\nc = "+v+"\n")
		require.NoError(t, s.Reload())
	}

	close(stop)
	wg.Wait()
}
