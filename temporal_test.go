// File: hotload/temporal_test.go
package hotload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAs(t *testing.T, typ Type, raw, pattern string) time.Time {
	t.Helper()
	conv, ok := NewRegistry().Lookup(typ)
	require.True(t, ok)
	v, ok := conv.Convert(raw, pattern)
	require.True(t, ok, "expected %q to parse as %s", raw, typ)
	return v.(time.Time)
}

func noMatch(t *testing.T, typ Type, raw, pattern string) {
	t.Helper()
	conv, ok := NewRegistry().Lookup(typ)
	require.True(t, ok)
	_, ok = conv.Convert(raw, pattern)
	assert.False(t, ok, "expected %q not to parse as %s", raw, typ)
}

func TestDateChain(t *testing.T) {
	want := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, want.Equal(parseAs(t, TypeLocalDate, "2023-01-15", "")))
	assert.True(t, want.Equal(parseAs(t, TypeLocalDate, "20230115", "")))
	assert.True(t, want.Equal(parseAs(t, TypeLocalDate, "  2023-01-15  ", "")))

	noMatch(t, TypeLocalDate, "2023/01/15", "")
	noMatch(t, TypeLocalDate, "2023-1-15", "")
	noMatch(t, TypeLocalDate, "not a date", "")
}

func TestTimeChain(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"12:34:56.789", time.Date(0, 1, 1, 12, 34, 56, 789e6, time.UTC)},
		{"123456.789", time.Date(0, 1, 1, 12, 34, 56, 789e6, time.UTC)},
		// Nine digits is the dotless millisecond form HHmmssSSS.
		{"123456789", time.Date(0, 1, 1, 12, 34, 56, 789e6, time.UTC)},
		{"12:34:56", time.Date(0, 1, 1, 12, 34, 56, 0, time.UTC)},
		{"123456", time.Date(0, 1, 1, 12, 34, 56, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parseAs(t, TypeLocalTime, tt.raw, "")
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	noMatch(t, TypeLocalTime, "12345", "")
	noMatch(t, TypeLocalTime, "25:00:00", "")
}

func TestDateTimeChain(t *testing.T) {
	base := time.Date(2023, 1, 15, 12, 34, 56, 0, time.UTC)
	millis := base.Add(789 * time.Millisecond)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-01-15 12:34:56.789", millis},
		{"2023-01-15T12:34:56.789", millis},
		{"20230115123456.789", millis},
		// Seventeen digits is the dotless form yyyyMMddHHmmssSSS.
		{"20230115123456789", millis},
		{"2023-01-15 12:34:56", base},
		{"2023-01-15T12:34:56", base},
		{"20230115123456", base},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parseAs(t, TypeLocalDateTime, tt.raw, "")
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	noMatch(t, TypeLocalDateTime, "20230115", "")
}

func TestChainOrderIsFirstMatch(t *testing.T) {
	// An eight-digit run is a date, never a truncated anything else, and a
	// fourteen-digit run is a datetime; the chains must not cross over.
	d := parseAs(t, TypeLocalDate, "20230101", "")
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 1, d.Day())

	dt := parseAs(t, TypeLocalDateTime, "20230101000000", "")
	assert.Equal(t, 2023, dt.Year())
}

func TestExplicitPatternSingleAttempt(t *testing.T) {
	// With an explicit pattern only that layout is tried; the fallback
	// chain must not rescue a mismatch.
	got := parseAs(t, TypeLocalDate, "15/01/2023", "02/01/2006")
	assert.True(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC).Equal(got))

	noMatch(t, TypeLocalDate, "2023-01-15", "02/01/2006")
	noMatch(t, TypeLocalDate, "20230115", "2006-01-02")
}

func TestZonedVersusZoneFree(t *testing.T) {
	zoned := parseAs(t, TypeTimestamp, "2023-01-15 12:34:56", "")
	free := parseAs(t, TypeLocalDateTime, "2023-01-15 12:34:56", "")

	assert.Equal(t, time.Local, zoned.Location())
	assert.Equal(t, time.UTC, free.Location())

	// The wall-clock fields are identical either way.
	assert.Equal(t, zoned.Hour(), free.Hour())
	assert.Equal(t, zoned.Minute(), free.Minute())

	d := parseAs(t, TypeDate, "2023-01-15", "")
	assert.Equal(t, time.Local, d.Location())
}

func TestDotMillisRewrite(t *testing.T) {
	prep := dotMillis(6)

	out, ok := prep("123456789")
	require.True(t, ok)
	assert.Equal(t, "123456.789", out)

	_, ok = prep("12345678") // wrong length
	assert.False(t, ok)

	_, ok = prep("12345678x")
	assert.False(t, ok)
}
