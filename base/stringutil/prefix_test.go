//go:build unit

package stringutil_test

import (
	"testing"
	"unicode/utf8"

	"github.com/databendlabs/databend-base/base/stringutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixRightBoundASCII(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"a":      "b",
		"z":      "{",
		"A":      "B",
		"foo":    "fop",
		"bar":    "bas",
		"hello":  "hellp",
		"abc":    "abd",
		"foo/":   "foo0",
		"hello!": "hello\"",
	}

	for prefix, want := range cases {
		bound, ok := stringutil.PrefixRightBound(prefix)
		require.True(t, ok, "prefix %q", prefix)
		assert.Equal(t, want, bound, "prefix %q", prefix)
	}
}

func TestPrefixRightBoundUnicode(t *testing.T) {
	t.Parallel()

	cases := []struct{ prefix, want string }{
		{"日本", "日札"},
		{"中文", "中斈"},
		{"🎉", "🎊"},
		{"foo💯", "foo💰"},
		{"ñ", "ò"},
	}

	for _, tc := range cases {
		bound, ok := stringutil.PrefixRightBound(tc.prefix)
		require.True(t, ok, "prefix %q", tc.prefix)
		assert.Equal(t, tc.want, bound, "prefix %q", tc.prefix)
	}
}

func TestPrefixRightBoundEmpty(t *testing.T) {
	t.Parallel()

	_, ok := stringutil.PrefixRightBound("")
	assert.False(t, ok)
}

func TestPrefixRightBoundTrailingMaxRunes(t *testing.T) {
	t.Parallel()

	maxRune := string(utf8.MaxRune)

	cases := []struct{ prefix, want string }{
		{"a" + maxRune, "b"},
		{"ab" + maxRune, "ac"},
		{"ab" + maxRune + maxRune, "ac"},
		{"aa" + maxRune + maxRune + maxRune, "ab"},
	}

	for _, tc := range cases {
		bound, ok := stringutil.PrefixRightBound(tc.prefix)
		require.True(t, ok, "prefix %q", tc.prefix)
		assert.Equal(t, tc.want, bound, "prefix %q", tc.prefix)
	}
}

func TestPrefixRightBoundAllMaxRunes(t *testing.T) {
	t.Parallel()

	maxRune := string(utf8.MaxRune)

	for _, prefix := range []string{maxRune, maxRune + maxRune} {
		_, ok := stringutil.PrefixRightBound(prefix)
		assert.False(t, ok, "prefix %q", prefix)
	}
}

func TestPrefixRightBoundSkipsSurrogateEdge(t *testing.T) {
	t.Parallel()

	// U+D7FF is followed by the surrogate range, so the previous rune is
	// incremented instead.
	bound, ok := stringutil.PrefixRightBound("a퟿")
	require.True(t, ok)
	assert.Equal(t, "b", bound)
}

func TestPrefixRightBoundRangeSemantics(t *testing.T) {
	t.Parallel()

	prefix := "foo"

	bound, ok := stringutil.PrefixRightBound(prefix)
	require.True(t, ok)

	for _, in := range []string{"foo", "foobar", "foo/something"} {
		assert.True(t, in >= prefix && in < bound, "%q must fall inside the range", in)
	}

	for _, out := range []string{"fop", "goo"} {
		assert.True(t, out >= bound, "%q must fall outside the range", out)
	}

	assert.Less(t, "fo", prefix)
}

func TestPrefixToRange(t *testing.T) {
	t.Parallel()

	start, end, bounded := stringutil.PrefixToRange("foo")
	assert.Equal(t, "foo", start)
	assert.Equal(t, "fop", end)
	assert.True(t, bounded)

	start, end, bounded = stringutil.PrefixToRange("")
	assert.Empty(t, start)
	assert.Empty(t, end)
	assert.False(t, bounded)

	maxRune := string(utf8.MaxRune)

	start, end, bounded = stringutil.PrefixToRange(maxRune)
	assert.Equal(t, maxRune, start)
	assert.Empty(t, end)
	assert.False(t, bounded)
}
