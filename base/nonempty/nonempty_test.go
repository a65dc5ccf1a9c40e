//go:build unit

package nonempty_test

import (
	"encoding/json"
	"testing"

	"github.com/databendlabs/databend-base/base/nonempty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := nonempty.New("")
	assert.ErrorIs(t, err, nonempty.ErrEmpty)
}

func TestNewAcceptsContent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"hello", " ", "\t", "你好", "🦀"} {
		s, err := nonempty.New(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, input, s.String())
		assert.False(t, s.IsZero())
	}
}

func TestMustNewPanicsOnEmpty(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { nonempty.MustNew("") })
	assert.Equal(t, "ok", nonempty.MustNew("ok").String())
}

func TestZeroValueIsInvalid(t *testing.T) {
	t.Parallel()

	var s nonempty.String

	assert.True(t, s.IsZero())

	_, err := s.MarshalText()
	assert.ErrorIs(t, err, nonempty.ErrEmpty)
}

func TestEquality(t *testing.T) {
	t.Parallel()

	a := nonempty.MustNew("x")
	b := nonempty.MustNew("x")
	c := nonempty.MustNew("y")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Usable as a map key.
	m := map[nonempty.String]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name nonempty.String `json:"name"`
	}

	encoded, err := json.Marshal(payload{Name: nonempty.MustNew("alice")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alice"}`, string(encoded))

	var decoded payload

	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "alice", decoded.Name.String())
}

func TestJSONRejectsEmpty(t *testing.T) {
	t.Parallel()

	var s nonempty.String

	err := json.Unmarshal([]byte(`""`), &s)
	assert.ErrorIs(t, err, nonempty.ErrEmpty)
}
