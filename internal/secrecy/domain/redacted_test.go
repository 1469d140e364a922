package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedacted_HidesValue(t *testing.T) {
	r := NewRedacted("super-secret")

	assert.Equal(t, "[REDACTED]", r.String())
	assert.Equal(t, "[REDACTED]", r.GoString())
	assert.Equal(t, "super-secret", r.Expose())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(data))
}

func TestRedacted_UnmarshalRewraps(t *testing.T) {
	var r Redacted[string]
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &r))
	assert.Equal(t, "abc", r.Expose())
	assert.Equal(t, "[REDACTED]", r.String())
}

func TestRedacted_Equal(t *testing.T) {
	a := NewRedacted("x")
	b := NewRedacted("x")
	c := NewRedacted("y")

	eq := func(x, y string) bool { return x == y }
	assert.True(t, a.Equal(b, eq))
	assert.False(t, a.Equal(c, eq))
}

func TestRedacted_ZeroBytes(t *testing.T) {
	secret := []byte("0123456789012345678901234567890")
	backing := secret
	r := NewRedacted(secret)

	r.ZeroBytes()

	for _, b := range backing {
		assert.Equal(t, byte(0), b)
	}
}

func TestRedacted_ZeroBytesNoopForOtherTypes(t *testing.T) {
	r := NewRedacted(42)
	assert.NotPanics(t, func() { r.ZeroBytes() })
}
