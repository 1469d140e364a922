package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClientId_IsDeterministic(t *testing.T) {
	a := NewClientId("acme")
	b := NewClientId("acme")
	c := NewClientId("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestApiKey_Mask(t *testing.T) {
	key := NewApiKey()
	mask := key.Mask()

	assert.Len(t, mask, 6)
	assert.Equal(t, key.String()[:3]+"***", mask)
}
