package tessellate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMidpointHashRoundTrip(t *testing.T) {
	h := newMidpointHash()
	h.store(3, 7, 42)

	v, ok := h.lookup(3, 7)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	// Order-independence: the same unordered pair looks up the same slot
	// regardless of which endpoint is passed first.
	v2, ok2 := h.lookup(7, 3)
	assert.True(t, ok2)
	assert.Equal(t, 42, v2)
}

func TestMidpointHashInvalidate(t *testing.T) {
	h := newMidpointHash()
	h.store(1, 2, 9)
	h.invalidate(2, 1)
	_, ok := h.lookup(1, 2)
	assert.False(t, ok)
}

func TestMidpointHashMissingKey(t *testing.T) {
	h := newMidpointHash()
	_, ok := h.lookup(100, 200)
	assert.False(t, ok)
}
