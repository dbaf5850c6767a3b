package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.05, Clamp(-3, 0.05, 10))
	assert.Equal(t, 10.0, Clamp(99, 0.05, 10))
	assert.Equal(t, 1.0, Clamp(1, 0.05, 10))
}

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(1.0, 1.0+1e-10, 1e-9))
	assert.False(t, AlmostEqual(1.0, 1.1, 1e-9))
}

func TestNearZero(t *testing.T) {
	assert.True(t, NearZero(1e-12, 1e-9))
	assert.False(t, NearZero(0.1, 1e-9))
}
