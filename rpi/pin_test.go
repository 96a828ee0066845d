package rpi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLaneLookup(t *testing.T) {
	lookup := laneLookup(DefaultLanes)
	assert.Zero(t, lookup[0])
	assert.Equal(t, uint32(1<<5), lookup[0x01])
	assert.Equal(t, uint32(1<<21), lookup[0x80])
	assert.Equal(t, uint32(1<<6|1<<19), lookup[0x0A])

	var all uint32
	for _, gpio := range DefaultLanes {
		all |= 1 << gpio
	}
	assert.Equal(t, all, lookup[0xFF])
}

func TestNotInitialized(t *testing.T) {
	_, err := NewPin(5)
	assert.Equal(t, ErrNotInitialized, errors.Cause(err))
	_, err = NewPort()
	assert.Equal(t, ErrNotInitialized, errors.Cause(err))
}
