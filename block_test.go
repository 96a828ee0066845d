package ledwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/ledwire/sim"
)

func TestNewBlockClocklessErrors(t *testing.T) {
	b := sim.NewBoard(testCPM)
	for _, lanes := range []int{0, 9, -1} {
		_, err := ledwire.NewBlockClockless(b.Port(), lanes, b.LedBoard(), ledwire.WS2812)
		assert.ErrorIs(t, err, ledwire.ErrWrongLaneCount, "lanes %d", lanes)
	}
	_, err := ledwire.NewBlockClockless(nil, 2, b.LedBoard(), ledwire.WS2812)
	assert.ErrorIs(t, err, ledwire.ErrNoPort)

	slow := sim.NewBoard(4)
	_, err = ledwire.NewBlockClockless(slow.Port(), 2, slow.LedBoard(), ledwire.WS2812)
	assert.ErrorIs(t, err, ledwire.ErrTimingInfeasible)
}

func TestBlockClocklessLanes(t *testing.T) {
	b := sim.NewBoard(testCPM)
	port := b.Port()
	// pins above the lanes belong to someone else
	port.Preload(0xF0)

	drv, err := ledwire.NewBlockClockless(port, 3, b.LedBoard(), ledwire.WS2812)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7), drv.Mask())

	leds := []ledwire.RGB{
		{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6},
		{R: 0xFF}, {G: 0xFF},
		{R: 0x80, G: 0x01, B: 0xAA}, {B: 0x55},
	}
	c := ledwire.NewController(drv, ledwire.OrderRGB).SetDither(ledwire.DisableDither)
	c.Show(leds, len(leds), 255)

	assert.Equal(t, uint32(0x7), port.Output())
	assert.Zero(t, port.Toggled()&^drv.Mask(), "co-resident bits were touched")
	assert.Equal(t, uint32(0xF0), port.Read())

	got := sim.DecodeLanes(port, 3, ws2812Thresh)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, got[0])
	assert.Equal(t, []byte{0xFF, 0, 0, 0, 0xFF, 0}, got[1])
	assert.Equal(t, []byte{0x80, 0x01, 0xAA, 0, 0, 0x55}, got[2])

	for _, w := range port.Writes()[1:] {
		assert.True(t, w.Masked)
	}
	assert.Equal(t, b.Interrupts.Disables, b.Interrupts.Restores)
}

func TestBlockClocklessShortLane(t *testing.T) {
	b := sim.NewBoard(testCPM)
	port := b.Port()
	drv, err := ledwire.NewBlockClockless(port, 2, b.LedBoard(), ledwire.WS2812)
	require.NoError(t, err)

	c := ledwire.NewController(drv, ledwire.OrderRGB).SetDither(ledwire.DisableDither)
	c.Show([]ledwire.RGB{{R: 9}, {G: 9}, {B: 9}}, 3, 255)

	got := sim.DecodeLanes(port, 2, ws2812Thresh)
	assert.Equal(t, []byte{9, 0, 0, 0, 9, 0}, got[0])
	// the second lane is padded with a dark pixel
	assert.Equal(t, []byte{0, 0, 9, 0, 0, 0}, got[1])
}

func TestBlockClocklessShowColorMatchesShow(t *testing.T) {
	red := ledwire.RGB{R: 0xFF}
	leds := []ledwire.RGB{red, red, red, red, red}
	frame := func(show func(c *ledwire.Controller)) [][]byte {
		b := sim.NewBoard(testCPM)
		drv, err := ledwire.NewBlockClockless(b.Port(), 2, b.LedBoard(), ledwire.WS2812)
		require.NoError(t, err)
		show(ledwire.NewController(drv, ledwire.OrderRGB).SetDither(ledwire.DisableDither))
		return sim.DecodeLanes(b.Port(), 2, ws2812Thresh)
	}

	data := frame(func(c *ledwire.Controller) { c.Show(leds, len(leds), 255) })
	color := frame(func(c *ledwire.Controller) { c.ShowColor(red, len(leds), 255) })
	assert.Equal(t, data, color)
	assert.Equal(t, []byte{0xFF, 0, 0, 0xFF, 0, 0, 0, 0, 0}, color[1])
}
