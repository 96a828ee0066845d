package ledwire_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/ledwire/sim"
)

func hardwareOutput(t *testing.T, b *sim.Board) (*ledwire.SPIOutput, *sim.SPI) {
	conn := &sim.SPI{}
	out, err := ledwire.NewHardwareSPIOutput(conn, b.LedBoard())
	require.NoError(t, err)
	return out, conn
}

func TestClearLedsWS2801(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewWS2801(out), ledwire.OrderRGB)
	c.ClearLeds(5)

	require.Len(t, conn.Transfers, 1)
	assert.Equal(t, make([]byte, 15), conn.Last())
}

func TestClearLedsLPD8806(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewLPD8806(out), ledwire.OrderGRB)
	c.ClearLeds(5)

	require.Len(t, conn.Transfers, 2)
	assert.Equal(t, []byte{0}, conn.Transfers[0], "reset on init")
	frame := conn.Last()
	require.Len(t, frame, 15+ledwire.LPD8806LatchBytes(5))
	assert.Equal(t, bytes.Repeat([]byte{0x80}, 15), frame[:15])
	assert.Equal(t, []byte{0}, frame[15:])
}

func TestLPD8806Pixels(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewLPD8806(out), ledwire.OrderGRB).SetDither(ledwire.DisableDither)
	c.Show([]ledwire.RGB{{R: 0xFF, G: 0x02, B: 0x80}}, 1, 255)
	assert.Equal(t, []byte{0x81, 0xFF, 0xC0, 0}, conn.Last())
	assert.Equal(t, 2, ledwire.LPD8806LatchBytes(22))
}

func TestAPA102Frame(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewAPA102(out), ledwire.OrderBGR).SetDither(ledwire.DisableDither)
	c.Show([]ledwire.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}, 2, 255)
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		0xFF, 3, 2, 1,
		0xFF, 6, 5, 4,
		0xFF, 0, 0, 0,
	}, conn.Last())
	assert.Equal(t, 2, ledwire.APA102EndFrameDwords(32))
}

func TestSK9822Frame(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewSK9822(out), ledwire.OrderBGR)
	c.ClearLeds(1)
	assert.Equal(t, []byte{0, 0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0}, conn.Last())
}

func TestP9813Frame(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	c := ledwire.NewController(ledwire.NewP9813(out), ledwire.OrderRGB).SetDither(ledwire.DisableDither)
	c.Show([]ledwire.RGB{{R: 10, G: 20, B: 30}}, 1, 255)
	assert.Equal(t, []byte{0, 0, 0, 0, 0xFF, 30, 20, 10, 0, 0, 0, 0}, conn.Last())

	assert.Equal(t, byte(0xC0), ledwire.P9813Flag(0xFF, 0xFF, 0xFF))
	assert.Equal(t, byte(0xC0|0x30), ledwire.P9813Flag(0xC0, 0xC0, 0x00))
}

func TestBitBangMatchesHardware(t *testing.T) {
	leds := []ledwire.RGB{{R: 0x12, G: 0x34, B: 0x56}, {R: 0xFF, G: 0x00, B: 0x81}}

	b := sim.NewBoard(testCPM)
	hw, conn := hardwareOutput(t, b)
	ledwire.NewController(ledwire.NewAPA102(hw), ledwire.OrderBGR).SetDither(ledwire.DisableDither).Show(leds, 2, 200)

	data, clk := b.Pin("data"), b.Pin("clock")
	bb, err := ledwire.NewSPIOutput(data, clk, b.LedBoard(), ledwire.DataRateMHz(8, testCPM))
	require.NoError(t, err)
	ledwire.NewController(ledwire.NewAPA102(bb), ledwire.OrderBGR).SetDither(ledwire.DisableDither).Show(leds, 2, 200)

	assert.True(t, data.IsOutput())
	assert.False(t, clk.Level())
	assert.Equal(t, conn.Last(), sim.DecodeClocked(data, clk))
}

func TestBitBangClockRate(t *testing.T) {
	b := sim.NewBoard(testCPM)
	data, clk := b.Pin("data"), b.Pin("clock")
	out, err := ledwire.NewSPIOutput(data, clk, b.LedBoard(), 16)
	require.NoError(t, err)
	out.Init()
	out.WriteBytesValue(0xAA, 2)

	rising := 0
	var last uint32
	for _, e := range clk.Edges() {
		if !e.Level {
			continue
		}
		if rising > 0 {
			assert.GreaterOrEqual(t, e.Cycle-last, uint32(16))
		}
		last = e.Cycle
		rising++
	}
	assert.Equal(t, 16, rising)
	assert.Equal(t, []byte{0xAA, 0xAA}, sim.DecodeClocked(data, clk))
}

func TestSPIOutputSelect(t *testing.T) {
	b := sim.NewBoard(testCPM)
	out, conn := hardwareOutput(t, b)
	sel := b.Pin("select")
	out.SetSelect(sel)
	out.Init()
	assert.True(t, sel.Level())

	out.WriteBytesValue(0x42, 3)
	edges := sel.Edges()
	require.Len(t, edges, 3)
	assert.True(t, edges[0].Level)
	assert.False(t, edges[1].Level)
	assert.True(t, edges[2].Level)
	assert.Equal(t, []byte{0x42, 0x42, 0x42}, conn.Last())
}

func TestSPIOutputTransferErrorIsSwallowed(t *testing.T) {
	conn := &sim.SPI{Err: errors.New("bus gone")}
	out, err := ledwire.NewHardwareSPIOutput(conn, ledwire.Board{})
	require.NoError(t, err)
	c := ledwire.NewController(ledwire.NewWS2801(out), ledwire.OrderRGB)
	assert.NotPanics(t, func() { c.ClearLeds(3) })
	assert.Empty(t, conn.Transfers)
}

func TestNewSPIOutputErrors(t *testing.T) {
	b := sim.NewBoard(testCPM)
	_, err := ledwire.NewSPIOutput(nil, b.Pin("clock"), b.LedBoard(), 0)
	assert.ErrorIs(t, err, ledwire.ErrNoPin)
	_, err = ledwire.NewSPIOutput(b.Pin("data"), b.Pin("clock"), ledwire.Board{}, 4)
	assert.ErrorIs(t, err, ledwire.ErrNoClock)
	_, err = ledwire.NewHardwareSPIOutput(nil, b.LedBoard())
	assert.ErrorIs(t, err, ledwire.ErrNoPort)
}
