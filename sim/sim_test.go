package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	c := NewClock(16)
	assert.Equal(t, uint32(0), c.Now())
	assert.Equal(t, uint32(1), c.Now())
	c.Step = 5
	assert.Equal(t, uint32(2), c.Now())
	assert.Equal(t, uint32(7), c.Peek())
	c.Advance(3)
	assert.Equal(t, uint32(10), c.Peek())
	assert.Equal(t, uint32(16), c.CyclesPerMicrosecond())
}

func TestPinRecordsTransitionsOnly(t *testing.T) {
	b := NewBoard(1)
	p := b.Pin("x")
	assert.Same(t, p, b.Pin("x"))

	p.Low()
	p.High()
	b.Clock.Advance(4)
	p.High()
	p.Low()
	edges := p.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, Edge{Cycle: 0, Level: true, Seq: 1}, edges[0])
	assert.Equal(t, Edge{Cycle: 4, Level: false, Seq: 2}, edges[1])

	b.Interrupts.Restore(b.Interrupts.Disable())
	state := b.Interrupts.Disable()
	p.High()
	b.Interrupts.Restore(state)
	assert.True(t, p.Edges()[2].Masked)
	assert.Equal(t, 2, b.Interrupts.Disables)
	assert.False(t, b.Interrupts.Masked())

	p.Reset()
	assert.Empty(t, p.Edges())
	assert.True(t, p.Level())
}

func nrz(widths ...uint32) []Edge {
	var edges []Edge
	var cycle uint32
	for _, w := range widths {
		edges = append(edges, Edge{Cycle: cycle, Level: true}, Edge{Cycle: cycle + w, Level: false})
		cycle += 10
	}
	return edges
}

func TestDecodeNRZ(t *testing.T) {
	edges := nrz(7, 2, 7, 2, 2, 2, 2, 7, 2)
	assert.Equal(t, []byte{0xA1}, DecodeNRZ(edges, 5))

	pulses := Pulses(edges)
	require.Len(t, pulses, 9)
	assert.Equal(t, Pulse{Start: 10, Width: 2}, pulses[1])
}

func TestPortEdges(t *testing.T) {
	b := NewBoard(1)
	p := b.Port()
	p.Preload(0x8)
	p.Set(0x1)
	b.Clock.Advance(2)
	p.Clear(0x1)
	p.Write(0x8)
	assert.Equal(t, uint32(0x1), p.Toggled())
	assert.Len(t, p.Writes(), 3)

	e := p.Edges(0)
	require.Len(t, e, 2)
	assert.Equal(t, uint32(0), e[0].Cycle)
	assert.Equal(t, uint32(2), e[1].Cycle)
	assert.Empty(t, p.Edges(3))

	p.Reset()
	assert.Zero(t, p.Toggled())
	assert.Empty(t, p.Writes())
}

func TestDecodeClocked(t *testing.T) {
	b := NewBoard(1)
	data, clk := b.Pin("d"), b.Pin("c")
	for _, v := range []byte{0x5A, 0xFF, 0x00} {
		for m := byte(0x80); m != 0; m >>= 1 {
			if v&m != 0 {
				data.High()
			} else {
				data.Low()
			}
			clk.High()
			clk.Low()
		}
	}
	assert.Equal(t, []byte{0x5A, 0xFF, 0x00}, DecodeClocked(data, clk))
}

func TestSPI(t *testing.T) {
	s := &SPI{}
	assert.Nil(t, s.Last())
	w := []byte{1, 2}
	require.NoError(t, s.Tx(w, nil))
	w[0] = 9
	assert.Equal(t, []byte{1, 2}, s.Last())
}

func TestBoardReset(t *testing.T) {
	b := NewBoard(1)
	p := b.Pin("x")
	p.High()
	b.Port().Set(0x3)
	b.Reset()
	assert.Empty(t, p.Edges())
	assert.Empty(t, b.Port().Writes())
	assert.True(t, p.Level())
	assert.Equal(t, uint32(0x3), b.Port().Read())
}
