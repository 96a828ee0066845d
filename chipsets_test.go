package ledwire

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingFeasibility(t *testing.T) {
	tests := []struct {
		name   string
		timing Timing
		cpm    uint32
		want   bool
	}{
		{"WS2812 at 16MHz", WS2812, 16, true},
		{"WS2812 at 8MHz", WS2812, 8, true},
		{"WS2812 at 4MHz", WS2812, 4, false},
		{"WS2812 on a 1MHz timer", WS2812, 1, false},
		{"LPD1886 at 16MHz", LPD1886, 16, true},
		{"LPD1886 at 8MHz", LPD1886, 8, false},
		{"TM1803 at 4MHz", TM1803, 4, true},
		{"zero high time", Timing{T1: 0, T2: 5000, T3: 5000}, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.timing.Feasible(tt.cpm))
		})
	}
}

func TestCatalogFeasibleAtMinClock(t *testing.T) {
	for name, e := range clocklessChipsets {
		assert.True(t, e.timing.Feasible(minCyclesPerMicrosecond), name)
	}
}

func TestTimingCycles(t *testing.T) {
	t1, t2, t3, ok := WS2812.Cycles(64)
	require.True(t, ok)
	assert.Equal(t, []uint32{16, 40, 24}, []uint32{t1, t2, t3})
	assert.Equal(t, uint32(1250), WS2812.Period())
}

func TestLookup(t *testing.T) {
	timing, order, ok := LookupClockless("ws2812b")
	require.True(t, ok)
	assert.Equal(t, WS2812, timing)
	assert.Equal(t, OrderGRB, order)

	kind, order, ok := LookupClocked("apa102")
	require.True(t, ok)
	assert.Equal(t, KindAPA102, kind)
	assert.Equal(t, OrderBGR, order)

	_, _, ok = LookupClockless("APA102")
	assert.False(t, ok)
	_, _, ok = LookupClocked("nope")
	assert.False(t, ok)
}

func TestNewClockedUnknownIsNull(t *testing.T) {
	out, err := NewHardwareSPIOutput(discard{}, Board{})
	require.NoError(t, err)
	assert.Equal(t, Null{}, NewClocked(ClockedKind(99), out))
	assert.Equal(t, Null{}, NewClocked(KindWS2801, nil))
	assert.IsType(t, &LPD8806{}, NewClocked(KindLPD8806, out))
}

type discard struct{}

func (discard) Tx(w, r []byte) error { return nil }

func TestTranspose8(t *testing.T) {
	got := Transpose8([8]byte{0xFF})
	assert.Equal(t, [8]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}, got)

	got = Transpose8([8]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	assert.Equal(t, [8]byte{0xFF}, got)

	// lane 3 sends 0b0000_0001: only the last row carries it, at bit 7-3.
	got = Transpose8([8]byte{3: 0x01})
	assert.Equal(t, [8]byte{7: 0x10}, got)
}

func TestTranspose8Involution(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		var in [8]byte
		rnd.Read(in[:])
		assert.Equal(t, in, Transpose8(Transpose8(in)))
	}
}

func TestTransposeIgnoresUnusedLanes(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for n := 1; n <= MaxLanes; n++ {
		mask := byte(1<<uint(n) - 1)
		for i := 0; i < 50; i++ {
			var used, noisy [8]byte
			rnd.Read(noisy[:])
			copy(used[:n], noisy[:n])
			a, b := Transpose8(used), Transpose8(noisy)
			for row := range a {
				assert.Equal(t, bits.Reverse8(a[row])&mask, bits.Reverse8(b[row])&mask, "lanes %d row %d", n, row)
			}
		}
	}
}

func TestMultiPixelController(t *testing.T) {
	leds := make([]RGB, 5)
	for i := range leds {
		leds[i] = RGB{R: uint8(10 * (i + 1))}
	}
	pc := NewPixelController(leds, 5, [3]uint8{255, 255, 255}, DisableDither, OrderRGB)
	m := NewMultiPixelController(&pc, 3)
	assert.Equal(t, 3, m.Lanes())
	assert.Equal(t, 2, m.Length())

	assert.True(t, m.Has(1))
	assert.Equal(t, [8]byte{10, 30, 50}, m.LoadAndScale(0))
	m.StepDithering()
	m.AdvanceData()
	// the last lane only has one pixel
	assert.Equal(t, [8]byte{20, 40, 0}, m.LoadAndScale(0))
	m.StepDithering()
	m.AdvanceData()
	assert.False(t, m.Has(1))
}
