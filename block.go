package ledwire

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
)

//MaxLanes is the widest block the parallel driver handles in one port write.
const MaxLanes = 8

//Transpose8 turns the bytes of eight lanes into eight bit rows.
//
//in[i] is the byte of lane i. In the result, row k holds bit 7-k of every lane, lane i at
//bit 7-i. Applying it twice returns the input.
func Transpose8(in [8]byte) [8]byte {
	x := binary.BigEndian.Uint64(in[:])
	t := (x ^ (x >> 7)) & 0x00AA00AA00AA00AA
	x ^= t ^ (t << 7)
	t = (x ^ (x >> 14)) & 0x0000CCCC0000CCCC
	x ^= t ^ (t << 14)
	t = (x ^ (x >> 28)) & 0x00000000F0F0F0F0
	x ^= t ^ (t << 28)
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], x)
	return out
}

//MultiPixelController splits one PixelController into equally long lanes, one per strip
//sharing the port. Each lane keeps its own dither state.
type MultiPixelController struct {
	lanes  []PixelController
	length int
}

//NewMultiPixelController splits pc into n lanes. The lane length is the size of pc divided by
//n, rounded up, so the last lane may be shorter.
func NewMultiPixelController(pc *PixelController, n int) MultiPixelController {
	if n < 1 {
		n = 1
	}
	length := (pc.Size() + n - 1) / n
	m := MultiPixelController{lanes: make([]PixelController, n), length: length}
	for i := range m.lanes {
		m.lanes[i] = pc.Lane(i, length)
	}
	return m
}

//Lanes is the number of lanes.
func (m *MultiPixelController) Lanes() int {
	return len(m.lanes)
}

//Length is the number of pixels per lane.
func (m *MultiPixelController) Length() int {
	return m.length
}

//Lane returns the controller of lane i.
func (m *MultiPixelController) Lane(i int) *PixelController {
	return &m.lanes[i]
}

//Has reports whether any lane still has n pixels.
func (m *MultiPixelController) Has(n int) bool {
	for i := range m.lanes {
		if m.lanes[i].Has(n) {
			return true
		}
	}
	return false
}

//LoadAndScale gathers the byte of transmission slot for every lane. Exhausted lanes and
//lanes past the controller count give 0.
func (m *MultiPixelController) LoadAndScale(slot int) [8]byte {
	var b [8]byte
	for i := range m.lanes {
		if i >= MaxLanes {
			break
		}
		if m.lanes[i].Has(1) {
			b[i] = m.lanes[i].LoadAndScale(slot)
		}
	}
	return b
}

//StepDithering commits the remainders of every lane.
func (m *MultiPixelController) StepDithering() {
	for i := range m.lanes {
		m.lanes[i].StepDithering()
	}
}

//AdvanceData moves every lane to its next pixel.
func (m *MultiPixelController) AdvanceData() {
	for i := range m.lanes {
		m.lanes[i].AdvanceData()
	}
}

//BlockClockless drives up to MaxLanes clockless strips on the low bits of one port.
//Lane i is port bit i. Bits at and above the lane count are never written.
type BlockClockless struct {
	port       Port
	lanes      int
	mask       uint32
	clock      CycleCounter
	interrupts Interrupts
	timing     Timing
	t1, t2, t3 uint32
	wait       *MinWait
}

//NewBlockClockless returns a BlockClockless with lanes strips on port.
func NewBlockClockless(port Port, lanes int, board Board, timing Timing) (*BlockClockless, error) {
	if port == nil {
		return nil, errors.Wrap(ErrNoPort, "block clockless")
	}
	if lanes < 1 || lanes > MaxLanes {
		return nil, errors.Wrapf(ErrWrongLaneCount, "block clockless with %d lanes", lanes)
	}
	if board.Clock == nil {
		return nil, errors.Wrap(ErrNoClock, "block clockless")
	}
	cpm := board.Clock.CyclesPerMicrosecond()
	t1, t2, t3, ok := timing.Cycles(cpm)
	if !ok {
		return nil, errors.Wrapf(ErrTimingInfeasible, "block clockless %d/%d/%dns at %d cycles/us", timing.T1, timing.T2, timing.T3, cpm)
	}
	return &BlockClockless{
		port:       port,
		lanes:      lanes,
		mask:       uint32(1)<<uint(lanes) - 1,
		clock:      board.Clock,
		interrupts: board.Interrupts,
		timing:     timing,
		t1:         t1,
		t2:         t2,
		t3:         t3,
		wait:       NewMinWait(board.Clock, timing.Latch),
	}, nil
}

//Lanes is the configured lane count.
func (d *BlockClockless) Lanes() int {
	return d.lanes
}

//Mask is the set of port bits the driver writes.
func (d *BlockClockless) Mask() uint32 {
	return d.mask
}

//Init configures the lane bits as outputs and drives them low.
func (d *BlockClockless) Init() {
	d.port.ConfigureOutput(d.mask)
	d.port.Clear(d.mask)
}

//ShowPixels sends pc split into the configured number of lanes.
func (d *BlockClockless) ShowPixels(pc *PixelController) {
	if d == nil || d.port == nil {
		return
	}
	m := NewMultiPixelController(pc, d.lanes)
	d.wait.Wait()
	d.send(&m)
	d.wait.Mark()
}

func (d *BlockClockless) send(m *MultiPixelController) {
	defer critical(d.interrupts)()

	next := d.clock.Now()
	for m.Has(1) {
		for slot := 0; slot < 3; slot++ {
			rows := Transpose8(m.LoadAndScale(slot))
			for _, row := range rows {
				next = d.writeRow(next, uint32(bits.Reverse8(row)))
			}
		}
		m.StepDithering()
		m.AdvanceData()
	}
}

//writeRow sends one bit of every lane. ones has bit i set when lane i sends a one.
func (d *BlockClockless) writeRow(next uint32, ones uint32) uint32 {
	waitUntil(d.clock, next)
	d.port.Set(d.mask)
	waitUntil(d.clock, next+d.t1)
	if zeros := ^ones & d.mask; zeros != 0 {
		d.port.Clear(zeros)
	}
	waitUntil(d.clock, next+d.t1+d.t2)
	d.port.Clear(d.mask)
	return next + d.t1 + d.t2 + d.t3
}
