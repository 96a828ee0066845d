package ledwire

import "github.com/pkg/errors"

//Clockless drives a single wire chipset which encodes every bit as a pulse width.
//
//Each bit starts at a deadline: the line goes high, stays high for T1, stays high for another T2
//only for a one, and is low for T3. The next deadline is the previous one plus the period, never
//a fresh reading of the counter, so lateness does not add up along a long strip.
type Clockless struct {
	pin        Pin
	clock      CycleCounter
	interrupts Interrupts
	timing     Timing
	t1, t2, t3 uint32
	wait       *MinWait
}

//NewClockless returns a Clockless driver on pin with timing measured on board.Clock.
//Timings which cannot be produced at the counter rate are rejected here, before any frame.
func NewClockless(pin Pin, board Board, timing Timing) (*Clockless, error) {
	if pin == nil {
		return nil, errors.Wrap(ErrNoPin, "clockless")
	}
	if board.Clock == nil {
		return nil, errors.Wrap(ErrNoClock, "clockless")
	}
	cpm := board.Clock.CyclesPerMicrosecond()
	t1, t2, t3, ok := timing.Cycles(cpm)
	if !ok {
		return nil, errors.Wrapf(ErrTimingInfeasible, "clockless %d/%d/%dns at %d cycles/us", timing.T1, timing.T2, timing.T3, cpm)
	}
	return &Clockless{
		pin:        pin,
		clock:      board.Clock,
		interrupts: board.Interrupts,
		timing:     timing,
		t1:         t1,
		t2:         t2,
		t3:         t3,
		wait:       NewMinWait(board.Clock, timing.Latch),
	}, nil
}

//MustClockless is NewClockless for timings known to be valid. It panics otherwise.
func MustClockless(pin Pin, board Board, timing Timing) *Clockless {
	d, err := NewClockless(pin, board, timing)
	if err != nil {
		panic(err)
	}
	return d
}

//Timing returns the configured timing.
func (d *Clockless) Timing() Timing {
	return d.timing
}

//PeriodCycles is the bit period in counter cycles.
func (d *Clockless) PeriodCycles() uint32 {
	return d.t1 + d.t2 + d.t3
}

//Init claims the pin and drives it low.
func (d *Clockless) Init() {
	d.pin.ConfigureOutput()
	d.pin.Low()
}

//ShowPixels sends the frame after the latch time of the previous one has passed.
func (d *Clockless) ShowPixels(pc *PixelController) {
	if d == nil || d.pin == nil {
		return
	}
	d.wait.Wait()
	d.send(pc)
	d.wait.Mark()
}

func (d *Clockless) send(pc *PixelController) {
	defer critical(d.interrupts)()

	var b [3]byte
	next := d.clock.Now()
	for pc.Has(1) {
		pc.bytes3(&b)
		next = d.writeBits(next, b[0])
		next = d.writeBits(next, b[1])
		next = d.writeBits(next, b[2])
		pc.StepDithering()
		pc.AdvanceData()
	}
}

//writeBits sends b MSB first starting at deadline next and returns the deadline after it.
func (d *Clockless) writeBits(next uint32, b byte) uint32 {
	period := d.t1 + d.t2 + d.t3
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		waitUntil(d.clock, next)
		d.pin.High()
		waitUntil(d.clock, next+d.t1)
		if b&mask == 0 {
			d.pin.Low()
		}
		waitUntil(d.clock, next+d.t1+d.t2)
		d.pin.Low()
		next += period
	}
	return next
}
