package ledwire

import "strings"

//ClocklessCriticalPath is the number of cycles one bit of the clockless drivers needs for itself:
//three deadline checks, two line writes and the bit test. A bit period shorter than this cannot
//be produced.
const ClocklessCriticalPath = 10

//MinClockHz is the slowest target clock supported. Every catalog entry below must fit its
//critical path at this frequency, so it fits at any faster one too.
const MinClockHz = 16000000

const minCyclesPerMicrosecond = MinClockHz / 1000000

// Bit windows in nanoseconds: T1 high for every bit, T2 extra high for a one, T3 low.
const (
	ws2812T1, ws2812T2, ws2812T3          = 250, 625, 375
	ws2811T1, ws2811T2, ws2811T3          = 320, 320, 640
	ws2811400T1, ws2811400T2, ws2811400T3 = 800, 800, 900
	sk6812T1, sk6812T2, sk6812T3          = 300, 600, 300
	tm1809T1, tm1809T2, tm1809T3          = 350, 350, 450
	tm1803T1, tm1803T2, tm1803T3          = 700, 1100, 700
	ucs1903T1, ucs1903T2, ucs1903T3       = 500, 1500, 500
	gw6205T1, gw6205T2, gw6205T3          = 800, 800, 800
	lpd1886T1, lpd1886T2, lpd1886T3       = 200, 400, 200
)

// Build time check: a negative value does not fit into uint and breaks the build.
const (
	_ uint = ((ws2812T1+ws2812T2+ws2812T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((ws2811T1+ws2811T2+ws2811T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((ws2811400T1+ws2811400T2+ws2811400T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((sk6812T1+sk6812T2+sk6812T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((tm1809T1+tm1809T2+tm1809T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((tm1803T1+tm1803T2+tm1803T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((ucs1903T1+ucs1903T2+ucs1903T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((gw6205T1+gw6205T2+gw6205T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
	_ uint = ((lpd1886T1+lpd1886T2+lpd1886T3)*minCyclesPerMicrosecond+999)/1000 - ClocklessCriticalPath
)

//Timing describes the pulse shape of one clockless bit in nanoseconds and the latch time in
//microseconds the chipset needs before a new frame.
type Timing struct {
	T1, T2, T3 uint32
	Latch      uint32
}

// Clockless chipsets.
var (
	WS2812    = Timing{T1: ws2812T1, T2: ws2812T2, T3: ws2812T3, Latch: 280}
	WS2812B   = WS2812
	WS2811    = Timing{T1: ws2811T1, T2: ws2811T2, T3: ws2811T3, Latch: 50}
	WS2811400 = Timing{T1: ws2811400T1, T2: ws2811400T2, T3: ws2811400T3, Latch: 50}
	SK6812    = Timing{T1: sk6812T1, T2: sk6812T2, T3: sk6812T3, Latch: 80}
	TM1809    = Timing{T1: tm1809T1, T2: tm1809T2, T3: tm1809T3, Latch: 50}
	TM1804    = TM1809
	TM1803    = Timing{T1: tm1803T1, T2: tm1803T2, T3: tm1803T3, Latch: 50}
	UCS1903   = Timing{T1: ucs1903T1, T2: ucs1903T2, T3: ucs1903T3, Latch: 50}
	GW6205    = Timing{T1: gw6205T1, T2: gw6205T2, T3: gw6205T3, Latch: 50}
	LPD1886   = Timing{T1: lpd1886T1, T2: lpd1886T2, T3: lpd1886T3, Latch: 50}
)

//Period is the length of one bit in nanoseconds.
func (t Timing) Period() uint32 {
	return t.T1 + t.T2 + t.T3
}

//Cycles converts the three windows to cycles of a counter running at cyclesPerMicrosecond.
//Each window is rounded up. The result is infeasible when the whole period does not cover
//ClocklessCriticalPath.
func (t Timing) Cycles(cyclesPerMicrosecond uint32) (t1, t2, t3 uint32, ok bool) {
	t1 = nsToCycles(t.T1, cyclesPerMicrosecond)
	t2 = nsToCycles(t.T2, cyclesPerMicrosecond)
	t3 = nsToCycles(t.T3, cyclesPerMicrosecond)
	return t1, t2, t3, t1 > 0 && nsToCycles(t.Period(), cyclesPerMicrosecond) >= ClocklessCriticalPath
}

//Feasible reports whether t can be produced by a counter running at cyclesPerMicrosecond.
func (t Timing) Feasible(cyclesPerMicrosecond uint32) bool {
	_, _, _, ok := t.Cycles(cyclesPerMicrosecond)
	return ok
}

type clocklessEntry struct {
	timing Timing
	order  Order
}

var clocklessChipsets = map[string]clocklessEntry{
	"WS2812":    {WS2812, OrderGRB},
	"WS2812B":   {WS2812B, OrderGRB},
	"NEOPIXEL":  {WS2812, OrderGRB},
	"WS2811":    {WS2811, OrderRGB},
	"WS2811400": {WS2811400, OrderRGB},
	"SK6812":    {SK6812, OrderGRB},
	"TM1809":    {TM1809, OrderRGB},
	"TM1804":    {TM1804, OrderRGB},
	"TM1803":    {TM1803, OrderRGB},
	"UCS1903":   {UCS1903, OrderRGB},
	"GW6205":    {GW6205, OrderRGB},
	"LPD1886":   {LPD1886, OrderRGB},
}

//LookupClockless returns the timing and the usual byte order of the clockless chipset name.
func LookupClockless(name string) (Timing, Order, bool) {
	e, ok := clocklessChipsets[strings.ToUpper(name)]
	return e.timing, e.order, ok
}

//ClockedKind selects one of the clocked chipset drivers.
type ClockedKind uint8

//Valid ClockedKinds
const (
	KindWS2801 ClockedKind = iota + 1
	KindLPD8806
	KindAPA102
	KindSK9822
	KindP9813
)

var clockedChipsets = map[string]struct {
	kind  ClockedKind
	order Order
}{
	"WS2801":  {KindWS2801, OrderRGB},
	"WS2803":  {KindWS2801, OrderRGB},
	"LPD8806": {KindLPD8806, OrderGRB},
	"APA102":  {KindAPA102, OrderBGR},
	"DOTSTAR": {KindAPA102, OrderBGR},
	"SK9822":  {KindSK9822, OrderBGR},
	"P9813":   {KindP9813, OrderRGB},
}

//LookupClocked returns the kind and usual byte order of the clocked chipset name.
func LookupClocked(name string) (ClockedKind, Order, bool) {
	e, ok := clockedChipsets[strings.ToUpper(name)]
	return e.kind, e.order, ok
}

//NewClocked returns the driver of kind writing to out. Unknown kinds give the Null driver.
func NewClocked(kind ClockedKind, out *SPIOutput) Driver {
	if out == nil {
		logger.Warn().Msg("clocked chipset without output, strip stays dark")
		return Null{}
	}
	switch kind {
	case KindWS2801:
		return NewWS2801(out)
	case KindLPD8806:
		return NewLPD8806(out)
	case KindAPA102:
		return NewAPA102(out)
	case KindSK9822:
		return NewSK9822(out)
	case KindP9813:
		return NewP9813(out)
	}
	logger.Warn().Uint8("kind", uint8(kind)).Msg("unknown clocked chipset, strip stays dark")
	return Null{}
}
