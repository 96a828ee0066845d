//Package ledwire turns buffers of pixel colors into the signals addressable LED strips expect.
//
//Drivers are bit-banged against a free running cycle counter (clockless chipsets), streamed over
//a data and clock pair (clocked chipsets) or emitted on several lanes of one port at once. All
//controllers are collected in a Registry which applies brightness, color correction, color
//temperature and dithering uniformly.
package ledwire

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Errors. They are only ever returned while building drivers, never while showing frames.
var (
	ErrTimingInfeasible = errors.New("timing below driver critical path")
	ErrWrongLaneCount   = errors.New("lane count must be between 1 and 8")
	ErrNoPin            = errors.New("pin not set")
	ErrNoPort           = errors.New("port not set")
	ErrNoClock          = errors.New("cycle counter not set")
	ErrUnknownChipset   = errors.New("unknown chipset")
	ErrWrongOrder       = errors.New("unknown byte order")
	ErrWrongColor       = errors.New("color must be 0xRRGGBB or a known name")
)

//Order is the physical transmission order of the three logical channels.
//Each octal digit names the logical channel (0 red, 1 green, 2 blue) sent in that slot.
type Order uint16

//Valid Orders
const (
	OrderRGB Order = 0o012
	OrderRBG Order = 0o021
	OrderGRB Order = 0o102
	OrderGBR Order = 0o120
	OrderBRG Order = 0o201
	OrderBGR Order = 0o210
)

var orderNames = map[string]Order{
	"RGB": OrderRGB,
	"RBG": OrderRBG,
	"GRB": OrderGRB,
	"GBR": OrderGBR,
	"BRG": OrderBRG,
	"BGR": OrderBGR,
}

//ParseOrder returns the Order called name.
func ParseOrder(name string) (Order, error) {
	o, ok := orderNames[strings.ToUpper(name)]
	if !ok {
		return 0, ErrWrongOrder
	}
	return o, nil
}

//Channel returns the logical channel transmitted in slot (0..2).
func (o Order) Channel(slot int) int {
	return int(o>>(3*(2-uint(slot)))) & 7
}

func (o Order) String() string {
	names := [3]byte{'R', 'G', 'B'}
	return string([]byte{names[o.Channel(0)], names[o.Channel(1)], names[o.Channel(2)]})
}

//DitherMode selects how quantisation error is handled.
type DitherMode uint8

//Valid DitherModes
const (
	DisableDither DitherMode = iota
	BinaryDither
)

var logger = zerolog.Nop()

//SetLogger installs the diagnostic channel. Nothing is logged unless this is called.
func SetLogger(l zerolog.Logger) {
	logger = l
}

//Logger returns the diagnostic channel.
func Logger() *zerolog.Logger {
	return &logger
}
