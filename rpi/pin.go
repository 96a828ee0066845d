package rpi

import (
	"github.com/DerLukas15/rpigpio"
	"github.com/pkg/errors"
)

/*
 * Lane map of the parallel driver. Lane i of a ledwire port is the GPIO in DefaultLanes[i].
 * The pins are on header positions 29, 31, 33, 35, 37, 36, 38, 40.
 * Lane    GPIO
 *  0       5
 *  1       6
 *  2      13
 *  3      19
 *  4      26
 *  5      16
 *  6      20
 *  7      21
 */

//Lanes maps port lanes to GPIO numbers.
type Lanes [8]uint32

//DefaultLanes is the lane map used by NewPort.
var DefaultLanes = Lanes{5, 6, 13, 19, 26, 16, 20, 21}

//Pin is one GPIO driven through the set and clear registers.
type Pin struct {
	pin  *rpigpio.Pin
	mask uint32
}

//NewPin returns the pin for gpio. Only the first bank of 32 pins is supported.
func NewPin(gpio uint32) (*Pin, error) {
	if gpioRegisterMem == nil {
		return nil, errors.Wrap(ErrNotInitialized, "rpi NewPin")
	}
	if gpio >= 32 {
		return nil, errors.Wrapf(ErrPinNotAllowed, "rpi NewPin %d", gpio)
	}
	p, err := rpigpio.NewPin(gpio)
	if err != nil {
		return nil, errors.Wrap(err, "rpi NewPin")
	}
	return &Pin{pin: p, mask: 1 << gpio}, nil
}

//ConfigureOutput implements ledwire.Pin.
func (p *Pin) ConfigureOutput() {
	p.pin.Mode(rpigpio.ModeOut)
}

//High implements ledwire.Pin.
func (p *Pin) High() {
	gpioSet(p.mask)
}

//Low implements ledwire.Pin.
func (p *Pin) Low() {
	gpioClear(p.mask)
}

//Release puts the pin back to a low output.
func (p *Pin) Release() {
	p.pin.Mode(rpigpio.ModeOut)
	p.pin.Set(0)
}

//Port drives up to eight lanes mapped onto GPIOs of the first bank.
type Port struct {
	lanes Lanes
	pins  [8]*rpigpio.Pin
	//lookup translates a lane mask into the GPIO mask
	lookup [256]uint32
}

//NewPort returns a Port using DefaultLanes.
func NewPort() (*Port, error) {
	return NewPortLanes(DefaultLanes)
}

//NewPortLanes returns a Port with lane i on GPIO lanes[i].
func NewPortLanes(lanes Lanes) (*Port, error) {
	if gpioRegisterMem == nil {
		return nil, errors.Wrap(ErrNotInitialized, "rpi NewPort")
	}
	p := &Port{lanes: lanes}
	for i, gpio := range lanes {
		if gpio >= 32 {
			return nil, errors.Wrapf(ErrPinNotAllowed, "rpi NewPort lane %d on %d", i, gpio)
		}
		pin, err := rpigpio.NewPin(gpio)
		if err != nil {
			return nil, errors.Wrap(err, "rpi NewPort")
		}
		p.pins[i] = pin
	}
	p.lookup = laneLookup(lanes)
	return p, nil
}

func laneLookup(lanes Lanes) [256]uint32 {
	var lookup [256]uint32
	for m := range lookup {
		for i, gpio := range lanes {
			if m&(1<<uint(i)) != 0 {
				lookup[m] |= 1 << gpio
			}
		}
	}
	return lookup
}

//ConfigureOutput implements ledwire.Port.
func (p *Port) ConfigureOutput(mask uint32) {
	for i, pin := range p.pins {
		if mask&(1<<uint(i)) != 0 {
			pin.Mode(rpigpio.ModeOut)
		}
	}
}

//Set implements ledwire.Port.
func (p *Port) Set(mask uint32) {
	gpioSet(p.lookup[mask&0xff])
}

//Clear implements ledwire.Port.
func (p *Port) Clear(mask uint32) {
	gpioClear(p.lookup[mask&0xff])
}

//Read implements ledwire.Port.
func (p *Port) Read() uint32 {
	level := gpioLevel()
	var v uint32
	for i, gpio := range p.lanes {
		if level&(1<<gpio) != 0 {
			v |= 1 << uint(i)
		}
	}
	return v
}

//Write implements ledwire.Port.
func (p *Port) Write(value uint32) {
	p.Set(value)
	p.Clear(^value)
}
