//Package rpi drives ledwire pins and ports straight through the GPIO registers of a Raspberry Pi.
/*
The GPIO block is mapped once by Initialize. Pin and Port then write the set and clear
registers directly, which is the only way to get clockless timing out of user space.

Interrupts cannot be disabled from user space. Use the hosted package for the counter and the
frame lock, and keep the strips short enough for the scheduler to leave a frame alone.
*/
package rpi

import (
	"errors"
	"os"

	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/rpigpio"
	"github.com/DerLukas15/rpihardware"
	"github.com/DerLukas15/rpimemmap"
	pkgerrors "github.com/pkg/errors"
)

// Errors
var (
	ErrNotInitialized = errors.New("gpio registers not mapped")
	ErrPinNotAllowed  = errors.New("pin not allowed")
)

const (
	registerGPIOBusOffset  uint32 = 0x00200000
	registerTimerBusOffset uint32 = 0x00003000

	//GPIO register offsets
	registerOffsetGPSet0 uint32 = 0x1c // Output set, pins 0-31
	registerOffsetGPClr0 uint32 = 0x28 // Output clear, pins 0-31
	registerOffsetGPLev0 uint32 = 0x34 // Level, pins 0-31

	//System timer register offsets
	registerOffsetTimerCLO uint32 = 0x04 // Counter, lower 32 bits
)

var (
	gpioRegisterMem  rpimemmap.MemMap //stores reference to gpio device
	timerRegisterMem rpimemmap.MemMap //stores reference to system timer
	curHardware      *rpihardware.Hardware
)

//Initialize checks the board and maps the GPIO and timer registers. Calling it again does nothing.
func Initialize() error {
	log := ledwire.Logger()
	if gpioRegisterMem != nil {
		log.Debug().Msg("gpio already initialized, skipping")
		return nil
	}
	err := rpigpio.Initialize()
	if err != nil {
		return pkgerrors.Wrap(err, "rpi initialize")
	}
	curHardware, err = rpihardware.Check()
	if err != nil {
		return pkgerrors.Wrap(err, "rpi initialize")
	}
	mem := rpimemmap.NewPeripheral(uint32(os.Getpagesize()))
	if err := mem.Map(registerGPIOBusOffset, rpimemmap.MemDevDefault, 0); err != nil {
		return pkgerrors.Wrap(err, "rpi map gpio")
	}
	gpioRegisterMem = mem
	log.Debug().Str("mem", gpioRegisterMem.String()).Msg("gpio mapped")

	mem = rpimemmap.NewPeripheral(uint32(os.Getpagesize()))
	if err := mem.Map(registerTimerBusOffset, rpimemmap.MemDevDefault, 0); err != nil {
		return pkgerrors.Wrap(err, "rpi map timer")
	}
	timerRegisterMem = mem
	log.Debug().Str("mem", timerRegisterMem.String()).Msg("system timer mapped")
	return nil
}

//Hardware returns the board found by Initialize, nil before.
func Hardware() *rpihardware.Hardware {
	return curHardware
}

//Cleanup unmaps the registers.
func Cleanup() error {
	if gpioRegisterMem != nil {
		if err := gpioRegisterMem.Unmap(); err != nil {
			return pkgerrors.Wrap(err, "rpi cleanup gpio")
		}
		gpioRegisterMem = nil
	}
	if timerRegisterMem != nil {
		if err := timerRegisterMem.Unmap(); err != nil {
			return pkgerrors.Wrap(err, "rpi cleanup timer")
		}
		timerRegisterMem = nil
	}
	return nil
}

func gpioSet(mask uint32) {
	*rpimemmap.Reg32(gpioRegisterMem, registerOffsetGPSet0) = mask
}

func gpioClear(mask uint32) {
	*rpimemmap.Reg32(gpioRegisterMem, registerOffsetGPClr0) = mask
}

func gpioLevel() uint32 {
	return *rpimemmap.Reg32(gpioRegisterMem, registerOffsetGPLev0)
}

//Timer is the 1MHz BCM system timer. It is fine for frame pacing but too slow for clockless bits.
type Timer struct{}

//NewTimer returns the system timer. Initialize must have been called.
func NewTimer() (*Timer, error) {
	if timerRegisterMem == nil {
		return nil, pkgerrors.Wrap(ErrNotInitialized, "rpi timer")
	}
	return &Timer{}, nil
}

//Now implements ledwire.CycleCounter.
func (Timer) Now() uint32 {
	return *rpimemmap.Reg32(timerRegisterMem, registerOffsetTimerCLO)
}

//CyclesPerMicrosecond implements ledwire.CycleCounter.
func (Timer) CyclesPerMicrosecond() uint32 {
	return 1
}
