//Package cdev provides ledwire pins and ports on the Linux GPIO character device.
//
//Every write is a system call, so this is too slow for clockless chipsets on most boards. It is
//meant for clocked strips and for checking wiring.
package cdev

import (
	"github.com/DerLukas15/ledwire"
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
)

//DefaultChip is the chip used when none is given.
const DefaultChip = "gpiochip0"

//Pin is one requested line.
type Pin struct {
	line *gpiocdev.Line
}

//NewPin requests offset on chip as an output driven low.
func NewPin(chip string, offset int) (*Pin, error) {
	if chip == "" {
		chip = DefaultChip
	}
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, errors.Wrapf(err, "cdev request %s:%d", chip, offset)
	}
	return &Pin{line: line}, nil
}

//ConfigureOutput implements ledwire.Pin. The line is already an output once requested.
func (p *Pin) ConfigureOutput() {}

//High implements ledwire.Pin.
func (p *Pin) High() {
	p.set(1)
}

//Low implements ledwire.Pin.
func (p *Pin) Low() {
	p.set(0)
}

func (p *Pin) set(v int) {
	if err := p.line.SetValue(v); err != nil {
		log := ledwire.Logger()
		log.Warn().Err(err).Int("value", v).Msg("cdev set value failed")
	}
}

//Close releases the line.
func (p *Pin) Close() error {
	return p.line.Close()
}

//Port drives several lines together. Lane i of the port is the i-th requested offset.
type Port struct {
	lines  *gpiocdev.Lines
	count  int
	value  uint32
	values []int
}

//NewPort requests offsets on chip as outputs driven low.
func NewPort(chip string, offsets []int) (*Port, error) {
	if chip == "" {
		chip = DefaultChip
	}
	if len(offsets) < 1 || len(offsets) > ledwire.MaxLanes {
		return nil, errors.Wrapf(ledwire.ErrWrongLaneCount, "cdev port with %d lines", len(offsets))
	}
	lines, err := gpiocdev.RequestLines(chip, offsets, gpiocdev.AsOutput(make([]int, len(offsets))...))
	if err != nil {
		return nil, errors.Wrapf(err, "cdev request %s:%v", chip, offsets)
	}
	return &Port{lines: lines, count: len(offsets), values: make([]int, len(offsets))}, nil
}

//ConfigureOutput implements ledwire.Port. The lines are already outputs once requested.
func (p *Port) ConfigureOutput(uint32) {}

//Set implements ledwire.Port.
func (p *Port) Set(mask uint32) {
	p.Write(p.value | mask)
}

//Clear implements ledwire.Port.
func (p *Port) Clear(mask uint32) {
	p.Write(p.value &^ mask)
}

//Read implements ledwire.Port. It returns the last written value.
func (p *Port) Read() uint32 {
	return p.value
}

//Write implements ledwire.Port. Bits at and above the number of lines are dropped.
func (p *Port) Write(value uint32) {
	value &= uint32(1)<<uint(p.count) - 1
	if value == p.value {
		return
	}
	p.value = value
	for i := range p.values {
		p.values[i] = int(value>>uint(i)) & 1
	}
	if err := p.lines.SetValues(p.values); err != nil {
		log := ledwire.Logger()
		log.Warn().Err(err).Uint32("value", value).Msg("cdev set values failed")
	}
}

//Close releases the lines.
func (p *Port) Close() error {
	return p.lines.Close()
}
