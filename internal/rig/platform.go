package rig

import (
	"strconv"
	"strings"

	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/ledwire/cdev"
	"github.com/DerLukas15/ledwire/hosted"
	"github.com/DerLukas15/ledwire/internal/config"
	"github.com/DerLukas15/ledwire/periphio"
	"github.com/DerLukas15/ledwire/rpi"
	"github.com/DerLukas15/ledwire/sim"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
)

// Errors
var (
	ErrNoPortSupport = errors.New("platform has no parallel port")
	ErrPinName       = errors.New("pin name not understood")
)

//Platform hands out the hardware a strip needs.
type Platform interface {
	Name() string
	Board() ledwire.Board
	Pin(name string) (ledwire.Pin, error)
	//Port returns a port whose lane i is the i-th pin of pins. Platforms with a fixed lane map
	//ignore pins.
	Port(pins string, lanes int) (ledwire.Port, error)
	SPI(dev string, hz int64) (ledwire.SPIConn, error)
	Close() error
}

//Open returns the platform named in c.
func Open(c *config.Config) (Platform, error) {
	switch strings.ToLower(c.Platform) {
	case config.PlatformSim:
		cpm := c.Sim.CyclesPerUs
		if cpm == 0 {
			cpm = 64
		}
		return NewSim(cpm), nil
	case config.PlatformRPi:
		if err := rpi.Initialize(); err != nil {
			return nil, err
		}
		return &rpiPlatform{board: hosted.Board()}, nil
	case config.PlatformCdev:
		return &cdevPlatform{chip: c.Chip, board: hosted.Board()}, nil
	case config.PlatformPeriph:
		if err := periphio.Init(); err != nil {
			return nil, err
		}
		return &periphPlatform{board: hosted.Board()}, nil
	}
	return nil, errors.Wrapf(config.ErrUnknownPlatform, "%q", c.Platform)
}

//Sim is the simulated platform. It keeps the simulated board so frames can be decoded.
type Sim struct {
	Sim *sim.Board
	spi map[string]*sim.SPI
}

//NewSim returns a simulated platform running at cyclesPerMicrosecond.
func NewSim(cyclesPerMicrosecond uint32) *Sim {
	return &Sim{Sim: sim.NewBoard(cyclesPerMicrosecond), spi: make(map[string]*sim.SPI)}
}

func (s *Sim) Name() string { return config.PlatformSim }

func (s *Sim) Board() ledwire.Board { return s.Sim.LedBoard() }

func (s *Sim) Pin(name string) (ledwire.Pin, error) {
	if name == "" {
		return nil, ErrPinName
	}
	return s.Sim.Pin(name), nil
}

func (s *Sim) Port(string, int) (ledwire.Port, error) {
	return s.Sim.Port(), nil
}

func (s *Sim) SPI(dev string, hz int64) (ledwire.SPIConn, error) {
	conn, ok := s.spi[dev]
	if !ok {
		conn = &sim.SPI{}
		s.spi[dev] = conn
	}
	return conn, nil
}

//SPIDevice returns the recorder behind dev, nil if none was opened.
func (s *Sim) SPIDevice(dev string) *sim.SPI {
	return s.spi[dev]
}

func (s *Sim) Close() error { return nil }

type rpiPlatform struct {
	board ledwire.Board
}

func (p *rpiPlatform) Name() string { return config.PlatformRPi }

func (p *rpiPlatform) Board() ledwire.Board { return p.board }

func (p *rpiPlatform) Pin(name string) (ledwire.Pin, error) {
	gpio, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(name), "GPIO"), 10, 32)
	if err != nil {
		return nil, errors.Wrapf(ErrPinName, "%q", name)
	}
	return rpi.NewPin(uint32(gpio))
}

func (p *rpiPlatform) Port(string, int) (ledwire.Port, error) {
	return rpi.NewPort()
}

func (p *rpiPlatform) SPI(dev string, hz int64) (ledwire.SPIConn, error) {
	return periphio.OpenSPI(dev, physic.Frequency(hz)*physic.Hertz)
}

func (p *rpiPlatform) Close() error {
	return rpi.Cleanup()
}

type cdevPlatform struct {
	chip  string
	board ledwire.Board
}

func (p *cdevPlatform) Name() string { return config.PlatformCdev }

func (p *cdevPlatform) Board() ledwire.Board { return p.board }

func (p *cdevPlatform) Pin(name string) (ledwire.Pin, error) {
	offset, err := strconv.Atoi(name)
	if err != nil {
		return nil, errors.Wrapf(ErrPinName, "%q", name)
	}
	return cdev.NewPin(p.chip, offset)
}

func (p *cdevPlatform) Port(pins string, lanes int) (ledwire.Port, error) {
	offsets, err := parseOffsets(pins)
	if err != nil {
		return nil, err
	}
	if len(offsets) != lanes {
		return nil, errors.Wrapf(ledwire.ErrWrongLaneCount, "%d pins for %d lanes", len(offsets), lanes)
	}
	return cdev.NewPort(p.chip, offsets)
}

func (p *cdevPlatform) SPI(dev string, hz int64) (ledwire.SPIConn, error) {
	return periphio.OpenSPI(dev, physic.Frequency(hz)*physic.Hertz)
}

func (p *cdevPlatform) Close() error { return nil }

type periphPlatform struct {
	board ledwire.Board
}

func (p *periphPlatform) Name() string { return config.PlatformPeriph }

func (p *periphPlatform) Board() ledwire.Board { return p.board }

func (p *periphPlatform) Pin(name string) (ledwire.Pin, error) {
	return periphio.NewPin(name)
}

func (p *periphPlatform) Port(string, int) (ledwire.Port, error) {
	return nil, ErrNoPortSupport
}

func (p *periphPlatform) SPI(dev string, hz int64) (ledwire.SPIConn, error) {
	return periphio.OpenSPI(dev, physic.Frequency(hz)*physic.Hertz)
}

func (p *periphPlatform) Close() error { return nil }

//parseOffsets reads a comma separated list of line offsets.
func parseOffsets(pins string) ([]int, error) {
	var offsets []int
	for _, f := range strings.Split(pins, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		o, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrPinName, "%q", f)
		}
		offsets = append(offsets, o)
	}
	return offsets, nil
}
