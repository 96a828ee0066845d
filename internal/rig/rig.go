//Package rig builds a ledwire Registry out of a configuration.
package rig

import (
	"github.com/DerLukas15/ledwire"
	"github.com/DerLukas15/ledwire/internal/config"
	"github.com/DerLukas15/ledwire/sim"
	"github.com/pkg/errors"
)

//Strip is one configured controller together with its buffer.
type Strip struct {
	Name       string
	Chipset    string
	Leds       ledwire.Strip
	Controller *ledwire.Controller

	timing  ledwire.Timing
	kind    ledwire.ClockedKind
	lanes   int
	pin     string
	clk     string
	spiDev  string
	unknown bool
}

//Rig is a built configuration.
type Rig struct {
	Platform Platform
	Registry *ledwire.Registry
	Strips   []*Strip
}

//Build opens the platform and builds every strip of c.
func Build(c *config.Config) (*Rig, error) {
	p, err := Open(c)
	if err != nil {
		return nil, err
	}
	r, err := BuildOn(p, c)
	if err != nil {
		p.Close()
		return nil, err
	}
	return r, nil
}

//BuildOn builds every strip of c on p.
//
//Hardware that cannot be claimed is an error. A chipset that is unknown or cannot be timed on
//the platform gives a dark strip and a warning instead.
func BuildOn(p Platform, c *config.Config) (*Rig, error) {
	log := ledwire.Logger()
	board := p.Board()
	r := &Rig{Platform: p, Registry: ledwire.NewRegistry(board.Clock)}
	for _, sc := range c.Strips {
		s, err := r.buildStrip(sc)
		if err != nil {
			return nil, errors.Wrapf(err, "strip %s", sc.Name)
		}
		r.Registry.AddLeds(s.Controller, s.Leds)
		r.Strips = append(r.Strips, s)
		log.Info().Str("strip", s.Name).Str("chipset", s.Chipset).Int("leds", len(s.Leds)).Stringer("order", s.Controller.Order()).Msg("strip ready")
	}

	r.Registry.SetBrightness(c.Brightness)
	r.Registry.SetMaxRefreshRate(c.MaxRefreshRate)
	r.Registry.SetMaxPower(c.Power.Volts, c.Power.Milliamps)
	if c.Dither {
		r.Registry.SetDither(ledwire.BinaryDither)
	} else {
		r.Registry.SetDither(ledwire.DisableDither)
	}
	if c.Correction != "" {
		corr, err := ledwire.ParseColor(c.Correction)
		if err != nil {
			return nil, errors.Wrap(err, "correction")
		}
		r.Registry.SetCorrection(corr)
	}
	if c.Temperature != "" {
		temp, err := ledwire.ParseColor(c.Temperature)
		if err != nil {
			return nil, errors.Wrap(err, "temperature")
		}
		r.Registry.SetTemperature(temp)
	}
	return r, nil
}

func (r *Rig) buildStrip(sc config.Strip) (*Strip, error) {
	log := ledwire.Logger()
	board := r.Platform.Board()
	s := &Strip{
		Name:    sc.Name,
		Chipset: sc.Chipset,
		Leds:    ledwire.NewStrip(sc.Pixels()),
		lanes:   sc.Lanes,
		pin:     sc.Pin,
		clk:     sc.ClockPin,
		spiDev:  sc.SPIDev,
	}

	var drv ledwire.Driver
	var order ledwire.Order
	if timing, o, ok := ledwire.LookupClockless(sc.Chipset); ok {
		order = o
		s.timing = timing
		var err error
		drv, err = r.clockless(sc, timing, board)
		if errors.Cause(err) == ledwire.ErrTimingInfeasible {
			log.Warn().Err(err).Str("strip", sc.Name).Msg("chipset cannot be timed on this platform, strip stays dark")
			drv = ledwire.Null{}
		} else if err != nil {
			return nil, err
		}
	} else if kind, o, ok := ledwire.LookupClocked(sc.Chipset); ok {
		order = o
		s.kind = kind
		out, err := r.spiOutput(sc, board)
		if err != nil {
			return nil, err
		}
		drv = ledwire.NewClocked(kind, out)
	} else {
		log.Warn().Err(ledwire.ErrUnknownChipset).Str("strip", sc.Name).Str("chipset", sc.Chipset).Msg("strip stays dark")
		s.unknown = true
		order = ledwire.OrderRGB
	}

	if sc.Order != "" {
		o, err := ledwire.ParseOrder(sc.Order)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", sc.Order)
		}
		order = o
	}
	s.Controller = ledwire.NewController(drv, order)
	return s, nil
}

func (r *Rig) clockless(sc config.Strip, timing ledwire.Timing, board ledwire.Board) (ledwire.Driver, error) {
	if sc.Lanes > 1 {
		port, err := r.Platform.Port(sc.Pin, sc.Lanes)
		if err != nil {
			return nil, err
		}
		return ledwire.NewBlockClockless(port, sc.Lanes, board, timing)
	}
	pin, err := r.Platform.Pin(sc.Pin)
	if err != nil {
		return nil, err
	}
	return ledwire.NewClockless(pin, board, timing)
}

func (r *Rig) spiOutput(sc config.Strip, board ledwire.Board) (*ledwire.SPIOutput, error) {
	var out *ledwire.SPIOutput
	if sc.SPIDev != "" {
		hz := sc.SpeedHz
		if hz == 0 {
			hz = 1000000
		}
		conn, err := r.Platform.SPI(sc.SPIDev, hz)
		if err != nil {
			return nil, err
		}
		out, err = ledwire.NewHardwareSPIOutput(conn, board)
		if err != nil {
			return nil, err
		}
	} else {
		data, err := r.Platform.Pin(sc.Pin)
		if err != nil {
			return nil, err
		}
		clk, err := r.Platform.Pin(sc.ClockPin)
		if err != nil {
			return nil, err
		}
		var divisor uint32
		if sc.SpeedHz > 0 && board.Clock != nil {
			divisor = ledwire.DataRateMHz(uint32((sc.SpeedHz+999999)/1000000), board.Clock.CyclesPerMicrosecond())
		}
		out, err = ledwire.NewSPIOutput(data, clk, board, divisor)
		if err != nil {
			return nil, err
		}
	}
	if sc.SelectPin != "" {
		sel, err := r.Platform.Pin(sc.SelectPin)
		if err != nil {
			return nil, err
		}
		out.SetSelect(sel)
	}
	return out, nil
}

//Strip returns the strip called name or nil.
func (r *Rig) Strip(name string) *Strip {
	for _, s := range r.Strips {
		if s.Name == name {
			return s
		}
	}
	return nil
}

//Close switches all strips off and releases the platform.
func (r *Rig) Close() error {
	r.Registry.Clear(true)
	return r.Platform.Close()
}

//Wire returns the pixels of s as they were last seen on the simulated wire, per lane, already
//stripped of chipset framing and brought back into RGB order. Recordings are reset afterwards.
//It returns nil on real hardware.
func (r *Rig) Wire(s *Strip) [][]ledwire.RGB {
	p, ok := r.Platform.(*Sim)
	if !ok || s.unknown {
		return nil
	}
	order := s.Controller.Order()
	cpm := p.Sim.Clock.CyclesPerMicrosecond()
	switch {
	case s.timing.T1 != 0 && s.lanes > 1:
		port := p.Sim.Port()
		threshold := nrzThreshold(s.timing, cpm)
		lanes := sim.DecodeLanes(port, s.lanes, threshold)
		port.Reset()
		out := make([][]ledwire.RGB, len(lanes))
		for i, b := range lanes {
			out[i] = Unpack(b, order)
		}
		return out
	case s.timing.T1 != 0:
		pin := p.Sim.Pin(s.pin)
		b := sim.DecodeNRZ(pin.Edges(), nrzThreshold(s.timing, cpm))
		pin.Reset()
		return [][]ledwire.RGB{Unpack(b, order)}
	case s.kind != 0:
		var b []byte
		if s.spiDev != "" {
			dev := p.SPIDevice(s.spiDev)
			if dev == nil {
				return nil
			}
			b = dev.Last()
			dev.Transfers = nil
		} else {
			data, clk := p.Sim.Pin(s.pin), p.Sim.Pin(s.clk)
			b = sim.DecodeClocked(data, clk)
			data.Reset()
			clk.Reset()
		}
		return [][]ledwire.RGB{Unpack(Unframe(s.kind, b, len(s.Leds)), order)}
	}
	return nil
}

//Discard forgets everything recorded on the simulated wire. Programs that never call Wire
//call it once per frame so the recordings stay bounded. It does nothing on real hardware.
func (r *Rig) Discard() {
	p, ok := r.Platform.(*Sim)
	if !ok {
		return
	}
	p.Sim.Reset()
	for _, dev := range p.spi {
		dev.Transfers = nil
	}
}

//nrzThreshold is halfway between the high time of a zero and of a one.
func nrzThreshold(t ledwire.Timing, cpm uint32) uint32 {
	t1, t2, _, _ := t.Cycles(cpm)
	return t1 + t2/2
}
