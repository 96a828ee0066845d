//Package periphio adapts periph.io pins and SPI ports to ledwire.
package periphio

import (
	"github.com/DerLukas15/ledwire"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Errors
var (
	ErrPinNotFound = errors.New("pin not found")
)

//Init loads the periph host drivers.
func Init() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	return nil
}

//Pin is a periph output pin.
type Pin struct {
	out gpio.PinOut
}

//WrapPin returns out as a ledwire.Pin.
func WrapPin(out gpio.PinOut) *Pin {
	return &Pin{out: out}
}

//NewPin looks up the pin called name, for example "GPIO18".
func NewPin(name string) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Wrap(ErrPinNotFound, name)
	}
	return WrapPin(p), nil
}

//ConfigureOutput implements ledwire.Pin. Periph pins become outputs on their first write.
func (p *Pin) ConfigureOutput() {
	p.set(gpio.Low)
}

//High implements ledwire.Pin.
func (p *Pin) High() {
	p.set(gpio.High)
}

//Low implements ledwire.Pin.
func (p *Pin) Low() {
	p.set(gpio.Low)
}

func (p *Pin) set(l gpio.Level) {
	if err := p.out.Out(l); err != nil {
		log := ledwire.Logger()
		log.Warn().Err(err).Str("pin", p.out.Name()).Msg("periph pin write failed")
	}
}

//SPI is a hardware SPI connection for the clocked ledwire drivers.
type SPI struct {
	conn spi.Conn
	port spi.PortCloser
}

//Connect opens a mode 0, 8 bit connection at f on port.
func Connect(port spi.PortCloser, f physic.Frequency) (*SPI, error) {
	conn, err := port.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, errors.Wrapf(err, "spi connect at %s", f)
	}
	return &SPI{conn: conn, port: port}, nil
}

//OpenSPI opens the SPI port called name ("" for the first one) at f.
func OpenSPI(name string, f physic.Frequency) (*SPI, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "spi open %q", name)
	}
	s, err := Connect(port, f)
	if err != nil {
		port.Close()
		return nil, err
	}
	return s, nil
}

//Tx implements ledwire.SPIConn.
func (s *SPI) Tx(w, r []byte) error {
	return s.conn.Tx(w, r)
}

//Close closes the port.
func (s *SPI) Close() error {
	return s.port.Close()
}
