package periphio

import (
	"bytes"
	"testing"

	"github.com/DerLukas15/ledwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestPin(t *testing.T) {
	raw := &gpiotest.Pin{N: "GPIO18", Num: 18}
	var p ledwire.Pin = WrapPin(raw)

	p.ConfigureOutput()
	assert.Equal(t, gpio.Low, raw.Read())
	p.High()
	assert.Equal(t, gpio.High, raw.Read())
	p.Low()
	assert.Equal(t, gpio.Low, raw.Read())
}

func TestNewPinUnknown(t *testing.T) {
	_, err := NewPin("NOT_A_PIN")
	assert.Error(t, err)
}

func TestSPIDrivesClockedChipset(t *testing.T) {
	var buf bytes.Buffer
	s, err := Connect(spitest.NewRecordRaw(&buf), 4*physic.MegaHertz)
	require.NoError(t, err)
	defer s.Close()

	out, err := ledwire.NewHardwareSPIOutput(s, ledwire.Board{})
	require.NoError(t, err)
	c := ledwire.NewController(ledwire.NewWS2801(out), ledwire.OrderRGB).SetDither(ledwire.DisableDither)
	c.Show([]ledwire.RGB{{R: 1, G: 2, B: 3}}, 1, 255)
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())
}
