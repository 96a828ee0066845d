package ledwire

import "github.com/pkg/errors"

//SPIConn is a full duplex byte transport, such as a periph spi.Conn.
type SPIConn interface {
	Tx(w, r []byte) error
}

//Adjuster shapes the bytes of a clocked chipset. Adjust maps every pixel byte on its way out,
//PostBlock runs after the last pixel of a frame of n pixels.
type Adjuster interface {
	Adjust(b byte) byte
	PostBlock(out *SPIOutput, n int)
}

//SPIOutput writes bytes to a clocked strip, either bit-banged on a data and a clock pin or
//through a hardware SPI connection. A frame is bracketed by Select and Release.
type SPIOutput struct {
	data, clk Pin
	sel       Pin
	conn      SPIConn
	board     Board
	half      uint32
	buf       []byte
	selected  bool
}

//NewSPIOutput returns a bit-banged SPIOutput. divisor is the number of counter cycles per clock
//period. A divisor of 0 clocks as fast as the pins allow.
func NewSPIOutput(data, clk Pin, board Board, divisor uint32) (*SPIOutput, error) {
	if data == nil || clk == nil {
		return nil, errors.Wrap(ErrNoPin, "spi output")
	}
	if divisor > 0 && board.Clock == nil {
		return nil, errors.Wrap(ErrNoClock, "spi output")
	}
	return &SPIOutput{data: data, clk: clk, board: board, half: divisor / 2}, nil
}

//NewHardwareSPIOutput returns an SPIOutput sending through conn. The bytes of a frame are
//collected and sent in one transfer on Release. board is only used for chipset wait times.
func NewHardwareSPIOutput(conn SPIConn, board Board) (*SPIOutput, error) {
	if conn == nil {
		return nil, errors.Wrap(ErrNoPort, "spi output")
	}
	return &SPIOutput{conn: conn, board: board}, nil
}

//DataRateMHz returns the bit-bang divisor giving roughly mhz at a counter of cyclesPerMicrosecond.
func DataRateMHz(mhz, cyclesPerMicrosecond uint32) uint32 {
	if mhz == 0 {
		return 0
	}
	return (cyclesPerMicrosecond + mhz - 1) / mhz
}

//SetSelect adds a chip select pin, held low while a frame is sent.
func (o *SPIOutput) SetSelect(sel Pin) *SPIOutput {
	o.sel = sel
	return o
}

//Board returns the timing capabilities the output was created with.
func (o *SPIOutput) Board() Board {
	return o.board
}

//Init configures the pins and leaves the clock low.
func (o *SPIOutput) Init() {
	if o.sel != nil {
		o.sel.ConfigureOutput()
		o.sel.High()
	}
	if o.conn != nil {
		return
	}
	o.data.ConfigureOutput()
	o.clk.ConfigureOutput()
	o.data.Low()
	o.clk.Low()
}

//Select starts a frame.
func (o *SPIOutput) Select() {
	if o.selected {
		return
	}
	o.selected = true
	o.buf = o.buf[:0]
	if o.sel != nil {
		o.sel.Low()
	}
}

//Release ends a frame. On hardware SPI this is where the collected bytes go out.
func (o *SPIOutput) Release() {
	if !o.selected {
		return
	}
	o.selected = false
	if o.conn != nil && len(o.buf) > 0 {
		if err := o.conn.Tx(o.buf, nil); err != nil {
			logger.Warn().Err(err).Int("bytes", len(o.buf)).Msg("spi transfer failed, frame dropped")
		}
	}
	if o.sel != nil {
		o.sel.High()
	}
}

//PutByte sends one byte MSB first.
func (o *SPIOutput) PutByte(b byte) {
	if o.conn != nil {
		o.buf = append(o.buf, b)
		return
	}
	var next uint32
	if o.half > 0 {
		next = o.board.Clock.Now()
	}
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		if b&mask != 0 {
			o.data.High()
		} else {
			o.data.Low()
		}
		next = o.halfPeriod(next)
		o.clk.High()
		next = o.halfPeriod(next)
		o.clk.Low()
	}
}

func (o *SPIOutput) halfPeriod(next uint32) uint32 {
	if o.half == 0 {
		return next
	}
	next += o.half
	waitUntil(o.board.Clock, next)
	return next
}

//WriteBytesValue sends v n times.
func (o *SPIOutput) WriteBytesValue(v byte, n int) {
	o.Select()
	for i := 0; i < n; i++ {
		o.PutByte(v)
	}
	o.Release()
}

//WriteBytes3 sends every pixel of pc as three bytes in strip order, each passed through adj,
//then lets adj finish the frame.
func (o *SPIOutput) WriteBytes3(pc *PixelController, adj Adjuster) {
	o.Select()
	defer o.Release()

	n := pc.Size()
	var b [3]byte
	for pc.Has(1) {
		pc.bytes3(&b)
		o.PutByte(adj.Adjust(b[0]))
		o.PutByte(adj.Adjust(b[1]))
		o.PutByte(adj.Adjust(b[2]))
		pc.StepDithering()
		pc.AdvanceData()
	}
	adj.PostBlock(o, n)
}
