package ledwire

type plain struct{}

func (plain) Adjust(b byte) byte        { return b }
func (plain) PostBlock(*SPIOutput, int) {}

//WS2801 drives WS2801 and WS2803 strips. The chip latches after the clock has been idle for
//a while, so a new frame waits 1ms after the previous one.
type WS2801 struct {
	out  *SPIOutput
	wait *MinWait
}

//NewWS2801 returns a WS2801 driver on out.
func NewWS2801(out *SPIOutput) *WS2801 {
	return &WS2801{out: out, wait: NewMinWait(out.board.Clock, 1000)}
}

//Init initializes the output.
func (d *WS2801) Init() {
	d.out.Init()
}

//ShowPixels sends the frame.
func (d *WS2801) ShowPixels(pc *PixelController) {
	d.wait.Wait()
	d.out.WriteBytes3(pc, plain{})
	d.wait.Mark()
}

//LPD8806 drives LPD8806 strips: seven bit channels with the top bit always set and a run of
//zero bytes as latch.
type LPD8806 struct {
	out *SPIOutput
}

//NewLPD8806 returns an LPD8806 driver on out.
func NewLPD8806(out *SPIOutput) *LPD8806 {
	return &LPD8806{out: out}
}

//Adjust keeps the top seven bits of b and sets the top bit.
func (d *LPD8806) Adjust(b byte) byte {
	return 0x80 | b>>1
}

//PostBlock sends the latch.
func (d *LPD8806) PostBlock(out *SPIOutput, n int) {
	for i := LPD8806LatchBytes(n); i > 0; i-- {
		out.PutByte(0)
	}
}

//LPD8806LatchBytes is the number of zero bytes latching n pixels.
func LPD8806LatchBytes(n int) int {
	return (n*3 + 63) / 64
}

//Init initializes the output and resets the chain.
func (d *LPD8806) Init() {
	d.out.Init()
	d.out.WriteBytesValue(0, 1)
}

//ShowPixels sends the frame.
func (d *LPD8806) ShowPixels(pc *PixelController) {
	d.out.WriteBytes3(pc, d)
}

//APA102 drives APA102 and SK9822 strips. Every pixel starts with a brightness header, the frame is
//wrapped in a start frame of zeros and an end frame feeding the clock through the chain.
type APA102 struct {
	out     *SPIOutput
	endByte byte
}

//NewAPA102 returns an APA102 driver on out.
func NewAPA102(out *SPIOutput) *APA102 {
	return &APA102{out: out, endByte: 0xFF}
}

//NewSK9822 returns an APA102 driver for SK9822 strips, which want a zero end frame.
func NewSK9822(out *SPIOutput) *APA102 {
	return &APA102{out: out, endByte: 0x00}
}

//apa102Header is the pixel header at full global brightness.
const apa102Header = 0xE0 | 0x1F

//Init initializes the output.
func (d *APA102) Init() {
	d.out.Init()
}

//ShowPixels sends the frame.
func (d *APA102) ShowPixels(pc *PixelController) {
	d.out.Select()
	defer d.out.Release()

	n := pc.Size()
	for i := 0; i < 4; i++ {
		d.out.PutByte(0)
	}
	var b [3]byte
	for pc.Has(1) {
		pc.bytes3(&b)
		d.out.PutByte(apa102Header)
		d.out.PutByte(b[0])
		d.out.PutByte(b[1])
		d.out.PutByte(b[2])
		pc.StepDithering()
		pc.AdvanceData()
	}
	for i := 0; i < APA102EndFrameDwords(n); i++ {
		d.out.PutByte(d.endByte)
		d.out.PutByte(0)
		d.out.PutByte(0)
		d.out.PutByte(0)
	}
}

//APA102EndFrameDwords is the number of 32 bit words ending a frame of n pixels.
func APA102EndFrameDwords(n int) int {
	return n/32 + 1
}

//P9813 drives P9813 modules. Each pixel starts with a flag byte repeating the inverted top two
//bits of every channel as a checksum.
type P9813 struct {
	out *SPIOutput
}

//NewP9813 returns a P9813 driver on out.
func NewP9813(out *SPIOutput) *P9813 {
	return &P9813{out: out}
}

//P9813Flag is the flag byte for the slot bytes s0, s1, s2.
func P9813Flag(s0, s1, s2 byte) byte {
	return 0xC0 | (^s2&0xC0)>>2 | (^s1&0xC0)>>4 | (^s0&0xC0)>>6
}

//Init initializes the output.
func (d *P9813) Init() {
	d.out.Init()
}

func (d *P9813) boundary() {
	for i := 0; i < 4; i++ {
		d.out.PutByte(0)
	}
}

//ShowPixels sends the frame.
func (d *P9813) ShowPixels(pc *PixelController) {
	d.out.Select()
	defer d.out.Release()

	d.boundary()
	var b [3]byte
	for pc.Has(1) {
		pc.bytes3(&b)
		d.out.PutByte(P9813Flag(b[0], b[1], b[2]))
		d.out.PutByte(b[2])
		d.out.PutByte(b[1])
		d.out.PutByte(b[0])
		pc.StepDithering()
		pc.AdvanceData()
	}
	d.boundary()
}
