package ledwire

//PixelController walks a pixel buffer and hands out the bytes a driver should transmit,
//already scaled, corrected and dithered, in the order of the strip.
//
//A PixelController lives for exactly one frame, so the dither state starts from zero at every
//frame start.
type PixelController struct {
	data      []RGB
	index     int
	advance   int
	remaining int
	size      int
	order     Order
	scale     [3]uint8
	dither    bool
	err       [3]uint8
	pending   [3]uint8
}

//NewPixelController returns a PixelController over the first n pixels of leds.
//scale is the combined adjustment per logical channel (see Controller.Adjustment).
func NewPixelController(leds []RGB, n int, scale [3]uint8, mode DitherMode, order Order) PixelController {
	if n > len(leds) {
		n = len(leds)
	}
	if n < 0 {
		n = 0
	}
	return PixelController{
		data:      leds,
		advance:   1,
		remaining: n,
		size:      n,
		order:     order,
		scale:     scale,
		dither:    mode == BinaryDither,
	}
}

//NewColorController returns a PixelController repeating c for n pixels.
func NewColorController(c RGB, n int, scale [3]uint8, mode DitherMode, order Order) PixelController {
	if n < 0 {
		n = 0
	}
	return PixelController{
		data:      []RGB{c},
		advance:   0,
		remaining: n,
		size:      n,
		order:     order,
		scale:     scale,
		dither:    mode == BinaryDither,
	}
}

//Size is the number of pixels the controller started with.
func (pc *PixelController) Size() int {
	return pc.size
}

//Remaining is the number of pixels not yet advanced over.
func (pc *PixelController) Remaining() int {
	return pc.remaining
}

//Has reports whether at least n pixels remain.
func (pc *PixelController) Has(n int) bool {
	return pc.remaining >= n
}

//Order is the byte order the controller emits in.
func (pc *PixelController) Order() Order {
	return pc.order
}

//Scale returns the combined scale for the logical channel ch.
func (pc *PixelController) Scale(ch int) uint8 {
	return pc.scale[ch]
}

//Raw returns the unscaled value of the logical channel ch for the current pixel.
func (pc *PixelController) Raw(ch int) uint8 {
	if pc.remaining <= 0 {
		return 0
	}
	return pc.data[pc.index].Channel(ch)
}

//LoadAndScale returns the output byte for transmission slot (0..2) of the current pixel.
//
//The remainder lost by the 8 bit truncation is carried over to the same channel of the next
//pixel once StepDithering is called. A channel scaled by 0 is always 0 and carries nothing.
func (pc *PixelController) LoadAndScale(slot int) uint8 {
	ch := pc.order.Channel(slot)
	return pc.scaleChannel(ch, pc.Raw(ch))
}

func (pc *PixelController) scaleChannel(ch int, raw uint8) uint8 {
	s := pc.scale[ch]
	if s == 0 {
		pc.pending[ch] = 0
		return 0
	}
	v := uint16(raw) * (uint16(s) + 1)
	if pc.dither {
		v += uint16(pc.err[ch])
		pc.pending[ch] = uint8(v)
	}
	return uint8(v >> 8)
}

//StepDithering commits the remainders of the current pixel. Call once per pixel.
func (pc *PixelController) StepDithering() {
	if !pc.dither {
		return
	}
	pc.err = pc.pending
}

//AdvanceData moves to the next pixel. It does nothing once the controller is exhausted.
func (pc *PixelController) AdvanceData() {
	if pc.remaining <= 0 {
		return
	}
	pc.remaining--
	pc.index += pc.advance
}

//Lane returns a PixelController over the pixels [lane*length, (lane+1)*length) of this one.
//Lanes past the end of the buffer are empty. Each lane keeps its own dither state.
func (pc *PixelController) Lane(lane, length int) PixelController {
	out := *pc
	out.err = [3]uint8{}
	out.pending = [3]uint8{}
	if pc.advance == 0 {
		n := pc.remaining - lane*length
		if n > length {
			n = length
		}
		if n < 0 {
			n = 0
		}
		out.remaining = n
		out.size = n
		return out
	}
	start := pc.index + lane*length
	end := start + length
	if end > pc.index+pc.remaining {
		end = pc.index + pc.remaining
	}
	if start > end {
		start = end
	}
	out.index = start
	out.remaining = end - start
	out.size = out.remaining
	return out
}

//bytes3 fills dst with the three output bytes of the current pixel in slot order.
func (pc *PixelController) bytes3(dst *[3]byte) {
	dst[0] = pc.LoadAndScale(0)
	dst[1] = pc.LoadAndScale(1)
	dst[2] = pc.LoadAndScale(2)
}
