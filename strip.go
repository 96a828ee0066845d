package ledwire

import "image/color"

//Strip is a caller owned buffer of pixels. Drivers only read it.
type Strip []RGB

//NewStrip returns a Strip with count black pixels.
func NewStrip(count int) Strip {
	return make(Strip, count)
}

//Fill sets every pixel to c.
func (s Strip) Fill(c RGB) {
	for i := range s {
		s[i] = c
	}
}

//SetColor sets the pixel at position from a color.Color. Out of range positions are ignored.
func (s Strip) SetColor(position int, c color.Color) {
	if position < 0 || position >= len(s) {
		return
	}
	s[position] = ColorToRGB(c)
}

//At returns the pixel at position or Black when out of range.
func (s Strip) At(position int) RGB {
	if position < 0 || position >= len(s) {
		return Black
	}
	return s[position]
}

//ShiftRight shifts the pixels by shift to the right. Everything leaving on the right wraps around.
//Use ShiftLeft instead of negative shifts.
func (s Strip) ShiftRight(shift int) {
	n := len(s)
	if n == 0 || shift <= 0 || shift%n == 0 {
		return
	}
	s.rotate(n - shift%n)
}

//ShiftLeft shifts the pixels by shift to the left. Everything leaving on the left wraps around.
//Use ShiftRight instead of negative shifts.
func (s Strip) ShiftLeft(shift int) {
	n := len(s)
	if n == 0 || shift <= 0 || shift%n == 0 {
		return
	}
	s.rotate(shift % n)
}

//rotate moves pixel k to position 0 in place.
func (s Strip) rotate(k int) {
	reverse(s[:k])
	reverse(s[k:])
	reverse(s)
}

func reverse(s Strip) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
