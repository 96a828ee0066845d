package rig

import "github.com/DerLukas15/ledwire"

//Unframe strips the chipset framing of a clocked frame of n pixels and returns the pixel bytes
//in wire order, three per pixel.
func Unframe(kind ledwire.ClockedKind, b []byte, n int) []byte {
	switch kind {
	case ledwire.KindLPD8806:
		for len(b) > 0 && b[0] == 0 {
			b = b[1:]
		}
		out := make([]byte, 0, n*3)
		for _, v := range b {
			if v&0x80 == 0 || len(out) == n*3 {
				break
			}
			out = append(out, (v&0x7f)<<1)
		}
		return out
	case ledwire.KindAPA102, ledwire.KindSK9822:
		return quads(b, n, func(q []byte) [3]byte { return [3]byte{q[1], q[2], q[3]} })
	case ledwire.KindP9813:
		return quads(b, n, func(q []byte) [3]byte { return [3]byte{q[3], q[2], q[1]} })
	}
	if len(b) > n*3 {
		b = b[:n*3]
	}
	return b
}

//quads reads n four byte pixels after a four byte start frame.
func quads(b []byte, n int, pick func(q []byte) [3]byte) []byte {
	if len(b) < 4 {
		return nil
	}
	b = b[4:]
	out := make([]byte, 0, n*3)
	for i := 0; i < n && len(b) >= 4; i++ {
		p := pick(b[:4])
		out = append(out, p[:]...)
		b = b[4:]
	}
	return out
}

//Unpack turns wire bytes in order back into pixels.
func Unpack(b []byte, order ledwire.Order) []ledwire.RGB {
	out := make([]ledwire.RGB, 0, len(b)/3)
	for ; len(b) >= 3; b = b[3:] {
		var ch [3]uint8
		for slot := 0; slot < 3; slot++ {
			ch[order.Channel(slot)] = b[slot]
		}
		out = append(out, ledwire.RGB{R: ch[0], G: ch[1], B: ch[2]})
	}
	return out
}
