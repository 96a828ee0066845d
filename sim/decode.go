package sim

import "sort"

//Pulse is one high period of a line.
type Pulse struct {
	Start uint32
	Width uint32
}

//Pulses pairs every rising edge with the falling edge after it.
func Pulses(edges []Edge) []Pulse {
	var pulses []Pulse
	var start uint32
	high := false
	for _, e := range edges {
		switch {
		case e.Level && !high:
			start = e.Cycle
			high = true
		case !e.Level && high:
			pulses = append(pulses, Pulse{Start: start, Width: e.Cycle - start})
			high = false
		}
	}
	return pulses
}

//DecodeNRZ turns the pulses of a clockless line back into bytes. A pulse at least threshold
//cycles wide is a one. Bits are packed MSB first; a trailing partial byte is dropped.
func DecodeNRZ(edges []Edge, threshold uint32) []byte {
	pulses := Pulses(edges)
	out := make([]byte, 0, len(pulses)/8)
	var cur byte
	for i, p := range pulses {
		cur <<= 1
		if p.Width >= threshold {
			cur |= 1
		}
		if i%8 == 7 {
			out = append(out, cur)
			cur = 0
		}
	}
	return out
}

//DecodeLanes decodes the low lanes bits of port as separate clockless lines.
func DecodeLanes(port *Port, lanes int, threshold uint32) [][]byte {
	out := make([][]byte, lanes)
	for i := range out {
		out[i] = DecodeNRZ(port.Edges(uint(i)), threshold)
	}
	return out
}

type event struct {
	Edge
	clock bool
}

//DecodeClocked samples data on every rising edge of clk and packs the bits MSB first.
func DecodeClocked(data, clk *Pin) []byte {
	events := make([]event, 0, len(data.edges)+len(clk.edges))
	for _, e := range data.edges {
		events = append(events, event{Edge: e})
	}
	for _, e := range clk.edges {
		events = append(events, event{Edge: e, clock: true})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })

	level := data.level
	if len(data.edges) > 0 {
		level = !data.edges[0].Level
	}
	var out []byte
	var cur byte
	n := 0
	for _, e := range events {
		if !e.clock {
			level = e.Level
			continue
		}
		if !e.Level {
			continue
		}
		cur <<= 1
		if level {
			cur |= 1
		}
		n++
		if n == 8 {
			out = append(out, cur)
			cur, n = 0, 0
		}
	}
	return out
}
