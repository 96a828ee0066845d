//Package sim is a simulated board for ledwire. Pins and ports record every transition with the
//cycle it happened at, so frames can be decoded back into bytes on the host.
package sim

import "github.com/DerLukas15/ledwire"

//Clock is a cycle counter which moves on by Step every time it is read, the way a real counter
//moves on while a busy wait polls it.
type Clock struct {
	now  uint32
	Step uint32
	cpm  uint32
}

//NewClock returns a Clock at 0 running at cyclesPerMicrosecond.
func NewClock(cyclesPerMicrosecond uint32) *Clock {
	return &Clock{Step: 1, cpm: cyclesPerMicrosecond}
}

//Now returns the counter and advances it.
func (c *Clock) Now() uint32 {
	v := c.now
	c.now += c.Step
	return v
}

//Peek returns the counter without advancing it.
func (c *Clock) Peek() uint32 {
	return c.now
}

//Advance moves the counter by n cycles.
func (c *Clock) Advance(n uint32) {
	c.now += n
}

//Set moves the counter to v.
func (c *Clock) Set(v uint32) {
	c.now = v
}

//CyclesPerMicrosecond implements ledwire.CycleCounter.
func (c *Clock) CyclesPerMicrosecond() uint32 {
	return c.cpm
}

//Interrupts counts how often preemption was disabled and restored.
type Interrupts struct {
	depth    int
	Disables int
	Restores int
}

//Disable implements ledwire.Interrupts.
func (i *Interrupts) Disable() ledwire.InterruptState {
	s := ledwire.InterruptState(i.depth)
	i.depth++
	i.Disables++
	return s
}

//Restore implements ledwire.Interrupts.
func (i *Interrupts) Restore(s ledwire.InterruptState) {
	i.depth = int(s)
	i.Restores++
}

//Masked reports whether preemption is currently disabled.
func (i *Interrupts) Masked() bool {
	return i.depth > 0
}

//Board ties a clock, the interrupt state and any number of pins together.
type Board struct {
	Clock      *Clock
	Interrupts *Interrupts
	pins       map[string]*Pin
	port       *Port
	seq        uint64
}

//NewBoard returns a Board whose clock runs at cyclesPerMicrosecond.
func NewBoard(cyclesPerMicrosecond uint32) *Board {
	return &Board{
		Clock:      NewClock(cyclesPerMicrosecond),
		Interrupts: &Interrupts{},
		pins:       make(map[string]*Pin),
	}
}

//LedBoard returns the timing capabilities of b for the ledwire drivers.
func (b *Board) LedBoard() ledwire.Board {
	return ledwire.Board{Clock: b.Clock, Interrupts: b.Interrupts}
}

//Pin returns the pin called name, creating it on first use.
func (b *Board) Pin(name string) *Pin {
	p, ok := b.pins[name]
	if !ok {
		p = &Pin{board: b, name: name}
		b.pins[name] = p
	}
	return p
}

//Port returns the port of the board.
func (b *Board) Port() *Port {
	if b.port == nil {
		b.port = &Port{board: b}
	}
	return b.port
}

//Reset forgets the recordings of every pin and of the port.
func (b *Board) Reset() {
	for _, p := range b.pins {
		p.Reset()
	}
	if b.port != nil {
		b.port.Reset()
	}
}

func (b *Board) next() uint64 {
	b.seq++
	return b.seq
}

//Edge is one transition of a pin.
type Edge struct {
	Cycle  uint32
	Level  bool
	Seq    uint64
	Masked bool
}

//Pin records the transitions of one output.
type Pin struct {
	board  *Board
	name   string
	output bool
	level  bool
	edges  []Edge
}

//Name returns the name the pin was created with.
func (p *Pin) Name() string {
	return p.name
}

//ConfigureOutput implements ledwire.Pin.
func (p *Pin) ConfigureOutput() {
	p.output = true
}

//IsOutput reports whether ConfigureOutput was called.
func (p *Pin) IsOutput() bool {
	return p.output
}

//High implements ledwire.Pin.
func (p *Pin) High() {
	p.set(true)
}

//Low implements ledwire.Pin.
func (p *Pin) Low() {
	p.set(false)
}

func (p *Pin) set(level bool) {
	if level == p.level {
		return
	}
	p.level = level
	p.edges = append(p.edges, Edge{
		Cycle:  p.board.Clock.Peek(),
		Level:  level,
		Seq:    p.board.next(),
		Masked: p.board.Interrupts.Masked(),
	})
}

//Level returns the current level.
func (p *Pin) Level() bool {
	return p.level
}

//Edges returns the recorded transitions.
func (p *Pin) Edges() []Edge {
	return p.edges
}

//Reset forgets the recorded transitions. The level is kept.
func (p *Pin) Reset() {
	p.edges = nil
}

//PortWrite is the value of a port after one write.
type PortWrite struct {
	Cycle  uint32
	Value  uint32
	Seq    uint64
	Masked bool
}

//Port records every write to a 32 bit output register.
type Port struct {
	board   *Board
	output  uint32
	value   uint32
	toggled uint32
	start   uint32
	writes  []PortWrite
}

//ConfigureOutput implements ledwire.Port.
func (p *Port) ConfigureOutput(mask uint32) {
	p.output |= mask
}

//Output returns the bits configured as outputs.
func (p *Port) Output() uint32 {
	return p.output
}

//Set implements ledwire.Port.
func (p *Port) Set(mask uint32) {
	p.Write(p.value | mask)
}

//Clear implements ledwire.Port.
func (p *Port) Clear(mask uint32) {
	p.Write(p.value &^ mask)
}

//Read implements ledwire.Port.
func (p *Port) Read() uint32 {
	return p.value
}

//Write implements ledwire.Port.
func (p *Port) Write(value uint32) {
	if len(p.writes) == 0 {
		p.start = p.value
	}
	p.toggled |= p.value ^ value
	p.value = value
	p.writes = append(p.writes, PortWrite{
		Cycle:  p.board.Clock.Peek(),
		Value:  value,
		Seq:    p.board.next(),
		Masked: p.board.Interrupts.Masked(),
	})
}

//Preload sets bits without recording a write, like pins driven by something else.
func (p *Port) Preload(value uint32) {
	p.value = value
}

//Toggled returns every bit that changed since the last Reset.
func (p *Port) Toggled() uint32 {
	return p.toggled
}

//Writes returns the recorded writes.
func (p *Port) Writes() []PortWrite {
	return p.writes
}

//Edges returns the transitions of one bit of the port.
func (p *Port) Edges(bit uint) []Edge {
	var edges []Edge
	level := p.start&(1<<bit) != 0
	for _, w := range p.writes {
		l := w.Value&(1<<bit) != 0
		if l == level {
			continue
		}
		level = l
		edges = append(edges, Edge{Cycle: w.Cycle, Level: l, Seq: w.Seq, Masked: w.Masked})
	}
	return edges
}

//Reset forgets the recorded writes.
func (p *Port) Reset() {
	p.writes = nil
	p.toggled = 0
}

//SPI records the transfers of a hardware SPI connection.
type SPI struct {
	Transfers [][]byte
	Err       error
}

//Tx implements ledwire.SPIConn.
func (s *SPI) Tx(w, r []byte) error {
	if s.Err != nil {
		return s.Err
	}
	s.Transfers = append(s.Transfers, append([]byte(nil), w...))
	return nil
}

//Last returns the latest transfer or nil.
func (s *SPI) Last() []byte {
	if len(s.Transfers) == 0 {
		return nil
	}
	return s.Transfers[len(s.Transfers)-1]
}
