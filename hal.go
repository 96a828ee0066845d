package ledwire

//Pin is a single output line provided by the platform layer.
type Pin interface {
	ConfigureOutput()
	High()
	Low()
}

//Port is a port-wide output register. Set and Clear only touch the bits given in mask,
//which is how lanes sharing a register leave co-resident pins alone.
type Port interface {
	ConfigureOutput(mask uint32)
	Set(mask uint32)
	Clear(mask uint32)
	Read() uint32
	Write(value uint32)
}

//CycleCounter is a free running counter. It is expected to wrap at 2^32.
type CycleCounter interface {
	Now() uint32
	CyclesPerMicrosecond() uint32
}

//InterruptState is whatever the platform needs to restore preemption.
type InterruptState uintptr

//Interrupts disables and restores preemption around a frame.
type Interrupts interface {
	Disable() InterruptState
	Restore(state InterruptState)
}

//Board bundles the timing capabilities every timed driver needs.
type Board struct {
	Clock      CycleCounter
	Interrupts Interrupts
}

//critical disables preemption and returns the function restoring it.
//Use as `defer critical(irq)()`.
func critical(irq Interrupts) func() {
	if irq == nil {
		return func() {}
	}
	state := irq.Disable()
	return func() { irq.Restore(state) }
}

//reached reports whether now is at or past deadline, tolerating counter wrap.
func reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}

//waitUntil spins until the counter reaches deadline.
func waitUntil(clock CycleCounter, deadline uint32) {
	for !reached(clock.Now(), deadline) {
	}
}

//nsToCycles converts nanoseconds to cycles, rounding up.
func nsToCycles(ns, cyclesPerMicrosecond uint32) uint32 {
	return (ns*cyclesPerMicrosecond + 999) / 1000
}
