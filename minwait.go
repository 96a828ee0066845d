package ledwire

//MinWait enforces a minimum idle time between the end of one frame and the start of the next.
type MinWait struct {
	clock  CycleCounter
	wait   uint32
	last   uint32
	marked bool
}

//NewMinWait returns a MinWait of us microseconds measured on clock.
func NewMinWait(clock CycleCounter, us uint32) *MinWait {
	return &MinWait{clock: clock, wait: us}
}

//SetWait changes the idle time to us microseconds.
func (w *MinWait) SetWait(us uint32) {
	w.wait = us
}

//Wait blocks until the idle time since the last Mark has elapsed. The first call never blocks.
//Elapsed time is compared unsigned, so a gap of up to a full counter period never blocks.
func (w *MinWait) Wait() {
	if w == nil || w.clock == nil || !w.marked || w.wait == 0 {
		return
	}
	span := w.span()
	for w.clock.Now()-w.last < span {
	}
}

//span is the idle time in counter cycles.
func (w *MinWait) span() uint32 {
	return w.wait * w.clock.CyclesPerMicrosecond()
}

//Mark records now as the end of a frame.
func (w *MinWait) Mark() {
	if w == nil || w.clock == nil {
		return
	}
	w.last = w.clock.Now()
	w.marked = true
}

//Ready reports whether Wait would return immediately.
func (w *MinWait) Ready() bool {
	if w == nil || w.clock == nil || !w.marked || w.wait == 0 {
		return true
	}
	return w.clock.Now()-w.last >= w.span()
}
