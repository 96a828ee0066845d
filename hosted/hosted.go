//Package hosted provides the ledwire timing capabilities on a regular operating system.
//
//The cycle counter counts nanoseconds of the monotonic clock. There is no way to mask interrupts
//from user space, so frames are instead pinned to one OS thread and serialized with a mutex.
//Frames are correct as long as the scheduler does not preempt the thread for longer than the
//latch time of the chipset.
package hosted

import (
	"runtime"
	"sync"
	"time"

	"github.com/DerLukas15/ledwire"
)

//Clock is a nanosecond counter wrapping at 2^32.
type Clock struct {
	start time.Time
}

//NewClock returns a Clock starting at 0 now.
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

//Now implements ledwire.CycleCounter.
func (c *Clock) Now() uint32 {
	return uint32(time.Since(c.start).Nanoseconds())
}

//CyclesPerMicrosecond implements ledwire.CycleCounter.
func (c *Clock) CyclesPerMicrosecond() uint32 {
	return 1000
}

//Interrupts serializes frames on a locked OS thread.
type Interrupts struct {
	mu sync.Mutex
}

//Disable implements ledwire.Interrupts.
func (i *Interrupts) Disable() ledwire.InterruptState {
	i.mu.Lock()
	runtime.LockOSThread()
	return 0
}

//Restore implements ledwire.Interrupts.
func (i *Interrupts) Restore(ledwire.InterruptState) {
	runtime.UnlockOSThread()
	i.mu.Unlock()
}

//Board returns a ledwire.Board with a fresh Clock and Interrupts.
func Board() ledwire.Board {
	return ledwire.Board{Clock: NewClock(), Interrupts: &Interrupts{}}
}
