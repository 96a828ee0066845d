package hosted

import (
	"sync"
	"testing"
	"time"

	"github.com/DerLukas15/ledwire"
	"github.com/stretchr/testify/assert"
)

func TestClockCountsNanoseconds(t *testing.T) {
	c := NewClock()
	a := c.Now()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Now()-a, uint32(2000000))
	assert.Equal(t, uint32(1000), c.CyclesPerMicrosecond())
}

func TestMinWaitOnHostedClock(t *testing.T) {
	b := Board()
	w := ledwire.NewMinWait(b.Clock, 500)
	w.Mark()
	start := time.Now()
	w.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Microsecond)
}

func TestInterruptsSerializeFrames(t *testing.T) {
	i := &Interrupts{}
	var wg sync.WaitGroup
	inside := 0
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				s := i.Disable()
				inside++
				assert.Equal(t, 1, inside)
				inside--
				i.Restore(s)
			}
		}()
	}
	wg.Wait()
}
