package editor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// debouncer holds at most one pending timer. Arming replaces the previous
// timer, so only the last call within the window runs.
type debouncer struct {
	clock clockwork.Clock

	mu    sync.Mutex
	timer clockwork.Timer
	seq   uint64
}

func newDebouncer(clock clockwork.Clock) *debouncer {
	return &debouncer{clock: clock}
}

func (d *debouncer) Arm(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(delay, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending timer and reports whether one was pending.
func (d *debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	return true
}

func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
