package services

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDebounceWindow is the quiet period before search text is committed
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer commits the last submitted value once input has been quiet for
// the configured window. Every Submit reschedules the pending commit.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   clockwork.Timer
	seq     uint64
	pending string
	armed   bool
	stopped bool
}

// NewDebouncer creates a debouncer that calls commit from its own goroutine
func NewDebouncer(clock clockwork.Clock, window time.Duration, commit func(string)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		clock:  clock,
		window: window,
		commit: commit,
	}
}

// Submit records value and restarts the quiet window
func (d *Debouncer) Submit(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.seq++
	d.pending = value
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}

	seq := d.seq
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(seq) })
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	d.commit(value)
}

// Flush commits the pending value now. It reports whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return false
	}
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	value := d.pending
	d.armed = false
	d.mu.Unlock()

	d.commit(value)
	return true
}

// Stop drops the pending commit; later Submits are ignored
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending returns the value waiting to be committed
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.armed
}
