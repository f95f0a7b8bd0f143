package layout

import (
	"sync"
	"time"
)

// ResizeDebounce is the quiet period after the last resize before the
// layout is recomputed.
const ResizeDebounce = 200 * time.Millisecond

// ResizeGate coalesces a burst of resize observations for an event loop
// that schedules its own timers. Each observation returns a sequence
// number; only the latest one settles, and only once.
type ResizeGate struct {
	seq     uint64
	width   int
	settled bool
}

// Observe records a new width and returns its sequence number.
func (g *ResizeGate) Observe(width int) uint64 {
	g.seq++
	g.width = width
	g.settled = false
	return g.seq
}

// Settle reports the width to lay out for when seq is still the latest
// observation. Later or repeated calls for the same burst return false.
func (g *ResizeGate) Settle(seq uint64) (int, bool) {
	if seq != g.seq || g.settled {
		return 0, false
	}
	g.settled = true
	return g.width, true
}

// Pending reports whether an observation is waiting to settle.
func (g *ResizeGate) Pending() bool {
	return g.seq > 0 && !g.settled
}

// Debouncer calls fn with the latest width once no Notify arrived for the
// delay. fn runs on a timer goroutine.
type Debouncer struct {
	delay time.Duration
	fn    func(width int)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool
	width   int
}

// NewDebouncer creates a Debouncer. A non-positive delay uses ResizeDebounce.
func NewDebouncer(delay time.Duration, fn func(width int)) *Debouncer {
	if delay <= 0 {
		delay = ResizeDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Notify records a width and restarts the quiet period.
func (d *Debouncer) Notify(width int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = true
	d.width = width
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.onTimer)
		return
	}
	d.timer.Reset(d.delay)
}

// Stop cancels any pending call. Notify is ignored afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) onTimer() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	width := d.width
	d.mu.Unlock()

	d.fn(width)
}
