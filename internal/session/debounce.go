package session

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDebounce is the quiet period after the last sample edit before it is parsed.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer runs only the most recent of a burst of calls, once the clock has
// been quiet for the delay. Each call supersedes the pending one; a timer that
// fires after being superseded does nothing.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   clockwork.Timer
	pending func()
}

// NewDebouncer returns a debouncer on clock. A non-positive delay uses DefaultDebounce.
func NewDebouncer(clock clockwork.Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if delay <= 0 {
		delay = DefaultDebounce
	}

	return &Debouncer{clock: clock, delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = fn
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending call now. It returns false if nothing was pending.
func (d *Debouncer) Flush() bool {
	fn := d.take()
	if fn == nil {
		return false
	}

	fn()

	return true
}

// Stop discards the pending call. It returns false if nothing was pending.
func (d *Debouncer) Stop() bool {
	return d.take() != nil
}

// Pending reports whether a call is waiting.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()

	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}

	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn := d.pending
	d.pending = nil
	d.gen++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	return fn
}
