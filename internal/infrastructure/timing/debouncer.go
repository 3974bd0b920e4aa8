// Package timing provides a cancellable-timer abstraction for debounced
// recomputation, decoupled from any UI framework lifecycle.
package timing

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls into one delayed execution. A later
// Schedule within the window supersedes the pending one; the last scheduled
// function always runs unless Stop is called first.
type Debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	pending func()
	mu      sync.Mutex
	stopped bool
}

// NewDebouncer creates a debouncer with the given delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the delay, replacing any pending run
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs any pending function immediately instead of waiting out the delay
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending run and rejects future schedules
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}
