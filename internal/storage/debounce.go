package storage

import (
	"sync"
	"time"

	"github.com/xelth-com/ploegwissel/internal/metrics"
)

// DefaultSaveDelay is the quiet window before a scheduled save is written
const DefaultSaveDelay = 400 * time.Millisecond

// Timer is a scheduled task that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer holds at most one pending action. Every Trigger replaces the
// pending action and restarts the quiet window.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	timer   Timer
	pending func()
	seq     uint64
}

func NewDebouncer(delay time.Duration, sched Scheduler) *Debouncer {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Debouncer{delay: delay, sched: sched}
}

// Trigger schedules action, cancelling the one still waiting
func (d *Debouncer) Trigger(action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.pending != nil {
		metrics.Coalesced()
	}

	d.seq++
	seq := d.seq
	d.pending = action
	d.timer = d.sched.AfterFunc(d.delay, func() { d.fire(seq) })
}

// fire runs the pending action if no Trigger, Flush or Cancel came after
// the timer with this seq was armed. A stopped timer may still fire.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	action := d.take()
	d.mu.Unlock()

	action()
}

// Flush runs the pending action now. Reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	action := d.take()
	d.mu.Unlock()

	if action == nil {
		return false
	}
	action()
	return true
}

// Cancel drops the pending action without running it
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.take() != nil
}

// Pending reports whether an action is waiting for its window
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// take detaches the pending action; callers hold d.mu
func (d *Debouncer) take() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	action := d.pending
	d.pending = nil
	d.seq++
	return action
}
