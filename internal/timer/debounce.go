package timer

import (
	"sync"
	"time"
)

type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. Tests swap in timertest.Manual.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Debouncer runs only the most recent function handed to Trigger, once delay has passed
// without another Trigger.
type Debouncer struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	pending Stopper
}

func NewDebouncer(delay time.Duration, sched Scheduler) *Debouncer {
	if sched == nil {
		sched = Real{}
	}
	return &Debouncer{sched: sched, delay: delay}
}

func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.sched.AfterFunc(d.delay, f)
}

// Stop drops the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
