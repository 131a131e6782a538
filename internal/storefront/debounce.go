package storefront

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long filter changes must settle before a query is sent.
const DefaultQuietPeriod = 500 * time.Millisecond

// Debouncer delivers only the last value scheduled within a quiet period.
// Each Schedule cancels the pending value and restarts the timer.
type Debouncer[T any] struct {
	delay time.Duration
	fire  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	value   T
}

func NewDebouncer[T any](delay time.Duration, fire func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fire: fire}
}

// Schedule replaces any pending value with v and restarts the quiet period.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = true
	d.value = v

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.expire(gen) })
}

// CancelPending drops the pending value, if any, and reports whether one existed.
func (d *Debouncer[T]) CancelPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// A timer that already fired but has not taken the lock sees a new gen and does nothing.
	d.gen++
	was := d.pending
	d.pending = false
	var zero T
	d.value = zero
	return was
}

// Flush delivers the pending value immediately on the caller's goroutine.
func (d *Debouncer[T]) Flush() bool {
	v, ok := d.take(0, false)
	if ok {
		d.fire(v)
	}
	return ok
}

// Pending reports whether a value is waiting for the quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) expire(gen uint64) {
	if v, ok := d.take(gen, true); ok {
		d.fire(v)
	}
}

func (d *Debouncer[T]) take(gen uint64, checkGen bool) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if !d.pending || (checkGen && gen != d.gen) {
		return zero, false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.value
	d.pending = false
	d.value = zero
	d.gen++
	return v, true
}
