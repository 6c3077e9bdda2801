// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package throttle

import (
	"sync"
	"time"
)

// Mode selects the rate limiting policy.
type Mode int

const (
	// Throttle executes immediately when the last execution is at least
	// one delay interval in the past and otherwise defers, so the
	// callback keeps firing periodically during sustained calls.
	Throttle Mode = iota

	// LeadingDebounce executes on the first call of a burst and then
	// stays quiet until calls have stopped for one delay interval.
	LeadingDebounce

	// TrailingDebounce executes once per burst, one delay interval after
	// the last call, with the last call's argument.
	TrailingDebounce
)

// Options configures a Limiter.
type Options struct {
	// Mode selects the rate limiting policy. The zero value is Throttle.
	Mode Mode

	// NoTrailing applies to Throttle mode only: when true, calls landing
	// inside the delay window are dropped instead of scheduling a
	// trailing execution.
	NoTrailing bool

	// Clock overrides the time source. Nil means the system clock.
	Clock Clock
}

// Limiter wraps a callback of one argument and coalesces calls to it.
//
// Timer callbacks fire on their own goroutine, so the limiter serializes
// its state under a mutex. The wrapped callback itself runs outside the
// lock.
type Limiter[T any] struct {
	delay      time.Duration
	mode       Mode
	noTrailing bool
	fn         func(T)
	clock      Clock

	mu       sync.Mutex
	pending  Timer
	seq      uint64 // superseded timers see a stale seq and abort
	lastExec time.Time
	executed bool // lastExec is valid
	stopped  bool
}

// New creates a limiter around fn. Calls to the returned limiter execute
// fn according to the configured mode, always with the argument of the
// call that triggered the execution. A negative delay is treated as zero.
func New[T any](delay time.Duration, opts Options, fn func(T)) *Limiter[T] {
	if delay < 0 {
		delay = 0
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &Limiter[T]{
		delay:      delay,
		mode:       opts.Mode,
		noTrailing: opts.NoTrailing,
		fn:         fn,
		clock:      clock,
	}
}

// Call feeds one invocation into the limiter. Depending on the mode it
// either runs the callback synchronously, schedules it, or drops the
// call. Any previously pending execution is superseded.
func (l *Limiter[T]) Call(arg T) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}

	hadPending := l.pending != nil
	l.cancelLocked()
	now := l.clock.Now()

	run := false
	switch l.mode {
	case Throttle:
		elapsed := now.Sub(l.lastExec)
		if !l.executed || elapsed > l.delay {
			run = true
		} else if !l.noTrailing {
			// Fire at lastExec + delay with the latest argument.
			l.schedule(l.delay-elapsed, arg, true)
		}

	case LeadingDebounce:
		if !hadPending {
			run = true
		}
		// The timer only marks the end of the burst.
		l.schedule(l.delay, arg, false)

	case TrailingDebounce:
		l.schedule(l.delay, arg, true)
	}

	if run {
		l.lastExec = now
		l.executed = true
	}
	l.mu.Unlock()

	if run {
		l.fn(arg)
	}
}

// Cancel drops any pending execution without stopping the limiter.
func (l *Limiter[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelLocked()
}

// Stop cancels any pending execution and makes the limiter inert.
// Further calls to Call are ignored. Stop is idempotent.
func (l *Limiter[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.cancelLocked()
}

// Pending reports whether an execution (or burst-end mark) is scheduled.
func (l *Limiter[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

// schedule arms the single pending timer. exec selects whether its
// firing runs the callback or merely ends the current burst.
// Called with l.mu held.
func (l *Limiter[T]) schedule(d time.Duration, arg T, exec bool) {
	seq := l.seq
	l.pending = l.clock.AfterFunc(d, func() {
		l.fire(seq, arg, exec)
	})
}

// fire is the timer callback. A timer whose seq no longer matches was
// superseded between expiring and acquiring the lock and must not run.
func (l *Limiter[T]) fire(seq uint64, arg T, exec bool) {
	l.mu.Lock()
	if l.stopped || seq != l.seq {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	if exec {
		l.lastExec = l.clock.Now()
		l.executed = true
	}
	l.mu.Unlock()

	if exec {
		l.fn(arg)
	}
}

// cancelLocked stops the pending timer, if any, and invalidates timers
// already past the point of cancellation. Called with l.mu held.
func (l *Limiter[T]) cancelLocked() {
	l.seq++
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
}
