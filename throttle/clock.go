// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package throttle

import "time"

// Clock abstracts time for the limiter. The zero configuration uses the
// system clock; tests inject a fake to drive timers deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d and returns a handle that
	// can cancel it. fn may run on another goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancelable scheduled callback.
// *time.Timer satisfies this interface.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// systemClock implements Clock using the time package.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }
