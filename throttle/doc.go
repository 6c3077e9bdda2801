// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package throttle provides call-coalescing rate limiters: throttled and
// debounced wrappers around a callback.
//
// A Limiter wraps a callback and limits how often it actually executes:
//
//   - Throttle permits periodic execution during sustained calls, at most
//     once per delay interval, with an optional trailing execution
//     carrying the most recent argument.
//   - Leading debounce executes once at the start of a burst of calls.
//   - Trailing debounce executes once after a burst goes quiet, with the
//     argument of the last call.
//
// Each limiter owns at most one pending timer at a time; a new call
// cancels and supersedes any execution already scheduled. Stop releases
// the pending timer, so a limiter can be torn down without its callback
// firing against disposed state.
//
//	resize := throttle.New(150*time.Millisecond, throttle.Options{
//	    Mode: throttle.TrailingDebounce,
//	}, func(sz Size) { rescale(sz) })
//	defer resize.Stop()
//
//	for ev := range resizeEvents {
//	    resize.Call(ev.Size)
//	}
package throttle
