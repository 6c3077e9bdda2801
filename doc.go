// Package sigpad provides a signature capture component for Go.
//
// # Overview
//
// sigpad captures freehand pen strokes on a canvas surface, smoothing
// them with velocity-filtered variable-width bezier curves, and renders
// them through a pluggable Canvas backend. It is organized as two layers:
//
//   - Pad: the drawing engine. Consumes pointer events, records stroke
//     data, and paints onto a Canvas. Supports export and import of both
//     vector stroke data (ToData/FromData) and raster images
//     (ToDataURL/FromDataURL).
//   - Component: the lifecycle wrapper. Owns a Pad, binds it to a host
//     viewport, and keeps the canvas backing store in sync with the
//     viewport through debounced, pixel-ratio-aware rescaling.
//
// # Quick Start
//
//	import "github.com/gogpu/sigpad"
//
//	canvas := sigpad.NewImageCanvas(400, 200)
//	pad, err := sigpad.NewPad(canvas)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pad.PointerDown(sigpad.Pt(10, 50))
//	pad.PointerMove(sigpad.Pt(120, 80))
//	pad.PointerUp(sigpad.Pt(200, 60))
//
//	url, _ := pad.ToDataURL("image/png")
//
// # Coordinate System
//
// Logical coordinates are device-independent pixels with the origin at
// the top-left, X increasing right and Y increasing down. The canvas
// backing store is scaled by the host's device pixel ratio; callers
// always work in logical coordinates.
//
// # Hosts
//
// The component is host-agnostic. A host supplies a Viewport (size,
// pixel ratio, resize notifications); the tcellhost subpackage binds a
// terminal screen as a viewport for interactive capture.
//
// # Concurrency
//
// Pointer events are expected from a single event loop, but the pad
// locks its state internally: with move throttling enabled, deferred
// samples are painted from timer goroutines. Canvas implementations are
// only ever touched under the pad's lock.
package sigpad

// Version is the current version of the library.
const Version = "0.1.0"
