// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sigpad

import (
	"image"
	"math"
)

// Rescaler keeps a canvas backing store in sync with its layout size and
// the host's device pixel ratio.
//
// Resizing a canvas backing store discards its pixel buffer, so the
// rescaler works around that platform behavior: it is a strict no-op
// when the computed target dimensions already match the buffer, and when
// content must survive a real resize it snapshots the engine's content
// beforehand and replays it afterwards: strokes are redrawn through the
// curve pipeline, imported raster content is carried as pixels.
type Rescaler struct {
	canvas Canvas
	engine *Pad // optional; nil means no snapshot/restore/clear

	// Explicit dimensions in logical pixels. When positive they replace
	// the canvas layout size in the target computation.
	explicitWidth  float64
	explicitHeight float64

	// preserve selects replay-over-clear for engine content.
	preserve bool

	// pixelRatio yields the current device pixel ratio.
	pixelRatio func() float64
}

// NewRescaler creates a rescaler for canvas. engine may be nil when no
// drawing engine is attached yet; rescaling then only adjusts the
// buffer. pixelRatio may be nil for a fixed ratio of 1.
func NewRescaler(canvas Canvas, engine *Pad, pixelRatio func() float64) *Rescaler {
	if pixelRatio == nil {
		pixelRatio = func() float64 { return 1 }
	}
	return &Rescaler{
		canvas:     canvas,
		engine:     engine,
		pixelRatio: pixelRatio,
	}
}

// SetExplicitSize fixes the logical dimensions used for rescaling.
// Zero values fall back to the canvas layout size.
func (r *Rescaler) SetExplicitSize(width, height float64) {
	r.explicitWidth = width
	r.explicitHeight = height
}

// SetPreserveContent selects whether engine content is replayed (true)
// or cleared (false) across a dimension-changing rescale.
func (r *Rescaler) SetPreserveContent(preserve bool) {
	r.preserve = preserve
}

// Rescale recomputes the target backing dimensions and applies them.
//
// The ratio never drops below 1, so the buffer is never downscaled
// beneath logical resolution. When the target dimensions equal the
// current buffer the call returns immediately without touching the
// buffer. Otherwise the buffer is reallocated, the draw scale is updated
// so logical coordinates stay in device-independent pixels, and engine
// content is either replayed or explicitly cleared. The explicit clear
// keeps the engine's stroke history consistent with the now-blank
// buffer instead of relying on the implicit clear alone.
func (r *Rescaler) Rescale() error {
	if r.engine != nil {
		r.engine.mu.Lock()
		defer r.engine.mu.Unlock()
	}
	return r.rescaleLocked()
}

// RescaleToLayout records a new canvas layout size, then rescales.
// It exists so a host resize is applied atomically with respect to
// concurrent engine painting.
func (r *Rescaler) RescaleToLayout(width, height float64) error {
	if r.engine != nil {
		r.engine.mu.Lock()
		defer r.engine.mu.Unlock()
	}
	r.canvas.SetLogicalSize(width, height)
	return r.rescaleLocked()
}

func (r *Rescaler) rescaleLocked() error {
	ratio := math.Max(r.pixelRatio(), 1)

	logicalW, logicalH := r.canvas.LogicalSize()
	if r.explicitWidth > 0 {
		logicalW = r.explicitWidth
	}
	if r.explicitHeight > 0 {
		logicalH = r.explicitHeight
	}
	targetW := int(math.Round(logicalW * ratio))
	targetH := int(math.Round(logicalH * ratio))

	curW, curH := r.canvas.Size()
	if targetW == curW && targetH == curH {
		return nil
	}

	var snapshot []Stroke
	var raster image.Image
	if r.preserve && r.engine != nil {
		snapshot = r.engine.toDataLocked()
		if r.engine.imported {
			// Imported raster content has no stroke data; carry the
			// pixels themselves across the resize.
			raster = r.canvas.Snapshot()
		}
	}

	if err := r.canvas.SetSize(targetW, targetH); err != nil {
		return err
	}
	r.canvas.SetScale(ratio)

	Logger().Debug("rescaled canvas",
		"width", targetW, "height", targetH, "ratio", ratio,
		"preserved", r.preserve && r.engine != nil)

	if r.engine != nil {
		if r.preserve {
			r.engine.restoreLocked(snapshot, raster)
		} else {
			r.engine.clearLocked()
		}
	}
	return nil
}
