// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sigpad

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Canvas is the drawing surface a Pad renders onto.
//
// A Canvas has two sizes: the logical size, in device-independent pixels,
// which is the size the surface occupies in the host's layout, and the
// backing size, in device pixels, which is the resolution of the pixel
// buffer behind it. A uniform scale factor maps logical coordinates onto
// the backing buffer so that callers never deal in device pixels.
//
// SetSize reallocates the backing buffer and therefore discards its
// contents, mirroring the behavior of platform canvas surfaces. Callers
// that need to keep content across a resize must snapshot and restore it
// themselves; Rescaler does exactly that.
//
// Canvases are NOT thread-safe. Each canvas should be used from a single
// goroutine, or external synchronization must be used.
type Canvas interface {
	// Size returns the backing buffer dimensions in device pixels.
	Size() (width, height int)

	// SetSize reallocates the backing buffer. The previous contents are
	// discarded. Dimensions must be positive.
	SetSize(width, height int) error

	// LogicalSize returns the layout size in device-independent pixels.
	LogicalSize() (width, height float64)

	// SetLogicalSize records a new layout size. It does not touch the
	// backing buffer; the host calls this when its layout changes.
	SetLogicalSize(width, height float64)

	// Scale returns the logical-to-device scale factor.
	Scale() float64

	// SetScale sets the logical-to-device scale factor applied to all
	// subsequent drawing operations.
	SetScale(s float64)

	// Fill floods the entire surface with a color.
	Fill(c RGBA)

	// FillDot paints an antialiased filled circle. Center and radius are
	// in logical coordinates.
	FillDot(center Point, radius float64, c RGBA)

	// DrawImage draws img over the whole surface, scaling it to the
	// backing dimensions.
	DrawImage(img image.Image)

	// Snapshot returns a copy of the surface contents as an RGBA image
	// at backing resolution.
	Snapshot() *image.RGBA
}

// ImageCanvas is a CPU-backed Canvas rendering into a Pixmap.
type ImageCanvas struct {
	pixmap   *Pixmap
	logicalW float64
	logicalH float64
	scale    float64
}

var _ Canvas = (*ImageCanvas)(nil)

// NewImageCanvas creates a canvas whose logical and backing sizes both
// start at width x height (scale factor 1).
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		pixmap:   NewPixmap(width, height),
		logicalW: float64(width),
		logicalH: float64(height),
		scale:    1,
	}
}

// Size returns the backing buffer dimensions in device pixels.
func (c *ImageCanvas) Size() (int, int) {
	return c.pixmap.Width(), c.pixmap.Height()
}

// SetSize reallocates the backing buffer, discarding its contents.
func (c *ImageCanvas) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("sigpad: invalid canvas dimensions %dx%d", width, height)
	}
	c.pixmap = NewPixmap(width, height)
	return nil
}

// LogicalSize returns the layout size in device-independent pixels.
func (c *ImageCanvas) LogicalSize() (float64, float64) {
	return c.logicalW, c.logicalH
}

// SetLogicalSize records a new layout size.
func (c *ImageCanvas) SetLogicalSize(width, height float64) {
	c.logicalW = width
	c.logicalH = height
}

// Scale returns the logical-to-device scale factor.
func (c *ImageCanvas) Scale() float64 {
	return c.scale
}

// SetScale sets the logical-to-device scale factor.
func (c *ImageCanvas) SetScale(s float64) {
	c.scale = s
}

// Fill floods the entire surface with a color.
func (c *ImageCanvas) Fill(col RGBA) {
	c.pixmap.Fill(col)
}

// FillDot paints an antialiased filled circle at center with the given
// radius, both in logical coordinates.
func (c *ImageCanvas) FillDot(center Point, radius float64, col RGBA) {
	cx := center.X * c.scale
	cy := center.Y * c.scale
	r := radius * c.scale

	x0 := int(math.Floor(cx - r - 1))
	x1 := int(math.Ceil(cx + r + 1))
	y0 := int(math.Floor(cy - r - 1))
	y1 := int(math.Ceil(cy + r + 1))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// Coverage from the distance of the pixel center to the
			// circle edge, feathered over one device pixel.
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			cov := r + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			c.pixmap.BlendPixel(x, y, RGBA{R: col.R, G: col.G, B: col.B, A: col.A * cov})
		}
	}
}

// DrawImage draws img over the whole surface, resampling it to the
// backing dimensions with a Catmull-Rom kernel.
func (c *ImageCanvas) DrawImage(img image.Image) {
	dst := c.pixmap.ToImage()
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	copy(c.pixmap.data, dst.Pix)
}

// Snapshot returns a copy of the surface contents at backing resolution.
func (c *ImageCanvas) Snapshot() *image.RGBA {
	return c.pixmap.ToImage()
}
