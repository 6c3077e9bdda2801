package sigpad

import (
	"fmt"
	"time"

	"github.com/gogpu/sigpad/throttle"
)

// Option configures a Pad during creation.
// Use functional options to customize Pad behavior.
//
// Example:
//
//	// Default pen settings
//	pad, err := sigpad.NewPad(canvas)
//
//	// Custom pen
//	pad, err := sigpad.NewPad(canvas,
//	    sigpad.WithPenColor(sigpad.ParseHex("#1a237e")),
//	    sigpad.WithWidthRange(1, 4),
//	)
type Option func(*padOptions)

// padOptions holds optional configuration for Pad creation.
type padOptions struct {
	dotSize              float64
	minWidth             float64
	maxWidth             float64
	throttle             time.Duration
	backgroundColor      RGBA
	penColor             RGBA
	velocityFilterWeight float64
	onBegin              func(*Pad)
	onEnd                func(*Pad)
	clock                throttle.Clock
}

// defaultPadOptions returns the default pad options.
func defaultPadOptions() padOptions {
	return padOptions{
		dotSize:              0, // 0 means (minWidth+maxWidth)/2
		minWidth:             0.5,
		maxWidth:             2.5,
		throttle:             16 * time.Millisecond,
		backgroundColor:      Transparent,
		penColor:             Black,
		velocityFilterWeight: 0.7,
	}
}

// validate rejects configurations the engine cannot draw with.
func (o *padOptions) validate() error {
	if o.dotSize < 0 {
		return fmt.Errorf("sigpad: dot size must not be negative, got %v", o.dotSize)
	}
	if o.minWidth <= 0 || o.maxWidth <= 0 {
		return fmt.Errorf("sigpad: stroke widths must be positive, got min %v max %v", o.minWidth, o.maxWidth)
	}
	if o.minWidth > o.maxWidth {
		return fmt.Errorf("sigpad: min width %v exceeds max width %v", o.minWidth, o.maxWidth)
	}
	if o.throttle < 0 {
		return fmt.Errorf("sigpad: throttle must not be negative, got %v", o.throttle)
	}
	if o.velocityFilterWeight <= 0 || o.velocityFilterWeight > 1 {
		return fmt.Errorf("sigpad: velocity filter weight must be in (0, 1], got %v", o.velocityFilterWeight)
	}
	return nil
}

// WithDotSize sets the radius-defining diameter of the dot painted for a
// single tap. Zero (the default) uses the mean of the width range.
func WithDotSize(size float64) Option {
	return func(o *padOptions) { o.dotSize = size }
}

// WithWidthRange sets the minimum and maximum stroke width. Fast pen
// movement tends toward min, slow movement toward max.
func WithWidthRange(minW, maxW float64) Option {
	return func(o *padOptions) {
		o.minWidth = minW
		o.maxWidth = maxW
	}
}

// WithThrottle sets the interval used to rate limit pointer-move
// handling. Zero disables throttling so every move sample is drawn.
func WithThrottle(d time.Duration) Option {
	return func(o *padOptions) { o.throttle = d }
}

// WithBackgroundColor sets the color the canvas is cleared to.
func WithBackgroundColor(c RGBA) Option {
	return func(o *padOptions) { o.backgroundColor = c }
}

// WithPenColor sets the stroke color.
func WithPenColor(c RGBA) Option {
	return func(o *padOptions) { o.penColor = c }
}

// WithVelocityFilterWeight sets the smoothing weight applied to the pen
// velocity estimate, in (0, 1]. Higher values react faster to speed
// changes.
func WithVelocityFilterWeight(w float64) Option {
	return func(o *padOptions) { o.velocityFilterWeight = w }
}

// WithOnBegin registers a callback invoked when a stroke begins.
func WithOnBegin(fn func(*Pad)) Option {
	return func(o *padOptions) { o.onBegin = fn }
}

// WithOnEnd registers a callback invoked when a stroke ends.
func WithOnEnd(fn func(*Pad)) Option {
	return func(o *padOptions) { o.onEnd = fn }
}

// WithClock sets the clock used for sample timestamps and move
// throttling. Use this to inject a fake clock in tests; nil (the
// default) means the system clock.
func WithClock(c throttle.Clock) Option {
	return func(o *padOptions) { o.clock = c }
}
