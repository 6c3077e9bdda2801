package sigpad

import (
	"time"

	"github.com/gogpu/sigpad/throttle"
)

// DefaultDebounceInterval is the resize debounce delay used when the
// component config leaves it zero.
const DefaultDebounceInterval = 150 * time.Millisecond

// Viewport is the host surface a component is mounted into. It supplies
// the layout size, the device pixel ratio, and resize notifications.
type Viewport interface {
	// PixelRatio returns the scale factor between logical and device
	// pixels.
	PixelRatio() float64

	// Size returns the current viewport size in logical pixels.
	Size() (width, height float64)

	// OnResize registers fn to be called with the new size whenever the
	// viewport changes. The returned cancel function removes the
	// listener; it must be safe to call more than once.
	OnResize(fn func(width, height float64)) (cancel func())
}

// Config configures a Component.
type Config struct {
	// Width and Height, when positive, fix the logical canvas size on
	// that axis. With both set the component does not listen for
	// viewport resizes; with only one set the other axis keeps
	// following the viewport.
	Width  float64
	Height float64

	// RedrawOnResize selects whether signature content is replayed
	// (true) or cleared (false) across a dimension-changing rescale.
	RedrawOnResize bool

	// DebounceInterval is the quiet period required after the last
	// resize event before the canvas is rescaled. Zero selects
	// DefaultDebounceInterval.
	DebounceInterval time.Duration

	// PadOptions are passed through to the drawing engine.
	PadOptions []Option

	// Clock overrides the time source for the resize debounce and the
	// engine. Nil means the system clock.
	Clock throttle.Clock
}

// viewportSize is the payload carried through the resize debounce.
type viewportSize struct {
	width, height float64
}

// Component wraps a Pad with lifecycle management: it creates the engine
// on mount, keeps the canvas scaled to the viewport through a debounced
// resize listener, and releases both on unmount.
//
// All pad operations are proxied with a mounted-state guard: before
// Mount and after Unmount they are silently skipped rather than failing,
// since an absent engine only means the component is not on screen yet.
type Component struct {
	cfg      Config
	canvas   Canvas
	viewport Viewport
	pad      *Pad
	rescaler *Rescaler

	resizes      *throttle.Limiter[viewportSize]
	cancelResize func()
	mounted      bool
}

// NewComponent creates an unmounted component.
func NewComponent(cfg Config) *Component {
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	return &Component{cfg: cfg}
}

// Mount binds the component to a canvas and viewport, creates the
// drawing engine, and performs the initial rescale. Unless both
// dimensions are fixed, a debounced viewport resize listener is
// acquired; it is released again by Unmount.
func (c *Component) Mount(canvas Canvas, viewport Viewport) error {
	if c.mounted {
		return nil
	}

	opts := c.cfg.PadOptions
	if c.cfg.Clock != nil {
		opts = append(append([]Option(nil), opts...), WithClock(c.cfg.Clock))
	}
	pad, err := NewPad(canvas, opts...)
	if err != nil {
		return err
	}

	var ratio func() float64
	if viewport != nil {
		ratio = viewport.PixelRatio
	}
	rescaler := NewRescaler(canvas, pad, ratio)
	rescaler.SetPreserveContent(c.cfg.RedrawOnResize)

	// Resize listening stops only when both dimensions are pinned; a
	// single explicit dimension overrides its axis while the other
	// keeps following the viewport layout.
	fixed := c.cfg.Width > 0 && c.cfg.Height > 0
	if c.cfg.Width > 0 || c.cfg.Height > 0 {
		rescaler.SetExplicitSize(c.cfg.Width, c.cfg.Height)
	}
	if !fixed && viewport != nil {
		canvas.SetLogicalSize(viewport.Size())
	}

	if err := rescaler.Rescale(); err != nil {
		return err
	}

	c.canvas = canvas
	c.viewport = viewport
	c.pad = pad
	c.rescaler = rescaler
	c.mounted = true

	if !fixed && viewport != nil {
		c.resizes = throttle.New(c.cfg.DebounceInterval, throttle.Options{
			Mode:  throttle.TrailingDebounce,
			Clock: c.cfg.Clock,
		}, c.applyResize)
		c.cancelResize = viewport.OnResize(func(w, h float64) {
			c.resizes.Call(viewportSize{width: w, height: h})
		})
	}

	Logger().Debug("component mounted", "fixed", fixed)
	return nil
}

// applyResize is the debounced resize sink.
func (c *Component) applyResize(sz viewportSize) {
	if err := c.rescaler.RescaleToLayout(sz.width, sz.height); err != nil {
		Logger().Warn("rescale after viewport resize failed", "error", err)
	}
}

// Unmount releases the resize listener, cancels any pending debounced
// rescale, and disables engine input. Unmount is idempotent.
func (c *Component) Unmount() {
	if !c.mounted {
		return
	}
	if c.cancelResize != nil {
		c.cancelResize()
		c.cancelResize = nil
	}
	if c.resizes != nil {
		c.resizes.Stop()
		c.resizes = nil
	}
	c.pad.Off()
	c.mounted = false
	Logger().Debug("component unmounted")
}

// Mounted reports whether the component is mounted.
func (c *Component) Mounted() bool { return c.mounted }

// Pad returns the drawing engine, or nil before Mount / after Unmount
// state was torn down. Most callers should use the proxied operations
// instead.
func (c *Component) Pad() *Pad {
	if !c.mounted {
		return nil
	}
	return c.pad
}

// PointerDown forwards a pen-down event to the engine.
func (c *Component) PointerDown(pt Point) {
	if !c.mounted {
		return
	}
	c.pad.PointerDown(pt)
}

// PointerMove forwards a pen-move event to the engine.
func (c *Component) PointerMove(pt Point) {
	if !c.mounted {
		return
	}
	c.pad.PointerMove(pt)
}

// PointerUp forwards a pen-up event to the engine.
func (c *Component) PointerUp(pt Point) {
	if !c.mounted {
		return
	}
	c.pad.PointerUp(pt)
}

// Clear discards the signature.
func (c *Component) Clear() {
	if !c.mounted {
		return
	}
	c.pad.Clear()
}

// IsEmpty reports whether no signature content exists. An unmounted
// component is empty by definition.
func (c *Component) IsEmpty() bool {
	if !c.mounted {
		return true
	}
	return c.pad.IsEmpty()
}

// Undo removes the most recent stroke and repaints the remainder.
func (c *Component) Undo() {
	if !c.mounted {
		return
	}
	data := c.pad.ToData()
	if len(data) == 0 {
		return
	}
	c.pad.FromData(data[:len(data)-1])
}

// ToData returns the signature stroke data, or nil when unmounted.
func (c *Component) ToData() []Stroke {
	if !c.mounted {
		return nil
	}
	return c.pad.ToData()
}

// FromData replaces the signature stroke data.
func (c *Component) FromData(strokes []Stroke) {
	if !c.mounted {
		return
	}
	c.pad.FromData(strokes)
}

// ToDataURL renders the signature as a base64 data URL, or returns an
// empty string when unmounted.
func (c *Component) ToDataURL(mimeType string) (string, error) {
	if !c.mounted {
		return "", nil
	}
	return c.pad.ToDataURL(mimeType)
}

// FromDataURL imports a raster signature from a base64 data URL.
func (c *Component) FromDataURL(url string) error {
	if !c.mounted {
		return nil
	}
	return c.pad.FromDataURL(url)
}

// Enable resumes input capture on the engine.
func (c *Component) Enable() {
	if !c.mounted {
		return
	}
	c.pad.On()
}

// Disable suspends input capture on the engine.
func (c *Component) Disable() {
	if !c.mounted {
		return
	}
	c.pad.Off()
}
