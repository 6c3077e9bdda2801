package sigpad

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync"
	"time"

	"github.com/gogpu/sigpad/throttle"
)

// Pad is the signature capture engine. It consumes pointer events,
// records stroke data, and paints velocity-weighted strokes onto its
// Canvas.
//
// The pad locks internally: with move throttling enabled, deferred
// samples are painted from a timer goroutine, so pad state is guarded by
// a mutex. Stroke callbacks run outside the lock and may call back into
// the pad.
type Pad struct {
	canvas Canvas
	clock  throttle.Clock

	mu                   sync.Mutex
	dotSize              float64
	minWidth             float64
	maxWidth             float64
	throttleInterval     time.Duration
	backgroundColor      RGBA
	penColor             RGBA
	velocityFilterWeight float64
	onBegin              func(*Pad)
	onEnd                func(*Pad)

	enabled  bool
	strokes  []Stroke
	current  *Stroke
	imported bool // raster content arrived via FromDataURL

	// Rolling sample window for curve fitting.
	window       []StrokePoint
	lastVelocity float64
	lastWidth    float64

	moves *throttle.Limiter[StrokePoint]
}

// NewPad creates a pad drawing onto canvas. The canvas is cleared to the
// configured background color. Invalid options are reported immediately.
func NewPad(canvas Canvas, opts ...Option) (*Pad, error) {
	if canvas == nil {
		return nil, errors.New("sigpad: canvas must not be nil")
	}

	options := defaultPadOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	clock := options.clock
	if clock == nil {
		clock = throttle.SystemClock()
	}

	p := &Pad{
		canvas:               canvas,
		clock:                clock,
		dotSize:              options.dotSize,
		minWidth:             options.minWidth,
		maxWidth:             options.maxWidth,
		throttleInterval:     options.throttle,
		backgroundColor:      options.backgroundColor,
		penColor:             options.penColor,
		velocityFilterWeight: options.velocityFilterWeight,
		onBegin:              options.onBegin,
		onEnd:                options.onEnd,
		enabled:              true,
		window:               make([]StrokePoint, 0, 4),
	}
	p.rebuildMoveLimiterLocked()
	p.resetStrokeStateLocked()
	canvas.Fill(p.backgroundColor)
	return p, nil
}

// rebuildMoveLimiterLocked installs the pointer-move rate limiter for
// the current throttle interval. Zero disables throttling.
func (p *Pad) rebuildMoveLimiterLocked() {
	if p.moves != nil {
		p.moves.Stop()
		p.moves = nil
	}
	if p.throttleInterval > 0 {
		p.moves = throttle.New(p.throttleInterval, throttle.Options{
			Mode:  throttle.Throttle,
			Clock: p.clock,
		}, p.deferredMove)
	}
}

// resetStrokeStateLocked clears the curve fitting window between strokes.
func (p *Pad) resetStrokeStateLocked() {
	p.window = p.window[:0]
	p.lastVelocity = 0
	p.lastWidth = (p.minWidth + p.maxWidth) / 2
}

// sample stamps a pointer position with the current time.
func (p *Pad) sample(pt Point) StrokePoint {
	return StrokePoint{
		X:    pt.X,
		Y:    pt.Y,
		Time: p.clock.Now().UnixMilli(),
	}
}

// PointerDown begins a new stroke at pt. Ignored while input capture is
// disabled.
func (p *Pad) PointerDown(pt Point) {
	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		return
	}
	p.resetStrokeStateLocked()
	p.current = &Stroke{Color: p.penColor.Hex()}
	begin := p.onBegin
	p.mu.Unlock()

	if begin != nil {
		begin(p)
	}

	p.mu.Lock()
	p.strokeUpdateLocked(p.sample(pt))
	p.mu.Unlock()
}

// PointerMove extends the current stroke to pt. Moves are rate limited
// by the configured throttle interval; the limiter carries the sample of
// the triggering call, so coalesced moves keep their own coordinates and
// timestamps.
func (p *Pad) PointerMove(pt Point) {
	p.mu.Lock()
	if !p.enabled || p.current == nil {
		p.mu.Unlock()
		return
	}
	s := p.sample(pt)
	moves := p.moves
	if moves == nil {
		p.strokeUpdateLocked(s)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	moves.Call(s)
}

// deferredMove is the throttled move sink.
func (p *Pad) deferredMove(s StrokePoint) {
	p.mu.Lock()
	p.strokeUpdateLocked(s)
	p.mu.Unlock()
}

// PointerUp finishes the current stroke at pt. A stroke that never moved
// is rendered as a single dot.
func (p *Pad) PointerUp(pt Point) {
	p.mu.Lock()
	if !p.enabled || p.current == nil {
		p.mu.Unlock()
		return
	}
	if p.moves != nil {
		// A deferred move must not land after the stroke is closed.
		p.moves.Cancel()
	}
	p.strokeUpdateLocked(p.sample(pt))

	if len(p.current.Points) == 1 {
		p.drawDotLocked(p.current.Points[0].Point(), p.penColor)
	}
	p.strokes = append(p.strokes, p.current.clone())
	p.current = nil
	p.resetStrokeStateLocked()
	end := p.onEnd
	p.mu.Unlock()

	if end != nil {
		end(p)
	}
}

// strokeUpdateLocked records one sample and paints the newest curve
// segment. Consecutive samples at the same position collapse into one.
func (p *Pad) strokeUpdateLocked(s StrokePoint) {
	if p.current == nil {
		return
	}
	if n := len(p.current.Points); n > 0 {
		last := p.current.Points[n-1]
		if last.X == s.X && last.Y == s.Y {
			return
		}
	}
	p.current.Points = append(p.current.Points, s)
	p.addToWindowLocked(s, p.penColor)
}

// addToWindowLocked pushes a sample into the curve fitting window and,
// once four samples are available, draws the bezier segment between the
// two middle ones.
func (p *Pad) addToWindowLocked(s StrokePoint, col RGBA) {
	p.window = append(p.window, s)
	if len(p.window) < 3 {
		return
	}
	if len(p.window) == 3 {
		// Duplicate the first sample so the first segment has context.
		p.window = append([]StrokePoint{p.window[0]}, p.window...)
	}

	startWidth, endWidth := p.segmentWidthsLocked(p.window[1], p.window[2])
	curve := bezierThrough(
		p.window[0].Point(),
		p.window[1].Point(),
		p.window[2].Point(),
		p.window[3].Point(),
	)
	p.drawCurveLocked(curve, startWidth, endWidth, col)

	copy(p.window, p.window[1:])
	p.window = p.window[:3]
}

// segmentWidthsLocked computes the stroke widths at both ends of the
// next curve segment from the filtered pen velocity.
func (p *Pad) segmentWidthsLocked(start, end StrokePoint) (startWidth, endWidth float64) {
	velocity := p.velocityFilterWeight*end.velocityFrom(start) +
		(1-p.velocityFilterWeight)*p.lastVelocity

	newWidth := p.strokeWidthLocked(velocity)
	startWidth = p.lastWidth
	endWidth = newWidth

	p.lastVelocity = velocity
	p.lastWidth = newWidth
	return startWidth, endWidth
}

// strokeWidthLocked maps a velocity (logical px/ms) to a stroke width:
// fast movement thins the line toward minWidth.
func (p *Pad) strokeWidthLocked(velocity float64) float64 {
	w := p.maxWidth / (velocity + 1)
	if w < p.minWidth {
		return p.minWidth
	}
	return w
}

// drawCurveLocked paints a curve segment as overlapping dots whose size
// eases from startWidth to endWidth.
func (p *Pad) drawCurveLocked(b Bezier, startWidth, endWidth float64, col RGBA) {
	delta := endWidth - startWidth
	steps := b.drawSteps()
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		width := startWidth + t*t*t*delta
		p.canvas.FillDot(b.Eval(t), width, col)
	}
}

// drawDotLocked paints the single-tap dot.
func (p *Pad) drawDotLocked(pt Point, col RGBA) {
	size := p.dotSize
	if size <= 0 {
		size = (p.minWidth + p.maxWidth) / 2
	}
	p.canvas.FillDot(pt, size, col)
}

// On enables input capture.
func (p *Pad) On() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

// Off disables input capture. Pointer events are ignored until On is
// called; a deferred throttled move is dropped.
func (p *Pad) Off() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
	if p.moves != nil {
		p.moves.Cancel()
	}
}

// Enabled reports whether input capture is enabled.
func (p *Pad) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// IsEmpty reports whether the pad holds no signature: no committed
// strokes, no stroke in progress, and no imported raster content.
func (p *Pad) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.strokes) == 0 && p.current == nil && !p.imported
}

// Clear discards all signature content and repaints the background.
func (p *Pad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

func (p *Pad) clearLocked() {
	if p.moves != nil {
		p.moves.Cancel()
	}
	p.strokes = nil
	p.current = nil
	p.imported = false
	p.resetStrokeStateLocked()
	p.canvas.Fill(p.backgroundColor)
}

// ToData returns a deep copy of the committed strokes.
func (p *Pad) ToData() []Stroke {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.toDataLocked()
}

func (p *Pad) toDataLocked() []Stroke {
	out := make([]Stroke, 0, len(p.strokes))
	for _, s := range p.strokes {
		out = append(out, s.clone())
	}
	return out
}

// FromData replaces the pad contents with the given strokes, repainting
// them through the regular curve pipeline. Stroke callbacks do not fire.
func (p *Pad) FromData(strokes []Stroke) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fromDataLocked(strokes)
}

func (p *Pad) fromDataLocked(strokes []Stroke) {
	p.restoreLocked(strokes, nil)
}

// restoreLocked repaints a full content snapshot: imported raster first,
// then the recorded strokes over it. Used after a destructive canvas
// resize so both kinds of content survive.
func (p *Pad) restoreLocked(strokes []Stroke, raster image.Image) {
	p.clearLocked()
	if raster != nil {
		p.canvas.DrawImage(raster)
		p.imported = true
	}
	for _, s := range strokes {
		p.replayStrokeLocked(s)
		p.strokes = append(p.strokes, s.clone())
	}
	p.resetStrokeStateLocked()
}

// replayStrokeLocked paints one recorded stroke in its own color.
func (p *Pad) replayStrokeLocked(s Stroke) {
	p.resetStrokeStateLocked()
	col := ParseHex(s.Color)
	if len(s.Points) == 1 {
		p.drawDotLocked(s.Points[0].Point(), col)
		return
	}
	for _, sp := range s.Points {
		p.addToWindowLocked(sp, col)
	}
}

// ToDataURL renders the canvas to an image and returns it as a base64
// data URL. Supported MIME types are "image/png" (also the default for
// an empty string) and "image/jpeg".
func (p *Pad) ToDataURL(mimeType string) (string, error) {
	p.mu.Lock()
	img := p.canvas.Snapshot()
	p.mu.Unlock()

	var buf bytes.Buffer
	switch mimeType {
	case "", "image/png":
		mimeType = "image/png"
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("sigpad: encode PNG: %w", err)
		}
	case "image/jpeg":
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			return "", fmt.Errorf("sigpad: encode JPEG: %w", err)
		}
	default:
		return "", fmt.Errorf("sigpad: unsupported MIME type %q", mimeType)
	}
	return encodeDataURL(mimeType, buf.Bytes()), nil
}

// FromDataURL draws a base64 data URL image onto the canvas, scaled to
// the backing dimensions. The pad then reports non-empty even though no
// vector stroke data exists for the imported content.
func (p *Pad) FromDataURL(url string) error {
	mimeType, raw, err := decodeDataURL(url)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("sigpad: decode %s image: %w", mimeType, err)
	}

	p.mu.Lock()
	p.canvas.DrawImage(img)
	p.imported = true
	p.mu.Unlock()

	Logger().Debug("imported raster signature",
		"mime", mimeType, "bytes", len(raw))
	return nil
}

// Canvas returns the canvas the pad draws onto.
func (p *Pad) Canvas() Canvas { return p.canvas }

// Snapshot returns a copy of the canvas contents at backing resolution.
// Unlike reading the canvas directly, Snapshot holds the pad lock, so it
// is safe while throttled moves are painting from timer goroutines.
func (p *Pad) Snapshot() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canvas.Snapshot()
}

// DotSize returns the configured tap dot size.
func (p *Pad) DotSize() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dotSize
}

// SetDotSize updates the tap dot size.
func (p *Pad) SetDotSize(size float64) error {
	if size < 0 {
		return fmt.Errorf("sigpad: dot size must not be negative, got %v", size)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dotSize = size
	return nil
}

// MinWidth returns the minimum stroke width.
func (p *Pad) MinWidth() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.minWidth
}

// MaxWidth returns the maximum stroke width.
func (p *Pad) MaxWidth() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxWidth
}

// SetWidthRange updates the stroke width range.
func (p *Pad) SetWidthRange(minW, maxW float64) error {
	if minW <= 0 || maxW <= 0 {
		return fmt.Errorf("sigpad: stroke widths must be positive, got min %v max %v", minW, maxW)
	}
	if minW > maxW {
		return fmt.Errorf("sigpad: min width %v exceeds max width %v", minW, maxW)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.minWidth = minW
	p.maxWidth = maxW
	return nil
}

// Throttle returns the pointer-move throttle interval.
func (p *Pad) Throttle() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.throttleInterval
}

// SetThrottle updates the pointer-move throttle interval. Zero disables
// throttling.
func (p *Pad) SetThrottle(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("sigpad: throttle must not be negative, got %v", d)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.throttleInterval = d
	p.rebuildMoveLimiterLocked()
	return nil
}

// BackgroundColor returns the canvas background color.
func (p *Pad) BackgroundColor() RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backgroundColor
}

// SetBackgroundColor updates the background used by the next Clear.
func (p *Pad) SetBackgroundColor(c RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backgroundColor = c
}

// PenColor returns the stroke color.
func (p *Pad) PenColor() RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.penColor
}

// SetPenColor updates the stroke color for subsequent strokes.
func (p *Pad) SetPenColor(c RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.penColor = c
}

// VelocityFilterWeight returns the velocity smoothing weight.
func (p *Pad) VelocityFilterWeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.velocityFilterWeight
}

// SetVelocityFilterWeight updates the velocity smoothing weight.
func (p *Pad) SetVelocityFilterWeight(w float64) error {
	if w <= 0 || w > 1 {
		return fmt.Errorf("sigpad: velocity filter weight must be in (0, 1], got %v", w)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.velocityFilterWeight = w
	return nil
}

// SetOnBegin replaces the stroke-begin callback. Nil clears it.
func (p *Pad) SetOnBegin(fn func(*Pad)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onBegin = fn
}

// SetOnEnd replaces the stroke-end callback. Nil clears it.
func (p *Pad) SetOnEnd(fn func(*Pad)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onEnd = fn
}
