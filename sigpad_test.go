package sigpad

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"
)

func TestNewPadOptionValidation(t *testing.T) {
	canvas := NewImageCanvas(100, 100)

	tests := []struct {
		name    string
		canvas  Canvas
		opts    []Option
		wantErr bool
	}{
		{"defaults", canvas, nil, false},
		{"nil canvas", nil, nil, true},
		{"negative dot size", canvas, []Option{WithDotSize(-1)}, true},
		{"zero min width", canvas, []Option{WithWidthRange(0, 2)}, true},
		{"min above max", canvas, []Option{WithWidthRange(3, 1)}, true},
		{"negative throttle", canvas, []Option{WithThrottle(-time.Second)}, true},
		{"zero filter weight", canvas, []Option{WithVelocityFilterWeight(0)}, true},
		{"filter weight above one", canvas, []Option{WithVelocityFilterWeight(1.5)}, true},
		{"custom pen", canvas, []Option{WithPenColor(ParseHex("#336699")), WithWidthRange(1, 4)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPad(tt.canvas, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPad() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPadTapDrawsDot(t *testing.T) {
	canvas := NewImageCanvas(100, 100)
	pad := newTestPad(t, canvas)

	pad.PointerDown(Pt(50, 50))
	pad.PointerUp(Pt(50, 50))

	data := pad.ToData()
	if len(data) != 1 || len(data[0].Points) != 1 {
		t.Fatalf("tap produced %+v, want one single-point stroke", data)
	}
	if canvas.Snapshot().RGBAAt(50, 50).A == 0 {
		t.Error("tap left no ink at the tap position")
	}
}

func TestPadEmptyLifecycle(t *testing.T) {
	canvas := NewImageCanvas(200, 100)
	pad := newTestPad(t, canvas)

	if !pad.IsEmpty() {
		t.Fatal("new pad is not empty")
	}

	pad.PointerDown(Pt(10, 10))
	if pad.IsEmpty() {
		t.Error("pad with a stroke in progress reports empty")
	}
	pad.PointerUp(Pt(12, 12))
	if pad.IsEmpty() {
		t.Error("pad with a committed stroke reports empty")
	}

	pad.Clear()
	if !pad.IsEmpty() {
		t.Error("cleared pad is not empty")
	}
	if hasInk(canvas) {
		t.Error("cleared pad left ink on the canvas")
	}
}

func TestPadOffIgnoresInput(t *testing.T) {
	canvas := NewImageCanvas(100, 100)
	pad := newTestPad(t, canvas)

	pad.Off()
	pad.PointerDown(Pt(10, 10))
	pad.PointerMove(Pt(20, 20))
	pad.PointerUp(Pt(30, 30))
	if !pad.IsEmpty() {
		t.Error("disabled pad captured input")
	}

	pad.On()
	pad.PointerDown(Pt(10, 10))
	pad.PointerUp(Pt(10, 10))
	if pad.IsEmpty() {
		t.Error("re-enabled pad ignored input")
	}
}

func TestPadStrokeCallbacks(t *testing.T) {
	canvas := NewImageCanvas(100, 100)
	var began, ended int
	pad := newTestPad(t, canvas,
		WithOnBegin(func(*Pad) { began++ }),
		WithOnEnd(func(*Pad) { ended++ }),
	)

	pad.PointerDown(Pt(10, 10))
	if began != 1 || ended != 0 {
		t.Fatalf("after down: began=%d ended=%d, want 1, 0", began, ended)
	}
	pad.PointerUp(Pt(20, 20))
	if began != 1 || ended != 1 {
		t.Fatalf("after up: began=%d ended=%d, want 1, 1", began, ended)
	}

	// Callbacks run outside the pad lock and may call back in.
	pad.SetOnEnd(func(p *Pad) {
		ended++
		if p.IsEmpty() {
			t.Error("pad empty inside end callback")
		}
	})
	pad.PointerDown(Pt(30, 30))
	pad.PointerUp(Pt(40, 40))
	if ended != 2 {
		t.Errorf("replaced end callback ran %d times, want 1", ended-1)
	}
}

func TestPadDataRoundTrip(t *testing.T) {
	canvas := NewImageCanvas(200, 100)
	pad := newTestPad(t, canvas)
	scribble(t, pad)
	pad.PointerDown(Pt(150, 80))
	pad.PointerUp(Pt(150, 80))

	data := pad.ToData()
	if len(data) != 2 {
		t.Fatalf("ToData() returned %d strokes, want 2", len(data))
	}

	// Serialized form survives a JSON round trip.
	raw, err := EncodeData(data)
	if err != nil {
		t.Fatalf("EncodeData() error = %v", err)
	}
	decoded, err := DecodeData(raw)
	if err != nil {
		t.Fatalf("DecodeData() error = %v", err)
	}

	pad.Clear()
	pad.FromData(decoded)
	if pad.IsEmpty() {
		t.Fatal("pad empty after FromData")
	}
	if got := pad.ToData(); len(got) != 2 {
		t.Errorf("stroke count after round trip = %d, want 2", len(got))
	}
	if !hasInk(canvas) {
		t.Error("FromData did not repaint the strokes")
	}
}

func TestPadFromDataUsesStrokeColor(t *testing.T) {
	canvas := NewImageCanvas(100, 100)
	pad := newTestPad(t, canvas)

	pad.FromData([]Stroke{{
		Color:  "#ff0000",
		Points: []StrokePoint{{X: 50, Y: 50, Time: 0}},
	}})

	px := canvas.Snapshot().RGBAAt(50, 50)
	if px.A == 0 || px.R <= px.G || px.R <= px.B {
		t.Errorf("pixel at dot = %+v, want red ink", px)
	}
}

func TestPadToDataURL(t *testing.T) {
	canvas := NewImageCanvas(120, 60)
	pad := newTestPad(t, canvas)
	scribble(t, pad)

	url, err := pad.ToDataURL("")
	if err != nil {
		t.Fatalf("ToDataURL() error = %v", err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("ToDataURL() = %.40q..., want %q prefix", url, prefix)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("decoded image is %dx%d, want backing 120x60", b.Dx(), b.Dy())
	}
}

func TestPadToDataURLUnsupportedMIME(t *testing.T) {
	pad := newTestPad(t, NewImageCanvas(10, 10))
	if _, err := pad.ToDataURL("image/webp"); err == nil {
		t.Error("ToDataURL(image/webp): want error")
	}
}

func TestPadFromDataURL(t *testing.T) {
	canvas := NewImageCanvas(50, 50)
	pad := newTestPad(t, canvas)

	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255   // R
		src.Pix[i+3] = 255 // A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	if err := pad.FromDataURL(url); err != nil {
		t.Fatalf("FromDataURL() error = %v", err)
	}
	if pad.IsEmpty() {
		t.Error("pad reports empty after raster import")
	}
	if px := canvas.Snapshot().RGBAAt(25, 25); px.R == 0 {
		t.Errorf("pixel after import = %+v, want red", px)
	}
}

func TestPadFromDataURLInvalid(t *testing.T) {
	pad := newTestPad(t, NewImageCanvas(10, 10))

	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "image/png;base64,AAAA"},
		{"no comma", "data:image/png;base64"},
		{"not base64 marked", "data:image/png,AAAA"},
		{"bad base64", "data:image/png;base64,!!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pad.FromDataURL(tt.url)
			if !errors.Is(err, ErrInvalidDataURL) {
				t.Errorf("FromDataURL(%q) error = %v, want ErrInvalidDataURL", tt.url, err)
			}
		})
	}

	if !pad.IsEmpty() {
		t.Error("failed imports must not mark the pad non-empty")
	}
}

func TestPadStrokeWidthFromVelocity(t *testing.T) {
	pad := newTestPad(t, NewImageCanvas(10, 10), WithWidthRange(0.5, 2.5))

	tests := []struct {
		velocity float64
		want     float64
	}{
		{0, 2.5},    // at rest: max width
		{0.25, 2.0}, // moderate speed
		{4, 0.5},    // fast: clamped to min width
		{100, 0.5},
	}
	for _, tt := range tests {
		if got := pad.strokeWidthLocked(tt.velocity); got != tt.want {
			t.Errorf("strokeWidth(%v) = %v, want %v", tt.velocity, got, tt.want)
		}
	}
}

func TestPadCollapsesDuplicateSamples(t *testing.T) {
	canvas := NewImageCanvas(100, 100)
	pad := newTestPad(t, canvas)

	pad.PointerDown(Pt(10, 10))
	pad.PointerMove(Pt(10, 10))
	pad.PointerMove(Pt(10, 10))
	pad.PointerUp(Pt(10, 10))

	data := pad.ToData()
	if len(data) != 1 || len(data[0].Points) != 1 {
		t.Fatalf("duplicate samples produced %+v, want one single-point stroke", data)
	}
}

func TestPadSnapshot(t *testing.T) {
	canvas := NewImageCanvas(60, 60)
	pad := newTestPad(t, canvas)
	scribble(t, pad)

	snap := pad.Snapshot()
	want := canvas.Snapshot()
	if !bytes.Equal(snap.Pix, want.Pix) {
		t.Fatal("Snapshot() differs from the canvas contents")
	}

	// The snapshot is a copy, not a view of the backing buffer.
	for i := range snap.Pix {
		snap.Pix[i] = 0
	}
	if !hasInk(canvas) {
		t.Error("mutating the snapshot changed the canvas")
	}
}

func TestPadSnapshotDuringThrottledMoves(t *testing.T) {
	canvas := NewImageCanvas(200, 100)
	pad, err := NewPad(canvas, WithThrottle(2*time.Millisecond))
	if err != nil {
		t.Fatalf("NewPad() error = %v", err)
	}

	// Snapshot from another goroutine while deferred moves paint from
	// timer goroutines. The race detector flags any unlocked overlap.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = pad.Snapshot()
		}
	}()

	pad.PointerDown(Pt(0, 50))
	for i := 1; i <= 50; i++ {
		pad.PointerMove(Pt(float64(i*4), 50))
		time.Sleep(time.Millisecond)
	}
	pad.PointerUp(Pt(200, 50))
	<-done

	if pad.IsEmpty() {
		t.Error("pad empty after concurrent snapshotting")
	}
}

func TestPadThrottleCoalescesMoves(t *testing.T) {
	clock := newManualClock()
	canvas := NewImageCanvas(400, 100)
	pad, err := NewPad(canvas,
		WithThrottle(16*time.Millisecond),
		WithClock(clock),
	)
	if err != nil {
		t.Fatalf("NewPad() error = %v", err)
	}

	const moves = 20
	pad.PointerDown(Pt(0, 50))
	for i := 1; i <= moves; i++ {
		clock.Advance(2 * time.Millisecond)
		pad.PointerMove(Pt(float64(i*10), 50))
	}
	pad.PointerUp(Pt(400, 50))

	data := pad.ToData()
	if len(data) != 1 {
		t.Fatalf("stroke count = %d, want 1", len(data))
	}
	got := len(data[0].Points)
	// down + up + one handled move per elapsed 16ms window, far fewer
	// than one per raw move event.
	if got >= moves {
		t.Errorf("recorded %d points from %d raw moves, want coalescing", got, moves)
	}
	if got < 3 {
		t.Errorf("recorded %d points, want periodic throttled samples", got)
	}
}

func TestPadSetterValidation(t *testing.T) {
	pad := newTestPad(t, NewImageCanvas(10, 10))

	if err := pad.SetWidthRange(3, 1); err == nil {
		t.Error("SetWidthRange(3, 1): want error")
	}
	if err := pad.SetDotSize(-2); err == nil {
		t.Error("SetDotSize(-2): want error")
	}
	if err := pad.SetVelocityFilterWeight(2); err == nil {
		t.Error("SetVelocityFilterWeight(2): want error")
	}
	if err := pad.SetThrottle(-time.Second); err == nil {
		t.Error("SetThrottle(-1s): want error")
	}

	if err := pad.SetWidthRange(1, 4); err != nil {
		t.Errorf("SetWidthRange(1, 4) error = %v", err)
	}
	if pad.MinWidth() != 1 || pad.MaxWidth() != 4 {
		t.Errorf("width range = [%v, %v], want [1, 4]", pad.MinWidth(), pad.MaxWidth())
	}

	pad.SetPenColor(ParseHex("#ff0000"))
	if got := pad.PenColor(); got != RGB(1, 0, 0) {
		t.Errorf("PenColor() = %+v, want red", got)
	}
}
