// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tcellhost

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/sigpad"
)

func newSimHost(t *testing.T, cols, rows int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return New(screen), screen
}

func TestHostSize(t *testing.T) {
	h, _ := newSimHost(t, 80, 24)

	if got := h.PixelRatio(); got != 1 {
		t.Errorf("PixelRatio() = %v, want 1", got)
	}
	w, hgt := h.Size()
	if w != 80 || hgt != 48 {
		t.Errorf("Size() = %vx%v, want 80x48 (two pixel rows per cell)", w, hgt)
	}
}

func TestHostResizeListeners(t *testing.T) {
	h, _ := newSimHost(t, 80, 24)

	type size struct{ w, h float64 }
	var first, second []size
	cancelFirst := h.OnResize(func(w, hgt float64) { first = append(first, size{w, hgt}) })
	h.OnResize(func(w, hgt float64) { second = append(second, size{w, hgt}) })

	h.HandleEvent(tcell.NewEventResize(100, 30))
	want := size{100, 60}
	if len(first) != 1 || first[0] != want {
		t.Errorf("first listener got %v, want [%v]", first, want)
	}
	if len(second) != 1 || second[0] != want {
		t.Errorf("second listener got %v, want [%v]", second, want)
	}

	cancelFirst()
	cancelFirst() // safe to call again
	h.HandleEvent(tcell.NewEventResize(50, 10))
	if len(first) != 1 {
		t.Error("canceled listener was still notified")
	}
	if len(second) != 2 {
		t.Errorf("remaining listener saw %d events, want 2", len(second))
	}
}

func TestHostPointerTranslation(t *testing.T) {
	h, _ := newSimHost(t, 80, 24)

	type event struct {
		kind PointerKind
		pt   sigpad.Point
	}
	var events []event
	h.SetPointerHandler(func(kind PointerKind, pt sigpad.Point) {
		events = append(events, event{kind, pt})
	})

	h.HandleEvent(tcell.NewEventMouse(5, 3, tcell.Button1, 0))
	h.HandleEvent(tcell.NewEventMouse(6, 3, tcell.Button1, 0))
	h.HandleEvent(tcell.NewEventMouse(7, 4, tcell.ButtonNone, 0))
	h.HandleEvent(tcell.NewEventMouse(8, 5, tcell.ButtonNone, 0)) // hover, no drag

	want := []event{
		{PointerDown, sigpad.Pt(5, 6)},
		{PointerMove, sigpad.Pt(6, 6)},
		{PointerUp, sigpad.Pt(7, 8)},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d pointer events %v, want %d", len(events), events, len(want))
	}
	for i, ev := range events {
		if ev != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestHostQuitKeys(t *testing.T) {
	h, _ := newSimHost(t, 80, 24)

	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, 0), false},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, 0), false},
		{"plain rune continues", tcell.NewEventKey(tcell.KeyRune, 'c', 0), true},
		{"resize continues", tcell.NewEventResize(80, 24), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHostResizeLogging(t *testing.T) {
	orig := sigpad.Logger()
	t.Cleanup(func() { sigpad.SetLogger(orig) })

	var buf bytes.Buffer
	sigpad.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	h, _ := newSimHost(t, 80, 24)
	h.HandleEvent(tcell.NewEventResize(100, 30))

	if !strings.Contains(buf.String(), "terminal viewport resized") {
		t.Errorf("log output %q missing resize entry", buf.String())
	}
}

func TestHostBlit(t *testing.T) {
	h, screen := newSimHost(t, 4, 2)

	canvas := sigpad.NewImageCanvas(4, 4)
	canvas.Fill(sigpad.RGB(1, 0, 0))
	h.Blit(canvas.Snapshot())

	mainc, _, style, _ := screen.GetContent(0, 0)
	if mainc != '▀' {
		t.Errorf("cell rune = %q, want upper half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	red := tcell.NewRGBColor(255, 0, 0)
	if fg != red {
		t.Errorf("foreground = %v, want %v", fg, red)
	}
	if bg != red {
		t.Errorf("background = %v, want %v", bg, red)
	}
}
