// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tcellhost binds a terminal screen as a sigpad viewport.
//
// The terminal cell grid is treated as the layout: one cell is one
// logical pixel horizontally and two vertically (cells are roughly twice
// as tall as wide, and the blitter packs two pixel rows per cell using
// half-block characters). Mouse drags become pointer events, terminal
// resizes become viewport resizes, and the device pixel ratio is 1.
package tcellhost

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/sigpad"
)

// Host adapts a tcell.Screen to sigpad.Viewport and routes its events.
type Host struct {
	screen tcell.Screen

	mu        sync.Mutex
	listeners map[int]func(width, height float64)
	nextID    int

	// Pointer state for translating mouse events into down/move/up.
	buttonDown bool
	pointer    func(kind PointerKind, pt sigpad.Point)
}

var _ sigpad.Viewport = (*Host)(nil)

// PointerKind discriminates translated mouse events.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// New creates a host around an initialized screen.
func New(screen tcell.Screen) *Host {
	return &Host{
		screen:    screen,
		listeners: make(map[int]func(width, height float64)),
	}
}

// PixelRatio implements sigpad.Viewport. Terminals have no notion of
// device pixel density, so the ratio is always 1.
func (h *Host) PixelRatio() float64 { return 1 }

// Size implements sigpad.Viewport.
func (h *Host) Size() (float64, float64) {
	w, hgt := h.screen.Size()
	return float64(w), float64(hgt * 2)
}

// OnResize implements sigpad.Viewport.
func (h *Host) OnResize(fn func(width, height float64)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// SetPointerHandler registers the sink for translated mouse events.
func (h *Host) SetPointerHandler(fn func(kind PointerKind, pt sigpad.Point)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pointer = fn
}

// HandleEvent translates one tcell event. It returns false when the
// event asks the application to quit (Escape or Ctrl-C); all other
// events return true.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, height := ev.Size()
		h.screen.Sync()
		h.notifyResize(float64(w), float64(height*2))

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
	}
	return true
}

// notifyResize fans a resize out to the registered listeners.
func (h *Host) notifyResize(w, height float64) {
	h.mu.Lock()
	fns := make([]func(float64, float64), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	sigpad.Logger().Debug("terminal viewport resized",
		"width", w, "height", height, "listeners", len(fns))
	for _, fn := range fns {
		fn(w, height)
	}
}

// handleMouse translates button state transitions into pointer events.
// The vertical coordinate is doubled to the cell's upper pixel row.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	h.mu.Lock()
	pointer := h.pointer
	wasDown := h.buttonDown
	isDown := ev.Buttons()&tcell.Button1 != 0
	h.buttonDown = isDown
	h.mu.Unlock()

	if pointer == nil {
		return
	}

	x, y := ev.Position()
	pt := sigpad.Pt(float64(x), float64(y*2))
	switch {
	case isDown && !wasDown:
		pointer(PointerDown, pt)
	case isDown && wasDown:
		pointer(PointerMove, pt)
	case !isDown && wasDown:
		pointer(PointerUp, pt)
	}
}

// Blit paints a canvas snapshot onto the screen using half-block
// characters, packing two pixel rows into each terminal row. Take the
// snapshot with Pad.Snapshot so it cannot race with stroke painting.
func (h *Host) Blit(img *image.RGBA) {
	bounds := img.Bounds()
	cols, rows := h.screen.Size()

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			if cx >= bounds.Dx() || cy*2 >= bounds.Dy() {
				continue
			}
			upper := img.RGBAAt(cx, cy*2)
			lower := upper
			if cy*2+1 < bounds.Dy() {
				lower = img.RGBAAt(cx, cy*2+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
				Background(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
			h.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	h.screen.Show()
}
