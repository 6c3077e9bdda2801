// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sigpad

import (
	"math"
	"testing"
)

func TestBezierEvalEndpoints(t *testing.T) {
	b := Bezier{
		Start:    Pt(1, 2),
		Control1: Pt(4, 8),
		Control2: Pt(9, -3),
		End:      Pt(12, 5),
	}
	if got := b.Eval(0); got != b.Start {
		t.Errorf("Eval(0) = %+v, want %+v", got, b.Start)
	}
	if got := b.Eval(1); got != b.End {
		t.Errorf("Eval(1) = %+v, want %+v", got, b.End)
	}
}

func TestBezierLengthStraightLine(t *testing.T) {
	b := Bezier{
		Start:    Pt(0, 0),
		Control1: Pt(10, 0),
		Control2: Pt(20, 0),
		End:      Pt(30, 0),
	}
	if got := b.Length(); math.Abs(got-30) > 1e-9 {
		t.Errorf("Length() = %v, want 30", got)
	}
}

func TestControlPointsSymmetric(t *testing.T) {
	// Evenly spaced collinear samples: controls are the midpoints.
	c1, c2 := controlPoints(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	if c1 != Pt(5, 0) || c2 != Pt(15, 0) {
		t.Errorf("controlPoints = %+v, %+v, want (5,0), (15,0)", c1, c2)
	}
}

func TestControlPointsCoincident(t *testing.T) {
	p := Pt(7, 7)
	c1, c2 := controlPoints(p, p, p)
	if c1 != p || c2 != p {
		t.Errorf("controlPoints on coincident samples = %+v, %+v, want %+v", c1, c2, p)
	}
	if math.IsNaN(c1.X) || math.IsNaN(c2.X) {
		t.Error("controlPoints produced NaN for zero-length segments")
	}
}

func TestBezierThroughInterpolates(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(10, 5), Pt(20, 5), Pt(30, 0)
	b := bezierThrough(p0, p1, p2, p3)
	if b.Start != p1 {
		t.Errorf("Start = %+v, want %+v", b.Start, p1)
	}
	if b.End != p2 {
		t.Errorf("End = %+v, want %+v", b.End, p2)
	}
}

func TestDrawStepsFloor(t *testing.T) {
	degenerate := Bezier{Start: Pt(3, 3), Control1: Pt(3, 3), Control2: Pt(3, 3), End: Pt(3, 3)}
	if got := degenerate.drawSteps(); got != 2 {
		t.Errorf("drawSteps() on a zero-length curve = %d, want 2", got)
	}

	long := Bezier{Start: Pt(0, 0), Control1: Pt(10, 0), Control2: Pt(20, 0), End: Pt(30, 0)}
	if got := long.drawSteps(); got < 60 {
		t.Errorf("drawSteps() on a 30px curve = %d, want at least 60", got)
	}
}
