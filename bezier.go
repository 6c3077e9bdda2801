// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sigpad

import "math"

// Bezier is a cubic bezier segment fitted through captured pad points.
type Bezier struct {
	Start, Control1, Control2, End Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (b Bezier) Eval(t float64) Point {
	u := 1 - t
	p := b.Start.Mul(u * u * u)
	p = p.Add(b.Control1.Mul(3 * u * u * t))
	p = p.Add(b.Control2.Mul(3 * u * t * t))
	return p.Add(b.End.Mul(t * t * t))
}

// Length returns an approximate arc length, measured over a fixed number
// of linear segments. Signature strokes are short; ten segments keep the
// error well under a device pixel.
func (b Bezier) Length() float64 {
	const steps = 10
	var length float64
	prev := b.Start
	for i := 1; i <= steps; i++ {
		cur := b.Eval(float64(i) / steps)
		length += prev.Distance(cur)
		prev = cur
	}
	return length
}

// controlPoints derives the two bezier control points around the middle
// point of three consecutive samples. The control segment is the line
// between the two neighbor midpoints, translated so it passes through
// the middle sample, split proportionally to the segment lengths.
func controlPoints(s1, s2, s3 Point) (c1, c2 Point) {
	m1 := s1.Midpoint(s2)
	m2 := s2.Midpoint(s3)
	l1 := s1.Distance(s2)
	l2 := s2.Distance(s3)

	k := 0.0
	if l1+l2 > 0 {
		k = l2 / (l1 + l2)
	}
	cm := m2.Add(m1.Sub(m2).Mul(k))
	shift := s2.Sub(cm)
	return m1.Add(shift), m2.Add(shift)
}

// bezierThrough fits a curve from p1 to p2 using p0 and p3 as the
// surrounding context points.
func bezierThrough(p0, p1, p2, p3 Point) Bezier {
	_, c1 := controlPoints(p0, p1, p2)
	c2, _ := controlPoints(p1, p2, p3)
	return Bezier{Start: p1, Control1: c1, Control2: c2, End: p2}
}

// drawSteps returns the number of point stamps used to paint the curve.
func (b Bezier) drawSteps() int {
	n := int(math.Ceil(b.Length())) * 2
	if n < 2 {
		n = 2
	}
	return n
}
