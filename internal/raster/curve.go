// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import "math"

// FlattenQuadratic adaptively subdivides the quadratic Bezier p0,p1,p2
// (already in device space) and calls emit for each resulting line
// segment. flatness bounds the maximum deviation of the flattened
// polyline from the true curve, in device pixels.
//
// Adapted from seehuhn.de/go/render's Rasteriser.flattenQuadratic: that
// version transforms the error vector through the CTM because its curve
// points are still in user space at flatten time. Here the points are
// already device-space (the canvas facade transforms on append, per
// spec.md §4.1), so the error vector needs no further transform.
func FlattenQuadratic(p0, p1, p2 Point, flatness float64, emit func(from, to Point)) {
	// error vector e = (P0 - 2P1 + P2) / 4, the offset of the flattened
	// chord's midpoint from the curve's true midpoint.
	e := mul(add(sub(p0, mul(p1, 2)), p2), 0.25)

	n := 1
	errLen := length(e)
	if errLen > flatness {
		n = int(math.Ceil(math.Sqrt(errLen / flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := add(add(mul(p0, omt*omt), mul(p1, 2*omt*t)), mul(p2, t*t))
		emit(prev, pt)
		prev = pt
	}
}

// FlattenCubic adaptively subdivides the cubic Bezier p0,p1,p2,p3
// (already in device space) using Wang's formula for the segment count,
// and calls emit for each resulting line segment.
func FlattenCubic(p0, p1, p2, p3 Point, flatness float64, emit func(from, to Point)) {
	d1 := add(sub(p0, mul(p1, 2)), p2) // P0 - 2P1 + P2
	d2 := add(sub(p1, mul(p2, 2)), p3) // P1 - 2P2 + P3

	m := math.Max(length(d1), length(d2))
	n := 1
	if m > 0 {
		nFloat := math.Sqrt(3 * m / (4 * flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t
		pt := add(add(add(mul(p0, omt3), mul(p1, 3*omt2*t)), mul(p2, 3*omt*t2)), mul(p3, t3))
		emit(prev, pt)
		prev = pt
	}
}

// arcAngleStep returns the maximum sweep angle, in radians, that a single
// cubic-Bezier segment can cover while keeping a circular arc of the
// given device-space radius within the flatness tolerance. It uses a
// cube-root heuristic (below) computed with the stable cube-root solver,
// so the step degrades smoothly as radius approaches zero. The stroker's
// round joins and caps reach it as well: addArc in stroke.go calls
// FlattenArc.
func arcAngleStep(radius, flatness float64) float64 {
	if radius <= flatness {
		return math.Pi / 2
	}
	// Conservative heuristic: the deviation of a cubic-Bezier arc
	// approximation from the true circle grows roughly with the cube of
	// the half-sweep angle for the segment counts this flattener uses in
	// practice, so solve phi^3 = 24*flatness/radius via the cubic-root
	// solver for a stable, non-oscillating step size.
	step := cubeRoot(24 * flatness / radius)
	if step <= 0 || math.IsNaN(step) || step > math.Pi/2 {
		step = math.Pi / 2
	}
	return step
}

// kappa returns the cubic-Bezier control-point distance factor for an
// arc segment spanning sweep radians, using the standard
// 4/3*tan(sweep/4) construction.
func kappa(sweep float64) float64 {
	return 4.0 / 3.0 * math.Tan(sweep/4)
}

// FlattenArc approximates the circular arc centered at c with the given
// radius, from angle a0 to a1 (radians, increasing = counter-clockwise in
// the device-space sense used throughout this package), as a sequence of
// cubic Bezier segments (per spec.md §4.2's "flattens it as a cubic
// approximation"), themselves immediately flattened to line segments via
// FlattenCubic.
func FlattenArc(c Point, radius, a0, a1, flatness float64, emit func(from, to Point)) {
	if radius <= 0 {
		// degenerate: emit a single point-like segment so callers don't
		// need to special-case zero radius.
		p := Point{X: c.X, Y: c.Y}
		emit(p, p)
		return
	}

	sweep := a1 - a0
	if sweep == 0 {
		return
	}
	step := arcAngleStep(radius, flatness)
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 1 {
		n = 1
	}
	segSweep := sweep / float64(n)
	k := kappa(segSweep)

	prevAngle := a0
	prev := pointOnCircle(c, radius, a0)
	for i := 1; i <= n; i++ {
		angle := a0 + float64(i)*segSweep
		cur := pointOnCircle(c, radius, angle)

		t0 := tangentOnCircle(prevAngle)
		t1 := tangentOnCircle(angle)
		c0 := add(prev, mul(t0, k*radius*sign(segSweep)))
		c1 := sub(cur, mul(t1, k*radius*sign(segSweep)))

		FlattenCubic(prev, c0, c1, cur, flatness, emit)

		prev = cur
		prevAngle = angle
	}
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func pointOnCircle(c Point, r, angle float64) Point {
	return Point{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)}
}

// tangentOnCircle returns the unit tangent in the direction of increasing
// angle at the given angle on a unit circle.
func tangentOnCircle(angle float64) Point {
	return Point{X: -math.Sin(angle), Y: math.Cos(angle)}
}
