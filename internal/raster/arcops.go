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

// Rectangle appends a closed rectangular subpath with corners at
// (x,y) and (x+w,y+h), in the winding order the HTML5 canvas uses
// (clockwise in a y-down device space).
func Rectangle(p *Path, x, y, w, h float64) {
	p.MoveTo(Point{X: x, Y: y})
	p.LineTo(Point{X: x + w, Y: y})
	p.LineTo(Point{X: x + w, Y: y + h})
	p.LineTo(Point{X: x, Y: y + h})
	p.Close()
}

// Arc appends a circular arc centered at c with the given radius, from
// angle a0 to a1 (radians), to the path. If a subpath is already open, a
// line is first drawn from the current point to the arc's start point
// (matching the HTML5 canvas arc() behavior); otherwise the arc starts a
// new subpath.
func Arc(p *Path, c Point, radius, a0, a1 float64, ccw bool, flatness float64) {
	if radius < 0 {
		return // degenerate, per spec.md's "best-effort without crashing"
	}

	a1 = normalizeSweep(a0, a1, ccw)

	start := pointOnCircle(c, radius, a0)
	p.LineTo(start) // LineTo implicitly does MoveTo if no subpath is open

	FlattenArc(c, radius, a0, a1, flatness, func(_, to Point) {
		p.LineTo(to)
	})
}

// normalizeSweep adjusts a1 so that a1-a0 has the sign implied by ccw and
// magnitude at most 2*pi, following the HTML5 canvas arc() normalization
// rules.
func normalizeSweep(a0, a1 float64, ccw bool) float64 {
	const twoPi = 2 * math.Pi
	delta := a1 - a0
	if !ccw {
		for delta < 0 {
			delta += twoPi
		}
		if delta > twoPi {
			delta = twoPi
		}
	} else {
		for delta > 0 {
			delta -= twoPi
		}
		if delta < -twoPi {
			delta = -twoPi
		}
	}
	return a0 + delta
}

// ArcTo constructs the tangent-circle fillet of the given radius between
// the line from the path's current point to p1, and the line from p1 to
// p2 (the HTML5 canvas arc_to(x1,y1,x2,y2,r) operation), and appends it
// to the path: a line to the first tangent point, then the arc itself.
// With no current point, p1 becomes the current point (a MoveTo).
// The other degenerate cases (zero radius, coincident or collinear
// points) fall back to a straight line to p1, per spec.md §4.2's
// "emit line segments but do not throw."
func ArcTo(p *Path, p1, p2 Point, radius, flatness float64) {
	p0, ok := p.CurrentPoint()
	if !ok {
		p.MoveTo(p1)
		return
	}
	if radius <= 0 {
		p.LineTo(p1)
		return
	}

	v1, ok1 := normalize(sub(p0, p1))
	v2, ok2 := normalize(sub(p2, p1))
	if !ok1 || !ok2 {
		p.LineTo(p1)
		return
	}

	cosTheta := dot(v1, v2)
	if cosTheta > 1-1e-9 || cosTheta < -1+1e-9 {
		// collinear (either direction): no fillet possible.
		p.LineTo(p1)
		return
	}

	// Tangent length t from p1 along each ray, found via the quadratic
	// t^2*(1-cosTheta) = r^2*(1+cosTheta), which stays well-conditioned
	// as theta approaches 0 (where a naive r/tan(theta/2) blows up).
	roots := SolveQuadratic(1-cosTheta, 0, -radius*radius*(1+cosTheta))
	var t float64
	found := false
	for _, root := range roots {
		if root > 0 {
			t = root
			found = true
			break
		}
	}
	if !found {
		p.LineTo(p1)
		return
	}

	t0 := add(p1, mul(v1, t))
	t1 := add(p1, mul(v2, t))

	cosHalf := math.Sqrt((1 + cosTheta) / 2)
	bisector, ok3 := normalize(add(v1, v2))
	if !ok3 || cosHalf < 1e-9 {
		p.LineTo(p1)
		return
	}
	center := add(p1, mul(bisector, t/cosHalf))

	a0 := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)

	// Always take the minor arc (the fillet never bulges the long way
	// around); cross(v1, v2) tells us which winding that is.
	cross := v1.X*v2.Y - v1.Y*v2.X
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	if cross > 0 && delta < 0 {
		delta += 2 * math.Pi
	} else if cross < 0 && delta > 0 {
		delta -= 2 * math.Pi
	}
	a1 = a0 + delta

	p.LineTo(t0)
	FlattenArc(center, radius, a0, a1, flatness, func(_, to Point) {
		p.LineTo(to)
	})
}
