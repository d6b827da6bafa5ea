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

// Package raster implements the device-space half of a 2D canvas
// rasterizer: the path/subpath accumulator, the adaptive curve flattener,
// the stroker (dashing, joins, caps, miter limit), and the trapezoid/
// coverage fill engine that turns a flattened path into per-row analytic
// antialiased coverage.
//
// Unlike seehuhn.de/go/render's Rasteriser, which keeps curve commands in
// the path and applies the current transformation matrix lazily at fill
// time (the PDF content-stream model), this package only ever sees
// already-flattened, already-transformed device-space points: the canvas
// facade applies the transform in effect at each call to move_to/line_to/
// curve_to before the point reaches this package. That mirrors the HTML5
// canvas model, where "the transform in effect when a curve endpoint is
// entered is the one that applies to that endpoint."
package raster

import "seehuhn.de/go/geom/vec"

// Point is a device-space 2D point.
type Point = vec.Vec2

func add(a, b Point) Point { return a.Add(b) }
func sub(a, b Point) Point { return a.Sub(b) }
func mul(a Point, s float64) Point { return a.Mul(s) }
func dot(a, b Point) float64 { return a.Dot(b) }

func length(a Point) float64 { return a.Length() }

func normal(t Point) Point { return Point{X: -t.Y, Y: t.X} }

// normalize returns the unit vector in the direction of v, and false if v
// is too small to normalize reliably.
func normalize(v Point) (Point, bool) {
	l := length(v)
	if l < zeroLengthThreshold {
		return Point{}, false
	}
	return mul(v, 1/l), true
}

const (
	zeroLengthThreshold     = 1e-9
	collinearityThreshold   = 1e-9
	cuspCosineThreshold     = -0.999
	defaultFlatness         = 0.25
	defaultMiterLimit       = 10.0
	smallPathThreshold      = 16 * 16
	horizontalEdgeThreshold = 1e-9
)
