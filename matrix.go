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

package canvas

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Transform is the current transformation matrix mapping user space to
// device space: a point (x,y) maps to
//
//	x' = m[0]*x + m[2]*y + m[4]
//	y' = m[1]*x + m[3]*y + m[5]
//
// matching seehuhn.de/go/geom/matrix.Matrix's layout, which this type
// wraps directly so that Transform values can be stored and compared
// wherever the rest of this module expects a matrix.Matrix.
type Transform = matrix.Matrix

// Identity is the transform that leaves coordinates unchanged.
var Identity = matrix.Identity

// Point is a 2D point, either in user space or device space depending
// on context.
type Point = vec.Vec2

// concat returns the transform that first applies b, then a: for a point
// p, concat(a, b).Apply(p) == a.Apply(b.Apply(p)). This is the operation
// behind every one of scale/rotate/translate/transformBy: each extends
// the current transform on the right, so that newly-appended commands
// apply "in front of" geometry already on the path, matching the HTML5
// canvas rule that translate/rotate/scale/transform all post-multiply
// the current transformation matrix.
func concat(a, b Transform) Transform {
	return Transform{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
		a[0]*b[4] + a[2]*b[5] + a[4],
		a[1]*b[4] + a[3]*b[5] + a[5],
	}
}

// apply maps a user-space point to device space under m.
func apply(m Transform, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// applyLinear maps a vector (ignoring translation) under the 2x2 linear
// part of m. Used by deviceRadius to scale arc radii, where only
// scaling/rotation/shear matter.
func applyLinear(m Transform, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// invert returns the inverse of m and whether m was invertible
// (determinant not too close to zero). Callers check ok rather than
// dividing by zero: drawPath passes it to makeSampler for the brush
// transform, and DrawImage draws nothing under a singular transform.
func invert(m Transform) (Transform, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return Transform{}, false
	}
	invDet := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Transform{
		d * invDet,
		-b * invDet,
		-c * invDet,
		a * invDet,
		(c*f - d*e) * invDet,
		(b*e - a*f) * invDet,
	}, true
}

// translateBy returns m with a translation by (dx, dy) appended.
func translateBy(m Transform, dx, dy float64) Transform {
	return concat(m, Transform{1, 0, 0, 1, dx, dy})
}

// scaleBy returns m with a scale by (sx, sy) appended.
func scaleBy(m Transform, sx, sy float64) Transform {
	return concat(m, Transform{sx, 0, 0, sy, 0, 0})
}

// rotateBy returns m with a rotation by angle radians (clockwise in the
// y-down device space that this module, like the HTML5 canvas, uses)
// appended.
func rotateBy(m Transform, angle float64) Transform {
	s, c := math.Sincos(angle)
	return concat(m, Transform{c, s, -s, c, 0, 0})
}

// transformBy returns m with the given matrix appended, implementing
// the canvas transform(a, b, c, d, e, f) call.
func transformBy(m Transform, a, b, c, d, e, f float64) Transform {
	return concat(m, Transform{a, b, c, d, e, f})
}
