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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/internal/raster"
)

// Path is a sequence of subpaths built from move_to/line_to/curve_to/
// arc/arc_to/close_path calls. Every point is transformed into device
// space by the transform in effect at the moment it is appended -- not
// by whatever transform is current when the path is later filled or
// stroked -- matching the HTML5 canvas path-construction model.
//
// The zero Path is ready to use.
type Path struct {
	dev raster.Path
}

// BeginPath discards all subpaths, equivalent to starting a new Path.
func (p *Path) BeginPath() {
	p.dev.Reset()
}

// MoveTo starts a new subpath at (x, y), mapped through m into device
// space.
func (p *Path) MoveTo(m Transform, x, y float64) {
	p.dev.MoveTo(apply(m, vec.Vec2{X: x, Y: y}))
}

// LineTo appends a line segment to (x, y), mapped through m.
func (p *Path) LineTo(m Transform, x, y float64) {
	p.dev.LineTo(apply(m, vec.Vec2{X: x, Y: y}))
}

// ClosePath closes the current subpath and opens a fresh one at the
// same start point.
func (p *Path) ClosePath() {
	p.dev.Close()
}

// QuadraticCurveTo appends a quadratic Bezier curve through the control
// point (cpx, cpy) to the end point (x, y), all mapped through m,
// flattened to line segments using flatness as the maximum deviation
// tolerance in device-space pixels.
func (p *Path) QuadraticCurveTo(m Transform, cpx, cpy, x, y, flatness float64) {
	p0, ok := p.dev.CurrentPoint()
	if !ok {
		p.MoveTo(m, cpx, cpy)
		p0, _ = p.dev.CurrentPoint()
	}
	cp := apply(m, vec.Vec2{X: cpx, Y: cpy})
	p1 := apply(m, vec.Vec2{X: x, Y: y})
	if flatness <= 0 {
		flatness = 0.25
	}
	raster.FlattenQuadratic(p0, cp, p1, flatness, func(_, to vec.Vec2) {
		p.dev.LineTo(to)
	})
}

// BezierCurveTo appends a cubic Bezier curve through control points
// (cp1x, cp1y) and (cp2x, cp2y) to the end point (x, y), all mapped
// through m.
func (p *Path) BezierCurveTo(m Transform, cp1x, cp1y, cp2x, cp2y, x, y, flatness float64) {
	p0, ok := p.dev.CurrentPoint()
	if !ok {
		p.MoveTo(m, cp1x, cp1y)
		p0, _ = p.dev.CurrentPoint()
	}
	cp1 := apply(m, vec.Vec2{X: cp1x, Y: cp1y})
	cp2 := apply(m, vec.Vec2{X: cp2x, Y: cp2y})
	p1 := apply(m, vec.Vec2{X: x, Y: y})
	if flatness <= 0 {
		flatness = 0.25
	}
	raster.FlattenCubic(p0, cp1, cp2, p1, flatness, func(_, to vec.Vec2) {
		p.dev.LineTo(to)
	})
}

// ArcTo appends a tangent-circle fillet of the given radius between the
// two rays (current point -> (x1,y1)) and ((x1,y1) -> (x2,y2)), all
// mapped through m. The radius is in user-space units and is scaled by
// deviceRadius; the fillet is a circle in device space, so under a
// non-uniform transform it is not the image of a user-space circle.
func (p *Path) ArcTo(m Transform, x1, y1, x2, y2, radius, flatness float64) {
	if flatness <= 0 {
		flatness = 0.25
	}
	p1 := apply(m, vec.Vec2{X: x1, Y: y1})
	p2 := apply(m, vec.Vec2{X: x2, Y: y2})
	devRadius := deviceRadius(m, radius)
	raster.ArcTo(&p.dev, p1, p2, devRadius, flatness)
}

// Arc appends a circular arc of the given user-space radius, centered
// at (x, y), running from angle a0 to angle a1 (radians, clockwise in
// the y-down canvas convention), counterclockwise if ccw is set.
func (p *Path) Arc(m Transform, x, y, radius, a0, a1 float64, ccw bool, flatness float64) {
	if flatness <= 0 {
		flatness = 0.25
	}
	c := apply(m, vec.Vec2{X: x, Y: y})
	devRadius := deviceRadius(m, radius)
	raster.Arc(&p.dev, c, devRadius, a0, a1, ccw, flatness)
}

// Rect appends a closed rectangular subpath with corner (x, y) and size
// (w, h), mapped through m.
func (p *Path) Rect(m Transform, x, y, w, h float64) {
	a := apply(m, vec.Vec2{X: x, Y: y})
	b := apply(m, vec.Vec2{X: x + w, Y: y})
	c := apply(m, vec.Vec2{X: x + w, Y: y + h})
	d := apply(m, vec.Vec2{X: x, Y: y + h})
	p.dev.MoveTo(a)
	p.dev.LineTo(b)
	p.dev.LineTo(c)
	p.dev.LineTo(d)
	p.dev.Close()
}

// deviceRadius approximates how a user-space radius scales under m's
// linear part, using the geometric mean of the two axis scale factors.
// It is used for Arc and ArcTo radii and is exact for uniform
// scale/rotate transforms (the common case).
func deviceRadius(m Transform, radius float64) float64 {
	sx := length(applyLinear(m, vec.Vec2{X: 1, Y: 0}))
	sy := length(applyLinear(m, vec.Vec2{X: 0, Y: 1}))
	return radius * math.Sqrt(sx*sy)
}

func length(v vec.Vec2) float64 { return v.Length() }

// IsPointInPath reports whether (x, y), given in user space under m,
// lies inside the path using the even-odd fill rule. Unlike Fill (which
// uses the nonzero winding rule) this ignores the current clip region,
// matching the HTML5 canvas isPointInPath behaviour.
func (p *Path) IsPointInPath(m Transform, x, y float64) bool {
	pt := apply(m, vec.Vec2{X: x, Y: y})
	return evenOddContains(&p.dev, pt)
}

// evenOddContains implements a horizontal ray-cast point-in-polygon test
// against every subpath of p using the even-odd rule, counting a closed
// subpath's implicit closing edge.
func evenOddContains(p *raster.Path, pt vec.Vec2) bool {
	inside := false
	for _, sp := range p.Subpaths {
		n := len(sp.Points)
		if n < 2 {
			continue
		}
		last := n
		if !sp.Closed {
			last = n - 1
		}
		for i := 0; i < last; i++ {
			a := sp.Points[i]
			b := sp.Points[(i+1)%n]
			if (a.Y > pt.Y) != (b.Y > pt.Y) {
				xCross := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
				if pt.X < xCross {
					inside = !inside
				}
			}
		}
	}
	return inside
}
