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

// LineCap selects how the ends of open subpaths (and zero-length dash
// segments) are rendered.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin selects how two stroked segments are connected at a corner.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinBevel
	JoinRound
)

// Style holds the stroking parameters: line width, cap and join style,
// miter limit, and dash pattern. It plays the role that
// seehuhn.de/go/pdf/graphics.ExtGState's line-drawing fields play for
// seehuhn.de/go/render's Rasterizer; that package is PDF-specific and is
// not part of this module's dependency set, so the enums live here
// instead.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
	Flatness   float64
}

// segment is a flattened line segment with its precomputed unit tangent
// and normal, in device space.
type segment struct {
	A, B Point
	T    Point // unit tangent, A->B
	N    Point // unit normal, 90 degrees CCW from T
}

func makeSegment(a, b Point) (segment, bool) {
	d := sub(b, a)
	l := length(d)
	if l < zeroLengthThreshold {
		return segment{}, false
	}
	t := mul(d, 1/l)
	return segment{A: a, B: b, T: t, N: normal(t)}, true
}

// stroker accumulates the stroke outline as a set of closed polygons,
// one per subpath (or per dash, or per join cusp/cap circle), to be
// filled with the nonzero winding rule so overlapping dashes and joins
// composite correctly.
type stroker struct {
	style   Style
	out     [][]Point
	current []Point
}

func (s *stroker) beginPolygon() { s.current = s.current[:0] }

func (s *stroker) endPolygon() {
	if len(s.current) >= 3 {
		poly := make([]Point, len(s.current))
		copy(poly, s.current)
		s.out = append(s.out, poly)
	}
}

func (s *stroker) emit(pt Point) { s.current = append(s.current, pt) }

// Stroke converts p into the set of filled polygons that render its
// stroked outline under style, using the nonzero winding rule. Curves
// must already be flattened (p stores only line segments).
func Stroke(p *Path, style Style) [][]Point {
	if style.Width <= 0 {
		return nil
	}
	if style.MiterLimit <= 0 {
		style.MiterLimit = defaultMiterLimit
	}
	if style.Flatness <= 0 {
		style.Flatness = defaultFlatness
	}

	s := &stroker{style: style}
	half := style.Width / 2

	for _, sp := range p.Subpaths {
		pts := sp.Points
		if sp.Closed && len(pts) > 1 && pts[len(pts)-1] != pts[0] {
			// the implicit closing line back to the start is stroked too.
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		segs := buildSegments(pts)

		if len(segs) == 0 {
			// degenerate subpath: a bare point, or a subpath collapsed by
			// duplicate points. Only a round cap draws anything for it.
			if sp.Closed && style.Cap == CapRound && len(sp.Points) > 0 {
				s.beginPolygon()
				addArc(s, sp.Points[0], half, 0, 2*math.Pi, style.Flatness)
				s.endPolygon()
			}
			continue
		}

		if len(style.Dash) > 0 {
			strokeDashed(s, segs, sp.Closed, style, half)
		} else {
			s.beginPolygon()
			strokeSubpath(s, segs, sp.Closed, style, half)
			s.endPolygon()
		}
	}

	return s.out
}

// buildSegments turns a flattened subpath's point list into unit-tangent
// segments, dropping zero-length spans (coincident consecutive points).
func buildSegments(pts []Point) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		if seg, ok := makeSegment(pts[i-1], pts[i]); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

// strokeSubpath appends the stroke outline for one subpath's segments to
// s.current: a forward pass on the +N side, then a backward pass on the
// -N side, with join geometry on the outer side of each corner (its
// shape depends on the turn direction) and caps at the two open ends.
func strokeSubpath(s *stroker, segs []segment, closed bool, style Style, d float64) {
	if len(segs) == 0 {
		return
	}

	if closed {
		first := &segs[0]
		last := &segs[len(segs)-1]
		sinClose := last.T.X*first.T.Y - last.T.Y*first.T.X

		s.emit(add(first.A, mul(first.N, d)))
		for i := range segs {
			seg := &segs[i]
			next := first
			if i < len(segs)-1 {
				next = &segs[i+1]
			}
			addCorner(s, seg.B, seg.T, next.T, seg.N, next.N, d, true, style)
		}

		if math.Abs(sinClose) < collinearityThreshold {
			s.emit(sub(first.A, mul(first.N, d)))
			s.emit(sub(last.B, mul(last.N, d)))
		} else if sinClose > 0 {
			s.emit(sub(first.A, mul(first.N, d)))
			addJoin(s, first.A, last.T, first.T, d, false, style)
			s.emit(sub(last.B, mul(last.N, d)))
		} else {
			addInnerOrOffsets(s, first.A, last.T, first.T, last.N, first.N, d, false)
		}
		for i := len(segs) - 1; i >= 0; i-- {
			seg := &segs[i]
			if i > 0 {
				prev := &segs[i-1]
				addCorner(s, seg.A, prev.T, seg.T, prev.N, seg.N, d, false, style)
			} else {
				s.emit(sub(seg.A, mul(seg.N, d)))
			}
		}
		return
	}

	first := &segs[0]
	last := &segs[len(segs)-1]

	addCap(s, first.A, mul(first.T, -1), d, style)

	skipA := false
	for i := range segs {
		seg := &segs[i]
		if !skipA {
			s.emit(add(seg.A, mul(seg.N, d)))
		}
		skipA = false
		if i < len(segs)-1 {
			next := &segs[i+1]
			skipA = addCorner(s, seg.B, seg.T, next.T, seg.N, next.N, d, true, style)
		} else {
			s.emit(add(seg.B, mul(seg.N, d)))
		}
	}

	addCap(s, last.B, last.T, d, style)

	skipB := false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skipB {
			s.emit(sub(seg.B, mul(seg.N, d)))
		}
		skipB = false
		if i > 0 {
			prev := &segs[i-1]
			skipB = addCorner(s, seg.A, prev.T, seg.T, prev.N, seg.N, d, false, style)
		} else {
			s.emit(sub(seg.A, mul(seg.N, d)))
		}
	}
}

// addCorner emits the join geometry at a corner, choosing between the
// inner-offset-line intersection (on the side the turn folds toward)
// and the outer join shape (miter/bevel/round), matching the forward
// (isPositiveNormalSide=true) or backward pass convention.
func addCorner(s *stroker, p, t1, t2, n1, n2 Point, d float64, positive bool, style Style) bool {
	sinTheta := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(sinTheta) < collinearityThreshold {
		if positive {
			s.emit(add(p, mul(n1, d)))
			s.emit(add(p, mul(n2, d)))
		} else {
			s.emit(sub(p, mul(n1, d)))
			s.emit(sub(p, mul(n2, d)))
		}
		return false
	}
	innerTurn := (sinTheta > 0) == positive
	if innerTurn {
		return addInnerOrOffsets(s, p, t1, t2, n1, n2, d, positive)
	}
	// the backward pass travels from the t2 segment to the t1 segment,
	// so it emits the n2 offset first, as addJoin's arcs do.
	if positive {
		s.emit(add(p, mul(n1, d)))
	} else {
		s.emit(sub(p, mul(n2, d)))
	}
	addJoin(s, p, t1, t2, d, positive, style)
	if positive {
		s.emit(add(p, mul(n2, d)))
	} else {
		s.emit(sub(p, mul(n1, d)))
	}
	return false
}

// innerIntersection returns the point where the two inner offset lines
// at a corner meet, and false if the segments are too close to
// collinear for the intersection to be meaningful.
func innerIntersection(p, t1, t2 Point, d float64, positive bool) (Point, bool) {
	cosTheta := dot(t1, t2)
	if cosTheta > 1-1e-9 {
		return Point{}, false
	}
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return Point{}, false
	}
	n1, n2 := normal(t1), normal(t2)
	innerDir := add(n1, n2)
	if !positive {
		innerDir = mul(innerDir, -1)
	}
	l := length(innerDir)
	if l < 1e-9 {
		return Point{}, false
	}
	innerDir = mul(innerDir, 1/l)
	return add(p, mul(innerDir, d/halfAngle)), true
}

func addInnerOrOffsets(s *stroker, p, t1, t2, n1, n2 Point, d float64, positive bool) bool {
	if pt, ok := innerIntersection(p, t1, t2, d, positive); ok {
		s.emit(pt)
		return true
	}
	if positive {
		s.emit(add(p, mul(n1, d)))
		s.emit(add(p, mul(n2, d)))
	} else {
		s.emit(sub(p, mul(n1, d)))
		s.emit(sub(p, mul(n2, d)))
	}
	return false
}

// addJoin emits the outer join shape at a corner where the tangent
// changes from t1 to t2, for the side of the stroke indicated by
// positive.
func addJoin(s *stroker, p, t1, t2 Point, d float64, positive bool, style Style) {
	cosTheta := dot(t1, t2)
	sinTheta := t1.X*t2.Y - t1.Y*t2.X
	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	if cosTheta < cuspCosineThreshold {
		// the path folds back on itself: draw two caps rather than a join.
		addCap(s, p, t1, d, style)
		addCap(s, p, mul(t2, -1), d, style)
		return
	}

	switch style.Join {
	case JoinMiter:
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= style.MiterLimit+miterEpsilon {
			n1, n2 := normal(t1), normal(t2)
			var bisector Point
			if positive {
				bisector = add(n1, n2)
			} else {
				bisector = mul(add(n1, n2), -1)
			}
			bl := length(bisector)
			if bl > zeroLengthThreshold {
				bisector = mul(bisector, 1/bl)
				s.emit(add(p, mul(bisector, d/sinHalf)))
			}
			return
		}
		// miter limit exceeded: fall back to bevel.
	case JoinRound:
		angle := math.Acos(math.Max(-1, math.Min(1, cosTheta)))
		if positive {
			n1 := normal(t1)
			if sinTheta > 0 {
				addArc(s, p, d, angleOf(n1), angleOf(n1)+angle, style.Flatness)
			} else {
				addArc(s, p, d, angleOf(n1), angleOf(n1)-angle, style.Flatness)
			}
		} else {
			n2 := mul(normal(t2), -1)
			if sinTheta > 0 {
				addArc(s, p, d, angleOf(n2), angleOf(n2)-angle, style.Flatness)
			} else {
				addArc(s, p, d, angleOf(n2), angleOf(n2)+angle, style.Flatness)
			}
		}
	}
	// JoinBevel (and miter-limit fallthrough): the two offset points
	// already emitted by the caller are enough.
}

// addCap emits a line cap at point p, where t is the outward tangent
// direction (pointing away from the stroked line).
func addCap(s *stroker, p, t Point, d float64, style Style) {
	n := normal(t)
	switch style.Cap {
	case CapButt:
		// nothing to add: the offset points bracket the cap already.
	case CapSquare:
		ext := add(p, mul(t, d))
		s.emit(add(ext, mul(n, d)))
		s.emit(sub(ext, mul(n, d)))
	case CapRound:
		a := angleOf(n)
		addArc(s, p, d, a, a-math.Pi, style.Flatness)
	}
}

func angleOf(v Point) float64 { return math.Atan2(v.Y, v.X) }

// addArc appends the polyline approximation of a circular arc to s,
// reusing the path flattener's FlattenArc so stroke caps/joins and
// filled arcs share one tessellation rule.
func addArc(s *stroker, center Point, radius, a0, a1, flatness float64) {
	FlattenArc(center, radius, a0, a1, flatness, func(_, to Point) {
		s.emit(to)
	})
}

// strokeDashed walks segs applying the dash pattern, then strokes each
// resulting "on" run as its own open subpath (closed is always false:
// even a dash pattern applied to a closed subpath produces open dash
// runs, except where the first and last run merge across the seam).
func strokeDashed(s *stroker, segs []segment, closed bool, style Style, d float64) {
	// Per spec.md §9's Open Question resolution, a negative dash length
	// is skipped rather than invalidating the whole pattern; an
	// all-zero (or, after skipping negatives, now-empty) array falls
	// through to the patternLen<=0 case below and strokes continuously.
	dash := make([]float64, 0, len(style.Dash))
	for _, v := range style.Dash {
		if v >= 0 {
			dash = append(dash, v)
		}
	}
	n := len(dash)

	patternLen := 0.0
	for _, v := range dash {
		patternLen += v
	}
	if n%2 == 1 {
		patternLen *= 2
	}
	if patternLen <= 0 {
		s.beginPolygon()
		strokeSubpath(s, segs, closed, style, d)
		s.endPolygon()
		return
	}

	phase := math.Mod(style.DashPhase, patternLen)
	if phase < 0 {
		phase += patternLen
	}

	at := func(i int) float64 { return dash[i%n] }

	dashIdx := 0
	dist := phase
	for dist >= at(dashIdx) && at(dashIdx) > 0 {
		dist -= at(dashIdx)
		dashIdx++
	}
	remaining := at(dashIdx) - dist
	isOn := dashIdx%2 == 0

	var run []segment
	var firstRun []segment
	startedOn := isOn
	emitRun := func() {
		if len(run) == 0 {
			return
		}
		if len(run) == 1 && run[0].A == run[0].B {
			switch style.Cap {
			case CapRound:
				s.beginPolygon()
				addArc(s, run[0].A, d, 0, 2*math.Pi, style.Flatness)
				s.endPolygon()
			case CapSquare:
				s.beginPolygon()
				addSquareDot(s, run[0].A, run[0].T, d)
				s.endPolygon()
			}
			run = nil
			return
		}
		s.beginPolygon()
		strokeSubpath(s, run, false, style, d)
		s.endPolygon()
		run = nil
	}

	if isOn && remaining == 0 && len(segs) > 0 {
		seg := segs[0]
		run = append(run, segment{A: seg.A, B: seg.A, T: seg.T, N: seg.N})
		dashIdx++
		remaining = at(dashIdx)
		isOn = dashIdx%2 == 0
	}

	segIdx := 0
	segDist := 0.0
	for segIdx < len(segs) {
		seg := segs[segIdx]
		segLen := length(sub(seg.B, seg.A))
		segRemaining := segLen - segDist

		if remaining >= segRemaining {
			if isOn {
				if segDist > 0 {
					t := segDist / segLen
					startPt := add(seg.A, mul(sub(seg.B, seg.A), t))
					run = append(run, segment{A: startPt, B: seg.B, T: seg.T, N: seg.N})
				} else {
					run = append(run, seg)
				}
			}
			remaining -= segRemaining
			segIdx++
			segDist = 0
			continue
		}

		endDist := segDist + remaining
		t := endDist / segLen
		splitPt := add(seg.A, mul(sub(seg.B, seg.A), t))

		if isOn {
			startT := segDist / segLen
			startPt := add(seg.A, mul(sub(seg.B, seg.A), startT))
			if seg2, ok := makeSegment(startPt, splitPt); ok {
				run = append(run, seg2)
			} else if len(run) == 0 {
				run = append(run, segment{A: startPt, B: startPt, T: seg.T, N: seg.N})
			}
			if closed && firstRun == nil && len(run) > 0 {
				firstRun = append([]segment(nil), run...)
			}
			emitRun()
		}

		segDist = endDist
		dashIdx++
		remaining = at(dashIdx)
		isOn = dashIdx%2 == 0
	}

	if len(run) > 0 {
		if closed && startedOn && isOn && firstRun != nil {
			run = append(run, firstRun...)
		}
		emitRun()
	}
}

// addSquareDot emits a square centered on a zero-length dash segment,
// oriented by its inherited tangent, for square-capped zero-length dashes.
func addSquareDot(s *stroker, center, t Point, d float64) {
	n := normal(t)
	s.emit(add(add(center, mul(t, d)), mul(n, d)))
	s.emit(sub(add(center, mul(t, d)), mul(n, d)))
	s.emit(sub(sub(center, mul(t, d)), mul(n, d)))
	s.emit(add(sub(center, mul(t, d)), mul(n, d)))
}
