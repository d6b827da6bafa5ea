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

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// FillRule selects how overlapping and self-intersecting path regions are
// combined into an inside/outside test.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// edge is a line segment in device coordinates, with its y range
// normalized for scanline processing.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Filler converts flattened, device-space polygon geometry into per-row
// analytic antialiased coverage, the way Rasterizer does in
// seehuhn.de/go/render's raster.go. Unlike that type, it has no CTM or
// curve flattener of its own (curves are flattened before reaching this
// package) and no stroke-specific fields; callers build stroke outlines
// via Stroke and pass the resulting polygons to FillPolygons.
//
// Create one Filler and reuse it across Fill/FillPolygons calls: its
// scratch buffers grow as needed but never shrink.
type Filler struct {
	Clip               rect.Rect
	smallPathThreshold int

	edges       []edge
	activeIdx   []int
	cover       []float32
	area        []float32
	rowHasEdges []bool

	bboxFirst bool
	devXMin   float64
	devXMax   float64
	devYMin   float64
	devYMax   float64
}

// NewFiller returns a Filler clipping output to clip.
func NewFiller(clip rect.Rect) *Filler {
	return &Filler{Clip: clip, smallPathThreshold: smallPathThreshold}
}

// Fill rasterizes p (already flattened, already device-space) using rule.
// emit is called once per scanline row that has non-zero coverage; its
// slice argument is valid only during the call.
func (f *Filler) Fill(p *Path, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	f.collectPathEdges(p)
	f.fillCollectedEdges(rule, emit)
}

// FillPolygons rasterizes a set of already-closed polygons (as produced
// by Stroke) together, using the nonzero winding rule so that overlapping
// polygons (adjoining dashes, joins) composite into a single coverage
// instead of cancelling or doubling.
func (f *Filler) FillPolygons(polys [][]Point, emit func(y, xMin int, coverage []float32)) {
	f.edges = f.edges[:0]
	f.bboxFirst = true
	for _, poly := range polys {
		if len(poly) < 2 {
			continue
		}
		for i := 1; i < len(poly); i++ {
			f.addEdge(poly[i-1], poly[i])
		}
		f.addEdge(poly[len(poly)-1], poly[0])
	}
	f.fillCollectedEdges(FillNonZero, emit)
}

func (f *Filler) collectPathEdges(p *Path) {
	f.edges = f.edges[:0]
	f.bboxFirst = true
	for _, sp := range p.Subpaths {
		pts := sp.Points
		if len(pts) < 2 {
			continue
		}
		for i := 1; i < len(pts); i++ {
			f.addEdge(pts[i-1], pts[i])
		}
		if sp.Closed {
			f.addEdge(pts[len(pts)-1], pts[0])
		}
	}
}

// fillCollectedEdges computes the bounding box of f.edges, clamps it to
// the clip rectangle, and dispatches to the small- or large-path fill
// strategy.
func (f *Filler) fillCollectedEdges(rule FillRule, emit func(y, xMin int, coverage []float32)) {
	if len(f.edges) == 0 {
		return
	}

	clipXMin := int(f.Clip.LLx)
	clipXMax := int(f.Clip.URx)
	clipYMin := int(f.Clip.LLy)
	clipYMax := int(f.Clip.URy)

	xMin := max(int(math.Floor(f.devXMin)), clipXMin)
	xMax := min(int(math.Floor(f.devXMax))+1, clipXMax)
	yMin := max(int(math.Floor(f.devYMin)), clipYMin)
	yMax := min(int(math.Floor(f.devYMax))+1, clipYMax)
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	height := yMax - yMin
	if width*height < f.smallPathThreshold {
		f.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		f.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// addEdge appends an edge in device space, updating the running bounding
// box. Horizontal edges (no vertical extent) never affect winding and are
// skipped.
func (f *Filler) addEdge(p0, p1 Point) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	dxdy := (p1.X - p0.X) / dy
	f.edges = append(f.edges, edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dxdy: dxdy})

	if f.bboxFirst {
		f.devXMin, f.devXMax = min(p0.X, p1.X), max(p0.X, p1.X)
		f.devYMin, f.devYMax = min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		f.bboxFirst = false
	} else {
		f.devXMin = min(f.devXMin, min(p0.X, p1.X))
		f.devXMax = max(f.devXMax, max(p0.X, p1.X))
		f.devYMin = min(f.devYMin, min(p0.Y, p1.Y))
		f.devYMax = max(f.devYMax, max(p0.Y, p1.Y))
	}
}

// accumulateEdge adds one edge's contribution, within scanline row y, to
// the cover/area buffers indexed by (x - bboxXMin). Edges spanning
// multiple pixel columns are split at column boundaries.
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := xAtTop, xAtBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		v := sign * float32(yBot-yTop)
		cover[0] += v
		area[0] += v
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		accumulateColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtL := e.y0 + dydx*(float64(pix)-e.x0)
		yAtR := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtL, yAtR), yTop)
		segYMax := min(max(yAtL, yAtR), yBot)
		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}
		coverVal := sign * float32(segDy)
		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		xFrac := xMid - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

func accumulateColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}
	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)
	areaVal := coverVal * float32(1-xFrac)
	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += areaVal
}

func integrateScanlineNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cov := raw
		if cov < 0 {
			cov = -cov
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

func integrateScanlineEvenOdd(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func trimZeros(coverage []float32) ([]float32, int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmallPath rasterizes using per-pixel 2D buffers, the cheaper
// approach when the path's device-space bounding box is small.
func (f *Filler) fillSmallPath(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin
	size := width * height

	f.cover = slices.Grow(f.cover[:0], size)[:size]
	f.area = slices.Grow(f.area[:0], size)[:size]
	clear(f.cover)
	clear(f.area)
	f.rowHasEdges = slices.Grow(f.rowHasEdges[:0], height)[:height]
	clear(f.rowHasEdges)

	for i := range f.edges {
		e := &f.edges[i]
		var edgeYMin, edgeYMax int
		if e.y0 < e.y1 {
			edgeYMin, edgeYMax = int(math.Floor(e.y0)), int(math.Floor(e.y1))+1
		} else {
			edgeYMin, edgeYMax = int(math.Floor(e.y1)), int(math.Floor(e.y0))+1
		}
		edgeYMin = max(edgeYMin, yMin)
		edgeYMax = min(edgeYMax, yMax)
		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			off := row * width
			accumulateEdge(e, y, f.cover[off:off+width], f.area[off:off+width], xMin, xMax)
			f.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !f.rowHasEdges[row] {
			continue
		}
		y := yMin + row
		off := row * width
		coverage := f.cover[off : off+width]
		if rule == FillNonZero {
			integrateScanlineNonZero(coverage, f.area[off:off+width])
		} else {
			integrateScanlineEvenOdd(coverage, f.area[off:off+width])
		}
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterizes using 1D buffers and an active-edge list, for
// paths whose bounding box is too large to justify a full 2D buffer.
func (f *Filler) fillLargePath(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	f.cover = slices.Grow(f.cover[:0], width)[:width]
	f.area = slices.Grow(f.area[:0], width)[:width]

	slices.SortFunc(f.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	f.activeIdx = f.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(f.edges) {
			e := &f.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			f.activeIdx = append(f.activeIdx, nextEdge)
			nextEdge++
		}
		if len(f.activeIdx) == 0 {
			continue
		}

		clear(f.cover)
		clear(f.area)

		xMinBound := width
		xMaxBound := -1

		for i := 0; i < len(f.activeIdx); {
			e := &f.edges[f.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				f.activeIdx[i] = f.activeIdx[len(f.activeIdx)-1]
				f.activeIdx = f.activeIdx[:len(f.activeIdx)-1]
				continue
			}

			accumulateEdge(e, y, f.cover, f.area, xMin, xMax)

			yTop := max(yf, min(e.y0, e.y1))
			yBot := min(yfNext, max(e.y0, e.y1))
			if yBot > yTop {
				yMid := (yTop + yBot) / 2
				xMidF := e.x0 + e.dxdy*(yMid-e.y0)
				x := int(math.Floor(xMidF))
				x = max(x, xMin)
				x = min(x, xMax-1)
				xIdx := x - xMin
				xMinBound = min(xMinBound, xIdx)
				xMaxBound = max(xMaxBound, xIdx)
			}
			i++
		}

		if xMaxBound < 0 {
			continue
		}

		if rule == FillNonZero {
			integrateScanlineNonZero(f.cover, f.area)
		} else {
			integrateScanlineEvenOdd(f.cover, f.area)
		}
		if trimmed, offset := trimZeros(f.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}
