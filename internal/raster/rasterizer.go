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

import "seehuhn.de/go/geom/rect"

// Rasterizer bundles the path accumulator, the stroker and the coverage
// filler, playing the role seehuhn.de/go/render's combined Rasterizer
// struct plays there. Unlike that type it carries no CTM: by the time a
// point reaches Rasterizer it is already in device space (see the
// package doc comment).
//
// Create one Rasterizer and reuse it across Fill/Stroke calls; its
// internal Filler keeps its scratch buffers between calls. Stroke still
// allocates its outline polygons on every call.
type Rasterizer struct {
	filler *Filler
}

// NewRasterizer returns a Rasterizer clipping output to clip.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{filler: NewFiller(clip)}
}

// SetClip updates the device-coordinate clip rectangle used by
// subsequent Fill/Stroke calls.
func (r *Rasterizer) SetClip(clip rect.Rect) { r.filler.Clip = clip }

// Fill rasterizes p (already flattened to device space) under rule,
// calling emit once per non-empty coverage row.
func (r *Rasterizer) Fill(p *Path, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	r.filler.Fill(p, rule, emit)
}

// Stroke rasterizes the stroked outline of p under style, calling emit
// once per non-empty coverage row. Overlapping dash/join/cap geometry is
// combined with the nonzero winding rule so it is painted exactly once.
func (r *Rasterizer) Stroke(p *Path, style Style, emit func(y, xMin int, coverage []float32)) {
	polys := Stroke(p, style)
	if len(polys) == 0 {
		return
	}
	r.filler.FillPolygons(polys, emit)
}
