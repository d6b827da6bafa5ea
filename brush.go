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

import "sort"

// ColorStop is a color at a fractional offset in [0, 1] along a
// gradient's axis.
type ColorStop struct {
	Offset float64
	Color  Color
}

// WrapMode controls how a pattern brush repeats its source image
// outside the image's own bounds.
type WrapMode int

const (
	NoRepeat WrapMode = iota
	RepeatX
	RepeatY
	Repeat
)

// brushKind tags which of Brush's variant fields is active.
type brushKind int

const (
	brushSolid brushKind = iota
	brushLinearGradient
	brushRadialGradient
	brushPattern
)

// Brush is the tagged union of paint sources a canvas fill or stroke can
// use: a flat color, a linear or radial gradient, or an image pattern.
// The zero Brush is a transparent solid color; the opaque black default
// fill/stroke style comes from the canvas's initial graphics state.
//
// Brush values are immutable once built via the New*Brush constructors;
// Canvas.SetFillStyle/SetStrokeStyle store a copy.
type Brush struct {
	kind brushKind

	solid Color

	// gradient axis, in user space at the time the brush is set with
	// SetFillStyle/SetStrokeStyle (the canvas stores the transform in
	// effect then, so the axis can be mapped into device space at
	// paint-sampling time).
	x0, y0, r0 float64
	x1, y1, r1 float64
	stops      []ColorStop

	pattern  *Image
	wrap     WrapMode
	smooth   bool
}

// NewSolidBrush returns a brush that paints a single flat color.
func NewSolidBrush(c Color) Brush {
	return Brush{kind: brushSolid, solid: c}
}

// NewLinearGradientBrush returns a brush that interpolates stops along
// the line from (x0,y0) to (x1,y1), in user-space coordinates.
func NewLinearGradientBrush(x0, y0, x1, y1 float64, stops []ColorStop) Brush {
	return Brush{
		kind:  brushLinearGradient,
		x0:    x0, y0: y0, x1: x1, y1: y1,
		stops: sortedStops(stops),
	}
}

// NewRadialGradientBrush returns a brush that interpolates stops between
// two circles (x0,y0,r0) and (x1,y1,r1), in user-space coordinates,
// matching the HTML5 canvas createRadialGradient cone construction.
func NewRadialGradientBrush(x0, y0, r0, x1, y1, r1 float64, stops []ColorStop) Brush {
	return Brush{
		kind:  brushRadialGradient,
		x0:    x0, y0: y0, r0: r0,
		x1: x1, y1: y1, r1: r1,
		stops: sortedStops(stops),
	}
}

// NewPatternBrush returns a brush that tiles img according to wrap.
// smooth selects bicubic (Mitchell-Netravali) resampling; when false,
// the nearest source texel is used.
func NewPatternBrush(img *Image, wrap WrapMode, smooth bool) Brush {
	return Brush{kind: brushPattern, pattern: img, wrap: wrap, smooth: smooth}
}

// sortedStops returns stops sorted by Offset, clamping each Offset to
// [0, 1]; out-of-range or unsorted input is permitted at the API level
// but normalized here so the sampler can binary-search.
func sortedStops(stops []ColorStop) []ColorStop {
	out := make([]ColorStop, len(stops))
	copy(out, stops)
	for i := range out {
		out[i].Offset = clamp01(out[i].Offset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}
