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
	"seehuhn.de/go/canvas/internal/paintfx"
	"seehuhn.de/go/canvas/internal/raster"
)

// TextAlign selects the horizontal anchor of drawn text relative to the
// x coordinate passed to FillText/StrokeText.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

// TextBaseline selects the vertical anchor of drawn text relative to
// the y coordinate passed to FillText/StrokeText.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

// graphicsState is every piece of drawing configuration that save/
// restore snapshots as a unit; the current path is deliberately not a
// member, matching the HTML5 canvas rule that the path survives a
// save/restore pair untouched.
type graphicsState struct {
	transform Transform

	fill   Brush
	stroke Brush

	// fillTransform/strokeTransform are the transform in effect when
	// fill/stroke were last set via SetFillStyle/SetStrokeStyle -- the
	// user space a gradient/pattern brush's own coordinates are defined
	// in, per spec.md §4.5. Sampling inverts this snapshot, not
	// whatever transform happens to be current at Fill/Stroke time.
	fillTransform   Transform
	strokeTransform Transform

	lineWidth  float64
	cap        raster.LineCap
	join       raster.LineJoin
	miterLimit float64
	dash       []float64
	dashPhase  float64

	globalAlpha float64
	compositeOp paintfx.Operator

	shadowColor   Color
	shadowOffsetX float64
	shadowOffsetY float64
	shadowBlur    float64

	font         *Font
	fontSize     float64
	textAlign    TextAlign
	textBaseline TextBaseline

	clip *clipMask
}

// defaultGraphicsState is the state a freshly constructed Canvas
// starts in: identity transform, opaque black fill and stroke, 1-unit
// line width, butt caps, miter joins, no dashing, full global alpha,
// source-over compositing, transparent (inactive) shadow, no clip.
func defaultGraphicsState() graphicsState {
	return graphicsState{
		transform:       Identity,
		fill:            NewSolidBrush(Color{A: 1}),
		stroke:          NewSolidBrush(Color{A: 1}),
		fillTransform:   Identity,
		strokeTransform: Identity,
		lineWidth:       1,
		cap:             raster.CapButt,
		join:            raster.JoinMiter,
		miterLimit:      10,
		globalAlpha:     1,
		compositeOp:     paintfx.SourceOver,
		fontSize:        10,
	}
}

// clone returns a deep copy of g, used by Canvas.Save so that later
// mutation of the live state (including resizing the dash slice, or
// narrowing the clip mask) never reaches back into the snapshot.
func (g graphicsState) clone() graphicsState {
	out := g
	if g.dash != nil {
		out.dash = append([]float64(nil), g.dash...)
	}
	out.clip = g.clip.clone()
	return out
}
