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

import "seehuhn.de/go/canvas/internal/paintfx"

// paintSampler returns, for a device-space pixel center, the
// premultiplied linear color the brush contributes there. It closes
// over whatever per-call setup (sorted gradient stops, inverse
// transform) each brush kind needs, computed once instead of per
// pixel.
type paintSampler func(devX, devY float64) paintfx.Color

// makeSampler builds a paintSampler for b. inv maps device space back
// to the user space the brush's own coordinates (gradient endpoints,
// pattern image) were specified in -- the inverse of the transform in
// effect when the brush was set with SetFillStyle/SetStrokeStyle, per
// spec.md §4.5.
func makeSampler(b *Brush, inv Transform, ok bool) paintSampler {
	switch b.kind {
	case brushLinearGradient:
		stops := toStops(b.stops)
		x0, y0, x1, y1 := b.x0, b.y0, b.x1, b.y1
		if !ok {
			return transparentSampler
		}
		return func(devX, devY float64) paintfx.Color {
			ux, uy := applyXY(inv, devX, devY)
			return paintfx.LinearGradient(x0, y0, x1, y1, ux, uy, stops)
		}
	case brushRadialGradient:
		stops := toStops(b.stops)
		x0, y0, r0, x1, y1, r1 := b.x0, b.y0, b.r0, b.x1, b.y1, b.r1
		if !ok {
			return transparentSampler
		}
		return func(devX, devY float64) paintfx.Color {
			ux, uy := applyXY(inv, devX, devY)
			return paintfx.RadialGradient(x0, y0, r0, x1, y1, r1, ux, uy, stops)
		}
	case brushPattern:
		if b.pattern == nil || !ok {
			return transparentSampler
		}
		img := b.pattern.buf
		wrap := toWrapMode(b.wrap)
		if !b.smooth {
			return func(devX, devY float64) paintfx.Color {
				ux, uy := applyXY(inv, devX, devY)
				return paintfx.NearestSample(img, ux, uy, wrap)
			}
		}
		return func(devX, devY float64) paintfx.Color {
			ux, uy := applyXY(inv, devX, devY)
			return paintfx.Sample(img, ux, uy, wrap)
		}
	default: // brushSolid
		c := b.solid.toLinearPremul()
		pc := paintfx.Color{R: c.R, G: c.G, B: c.B, A: c.A}
		return func(float64, float64) paintfx.Color { return pc }
	}
}

func transparentSampler(float64, float64) paintfx.Color { return paintfx.Color{} }

func applyXY(m Transform, x, y float64) (float64, float64) {
	p := apply(m, Point{X: x, Y: y})
	return p.X, p.Y
}

func toStops(stops []ColorStop) []paintfx.Stop {
	out := make([]paintfx.Stop, len(stops))
	for i, s := range stops {
		lin := s.Color.toLinearPremul()
		out[i] = paintfx.Stop{Offset: s.Offset, Color: paintfx.Color{R: lin.R, G: lin.G, B: lin.B, A: lin.A}}
	}
	return out
}

func toWrapMode(w WrapMode) paintfx.Wrap {
	switch w {
	case RepeatX:
		return paintfx.WrapX
	case RepeatY:
		return paintfx.WrapY
	case Repeat:
		return paintfx.WrapBoth
	default:
		return paintfx.WrapNone
	}
}
