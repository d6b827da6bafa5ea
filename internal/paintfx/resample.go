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

package paintfx

import "math"

// Wrap selects how pattern coordinates outside the source image's own
// extent are mapped back into it.
type Wrap int

const (
	WrapNone Wrap = iota
	WrapX
	WrapY
	WrapBoth
)

// wrapCoord maps an integer pixel coordinate into [0, size) according
// to wrap, or reports it out of range (out=true) when the axis has no
// repeat and the coordinate falls outside the buffer.
func wrapCoord(v, size int, repeat bool) (int, bool) {
	if repeat {
		v %= size
		if v < 0 {
			v += size
		}
		return v, false
	}
	if v < 0 || v >= size {
		return 0, true
	}
	return v, false
}

// Sample reads buf at continuous source coordinates (x, y) using
// bicubic (Mitchell-Netravali, B=0 C=0.5 i.e. Catmull-Rom) resampling
// over the surrounding 4x4 texel neighborhood, wrapping each repeating
// axis per wrap; taps beyond the edge of a non-repeating axis are left
// out of the sum. Coordinates entirely outside a non-repeating axis
// sample transparent black, matching the HTML5 canvas pattern "no
// repeat" behaviour.
func Sample(buf *Buffer, x, y float64, wrap Wrap) Color {
	repeatX := wrap == WrapX || wrap == WrapBoth
	repeatY := wrap == WrapY || wrap == WrapBoth

	fx, fy := x-0.5, y-0.5
	ix, iy := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(ix), fy-float64(iy)

	var wx, wy [4]float64
	for i := range 4 {
		wx[i] = cubicWeight(tx - float64(i-1))
		wy[i] = cubicWeight(ty - float64(i-1))
	}

	var r, g, b, a, wsum float64
	for j := 0; j < 4; j++ {
		py, out := wrapCoord(iy+j-1, buf.H, repeatY)
		if out {
			continue
		}
		for i := 0; i < 4; i++ {
			px, out := wrapCoord(ix+i-1, buf.W, repeatX)
			if out {
				continue
			}
			w := wx[i] * wy[j]
			c := buf.At(px, py)
			r += c.R * w
			g += c.G * w
			b += c.B * w
			a += c.A * w
			wsum += w
		}
	}
	if wsum == 0 {
		return Color{}
	}
	// Renormalize so that texels clipped by a non-repeating edge don't
	// darken the result: the remaining weights are rescaled to sum to
	// the weight the full 4x4 kernel would have carried.
	return Color{R: r / wsum, G: g / wsum, B: b / wsum, A: a / wsum}
}

// NearestSample reads buf at the texel nearest to continuous source
// coordinates (x, y), wrapping or rejecting each axis per wrap --  the
// non-smooth alternative to Sample's bicubic filtering, for patterns
// that want crisp, unfiltered texel edges.
func NearestSample(buf *Buffer, x, y float64, wrap Wrap) Color {
	repeatX := wrap == WrapX || wrap == WrapBoth
	repeatY := wrap == WrapY || wrap == WrapBoth
	ix := int(math.Floor(x))
	iy := int(math.Floor(y))
	px, outX := wrapCoord(ix, buf.W, repeatX)
	py, outY := wrapCoord(iy, buf.H, repeatY)
	if outX || outY {
		return Color{}
	}
	return buf.At(px, py)
}

// cubicWeight is the Mitchell-Netravali kernel with B=0, C=0.5 (the
// Catmull-Rom spline): interpolating, with no ringing artifacts beyond
// mild overshoot, which is the right tradeoff for a pattern fill rather
// than a downsampling filter.
func cubicWeight(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t < 1:
		return 1.5*t*t*t - 2.5*t*t + 1
	case t < 2:
		return -0.5*t*t*t + 2.5*t*t - 4*t + 2
	default:
		return 0
	}
}
