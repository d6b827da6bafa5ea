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

import "math"

// Color is an unpremultiplied sRGB color with components in [0, 1]. It
// is the type solid brushes, gradient color stops and the shadow color
// take; PutImageData/GetImageData exchange the same colors as sRGB8
// bytes.
type Color struct {
	R, G, B, A float64
}

// linearRGBA is a premultiplied color in linear light, the space every
// compositing and gradient-interpolation computation in this module
// runs in, per spec.md §6's "gamma-correct" requirement.
type linearRGBA struct {
	R, G, B, A float64
}

// toLinearPremul converts an unpremultiplied sRGB color to premultiplied
// linear light, using the 256-entry lookup table built in init below --
// the same sRGB<->linear LUT strategy gogpu-gg's internal/color package
// uses to replace a math.Pow call per channel per pixel.
func (c Color) toLinearPremul() linearRGBA {
	a := clamp01(c.A)
	return linearRGBA{
		R: srgbToLinear(c.R) * a,
		G: srgbToLinear(c.G) * a,
		B: srgbToLinear(c.B) * a,
		A: a,
	}
}

// toColor converts a premultiplied linear color back to unpremultiplied
// sRGB.
func (c linearRGBA) toColor() Color {
	if c.A <= 0 {
		return Color{}
	}
	inv := 1 / c.A
	return Color{
		R: linearToSRGB(c.R * inv),
		G: linearToSRGB(c.G * inv),
		B: linearToSRGB(c.B * inv),
		A: clamp01(c.A),
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// lerp linearly interpolates between two premultiplied linear colors.
func (c linearRGBA) lerp(other linearRGBA, t float64) linearRGBA {
	return linearRGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

const (
	srgbLUTSize = 256
	// linearLUTSize uses 12-bit precision: more than the 8-bit output
	// depth needs, which keeps round trips through the table from
	// introducing visible banding.
	linearLUTSize = 4096
)

var (
	srgbToLinearLUT [srgbLUTSize]float64
	linearToSRGBLUT [linearLUTSize]float64
)

func init() {
	for i := range srgbToLinearLUT {
		s := float64(i) / (srgbLUTSize - 1)
		srgbToLinearLUT[i] = srgbToLinearExact(s)
	}
	for i := range linearToSRGBLUT {
		l := float64(i) / (linearLUTSize - 1)
		linearToSRGBLUT[i] = linearToSRGBExact(l)
	}
}

func srgbToLinearExact(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGBExact(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	if l >= 1 {
		// 1.055 - 0.055 rounds to just below 1 in float64, which would
		// turn full intensity into byte 254.
		return 1
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// srgbToLinear maps an 8-bit-resolution sRGB component to linear light
// via a table lookup with linear interpolation between entries, giving
// effectively exact results for byte-quantized input without repeated
// math.Pow calls in the hot compositing path.
func srgbToLinear(s float64) float64 {
	s = clamp01(s)
	return lerpLUT(srgbToLinearLUT[:], s)
}

// linearToSRGB maps a linear-light component back to sRGB via the
// higher-resolution inverse table; spec.md §9 calls this out as needing
// a monotonic, high-precision inverse so that dithering downstream does
// not amplify quantization error.
func linearToSRGB(l float64) float64 {
	l = clamp01(l)
	return lerpLUT(linearToSRGBLUT[:], l)
}

func lerpLUT(table []float64, x float64) float64 {
	n := len(table) - 1
	pos := x * float64(n)
	i := int(pos)
	if i >= n {
		return table[n]
	}
	frac := pos - float64(i)
	return table[i] + (table[i+1]-table[i])*frac
}

// bayer4x4 is the standard 4x4 ordered-dither threshold matrix, scaled
// to [0, 1). It breaks up the banding that would otherwise appear when
// quantizing smooth linear-to-sRGB gradients down to 8 bits per channel.
var bayer4x4 = [4][4]float64{
	{0 / 16.0, 8 / 16.0, 2 / 16.0, 10 / 16.0},
	{12 / 16.0, 4 / 16.0, 14 / 16.0, 6 / 16.0},
	{3 / 16.0, 11 / 16.0, 1 / 16.0, 9 / 16.0},
	{15 / 16.0, 7 / 16.0, 13 / 16.0, 5 / 16.0},
}

// ditheredByte quantizes an unpremultiplied sRGB component in [0, 1] to
// a byte using ordered dithering: the Bayer threshold for pixel (x, y)
// is added before truncation so that, averaged over a 4x4 block, the
// output reproduces the input intensity even where it falls between two
// byte values.
func ditheredByte(v float64, x, y int) byte {
	v = clamp01(v)
	scaled := v*255 + bayer4x4[y&3][x&3]
	if scaled > 255 {
		scaled = 255
	}
	return byte(scaled)
}
