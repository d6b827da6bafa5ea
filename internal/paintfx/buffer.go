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

// Package paintfx samples the paint sources a fill or stroke can use --
// solid color, linear/radial gradient, image pattern -- and composites
// the result onto a destination buffer using the Porter-Duff operators
// the canvas model exposes. Every color value that crosses this
// package's API boundary is premultiplied and in linear light: gamma
// conversion happens once, at the edges of the pixel buffer the Canvas
// facade owns.
package paintfx

// Color is a premultiplied RGBA color in linear light.
type Color struct {
	R, G, B, A float64
}

// Lerp linearly interpolates between two premultiplied linear colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Buffer is a premultiplied linear-light RGBA pixel buffer in row-major
// order, the common representation both a pattern's source image and a
// canvas's own backing store use internally.
type Buffer struct {
	W, H int
	Pix  []Color
}

// NewBuffer allocates a zeroed (fully transparent) w x h buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]Color, w*h)}
}

// At returns the pixel at (x, y), clamping out-of-range coordinates to
// the nearest edge pixel.
func (b *Buffer) At(x, y int) Color {
	if b.W == 0 || b.H == 0 {
		return Color{}
	}
	if x < 0 {
		x = 0
	} else if x >= b.W {
		x = b.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.H {
		y = b.H - 1
	}
	return b.Pix[y*b.W+x]
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c Color) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	b.Pix[y*b.W+x] = c
}
