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

// Image is a decoded, owned copy of source pixel data, premultiplied
// and linearized once on construction so that pattern sampling and
// draw_image never repeat that conversion per pixel.
type Image struct {
	W, H int
	buf  *paintfx.Buffer
}

// NewImageFromSRGB8 builds an Image from straight (non-premultiplied)
// sRGB8 pixel data laid out as w*h RGBA quads with the given stride (in
// bytes); stride may exceed w*4 to describe a row-padded source buffer.
func NewImageFromSRGB8(pix []byte, w, h, stride int) *Image {
	buf := paintfx.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			if i+3 >= len(row) {
				break
			}
			c := Color{
				R: float64(row[i+0]) / 255,
				G: float64(row[i+1]) / 255,
				B: float64(row[i+2]) / 255,
				A: float64(row[i+3]) / 255,
			}
			lin := c.toLinearPremul()
			buf.Set(x, y, paintfx.Color{R: lin.R, G: lin.G, B: lin.B, A: lin.A})
		}
	}
	return &Image{W: w, H: h, buf: buf}
}
