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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
)

// BenchmarkRasterizerO benchmarks this package's Filler drawing an "O"
// shape, for comparison against golang.org/x/image/vector below.
func BenchmarkRasterizerO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			f := NewFiller(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			outerR := float64(size) * 0.45
			innerR := float64(size) * 0.30

			p := makeOPath(center, center, outerR, innerR)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				f.Fill(&p, FillEvenOdd, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing the same "O" shape.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// makeOPath builds an "O" shape -- an outer circle wound
// counter-clockwise and an inner circle wound clockwise, so an
// even-odd or nonzero fill both punch the hole -- already flattened to
// line segments, the form this package's Path always takes.
func makeOPath(cx, cy, outerR, innerR float64) Path {
	var p Path
	addCircleToPath(&p, cx, cy, outerR, false)
	addCircleToPath(&p, cx, cy, innerR, true)
	return p
}

// addCircleToPath appends a flattened circle to p via four cubic Bézier
// quadrants, matching the construction seehuhn.de/go/render's own
// benchmark used before curve flattening moved into this package.
func addCircleToPath(p *Path, cx, cy, r float64, clockwise bool) {
	const k = 0.5522847498
	kr := k * r

	const flatness = 0.25
	add := func(from, c1, c2, to Point) {
		FlattenCubic(from, c1, c2, to, flatness, func(_, pt Point) { p.LineTo(pt) })
	}

	top := Point{X: cx, Y: cy - r}
	bottom := Point{X: cx, Y: cy + r}
	left := Point{X: cx - r, Y: cy}
	right := Point{X: cx + r, Y: cy}

	p.MoveTo(top)
	if clockwise {
		add(top, Point{X: cx - kr, Y: cy - r}, Point{X: cx - r, Y: cy - kr}, left)
		add(left, Point{X: cx - r, Y: cy + kr}, Point{X: cx - kr, Y: cy + r}, bottom)
		add(bottom, Point{X: cx + kr, Y: cy + r}, Point{X: cx + r, Y: cy + kr}, right)
		add(right, Point{X: cx + r, Y: cy - kr}, Point{X: cx + kr, Y: cy - r}, top)
	} else {
		add(top, Point{X: cx + kr, Y: cy - r}, Point{X: cx + r, Y: cy - kr}, right)
		add(right, Point{X: cx + r, Y: cy + kr}, Point{X: cx + kr, Y: cy + r}, bottom)
		add(bottom, Point{X: cx - kr, Y: cy + r}, Point{X: cx - r, Y: cy + kr}, left)
		add(left, Point{X: cx - r, Y: cy - kr}, Point{X: cx - kr, Y: cy - r}, top)
	}
	p.Close()
}

// addCircleToVector adds the same circle to a vector.Rasterizer using
// its own cubic Bézier primitive.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	if clockwise {
		r.MoveTo(cx, cy-radius)
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.MoveTo(cx, cy-radius)
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
