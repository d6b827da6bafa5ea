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

package ttf

import "encoding/binary"

// PathSink receives a decoded glyph outline in font units (the caller
// scales by fontSize/UnitsPerEm and positions it). Quadratic segments
// are emitted as explicit on/off-curve control points, mirroring the
// TrueType quadratic B-spline contour encoding; it is up to the sink
// (this module's path accumulator, by way of the public Font type) to
// flatten them.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	ClosePath()
}

// maxCompositeDepth bounds composite-glyph recursion so that a font
// with a glyph that (directly or through a chain of components)
// references itself cannot loop forever; real fonts never nest this
// deep.
const maxCompositeDepth = 8

// GlyphOutline decodes glyph index gid's outline into sink, in font
// units. Any malformed structure (bad loca offsets, truncated glyf
// data, a composite cycle deeper than maxCompositeDepth) stops emitting
// further contours but never panics; the caller sees whatever partial
// outline was already sent to sink, which for a fully malformed glyph
// is nothing.
func (f *Face) GlyphOutline(gid uint16, sink PathSink) error {
	return f.decodeGlyph(gid, sink, identityTransform(), 0)
}

type glyphTransform struct {
	a, b, c, d, e, f float64
}

func identityTransform() glyphTransform {
	return glyphTransform{a: 1, d: 1}
}

func (t glyphTransform) apply(x, y float64) (float64, float64) {
	return t.a*x + t.c*y + t.e, t.b*x + t.d*y + t.f
}

func (t glyphTransform) then(other glyphTransform) glyphTransform {
	return glyphTransform{
		a: t.a*other.a + t.c*other.b,
		b: t.b*other.a + t.d*other.b,
		c: t.a*other.c + t.c*other.d,
		d: t.b*other.c + t.d*other.d,
		e: t.a*other.e + t.c*other.f + t.e,
		f: t.b*other.e + t.d*other.f + t.f,
	}
}

func (f *Face) glyphData(gid uint16) ([]byte, error) {
	loca, err := f.table("loca")
	if err != nil {
		return nil, ErrNoGlyph
	}
	glyf, err := f.table("glyf")
	if err != nil {
		return nil, ErrNoGlyph
	}
	if int(gid) >= f.numGlyphs {
		return nil, ErrNoGlyph
	}

	var start, end uint32
	if f.longLoca {
		off := int(gid) * 4
		if off+8 > len(loca) {
			return nil, ErrNoGlyph
		}
		start = binary.BigEndian.Uint32(loca[off:])
		end = binary.BigEndian.Uint32(loca[off+4:])
	} else {
		off := int(gid) * 2
		if off+4 > len(loca) {
			return nil, ErrNoGlyph
		}
		start = 2 * uint32(binary.BigEndian.Uint16(loca[off:]))
		end = 2 * uint32(binary.BigEndian.Uint16(loca[off+2:]))
	}
	if start >= end || uint64(end) > uint64(len(glyf)) {
		return nil, nil // empty glyph (e.g. space): valid, zero contours
	}
	return glyf[start:end], nil
}

func (f *Face) decodeGlyph(gid uint16, sink PathSink, xform glyphTransform, depth int) error {
	if depth > maxCompositeDepth {
		return ErrNoGlyph
	}
	data, err := f.glyphData(gid)
	if err != nil {
		return err
	}
	if len(data) < 10 {
		return nil
	}
	numContours := int16(binary.BigEndian.Uint16(data[0:2]))
	if numContours >= 0 {
		return decodeSimpleGlyph(data, int(numContours), sink, xform)
	}
	return f.decodeCompositeGlyph(data, sink, xform, depth)
}

func decodeSimpleGlyph(data []byte, numContours int, sink PathSink, xform glyphTransform) error {
	pos := 10
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		if pos+2 > len(data) {
			return ErrNoGlyph
		}
		endPts[i] = int(binary.BigEndian.Uint16(data[pos:]))
		pos += 2
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = endPts[numContours-1] + 1
	}

	if pos+2 > len(data) {
		return ErrNoGlyph
	}
	insLen := int(binary.BigEndian.Uint16(data[pos:]))
	pos += 2 + insLen

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if pos >= len(data) {
			return ErrNoGlyph
		}
		flag := data[pos]
		pos++
		flags = append(flags, flag)
		if flag&8 != 0 { // REPEAT_FLAG
			if pos >= len(data) {
				return ErrNoGlyph
			}
			repeat := int(data[pos])
			pos++
			for i := 0; i < repeat && len(flags) < numPoints; i++ {
				flags = append(flags, flag)
			}
		}
	}

	xs := make([]int, numPoints)
	x := 0
	for i, flag := range flags {
		switch {
		case flag&2 != 0: // X_SHORT_VECTOR
			if pos >= len(data) {
				return ErrNoGlyph
			}
			d := int(data[pos])
			pos++
			if flag&16 == 0 { // sign bit: 0 means negative for short vectors
				d = -d
			}
			x += d
		case flag&16 != 0: // X_IS_SAME_OR_POSITIVE
			// x unchanged
		default:
			if pos+2 > len(data) {
				return ErrNoGlyph
			}
			x += int(int16(binary.BigEndian.Uint16(data[pos:])))
			pos += 2
		}
		xs[i] = x
	}

	ys := make([]int, numPoints)
	y := 0
	for i, flag := range flags {
		switch {
		case flag&4 != 0: // Y_SHORT_VECTOR
			if pos >= len(data) {
				return ErrNoGlyph
			}
			d := int(data[pos])
			pos++
			if flag&32 == 0 {
				d = -d
			}
			y += d
		case flag&32 != 0: // Y_IS_SAME_OR_POSITIVE
		default:
			if pos+2 > len(data) {
				return ErrNoGlyph
			}
			y += int(int16(binary.BigEndian.Uint16(data[pos:])))
			pos += 2
		}
		ys[i] = y
	}

	start := 0
	for _, end := range endPts {
		if end < start || end >= numPoints {
			return ErrNoGlyph
		}
		emitContour(flags[start:end+1], xs[start:end+1], ys[start:end+1], sink, xform)
		start = end + 1
	}
	return nil
}

// emitContour walks one contour's on/off-curve points, synthesizing the
// implicit on-curve midpoint between two consecutive off-curve points
// (the standard TrueType quadratic B-spline contour rule), and emits
// MoveTo/QuadTo/LineTo/ClosePath calls on sink.
func emitContour(flags []byte, xs, ys []int, sink PathSink, xform glyphTransform) {
	n := len(flags)
	if n == 0 {
		return
	}
	type point struct {
		x, y    float64
		onCurve bool
	}
	raw := make([]point, n)
	for i := 0; i < n; i++ {
		x, y := xform.apply(float64(xs[i]), float64(ys[i]))
		raw[i] = point{x: x, y: y, onCurve: flags[i]&1 != 0}
	}

	pts := make([]point, 0, 2*n)
	for i, cur := range raw {
		pts = append(pts, cur)
		next := raw[(i+1)%n]
		if !cur.onCurve && !next.onCurve {
			pts = append(pts, point{x: (cur.x + next.x) / 2, y: (cur.y + next.y) / 2, onCurve: true})
		}
	}

	start := -1
	for i, p := range pts {
		if p.onCurve {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}
	m := len(pts)
	ordered := make([]point, m)
	for i := 0; i < m; i++ {
		ordered[i] = pts[(start+i)%m]
	}

	sink.MoveTo(ordered[0].x, ordered[0].y)
	for i := 1; i <= m; {
		p := ordered[i%m]
		if p.onCurve {
			sink.LineTo(p.x, p.y)
			i++
		} else {
			end := ordered[(i+1)%m]
			sink.QuadTo(p.x, p.y, end.x, end.y)
			i += 2
		}
	}
	sink.ClosePath()
}

func (f *Face) decodeCompositeGlyph(data []byte, sink PathSink, xform glyphTransform, depth int) error {
	pos := 10
	for {
		if pos+4 > len(data) {
			return ErrNoGlyph
		}
		flags := binary.BigEndian.Uint16(data[pos:])
		compGid := binary.BigEndian.Uint16(data[pos+2:])
		pos += 4

		var dx, dy float64
		if flags&0x0001 != 0 { // ARG_1_AND_2_ARE_WORDS
			if pos+4 > len(data) {
				return ErrNoGlyph
			}
			dx = float64(int16(binary.BigEndian.Uint16(data[pos:])))
			dy = float64(int16(binary.BigEndian.Uint16(data[pos+2:])))
			pos += 4
		} else {
			if pos+2 > len(data) {
				return ErrNoGlyph
			}
			dx = float64(int8(data[pos]))
			dy = float64(int8(data[pos+1]))
			pos += 2
		}

		comp := glyphTransform{a: 1, d: 1}
		switch {
		case flags&0x0008 != 0: // WE_HAVE_A_SCALE
			if pos+2 > len(data) {
				return ErrNoGlyph
			}
			s := f2dot14(data[pos:])
			comp.a, comp.d = s, s
			pos += 2
		case flags&0x0040 != 0: // WE_HAVE_AN_X_AND_Y_SCALE
			if pos+4 > len(data) {
				return ErrNoGlyph
			}
			comp.a = f2dot14(data[pos:])
			comp.d = f2dot14(data[pos+2:])
			pos += 4
		case flags&0x0080 != 0: // WE_HAVE_A_TWO_BY_TWO
			if pos+8 > len(data) {
				return ErrNoGlyph
			}
			comp.a = f2dot14(data[pos:])
			comp.b = f2dot14(data[pos+2:])
			comp.c = f2dot14(data[pos+4:])
			comp.d = f2dot14(data[pos+6:])
			pos += 8
		}
		comp.e, comp.f = dx, dy

		childXform := xform.then(comp)
		if err := f.decodeGlyph(compGid, sink, childXform, depth+1); err != nil {
			return err
		}

		if flags&0x0020 == 0 { // MORE_COMPONENTS
			break
		}
	}
	return nil
}

func f2dot14(b []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(b))) / 16384
}
