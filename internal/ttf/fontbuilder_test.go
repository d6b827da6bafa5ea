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

// This file builds minimal, hand-assembled sfnt byte streams so the
// rest of the package's tests can exercise cmap/glyf/loca/hmtx parsing
// against the specific scenarios documented in
// _examples/original_source/test/test.cpp's test font (cmap formats
// 0/4/12, hmtx shorter than glyph count, composite glyphs with 2x2
// transforms, and skippable glyph hinting bytecode) without shipping a
// binary font file as test data.

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func beI16(v int16) []byte {
	return be16(uint16(v))
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// simpleGlyphPoint is one on-curve point of a hand-built simple glyph,
// given as an absolute (x, y) coordinate; buildSimpleGlyph converts it
// to the delta encoding glyf actually stores.
type simpleGlyphPoint struct{ x, y int16 }

// buildSimpleGlyph assembles one single-contour, all-on-curve simple
// glyph (glyf's numberOfContours >= 0 branch). instructions is embedded
// and its length recorded, to exercise the "hinting bytecode must be
// skipped over, not interpreted" requirement.
func buildSimpleGlyph(points []simpleGlyphPoint, instructions []byte) []byte {
	var data []byte
	data = append(data, beI16(1)...)         // numberOfContours
	data = append(data, beI16(0)...)         // xMin
	data = append(data, beI16(0)...)         // yMin
	data = append(data, beI16(0)...)         // xMax
	data = append(data, beI16(0)...)         // yMax
	data = append(data, be16(uint16(len(points)-1))...) // endPtsOfContours[0]
	data = append(data, be16(uint16(len(instructions)))...)
	data = append(data, instructions...)

	flags := make([]byte, len(points))
	for i := range flags {
		flags[i] = 0x01 // ON_CURVE_POINT, full-width deltas follow
	}
	data = append(data, flags...)

	var prevX, prevY int16
	for _, p := range points {
		data = append(data, beI16(p.x-prevX)...)
		prevX = p.x
	}
	for _, p := range points {
		data = append(data, beI16(p.y-prevY)...)
		prevY = p.y
	}
	return data
}

// compositeComponent is one entry of a hand-built composite glyph.
type compositeComponent struct {
	gid        uint16
	dx, dy     int16
	a, b, c, d float64 // F2Dot14 2x2 transform; identity if all zero
	twoByTwo   bool
}

// buildCompositeGlyph assembles a composite glyph (glyf's
// numberOfContours < 0 branch) referencing each component in order,
// exercising a mix of identity and explicit 2x2-transform components.
func buildCompositeGlyph(components []compositeComponent) []byte {
	var data []byte
	data = append(data, beI16(-1)...) // numberOfContours: composite
	data = append(data, beI16(0)...)  // xMin
	data = append(data, beI16(0)...)  // yMin
	data = append(data, beI16(0)...)  // xMax
	data = append(data, beI16(0)...)  // yMax

	for i, c := range components {
		flags := uint16(0x0001) // ARG_1_AND_2_ARE_WORDS
		if c.twoByTwo {
			flags |= 0x0080 // WE_HAVE_A_TWO_BY_TWO
		}
		if i < len(components)-1 {
			flags |= 0x0020 // MORE_COMPONENTS
		}
		data = append(data, be16(flags)...)
		data = append(data, be16(c.gid)...)
		data = append(data, beI16(c.dx)...)
		data = append(data, beI16(c.dy)...)
		if c.twoByTwo {
			data = append(data, beI16(f2dot14Encode(c.a))...)
			data = append(data, beI16(f2dot14Encode(c.b))...)
			data = append(data, beI16(f2dot14Encode(c.c))...)
			data = append(data, beI16(f2dot14Encode(c.d))...)
		}
	}
	return data
}

func f2dot14Encode(v float64) int16 {
	return int16(v * 16384)
}

// fontSpec is the minimal set of knobs this package's tests need to
// build a complete, parseable sfnt byte stream.
type fontSpec struct {
	unitsPerEm int
	numGlyphs  int
	hMetrics   []uint16 // advance widths; may be shorter than numGlyphs
	cmapSub    []byte   // one already-encoded cmap subtable
	longLoca   bool
	glyphs     [][]byte // raw glyf data per glyph index, in order
}

func buildFont(spec fontSpec) []byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint16(head[18:20], uint16(spec.unitsPerEm))
	if spec.longLoca {
		binary.BigEndian.PutUint16(head[50:52], 1)
	}

	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:36], uint16(len(spec.hMetrics)))

	maxp := make([]byte, 6)
	binary.BigEndian.PutUint16(maxp[4:6], uint16(spec.numGlyphs))

	var hmtx []byte
	for _, w := range spec.hMetrics {
		hmtx = append(hmtx, be16(w)...)
		hmtx = append(hmtx, beI16(0)...) // lsb, unused by this package
	}

	cmap := buildCmapTable(spec.cmapSub)

	var glyf []byte
	loca := make([]uint32, spec.numGlyphs+1)
	for i := 0; i < spec.numGlyphs; i++ {
		loca[i] = uint32(len(glyf))
		if i < len(spec.glyphs) {
			glyf = append(glyf, spec.glyphs[i]...)
		}
	}
	loca[spec.numGlyphs] = uint32(len(glyf))

	var locaBytes []byte
	if spec.longLoca {
		for _, off := range loca {
			locaBytes = append(locaBytes, be32(off)...)
		}
	} else {
		for _, off := range loca {
			locaBytes = append(locaBytes, be16(uint16(off/2))...)
		}
	}

	tables := []struct {
		tag  string
		data []byte
	}{
		{"head", head},
		{"hhea", hhea},
		{"maxp", maxp},
		{"hmtx", hmtx},
		{"cmap", cmap},
		{"glyf", glyf},
		{"loca", locaBytes},
	}

	const dirEntry = 16
	headerLen := 12 + len(tables)*dirEntry
	var body []byte
	dir := make([]byte, 0, len(tables)*dirEntry)
	offset := headerLen
	for _, t := range tables {
		var rec []byte
		rec = append(rec, t.tag...)
		rec = append(rec, be32(0)...) // checksum, unchecked by Parse
		rec = append(rec, be32(uint32(offset))...)
		rec = append(rec, be32(uint32(len(t.data)))...)
		dir = append(dir, rec...)
		body = append(body, t.data...)
		offset += len(t.data)
	}

	out := make([]byte, 0, headerLen+len(body))
	out = append(out, be32(0x00010000)...)
	out = append(out, be16(uint16(len(tables)))...)
	out = append(out, be16(0)...) // searchRange, unused
	out = append(out, be16(0)...) // entrySelector, unused
	out = append(out, be16(0)...) // rangeShift, unused
	out = append(out, dir...)
	out = append(out, body...)
	return out
}

func buildCmapTable(sub []byte) []byte {
	var out []byte
	out = append(out, be16(0)...) // version
	out = append(out, be16(1)...) // numTables
	out = append(out, be16(3)...) // platformID (Windows)
	out = append(out, be16(1)...) // encodingID (Unicode BMP)
	out = append(out, be32(12)...)
	out = append(out, sub...)
	return out
}

func buildCmapFormat0(glyphIDArray [256]byte) []byte {
	var out []byte
	out = append(out, be16(0)...) // format
	out = append(out, be16(262)...)
	out = append(out, be16(0)...) // language
	out = append(out, glyphIDArray[:]...)
	return out
}

type cmapFormat4Segment struct {
	start, end uint16
	delta      int16
}

func buildCmapFormat4(segs []cmapFormat4Segment) []byte {
	segCount := len(segs)
	var header []byte
	header = append(header, be16(4)...) // format
	header = append(header, be16(0)...) // length placeholder, unused by parser
	header = append(header, be16(0)...) // language
	header = append(header, be16(uint16(segCount*2))...)
	header = append(header, be16(0)...) // searchRange
	header = append(header, be16(0)...) // entrySelector
	header = append(header, be16(0)...) // rangeShift

	var endCode, reservedPad, startCode, idDelta, idRangeOffset []byte
	for _, s := range segs {
		endCode = append(endCode, be16(s.end)...)
		startCode = append(startCode, be16(s.start)...)
		idDelta = append(idDelta, beI16(s.delta)...)
		idRangeOffset = append(idRangeOffset, be16(0)...)
	}
	reservedPad = be16(0)

	var out []byte
	out = append(out, header...)
	out = append(out, endCode...)
	out = append(out, reservedPad...)
	out = append(out, startCode...)
	out = append(out, idDelta...)
	out = append(out, idRangeOffset...)
	return out
}

type cmapFormat12Group struct {
	startChar, endChar, startGlyph uint32
}

func buildCmapFormat12(groups []cmapFormat12Group) []byte {
	var out []byte
	out = append(out, be16(12)...) // format
	out = append(out, be16(0)...)  // reserved
	out = append(out, be32(0)...)  // length placeholder, unused by parser
	out = append(out, be32(0)...)  // language
	out = append(out, be32(uint32(len(groups)))...)
	for _, g := range groups {
		out = append(out, be32(g.startChar)...)
		out = append(out, be32(g.endChar)...)
		out = append(out, be32(g.startGlyph)...)
	}
	return out
}
