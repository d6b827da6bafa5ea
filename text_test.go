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
	"encoding/binary"
	"math"
	"testing"
)

// The remainder of this file hand-assembles a minimal, parseable
// TrueType font so FillText/StrokeText/MeasureText can be exercised
// end to end without shipping a binary font file as test data. It
// mirrors internal/ttf's own test font builder at a much smaller
// scale: one table directory, one cmap format-0 subtable, one simple
// triangular glyph mapped to the letter 'A'.

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func beI16(v int16) []byte { return be16(uint16(v)) }

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// buildTestFont returns the bytes of a single-glyph TrueType font:
// glyph index 1 is a triangle mapped from rune 'A' with advance width
// advance (font units), unitsPerEm defines its design grid.
func buildTestFont(unitsPerEm int, advance uint16) []byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint16(head[18:20], uint16(unitsPerEm))
	binary.BigEndian.PutUint16(head[50:52], 1) // long loca

	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:36], 2) // numberOfHMetrics

	maxp := make([]byte, 6)
	binary.BigEndian.PutUint16(maxp[4:6], 2) // numGlyphs (.notdef + 'A')

	var hmtx []byte
	hmtx = append(hmtx, be16(advance)...) // gid 0 (.notdef)
	hmtx = append(hmtx, beI16(0)...)
	hmtx = append(hmtx, be16(advance)...) // gid 1 ('A')
	hmtx = append(hmtx, beI16(0)...)

	var ids [256]byte
	ids['A'] = 1
	var cmapSub []byte
	cmapSub = append(cmapSub, be16(0)...)
	cmapSub = append(cmapSub, be16(262)...)
	cmapSub = append(cmapSub, be16(0)...)
	cmapSub = append(cmapSub, ids[:]...)
	var cmap []byte
	cmap = append(cmap, be16(0)...)
	cmap = append(cmap, be16(1)...)
	cmap = append(cmap, be16(3)...)
	cmap = append(cmap, be16(1)...)
	cmap = append(cmap, be32(12)...)
	cmap = append(cmap, cmapSub...)

	// Simple single-contour triangle, all points on-curve, full-width
	// deltas (no instructions, no compaction).
	buildTriangle := func() []byte {
		var g []byte
		g = append(g, beI16(1)...) // numberOfContours
		g = append(g, beI16(0)...)
		g = append(g, beI16(0)...)
		g = append(g, beI16(0)...)
		g = append(g, beI16(0)...)
		g = append(g, be16(2)...) // endPtsOfContours[0]: 3 points
		g = append(g, be16(0)...) // instructionLength
		g = append(g, []byte{0x01, 0x01, 0x01}...)
		// x deltas: (0,0) -> (+500,0) -> (-250,+500)
		g = append(g, beI16(0)...)
		g = append(g, beI16(500)...)
		g = append(g, beI16(-250)...)
		// y deltas
		g = append(g, beI16(0)...)
		g = append(g, beI16(0)...)
		g = append(g, beI16(500)...)
		return g
	}
	empty := []byte{} // gid 0 (.notdef): zero contours, valid empty glyph
	tri := buildTriangle()

	var glyf []byte
	loca := make([]uint32, 3)
	loca[0] = 0
	glyf = append(glyf, empty...)
	loca[1] = uint32(len(glyf))
	glyf = append(glyf, tri...)
	loca[2] = uint32(len(glyf))

	var locaBytes []byte
	for _, off := range loca {
		locaBytes = append(locaBytes, be32(off)...)
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
	var body, dir []byte
	offset := headerLen
	for _, t := range tables {
		dir = append(dir, []byte(t.tag)...)
		dir = append(dir, be32(0)...)
		dir = append(dir, be32(uint32(offset))...)
		dir = append(dir, be32(uint32(len(t.data)))...)
		body = append(body, t.data...)
		offset += len(t.data)
	}

	var out []byte
	out = append(out, be32(0x00010000)...)
	out = append(out, be16(uint16(len(tables)))...)
	out = append(out, be16(0)...)
	out = append(out, be16(0)...)
	out = append(out, be16(0)...)
	out = append(out, dir...)
	out = append(out, body...)
	return out
}

func TestNewFontParsesWellFormedFont(t *testing.T) {
	data := buildTestFont(1000, 600)
	f, err := NewFont(data)
	if err != nil {
		t.Fatalf("NewFont failed: %v", err)
	}
	if f == nil {
		t.Fatal("NewFont returned a nil Font with no error")
	}
}

func TestNewFontRejectsTruncatedData(t *testing.T) {
	_, err := NewFont([]byte{0, 1, 2})
	if err == nil {
		t.Fatal("NewFont accepted 3 bytes of garbage, want an error")
	}
}

func TestMeasureTextScalesByFontSize(t *testing.T) {
	f, err := NewFont(buildTestFont(1000, 600))
	if err != nil {
		t.Fatalf("NewFont failed: %v", err)
	}
	c := NewCanvas(64, 64)
	c.SetFont(f)
	c.SetFontSize(10)

	got := c.MeasureText("A")
	want := 6.0 // 600/1000 * 10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MeasureText(\"A\") = %v, want %v", got, want)
	}

	c.SetFontSize(20)
	if got := c.MeasureText("AA"); math.Abs(got-24.0) > 1e-9 {
		t.Errorf("MeasureText(\"AA\") at size 20 = %v, want 24", got)
	}
}

func TestMeasureTextWithoutFontIsZero(t *testing.T) {
	c := NewCanvas(64, 64)
	if got := c.MeasureText("anything"); got != 0 {
		t.Errorf("MeasureText with no font set = %v, want 0", got)
	}
}

// TestFillTextPaintsGlyphCoverage checks that FillText actually
// rasterizes the glyph outline into the fill brush's color, not just
// advances the pen.
func TestFillTextPaintsGlyphCoverage(t *testing.T) {
	f, err := NewFont(buildTestFont(1000, 600))
	if err != nil {
		t.Fatalf("NewFont failed: %v", err)
	}
	c := NewCanvas(64, 64)
	c.SetFont(f)
	c.SetFontSize(32)
	c.SetTextBaseline(BaselineTop)
	c.SetFillStyle(NewSolidBrush(Color{R: 1, A: 1}))
	c.FillText("A", 4, 4, 0)

	found := false
	for y := 0; y < 64 && !found; y++ {
		for x := 0; x < 64; x++ {
			if r, _, _, a := pixelAt(c, x, y); a != 0 && r != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("FillText drew no glyph coverage at all")
	}
}

// TestFillTextWithoutFontDrawsNothing checks the "no font set" path
// FillText/StrokeText share with MeasureText.
func TestFillTextWithoutFontDrawsNothing(t *testing.T) {
	c := NewCanvas(16, 16)
	c.SetFillStyle(NewSolidBrush(Color{R: 1, A: 1}))
	c.FillText("A", 2, 2, 0)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if _, _, _, a := pixelAt(c, x, y); a != 0 {
				t.Fatalf("FillText with no font set painted pixel (%d,%d)", x, y)
			}
		}
	}
}

// TestStrokeTextPaintsOutline checks that StrokeText with the stroke
// style set paints some coverage in the stroke color for a glyph.
func TestStrokeTextPaintsOutline(t *testing.T) {
	f, err := NewFont(buildTestFont(1000, 600))
	if err != nil {
		t.Fatalf("NewFont failed: %v", err)
	}
	c := NewCanvas(64, 64)
	c.SetFont(f)
	c.SetFontSize(40)
	c.SetTextBaseline(BaselineTop)
	c.SetLineWidth(1)
	c.SetStrokeStyle(NewSolidBrush(Color{B: 1, A: 1}))
	c.StrokeText("A", 2, 2, 0)

	found := false
	for y := 0; y < 64 && !found; y++ {
		for x := 0; x < 64; x++ {
			if _, _, b, a := pixelAt(c, x, y); a != 0 && b != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("StrokeText drew no coverage at all")
	}
}
