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

import "testing"

func TestParseRejectsTruncatedHeader(t *testing.T) {
	_, err := Parse([]byte{0, 1, 0, 0})
	if err == nil {
		t.Fatal("Parse accepted a 4-byte file, want an error")
	}
}

func TestParseValidFont(t *testing.T) {
	glyph := buildSimpleGlyph([]simpleGlyphPoint{{0, 0}, {500, 0}, {250, 500}}, nil)
	data := buildFont(fontSpec{
		unitsPerEm: 1000,
		numGlyphs:  1,
		hMetrics:   []uint16{600},
		cmapSub:    buildCmapFormat0([256]byte{}),
		longLoca:   true,
		glyphs:     [][]byte{glyph},
	})

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed on well-formed font: %v", err)
	}
	if f.UnitsPerEm() != 1000 {
		t.Errorf("UnitsPerEm() = %d, want 1000", f.UnitsPerEm())
	}
}

// TestAdvanceWidthReplicatesLastHmtxEntry exercises the
// "hmtx tables shorter than glyph count" scenario: hhea's
// numberOfHMetrics can be less than maxp's numGlyphs, in which case
// every glyph index at or beyond numberOfHMetrics reuses the last
// metric's advance width instead of reading out of bounds.
func TestAdvanceWidthReplicatesLastHmtxEntry(t *testing.T) {
	tri := buildSimpleGlyph([]simpleGlyphPoint{{0, 0}, {400, 0}, {200, 400}}, nil)
	data := buildFont(fontSpec{
		unitsPerEm: 1000,
		numGlyphs:  4,
		hMetrics:   []uint16{500, 700}, // shorter than numGlyphs
		cmapSub:    buildCmapFormat0([256]byte{}),
		longLoca:   true,
		glyphs:     [][]byte{tri, tri, tri, tri},
	})

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.AdvanceWidth(0); got != 500 {
		t.Errorf("AdvanceWidth(0) = %d, want 500", got)
	}
	if got := f.AdvanceWidth(1); got != 700 {
		t.Errorf("AdvanceWidth(1) = %d, want 700", got)
	}
	for _, gid := range []uint16{2, 3} {
		if got := f.AdvanceWidth(gid); got != 700 {
			t.Errorf("AdvanceWidth(%d) = %d, want last hmtx entry (700) replicated", gid, got)
		}
	}
}
