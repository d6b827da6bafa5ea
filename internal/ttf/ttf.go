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

// Package ttf extracts glyph outlines from a TrueType font file: table
// directory, cmap code-point lookup, and glyf/loca outline decoding.
// There is no caching between lookups -- every GlyphOutline call
// re-walks loca/glyf from the stored font bytes -- matching a
// "feed glyphs into the same path accumulator on demand" embedding
// model rather than a long-lived font-rendering cache.
//
// Deliberately not built on a third-party sfnt library: extracting raw
// glyph outlines from a handful of required tables is squarely within
// what this module's other hand-rolled parsers (path flattening, trapezoid
// coverage) already do from first principles, and pulling in a general
// OpenType shaping engine for this alone would dwarf the rest of the
// font-handling surface this module actually needs.
package ttf

import (
	"encoding/binary"
	"errors"
)

// ErrNoGlyph is returned (as the error component of a (outline, err)
// pair, never panicked) whenever the font file is malformed or the
// requested table/code point cannot be resolved. Callers are expected
// to skip the glyph rather than abort text layout.
var ErrNoGlyph = errors.New("ttf: no glyph")

// Face is a parsed (but not yet glyph-decoded) TrueType font: the table
// directory plus the small fixed tables (head, hhea, maxp, hmtx) that
// every glyph lookup needs.
type Face struct {
	data []byte
	tabs map[string]tableRecord

	unitsPerEm  int
	numGlyphs   int
	longLoca    bool
	numHMetrics int

	cmap cmapLookup
}

type tableRecord struct {
	offset, length uint32
}

// Parse validates the sfnt header and loads the fixed-size tables this
// package needs. It never returns a Face that GlyphOutline/AdvanceWidth
// could panic on: any missing or truncated required table produces an
// error here so that every code point subsequently resolves to
// ErrNoGlyph instead of re-deriving the failure per call.
func Parse(data []byte) (*Face, error) {
	if len(data) < 12 {
		return nil, ErrNoGlyph
	}
	version := binary.BigEndian.Uint32(data[0:4])
	if version != 0x00010000 && version != 0x4F54544F && string(data[0:4]) != "true" {
		return nil, ErrNoGlyph
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	tabs := make(map[string]tableRecord, numTables)
	const dirEntry = 16
	if len(data) < 12+numTables*dirEntry {
		return nil, ErrNoGlyph
	}
	for i := 0; i < numTables; i++ {
		rec := data[12+i*dirEntry : 12+(i+1)*dirEntry]
		tag := string(rec[0:4])
		off := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		tabs[tag] = tableRecord{offset: off, length: length}
	}

	f := &Face{data: data, tabs: tabs}
	for _, req := range []string{"head", "hhea", "hmtx", "maxp", "cmap", "glyf", "loca"} {
		if _, ok := tabs[req]; !ok {
			return nil, ErrNoGlyph
		}
	}

	head, err := f.table("head")
	if err != nil || len(head) < 54 {
		return nil, ErrNoGlyph
	}
	f.unitsPerEm = int(binary.BigEndian.Uint16(head[18:20]))
	if f.unitsPerEm == 0 {
		return nil, ErrNoGlyph
	}
	f.longLoca = int16(binary.BigEndian.Uint16(head[50:52])) != 0

	maxp, err := f.table("maxp")
	if err != nil || len(maxp) < 6 {
		return nil, ErrNoGlyph
	}
	f.numGlyphs = int(binary.BigEndian.Uint16(maxp[4:6]))

	hhea, err := f.table("hhea")
	if err != nil || len(hhea) < 36 {
		return nil, ErrNoGlyph
	}
	f.numHMetrics = int(binary.BigEndian.Uint16(hhea[34:36]))

	cm, err := f.table("cmap")
	if err != nil {
		return nil, ErrNoGlyph
	}
	lookup, err := parseCmap(cm)
	if err != nil {
		return nil, ErrNoGlyph
	}
	f.cmap = lookup

	return f, nil
}

func (f *Face) table(tag string) ([]byte, error) {
	rec, ok := f.tabs[tag]
	if !ok {
		return nil, ErrNoGlyph
	}
	end := uint64(rec.offset) + uint64(rec.length)
	if end > uint64(len(f.data)) {
		return nil, ErrNoGlyph
	}
	return f.data[rec.offset:end], nil
}

// UnitsPerEm is the font's design grid resolution (commonly 1000 or
// 2048); glyph coordinates and advance widths are in these units.
func (f *Face) UnitsPerEm() int { return f.unitsPerEm }

// GlyphIndex maps a Unicode code point to a glyph index using the
// selected cmap subtable, or 0 (the standard ".notdef placeholder is
// absent" sentinel) if the font has no mapping for it.
func (f *Face) GlyphIndex(r rune) uint16 {
	return f.cmap.lookup(r)
}

// AdvanceWidth returns the glyph's horizontal advance in font units. If
// the glyph index is beyond hmtx's metric count, the last metric entry
// is replicated, per the "glyph count may exceed metric count" rule.
func (f *Face) AdvanceWidth(gid uint16) int {
	hmtx, err := f.table("hmtx")
	if err != nil || f.numHMetrics == 0 {
		return 0
	}
	idx := int(gid)
	if idx >= f.numHMetrics {
		idx = f.numHMetrics - 1
	}
	off := idx * 4
	if off+2 > len(hmtx) {
		return 0
	}
	return int(binary.BigEndian.Uint16(hmtx[off : off+2]))
}
