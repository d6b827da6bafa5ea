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
	"unicode/utf8"

	"seehuhn.de/go/canvas/internal/ttf"
)

// Font wraps a parsed TrueType font file. Glyph outlines are decoded
// on demand from the stored font bytes on every FillText/StrokeText
// call; there is no cross-call glyph cache, matching how little state
// a "parse once, look up per draw" embedding needs to keep around.
type Font struct {
	face *ttf.Face

	ascender, descender, xHeight int
}

// NewFont parses data as a TrueType font. It returns ttf.Parse's error
// for any file Parse rejects: a bad sfnt header, or a missing or
// truncated required table. A canvas with no font set measures text as
// 0 and draws nothing.
func NewFont(data []byte) (*Font, error) {
	face, err := ttf.Parse(data)
	if err != nil {
		return nil, err
	}
	upm := face.UnitsPerEm()
	return &Font{
		face:       face,
		ascender:   upm * 4 / 5,
		descender:  -upm / 5,
		xHeight:    upm / 2,
	}, nil
}

// pathSinkAdapter adapts a device-space Path plus a glyph-to-device
// transform into the ttf.PathSink interface GlyphOutline draws into.
type pathSinkAdapter struct {
	path      *Path
	transform Transform
	started   bool
}

func (s *pathSinkAdapter) MoveTo(x, y float64) {
	s.path.MoveTo(s.transform, x, y)
	s.started = true
}

func (s *pathSinkAdapter) LineTo(x, y float64) {
	s.path.LineTo(s.transform, x, y)
}

func (s *pathSinkAdapter) QuadTo(cx, cy, x, y float64) {
	s.path.QuadraticCurveTo(s.transform, cx, cy, x, y, 0)
}

func (s *pathSinkAdapter) ClosePath() {
	s.path.ClosePath()
}

// glyphContourBuffer records a ttf.PathSink call stream without touching
// the real device path. GlyphOutline can sink part of a contour before
// discovering, later, that the glyph is malformed (a bad composite
// component, a truncated contour) -- per spec.md §7/§9 a glyph that
// fails to decode must draw nothing, so the calls are only replayed
// into the real sink once GlyphOutline has returned a nil error.
type glyphContourBuffer struct {
	ops []func(ttf.PathSink)
}

func (b *glyphContourBuffer) MoveTo(x, y float64) {
	b.ops = append(b.ops, func(s ttf.PathSink) { s.MoveTo(x, y) })
}

func (b *glyphContourBuffer) LineTo(x, y float64) {
	b.ops = append(b.ops, func(s ttf.PathSink) { s.LineTo(x, y) })
}

func (b *glyphContourBuffer) QuadTo(cx, cy, x, y float64) {
	b.ops = append(b.ops, func(s ttf.PathSink) { s.QuadTo(cx, cy, x, y) })
}

func (b *glyphContourBuffer) ClosePath() {
	b.ops = append(b.ops, func(s ttf.PathSink) { s.ClosePath() })
}

func (b *glyphContourBuffer) flush(s ttf.PathSink) {
	for _, op := range b.ops {
		op(s)
	}
}

// layoutGlyphs decodes text's glyph outlines into path, one glyph at a
// time left to right starting at the origin, scaled from font units by
// scale/UnitsPerEm and offset by (originX, originY) in user space,
// further mapped by m into device space. It returns the total advance
// in user-space units (before any max_width rescaling), matching
// measure_text's contract.
//
// Invalid UTF-8 byte sequences decode as U+FFFD, per spec.md's text
// decoding rule. A code point the cmap does not map resolves to glyph
// 0: it advances by glyph 0's width and draws nothing. A glyph whose
// outline fails to decode also advances by its width and draws nothing.
func layoutGlyphs(f *Font, text string, m Transform, originX, originY, scale float64, path *Path) float64 {
	if f == nil {
		return 0
	}
	upm := float64(f.face.UnitsPerEm())
	pen := 0.0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			r = utf8.RuneError
			size = 1
		}
		i += size

		gid := f.face.GlyphIndex(r)
		adv := float64(f.face.AdvanceWidth(gid)) / upm * scale

		if path != nil && gid != 0 {
			glyphOrigin := translateBy(m, originX+pen, originY)
			glyphOrigin = scaleBy(glyphOrigin, scale/upm, scale/upm)
			var buf glyphContourBuffer
			if err := f.face.GlyphOutline(gid, &buf); err == nil {
				sink := &pathSinkAdapter{path: path, transform: glyphOrigin}
				buf.flush(sink)
			}
		}
		pen += adv
	}
	return pen
}

// baselineOffset returns the vertical offset, in font units scaled to
// user-space, to add to the y coordinate passed to FillText/StrokeText
// so that the glyphs are positioned relative to baseline rather than
// the coordinate the caller specified.
//
// Font glyph outlines are authored with y increasing upward and the
// alphabetic baseline at y=0; this module's device space has y
// increasing downward, so the returned offset is already negated to
// land correctly once combined with a glyph-space-to-device flip that
// FillText/StrokeText apply via scale(1,-1).
func (f *Font) baselineOffset(baseline TextBaseline) float64 {
	upm := float64(f.face.UnitsPerEm())
	switch baseline {
	case BaselineTop:
		return float64(f.ascender) / upm
	case BaselineHanging:
		return float64(f.ascender) * 0.8 / upm
	case BaselineMiddle:
		return float64(f.ascender+f.descender) / 2 / upm
	case BaselineIdeographic:
		return float64(f.descender) / upm
	case BaselineBottom:
		return float64(f.descender) / upm
	default: // BaselineAlphabetic
		return 0
	}
}

// alignOffset returns the fraction of the text's total advance to
// subtract from the origin x coordinate for the given alignment; 0 for
// left-anchored text, 1 for right-anchored, 0.5 for centered.
func alignOffset(align TextAlign) float64 {
	switch align {
	case AlignEnd, AlignRight:
		return 1
	case AlignCenter:
		return 0.5
	default: // AlignStart, AlignLeft
		return 0
	}
}
