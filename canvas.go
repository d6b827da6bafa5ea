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

// Package canvas implements a self-contained 2D vector-graphics
// rasterizer following the semantics of the W3C HTML5 2D canvas model:
// path construction and stroking, analytic-coverage polygon fill, a
// clip-mask stack, gamma-correct solid/gradient/pattern paint, drop
// shadows, Porter-Duff compositing with ordered-dither output, and a
// TrueType glyph extractor feeding text into the same pipeline.
//
// Every public operation runs to completion synchronously; a Canvas is
// not safe for concurrent use from multiple goroutines without external
// locking, matching the single-threaded embedding model this module
// targets.
package canvas

import (
	"seehuhn.de/go/canvas/internal/paintfx"
	"seehuhn.de/go/canvas/internal/raster"
	"seehuhn.de/go/canvas/internal/shadow"
	"seehuhn.de/go/geom/rect"
)

// Canvas is a W×H pixel buffer plus the drawing state (transform,
// brushes, clip, ...) and current path that every public method
// operates on.
type Canvas struct {
	w, h int
	buf  *paintfx.Buffer

	gs    graphicsState
	stack []graphicsState

	path Path
	rast *raster.Rasterizer
}

// NewCanvas allocates a w x h canvas, fully transparent, with the
// default graphics state (identity transform, opaque black fill and
// stroke, 1-unit butt-capped miter-joined stroke, full alpha,
// source-over compositing, no shadow, no clip).
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		w:    w,
		h:    h,
		buf:  paintfx.NewBuffer(w, h),
		gs:   defaultGraphicsState(),
		rast: raster.NewRasterizer(rect.Rect{LLx: 0, LLy: 0, URx: float64(w), URy: float64(h)}),
	}
}

// Width and Height report the canvas's fixed pixel dimensions.
func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// ---- Transform ----

func (c *Canvas) Scale(sx, sy float64)    { c.gs.transform = scaleBy(c.gs.transform, sx, sy) }
func (c *Canvas) Rotate(radians float64)  { c.gs.transform = rotateBy(c.gs.transform, radians) }
func (c *Canvas) Translate(dx, dy float64) {
	c.gs.transform = translateBy(c.gs.transform, dx, dy)
}
func (c *Canvas) TransformBy(a, b, d, e, f, g float64) {
	c.gs.transform = transformBy(c.gs.transform, a, b, d, e, f, g)
}
func (c *Canvas) SetTransform(a, b, d, e, f, g float64) {
	c.gs.transform = Transform{a, b, d, e, f, g}
}
func (c *Canvas) ResetTransform()             { c.gs.transform = Identity }
func (c *Canvas) CurrentTransform() Transform { return c.gs.transform }

// ---- Style setters ----

// SetFillStyle installs b as the fill brush. Per spec.md §4.5, a
// gradient or pattern brush samples in the user space that was in
// effect at the moment it was set, not whatever transform happens to be
// current when Fill eventually runs -- so the current transform is
// snapshotted here, alongside the brush, rather than read back out of
// c.gs.transform at draw time.
func (c *Canvas) SetFillStyle(b Brush) {
	c.gs.fill = b
	c.gs.fillTransform = c.gs.transform
}

// SetStrokeStyle is to the stroke brush as SetFillStyle is to the fill
// brush.
func (c *Canvas) SetStrokeStyle(b Brush) {
	c.gs.stroke = b
	c.gs.strokeTransform = c.gs.transform
}

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.gs.lineWidth = w
	}
}
func (c *Canvas) SetLineCap(cap raster.LineCap)    { c.gs.cap = cap }
func (c *Canvas) SetLineJoin(join raster.LineJoin) { c.gs.join = join }
func (c *Canvas) SetMiterLimit(limit float64) {
	if limit > 0 {
		c.gs.miterLimit = limit
	}
}
func (c *Canvas) SetLineDash(pattern []float64) {
	c.gs.dash = append([]float64(nil), pattern...)
}
func (c *Canvas) SetLineDashOffset(phase float64) { c.gs.dashPhase = phase }

func (c *Canvas) SetGlobalAlpha(a float64) {
	c.gs.globalAlpha = clamp01(a)
}
func (c *Canvas) SetGlobalCompositeOperation(op paintfx.Operator) { c.gs.compositeOp = op }

func (c *Canvas) SetShadowColor(col Color)        { c.gs.shadowColor = col }
func (c *Canvas) SetShadowOffsetX(x float64)      { c.gs.shadowOffsetX = x }
func (c *Canvas) SetShadowOffsetY(y float64)      { c.gs.shadowOffsetY = y }
func (c *Canvas) SetShadowBlur(sigma float64) {
	if sigma >= 0 {
		c.gs.shadowBlur = sigma
	}
}

func (c *Canvas) SetFont(f *Font)                { c.gs.font = f }
func (c *Canvas) SetFontSize(size float64)       { c.gs.fontSize = size }
func (c *Canvas) SetTextAlign(a TextAlign)       { c.gs.textAlign = a }
func (c *Canvas) SetTextBaseline(b TextBaseline) { c.gs.textBaseline = b }

// ---- Save/restore ----

// Save pushes a deep copy of the current graphics state. The current
// path is not affected.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.gs.clone())
}

// Restore pops the most recently saved graphics state. A no-op if the
// stack is empty. The current path is not affected.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.gs = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// ---- Path construction ----

func (c *Canvas) BeginPath() { c.path.BeginPath() }
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(c.gs.transform, x, y) }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(c.gs.transform, x, y) }
func (c *Canvas) ClosePath()          { c.path.ClosePath() }
func (c *Canvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.path.QuadraticCurveTo(c.gs.transform, cpx, cpy, x, y, 0)
}
func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.BezierCurveTo(c.gs.transform, cp1x, cp1y, cp2x, cp2y, x, y, 0)
}
func (c *Canvas) ArcTo(x1, y1, x2, y2, radius float64) {
	c.path.ArcTo(c.gs.transform, x1, y1, x2, y2, radius, 0)
}
func (c *Canvas) Arc(x, y, radius, a0, a1 float64, ccw bool) {
	c.path.Arc(c.gs.transform, x, y, radius, a0, a1, ccw, 0)
}
func (c *Canvas) Rect(x, y, w, h float64) { c.path.Rect(c.gs.transform, x, y, w, h) }

// IsPointInPath reports whether (x, y), in user space, lies within the
// current path under the even-odd rule, ignoring the clip region.
func (c *Canvas) IsPointInPath(x, y float64) bool {
	return c.path.IsPointInPath(c.gs.transform, x, y)
}

// ---- Fill / stroke / clip ----

// Fill paints the current path's interior under rule with the current
// fill brush, honoring the clip mask, global alpha, composite
// operator, and (if active) shadow.
func (c *Canvas) Fill(rule raster.FillRule) {
	c.drawPath(rule, &c.gs.fill, c.gs.fillTransform, func(emit func(y, xMin int, coverage []float32)) {
		c.rast.Fill(&c.path.dev, rule, emit)
	})
}

// Stroke paints the current path's outline, built from the current
// line width/cap/join/miter-limit/dash settings, with the current
// stroke brush.
func (c *Canvas) Stroke() {
	style := raster.Style{
		Width:      c.gs.lineWidth,
		MiterLimit: c.gs.miterLimit,
		Cap:        c.gs.cap,
		Join:       c.gs.join,
		Dash:       c.gs.dash,
		DashPhase:  c.gs.dashPhase,
	}
	c.drawPath(raster.FillNonZero, &c.gs.stroke, c.gs.strokeTransform, func(emit func(y, xMin int, coverage []float32)) {
		c.rast.Stroke(&c.path.dev, style, emit)
	})
}

// Clip intersects the clip mask with the coverage of the current path
// under rule. Clips accumulate and are never loosened except by
// Restore.
func (c *Canvas) Clip(rule raster.FillRule) {
	next := newClipMask(c.w, c.h, 0)
	c.rast.Fill(&c.path.dev, rule, func(y, xMin int, coverage []float32) {
		row := make([]uint8, len(coverage))
		for i, v := range coverage {
			row[i] = uint8(clamp01(float64(v)) * 255)
		}
		next.intersectRow(y, xMin, row, c.gs.clip)
	})
	c.gs.clip = next
}

// drawPath runs the shadow pass (if the shadow color has nonzero alpha)
// then the normal paint pass for a path-filling operation, sharing the
// same rasterize callback so stroke and fill reuse this one pipeline.
// brushTransform is the transform that was current when brush was
// installed via SetFillStyle/SetStrokeStyle -- gradient/pattern sampling
// inverts that snapshot, not whatever transform is live now, per
// spec.md §4.5.
func (c *Canvas) drawPath(rule raster.FillRule, brush *Brush, brushTransform Transform, rasterize func(emit func(y, xMin int, coverage []float32))) {
	if c.gs.shadowColor.A > 0 {
		c.paintShadow(rasterize)
	}

	inv, ok := invert(brushTransform)
	sample := makeSampler(brush, inv, ok)
	alpha := c.gs.globalAlpha
	op := c.gs.compositeOp
	clip := c.gs.clip

	rasterize(func(y, xMin int, coverage []float32) {
		if y < 0 || y >= c.h {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < 0 || x >= c.w {
				continue
			}
			a := float64(cov) * alpha * (float64(clip.at(x, y)) / 255)
			if a <= 0 {
				continue
			}
			src := sample(float64(x)+0.5, float64(y)+0.5)
			src.R *= a
			src.G *= a
			src.B *= a
			src.A *= a
			idx := y*c.w + x
			c.buf.Pix[idx] = paintfx.Composite(op, src, c.buf.Pix[idx])
		}
	})
}

// paintShadow rasterizes the same path a second time into a standalone
// alpha buffer, blurs it with the three-pass box-blur approximation of
// a Gaussian, then composites shadowColor * blurredAlpha under the
// current composite operator and clip, offset by (shadowOffsetX,
// shadowOffsetY), before the normal paint pass runs. Per spec.md §4.7
// step 4, the normal pass always follows the shadow pass.
func (c *Canvas) paintShadow(rasterize func(emit func(y, xMin int, coverage []float32))) {
	alphaBuf := make([]float64, c.w*c.h)
	rasterize(func(y, xMin int, coverage []float32) {
		dy := y + int(c.gs.shadowOffsetY)
		if dy < 0 || dy >= c.h {
			return
		}
		for i, cov := range coverage {
			dx := xMin + i + int(c.gs.shadowOffsetX)
			if dx < 0 || dx >= c.w {
				continue
			}
			v := float64(cov)
			if v > alphaBuf[dy*c.w+dx] {
				alphaBuf[dy*c.w+dx] = v
			}
		}
	})

	if c.gs.shadowBlur > 0 {
		blurred := make([]float64, c.w*c.h)
		shadow.Blur(alphaBuf, blurred, c.w, c.h, c.gs.shadowBlur)
		alphaBuf = blurred
	}

	lin := c.gs.shadowColor.toLinearPremul()
	base := paintfx.Color{R: lin.R, G: lin.G, B: lin.B, A: lin.A}
	op := c.gs.compositeOp
	globalAlpha := c.gs.globalAlpha
	clip := c.gs.clip
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			a := alphaBuf[y*c.w+x] * globalAlpha * (float64(clip.at(x, y)) / 255)
			if a <= 0 {
				continue
			}
			src := paintfx.Color{R: base.R * a, G: base.G * a, B: base.B * a, A: base.A * a}
			idx := y*c.w + x
			c.buf.Pix[idx] = paintfx.Composite(op, src, c.buf.Pix[idx])
		}
	}
}

// FillRect fills the axis-aligned rectangle (x, y, w, h), under the
// current transform, brush, clip, alpha, and composite settings,
// without disturbing the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	var tmp Path
	tmp.Rect(c.gs.transform, x, y, w, h)
	c.drawPath(raster.FillNonZero, &c.gs.fill, c.gs.fillTransform, func(emit func(y, xMin int, coverage []float32)) {
		c.rast.Fill(&tmp.dev, raster.FillNonZero, emit)
	})
}

// StrokeRect strokes the axis-aligned rectangle (x, y, w, h) with the
// current stroke settings, without disturbing the current path.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	var tmp Path
	tmp.Rect(c.gs.transform, x, y, w, h)
	style := raster.Style{
		Width: c.gs.lineWidth, MiterLimit: c.gs.miterLimit,
		Cap: c.gs.cap, Join: c.gs.join, Dash: c.gs.dash, DashPhase: c.gs.dashPhase,
	}
	c.drawPath(raster.FillNonZero, &c.gs.stroke, c.gs.strokeTransform, func(emit func(y, xMin int, coverage []float32)) {
		c.rast.Stroke(&tmp.dev, style, emit)
	})
}

// ClearRect resets the axis-aligned rectangle (x, y, w, h), under the
// current transform, to fully transparent, bypassing brush, alpha,
// shadow, and compositing but still honoring the clip mask.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	var tmp Path
	tmp.Rect(c.gs.transform, x, y, w, h)
	clip := c.gs.clip
	c.rast.Fill(&tmp.dev, raster.FillNonZero, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= c.h {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < 0 || x >= c.w {
				continue
			}
			a := float64(cov) * (float64(clip.at(x, y)) / 255)
			if a <= 0 {
				continue
			}
			idx := y*c.w + x
			c.buf.Pix[idx] = c.buf.Pix[idx].Lerp(paintfx.Color{}, a)
		}
	})
}

// ---- Image data ----

// GetImageData copies the w x h region starting at (x, y), in device
// pixels, into dst as straight (non-premultiplied) sRGB8 RGBA quads
// with the given stride (in bytes; may exceed w*4). Pixels outside the
// canvas bounds are written as fully transparent. Ordered dithering is
// applied per spec.md §6 so that smooth linear gradients don't band
// when quantized to 8 bits.
func (c *Canvas) GetImageData(dst []byte, w, h, stride, x, y int) {
	for row := 0; row < h; row++ {
		py := y + row
		out := dst[row*stride:]
		for col := 0; col < w; col++ {
			px := x + col
			i := col * 4
			if i+3 >= len(out) {
				break
			}
			if px < 0 || px >= c.w || py < 0 || py >= c.h {
				out[i], out[i+1], out[i+2], out[i+3] = 0, 0, 0, 0
				continue
			}
			lin := c.buf.Pix[py*c.w+px]
			straight := linearRGBA{R: lin.R, G: lin.G, B: lin.B, A: lin.A}.toColor()
			out[i+0] = ditheredByte(straight.R, px, py)
			out[i+1] = ditheredByte(straight.G, px, py)
			out[i+2] = ditheredByte(straight.B, px, py)
			out[i+3] = byte(clamp01(straight.A)*255 + 0.5)
		}
	}
}

// PutImageData writes straight sRGB8 RGBA quads from src (w x h, with
// the given byte stride) directly into the w x h region starting at
// (x, y), in device pixels, bypassing the transform, clip, global
// alpha, shadow, and compositing -- an unconditional overwrite, per
// spec.md §4.12.
func (c *Canvas) PutImageData(src []byte, w, h, stride, x, y int) {
	for row := 0; row < h; row++ {
		py := y + row
		if py < 0 || py >= c.h {
			continue
		}
		in := src[row*stride:]
		for col := 0; col < w; col++ {
			px := x + col
			if px < 0 || px >= c.w {
				continue
			}
			i := col * 4
			if i+3 >= len(in) {
				break
			}
			col8 := Color{
				R: float64(in[i+0]) / 255,
				G: float64(in[i+1]) / 255,
				B: float64(in[i+2]) / 255,
				A: float64(in[i+3]) / 255,
			}
			lin := col8.toLinearPremul()
			c.buf.Pix[py*c.w+px] = paintfx.Color{R: lin.R, G: lin.G, B: lin.B, A: lin.A}
		}
	}
}

// DrawImage paints img into the device-space rectangle that (dx, dy,
// dw, dh), in user space, maps to under the current transform, using
// bicubic resampling. A negative dw or dh flips the image along that
// axis. The draw honors clip, global alpha, and the current composite
// operator but not the active fill/stroke brush or shadow.
func (c *Canvas) DrawImage(img *Image, dx, dy, dw, dh float64) {
	if img == nil || img.buf == nil || img.W == 0 || img.H == 0 {
		return
	}
	var tmp Path
	tmp.Rect(c.gs.transform, dx, dy, dw, dh)

	inv, ok := invert(c.gs.transform)
	if !ok {
		return
	}
	alpha := c.gs.globalAlpha
	op := c.gs.compositeOp
	clip := c.gs.clip

	c.rast.Fill(&tmp.dev, raster.FillNonZero, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= c.h {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < 0 || x >= c.w {
				continue
			}
			a := float64(cov) * alpha * (float64(clip.at(x, y)) / 255)
			if a <= 0 {
				continue
			}
			ux, uy := applyXY(inv, float64(x)+0.5, float64(y)+0.5)
			// Map user-space (dx..dx+dw, dy..dy+dh) to image pixel space,
			// accounting for a possible negative dw/dh flip.
			sx := (ux - dx) / dw * float64(img.W)
			sy := (uy - dy) / dh * float64(img.H)
			if sx < 0 || sx > float64(img.W) || sy < 0 || sy > float64(img.H) {
				continue
			}
			src := paintfx.Sample(img.buf, sx, sy, paintfx.WrapNone)
			src.R *= a
			src.G *= a
			src.B *= a
			src.A *= a
			idx := y*c.w + x
			c.buf.Pix[idx] = paintfx.Composite(op, src, c.buf.Pix[idx])
		}
	})
}

// ---- Text ----

// FillText paints text's glyph outlines, using the current font, font
// size, text alignment and baseline, with the current fill brush, with
// its anchor point at (x, y) in user space. If maxWidth is positive and
// the text's natural advance exceeds it, the glyphs are additionally
// scaled down horizontally to fit.
func (c *Canvas) FillText(text string, x, y float64, maxWidth float64) {
	path, ok := c.layoutText(text, x, y, maxWidth)
	if !ok {
		return
	}
	saved := c.path
	c.path = path
	c.Fill(raster.FillNonZero)
	c.path = saved
}

// StrokeText is to FillText as Stroke is to Fill.
func (c *Canvas) StrokeText(text string, x, y float64, maxWidth float64) {
	path, ok := c.layoutText(text, x, y, maxWidth)
	if !ok {
		return
	}
	saved := c.path
	c.path = path
	c.Stroke()
	c.path = saved
}

// MeasureText returns the total advance width, in user-space units, of
// text laid out with the current font and font size, ignoring
// maxWidth/alignment -- the same quantity FillText/StrokeText would
// scale down to fit maxWidth, before that scaling is applied.
func (c *Canvas) MeasureText(text string) float64 {
	if c.gs.font == nil {
		return 0
	}
	return layoutGlyphs(c.gs.font, text, Identity, 0, 0, c.gs.fontSize, nil)
}

// layoutText builds the device-space glyph-outline path for text
// anchored at (x, y) per the current font/size/align/baseline, applying
// the maxWidth horizontal squeeze if needed. ok is false (nothing to
// draw) when no font is set.
func (c *Canvas) layoutText(text string, x, y, maxWidth float64) (Path, bool) {
	font := c.gs.font
	if font == nil {
		return Path{}, false
	}

	total := layoutGlyphs(font, text, Identity, 0, 0, c.gs.fontSize, nil)
	hScale := 1.0
	if maxWidth > 0 && total > maxWidth {
		hScale = maxWidth / total
	}

	originX := -alignOffset(c.gs.textAlign) * total * hScale
	originY := font.baselineOffset(c.gs.textBaseline) * c.gs.fontSize

	// Glyph outlines are authored with y increasing upward; flip to this
	// module's y-down device space, then squeeze horizontally to honor
	// maxWidth, then move to (x, y).
	m := translateBy(c.gs.transform, x, y)
	m = scaleBy(m, hScale, -1)

	var path Path
	layoutGlyphs(font, text, m, originX/hScale, -originY, c.gs.fontSize, &path)
	return path, true
}
