// seehuhn.de/go/canvas - a 2D rendering library
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

package main

import (
	"image"
	imgcolor "image/color"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/canvas"
	"seehuhn.de/go/canvas/gm"
)

// pdfState is the part of pdfCanvas covered by Save and Restore.
type pdfState struct {
	ctm matrix.Matrix

	// clip holds device-space paths whose interiors are intersected.
	// A nil slice means the whole page.
	clip []path.Path
}

// pdfCanvas draws a GM onto a PDF page.
//
// PDF clip paths can only be intersected, never replaced.  To support
// ReplaceClip, the clip is kept here and every fill is written as a
// self-contained group which sets up its own clip.  All geometry is
// transformed to device space before it is written.
type pdfCanvas struct {
	page   *document.Page
	device image.Rectangle
	cur    pdfState
	saved  []pdfState
}

var _ gm.Canvas = (*pdfCanvas)(nil)

func newPDFCanvas(page *document.Page, width, height int) *pdfCanvas {
	// PDF has the origin at the bottom left, device space at the top left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})

	return &pdfCanvas{
		page:   page,
		device: image.Rect(0, 0, width, height),
		cur:    pdfState{ctm: matrix.Identity},
	}
}

func (c *pdfCanvas) Save() {
	c.saved = append(c.saved, c.cur)
}

func (c *pdfCanvas) Restore() {
	n := len(c.saved)
	if n == 0 {
		canvas.Logger().Warn("genref: Restore without matching Save")
		return
	}
	c.cur = c.saved[n-1]
	c.saved = c.saved[:n-1]
}

func (c *pdfCanvas) Rotate(degrees float64) {
	c.cur.ctm = matrix.RotateDeg(degrees).Mul(c.cur.ctm)
}

func (c *pdfCanvas) Translate(dx, dy float64) {
	c.cur.ctm = matrix.Matrix{1, 0, 0, 1, dx, dy}.Mul(c.cur.ctm)
}

func (c *pdfCanvas) ClipRect(r rect.Rect, op canvas.ClipOp, antiAlias bool) {
	c.clip(canvas.RectPath(r), op)
}

func (c *pdfCanvas) ClipPath(p *path.Data, op canvas.ClipOp, antiAlias bool) {
	c.clip(p, op)
}

func (c *pdfCanvas) ClipRRect(rr canvas.RRect, op canvas.ClipOp, antiAlias bool) {
	c.clip(rr.Path(), op)
}

func (c *pdfCanvas) clip(p *path.Data, op canvas.ClipOp) {
	dev := p.Iter().Transform(c.cur.ctm)
	if op == canvas.Replace {
		c.cur.clip = []path.Path{dev}
		return
	}
	// the slice may be shared with saved states
	c.cur.clip = append(slices.Clip(c.cur.clip), dev)
}

func (c *pdfCanvas) ReplaceClip(r image.Rectangle) {
	r = r.Intersect(c.device)
	c.cur.clip = []path.Path{canvas.RectPath(rect.Rect{
		LLx: float64(r.Min.X),
		LLy: float64(r.Min.Y),
		URx: float64(r.Max.X),
		URy: float64(r.Max.Y),
	}).Iter()}
}

func (c *pdfCanvas) DrawColor(col imgcolor.Color) {
	page := canvas.RectPath(rect.Rect{
		URx: float64(c.device.Dx()),
		URy: float64(c.device.Dy()),
	})
	c.fill(page.Iter(), col)
}

func (c *pdfCanvas) DrawRect(r rect.Rect, paint canvas.Paint) {
	c.fill(canvas.RectPath(r).Iter().Transform(c.cur.ctm), paint.Color)
}

// fill paints the device-space path p, clipped to the current clip.
func (c *pdfCanvas) fill(p path.Path, col imgcolor.Color) {
	if col == nil {
		return
	}
	page := c.page

	page.PushGraphicsState()
	for _, clip := range c.cur.clip {
		c.writePath(clip)
		page.ClipNonZero()
		page.EndPath()
	}
	page.SetFillColor(color.DeviceGray(luminance(col)))
	c.writePath(p)
	page.Fill()
	page.PopGraphicsState()
}

// writePath appends p to the current PDF path.
func (c *pdfCanvas) writePath(p path.Path) {
	page := c.page

	// PDF has no quadratic curves
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// luminance converts col to a gray level in [0, 1], using the Rec. 709
// weights.  Reference images are grayscale.
func luminance(col imgcolor.Color) float64 {
	r, g, b, _ := col.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xFFFF
}
