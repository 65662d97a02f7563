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

// Package canvas implements a software canvas for immediate-mode 2D
// drawing.
//
// A [Canvas] keeps a current transformation matrix and a clip region,
// both of which can be saved and restored in stack order.  Shapes are
// rasterised with or without anti-aliasing and composited src-over into an
// RGBA image.  Besides the usual intersecting clip operations, the canvas
// supports [Canvas.ReplaceClip], which resets the clip to a rectangle given
// in device space.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// state is the part of the canvas which is covered by Save and Restore.
type state struct {
	ctm  matrix.Matrix
	clip clipRegion
}

// Canvas draws into an RGBA image.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img    *image.RGBA
	device image.Rectangle
	cur    state
	saved  []state
	raster *Rasteriser
}

// New returns a transparent canvas of the given size in device pixels,
// with the identity transformation and no clipping.
func New(width, height int) *Canvas {
	device := image.Rect(0, 0, width, height)
	return &Canvas{
		img:    image.NewRGBA(device),
		device: device,
		cur: state{
			ctm:  matrix.Identity,
			clip: rectRegion(device),
		},
		raster: NewRasteriser(device),
	}
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the device rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.device
}

// Save pushes the current transformation and clip onto the state stack.
func (c *Canvas) Save() {
	c.saved = append(c.saved, c.cur)
}

// Restore pops the state stack. Calls without a matching Save are ignored.
func (c *Canvas) Restore() {
	n := len(c.saved)
	if n == 0 {
		Logger().Warn("canvas: Restore without matching Save")
		return
	}
	c.cur = c.saved[n-1]
	c.saved = c.saved[:n-1]
}

// SaveCount returns the number of saved states.
func (c *Canvas) SaveCount() int {
	return len(c.saved)
}

// CTM returns the current transformation from user space to device space.
func (c *Canvas) CTM() matrix.Matrix {
	return c.cur.ctm
}

// Concat modifies the transformation so that m is applied to user space
// coordinates before the current transformation.
func (c *Canvas) Concat(m matrix.Matrix) {
	c.cur.ctm = m.Mul(c.cur.ctm)
}

// Translate moves the user space origin by (dx, dy).
func (c *Canvas) Translate(dx, dy float64) {
	c.Concat(matrix.Matrix{1, 0, 0, 1, dx, dy})
}

// Rotate rotates user space by the given angle in degrees.
func (c *Canvas) Rotate(degrees float64) {
	c.Concat(matrix.RotateDeg(degrees))
}

// Scale scales user space.
func (c *Canvas) Scale(sx, sy float64) {
	c.Concat(matrix.Scale(sx, sy))
}

// ClipBounds returns the device-space bounding box of the clip region.
// The result is empty if everything is clipped away.
func (c *Canvas) ClipBounds() image.Rectangle {
	return c.cur.clip.bounds
}

// ClipRect combines the clip with the rectangle r, given in user space.
func (c *Canvas) ClipRect(r rect.Rect, op ClipOp, antiAlias bool) {
	c.clip(RectPath(r), NonZero, op, antiAlias)
}

// ClipPath combines the clip with the interior of p under the nonzero
// winding rule.
func (c *Canvas) ClipPath(p *path.Data, op ClipOp, antiAlias bool) {
	c.clip(p, NonZero, op, antiAlias)
}

// ClipRRect combines the clip with the round rectangle rr.
func (c *Canvas) ClipRRect(rr RRect, op ClipOp, antiAlias bool) {
	c.clip(rr.Path(), NonZero, op, antiAlias)
}

func (c *Canvas) clip(p *path.Data, rule FillRule, op ClipOp, antiAlias bool) {
	switch op {
	case Replace:
		c.cur.clip = regionFromCoverage(c.rasterise(p, rule, antiAlias, c.device))
	default:
		if c.cur.clip.isEmpty() {
			return
		}
		cov := c.rasterise(p, rule, antiAlias, c.cur.clip.bounds)
		c.cur.clip = c.cur.clip.intersect(cov)
	}
}

// ReplaceClip discards the current clip and sets it to the device-space
// rectangle r, limited to the canvas bounds. The current transformation
// is not applied to r.
func (c *Canvas) ReplaceClip(r image.Rectangle) {
	c.cur.clip = rectRegion(r.Intersect(c.device))
	Logger().Debug("canvas: replace clip",
		"rect", r,
		"clip", c.cur.clip.bounds,
		"depth", len(c.saved))
}

// DrawColor fills the clip region with col.
func (c *Canvas) DrawColor(col color.Color) {
	c.composite(c.cur.clip, col)
}

// DrawRect fills the rectangle r, given in user space.
func (c *Canvas) DrawRect(r rect.Rect, paint Paint) {
	c.fill(RectPath(r), NonZero, paint)
}

// DrawRRect fills the round rectangle rr.
func (c *Canvas) DrawRRect(rr RRect, paint Paint) {
	c.fill(rr.Path(), NonZero, paint)
}

// DrawPath fills p using the given fill rule.
func (c *Canvas) DrawPath(p *path.Data, rule FillRule, paint Paint) {
	c.fill(p, rule, paint)
}

func (c *Canvas) fill(p *path.Data, rule FillRule, paint Paint) {
	clip := c.cur.clip
	if clip.isEmpty() || paint.Color == nil {
		return
	}
	cov := c.rasterise(p, rule, paint.AntiAlias, clip.bounds)
	c.composite(clip.intersect(cov), paint.Color)
}

// rasterise returns the coverage of p inside the device rectangle within,
// or nil if p covers no pixels there.
func (c *Canvas) rasterise(p *path.Data, rule FillRule, antiAlias bool, within image.Rectangle) *image.Alpha {
	r := c.raster
	r.CTM = c.cur.ctm
	r.Clip = within
	r.AntiAlias = antiAlias

	var cov *image.Alpha
	var used image.Rectangle
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		if cov == nil {
			cov = image.NewAlpha(within)
		}
		row := cov.Pix[cov.PixOffset(xMin, y):]
		for i, v := range coverage {
			row[i] = coverageByte(v)
		}
		used = used.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
	})
	if cov == nil {
		return nil
	}
	return cov.SubImage(used).(*image.Alpha)
}

// composite blends col into the image, weighted by the region.
func (c *Canvas) composite(region clipRegion, col color.Color) {
	if region.isEmpty() || col == nil {
		return
	}
	src := image.NewUniform(col)
	if region.isRect() {
		draw.Draw(c.img, region.bounds, src, image.Point{}, draw.Over)
		return
	}
	draw.DrawMask(c.img, region.bounds, src, image.Point{}, region.alpha, region.bounds.Min, draw.Over)
}
