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

package gm

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/canvas"
)

// recorder is a Canvas which logs all calls.
type recorder struct {
	calls    []string
	depth    int
	maxDepth int
	underrun bool
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Save() {
	r.depth++
	r.maxDepth = max(r.maxDepth, r.depth)
	r.log("save")
}

func (r *recorder) Restore() {
	r.depth--
	if r.depth < 0 {
		r.underrun = true
	}
	r.log("restore")
}

func (r *recorder) Rotate(degrees float64)   { r.log("rotate %g", degrees) }
func (r *recorder) Translate(dx, dy float64) { r.log("translate %g %g", dx, dy) }

func (r *recorder) DrawColor(c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	r.log("color %02x%02x%02x%02x", ca>>8, cr>>8, cg>>8, cb>>8)
}

func (r *recorder) DrawRect(x rect.Rect, paint canvas.Paint) {
	r.log("rect %g %g %g %g aa=%t", x.LLx, x.LLy, x.URx, x.URy, paint.AntiAlias)
}

func (r *recorder) ClipRect(x rect.Rect, op canvas.ClipOp, antiAlias bool) {
	r.log("cliprect %g %g %g %g %s aa=%t", x.LLx, x.LLy, x.URx, x.URy, op, antiAlias)
}

func (r *recorder) ClipPath(p *path.Data, op canvas.ClipOp, antiAlias bool) {
	r.log("clippath %d %s aa=%t", len(p.Cmds), op, antiAlias)
}

func (r *recorder) ClipRRect(rr canvas.RRect, op canvas.ClipOp, antiAlias bool) {
	x := rr.Rect
	r.log("cliprrect %g %g %g %g %g %g %s aa=%t", x.LLx, x.LLy, x.URx, x.URy, rr.RX, rr.RY, op, antiAlias)
}

func (r *recorder) ReplaceClip(x image.Rectangle) {
	r.log("replace %d %d %d %d", x.Min.X, x.Min.Y, x.Max.X, x.Max.Y)
}
