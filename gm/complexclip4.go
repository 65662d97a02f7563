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
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas"
)

var (
	yellow = color.NRGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	green  = color.NRGBA{G: 0xFF, A: 0xFF}
)

func init() {
	Register(func() GM { return complexClip4(false) })
	Register(func() GM { return complexClip4(true) })
}

// complexClip4 exercises Canvas.ReplaceClip.  Older clients still rely on
// the legacy replace clip op; the scene shows how to emulate it while
// keeping a device restriction in place.
func complexClip4(antiAlias bool) GM {
	name := "complexclip4_bw"
	if antiAlias {
		name = "complexclip4_aa"
	}
	return GM{
		Name:       name,
		Width:      970,
		Height:     780,
		Background: color.NRGBA{R: 0xDE, G: 0xDF, B: 0xDE, A: 0xFF},
		Draw: func(c Canvas) {
			c.Save()
			defer c.Restore()

			rectPanel(c, antiAlias)
			pathPanel(c, antiAlias)
			rrectPanel(c, antiAlias)
			devicePanel(c, antiAlias)
		},
	}
}

// rectPanel draws a yellow rectangle through a rectangular clip.
func rectPanel(c Canvas, antiAlias bool) {
	c.Save()
	defer c.Restore()

	restriction := restrictDevice(c, image.Rect(100, 100, 300, 300))
	c.DrawColor(green)

	r := ltrb(100, 200, 400, 500)
	replaceClipRect(c, restriction, r, antiAlias)
	c.DrawRect(r, canvas.Paint{Color: yellow, AntiAlias: antiAlias})
}

// pathPanel draws a yellow rectangle through a diamond shaped clip.
func pathPanel(c Canvas, antiAlias bool) {
	c.Save()
	defer c.Restore()

	restriction := restrictDevice(c, image.Rect(500, 100, 800, 300))
	c.DrawColor(green)

	diamond := (&path.Data{}).
		MoveTo(pt(650, 200)).
		LineTo(pt(900, 300)).
		LineTo(pt(650, 400)).
		LineTo(pt(650, 300)).
		Close()
	replaceClipPath(c, restriction, diamond, antiAlias)
	c.DrawRect(ltrb(500, 200, 900, 500), canvas.Paint{Color: yellow, AntiAlias: antiAlias})
}

// rrectPanel draws a yellow rectangle through an oval clip.
func rrectPanel(c Canvas, antiAlias bool) {
	c.Save()
	defer c.Restore()

	restriction := restrictDevice(c, image.Rect(500, 500, 800, 700))
	c.DrawColor(green)

	r := ltrb(500, 600, 900, 750)
	replaceClipRRect(c, restriction, canvas.MakeOval(r), antiAlias)
	c.DrawRect(r, canvas.Paint{Color: yellow, AntiAlias: antiAlias})
}

// devicePanel shows that the device restriction is given in device
// space: the yellow area must be an upright rectangle.
func devicePanel(c Canvas, antiAlias bool) {
	c.Save()
	defer c.Restore()

	c.ClipRect(ltrb(100, 400, 300, 750), canvas.Intersect, antiAlias)
	c.DrawColor(green)

	// must not affect the device-space clip
	c.Rotate(20)
	c.Translate(50, 50)
	restrictDevice(c, image.Rect(150, 450, 250, 700))
	c.DrawColor(yellow)
}

// restrictDevice limits drawing to the device rectangle r. The caller
// passes the returned restriction to the replaceClip* functions.
func restrictDevice(c Canvas, r image.Rectangle) image.Rectangle {
	c.ReplaceClip(r)
	return r
}

// replaceClipRect emulates the legacy replace op for rectangles, without
// escaping the device restriction.
func replaceClipRect(c Canvas, restriction image.Rectangle, r rect.Rect, antiAlias bool) {
	c.ReplaceClip(restriction)
	c.ClipRect(r, canvas.Intersect, antiAlias)
}

// replaceClipPath is like replaceClipRect for paths.
func replaceClipPath(c Canvas, restriction image.Rectangle, p *path.Data, antiAlias bool) {
	c.ReplaceClip(restriction)
	c.ClipPath(p, canvas.Intersect, antiAlias)
}

// replaceClipRRect is like replaceClipRect for round rectangles.
func replaceClipRRect(c Canvas, restriction image.Rectangle, rr canvas.RRect, antiAlias bool) {
	c.ReplaceClip(restriction)
	c.ClipRRect(rr, canvas.Intersect, antiAlias)
}

// ltrb returns the rectangle with the given left, top, right and bottom
// coordinates.
func ltrb(l, t, r, b float64) rect.Rect {
	return rect.Rect{LLx: l, LLy: t, URx: r, URy: b}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
