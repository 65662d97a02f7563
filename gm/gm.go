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

// Package gm holds named test scenes ("GMs") for visual regression tests.
//
// Each GM draws a fixed scene through the [Canvas] interface.  The output
// is compared against a reference image by an external tool.  GMs are
// registered by name at init time; see [Register] and [Names].
package gm

import (
	"fmt"
	"image"
	"image/color"
	"maps"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/canvas"
)

// Canvas is the set of drawing operations available to a GM.
type Canvas interface {
	// Save and Restore push and pop the transformation and clip.
	Save()
	Restore()

	Rotate(degrees float64)
	Translate(dx, dy float64)

	// DrawColor fills the current clip with a solid color.
	DrawColor(c color.Color)
	DrawRect(r rect.Rect, paint canvas.Paint)

	ClipRect(r rect.Rect, op canvas.ClipOp, antiAlias bool)
	ClipPath(p *path.Data, op canvas.ClipOp, antiAlias bool)
	ClipRRect(rr canvas.RRect, op canvas.ClipOp, antiAlias bool)

	// ReplaceClip sets the clip to a device-space rectangle, ignoring
	// the current transformation and the previous clip.
	ReplaceClip(r image.Rectangle)
}

var _ Canvas = (*canvas.Canvas)(nil)

// GM is a named test scene.
type GM struct {
	Name       string      // lowercase a-z, 0-9 and _ only
	Width      int         // image width in device pixels
	Height     int         // image height in device pixels
	Background color.Color // painted before Draw is called, may be nil
	Draw       func(c Canvas)
}

// Factory creates a GM.
type Factory func() GM

var registry = map[string]Factory{}

// Register makes the GM created by f available under its name.
// Register panics if the name is not valid or already in use.
func Register(f Factory) {
	g := f()
	if !validName(g.Name) {
		panic(fmt.Sprintf("gm: invalid name %q", g.Name))
	}
	if _, dup := registry[g.Name]; dup {
		panic(fmt.Sprintf("gm: duplicate name %q", g.Name))
	}
	registry[g.Name] = f
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !('a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

// Names returns the names of all registered GMs in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns a new instance of the GM with the given name.
func Lookup(name string) (GM, bool) {
	f, ok := registry[name]
	if !ok {
		return GM{}, false
	}
	return f(), true
}

// All returns new instances of all registered GMs, sorted by name.
func All() []GM {
	names := Names()
	res := make([]GM, len(names))
	for i, name := range names {
		res[i] = registry[name]()
	}
	return res
}

// Render paints the background of g and then draws g onto c.
// The state of c is restored before Render returns.
func Render(g GM, c Canvas) {
	canvas.Logger().Debug("gm: render", "name", g.Name, "width", g.Width, "height", g.Height)

	if g.Background != nil {
		c.DrawColor(g.Background)
	}

	c.Save()
	defer c.Restore()
	g.Draw(c)
}
