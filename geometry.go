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

package canvas

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ClipOp determines how a new clip shape is combined with the current clip.
type ClipOp int

const (
	// Intersect restricts the clip to the part inside the new shape.
	Intersect ClipOp = iota

	// Replace discards the current clip and uses the new shape instead.
	// This is a legacy operation; see [Canvas.ReplaceClip] for the
	// device-space alternative.
	Replace
)

func (op ClipOp) String() string {
	switch op {
	case Intersect:
		return "intersect"
	case Replace:
		return "replace"
	default:
		return "ClipOp(?)"
	}
}

// Paint describes how a shape is filled.
type Paint struct {
	Color     color.Color
	AntiAlias bool
}

// kappa is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936

// RRect is a rectangle with elliptical corners of radii RX and RY.
type RRect struct {
	Rect   rect.Rect
	RX, RY float64
}

// MakeOval returns the round rectangle describing the ellipse inscribed
// in r.
func MakeOval(r rect.Rect) RRect {
	r = normalize(r)
	return RRect{
		Rect: r,
		RX:   (r.URx - r.LLx) / 2,
		RY:   (r.URy - r.LLy) / 2,
	}
}

// MakeRectXY returns a round rectangle with the given corner radii.
// The radii are limited to half the width and height of r.
func MakeRectXY(r rect.Rect, rx, ry float64) RRect {
	r = normalize(r)
	return RRect{
		Rect: r,
		RX:   min(max(rx, 0), (r.URx-r.LLx)/2),
		RY:   min(max(ry, 0), (r.URy-r.LLy)/2),
	}
}

// Path returns the outline of rr, running clockwise on screen.
func (rr RRect) Path() *path.Data {
	r := normalize(rr.Rect)
	rx, ry := rr.RX, rr.RY
	if rx <= 0 || ry <= 0 {
		return RectPath(r)
	}
	kx, ky := rx*kappa, ry*kappa

	return (&path.Data{}).
		MoveTo(pt(r.LLx+rx, r.LLy)).
		LineTo(pt(r.URx-rx, r.LLy)).
		CubeTo(pt(r.URx-rx+kx, r.LLy), pt(r.URx, r.LLy+ry-ky), pt(r.URx, r.LLy+ry)).
		LineTo(pt(r.URx, r.URy-ry)).
		CubeTo(pt(r.URx, r.URy-ry+ky), pt(r.URx-rx+kx, r.URy), pt(r.URx-rx, r.URy)).
		LineTo(pt(r.LLx+rx, r.URy)).
		CubeTo(pt(r.LLx+rx-kx, r.URy), pt(r.LLx, r.URy-ry+ky), pt(r.LLx, r.URy-ry)).
		LineTo(pt(r.LLx, r.LLy+ry)).
		CubeTo(pt(r.LLx, r.LLy+ry-ky), pt(r.LLx+rx-kx, r.LLy), pt(r.LLx+rx, r.LLy)).
		Close()
}

// RectPath returns the outline of r.
func RectPath(r rect.Rect) *path.Data {
	r = normalize(r)
	return (&path.Data{}).
		MoveTo(pt(r.LLx, r.LLy)).
		LineTo(pt(r.URx, r.LLy)).
		LineTo(pt(r.URx, r.URy)).
		LineTo(pt(r.LLx, r.URy)).
		Close()
}

// normalize orders the corners of r.
func normalize(r rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(r.LLx, r.URx),
		LLy: min(r.LLy, r.URy),
		URx: max(r.LLx, r.URx),
		URy: max(r.LLy, r.URy),
	}
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
