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

import "image"

// clipRegion is a device-space clip. Pixels outside bounds are clipped
// away, pixels inside are weighted by alpha. A nil alpha means that the
// whole of bounds is fully visible.
//
// The alpha image is never modified after construction, so regions can be
// shared between saved states.
type clipRegion struct {
	bounds image.Rectangle
	alpha  *image.Alpha
}

func rectRegion(r image.Rectangle) clipRegion {
	if r.Empty() {
		return clipRegion{}
	}
	return clipRegion{bounds: r}
}

func (c clipRegion) isEmpty() bool {
	return c.bounds.Empty()
}

// isRect reports whether every pixel inside the bounds is fully visible.
func (c clipRegion) isRect() bool {
	return c.alpha == nil
}

func (c clipRegion) at(x, y int) uint8 {
	if !image.Pt(x, y).In(c.bounds) {
		return 0
	}
	if c.alpha == nil {
		return 0xFF
	}
	return c.alpha.Pix[c.alpha.PixOffset(x, y)]
}

// intersect returns the part of c covered by cov.
func (c clipRegion) intersect(cov *image.Alpha) clipRegion {
	if cov == nil {
		return clipRegion{}
	}
	b := c.bounds.Intersect(cov.Rect)
	if b.Empty() {
		return clipRegion{}
	}

	out := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := out.Pix[out.PixOffset(b.Min.X, y):]
		src := cov.Pix[cov.PixOffset(b.Min.X, y):]
		for i := range b.Dx() {
			row[i] = mulAlpha(c.at(b.Min.X+i, y), src[i])
		}
	}
	return shrink(out)
}

// regionFromCoverage returns the clip described by cov alone.
func regionFromCoverage(cov *image.Alpha) clipRegion {
	if cov == nil {
		return clipRegion{}
	}
	return shrink(cov)
}

// shrink returns the region for the given alpha values, dropping fully
// transparent borders. If all remaining pixels are opaque, the region is
// a plain rectangle.
func shrink(a *image.Alpha) clipRegion {
	b := a.Rect
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	opaque := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := a.Pix[a.PixOffset(b.Min.X, y):]
		for i := range b.Dx() {
			v := row[i]
			if v == 0 {
				continue
			}
			x := b.Min.X + i
			minX, maxX = min(minX, x), max(maxX, x+1)
			minY, maxY = min(minY, y), max(maxY, y+1)
			if v != 0xFF {
				opaque = false
			}
		}
	}
	if maxX <= minX {
		return clipRegion{}
	}
	tight := image.Rectangle{Min: image.Pt(minX, minY), Max: image.Pt(maxX, maxY)}

	// The remaining region may still contain transparent holes.
	if opaque {
		for y := tight.Min.Y; y < tight.Max.Y && opaque; y++ {
			row := a.Pix[a.PixOffset(tight.Min.X, y):]
			for i := range tight.Dx() {
				if row[i] != 0xFF {
					opaque = false
					break
				}
			}
		}
	}
	if opaque {
		return clipRegion{bounds: tight}
	}
	return clipRegion{bounds: tight, alpha: a.SubImage(tight).(*image.Alpha)}
}

// mulAlpha multiplies two 8-bit alpha values, rounding to nearest.
func mulAlpha(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 0x80
	return uint8((t + t>>8) >> 8)
}
