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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
)

// BenchmarkRasteriserOval measures filling an ellipse with our rasteriser.
func BenchmarkRasteriserOval(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		for _, aa := range []bool{false, true} {
			b.Run(fmt.Sprintf("%dx%d_aa%t", size, size, aa), func(b *testing.B) {
				clip := image.Rect(0, 0, size, size)
				r := NewRasteriser(clip)
				r.AntiAlias = aa

				dst := image.NewAlpha(clip)
				s := float64(size)
				oval := MakeOval(rect.Rect{LLx: 0.05 * s, LLy: 0.2 * s, URx: 0.95 * s, URy: 0.8 * s}).Path()

				b.ReportAllocs()
				for b.Loop() {
					r.Fill(oval, NonZero, func(y, xMin int, coverage []float32) {
						row := dst.Pix[y*dst.Stride+xMin:]
						for i, c := range coverage {
							row[i] = coverageByte(c)
						}
					})
				}
			})
		}
	}
}

// BenchmarkVectorOval measures the same ellipse with x/image/vector.
func BenchmarkVectorOval(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			s := float64(size)
			oval := MakeOval(rect.Rect{LLx: 0.05 * s, LLy: 0.2 * s, URx: 0.95 * s, URy: 0.8 * s}).Path()

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				addPathToVector(z, oval)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkClipIntersect measures intersecting a rectangular clip with an
// anti-aliased oval and filling through the result.
func BenchmarkClipIntersect(b *testing.B) {
	oval := MakeOval(rect.Rect{LLx: 100, LLy: 100, URx: 700, URy: 500})
	paint := Paint{Color: color.NRGBA{R: 0xFF, A: 0xFF}, AntiAlias: true}

	b.ReportAllocs()
	for b.Loop() {
		c := New(800, 600)
		c.ReplaceClip(image.Rect(50, 50, 600, 450))
		c.ClipRRect(oval, Intersect, true)
		c.DrawRect(rect.Rect{LLx: 0, LLy: 0, URx: 800, URy: 600}, paint)
	}
}
