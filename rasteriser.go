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
	"cmp"
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FillRule determines which points are inside a path.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// dir is +1 for edges pointing down the page and -1 for edges pointing up.
func (e *edge) dir() int {
	if e.y1 < e.y0 {
		return -1
	}
	return 1
}

// crossing is the intersection of an edge with a sampling scanline.
type crossing struct {
	x   float64
	dir int
}

// Rasteriser converts paths to pixel coverage in device space.
//
// With AntiAlias set, the coverage of a pixel is the exact fraction of its
// area inside the path. Otherwise a pixel is either fully covered or not
// at all, depending on whether its center lies inside the path.
//
// Internal buffers are reused between calls. A Rasteriser is not safe for
// concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	Clip image.Rectangle

	// Flatness is the maximal distance in device pixels between a curve
	// and its polygonal approximation. Must be positive.
	Flatness float64

	// AntiAlias selects area coverage instead of pixel-center sampling.
	AntiAlias bool

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	crossings []crossing

	haveBBox                   bool
	bxMin, bxMax, byMin, byMax float64
}

// NewRasteriser returns a Rasteriser with the identity transformation,
// the given clip rectangle and the default flatness.
func NewRasteriser(clip image.Rectangle) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Fill computes the coverage of p under the given fill rule. The emit
// callback is called once per scanline with a non-zero coverage run
// starting at xMin. The coverage slice is only valid during the call.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	b, ok := r.collectEdges(p)
	if !ok {
		return
	}

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	if r.AntiAlias {
		r.fillArea(b, rule, emit)
	} else {
		r.fillSampled(b, rule, emit)
	}
}

// collectEdges flattens p into device-space edges and returns their
// pixel bounding box, limited to the clip rectangle.
func (r *Rasteriser) collectEdges(p *path.Data) (image.Rectangle, bool) {
	r.edges = r.edges[:0]
	r.haveBBox = false

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			// Filling implicitly closes open subpaths.
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}

	if len(r.edges) == 0 {
		return image.Rectangle{}, false
	}

	b := image.Rect(
		int(math.Floor(r.bxMin)), int(math.Floor(r.byMin)),
		int(math.Floor(r.bxMax))+1, int(math.Floor(r.byMax))+1,
	).Intersect(r.Clip)
	return b, !b.Empty()
}

// addEdge appends the user-space segment from p0 to p1.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	d0 := apply(r.CTM, p0)
	d1 := apply(r.CTM, p1)

	dy := d1.Y - d0.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: d0.X, y0: d0.Y,
		x1: d1.X, y1: d1.Y,
		dxdy: (d1.X - d0.X) / dy,
	})

	if !r.haveBBox {
		r.bxMin, r.bxMax = d0.X, d0.X
		r.byMin, r.byMax = d0.Y, d0.Y
		r.haveBBox = true
	}
	r.bxMin = min(r.bxMin, d0.X, d1.X)
	r.bxMax = max(r.bxMax, d0.X, d1.X)
	r.byMin = min(r.byMin, d0.Y, d1.Y)
	r.byMax = max(r.byMax, d0.Y, d1.Y)
}

// linear applies the linear part of the CTM, for tolerance estimates.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// deviation of the curve from its chord is bounded by |p0 - 2p1 + p2|/4
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3))

	// Wang's formula
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(k))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// updateActive maintains the active edge list for the scanline [y, y+1).
// The edges must be sorted by their top coordinate; next is the index of
// the first edge not yet considered.
func (r *Rasteriser) updateActive(y int, next int) int {
	top, bottom := float64(y), float64(y+1)
	for next < len(r.edges) && r.edges[next].top() < bottom {
		r.active = append(r.active, next)
		next++
	}
	n := 0
	for _, i := range r.active {
		if r.edges[i].bottom() > top {
			r.active[n] = i
			n++
		}
	}
	r.active = r.active[:n]
	return next
}

// Area coverage model:
//
// For every pixel of a scanline two values are accumulated.  cover is the
// signed height of all edge pieces inside the pixel column, area is the
// same height weighted by the fraction of the pixel to the right of the
// edge.  Integrating from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i]
//
// gives the signed area of the path inside each pixel.  Edges left of the
// bounding box are folded into the first column.

// fillArea computes anti-aliased coverage for the rows of b.
func (r *Rasteriser) fillArea(b image.Rectangle, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	w := b.Dx()
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]
	r.active = r.active[:0]

	next := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		next = r.updateActive(y, next)
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, b.Min.X, b.Max.X)
		}

		integrate(r.cover, r.area, rule)
		if run, offs := trimZeros(r.cover); run != nil {
			emit(y, b.Min.X+offs, run)
		}
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// buffers, which are indexed by x - xMin.
func (r *Rasteriser) accumulate(e *edge, y int, xMin, xMax int) {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return
	}
	sign := float32(e.dir())

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	switch {
	case right < xMin:
		h := sign * float32(yBot-yTop)
		r.cover[0] += h
		r.area[0] += h
		return
	case left >= xMax:
		return
	case left == right:
		r.addPiece(e, yTop, yBot, sign, left, xMin, xMax)
		return
	}

	dydx := 1 / e.dxdy
	for px := left; px <= right; px++ {
		ya := e.y0 + dydx*(float64(px)-e.x0)
		yb := e.y0 + dydx*(float64(px+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		r.addPiece(e, lo, hi, sign, px, xMin, xMax)
	}
}

// addPiece records the piece of e between lo and hi, which lies inside
// pixel column px.
func (r *Rasteriser) addPiece(e *edge, lo, hi float64, sign float32, px, xMin, xMax int) {
	h := sign * float32(hi-lo)
	switch {
	case px < xMin:
		r.cover[0] += h
		r.area[0] += h
	case px < xMax:
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		frac := xMid - float64(px)
		i := px - xMin
		r.cover[i] += h
		r.area[i] += h * float32(1-frac)
	}
}

// integrate turns accumulated cover and area values into coverage,
// in place in cover.
func integrate(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == EvenOdd {
			raw -= 2 * float32(int(raw/2))
			if raw > 1 {
				raw = 2 - raw
			}
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

// fillSampled computes aliased coverage for the rows of b. A pixel is
// covered if its center is inside the path.
func (r *Rasteriser) fillSampled(b image.Rectangle, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	w := b.Dx()
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.active = r.active[:0]

	next := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		next = r.updateActive(y, next)
		if len(r.active) == 0 {
			continue
		}

		cy := float64(y) + 0.5
		r.crossings = r.crossings[:0]
		for _, i := range r.active {
			e := &r.edges[i]
			if cy < e.top() || cy >= e.bottom() {
				continue
			}
			r.crossings = append(r.crossings, crossing{
				x:   e.x0 + e.dxdy*(cy-e.y0),
				dir: e.dir(),
			})
		}
		if len(r.crossings) < 2 {
			continue
		}
		slices.SortFunc(r.crossings, func(a, b crossing) int {
			return cmp.Compare(a.x, b.x)
		})

		clear(r.cover)
		winding := 0
		for k := range len(r.crossings) - 1 {
			winding += r.crossings[k].dir
			inside := winding != 0
			if rule == EvenOdd {
				inside = winding%2 != 0
			}
			if !inside {
				continue
			}
			// pixels whose centers lie in [xa, xb)
			xa := max(int(math.Ceil(r.crossings[k].x-0.5)), b.Min.X)
			xb := min(int(math.Ceil(r.crossings[k+1].x-0.5)), b.Max.X)
			for x := xa; x < xb; x++ {
				r.cover[x-b.Min.X] = 1
			}
		}

		if run, offs := trimZeros(r.cover); run != nil {
			emit(y, b.Min.X+offs, run)
		}
	}
}

// trimZeros returns the non-zero part of coverage together with its
// offset, or nil if all values are zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// coverageByte converts a coverage value in [0, 1] to an 8-bit alpha.
func coverageByte(c float32) uint8 {
	return uint8(max(0, min(255, int(c*256))))
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent of an edge.
	// Flatter edges do not contribute to coverage.
	horizontalEdgeThreshold = 1e-10
)
