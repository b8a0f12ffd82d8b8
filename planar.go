/*
Copyright © 2024 the geowave authors.
This file is part of geowave.

geowave is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geowave is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geowave.  If not, see <http://www.gnu.org/licenses/>.
*/

package geowave

import (
	"fmt"
	"math"
	"sort"

	cgeom "github.com/ctessum/geom"
	"github.com/twpayne/go-geom"
)

// PlanarBufferer expands a geometry by radius in its own coordinate units,
// treating the coordinate space as a flat plane.
type PlanarBufferer interface {
	PlanarBuffer(g geom.T, radius float64) (geom.T, error)
}

// DefaultQuadrantSegments is the number of segments used to approximate a
// quarter circle when UnionKernel.QuadrantSegments is not set.
const DefaultQuadrantSegments = 8

// UnionKernel is a PlanarBufferer that builds the buffer as the union of
// the input's polygonal area, a circle around every vertex and a rectangle
// along every segment.
type UnionKernel struct {
	// QuadrantSegments is the number of segments per quarter circle.
	QuadrantSegments int
}

// PlanarBuffer returns the area within radius of g as a *geom.Polygon or,
// when the buffered parts are disjoint, a *geom.MultiPolygon. The result
// has layout XY.
func (k UnionKernel) PlanarBuffer(g geom.T, radius float64) (geom.T, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("geowave: buffer radius %g is not finite", radius)
	}
	if radius < 0 {
		return nil, fmt.Errorf("geowave: negative buffer radius %g", radius)
	}
	chains, areas, err := planarParts(g)
	if err != nil {
		return nil, err
	}
	pieces := make([]cgeom.Polygon, 0, len(areas)+len(chains))
	pieces = append(pieces, areas...)
	if radius > 0 {
		n := k.QuadrantSegments
		if n <= 0 {
			n = DefaultQuadrantSegments
		}
		// Identical pieces cancel each other out in the union, so each
		// vertex and each segment contributes at most once.
		seenVertex := make(map[cgeom.Point]bool)
		seenSegment := make(map[[2]cgeom.Point]bool)
		addSegment := func(a, b cgeom.Point) {
			key := segmentKey(a, b)
			if seenSegment[key] {
				return
			}
			seenSegment[key] = true
			if r, ok := rectangle(a, b, radius); ok {
				pieces = append(pieces, r)
			}
		}
		for _, c := range chains {
			c = dedupe(c)
			closed := len(c) > 2 && c[0].Equals(c[len(c)-1])
			if closed {
				c = c[:len(c)-1]
			}
			for i, p := range c {
				if !seenVertex[p] {
					seenVertex[p] = true
					pieces = append(pieces, vertexCircle(p, radius, 4*n))
				}
				if i > 0 {
					addSegment(c[i-1], p)
				}
			}
			if closed && len(c) > 2 {
				addSegment(c[len(c)-1], c[0])
			}
		}
	}
	return contoursToGeom(unionAll(pieces)), nil
}

// dedupe drops consecutive repeated points from c.
func dedupe(c []cgeom.Point) []cgeom.Point {
	if len(c) < 2 {
		return c
	}
	o := make([]cgeom.Point, 1, len(c))
	o[0] = c[0]
	for _, p := range c[1:] {
		if !p.Equals(o[len(o)-1]) {
			o = append(o, p)
		}
	}
	return o
}

func segmentKey(a, b cgeom.Point) [2]cgeom.Point {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return [2]cgeom.Point{a, b}
}

// planarParts splits g into vertex chains and polygonal areas.
func planarParts(g geom.T) (chains [][]cgeom.Point, areas []cgeom.Polygon, err error) {
	if g == nil {
		return nil, nil, fmt.Errorf("geowave: nil geometry")
	}
	if c, ok := g.(*geom.GeometryCollection); ok {
		for _, gg := range c.Geoms() {
			ch, a, err := planarParts(gg)
			if err != nil {
				return nil, nil, err
			}
			chains = append(chains, ch...)
			areas = append(areas, a...)
		}
		return chains, areas, nil
	}
	flat, stride := g.FlatCoords(), g.Stride()
	chain := func(start, end int) []cgeom.Point {
		c := make([]cgeom.Point, 0, (end-start)/stride)
		for i := start; i < end; i += stride {
			c = append(c, cgeom.Point{X: flat[i], Y: flat[i+1]})
		}
		return c
	}
	switch t := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		for i := 0; i < len(flat); i += stride {
			chains = append(chains, chain(i, i+stride))
		}
	case *geom.LineString, *geom.LinearRing:
		chains = append(chains, chain(0, len(flat)))
	case *geom.MultiLineString:
		start := 0
		for _, end := range t.Ends() {
			chains = append(chains, chain(start, end))
			start = end
		}
	case *geom.Polygon:
		var poly cgeom.Polygon
		start := 0
		for _, end := range t.Ends() {
			c := chain(start, end)
			chains = append(chains, c)
			poly = append(poly, c)
			start = end
		}
		if len(poly) > 0 {
			areas = append(areas, poly)
		}
	case *geom.MultiPolygon:
		start := 0
		for _, ends := range t.Endss() {
			var poly cgeom.Polygon
			for _, end := range ends {
				c := chain(start, end)
				chains = append(chains, c)
				poly = append(poly, c)
				start = end
			}
			if len(poly) > 0 {
				areas = append(areas, poly)
			}
		}
	default:
		return nil, nil, fmt.Errorf("geowave: unsupported geometry type %T", g)
	}
	return chains, areas, nil
}

// vertexCircle returns an open ring of n vertices at distance r from c.
// The vertices sit half a step off the axes, so that they do not fall on
// axis-aligned or diagonal edges through c.
func vertexCircle(c cgeom.Point, r float64, n int) cgeom.Polygon {
	fine := c.Buffer(r, 2*n)[0]
	ring := make([]cgeom.Point, n)
	for i := range ring {
		ring[i] = fine[2*i+1]
	}
	return cgeom.Polygon{ring}
}

// segmentInset is the fraction of the smaller of the buffer radius and half
// the segment length by which a rectangle stops short of each end of its
// segment.
const segmentInset = 1.e-3

// rectangle returns the area within r of the segment a-b, excluding the
// rounded end caps. Its short sides stop just inside the vertex circles so
// that they never run along an adjacent edge. It reports false when the
// segment is too short to need a rectangle.
func rectangle(a, b cgeom.Point, r float64) (cgeom.Polygon, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	inset := segmentInset * math.Min(r, l/2)
	if l == 0 || inset == 0 {
		return nil, false
	}
	ux, uy := dx/l, dy/l
	ox, oy := -uy*r, ux*r
	a = cgeom.Point{X: a.X + ux*inset, Y: a.Y + uy*inset}
	b = cgeom.Point{X: b.X - ux*inset, Y: b.Y - uy*inset}
	return cgeom.Polygon{{
		{X: a.X + ox, Y: a.Y + oy},
		{X: a.X - ox, Y: a.Y - oy},
		{X: b.X - ox, Y: b.Y - oy},
		{X: b.X + ox, Y: b.Y + oy},
	}}, true
}

// unionAll merges pieces pairwise so that the operands stay small.
func unionAll(pieces []cgeom.Polygon) cgeom.Polygon {
	for len(pieces) > 1 {
		next := make([]cgeom.Polygon, 0, (len(pieces)+1)/2)
		for i := 0; i < len(pieces); i += 2 {
			if i+1 == len(pieces) {
				next = append(next, pieces[i])
				continue
			}
			next = append(next, pieces[i].Union(pieces[i+1]).(cgeom.Polygon))
		}
		pieces = next
	}
	if len(pieces) == 0 {
		return nil
	}
	return pieces[0]
}

type ringInfo struct {
	ring   []cgeom.Point
	area   float64
	parent int
	depth  int
}

// contoursToGeom sorts unordered contours into shells and holes. A contour
// nested inside an odd number of others is a hole of the smallest contour
// that contains it.
func contoursToGeom(p cgeom.Polygon) geom.T {
	var rings []*ringInfo
	for _, r := range p {
		if len(r) > 0 && !r[0].Equals(r[len(r)-1]) {
			r = append(r[:len(r):len(r)], r[0])
		}
		if len(r) < 4 {
			continue
		}
		a := cgeom.Polygon{r}.Area()
		if a == 0 {
			continue
		}
		rings = append(rings, &ringInfo{ring: r, area: a, parent: -1})
	}
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].area > rings[j].area })
	for i, ri := range rings {
		for j := 0; j < i; j++ {
			if ringContains(rings[j].ring, ri.ring) {
				ri.depth++
				// Larger rings come first, so the last container is the smallest.
				ri.parent = j
			}
		}
	}

	var shells []int
	holes := make(map[int][]int)
	for i, ri := range rings {
		if ri.depth%2 == 0 {
			shells = append(shells, i)
		} else {
			holes[ri.parent] = append(holes[ri.parent], i)
		}
	}

	polys := make([]*geom.Polygon, 0, len(shells))
	for _, s := range shells {
		var flat []float64
		var ends []int
		for n, i := range append([]int{s}, holes[s]...) {
			// Shells wind counter-clockwise and holes clockwise.
			ring := orient(rings[i].ring, n == 0)
			for _, pt := range ring {
				flat = append(flat, pt.X, pt.Y)
			}
			ends = append(ends, len(flat))
		}
		polys = append(polys, geom.NewPolygonFlat(geom.XY, flat, ends))
	}
	switch len(polys) {
	case 0:
		return geom.NewPolygon(geom.XY)
	case 1:
		return polys[0]
	}
	mp := geom.NewMultiPolygon(geom.XY)
	for _, pp := range polys {
		if err := mp.Push(pp); err != nil {
			panic(err) // layouts always match
		}
	}
	return mp
}

// orient returns r, reversed if necessary so that it winds counter-clockwise
// when ccw is true and clockwise otherwise.
func orient(r []cgeom.Point, ccw bool) []cgeom.Point {
	var a float64
	for i := 1; i < len(r); i++ {
		a += (r[i].X - r[i-1].X) * (r[i].Y + r[i-1].Y)
	}
	// a is negative for counter-clockwise rings.
	if (a < 0) == ccw {
		return r
	}
	o := make([]cgeom.Point, len(r))
	for i, p := range r {
		o[len(r)-1-i] = p
	}
	return o
}

// ringContains reports whether inner lies inside outer, judged by the first
// vertex of inner that is not on outer's edge.
func ringContains(outer, inner []cgeom.Point) bool {
	poly := cgeom.Polygon{outer}
	for _, pt := range inner {
		switch pt.Within(poly) {
		case cgeom.Inside:
			return true
		case cgeom.Outside:
			return false
		}
	}
	return false
}
