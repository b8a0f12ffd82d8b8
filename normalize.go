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
	"runtime"

	"github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"
)

// ParallelThreshold is the number of coordinates above which Normalize
// splits the work across goroutines.
var ParallelThreshold = 1 << 16

// WrapValue folds v into the periodic range [lower, upper). Values already
// in range are returned unchanged, as are all values when the range is not
// finite and positive.
func WrapValue(v, lower, upper float64) float64 {
	bound := upper - lower
	if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(bound) || math.IsInf(bound, 0) || bound <= 0 {
		return v
	}
	if v >= lower && v < upper {
		return v
	}
	s := sign(v)
	mult := math.Floor(math.Abs(v-s*lower) / bound)
	r := v - mult*bound*s
	if r < lower || r >= upper {
		r = lower + math.Mod(r-lower, bound)
		if r < lower {
			r += bound
		}
		if r >= upper {
			r = lower
		}
	}
	return r
}

// Normalize returns a copy of g with every coordinate wrapped into the
// range of the corresponding axis of crs. Ordinates without a bounded axis,
// and M values, are copied as they are. g itself is not modified.
func Normalize(crs *CRS, g geom.T) (geom.T, error) {
	return DefaultCalculator.Normalize(crs, g)
}

func normalize(crs *CRS, g geom.T) (geom.T, error) {
	if crs == nil {
		return nil, fmt.Errorf("geowave: normalize: nil CRS")
	}
	if g == nil {
		return nil, fmt.Errorf("geowave: normalize: nil geometry")
	}
	if _, ok := g.(*geom.GeometryCollection); ok {
		return nil, fmt.Errorf("geowave: normalize: unsupported geometry type %T", g)
	}
	layout := g.Layout()
	flat := append([]float64(nil), g.FlatCoords()...)
	if err := wrapFlat(crs, layout, flat); err != nil {
		return nil, err
	}
	srid := g.SRID()
	switch t := g.(type) {
	case *geom.Point:
		return geom.NewPointFlat(layout, flat).SetSRID(srid), nil
	case *geom.LineString:
		return geom.NewLineStringFlat(layout, flat).SetSRID(srid), nil
	case *geom.LinearRing:
		return geom.NewLinearRingFlat(layout, flat).SetSRID(srid), nil
	case *geom.Polygon:
		return geom.NewPolygonFlat(layout, flat, copyEnds(t.Ends())).SetSRID(srid), nil
	case *geom.MultiPoint:
		return geom.NewMultiPointFlat(layout, flat,
			geom.NewMultiPointFlatOptionWithEnds(copyEnds(t.Ends()))).SetSRID(srid), nil
	case *geom.MultiLineString:
		return geom.NewMultiLineStringFlat(layout, flat, copyEnds(t.Ends())).SetSRID(srid), nil
	case *geom.MultiPolygon:
		endss := make([][]int, len(t.Endss()))
		for i, ends := range t.Endss() {
			endss[i] = copyEnds(ends)
		}
		return geom.NewMultiPolygonFlat(layout, flat, endss).SetSRID(srid), nil
	default:
		return nil, fmt.Errorf("geowave: normalize: unsupported geometry type %T", g)
	}
}

func copyEnds(ends []int) []int {
	if ends == nil {
		return nil
	}
	return append([]int(nil), ends...)
}

type axisRange struct {
	lower, upper float64
	ok           bool
}

// wrapFlat wraps flat in place.
func wrapFlat(crs *CRS, layout geom.Layout, flat []float64) error {
	stride := layout.Stride()
	if stride == 0 || len(flat) == 0 {
		return nil
	}
	// ranges[o] is the axis range for ordinate o of each coordinate.
	ranges := make([]axisRange, stride)
	zi := layout.ZIndex()
	for o := 0; o < stride; o++ {
		dim := o
		switch {
		case o == zi:
			dim = 2
		case o > 1:
			continue // M
		}
		var r axisRange
		r.lower, r.upper, r.ok = crs.AxisBounds(dim)
		ranges[o] = r
	}
	wrap := func(start, end int) {
		for i := start; i < end; i += stride {
			for o, r := range ranges {
				if r.ok {
					flat[i+o] = WrapValue(flat[i+o], r.lower, r.upper)
				}
			}
		}
	}

	n := len(flat) / stride
	if n <= ParallelThreshold {
		wrap(0, len(flat))
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	per := (n + workers - 1) / workers
	var eg errgroup.Group
	for c := 0; c < n; c += per {
		start, end := c*stride, (c+per)*stride
		if end > len(flat) {
			end = len(flat)
		}
		eg.Go(func() error {
			wrap(start, end)
			return nil
		})
	}
	return eg.Wait()
}
