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
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/floats"
)

var errEmptyGeometry = errors.New("geometry is empty")

// MetersToDegrees estimates how many degrees of coordinate space correspond
// to meters of ground distance at g's location. For points the estimate is
// taken at the point itself. For other geometries it is the largest estimate
// over the four corners of the bounding box, so that the buffer distance is
// never understated at the geometry's extremes.
func MetersToDegrees(crs *CRS, g geom.T, meters float64) (float64, error) {
	if crs == nil || crs.Geodesic == nil {
		name := "<nil>"
		if crs != nil {
			name = crs.Name
		}
		return 0, &GeodesicError{Distance: meters, Err: fmt.Errorf("%s: %w", name, errNoGeodesic)}
	}
	if g == nil || g.Empty() {
		return 0, &GeodesicError{Distance: meters, Err: errEmptyGeometry}
	}
	if p, ok := g.(*geom.Point); ok {
		return pointDegrees(crs.Geodesic, p.X(), p.Y(), meters)
	}
	b := g.Bounds()
	minX, minY, maxX, maxY := b.Min(0), b.Min(1), b.Max(0), b.Max(1)
	corners := [4][2]float64{
		{maxX, maxY},
		{maxX, minY},
		{minX, minY},
		{minX, maxY},
	}
	d := make([]float64, len(corners))
	for i, c := range corners {
		var err error
		d[i], err = pointDegrees(crs.Geodesic, c[0], c[1], meters)
		if err != nil {
			return 0, err
		}
	}
	return floats.Max(d), nil
}

// pointDegrees walks meters due east of (lon, lat), or due west if going east
// crosses the antimeridian, and returns the coordinate-space length of the
// step.
func pointDegrees(g Geodesic, lon, lat, meters float64) (float64, error) {
	lon2, lat2, err := g.Destination(lon, lat, 90, meters)
	if err != nil {
		return 0, err
	}
	if sign(lon2) != sign(lon) {
		lon2, lat2, err = g.Destination(lon, lat, -90, meters)
		if err != nil {
			return 0, err
		}
	}
	return math.Hypot(lon2-lon, lat2-lat), nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
