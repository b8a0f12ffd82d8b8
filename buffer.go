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

	"github.com/cj2001/geowave/internal/hash"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
)

// Result is the outcome of a buffer operation.
type Result struct {
	// Geometry is the buffered, normalized geometry.
	Geometry geom.T

	// Degrees is the buffer radius that was used, in coordinate units.
	Degrees float64
}

// Calculator buffers and normalizes geometries.
type Calculator struct {
	// Kernel performs the planar buffer in coordinate space.
	Kernel PlanarBufferer

	// Log receives a debug record for each operation and warnings
	// about unrecognized units.
	Log logrus.FieldLogger
}

// NewCalculator returns a Calculator that uses a UnionKernel and the
// standard logrus logger.
func NewCalculator() *Calculator {
	return &Calculator{
		Kernel: UnionKernel{QuadrantSegments: DefaultQuadrantSegments},
		Log:    logrus.StandardLogger(),
	}
}

// DefaultCalculator is used by the package-level Buffer and Normalize
// functions.
var DefaultCalculator = NewCalculator()

func (c *Calculator) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Buffer expands g, whose coordinates are in crs, by distance expressed in
// distanceUnit. The distance is converted to meters, then to coordinate
// units at g's location, and the result of the planar buffer is normalized
// into crs's axis ranges. Unrecognized units are treated as meters.
func (c *Calculator) Buffer(crs *CRS, g geom.T, distanceUnit string, distance float64) (*Result, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, fmt.Errorf("geowave: buffer distance %g is not finite", distance)
	}
	if distance < 0 {
		return nil, fmt.Errorf("geowave: negative buffer distance %g", distance)
	}
	kernel := c.Kernel
	if kernel == nil {
		kernel = UnionKernel{}
	}
	log := c.log()
	meters := distance * MetersPerUnit(distanceUnit, log)

	degrees, err := MetersToDegrees(crs, g, meters)
	if err != nil {
		return nil, err
	}
	buffered, err := kernel.PlanarBuffer(g, degrees)
	if err != nil {
		return nil, err
	}
	out, err := normalize(crs, withSRID(buffered, g.SRID()))
	if err != nil {
		return nil, err
	}
	if debugEnabled(log) {
		log.WithFields(logrus.Fields{
			"geometry": hash.Geometry(g),
			"type":     fmt.Sprintf("%T", g),
			"crs":      crs.Name,
			"unit":     distanceUnit,
			"meters":   meters,
			"degrees":  degrees,
		}).Debug("geowave: buffered geometry")
	}
	return &Result{Geometry: out, Degrees: degrees}, nil
}

// debugEnabled reports whether a debug record sent to l could be written.
// Geometry fingerprints are computed only when it could.
func debugEnabled(l logrus.FieldLogger) bool {
	switch l := l.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}

func withSRID(g geom.T, srid int) geom.T {
	switch t := g.(type) {
	case *geom.Polygon:
		return t.SetSRID(srid)
	case *geom.MultiPolygon:
		return t.SetSRID(srid)
	}
	return g
}

// Normalize wraps the coordinates of g into the axis ranges of crs.
func (c *Calculator) Normalize(crs *CRS, g geom.T) (geom.T, error) {
	out, err := normalize(crs, g)
	if err != nil {
		return nil, err
	}
	if log := c.log(); debugEnabled(log) {
		log.WithFields(logrus.Fields{
			"geometry": hash.Geometry(g),
			"type":     fmt.Sprintf("%T", g),
			"crs":      crs.Name,
		}).Debug("geowave: normalized geometry")
	}
	return out, nil
}

// Buffer buffers g using DefaultCalculator.
func Buffer(crs *CRS, g geom.T, distanceUnit string, distance float64) (*Result, error) {
	return DefaultCalculator.Buffer(crs, g, distanceUnit, distance)
}
