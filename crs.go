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
	"strings"

	"github.com/ctessum/geom/proj"
)

// Axis is a single coordinate axis of a coordinate reference system.
type Axis struct {
	Name     string
	Min, Max float64 // valid range; the axis period is Max-Min
}

// CRS is a coordinate reference system. The index of each axis in Axes
// is its dimension: 0 is x (longitude), 1 is y (latitude) and 2 is z
// (elevation).
type CRS struct {
	Name string
	Axes []Axis

	// Geodesic answers destination queries on the CRS's reference surface.
	// It is nil for projected systems.
	Geodesic Geodesic

	// SR is the parsed spatial reference the CRS was built from, if any.
	SR *proj.SR
}

// WGS84 is the geographic coordinate system on the WGS 84 ellipsoid.
var WGS84 = NewGeographicCRS("WGS84", Ellipsoid{A: 6378137, F: 1 / 298.257223563})

// NewGeographicCRS returns a longitude/latitude coordinate system whose
// geodesic queries are answered on model. Ellipsoids with zero flattening
// are treated as spheres.
func NewGeographicCRS(name string, model Ellipsoid) *CRS {
	var g Geodesic = model
	if model.F == 0 {
		g = Sphere{Radius: model.A}
	}
	return &CRS{
		Name: name,
		Axes: []Axis{
			{Name: "longitude", Min: -180, Max: 180},
			{Name: "latitude", Min: -90, Max: 90},
		},
		Geodesic: g,
	}
}

// ParseCRS creates a coordinate reference system from a PROJ4- or
// WKT-formatted definition. Only "longlat" definitions carry a geodesic
// model; other projections get unbounded axes.
func ParseCRS(def string) (*CRS, error) {
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("geowave: parsing CRS definition: %v", err)
	}
	name := strings.ToLower(sr.Name)
	if name != "longlat" && name != "identity" {
		return &CRS{
			Name: sr.Name,
			Axes: []Axis{
				{Name: "easting", Min: math.Inf(-1), Max: math.Inf(1)},
				{Name: "northing", Min: math.Inf(-1), Max: math.Inf(1)},
			},
			SR: sr,
		}, nil
	}
	if math.IsNaN(sr.A) || sr.A <= 0 {
		return nil, fmt.Errorf("geowave: CRS definition %q has no usable semi-major axis", def)
	}
	var f float64
	if !math.IsNaN(sr.B) && sr.B != sr.A {
		f = (sr.A - sr.B) / sr.A
	}
	c := NewGeographicCRS(sr.Name, Ellipsoid{A: sr.A, F: f})
	c.SR = sr
	return c, nil
}

// WithElevation returns a copy of c with a bounded z axis.
func (c *CRS) WithElevation(min, max float64) *CRS {
	o := *c
	o.Axes = make([]Axis, 2, 3)
	copy(o.Axes, c.Axes)
	o.Axes = append(o.Axes, Axis{Name: "elevation", Min: min, Max: max})
	return &o
}

// Dimension returns the number of declared axes.
func (c *CRS) Dimension() int {
	return len(c.Axes)
}

// AxisBounds returns the valid range of dimension dim. ok is false if the
// dimension is not declared or its bounds do not describe a finite period.
func (c *CRS) AxisBounds(dim int) (lower, upper float64, ok bool) {
	if dim < 0 || dim >= len(c.Axes) {
		return 0, 0, false
	}
	a := c.Axes[dim]
	if math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) || math.IsNaN(a.Min) || math.IsNaN(a.Max) {
		return a.Min, a.Max, false
	}
	return a.Min, a.Max, a.Max > a.Min
}

func (c *CRS) String() string {
	return c.Name
}
