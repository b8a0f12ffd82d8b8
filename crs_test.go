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
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestParseCRS(t *testing.T) {
	t.Run("ellipsoid", func(t *testing.T) {
		c, err := ParseCRS("+proj=longlat +ellps=WGS84")
		if err != nil {
			t.Fatal(err)
		}
		e, ok := c.Geodesic.(Ellipsoid)
		if !ok {
			t.Fatalf("geodesic is %T, want Ellipsoid", c.Geodesic)
		}
		if e.A != 6378137 {
			t.Errorf("A = %g", e.A)
		}
		if !scalar.EqualWithinRel(e.F, 1/298.257223563, 1.e-9) {
			t.Errorf("F = %g", e.F)
		}
		if c.SR == nil {
			t.Error("missing spatial reference")
		}
		lower, upper, ok := c.AxisBounds(0)
		if !ok || lower != -180 || upper != 180 {
			t.Errorf("longitude bounds = %g, %g, %v", lower, upper, ok)
		}
		lower, upper, ok = c.AxisBounds(1)
		if !ok || lower != -90 || upper != 90 {
			t.Errorf("latitude bounds = %g, %g, %v", lower, upper, ok)
		}
	})
	t.Run("sphere", func(t *testing.T) {
		c, err := ParseCRS("+proj=longlat +ellps=sphere")
		if err != nil {
			t.Fatal(err)
		}
		if s, ok := c.Geodesic.(Sphere); !ok || s.Radius != 6370997 {
			t.Errorf("geodesic = %#v, want Sphere{6370997}", c.Geodesic)
		}
	})
	t.Run("projected", func(t *testing.T) {
		c, err := ParseCRS("+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +ellps=WGS84 +units=m")
		if err != nil {
			t.Fatal(err)
		}
		if c.Geodesic != nil {
			t.Errorf("projected CRS has geodesic %#v", c.Geodesic)
		}
		if _, _, ok := c.AxisBounds(0); ok {
			t.Error("projected easting should be unbounded")
		}
	})
	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseCRS("not a projection"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestCRSAxes(t *testing.T) {
	if WGS84.Dimension() != 2 {
		t.Errorf("dimension = %d", WGS84.Dimension())
	}
	if _, _, ok := WGS84.AxisBounds(2); ok {
		t.Error("WGS84 has no elevation axis")
	}
	if _, _, ok := WGS84.AxisBounds(-1); ok {
		t.Error("negative dimension")
	}

	z := WGS84.WithElevation(-500, 9000)
	if z.Dimension() != 3 || WGS84.Dimension() != 2 {
		t.Errorf("WithElevation: dimensions %d and %d", z.Dimension(), WGS84.Dimension())
	}
	lower, upper, ok := z.AxisBounds(2)
	if !ok || lower != -500 || upper != 9000 {
		t.Errorf("elevation bounds = %g, %g, %v", lower, upper, ok)
	}
	if z.Geodesic != WGS84.Geodesic || z.String() != "WGS84" {
		t.Error("WithElevation should keep the geodesic and name")
	}

	flat := &CRS{Name: "empty", Axes: []Axis{{Name: "x", Min: 3, Max: 3}, {Name: "y", Min: math.NaN(), Max: 1}}}
	for dim := 0; dim < 2; dim++ {
		if _, _, ok := flat.AxisBounds(dim); ok {
			t.Errorf("dimension %d should not have a usable period", dim)
		}
	}
}
