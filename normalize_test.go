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
	"reflect"
	"testing"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestWrapValue(t *testing.T) {
	tests := []struct {
		v, lower, upper, want float64
	}{
		{v: 0, lower: -180, upper: 180, want: 0},
		{v: 179.5, lower: -180, upper: 180, want: 179.5},
		{v: -180, lower: -180, upper: 180, want: -180},
		{v: 180, lower: -180, upper: 180, want: -180},
		{v: 190, lower: -180, upper: 180, want: -170},
		{v: -190, lower: -180, upper: 180, want: 170},
		{v: 370, lower: -180, upper: 180, want: 10},
		{v: 540, lower: -180, upper: 180, want: -180},
		{v: -540, lower: -180, upper: 180, want: -180},
		{v: 725, lower: -180, upper: 180, want: 5},
		{v: 95, lower: -90, upper: 90, want: -85},
		{v: 90, lower: -90, upper: 90, want: -90},
		{v: -100, lower: -90, upper: 90, want: 80},
		{v: 150, lower: 0, upper: 100, want: 50},
		{v: -30, lower: 0, upper: 100, want: 70},
		{v: 250, lower: 0, upper: 100, want: 50},
	}
	for _, test := range tests {
		have := WrapValue(test.v, test.lower, test.upper)
		if !scalar.EqualWithinAbs(have, test.want, 1.e-9) {
			t.Errorf("WrapValue(%g, %g, %g) = %g, want %g", test.v, test.lower, test.upper, have, test.want)
		}
	}
}

func TestWrapValueUnchanged(t *testing.T) {
	inf := math.Inf(1)
	for _, b := range [][2]float64{{0, 0}, {10, -10}, {-inf, inf}, {0, inf}, {math.NaN(), 1}} {
		if v := WrapValue(500, b[0], b[1]); v != 500 {
			t.Errorf("bounds %v: have %g, want 500", b, v)
		}
	}
	if v := WrapValue(math.Inf(-1), -180, 180); !math.IsInf(v, -1) {
		t.Errorf("infinite value changed to %g", v)
	}
	if v := WrapValue(math.NaN(), -180, 180); !math.IsNaN(v) {
		t.Errorf("NaN changed to %g", v)
	}
}

func TestWrapValueRange(t *testing.T) {
	for v := -2000.; v <= 2000; v += 0.25 {
		w := WrapValue(v, -180, 180)
		if w < -180 || w >= 180 {
			t.Fatalf("WrapValue(%g) = %g is out of range", v, w)
		}
		if WrapValue(w, -180, 180) != w {
			t.Fatalf("WrapValue is not idempotent at %g", v)
		}
		// The result must differ from the input by a whole number of periods.
		periods := (v - w) / 360
		if math.Abs(periods-math.Round(periods)) > 1.e-9 {
			t.Fatalf("WrapValue(%g) = %g is not a whole number of periods away", v, w)
		}
	}
}

func TestNormalizeShapes(t *testing.T) {
	tests := []struct {
		name string
		in   geom.T
		want geom.T
	}{
		{
			name: "point",
			in:   geom.NewPointFlat(geom.XY, []float64{190, 95}),
			want: geom.NewPointFlat(geom.XY, []float64{-170, -85}),
		},
		{
			name: "linestring",
			in:   geom.NewLineStringFlat(geom.XY, []float64{170, 0, 190, 10, 370, -20}),
			want: geom.NewLineStringFlat(geom.XY, []float64{170, 0, -170, 10, 10, -20}),
		},
		{
			name: "polygon",
			in: geom.NewPolygonFlat(geom.XY, []float64{
				175, 0, 185, 0, 185, 10, 175, 10, 175, 0,
				178, 2, 182, 2, 182, 4, 178, 2,
			}, []int{10, 18}),
			want: geom.NewPolygonFlat(geom.XY, []float64{
				175, 0, -175, 0, -175, 10, 175, 10, 175, 0,
				178, 2, -178, 2, -178, 4, 178, 2,
			}, []int{10, 18}),
		},
		{
			name: "multipoint",
			in:   geom.NewMultiPointFlat(geom.XY, []float64{-200, 0, 200, 0}),
			want: geom.NewMultiPointFlat(geom.XY, []float64{160, 0, -160, 0}),
		},
		{
			name: "multilinestring",
			in:   geom.NewMultiLineStringFlat(geom.XY, []float64{0, 0, 1, 1, 360, 0, 361, 1}, []int{4, 8}),
			want: geom.NewMultiLineStringFlat(geom.XY, []float64{0, 0, 1, 1, 0, 0, 1, 1}, []int{4, 8}),
		},
		{
			name: "multipolygon",
			in: geom.NewMultiPolygonFlat(geom.XY, []float64{
				0, 0, 1, 0, 1, 1, 0, 0,
				360, 0, 361, 0, 361, 1, 360, 0,
			}, [][]int{{8}, {16}}),
			want: geom.NewMultiPolygonFlat(geom.XY, []float64{
				0, 0, 1, 0, 1, 1, 0, 0,
				0, 0, 1, 0, 1, 1, 0, 0,
			}, [][]int{{8}, {16}}),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have, err := Normalize(WGS84, test.in)
			if err != nil {
				t.Fatal(err)
			}
			if reflect.TypeOf(have) != reflect.TypeOf(test.want) {
				t.Fatalf("type: have %T, want %T", have, test.want)
			}
			if !floats.EqualApprox(have.FlatCoords(), test.want.FlatCoords(), 1.e-9) {
				t.Errorf("coordinates: have %v, want %v", have.FlatCoords(), test.want.FlatCoords())
			}
			if have.Layout() != test.want.Layout() {
				t.Errorf("layout: have %v, want %v", have.Layout(), test.want.Layout())
			}
			if !reflect.DeepEqual(have.Ends(), test.want.Ends()) || !reflect.DeepEqual(have.Endss(), test.want.Endss()) {
				t.Errorf("structure: have %v %v, want %v %v", have.Ends(), have.Endss(), test.want.Ends(), test.want.Endss())
			}
		})
	}
}

func TestNormalizeOrdinates(t *testing.T) {
	crs := WGS84.WithElevation(0, 100)
	t.Run("xyz", func(t *testing.T) {
		have, err := Normalize(crs, geom.NewPointFlat(geom.XYZ, []float64{190, 0, 150}))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{-170, 0, 50}
		if !floats.EqualApprox(have.FlatCoords(), want, 1.e-9) {
			t.Errorf("have %v, want %v", have.FlatCoords(), want)
		}
	})
	t.Run("xym", func(t *testing.T) {
		have, err := Normalize(crs, geom.NewPointFlat(geom.XYM, []float64{190, 0, 150}))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{-170, 0, 150}
		if !floats.EqualApprox(have.FlatCoords(), want, 1.e-9) {
			t.Errorf("have %v, want %v", have.FlatCoords(), want)
		}
	})
	t.Run("xyzm", func(t *testing.T) {
		have, err := Normalize(crs, geom.NewPointFlat(geom.XYZM, []float64{190, 0, 150, 150}))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{-170, 0, 50, 150}
		if !floats.EqualApprox(have.FlatCoords(), want, 1.e-9) {
			t.Errorf("have %v, want %v", have.FlatCoords(), want)
		}
	})
	t.Run("z without axis", func(t *testing.T) {
		have, err := Normalize(WGS84, geom.NewPointFlat(geom.XYZ, []float64{190, 0, 1500}))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{-170, 0, 1500}
		if !floats.EqualApprox(have.FlatCoords(), want, 1.e-9) {
			t.Errorf("have %v, want %v", have.FlatCoords(), want)
		}
	})
	t.Run("projected", func(t *testing.T) {
		proj := &CRS{Name: "grid", Axes: []Axis{
			{Name: "easting", Min: math.Inf(-1), Max: math.Inf(1)},
			{Name: "northing", Min: math.Inf(-1), Max: math.Inf(1)},
		}}
		in := []float64{1.e7, -3.e6}
		have, err := Normalize(proj, geom.NewPointFlat(geom.XY, in))
		if err != nil {
			t.Fatal(err)
		}
		if !floats.Equal(have.FlatCoords(), in) {
			t.Errorf("have %v, want %v", have.FlatCoords(), in)
		}
	})
}

func TestNormalizeKeepsInput(t *testing.T) {
	in := geom.NewLineStringFlat(geom.XY, []float64{190, 0, 200, 0}).SetSRID(4326)
	have, err := Normalize(WGS84, in)
	if err != nil {
		t.Fatal(err)
	}
	if have.SRID() != 4326 {
		t.Errorf("SRID = %d", have.SRID())
	}
	if !floats.Equal(in.FlatCoords(), []float64{190, 0, 200, 0}) {
		t.Errorf("input was modified: %v", in.FlatCoords())
	}
}

func TestNormalizeErrors(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{0, 0})
	if _, err := Normalize(nil, pt); err == nil {
		t.Error("nil CRS: expected an error")
	}
	if _, err := Normalize(WGS84, nil); err == nil {
		t.Error("nil geometry: expected an error")
	}
	gc := geom.NewGeometryCollection()
	if err := gc.Push(pt); err != nil {
		t.Fatal(err)
	}
	if _, err := Normalize(WGS84, gc); err == nil {
		t.Error("geometry collection: expected an error")
	}
}

func TestNormalizeParallel(t *testing.T) {
	const n = 1000
	flat := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		flat = append(flat, float64(i)*1.7-850, float64(i%400)-200)
	}
	ls := geom.NewLineStringFlat(geom.XY, flat)

	sequential, err := Normalize(WGS84, ls)
	if err != nil {
		t.Fatal(err)
	}
	old := ParallelThreshold
	ParallelThreshold = 10
	defer func() { ParallelThreshold = old }()
	parallel, err := Normalize(WGS84, ls)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(sequential.FlatCoords(), parallel.FlatCoords()) {
		t.Error("parallel and sequential results differ")
	}
	for i, v := range parallel.FlatCoords() {
		lower, upper := -180., 180.
		if i%2 == 1 {
			lower, upper = -90, 90
		}
		if v < lower || v >= upper {
			t.Fatalf("ordinate %d = %g is out of range", i, v)
		}
	}
}
