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
	"context"
	"fmt"
	"testing"

	"github.com/cj2001/geowave/internal/postgis"
	"gonum.org/v1/gonum/floats/scalar"
)

// TestDestination_postgis compares the ellipsoidal destination with
// ST_Project on the WGS 84 spheroid.
func TestDestination_postgis(t *testing.T) {
	ctx := context.Background()
	conn, postgresC := postgis.SetupTestDB(ctx, t)
	defer postgresC.Terminate(ctx)
	defer conn.Close(ctx)

	const q = `SELECT ST_X(p::geometry), ST_Y(p::geometry)
FROM (SELECT ST_Project(ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3, radians($4)) AS p) AS s`

	tests := []struct {
		lon, lat, azimuth, distance float64
	}{
		{lon: 0, lat: 0, azimuth: 90, distance: 1000},
		{lon: -93.2, lat: 44.9, azimuth: 30, distance: 25000},
		{lon: 179.9995, lat: 0, azimuth: 90, distance: 1000},
		{lon: 144.4249, lat: -37.9510, azimuth: 306.868, distance: 54972.271},
		{lon: 10, lat: 70, azimuth: 200, distance: 500000},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%g,%g", test.lon, test.lat), func(t *testing.T) {
			var wantLon, wantLat float64
			if err := conn.QueryRow(ctx, q, test.lon, test.lat, test.distance, test.azimuth).Scan(&wantLon, &wantLat); err != nil {
				t.Fatal(err)
			}
			lon, lat, err := WGS84.Geodesic.Destination(test.lon, test.lat, test.azimuth, test.distance)
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinAbs(lon, wantLon, 1.e-6) || !scalar.EqualWithinAbs(lat, wantLat, 1.e-6) {
				t.Errorf("have (%.8f, %.8f), PostGIS gives (%.8f, %.8f)", lon, lat, wantLon, wantLat)
			}
		})
	}
}
