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

// Package geowave buffers geometries in geographic coordinate systems by
// physical distances and keeps their coordinates inside the valid range of
// each axis.
//
// A buffer is computed in three steps. The distance is converted to meters
// (ParseUnit), then to coordinate units at the geometry's location using the
// coordinate system's geodesic model (MetersToDegrees), and the geometry is
// buffered in flat coordinate space (PlanarBufferer). The result is passed
// through Normalize, which wraps longitudes across the antimeridian and
// other out-of-range values back into their axis ranges.
package geowave

// Version gives the version number.
const Version = "0.3.0"
