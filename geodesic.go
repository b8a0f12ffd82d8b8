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

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Geodesic calculates where a path of a given length and initial heading
// ends on a reference surface. Angles are in degrees, distance is in meters.
type Geodesic interface {
	Destination(lon, lat, azimuth, distance float64) (lon2, lat2 float64, err error)
}

// GeodesicError is returned when a geodesic destination cannot be computed.
type GeodesicError struct {
	Lon, Lat float64
	Azimuth  float64
	Distance float64 // meters
	Err      error
}

func (e *GeodesicError) Error() string {
	return fmt.Sprintf("geowave: geodesic destination from (%g, %g) at azimuth %g° over %g m: %v",
		e.Lon, e.Lat, e.Azimuth, e.Distance, e.Err)
}

func (e *GeodesicError) Unwrap() error { return e.Err }

var (
	errNoGeodesic    = errors.New("coordinate reference system has no geodesic model")
	errNotFinite     = errors.New("input is not finite")
	errLatitude      = errors.New("latitude outside of [-90, 90]")
	errNoConvergence = errors.New("iteration did not converge")
	errBadEllipsoid  = errors.New("invalid ellipsoid parameters")
)

func checkGeodesicInput(lon, lat, azimuth, distance float64) error {
	for _, v := range []float64{lon, lat, azimuth, distance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errNotFinite
		}
	}
	if lat < -90 || lat > 90 {
		return errLatitude
	}
	return nil
}

// Ellipsoid is an oblate ellipsoid of revolution with semi-major axis A
// (meters) and flattening F.
type Ellipsoid struct {
	A, F float64
}

// Destination solves the direct geodesic problem with Vincenty's formulae.
func (e Ellipsoid) Destination(lon, lat, azimuth, distance float64) (float64, float64, error) {
	if err := checkGeodesicInput(lon, lat, azimuth, distance); err != nil {
		return 0, 0, &GeodesicError{Lon: lon, Lat: lat, Azimuth: azimuth, Distance: distance, Err: err}
	}
	if !(e.A > 0) || e.F < 0 || e.F >= 1 {
		return 0, 0, &GeodesicError{Lon: lon, Lat: lat, Azimuth: azimuth, Distance: distance, Err: errBadEllipsoid}
	}
	const (
		maxIter   = 200
		tolerance = 1e-12
	)
	a, f := e.A, e.F
	b := a * (1 - f)

	alpha1 := azimuth * math.Pi / 180
	sinAlpha1, cosAlpha1 := math.Sincos(alpha1)

	tanU1 := (1 - f) * math.Tan(lat*math.Pi/180)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := distance / (b * bigA)
	var sinSigma, cosSigma, cos2SigmaM float64
	converged := false
	for i := 0; i < maxIter; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = distance/(b*bigA) + deltaSigma
		if math.Abs(sigma-prev) < tolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, &GeodesicError{Lon: lon, Lat: lat, Azimuth: azimuth, Distance: distance, Err: errNoConvergence}
	}
	cos2SigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma, cosSigma = math.Sincos(sigma)

	x := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-f)*math.Sqrt(sinAlpha*sinAlpha+x*x))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	l := lambda - (1-c)*f*sinAlpha*(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	lon2 := s1.Angle(lon*math.Pi/180 + l).Normalized()
	return lon2.Degrees(), lat2 * 180 / math.Pi, nil
}

// Sphere is a sphere with the given radius in meters.
type Sphere struct {
	Radius float64
}

// Destination follows the great circle leaving (lon, lat) at azimuth.
func (s Sphere) Destination(lon, lat, azimuth, distance float64) (float64, float64, error) {
	if err := checkGeodesicInput(lon, lat, azimuth, distance); err != nil {
		return 0, 0, &GeodesicError{Lon: lon, Lat: lat, Azimuth: azimuth, Distance: distance, Err: err}
	}
	if !(s.Radius > 0) {
		return 0, 0, &GeodesicError{Lon: lon, Lat: lat, Azimuth: azimuth, Distance: distance, Err: errBadEllipsoid}
	}
	start := s2.LatLngFromDegrees(lat, lon)
	delta := distance / s.Radius
	theta := (s1.Angle(azimuth) * s1.Degree).Radians()

	sinLat, cosLat := math.Sincos(start.Lat.Radians())
	sinDelta, cosDelta := math.Sincos(delta)
	sinTheta, cosTheta := math.Sincos(theta)

	sinLat2 := sinLat*cosDelta + cosLat*sinDelta*cosTheta
	lat2 := math.Asin(math.Max(-1, math.Min(1, sinLat2)))
	lng2 := start.Lng.Radians() + math.Atan2(sinTheta*sinDelta*cosLat, cosDelta-sinLat*sinLat2)

	end := s2.LatLng{Lat: s1.Angle(lat2), Lng: s1.Angle(lng2)}.Normalized()
	return end.Lng.Degrees(), end.Lat.Degrees(), nil
}
