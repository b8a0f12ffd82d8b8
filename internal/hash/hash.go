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
along with geowave.  If not, see <http://www.gnu.org/licenses/>.*/

// Package hash creates short fingerprints of geometries so that log
// records about the same input can be matched up.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
	"github.com/twpayne/go-geom"
)

// key holds everything that distinguishes one geometry from another.
type key struct {
	Type   string
	Layout int
	SRID   int
	Flat   []float64
	Ends   []int
	Endss  [][]int
}

// Geometry returns a fingerprint of g. Geometries with the same type,
// layout, SRID and coordinates have the same fingerprint.
func Geometry(g geom.T) string {
	if g == nil {
		return "nil"
	}
	if c, ok := g.(*geom.GeometryCollection); ok {
		parts := make([]string, c.NumGeoms())
		for i, gg := range c.Geoms() {
			parts[i] = Geometry(gg)
		}
		return Hash(struct {
			SRID  int
			Parts []string
		}{c.SRID(), parts})
	}
	k := key{
		Type:   fmt.Sprintf("%T", g),
		Layout: int(g.Layout()),
		SRID:   g.SRID(),
		Flat:   g.FlatCoords(),
		Ends:   g.Ends(),
		Endss:  g.Endss(),
	}
	return Hash(k)
}

// Hash returns a hash key for the specified object.
func Hash(object interface{}) string {
	h := fnv.New64a()

	e := gob.NewEncoder(h)
	if err := e.Encode(object); err == nil {
		return fmt.Sprintf("%x", h.Sum(nil))
	}
	// gob can't encode everything (e.g., nil elements inside
	// slices), so fall back to spew.
	h.Reset()
	printer := spew.ConfigState{
		Indent:                  " ",
		SortKeys:                true,
		DisableMethods:          true,
		SpewKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	printer.Fprintf(h, "%#v", object)
	return fmt.Sprintf("%x", h.Sum(nil))
}
