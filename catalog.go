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
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog holds coordinate reference systems by name. Names are matched
// without regard to case.
type Catalog map[string]*CRS

// CatalogEntry is a single named CRS in a catalog file.
type CatalogEntry struct {
	Name       string   `toml:"name"`
	Definition string   `toml:"definition"`
	ZMin       *float64 `toml:"zmin"`
	ZMax       *float64 `toml:"zmax"`
}

type catalogFile struct {
	CRS []CatalogEntry `toml:"crs"`
}

// SphereRadius is the mean radius of the Earth in meters, used by the
// "sphere" catalog entry.
const SphereRadius = 6371008.8

// DefaultCatalog returns a catalog of the built-in coordinate reference
// systems.
func DefaultCatalog() Catalog {
	return Catalog{
		"EPSG:4326": WGS84,
		"WGS84":     WGS84,
		"CRS:84":    WGS84,
		"SPHERE":    NewGeographicCRS("sphere", Ellipsoid{A: SphereRadius}),
	}
}

// LoadCatalog reads a TOML catalog of the form
//
//	[[crs]]
//	name = "NAD83"
//	definition = "+proj=longlat +ellps=GRS80"
//	zmin = -500.0
//	zmax = 9000.0
//
// and returns it merged on top of DefaultCatalog. zmin and zmax are
// optional but must be given together.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var f catalogFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("geowave: reading CRS catalog: %w", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("geowave: reading CRS catalog: unknown keys %s", strings.Join(keys, ", "))
	}
	c := DefaultCatalog()
	for i, e := range f.CRS {
		if e.Name == "" {
			return nil, fmt.Errorf("geowave: CRS catalog entry %d has no name", i)
		}
		crs, err := ParseCRS(e.Definition)
		if err != nil {
			return nil, fmt.Errorf("geowave: CRS catalog entry %q: %w", e.Name, err)
		}
		crs.Name = e.Name
		switch {
		case e.ZMin != nil && e.ZMax != nil:
			crs = crs.WithElevation(*e.ZMin, *e.ZMax)
		case e.ZMin != nil || e.ZMax != nil:
			return nil, fmt.Errorf("geowave: CRS catalog entry %q: zmin and zmax must be set together", e.Name)
		}
		c[strings.ToUpper(e.Name)] = crs
	}
	return c, nil
}

// Lookup returns the catalog entry called name or, if there isn't one,
// parses name as a CRS definition.
func (c Catalog) Lookup(name string) (*CRS, error) {
	if crs, ok := c[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return crs, nil
	}
	crs, err := ParseCRS(name)
	if err != nil {
		return nil, fmt.Errorf("geowave: %q is neither a catalog entry nor a valid definition: %w", name, err)
	}
	return crs, nil
}

// Names returns the catalog's names in sorted order.
func (c Catalog) Names() []string {
	o := make([]string, 0, len(c))
	for n := range c {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}
