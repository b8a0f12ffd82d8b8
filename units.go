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
	"sort"
	"strings"

	"github.com/ctessum/unit"
	"github.com/ctessum/unit/badunit"
	"github.com/sirupsen/logrus"
)

// UnitError is returned when a unit name cannot be resolved to a length.
type UnitError struct {
	Name string
	Err  error
}

func (e *UnitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geowave: unit %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("geowave: unrecognized unit %q", e.Name)
}

func (e *UnitError) Unwrap() error { return e.Err }

// unitTable holds one of each recognized unit. Keys are lower case.
var unitTable = map[string]func() *unit.Unit{
	"m":              func() *unit.Unit { return unit.New(1, unit.Meter) },
	"meter":          func() *unit.Unit { return unit.New(1, unit.Meter) },
	"metre":          func() *unit.Unit { return unit.New(1, unit.Meter) },
	"km":             func() *unit.Unit { return unit.New(1000, unit.Meter) },
	"kilometer":      func() *unit.Unit { return unit.New(1000, unit.Meter) },
	"kilometre":      func() *unit.Unit { return unit.New(1000, unit.Meter) },
	"cm":             func() *unit.Unit { return unit.New(0.01, unit.Meter) },
	"centimeter":     func() *unit.Unit { return unit.New(0.01, unit.Meter) },
	"mm":             func() *unit.Unit { return unit.New(0.001, unit.Meter) },
	"millimeter":     func() *unit.Unit { return unit.New(0.001, unit.Meter) },
	"mi":             func() *unit.Unit { return badunit.Mile(1) },
	"mile":           func() *unit.Unit { return badunit.Mile(1) },
	"ft":             func() *unit.Unit { return badunit.Foot(1) },
	"foot":           func() *unit.Unit { return badunit.Foot(1) },
	"feet":           func() *unit.Unit { return badunit.Foot(1) },
	"us-ft":          func() *unit.Unit { return unit.New(1200.0/3937.0, unit.Meter) },
	"us survey foot": func() *unit.Unit { return unit.New(1200.0/3937.0, unit.Meter) },
	"yd":             func() *unit.Unit { return unit.New(0.9144, unit.Meter) },
	"yard":           func() *unit.Unit { return unit.New(0.9144, unit.Meter) },
	"in":             func() *unit.Unit { return unit.New(0.0254, unit.Meter) },
	"inch":           func() *unit.Unit { return unit.New(0.0254, unit.Meter) },
	"nmi":            func() *unit.Unit { return unit.New(1852, unit.Meter) },
	"nautical mile":  func() *unit.Unit { return unit.New(1852, unit.Meter) },

	// Recognized but not lengths.
	"s":      func() *unit.Unit { return unit.New(1, unit.Second) },
	"second": func() *unit.Unit { return unit.New(1, unit.Second) },
	"kg":     func() *unit.Unit { return unit.New(1, unit.Kilogram) },
	"hour":   func() *unit.Unit { return badunit.Hour(1) },
}

func lookupUnit(name string) (*unit.Unit, bool) {
	if f, ok := unitTable[name]; ok {
		return f(), true
	}
	if len(name) <= 3 {
		return nil, false
	}
	// Plural forms.
	for _, suffix := range []string{"es", "s"} {
		if strings.HasSuffix(name, suffix) {
			if f, ok := unitTable[strings.TrimSuffix(name, suffix)]; ok {
				return f(), true
			}
		}
	}
	return nil, false
}

// ParseUnit returns the length of one s expressed in meters.
func ParseUnit(s string) (*unit.Unit, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return nil, &UnitError{Name: s}
	}
	u, ok := lookupUnit(name)
	if !ok {
		u, ok = lookupUnit(strings.ToLower(strings.Join(strings.Fields(name), " ")))
	}
	if !ok {
		return nil, &UnitError{Name: s}
	}
	if err := u.Check(unit.Meter); err != nil {
		return nil, &UnitError{Name: s, Err: err}
	}
	return u, nil
}

// MetersPerUnit returns the number of meters in one s. Names that can't be
// resolved are logged to log and treated as meters.
func MetersPerUnit(s string, log logrus.FieldLogger) float64 {
	u, err := ParseUnit(s)
	if err != nil {
		if log == nil {
			log = logrus.StandardLogger()
		}
		log.WithField("unit", s).WithError(err).Warn("geowave: unknown distance unit; using meters")
		return 1
	}
	return u.Value()
}

// UnitFactor is a recognized length unit name and its size in meters.
type UnitFactor struct {
	Name   string
	Meters float64
}

// Units lists the recognized length unit names in alphabetical order.
func Units() []UnitFactor {
	var o []UnitFactor
	for name, f := range unitTable {
		u := f()
		if u.Check(unit.Meter) != nil {
			continue
		}
		o = append(o, UnitFactor{Name: name, Meters: u.Value()})
	}
	sort.Slice(o, func(i, j int) bool { return o[i].Name < o[j].Name })
	return o
}
