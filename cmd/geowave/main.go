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

// Command geowave is a command-line interface for geodesic-aware
// geometry buffering.
package main

import (
	"fmt"
	"os"

	"github.com/cj2001/geowave/geowaveutil"
)

func main() {
	if err := geowaveutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
