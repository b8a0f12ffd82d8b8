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

package geowaveutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// docKind is the shape of an input document, which is mirrored in the
// output.
type docKind int

const (
	bareGeometry docKind = iota
	singleFeature
	featureCollection
)

// document is a set of input geometries read from a file.
type document struct {
	kind     docKind
	features []*geojson.Feature
}

// readDocument reads WKT, a GeoJSON geometry, a GeoJSON Feature or a
// GeoJSON FeatureCollection from r.
func readDocument(r io.Reader) (*document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("geowave: reading input: %v", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("geowave: input is empty")
	}
	if b[0] != '{' {
		g, err := wkt.Unmarshal(string(b))
		if err != nil {
			return nil, fmt.Errorf("geowave: parsing WKT input: %v", err)
		}
		return &document{kind: bareGeometry, features: []*geojson.Feature{{Geometry: g}}}, nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("geowave: parsing GeoJSON input: %v", err)
	}
	switch head.Type {
	case "FeatureCollection":
		fc := new(geojson.FeatureCollection)
		if err := json.Unmarshal(b, fc); err != nil {
			return nil, fmt.Errorf("geowave: parsing GeoJSON FeatureCollection: %v", err)
		}
		return &document{kind: featureCollection, features: fc.Features}, nil
	case "Feature":
		f := new(geojson.Feature)
		if err := json.Unmarshal(b, f); err != nil {
			return nil, fmt.Errorf("geowave: parsing GeoJSON Feature: %v", err)
		}
		return &document{kind: singleFeature, features: []*geojson.Feature{f}}, nil
	default:
		var g geom.T
		if err := geojson.Unmarshal(b, &g); err != nil {
			return nil, fmt.Errorf("geowave: parsing GeoJSON geometry: %v", err)
		}
		return &document{kind: bareGeometry, features: []*geojson.Feature{{Geometry: g}}}, nil
	}
}

// write writes d to w in the given format, either "geojson" or "wkt".
// WKT output has one geometry per line.
func (d *document) write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "wkt":
		for _, f := range d.features {
			s, err := wkt.Marshal(f.Geometry)
			if err != nil {
				return fmt.Errorf("geowave: writing WKT: %v", err)
			}
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case "geojson", "json":
		var b []byte
		var err error
		switch d.kind {
		case bareGeometry:
			b, err = geojson.Marshal(d.features[0].Geometry)
		case singleFeature:
			b, err = json.Marshal(d.features[0])
		default:
			b, err = json.Marshal(&geojson.FeatureCollection{Features: d.features})
		}
		if err != nil {
			return fmt.Errorf("geowave: writing GeoJSON: %v", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		return fmt.Errorf("geowave: invalid output format %q; valid options are 'geojson' and 'wkt'", format)
	}
}

// openInput returns the named file, or in if name is empty.
func openInput(name string, in io.Reader) (io.ReadCloser, error) {
	if name == "" {
		return io.NopCloser(in), nil
	}
	f, err := os.Open(os.ExpandEnv(name))
	if err != nil {
		return nil, fmt.Errorf("geowave: opening input file: %v", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput creates the named file, or returns out if name is empty.
func createOutput(name string, out io.Writer) (io.WriteCloser, error) {
	if name == "" {
		return nopWriteCloser{out}, nil
	}
	f, err := os.Create(os.ExpandEnv(name))
	if err != nil {
		return nil, fmt.Errorf("geowave: creating output file: %v", err)
	}
	return f, nil
}
