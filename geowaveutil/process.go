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
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/sync/errgroup"
)

// featureJob is the unit of work for one input feature.
type featureJob struct {
	geometry   geom.T
	properties map[string]interface{}
}

func (f *featureJob) setProperty(k string, v interface{}) {
	if f.properties == nil {
		f.properties = make(map[string]interface{})
	}
	f.properties[k] = v
}

// process reads the configured input, applies fn to every feature that has
// a geometry and writes the results in input order.
func process(cmd *cobra.Command, fn func(*featureJob) error) error {
	r, err := openInput(Cfg.GetString("input"), cmd.InOrStdin())
	if err != nil {
		return err
	}
	doc, err := readDocument(r)
	r.Close()
	if err != nil {
		return err
	}
	if err := processFeatures(doc.features, Cfg.GetInt("workers"), fn); err != nil {
		return err
	}

	w, err := createOutput(Cfg.GetString("output"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := doc.write(w, Cfg.GetString("format")); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// processFeatures runs fn on up to workers features at a time and stores
// the results back into features.
func processFeatures(features []*geojson.Feature, workers int, fn func(*featureJob) error) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		i, f := i, f
		eg.Go(func() error {
			job := &featureJob{geometry: f.Geometry, properties: copyProperties(f.Properties)}
			if err := fn(job); err != nil {
				Log.WithFields(logrus.Fields{
					"feature": i,
					"id":      f.ID,
				}).WithError(err).Error("geowave: processing feature")
				return fmt.Errorf("feature %d: %w", i, err)
			}
			f.Geometry = job.geometry
			f.Properties = job.properties
			return nil
		})
	}
	return eg.Wait()
}

func copyProperties(p map[string]interface{}) map[string]interface{} {
	if p == nil {
		return nil
	}
	o := make(map[string]interface{}, len(p))
	for k, v := range p {
		o[k] = v
	}
	return o
}
