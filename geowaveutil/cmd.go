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

// Package geowaveutil holds the command-line interface for geowave.
package geowaveutil

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cj2001/geowave"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to geowave.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the minimum level of log messages written to
              standard error. Valid options are 'debug', 'info', 'warn' and 'error'.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "crs",
			usage: `
              crs is the coordinate reference system of the input geometries.
              It can be the name of a catalog entry (built-in entries are
              EPSG:4326, WGS84, CRS:84 and sphere) or a PROJ4 or WKT definition.`,
			defaultVal: "EPSG:4326",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags(), degreesCmd.Flags()},
		},
		{
			name: "catalog",
			usage: `
              catalog is the path to a TOML file of additional named coordinate
              reference systems. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags(), degreesCmd.Flags()},
		},
		{
			name: "zmin",
			usage: `
              zmin is the lower bound of the elevation axis. The elevation axis
              is only used if zmax is greater than zmin.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags()},
		},
		{
			name: "zmax",
			usage: `
              zmax is the upper bound of the elevation axis.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags()},
		},
		{
			name: "unit",
			usage: `
              unit is the unit that the buffer distance is given in, for example
              'm', 'km', 'mi', 'ft' or 'nmi'. Run 'geowave units' for the full list.
              Unrecognized units are treated as meters.`,
			shorthand:  "u",
			defaultVal: "m",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), degreesCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is the buffer distance in the units given by --unit.`,
			shorthand:  "d",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), degreesCmd.Flags()},
		},
		{
			name: "quadsegs",
			usage: `
              quadsegs is the number of line segments used to approximate a
              quarter circle in the buffer outline.`,
			defaultVal: geowave.DefaultQuadrantSegments,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "input",
			usage: `
              input is the path to a file holding a WKT geometry or a GeoJSON
              geometry, Feature or FeatureCollection. If it is empty, input is
              read from standard input. It can include environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags(), degreesCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path where results should be written. If it is
              empty, results are written to standard output. It can include
              environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags()},
		},
		{
			name: "format",
			usage: `
              format is the output format. Valid options are 'geojson' and 'wkt'.`,
			defaultVal: "geojson",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the maximum number of features processed at once.
              Values less than 1 mean one worker per processor.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags(), normalizeCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOWAVE")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(bufferCmd)
	Root.AddCommand(normalizeCmd)
	Root.AddCommand(degreesCmd)
	Root.AddCommand(unitsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geowave: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geowave",
	Short: "Geodesic-aware geometry buffering.",
	Long: `geowave buffers geometries in geographic coordinate systems by physical
distances and wraps the resulting coordinates back into the valid range of
each axis, for example across the antimeridian.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOWAVE_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLog(cmd.ErrOrStderr(), Cfg.GetString("loglevel"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of geowave.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "geowave v%s\n", geowave.Version)
	},
	DisableAutoGenTag: true,
}

// bufferCmd buffers geometries by a distance.
var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Buffer geometries by a physical distance.",
	Long: `buffer reads geometries from --input, expands them by --distance
in --unit and writes the normalized result to --output. When the input is a
GeoJSON Feature or FeatureCollection, each output feature gets a
'bufferDegrees' property holding the buffer radius that was used, in
coordinate units.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		crs, err := loadCRS()
		if err != nil {
			return err
		}
		c := &geowave.Calculator{
			Kernel: geowave.UnionKernel{QuadrantSegments: Cfg.GetInt("quadsegs")},
			Log:    Log,
		}
		return process(cmd, func(f *featureJob) error {
			r, err := c.Buffer(crs, f.geometry, Cfg.GetString("unit"), Cfg.GetFloat64("distance"))
			if err != nil {
				return err
			}
			f.geometry = r.Geometry
			f.setProperty("bufferDegrees", r.Degrees)
			return nil
		})
	},
	DisableAutoGenTag: true,
}

// normalizeCmd wraps coordinates into their axis ranges.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Wrap coordinates into the valid range of each axis.",
	Long: `normalize reads geometries from --input, wraps every coordinate into the
range of the corresponding axis of --crs and writes the result to --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		crs, err := loadCRS()
		if err != nil {
			return err
		}
		c := &geowave.Calculator{Log: Log}
		return process(cmd, func(f *featureJob) error {
			g, err := c.Normalize(crs, f.geometry)
			if err != nil {
				return err
			}
			f.geometry = g
			return nil
		})
	},
	DisableAutoGenTag: true,
}

// degreesCmd prints the distance in coordinate units.
var degreesCmd = &cobra.Command{
	Use:   "degrees",
	Short: "Convert a distance to coordinate units.",
	Long: `degrees prints, for each geometry in --input, the number of coordinate units
(typically degrees) that correspond to --distance in --unit at the
geometry's location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		crs, err := loadCRS()
		if err != nil {
			return err
		}
		r, err := openInput(Cfg.GetString("input"), cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer r.Close()
		doc, err := readDocument(r)
		if err != nil {
			return err
		}
		meters := Cfg.GetFloat64("distance") * geowave.MetersPerUnit(Cfg.GetString("unit"), Log)
		for _, f := range doc.features {
			if f.Geometry == nil {
				continue
			}
			d, err := geowave.MetersToDegrees(crs, f.Geometry, meters)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", d)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// unitsCmd lists the recognized distance units.
var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List recognized distance units.",
	Long:  "units lists the recognized distance unit names and their length in meters.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMETERS")
		for _, u := range geowave.Units() {
			fmt.Fprintf(w, "%s\t%s\n", u.Name, cast.ToString(u.Meters))
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

// loadCRS returns the coordinate reference system named in the
// configuration.
func loadCRS() (*geowave.CRS, error) {
	cat := geowave.DefaultCatalog()
	if path := Cfg.GetString("catalog"); path != "" {
		f, err := os.Open(os.ExpandEnv(path))
		if err != nil {
			return nil, fmt.Errorf("geowave: opening CRS catalog: %v", err)
		}
		defer f.Close()
		if cat, err = geowave.LoadCatalog(f); err != nil {
			return nil, err
		}
	}
	crs, err := cat.Lookup(Cfg.GetString("crs"))
	if err != nil {
		return nil, err
	}
	zmin, err := cast.ToFloat64E(Cfg.Get("zmin"))
	if err != nil {
		return nil, fmt.Errorf("geowave: reading 'zmin': %v", err)
	}
	zmax, err := cast.ToFloat64E(Cfg.Get("zmax"))
	if err != nil {
		return nil, fmt.Errorf("geowave: reading 'zmax': %v", err)
	}
	if zmax > zmin {
		crs = crs.WithElevation(zmin, zmax)
	}
	return crs, nil
}
