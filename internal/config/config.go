/*
Copyright © 2014-2026 the SOILWAT2-sub002 authors.
This file is part of SOILWAT2-sub002.

SOILWAT2-sub002 is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SOILWAT2-sub002 is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SOILWAT2-sub002.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package config reads a run's TOML configuration file into the types the
// soilwat core and its CLI driver need.
package config

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	soilwat "github.com/DrylandEcology/SOILWAT2-sub002"
)

// RunConfig holds everything one soilwat run needs: the site definition
// the core consumes directly, plus the CLI-level concerns (input/output
// paths, logging, the simulated year range) that sit outside the core's
// scope.
type RunConfig struct {
	Site soilwat.SiteConfig `toml:"-"`

	// Global, Regions, Layers and Veg mirror soilwat.SiteConfig's shape
	// with TOML-friendly field names; LoadFile decodes into them, then
	// translates them into Site.
	Global  soilwat.GlobalParams              `toml:"Global"`
	Regions soilwat.TranspRegions             `toml:"Regions"`
	Layers  []soilwat.LayerConfig             `toml:"Layers"`
	Veg     map[string]soilwat.VegTypeConfig  `toml:"Veg"`

	StartYear int                `toml:"StartYear"`
	EndYear   int                `toml:"EndYear"`
	CO2PPM    map[string]float64 `toml:"CO2PPMByYear"`

	WeatherMonthly WeatherMonthly `toml:"WeatherMonthly"`

	WeatherFile string `toml:"WeatherFile"`
	OutputFile  string `toml:"OutputFile"`
	LogLevel    string `toml:"LogLevel"`
}

// WeatherMonthly holds the twelve-slot monthly tables a run's weather file
// doesn't repeat on every row (§3 "DailyWeather"): cloud cover, wind speed,
// relative humidity, snow density, and rain-events-per-day.
type WeatherMonthly struct {
	CloudCover        [12]float64 `toml:"CloudCover"`
	WindSpeed         [12]float64 `toml:"WindSpeed"`
	RelativeHumidity  [12]float64 `toml:"RelativeHumidity"`
	SnowDensity       [12]float64 `toml:"SnowDensity"`
	RainEventsPerDay  [12]float64 `toml:"RainEventsPerDay"`
}

// vegKeys maps the TOML veg-type table names onto soilwat.VegKind's fixed
// iteration order (§5 determinism: the core never ranges over a map).
var vegKeys = [soilwat.NVegKinds]string{"Trees", "Shrubs", "Forbs", "Grasses"}

// LoadFile reads and validates filename, expanding environment variables
// in every path field the way the teacher's config loader does, and
// layering in an environment-variable override of the LogLevel setting
// via viper (§6 "Input to site loader").
func LoadFile(filename string) (*RunConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("soilwat: the configuration file %q does not appear to exist: %v", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	raw, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("soilwat: problem reading configuration file: %v", err)
	}

	rc := new(RunConfig)
	if _, err := toml.Decode(string(raw), rc); err != nil {
		return nil, fmt.Errorf("soilwat: error parsing configuration file: %v", err)
	}

	rc.WeatherFile = os.ExpandEnv(rc.WeatherFile)
	rc.OutputFile = os.ExpandEnv(rc.OutputFile)

	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("toml")
	v.SetDefault("LogLevel", "info")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("soilwat: error re-reading configuration for overrides: %v", err)
	}
	if lvl := v.GetString("LogLevel"); lvl != "" {
		rc.LogLevel = cast.ToString(lvl)
	}
	if rc.OutputFile != "" {
		if outdir := filepath.Dir(rc.OutputFile); outdir != "." {
			if _, err := os.Stat(outdir); err != nil {
				return nil, fmt.Errorf("soilwat: the OutputFile directory %q doesn't exist: %v", outdir, err)
			}
		}
	}

	var veg [soilwat.NVegKinds]soilwat.VegTypeConfig
	for i, key := range vegKeys {
		cfg, ok := rc.Veg[key]
		if !ok {
			return nil, fmt.Errorf("soilwat: configuration is missing [Veg.%s]", key)
		}
		veg[i] = cfg
	}

	co2 := make(map[int]float64, len(rc.CO2PPM))
	for yearStr, ppm := range rc.CO2PPM {
		year, err := cast.ToIntE(yearStr)
		if err != nil {
			return nil, fmt.Errorf("soilwat: CO2PPMByYear key %q is not a year: %v", yearStr, err)
		}
		co2[year] = ppm
	}

	rc.Site = soilwat.SiteConfig{
		Layers:  rc.Layers,
		Regions: rc.Regions,
		Veg:     veg,
		Global:  rc.Global,
	}
	return rc, nil
}

// CO2ForYear returns the configured atmospheric CO2 concentration for
// year, falling back to 350ppm (pre-industrial-plus baseline) when the
// run's configuration doesn't name that year explicitly.
func (rc *RunConfig) CO2ForYear(year int) float64 {
	co2 := make(map[int]float64, len(rc.CO2PPM))
	for yearStr, ppm := range rc.CO2PPM {
		if y, err := cast.ToIntE(yearStr); err == nil {
			co2[y] = ppm
		}
	}
	if ppm, ok := co2[year]; ok {
		return ppm
	}
	return 350
}
