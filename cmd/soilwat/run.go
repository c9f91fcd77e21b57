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

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	soilwat "github.com/DrylandEcology/SOILWAT2-sub002"
	"github.com/DrylandEcology/SOILWAT2-sub002/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation over a weather series.",
	Long: `run steps a soil column forward one day at a time using the site
defined in the configuration file and a weather series read from
WeatherFile (CSV columns: Year,DOY,TMin,TMax,PPT,PET,SolarRadiation),
writing per-day output to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation()
	},
}

// runSimulation drives a Site through every day of the configured weather
// series, applying the CO2 multiplier and the new-year reset policy once
// per simulated year.
func runSimulation() error {
	site, err := soilwat.NewSite(Config.Site)
	if err != nil {
		return fmt.Errorf("soilwat: building site: %v", err)
	}
	site.Logger = Log

	rows, err := readWeatherFile(Config.WeatherFile, Config.WeatherMonthly)
	if err != nil {
		return fmt.Errorf("soilwat: reading weather file: %v", err)
	}

	out, err := os.Create(Config.OutputFile)
	if err != nil {
		return fmt.Errorf("soilwat: creating output file: %v", err)
	}
	defer out.Close()
	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"Year", "DOY", "AET", "PET", "Snowpack", "StandingWater", "Runoff"}); err != nil {
		return err
	}

	lastYear := -1
	for _, row := range rows {
		if row.weather.Year != lastYear {
			site.ResetYear()
			site.ApplyCO2ForYear(Config.CO2ForYear(row.weather.Year))
			lastYear = row.weather.Year
		}

		day, err := site.StepDay(row.weather, row.atmos, nil)
		if err != nil {
			return fmt.Errorf("soilwat: year %d day %d: %v", row.weather.Year, row.weather.DOY, err)
		}

		if werr := w.Write([]string{
			strconv.Itoa(day.Year),
			strconv.Itoa(day.DOY),
			strconv.FormatFloat(day.AET, 'g', -1, 64),
			strconv.FormatFloat(day.PET, 'g', -1, 64),
			strconv.FormatFloat(day.Snowpack, 'g', -1, 64),
			strconv.FormatFloat(day.StandingWater, 'g', -1, 64),
			strconv.FormatFloat(day.Runoff, 'g', -1, 64),
		}); werr != nil {
			return werr
		}
	}
	return nil
}

// weatherRow bundles one day's DailyWeather and AtmosphericInputs, built
// from one CSV row plus the run's shared monthly tables.
type weatherRow struct {
	weather soilwat.DailyWeather
	atmos   soilwat.AtmosphericInputs
}

// readWeatherFile parses a weather CSV. Weather-file parsing is explicitly
// out of scope for the simulation core itself (the core consumes
// DailyWeather values directly); this is the CLI harness's minimal on-ramp
// and uses only encoding/csv.
func readWeatherFile(path string, m config.WeatherMonthly) ([]weatherRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}

	var rows []weatherRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		year, _ := strconv.Atoi(rec[col["Year"]])
		doy, _ := strconv.Atoi(rec[col["DOY"]])
		tmin, _ := strconv.ParseFloat(rec[col["TMin"]], 64)
		tmax, _ := strconv.ParseFloat(rec[col["TMax"]], 64)
		ppt, _ := strconv.ParseFloat(rec[col["PPT"]], 64)
		pet, _ := strconv.ParseFloat(rec[col["PET"]], 64)
		solar, _ := strconv.ParseFloat(rec[col["SolarRadiation"]], 64)

		rows = append(rows, weatherRow{
			weather: soilwat.DailyWeather{
				Year: year, DOY: doy, TMin: tmin, TMax: tmax, PPT: ppt,
				CloudCoverMonthly:       m.CloudCover,
				WindSpeedMonthly:        m.WindSpeed,
				RelativeHumidityMonthly: m.RelativeHumidity,
				SnowDensityMonthly:      m.SnowDensity,
				RainEventsPerDayMonthly: m.RainEventsPerDay,
			},
			atmos: soilwat.AtmosphericInputs{PET: pet, SolarRadiation: solar},
		})
	}
	return rows, nil
}
