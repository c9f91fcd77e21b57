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

package soilwat

// DailyWeather is the host-supplied weather input for one simulated day
// (§3 "DailyWeather", §6 "Input to daily driver"). Markov generation,
// weather-file parsing, and PET/solar-radiation formulas are out of
// scope; the host computes these values and PET/solar radiation
// externally and passes them in through AtmosphericInputs.
type DailyWeather struct {
	DOY          int // 1-366
	Year         int // >= 0
	TMin, TMax   float64
	PPT          float64 // cm

	CloudCoverMonthly         [12]float64
	WindSpeedMonthly          [12]float64
	RelativeHumidityMonthly   [12]float64
	SnowDensityMonthly        [12]float64
	RainEventsPerDayMonthly   [12]float64

	CO2PPM float64
}

// TAvg returns the simple mean of TMin and TMax, used throughout §4.3 and
// §4.8.
func (w DailyWeather) TAvg() float64 { return (w.TMin + w.TMax) / 2 }

// Month returns the 0-based calendar month (0=Jan) implied by DOY, used
// to index the monthly weather arrays. A simple 31-day approximation is
// used since the exact calendar is a host concern.
func (w DailyWeather) Month() int {
	m := (w.DOY - 1) / 31
	if m > 11 {
		m = 11
	}
	return m
}

// AtmosphericInputs are the externally-computed PET and solar radiation
// values for one day (§1 "Out of scope", §6). The host computes these;
// this core only scales and consumes them.
type AtmosphericInputs struct {
	PET            float64 // cm/day, pre pet_scale
	SolarRadiation float64 // MJ/m^2/day
}
