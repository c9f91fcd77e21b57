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

import "math"

// SnowParams are the global snow-model constants of §6 ("snow model").
type SnowParams struct {
	TminAccu  float64 // degrees C; below this, all ppt falls as snow
	TmaxCrit  float64 // degrees C; melt threshold for smoothed snow temp
	Lambda    float64 // smoothing factor for internal snow temperature
	RmeltMin  float64 // cm/day
	RmeltMax  float64 // cm/day
}

// Snowpack is the scalar snow state of §3. Temperature persists across
// days and, per SPEC_FULL.md §4, across years unless the site's
// reset-on-new-year flag is set -- it is a field here rather than a
// package-level static for exactly that reason (§9 Design Notes).
type Snowpack struct {
	WaterEquivalent float64 // cm, >= 0
	Temperature     float64 // internal, exponentially smoothed
}

// snowDayResult is the set of derived quantities §4.3 steps 2-3 produce.
type snowDayResult struct {
	Rain          float64
	SnowAccum     float64
	Snowmelt      float64
	SnowDepth     float64
}

// adjustSnow partitions precipitation into rain and snow, accumulates and
// melts the snowpack, and computes today's snow depth, implementing §4.3
// steps 1-3.
func (s *Site) adjustSnow(w DailyWeather) snowDayResult {
	var r snowDayResult
	if w.TAvg() <= s.Global.Snow.TminAccu {
		r.SnowAccum = w.PPT
		r.Rain = 0
	} else {
		r.Rain = w.PPT
		r.SnowAccum = 0
	}
	s.Snow.WaterEquivalent += r.SnowAccum

	rmelt := (s.Global.Snow.RmeltMax+s.Global.Snow.RmeltMin)/2 +
		math.Sin(float64(w.DOY-81)/58.09)*(s.Global.Snow.RmeltMax-s.Global.Snow.RmeltMin)/2

	s.Snow.Temperature = s.Snow.Temperature*(1-s.Global.Snow.Lambda) + w.TAvg()*s.Global.Snow.Lambda

	if s.Snow.Temperature > s.Global.Snow.TmaxCrit {
		bareCov := s.bareGroundCover()
		r.Snowmelt = math.Min(s.Snow.WaterEquivalent,
			rmelt*bareCov*((s.Snow.Temperature+w.TMax)/2-s.Global.Snow.TmaxCrit))
	}
	s.Snow.WaterEquivalent -= r.Snowmelt

	if w.SnowDensityMonthly[w.Month()] > 0 {
		r.SnowDepth = s.Snow.WaterEquivalent / w.SnowDensityMonthly[w.Month()] * 1000
	}
	return r
}
