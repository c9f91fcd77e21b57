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

// LayerOutput is one layer's slice of the per-day output contract (§6
// "Output per day").
type LayerOutput struct {
	SWC             float64
	Temp            float64
	Frozen          bool
	DrainSaturated  float64
	DrainUnsaturated float64
	Transpiration   [NVegKinds]float64
	HydRed          [NVegKinds]float64
	BareSoilEvap    float64
	VegSoilEvap     [NVegKinds]float64
	TempMin, TempMax float64
}

// DayOutput is the full per-day output contract of §6.
type DayOutput struct {
	Year, DOY int

	Layers []LayerOutput

	AET, PET float64

	// HOh/HOt/HGh/HGt are the hydrology diagnostics named in §6: observed
	// and generated runoff/runon-style totals split by hillslope-level
	// (H_oh, H_ot) and ground-level (H_gh, H_gt) accounting.
	HOh, HOt, HGh, HGt float64

	SnowDepth, Snowpack   float64
	StandingWater         float64
	Runoff, Runon         float64
	SnowRunoff, SnowLoss  float64
	SurfaceTemp           float64
	LitterEvap            float64
	PondEvap              float64
	InterceptedEvap       [NVegKinds]float64
}
