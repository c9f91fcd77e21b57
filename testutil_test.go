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

import "testing"

// newTestSiteConfig builds a minimal, valid three-layer, single-veg-type
// (grasses, full cover) SiteConfig usable across this package's tests.
func newTestSiteConfig() SiteConfig {
	layers := []LayerConfig{
		{ID: 0, Width: 20, Sand: 0.4, Clay: 0.2, EvapCoeff: 0.4,
			TranspCoeff:            [NVegKinds]float64{Grasses: 0.5},
			EstimateFromTexturePTF: PTFCosby1984},
		{ID: 1, Width: 20, Sand: 0.4, Clay: 0.2, EvapCoeff: 0.35,
			TranspCoeff:            [NVegKinds]float64{Grasses: 0.3},
			EstimateFromTexturePTF: PTFCosby1984},
		{ID: 2, Width: 20, Sand: 0.4, Clay: 0.2, EvapCoeff: 0.25,
			TranspCoeff:            [NVegKinds]float64{Grasses: 0.2},
			EstimateFromTexturePTF: PTFCosby1984},
	}

	var veg [NVegKinds]VegTypeConfig
	veg[Grasses] = VegTypeConfig{
		Cover:              1,
		MonthlyLitter:      [12]float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
		MonthlyBiomass:     [12]float64{50, 50, 60, 80, 120, 150, 150, 130, 100, 70, 55, 50},
		MonthlyPctLive:     [12]float64{20, 20, 30, 50, 70, 80, 70, 50, 30, 20, 20, 20},
		MonthlyLAIConv:     [12]float64{0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02},
		CanopyHeightConstant: 15,
		CanopyKSmax:        0.02,
		CanopyKDead:        0.01,
		LitterKSmax:        0.01,
		ESTPartitionParam:  3.0,
		BareSoilECutoff:    4.5,
		ShadeDeadMax:       150,
		ShadeTangentA:      1,
		ShadeTangentB:      0.01,
		HydRed: HydRedParams{
			Enabled:     true,
			MaxCondRoot: 0.0001,
			SWP50:       2.0,
			ShapeCond:   2.0,
		},
		CriticalSWP: 20,
		CO2: CO2Coeffs{BiomassC1: 1, BiomassC2: 0, WUEC1: 1, WUEC2: 0},
	}

	return SiteConfig{
		Layers:  layers,
		Regions: TranspRegions{LowerBoundLayer: []int{2}},
		Veg:     veg,
		Global: GlobalParams{
			Snow: SnowParams{TminAccu: -2, TmaxCrit: 1, Lambda: 0.3, RmeltMin: 1, RmeltMax: 3},
			PctRunoff:        0.1,
			PctRunon:         0,
			PETScale:         1,
			SlowDrainCoeff:   0.02,
			SlowDrainDepth:   60,
			TempGrid:         TempGridParams{DX: 15, Zmax: 180},
			BiomassLimiter:   300,
			T1Param1:         15,
			T1Param2:         -4,
			T1Param3:         600,
			CSParam1:         0.0007,
			CSParam2:         0.0003,
			SHParam:          0.18,
			TsoilConstant:    8,
			SnowLossFraction: 0.5,
			PctSnowRunoff:    10,
		},
	}
}

func newTestSite(t *testing.T) *Site {
	t.Helper()
	s, err := NewSite(newTestSiteConfig())
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	return s
}

func testDay(year, doy int, tmin, tmax, ppt float64) DailyWeather {
	return DailyWeather{
		Year: year, DOY: doy, TMin: tmin, TMax: tmax, PPT: ppt,
		RainEventsPerDayMonthly: [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		SnowDensityMonthly:      [12]float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100},
		CO2PPM:                  400,
	}
}
