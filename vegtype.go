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

// DaysPerYear is the fixed slot count for interpolated daily arrays,
// wide enough to cover a leap year.
const DaysPerYear = 366

// HydRedParams holds the per-veg-type hydraulic redistribution parameters
// of §4.7.
type HydRedParams struct {
	Enabled      bool
	MaxCondRoot  float64
	SWP50        float64
	ShapeCond    float64
}

// CO2Coeffs holds the per-veg-type CO2 biomass and WUE multiplier
// coefficients of §4.9: M = C1 * ppm^C2.
type CO2Coeffs struct {
	BiomassC1, BiomassC2 float64
	WUEC1, WUEC2         float64
}

// VegTypeConfig is the caller-supplied, load-time description of one
// vegetation type (§3 "VegType", §6 "Input to vegetation").
type VegTypeConfig struct {
	Cover  float64 // [0, 1]
	Albedo float64 // [0, 1]

	MonthlyLitter      [12]float64
	MonthlyBiomass     [12]float64
	MonthlyPctLive     [12]float64
	MonthlyLAIConv     [12]float64

	CanopyHeightConstant float64 // if > 0, use as a flat daily canopy height
	CanopyTangentA       float64 // else interpolate via a tangent function of these params
	CanopyTangentB       float64

	CanopyKSmax, CanopyKDead float64
	LitterKSmax              float64

	ESTPartitionParam float64 // lai_param in EsT_partitioning
	BareSoilECutoff   float64 // Es_param_limit in pot_soil_evap
	ShadeDeadMax      float64
	ShadeTangentA     float64
	ShadeTangentB     float64

	HydRed HydRedParams

	CriticalSWP float64 // bar; initial per-veg critical SWP before §4.2 step 7 adjustment

	CO2 CO2Coeffs
}

// VegType is the derived, runtime state of one vegetation type.
type VegType struct {
	Kind VegKind
	cfg  VegTypeConfig

	DailyLitter  [DaysPerYear]float64
	DailyBiomass [DaysPerYear]float64
	DailyPctLive [DaysPerYear]float64
	DailyLAI     [DaysPerYear]float64
	DailyHeight  [DaysPerYear]float64

	// Canopy/litter storage carries across days (§3 "Lifecycles").
	CanopyStorage float64 // s_veg
	LitterStorage float64 // s_lit

	// CO2BiomassMult and CO2WUEMult are this simulated year's (biomass,
	// WUE) multiplier pair, recomputed once per year by Site.ApplyCO2ForYear.
	CO2BiomassMult float64
	CO2WUEMult     float64
}

// Cover returns the veg type's ground-cover fraction.
func (v *VegType) Cover() float64 { return v.cfg.Cover }

// CanopyKSmax, CanopyKDead, LitterKSmax expose interception parameters.
func (v *VegType) CanopyKSmax() float64 { return v.cfg.CanopyKSmax }
func (v *VegType) CanopyKDead() float64 { return v.cfg.CanopyKDead }
func (v *VegType) LitterKSmax() float64 { return v.cfg.LitterKSmax }

// interpolateMonthlyToDaily linearly interpolates a 12-slot monthly array
// (values assigned to the 15th of each month) onto a 366-slot daily array.
func interpolateMonthlyToDaily(monthly [12]float64) [DaysPerYear]float64 {
	var out [DaysPerYear]float64
	// Mid-month day-of-year anchors for a 366-day template; month i's
	// value is anchored at day anchors[i].
	anchors := [12]float64{15, 45, 74, 105, 135, 166, 196, 227, 258, 288, 319, 349}
	for doy := 1; doy <= DaysPerYear; doy++ {
		d := float64(doy)
		// Find bracketing anchors, wrapping around the year boundary.
		lo, hi := 11, 0
		for i := 0; i < 12; i++ {
			if anchors[i] <= d {
				lo = i
			}
		}
		hi = (lo + 1) % 12
		loAnchor := anchors[lo]
		hiAnchor := anchors[hi]
		if d < anchors[0] {
			loAnchor -= 366
		} else if hi == 0 {
			hiAnchor += 366
		}
		frac := 0.0
		if hiAnchor != loAnchor {
			frac = (d - loAnchor) / (hiAnchor - loAnchor)
		}
		out[doy-1] = monthly[lo] + frac*(monthly[hi]-monthly[lo])
	}
	return out
}

// InterpolateDaily fills the veg type's daily arrays from its monthly
// inputs, applying the CO2 biomass multiplier for this simulated year per
// §4.9: trees apply the multiplier to pct-live, the other three types
// apply it to the biomass series directly (SPEC_FULL.md §4).
func (v *VegType) InterpolateDaily() {
	v.DailyLitter = interpolateMonthlyToDaily(v.cfg.MonthlyLitter)
	v.DailyBiomass = interpolateMonthlyToDaily(v.cfg.MonthlyBiomass)
	v.DailyPctLive = interpolateMonthlyToDaily(v.cfg.MonthlyPctLive)
	laiConv := interpolateMonthlyToDaily(v.cfg.MonthlyLAIConv)

	mult := v.CO2BiomassMult
	if mult == 0 {
		mult = 1
	}
	for i := range v.DailyBiomass {
		if v.Kind == Trees {
			v.DailyPctLive[i] *= mult
		} else {
			v.DailyBiomass[i] *= mult
		}
		v.DailyLAI[i] = v.DailyBiomass[i] * v.DailyPctLive[i] / 100 * laiConv[i]
	}
	for doy := 1; doy <= DaysPerYear; doy++ {
		v.DailyHeight[doy-1] = v.canopyHeight(doy)
	}
}

// canopyHeight returns today's canopy height (cm): either the constant
// option, or a tangent-function interpolation of LAI, per §3.
func (v *VegType) canopyHeight(doy int) float64 {
	if v.cfg.CanopyHeightConstant > 0 {
		return v.cfg.CanopyHeightConstant
	}
	lai := v.DailyLAI[doy-1]
	return v.cfg.CanopyTangentA * math.Atan(v.cfg.CanopyTangentB*lai)
}

// shadeFactor computes the shading adjustment used by pot_transp (§4.6):
// a tangens function of live/dead biomass when dead biomass exceeds the
// configured threshold, else 1.
func (v *VegType) shadeFactor(biolive, biodead float64) float64 {
	if biodead < v.cfg.ShadeDeadMax {
		return 1
	}
	return v.cfg.ShadeTangentA * math.Atan(v.cfg.ShadeTangentB*(biolive/biodead))
}
