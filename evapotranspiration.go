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

// Watrate is a Parton (1978) logistic tangens curve on (shift - swp),
// piecewise-scaled by petday, clamped to [0, 1] (§4.6).
func Watrate(swp, petday, shift, shape, inflec, rng float64) float64 {
	x := shift - swp
	rate := inflec + rng/math.Pi*math.Atan(shape*x)
	if petday < 0.2 {
		rate *= petday / 0.2
	}
	return max(0, min(1, rate))
}

// ESTPartitioning splits potential ET into bare-soil-evaporation and
// transpiration fractions, per §4.6:
//
//	fbse = min(exp(-lai_param*LAI_live), 0.995); fbst = 1 - fbse
func ESTPartitioning(laiLive, laiParam float64) (fbse, fbst float64) {
	fbse = min(math.Exp(-laiParam*laiLive), 0.995)
	fbst = 1 - fbse
	return
}

// avgSWPOverLayers returns the coefficient-weighted average SWP across a
// set of layer indices, or (0, false) if every coefficient is zero.
func avgSWPOverLayers(layers []*Layer, indices []int, coeff func(*Layer) float64) (float64, bool) {
	var num, den float64
	for _, i := range indices {
		l := layers[i]
		c := coeff(l)
		if c <= 0 {
			continue
		}
		swp, err := SWCtoSWP(l.SWCToday, l.Width(), l.cfg.GravelVolFraction, l.cfg.SWRC)
		if err != nil {
			swp = 0
		}
		num += c * swp
		den += c
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// PotSoilEvap computes potential bare-soil evaporation on the vegetated
// path, which applies a litter/biomass cutoff (§4.6, SPEC_FULL.md §4):
// if total above-ground biomass >= Es_param_limit or the evap-weighted
// average SWP is ~0, the rate is 0.
func PotSoilEvap(layers []*Layer, petday, esParamLimit, totagb, fbse float64, shift, shape, inflec, rng float64) float64 {
	if totagb >= esParamLimit {
		return 0
	}
	idx := make([]int, len(layers))
	for i := range layers {
		idx[i] = i
	}
	avgSWP, ok := avgSWPOverLayers(layers, idx, func(l *Layer) float64 { return l.EvapCoeff() })
	if !ok || avgSWP <= 1e-12 {
		return 0
	}
	rate := petday * Watrate(avgSWP, petday, shift, shape, inflec, rng) * (1 - totagb/esParamLimit) * fbse
	return max(0, rate)
}

// PotSoilEvapBareGround computes potential bare-soil evaporation on the
// bare-cover path (§4.3 step 13): no litter/biomass cutoff, scaled by
// bare-ground cover directly.
func PotSoilEvapBareGround(layers []*Layer, petday float64, shift, shape, inflec, rng float64, bareCover float64) float64 {
	idx := make([]int, len(layers))
	for i := range layers {
		idx[i] = i
	}
	avgSWP, ok := avgSWPOverLayers(layers, idx, func(l *Layer) float64 { return l.EvapCoeff() })
	if !ok {
		return 0
	}
	rate := petday * Watrate(avgSWP, petday, shift, shape, inflec, rng) * bareCover
	return max(0, rate)
}

// TranspWeightedAvg computes, for each transpiration region, the
// coefficient-weighted average SWP, and returns the minimum across
// regions. SWP is a positive magnitude, so this is the wettest region's
// average (§4.6).
func TranspWeightedAvg(layers []*Layer, regions TranspRegions, v VegKind) (float64, bool) {
	best := math.Inf(1)
	found := false
	for region := 1; region <= regions.NumRegions(); region++ {
		idx := regions.layersInRegion(region)
		avg, ok := avgSWPOverLayers(layers, idx, func(l *Layer) float64 { return l.TranspCoeff(v) })
		if !ok {
			continue
		}
		found = true
		if avg < best {
			best = avg
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// PotTranspParams bundles the per-call inputs to PotTranspiration beyond
// the veg type's own stored parameters, keeping the function signature
// manageable (§4.6).
type PotTranspParams struct {
	PETDay               float64
	BioLive, BioDead      float64
	Shift, Shape, Inflec, Range float64
}

// PotTranspiration computes potential transpiration for one veg type on
// one day, per §4.6's pot_transp:
//
//	rate = watrate(swp_avg, petday, ...) * shadeaf * petday * fbst * co2_wue_mult
//
// returning 0 when live biomass is non-positive.
func (v *VegType) PotTranspiration(layers []*Layer, regions TranspRegions, p PotTranspParams, fbst float64) float64 {
	if p.BioLive <= 0 {
		return 0
	}
	swpAvg, ok := TranspWeightedAvg(layers, regions, v.Kind)
	if !ok {
		return 0
	}
	shade := v.shadeFactor(p.BioLive, p.BioDead)
	wr := Watrate(swpAvg, p.PETDay, p.Shift, p.Shape, p.Inflec, p.Range)
	mult := v.CO2WUEMult
	if mult == 0 {
		mult = 1
	}
	return max(0, wr*shade*p.PETDay*fbst*mult)
}
