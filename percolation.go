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

// backPressure pushes any layer's excess above swc_sat up into the layer
// above (or into *standingWater at layer 0), decrementing the drain
// recorded from the layer above so the net drain observed there reflects
// the push-back. Shared by the saturated and unsaturated cascades (§4.5).
func backPressure(swc []float64, swcSat []float64, drain []float64, standingWater *float64) {
	for j := len(swc) - 1; j >= 0; j-- {
		excess := swc[j] - swcSat[j]
		if excess <= 0 {
			continue
		}
		swc[j] -= excess
		if j == 0 {
			*standingWater += excess
		} else {
			drain[j-1] -= excess
			swc[j-1] += excess
		}
	}
}

// InfiltrateWaterHigh runs the saturated percolation cascade of §4.5 over
// swc in place, top to bottom then a bottom-to-top back-pressure pass,
// and returns the amount that drained out of the deepest layer.
//
// drain[i] receives the net amount observed to have moved out of layer i
// (after back-pressure adjustment); standingWater receives any excess
// pushed out of the top layer.
func InfiltrateWaterHigh(layers []*Layer, drain []float64, pptleft float64, standingWater *float64) (drainout float64) {
	n := len(layers)
	swc := make([]float64, n)
	swcSat := make([]float64, n)
	for i, l := range layers {
		swc[i] = l.SWCToday
		swcSat[i] = l.SWCSat
	}

	swc[0] += pptleft + *standingWater
	*standingWater = 0

	for i, l := range layers {
		d := max(0, l.kSatRel()*l.permeableFraction()*(swc[i]-l.SWCFieldCap))
		drain[i] = d
		swc[i] -= d
		if i+1 < n {
			swc[i+1] += d
		} else {
			drainout += d
		}
	}

	backPressure(swc, swcSat, drain, standingWater)

	for i, l := range layers {
		l.SWCToday = swc[i]
		l.DrainSaturated = drain[i]
	}
	return drainout
}

// PercolateUnsaturated runs the unsaturated-drainage cascade of §4.5 over
// swc in place, top to bottom then the shared back-pressure pass, and
// returns the amount that drained out of the deepest layer.
//
// The exponential ramp from swc_min to swc_fc reproduces the modified
// scaling of the Parton (1978) equation exactly as specified; it is not
// "restored" to the unmodified original (§9 Open Questions).
func PercolateUnsaturated(layers []*Layer, drain []float64, standingWater *float64, slowDrainCoeff, slowDrainDepth float64) (drainout float64) {
	n := len(layers)
	swc := make([]float64, n)
	swcSat := make([]float64, n)
	for i, l := range layers {
		swc[i] = l.SWCToday
		swcSat[i] = l.SWCSat
	}

	for i, l := range layers {
		avail := max(0, swc[i]-l.SWCMin)
		if avail <= 0 {
			drain[i] = 0
			continue
		}
		drainpot := drainCoeffSlow(l, swc[i], slowDrainCoeff, slowDrainDepth)
		if l.Frozen {
			drainpot *= 0.01
		}
		d := l.permeableFraction() * min(avail, max(0, drainpot))
		drain[i] += d
		swc[i] -= d
		if i+1 < n {
			swc[i+1] += d
		} else {
			drainout += d
		}
	}

	backPressure(swc, swcSat, drain, standingWater)

	for i, l := range layers {
		l.SWCToday = swc[i]
		l.DrainUnsaturated = drain[i]
	}
	return drainout
}

// drainCoeffSlow returns the unsaturated drain-rate potential before the
// frozen-layer and impermeability reductions (§4.5):
//
//	drainpot = slow_drain_coeff, further scaled by a ramp from 0 (at
//	swc_min) to 1 (at swc_fc) when swc < swc_fc.
func drainCoeffSlow(l *Layer, swc, slowDrainCoeff, slowDrainDepth float64) float64 {
	coeff := slowDrainCoeff
	if swc < l.SWCFieldCap {
		depthFactor := slowDrainDepth * l.SWCFieldCap / l.Width()
		frac := (swc - l.SWCMin) / max(1e-12, l.SWCFieldCap-l.SWCMin)
		ramp := math.Exp(depthFactor * (frac - 1))
		coeff *= ramp
	}
	return coeff
}
