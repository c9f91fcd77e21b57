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

// rootFraction approximates a layer's share of a veg type's root system
// within the pair being considered, scaled by layer width and truncated
// to the source layer's width, per §4.7 step 2. A uniform-by-width
// approximation is used since root-profile parameters are outside this
// core's per-layer data model (§3 "Layer" carries transp_coeff, not a
// separate rooting-depth curve).
func rootFraction(l *Layer, v VegKind, srcWidth float64) float64 {
	w := min(l.Width(), srcWidth)
	return l.TranspCoeff(v) * w / l.Width()
}

// HydraulicRedistribution applies §4.7/§4.8's bidirectional hydraulic
// redistribution for one veg type on one day, mutating each layer's
// SWCToday and returning the per-layer net hydred[v][i] already scaled by
// cover, or a *HydRedInfeasible error if the iterative feasibility pass
// cannot keep every layer at or above its floor within len(layers)
// iterations.
func HydraulicRedistribution(layers []*Layer, v *VegType, year, doy int) ([]float64, error) {
	n := len(layers)
	if !v.cfg.HydRed.Enabled || n < 2 {
		return make([]float64, n), nil
	}

	swp := make([]float64, n)
	relCond := make([]float64, n)
	swa := make([]float64, n)
	for i, l := range layers {
		p, err := SWCtoSWP(l.SWCToday, l.Width(), l.cfg.GravelVolFraction, l.cfg.SWRC)
		if err != nil {
			return nil, err
		}
		swp[i] = p
		ratio := p / v.cfg.HydRed.SWP50
		relCond[i] = 1 / (1 + math.Pow(max(ratio, 0), v.cfg.HydRed.ShapeCond))
		relCond[i] = max(0, min(1, relCond[i]))
		floor := min(l.SWCWiltPt, l.SWCCritSWP[v.Kind])
		swa[i] = max(0, l.SWCToday-floor)
	}

	hd := make([][]float64, n)
	for i := range hd {
		hd[i] = make([]float64, n)
	}

	for i := 1; i < n; i++ {
		for j := i + 1; j < n; j++ {
			li, lj := layers[i], layers[j]
			if li.Frozen || lj.Frozen {
				continue
			}
			if swa[i] <= 0 && swa[j] <= 0 {
				continue
			}
			cSrc := rootFraction(li, v.Kind, li.Width())
			cRecip := rootFraction(lj, v.Kind, li.Width())
			if cSrc >= 1 {
				continue // avoid division by zero in (1 - c_src)
			}
			potential := (10.0 / 24.0) * v.cfg.HydRed.MaxCondRoot * (swp[j] - swp[i]) *
				max(relCond[i], relCond[j]) * cSrc * cRecip / (1 - cSrc)

			var srcIdx int
			if potential > 0 {
				srcIdx = i // i has the lower SWP (wetter), so water moves from i to j
			} else {
				srcIdx = j
			}
			limit := swa[srcIdx]
			if math.Abs(potential) > limit {
				if potential > 0 {
					potential = limit
				} else {
					potential = -limit
				}
			}
			// Negative entries are outflow: the source loses, the recipient gains.
			hd[i][j] = -potential
			hd[j][i] = potential
		}
	}

	for iter := 0; iter < n; iter++ {
		changed := false
		for i := 1; i < n; i++ {
			var hdout, hdin float64
			for j := range hd[i] {
				if hd[i][j] < 0 {
					hdout -= hd[i][j]
				} else {
					hdin += hd[i][j]
				}
			}
			hdnet := hdin - hdout
			if hdnet < 0 && -hdnet > swa[i] && hdout > 0 {
				scale := (swa[i] + hdin) / hdout
				if scale < 0 {
					scale = 0
				}
				for j := range hd[i] {
					if hd[i][j] < 0 {
						hd[i][j] *= scale
						hd[j][i] = -hd[i][j]
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
		// Re-derive net balances once more; if still infeasible after the
		// bounded pass, the caller reports HydRedInfeasible below.
	}

	for i := 1; i < n; i++ {
		var hdnet float64
		for j := range hd[i] {
			hdnet += hd[i][j]
		}
		if hdnet < 0 && -hdnet > swa[i]+1e-9 {
			return nil, &HydRedInfeasible{Veg: v.Kind, LayerID: layers[i].ID(), Year: year, DOY: doy}
		}
	}

	hydred := make([]float64, n)
	for i, l := range layers {
		var net float64
		for j := range hd[i] {
			net += hd[i][j]
		}
		hydred[i] = net * v.Cover()
		l.SWCToday += hydred[i]
		if l.SWCToday < l.SWCMin {
			l.SWCToday = l.SWCMin
		}
	}
	return hydred, nil
}
