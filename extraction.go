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

// RemoveFromSoil withdraws a single total rate from a set of layers,
// weighted by coeff[i]/SWP[i] (saturated layers are treated as being at
// field capacity to avoid a singularity), honoring each layer's floor and
// frozen state, and returns the total amount actually removed (§4.7).
//
// coeff supplies the per-layer coefficient (evap or transpiration);
// floor supplies the per-layer SWC floor below which extraction must not
// push a layer. perLayer, if non-nil, receives each layer's share of the
// amount removed (len(perLayer) must equal len(layers)).
func RemoveFromSoil(layers []*Layer, coeff func(*Layer) float64, rate float64, floor func(*Layer) float64, perLayer []float64) (removed float64) {
	n := len(layers)
	swpfrac := make([]float64, n)
	var sumswp float64
	for i, l := range layers {
		c := coeff(l)
		if c <= 0 {
			continue
		}
		swp, err := SWCtoSWP(l.SWCToday, l.Width(), l.cfg.GravelVolFraction, l.cfg.SWRC)
		if err != nil || swp <= 0 {
			swpfrac[i] = c / 0.333
		} else {
			swpfrac[i] = c / swp
		}
		sumswp += swpfrac[i]
	}
	if sumswp == 0 {
		return 0
	}

	for i, l := range layers {
		if l.Frozen || swpfrac[i] == 0 {
			continue
		}
		q := (swpfrac[i] / sumswp) * rate
		avail := max(0, l.SWCToday-floor(l))
		d := min(q, avail)
		l.SWCToday -= d
		removed += d
		if perLayer != nil {
			perLayer[i] += d
		}
	}
	return removed
}
