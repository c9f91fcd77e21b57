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

// ApplyCO2ForYear computes and stores each veg type's (biomass, WUE)
// CO2 multiplier for the upcoming simulated year, per §4.9:
//
//	M_bio = c1_bio * ppm^c2_bio
//	M_wue = c1_wue * ppm^c2_wue
//
// Call once at the start of each simulated year; it re-runs each veg
// type's InterpolateDaily so the daily arrays pick up the new multipliers.
func (s *Site) ApplyCO2ForYear(ppm float64) {
	for v := range AllVegKinds {
		vt := s.Veg[v]
		vt.CO2BiomassMult = vt.cfg.CO2.BiomassC1 * math.Pow(ppm, vt.cfg.CO2.BiomassC2)
		vt.CO2WUEMult = vt.cfg.CO2.WUEC1 * math.Pow(ppm, vt.cfg.CO2.WUEC2)
		vt.InterpolateDaily()
	}
}
