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

// interceptCanopy implements §4.4's canopy-interception contract for one
// veg type on one day: it consumes from *remaining, adds to *intercepted,
// and updates *storage, observing the pre/postconditions of §4.4.
//
//	D = m * kSmax * log10(1 + LAI) / 10
func interceptCanopy(remaining, intercepted, storage *float64, lai, kSmax, scale, eventsPerDay float64) {
	if lai <= 0 || *remaining <= 0 || scale <= 0 {
		return
	}
	d := eventsPerDay * kSmax * math.Log10(1+lai) / 10
	avail := max(0, d-*storage/scale)
	amount := scale * min(*remaining, avail)
	*storage += amount
	*intercepted += amount
	*remaining -= amount
}

// interceptLitter implements §4.4's litter-interception contract,
// analogous to interceptCanopy but keyed on litter biomass density
// rather than LAI. Only called when snowpack is zero (§4.3 step 7).
func interceptLitter(remaining, intercepted, storage *float64, litterBiomass, kSmax, scale, eventsPerDay float64) {
	if litterBiomass <= 0 || *remaining <= 0 || scale <= 0 {
		return
	}
	d := eventsPerDay * kSmax * math.Log10(1+litterBiomass) / 10
	avail := max(0, d-*storage/scale)
	amount := scale * min(*remaining, avail)
	*storage += amount
	*intercepted += amount
	*remaining -= amount
}
