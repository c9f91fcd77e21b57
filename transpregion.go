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

import "fmt"

// MaxTranspRegions bounds the number of transpiration regions a site may
// define (§6).
const MaxTranspRegions = 4

// TranspRegions is an ordered list of up to MaxTranspRegions region
// lower-bound layer indices, strictly increasing (§3).
type TranspRegions struct {
	LowerBoundLayer []int // 0-based index of the deepest layer in each region (inclusive)
}

// Validate checks the region boundaries are strictly increasing and
// within bounds, per §4.2 step 10.
func (r TranspRegions) Validate(nLayers int) error {
	if len(r.LowerBoundLayer) == 0 || len(r.LowerBoundLayer) > MaxTranspRegions {
		return &ConfigError{"TranspRegions", "must define between 1 and 4 regions"}
	}
	prev := -1
	for i, b := range r.LowerBoundLayer {
		if b <= prev {
			return &ConfigError{"TranspRegions", fmt.Sprintf("region %d lower bound not strictly increasing", i)}
		}
		if b >= nLayers {
			return &ConfigError{"TranspRegions", fmt.Sprintf("region %d lower bound %d exceeds layer count", i, b)}
		}
		prev = b
	}
	return nil
}

// regionOf returns the 1-based region number containing layerID, walking
// regions shallow to deep (§4.2 step 8).
func (r TranspRegions) regionOf(layerID int) int {
	for i, bound := range r.LowerBoundLayer {
		if layerID <= bound {
			return i + 1
		}
	}
	return len(r.LowerBoundLayer)
}

// layersInRegion returns the 0-based layer indices belonging to a given
// 1-based region number.
func (r TranspRegions) layersInRegion(region int) []int {
	lo := 0
	if region > 1 {
		lo = r.LowerBoundLayer[region-2] + 1
	}
	hi := r.LowerBoundLayer[region-1]
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

// NumRegions returns how many transpiration regions are defined.
func (r TranspRegions) NumRegions() int { return len(r.LowerBoundLayer) }
