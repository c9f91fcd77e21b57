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

// VegKind is a strongly-typed tag for the four fixed vegetation types.
// All per-veg tables in this package are [NVegKinds]T arrays indexed by
// VegKind rather than maps, so iteration order is fixed and deterministic
// per §5.
type VegKind int

const (
	Trees VegKind = iota
	Shrubs
	Forbs
	Grasses
	// NVegKinds is the fixed number of vegetation types.
	NVegKinds
)

func (v VegKind) String() string {
	switch v {
	case Trees:
		return "trees"
	case Shrubs:
		return "shrubs"
	case Forbs:
		return "forbs"
	case Grasses:
		return "grasses"
	default:
		return "unknown"
	}
}

// AllVegKinds is the fixed, deterministic iteration order for the four
// vegetation types.
var AllVegKinds = [NVegKinds]VegKind{Trees, Shrubs, Forbs, Grasses}
