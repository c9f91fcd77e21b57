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

// Package soilwat implements the daily soil-water and soil-temperature
// dynamics core of a point-based, layered ecohydrological simulator for
// dryland and grassland sites.
//
// A Site owns all mutable state for one simulated soil column: layers,
// vegetation cover, snowpack, standing water, and the soil-temperature
// regression grid. StepDay advances that state by exactly one simulated
// day, in the fixed order required by the water balance: snow and rain
// partitioning, interception, surface water accounting, saturated
// percolation, evaporation, transpiration, hydraulic redistribution,
// unsaturated percolation, and finally soil temperature.
//
// Parsing of weather files, vegetation-composition files, PET/solar
// radiation formulas, and output reporting are not part of this package;
// they are supplied by the host through the types in weather.go and the
// Logger capability in logger.go.
package soilwat
