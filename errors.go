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

// ConfigError reports an invalid site, layer, or SWRC configuration found
// at load time. It is always fatal: the simulation must not start.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("soilwat: config error on %s: %s", e.Field, e.Msg)
}

// RetentionDomainError reports that a SWC<->SWP conversion produced an
// invalid intermediate (a zero or non-finite power term). Fatal for the
// day in which it occurs.
type RetentionDomainError struct {
	LayerID int
	Year    int
	DOY     int
	Msg     string
}

func (e *RetentionDomainError) Error() string {
	return fmt.Sprintf("soilwat: retention domain error in layer %d (year %d, day %d): %s",
		e.LayerID, e.Year, e.DOY, e.Msg)
}

// HydRedInfeasible reports that the hydraulic-redistribution feasibility
// pass (§4.7) could not keep every layer at or above its SWC floor within
// the iteration bound. Fatal for the day.
type HydRedInfeasible struct {
	Veg     VegKind
	LayerID int
	Year    int
	DOY     int
}

func (e *HydRedInfeasible) Error() string {
	return fmt.Sprintf("soilwat: hydraulic redistribution infeasible for %s at layer %d (year %d, day %d)",
		e.Veg, e.LayerID, e.Year, e.DOY)
}

// TempUnstableError reports that the soil-temperature diffusion could not
// find a stable sub-timestep within the 16-subdivision bound, or that a
// node temperature exceeded the sanity bound of ±100C. Non-fatal to the
// run as a whole: StepTemperature disables temperature for the remainder
// of the run and water flow continues.
type TempUnstableError struct {
	Year int
	DOY  int
	Msg  string
}

func (e *TempUnstableError) Error() string {
	return fmt.Sprintf("soilwat: soil temperature unstable (year %d, day %d): %s", e.Year, e.DOY, e.Msg)
}

// WaterBalanceWarning reports that one of the §4.3 water-balance
// assertions exceeded its tolerance. Non-fatal unless
// GlobalParams.StrictWaterBalance is set; otherwise the violation is logged
// and counted by Check in the Site's tally. The tally is not reported at
// end of run.
type WaterBalanceWarning struct {
	Check      string
	Year       int
	DOY        int
	Discrepancy float64
}

func (e *WaterBalanceWarning) Error() string {
	return fmt.Sprintf("soilwat: water balance check %q failed by %g cm (year %d, day %d)",
		e.Check, e.Discrepancy, e.Year, e.DOY)
}

// NormalizationWarning reports that evaporation or transpiration
// coefficients were not exactly normalized at load time; the coefficients
// are silently normalized and the pre/post values are reported.
type NormalizationWarning struct {
	Veg     VegKind
	PreSum  float64
	PostSum float64
}

func (e *NormalizationWarning) Error() string {
	return fmt.Sprintf("soilwat: coefficients for %s normalized from sum %g to %g", e.Veg, e.PreSum, e.PostSum)
}
