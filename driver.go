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

// HistoricalSWCMethod selects how a host-supplied historical SWC profile
// is blended with the computed SWC before water flow, per §6.
type HistoricalSWCMethod int

const (
	HistoricalSWCNone HistoricalSWCMethod = iota
	HistoricalSWCAverage
	HistoricalSWCStdErr
)

// HistoricalSWCOverride is the optional, host-supplied per-day SWC
// override of §6. Not applicable on day 0 of year 0.
type HistoricalSWCOverride struct {
	Method  HistoricalSWCMethod
	SWC     []float64 // per layer, cm
	StdErr  []float64 // per layer, cm; only used by HistoricalSWCStdErr
}

// StepDay advances the Site forward by exactly one simulated day,
// implementing §4.3 in the fixed order the water balance requires. Once
// a fatal error has occurred on a prior day, StepDay returns that same
// error immediately without further computation (§5).
func (s *Site) StepDay(w DailyWeather, atmos AtmosphericInputs, override *HistoricalSWCOverride) (*DayOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	isFirstDay := s.year == 0 && w.Year == 0 && w.DOY == 1 && s.doy == 0
	s.year, s.doy = w.Year, w.DOY

	out := &DayOutput{Year: w.Year, DOY: w.DOY}
	out.Layers = make([]LayerOutput, len(s.Layers))

	// Historical SWC override, applied to the starting SWC before any of
	// the day's water flow; not applicable on day 0 of year 0.
	if override != nil && !isFirstDay {
		s.applyHistoricalOverride(*override)
	}

	// Step 1: record to state is implicit -- Site already holds the
	// working vectors directly rather than copying into flat arrays.

	// Steps 2-3: snow and rain partition, snowmelt, snow depth.
	snowRes := s.adjustSnow(w)
	out.Snowpack = s.Snow.WaterEquivalent
	out.SnowDepth = snowRes.SnowDepth

	// Step 4: PET and solar radiation come from the host, scaled here.
	pet := atmos.PET * s.Global.PETScale
	out.PET = pet

	// Step 5: per-veg snow-depth scale.
	var scaleVeg [NVegKinds]float64
	for v := range AllVegKinds {
		vt := s.Veg[v]
		h := vt.DailyHeight[w.DOY-1]
		if h <= 0 {
			scaleVeg[v] = vt.Cover()
		} else {
			scaleVeg[v] = vt.Cover() * max(0, 1-out.SnowDepth/h)
		}
	}

	h2oForSoil := snowRes.Rain
	var interceptedTotal [NVegKinds]float64

	// Step 6: canopy interception, each veg type.
	for v := range AllVegKinds {
		vt := s.Veg[v]
		lai := vt.DailyLAI[w.DOY-1]
		eventsPerDay := w.RainEventsPerDayMonthly[w.Month()]
		interceptCanopy(&h2oForSoil, &interceptedTotal[v], &vt.CanopyStorage, lai, vt.CanopyKSmax(), scaleVeg[v], eventsPerDay)
	}

	// Step 7: litter interception, only when snowpack is zero.
	var litterInt float64
	if s.Snow.WaterEquivalent == 0 {
		for v := range AllVegKinds {
			vt := s.Veg[v]
			litter := vt.DailyLitter[w.DOY-1]
			eventsPerDay := w.RainEventsPerDayMonthly[w.Month()]
			interceptLitter(&h2oForSoil, &litterInt, &vt.LitterStorage, litter, vt.LitterKSmax(), scaleVeg[v], eventsPerDay)
		}
	}
	out.LitterEvap = 0 // filled in at step 16/18 below

	// Step 8: surface water carries over.
	s.StandingWaterToday = s.StandingWaterYesterday

	// Step 9: snowmelt to soil.
	snowmeltEff := snowRes.Snowmelt * (1 - s.Global.PctSnowRunoff/100)
	out.SnowRunoff = snowRes.Snowmelt - snowmeltEff
	h2oForSoil += snowmeltEff

	// Step 10: surface runon via a hypothetical upslope copy.
	runon := s.computeRunon(h2oForSoil)
	s.StandingWaterToday += runon
	out.Runon = runon

	// Step 11: saturated percolation. InfiltrateWaterHigh adds both
	// h2oForSoil and the standing water already carried in
	// s.StandingWaterToday into the top layer, then reports any excess
	// that could not be absorbed back into s.StandingWaterToday.
	soilInf := h2oForSoil + s.StandingWaterToday
	drainSat := make([]float64, len(s.Layers))
	deepDrainSat := InfiltrateWaterHigh(s.Layers, drainSat, h2oForSoil, &s.StandingWaterToday)
	soilInf -= s.StandingWaterToday

	// Step 12: surface runoff.
	runoff := s.StandingWaterToday * s.Global.PctRunoff
	s.StandingWaterToday -= runoff
	out.Runoff = runoff

	bareGroundCover := s.bareGroundCover()

	// Step 13: potential bare-soil evaporation (bare-cover path).
	var potBareE float64
	if bareGroundCover > 0 && s.Snow.WaterEquivalent == 0 {
		potBareE = PotSoilEvapBareGround(s.Layers, pet, 0.333, 1, 0.5, 1, bareGroundCover)
	}

	// Step 14: per-veg potential evaporation & transpiration rates.
	var potVegE, potTransp [NVegKinds]float64
	totalBiomass := 0.0
	for v := range AllVegKinds {
		vt := s.Veg[v]
		totalBiomass += vt.DailyBiomass[w.DOY-1]
	}
	for v := range AllVegKinds {
		if scaleVeg[v] <= 0 {
			continue
		}
		vt := s.Veg[v]
		biolive := vt.DailyBiomass[w.DOY-1] * vt.DailyPctLive[w.DOY-1] / 100
		biodead := vt.DailyBiomass[w.DOY-1] - biolive
		laiLive := vt.DailyLAI[w.DOY-1] * vt.DailyPctLive[w.DOY-1] / 100
		fbse, fbst := ESTPartitioning(laiLive, vt.cfg.ESTPartitionParam)

		if s.Snow.WaterEquivalent == 0 {
			e := PotSoilEvap(s.Layers, pet, vt.cfg.BareSoilECutoff, totalBiomass, fbse, 0.333, 1, 0.5, 1)
			potVegE[v] = e * vt.Cover()
		}
		tp := PotTranspParams{PETDay: pet, BioLive: biolive, BioDead: biodead, Shift: 0.333, Shape: 1, Inflec: 0.5, Range: 1}
		t := vt.PotTranspiration(s.Layers, s.Regions, tp, fbst)
		potTransp[v] = t * scaleVeg[v]
	}

	// Step 15: snow sublimation.
	snowloss := min(s.Global.SnowLossFraction*pet, s.Snow.WaterEquivalent)
	s.Snow.WaterEquivalent -= snowloss
	out.SnowLoss = snowloss
	pet2 := pet - snowloss

	// Step 16-17: sum potential rates and rescale to pet2 if needed.
	pondPotential := s.StandingWaterToday
	rateHelp := potBareE
	for v := range AllVegKinds {
		rateHelp += interceptedTotal[v] + potVegE[v] + potTransp[v]
	}
	rateHelp += litterInt + pondPotential
	if rateHelp > pet2 && rateHelp > 0 {
		scale := pet2 / rateHelp
		potBareE *= scale
		litterInt *= scale
		pondPotential *= scale
		for v := range AllVegKinds {
			interceptedTotal[v] *= scale
			potVegE[v] *= scale
			potTransp[v] *= scale
		}
	}

	aet := snowloss

	// Step 18: actual evaporation of interception/surface pools.
	for v := range AllVegKinds {
		vt := s.Veg[v]
		e := min(interceptedTotal[v], vt.CanopyStorage)
		vt.CanopyStorage -= e
		out.InterceptedEvap[v] = e
		aet += e
	}
	litterE := min(litterInt, s.Veg[Grasses].LitterStorage+s.Veg[Forbs].LitterStorage+s.Veg[Shrubs].LitterStorage+s.Veg[Trees].LitterStorage)
	drainLitterStorage(s, litterE)
	out.LitterEvap = litterE
	aet += litterE
	pondE := min(pondPotential, s.StandingWaterToday)
	s.StandingWaterToday -= pondE
	out.PondEvap = pondE
	aet += pondE

	// Step 19: bare-soil evaporation from layers (skip if snowpack > 0).
	bareSoilPerLayer := make([]float64, len(s.Layers))
	if s.Snow.WaterEquivalent == 0 {
		removed := RemoveFromSoil(s.Layers, func(l *Layer) float64 { return l.EvapCoeff() }, potBareE, func(l *Layer) float64 { return l.SWCHalfWP }, bareSoilPerLayer)
		aet += removed
	}
	for i := range out.Layers {
		out.Layers[i].BareSoilEvap = bareSoilPerLayer[i]
	}

	// Step 20: per-veg bare-soil-E and transpiration from layers.
	for v := range AllVegKinds {
		vt := s.Veg[v]
		if potVegE[v] > 0 {
			vegEPerLayer := make([]float64, len(s.Layers))
			removed := RemoveFromSoil(s.Layers, func(l *Layer) float64 { return l.EvapCoeff() }, potVegE[v], func(l *Layer) float64 { return l.SWCHalfWP }, vegEPerLayer)
			aet += removed
			for i := range out.Layers {
				out.Layers[i].VegSoilEvap[v] = vegEPerLayer[i]
			}
		}
		if potTransp[v] > 0 {
			transpPerLayer := make([]float64, len(s.Layers))
			removed := RemoveFromSoil(s.Layers, func(l *Layer) float64 { return l.TranspCoeff(vt.Kind) }, potTransp[v], func(l *Layer) float64 { return l.SWCCritSWP[vt.Kind] }, transpPerLayer)
			aet += removed
			for i := range out.Layers {
				out.Layers[i].Transpiration[v] = transpPerLayer[i]
			}
		}
	}

	// Step 21: hydraulic redistribution, deepest-rooted veg type first.
	for _, v := range hydRedOrder(s) {
		vt := s.Veg[v]
		hr, err := HydraulicRedistribution(s.Layers, vt, w.Year, w.DOY)
		if err != nil {
			s.err = err
			return nil, err
		}
		for i := range s.Layers {
			out.Layers[i].HydRed[v] = hr[i]
		}
	}

	// Step 22: unsaturated percolation, last SWC-affecting step.
	drainUnsat := make([]float64, len(s.Layers))
	deepDrainUnsat := PercolateUnsaturated(s.Layers, drainUnsat, &s.StandingWaterToday, s.Global.SlowDrainCoeff, s.Global.SlowDrainDepth)
	soilInf -= s.StandingWaterToday
	s.AnnualDeepDrainage += deepDrainSat + deepDrainUnsat

	// Step 23: soil temperature, last.
	if tempErr := s.StepTemperature(w, out.SnowDepth, pet, aet, totalBiomass); tempErr != nil {
		s.Logger.Warnf("%v", tempErr)
	}

	out.AET = aet
	out.Runoff = runoff
	out.StandingWater = s.StandingWaterToday
	out.Snowpack = s.Snow.WaterEquivalent

	for i, l := range s.Layers {
		out.Layers[i].SWC = l.SWCToday
		out.Layers[i].Temp = l.TempToday
		out.Layers[i].Frozen = l.Frozen
		out.Layers[i].DrainSaturated = l.DrainSaturated
		out.Layers[i].DrainUnsaturated = l.DrainUnsaturated
		out.Layers[i].TempMin = s.TempGrid.minToday[min(i, s.TempGrid.nR)]
		out.Layers[i].TempMax = s.TempGrid.maxToday[min(i, s.TempGrid.nR)]
	}

	s.checkWaterBalance(out, w, runon, runoff, snowRes, soilInf)

	// Step 24: commit today's values to yesterday (end-of-day copy).
	s.commitDay()

	return out, nil
}

// drainLitterStorage removes litterE proportionally from each veg type's
// litter storage.
func drainLitterStorage(s *Site, litterE float64) {
	total := 0.0
	for _, vt := range s.Veg {
		total += vt.LitterStorage
	}
	if total <= 0 {
		return
	}
	for _, vt := range s.Veg {
		share := vt.LitterStorage / total
		vt.LitterStorage -= litterE * share
		if vt.LitterStorage < 0 {
			vt.LitterStorage = 0
		}
	}
}

// hydRedOrder returns veg-type indices with HR enabled, deepest-rooted
// first (§4.3 step 21), approximated by the veg type's deepest active
// transpiration region.
func hydRedOrder(s *Site) []VegKind {
	type entry struct {
		v     VegKind
		depth int
	}
	var entries []entry
	for v := range AllVegKinds {
		if !s.Veg[v].cfg.HydRed.Enabled {
			continue
		}
		depth := 0
		for _, l := range s.Layers {
			if l.TranspRegionID[v] > 0 {
				depth = l.ID()
			}
		}
		entries = append(entries, entry{VegKind(v), depth})
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].depth > entries[j-1].depth; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	out := make([]VegKind, len(entries))
	for i, e := range entries {
		out[i] = e.v
	}
	return out
}

// computeRunon simulates saturated infiltration on a copy of the layer
// state with the same h2oForSoil to estimate upslope excess, per §4.3
// step 10.
func (s *Site) computeRunon(h2oForSoil float64) float64 {
	if s.Global.PctRunon <= 0 {
		return 0
	}
	cp := make([]*Layer, len(s.Layers))
	for i, l := range s.Layers {
		clone := *l
		cp[i] = &clone
	}
	drain := make([]float64, len(cp))
	copyStanding := s.StandingWaterYesterday
	InfiltrateWaterHigh(cp, drain, h2oForSoil, &copyStanding)
	return s.Global.PctRunon * max(0, copyStanding-s.StandingWaterYesterday)
}

// applyHistoricalOverride blends or clamps today's SWC toward a
// host-supplied historical profile, per §6.
func (s *Site) applyHistoricalOverride(o HistoricalSWCOverride) {
	for i, l := range s.Layers {
		if i >= len(o.SWC) {
			continue
		}
		switch o.Method {
		case HistoricalSWCAverage:
			l.SWCToday = (l.SWCToday + o.SWC[i]) / 2
		case HistoricalSWCStdErr:
			lo, hi := o.SWC[i], o.SWC[i]
			if i < len(o.StdErr) {
				lo -= o.StdErr[i]
				hi += o.StdErr[i]
			}
			l.SWCToday = max(lo, min(hi, l.SWCToday))
		}
		if l.SWCToday < l.SWCMin {
			l.SWCToday = l.SWCMin
		}
	}
}

// commitDay copies today's values to yesterday's slots, implementing the
// two-slot ring's end-of-day commit (§9 Design Notes).
func (s *Site) commitDay() {
	for _, l := range s.Layers {
		l.SWCYesterday = l.SWCToday
		l.TempYesterday = l.TempToday
	}
	s.StandingWaterYesterday = s.StandingWaterToday
}

// checkWaterBalance runs the §4.3 water-balance assertions, logging a
// WaterBalanceWarning (or, in strict mode, a fatal error) for any
// violation beyond tolerance: 1e-9 cm for the AET<=PET and infiltration
// checks, 1e-6 cm for AET against the sum of its components.
func (s *Site) checkWaterBalance(out *DayOutput, w DailyWeather, runon, runoff float64, snowRes snowDayResult, soilInf float64) {
	const tol = 1e-9
	if out.AET > out.PET+tol {
		s.reportBalance("AET<=PET", out.AET-out.PET)
	}
	if soilInf < -tol {
		s.reportBalance("soilInfiltration>=0", -soilInf)
	}

	var sumE, sumT float64
	for v := range AllVegKinds {
		sumE += out.InterceptedEvap[v]
	}
	sumE += out.LitterEvap + out.PondEvap
	for v := range AllVegKinds {
		for i := range out.Layers {
			sumT += out.Layers[i].Transpiration[v]
		}
	}
	expectedAET := sumE + sumT + out.SnowLoss
	var bareE, vegE float64
	for i := range out.Layers {
		bareE += out.Layers[i].BareSoilEvap
		for v := range AllVegKinds {
			vegE += out.Layers[i].VegSoilEvap[v]
		}
	}
	expectedAET += bareE + vegE
	if diff := math.Abs(out.AET - expectedAET); diff > 1e-6 {
		s.reportBalance("AET==sum(components)", diff)
	}
}

// reportBalance is a thin wrapper that always treats the check as a
// warning unless strict mode is set, in which case it becomes the site's
// fatal error for the day.
func (s *Site) reportBalance(check string, discrepancy float64) {
	if s.Global.StrictWaterBalance {
		s.err = &WaterBalanceWarning{Check: check, Year: s.year, DOY: s.doy, Discrepancy: discrepancy}
		return
	}
	s.warnBalance(check, discrepancy)
}
