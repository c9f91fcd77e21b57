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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// GlobalParams are the run-level parameters of §6 ("Global parameters"),
// constant for the life of a Site.
type GlobalParams struct {
	Snow SnowParams

	PctRunoff float64 // fraction of standing water lost to runoff
	PctRunon  float64 // fraction of upslope excess gained as runon

	PETScale float64

	SlowDrainCoeff float64
	SlowDrainDepth float64

	TempGrid TempGridParams

	BiomassLimiter float64 // 300, the t1/shading biomass cutoff
	T1Param1       float64 // 15
	T1Param2       float64 // -4
	T1Param3       float64 // 600
	CSParam1       float64 // 0.0007
	CSParam2       float64 // 0.0003
	SHParam        float64 // 0.18
	TsoilConstant  float64 // lower boundary temperature, degrees C

	SnowLossFraction float64 // default 0.5 (applied by NewSite when zero), Open Question #4

	EnableFusionPool bool // Open Question #1: exposed, never actually enabled

	PctSnowRunoff float64 // percent of snowmelt that runs off rather than infiltrating

	ResetEachYear bool // reset-on-new-year policy (§3 "Lifecycles")

	StrictWaterBalance bool // promote WaterBalanceWarning to a fatal error
}

// Site owns all mutable state for one simulated soil column: layers,
// vegetation cover, snowpack, standing water, and the soil-temperature
// grid. There is no package-level mutable state (§5); every Site is
// independent and may be driven concurrently with any other Site.
type Site struct {
	Global GlobalParams
	Logger Logger

	Layers  []*Layer
	Regions TranspRegions
	Veg     [NVegKinds]*VegType

	Snow Snowpack

	StandingWaterToday, StandingWaterYesterday float64

	TempGrid *tempGrid

	AnnualDeepDrainage float64

	// err holds a fatal error from a prior day; once set, StepDay returns
	// it immediately without further computation (§5 "Cancellation").
	err error

	// tempDisabled is set when soil temperature hits TempUnstableError;
	// the run continues without further temperature computation (§7).
	tempDisabled bool

	year, doy int

	balanceWarnings map[string]int

	// lastTempDt is the last successful sub-timestep (seconds), carried
	// across days as the starting point for the next day's adaptive
	// search (§4.8).
	lastTempDt float64
}

// SiteConfig is the caller-supplied, load-time description of a site
// (§6 "Input to site loader").
type SiteConfig struct {
	Layers  []LayerConfig
	Regions TranspRegions
	Veg     [NVegKinds]VegTypeConfig
	Global  GlobalParams
	Logger  Logger
}

// NewSite validates cfg and builds a ready-to-run Site, implementing
// §4.2 in full (layer derivation, veg critical-SWP adjustment, transp
// region assignment, and coefficient normalization).
func NewSite(cfg SiteConfig) (*Site, error) {
	if len(cfg.Layers) == 0 || len(cfg.Layers) > MaxLayers {
		return nil, &ConfigError{"Layers", "must define between 1 and 25 layers"}
	}
	if err := cfg.Regions.Validate(len(cfg.Layers)); err != nil {
		return nil, err
	}

	s := &Site{
		Global:          cfg.Global,
		Regions:         cfg.Regions,
		Logger:          cfg.Logger,
		balanceWarnings: make(map[string]int),
		lastTempDt:      86400,
	}
	if s.Logger == nil {
		s.Logger = newNullLogger()
	}
	if s.Global.SnowLossFraction == 0 {
		s.Global.SnowLossFraction = 0.5
	}

	for _, lc := range cfg.Layers {
		l, err := deriveLayer(lc)
		if err != nil {
			return nil, err
		}
		s.Layers = append(s.Layers, l)
	}

	for v := range AllVegKinds {
		vt := &VegType{Kind: AllVegKinds[v], cfg: cfg.Veg[v]}
		s.Veg[v] = vt
	}
	if err := s.checkCoverSumsToOne(); err != nil {
		return nil, err
	}

	if err := s.deriveCriticalSWP(); err != nil {
		return nil, err
	}
	s.assignTranspRegions()
	s.normalizeCoefficients()

	for v := range AllVegKinds {
		s.Veg[v].InterpolateDaily()
	}

	grid, err := newTempGrid(s.Global.TempGrid, s.Layers)
	if err != nil {
		return nil, err
	}
	s.TempGrid = grid

	return s, nil
}

// bareGroundCover returns 1 minus the sum of all veg-type cover
// fractions.
func (s *Site) bareGroundCover() float64 {
	sum := 0.0
	for _, vt := range s.Veg {
		sum += vt.Cover()
	}
	return max(0, 1-sum)
}

// checkCoverSumsToOne normalizes veg cover fractions plus bare ground to
// sum to exactly 1 (§3 "VegType" invariant).
func (s *Site) checkCoverSumsToOne() error {
	sum := 0.0
	for _, vt := range s.Veg {
		if vt.Cover() < 0 || vt.Cover() > 1 {
			return &ConfigError{"Cover", fmt.Sprintf("%s: must be in [0, 1]", vt.Kind)}
		}
		sum += vt.Cover()
	}
	if sum > 1+1e-9 {
		return &ConfigError{"Cover", "sum of veg cover fractions exceeds 1"}
	}
	if sum > 1 {
		// Bare ground absorbs any shortfall when sum < 1; a sum just over
		// 1 from rounding is rescaled so the fractions total exactly 1.
		for _, vt := range s.Veg {
			vt.cfg.Cover /= sum
		}
	}
	return nil
}

// deriveCriticalSWP computes swc_at_swpcrit[v] for every layer and veg
// type, lowering a veg type's critical SWP and recomputing across all
// layers if any resulting SWC falls below swc_min (§4.2 step 7).
func (s *Site) deriveCriticalSWP() error {
	for v := range AllVegKinds {
		crit := s.Veg[v].cfg.CriticalSWP
		if crit <= 0 {
			continue
		}
		for {
			lowered := false
			for _, l := range s.Layers {
				swc, err := SWPtoSWC(crit, l.Width(), l.cfg.GravelVolFraction, l.cfg.SWRC)
				if err != nil {
					return err
				}
				l.SWCCritSWP[v] = swc
				if swc < l.SWCMin {
					newCrit, err := SWCtoSWP(l.SWCMin, l.Width(), l.cfg.GravelVolFraction, l.cfg.SWRC)
					if err != nil {
						return err
					}
					if newCrit > 0 && newCrit < crit {
						crit = newCrit
						lowered = true
					}
				}
			}
			if !lowered {
				break
			}
		}
	}
	return nil
}

// assignTranspRegions assigns transp_region_id[v] per layer by walking
// regions shallow-to-deep while transp_coeff[v] > 0 (§4.2 step 8).
func (s *Site) assignTranspRegions() {
	for _, l := range s.Layers {
		for v := range AllVegKinds {
			if l.TranspCoeff(VegKind(v)) > 0 {
				l.TranspRegionID[v] = s.Regions.regionOf(l.ID())
			}
		}
	}
}

// normalizeCoefficients normalizes evap_coeff to sum to 1 over active
// evap layers, and transp_coeff[v] to sum to 1 per veg type, within
// tolerance 1e-4, warning on adjustment (§4.2 step 9).
func (s *Site) normalizeCoefficients() {
	const tol = 1e-4

	evap := make([]float64, len(s.Layers))
	for i, l := range s.Layers {
		evap[i] = l.cfg.EvapCoeff
	}
	sum := floats.Sum(evap)
	if sum > 0 && math.Abs(sum-1) > tol {
		s.warnNormalization("evap", sum, 1)
	}
	if sum > 0 {
		for i, l := range s.Layers {
			l.cfg.EvapCoeff = evap[i] / sum
		}
	}

	for v := range AllVegKinds {
		tc := make([]float64, len(s.Layers))
		for i, l := range s.Layers {
			tc[i] = l.cfg.TranspCoeff[v]
		}
		sum := floats.Sum(tc)
		if sum > 0 && math.Abs(sum-1) > tol {
			s.warnNormalization(fmt.Sprintf("transp:%s", VegKind(v)), sum, 1)
		}
		if sum > 0 {
			for i, l := range s.Layers {
				l.cfg.TranspCoeff[v] = tc[i] / sum
			}
		}
	}
}

// ResetYear implements the new-year reset policy of §3 "Lifecycles":
// canopy/litter storage and SWC state reset to their initial values only
// when Global.ResetEachYear is set.
func (s *Site) ResetYear() {
	s.AnnualDeepDrainage = 0
	if !s.Global.ResetEachYear {
		return
	}
	for _, l := range s.Layers {
		l.SWCToday, l.SWCYesterday = l.SWCInit, l.SWCInit
		l.TempToday, l.TempYesterday = l.cfg.InitialSoilTemp, l.cfg.InitialSoilTemp
		l.Frozen = false
	}
	for _, vt := range s.Veg {
		vt.CanopyStorage = 0
		vt.LitterStorage = 0
	}
	s.Snow = Snowpack{}
	s.StandingWaterToday, s.StandingWaterYesterday = 0, 0
}

// Err returns the fatal error, if any, that halted the simulation. Once
// set, StepDay continues to return it without further computation (§5).
func (s *Site) Err() error { return s.err }
