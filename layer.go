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

// MaxLayers bounds the number of soil layers a site may define (§6).
const MaxLayers = 25

// LayerConfig is the caller-supplied, load-time description of one soil
// depth slab (§3 "Layer").
type LayerConfig struct {
	ID                int
	Width             float64 // cm, > 0
	Sand, Clay        float64 // mass fractions, 0 < x < 1, sand+clay < 1
	GravelVolFraction float64 // [0, 1)
	MatricDensity     float64 // g/cm^3, >= 0
	Impermeability    float64 // [0, 1]
	InitialSoilTemp   float64 // degrees C
	EvapCoeff         float64 // [0, 1], pre-normalization
	TranspCoeff       [NVegKinds]float64
	SWRC              SWRCParams
	EstimateFromTexturePTF PTF // PTFNone to use SWRC as given
}

// Layer is the derived, runtime state of one soil depth slab.
type Layer struct {
	cfg LayerConfig

	BulkDensity float64

	SWCFieldCap  float64 // swc_fc: SWC at 0.333 bar
	SWCWiltPt    float64 // swc_wp: SWC at 15 bar
	SWCHalfWP    float64 // max(0.5*swc_wp, SWC@100bar)
	SWCSat       float64
	SWCMin       float64
	SWCWet       float64
	SWCInit      float64
	SWCCritSWP   [NVegKinds]float64 // swc_at_swpcrit[v], post §4.2 step 7 adjustment

	TranspRegionID [NVegKinds]int // 1-based region assignment, 0 = inactive

	// Daily state; Today/Yesterday form the two-slot ring §9 replaces
	// index arithmetic with.
	SWCToday, SWCYesterday float64
	TempToday, TempYesterday float64
	Frozen bool

	// Drain observed leaving this layer on the most recent day (cm),
	// separately for the saturated and unsaturated cascades.
	DrainSaturated, DrainUnsaturated float64
}

// ID returns the 0-based, depth-sorted layer index.
func (l *Layer) ID() int { return l.cfg.ID }

// Width returns the layer thickness in cm.
func (l *Layer) Width() float64 { return l.cfg.Width }

// Impermeability returns the layer's impermeability fraction in [0, 1].
func (l *Layer) Impermeability() float64 { return l.cfg.Impermeability }

// EvapCoeff returns the layer's (post-normalization) bare-soil
// evaporation coefficient.
func (l *Layer) EvapCoeff() float64 { return l.cfg.EvapCoeff }

// TranspCoeff returns the layer's (post-normalization) transpiration
// coefficient for veg type v.
func (l *Layer) TranspCoeff(v VegKind) float64 { return l.cfg.TranspCoeff[v] }

// kSatRel returns the relative saturated hydraulic conductivity factor
// applied by the saturated cascade (§4.5): 0.01 when frozen, else 1.
func (l *Layer) kSatRel() float64 {
	if l.Frozen {
		return 0.01
	}
	return 1
}

// permeableFraction returns (1 - impermeability), hard-clamped to exactly
// zero at impermeability >= 1 so floating point noise cannot leave a
// residual drain through a notionally sealed layer (§4 of SPEC_FULL.md).
func (l *Layer) permeableFraction() float64 {
	if l.cfg.Impermeability >= 1 {
		return 0
	}
	return 1 - l.cfg.Impermeability
}

// deriveLayer validates a LayerConfig and computes its derived
// thresholds, implementing §4.2 steps 1-6 for a single layer. Veg-type
// critical-SWP derivation (step 7) and normalization (step 9) are driven
// by Site.build since they require cross-layer and cross-veg context.
func deriveLayer(cfg LayerConfig) (*Layer, error) {
	if cfg.Width <= 0 {
		return nil, &ConfigError{"Width", fmt.Sprintf("layer %d: must be > 0", cfg.ID)}
	}
	if !(cfg.Sand > 0 && cfg.Sand < 1) || !(cfg.Clay > 0 && cfg.Clay < 1) || cfg.Sand+cfg.Clay >= 1 {
		return nil, &ConfigError{"Sand/Clay", fmt.Sprintf("layer %d: require 0<sand<1, 0<clay<1, sand+clay<1", cfg.ID)}
	}
	if cfg.GravelVolFraction < 0 || cfg.GravelVolFraction >= 1 {
		return nil, &ConfigError{"GravelVolFraction", fmt.Sprintf("layer %d: must be in [0, 1)", cfg.ID)}
	}
	if cfg.MatricDensity < 0 {
		return nil, &ConfigError{"MatricDensity", fmt.Sprintf("layer %d: must be >= 0", cfg.ID)}
	}
	if cfg.Impermeability < 0 || cfg.Impermeability > 1 {
		return nil, &ConfigError{"Impermeability", fmt.Sprintf("layer %d: must be in [0, 1]", cfg.ID)}
	}

	l := &Layer{cfg: cfg}
	l.BulkDensity = cfg.MatricDensity*(1-cfg.GravelVolFraction) + cfg.GravelVolFraction*2.65

	swrc := cfg.SWRC
	if cfg.EstimateFromTexturePTF != PTFNone {
		p, err := EstimateFromTexture(swrc.Family, cfg.EstimateFromTexturePTF, cfg.Sand, cfg.Clay)
		if err != nil {
			return nil, err
		}
		swrc = p
	}
	if err := swrc.Validate(); err != nil {
		return nil, err
	}
	l.cfg.SWRC = swrc

	fc, err := SWPtoSWC(0.333, cfg.Width, cfg.GravelVolFraction, swrc)
	if err != nil {
		return nil, err
	}
	wp, err := SWPtoSWC(15, cfg.Width, cfg.GravelVolFraction, swrc)
	if err != nil {
		return nil, err
	}
	at100, err := SWPtoSWC(100, cfg.Width, cfg.GravelVolFraction, swrc)
	if err != nil {
		return nil, err
	}
	l.SWCFieldCap = fc
	l.SWCWiltPt = wp
	l.SWCHalfWP = max(0.5*wp, at100)

	porosity := swrc.P[1] // thetaS, for both supported families
	l.SWCSat = porosity * cfg.Width * (1 - cfg.GravelVolFraction)

	if l.SWCMin <= 0 {
		if theta, ok := ResidualVWC(cfg.Sand, cfg.Clay, porosity); ok {
			l.SWCMin = theta * cfg.Width * (1 - cfg.GravelVolFraction)
		} else {
			swc300, err := SWPtoSWC(300, cfg.Width, cfg.GravelVolFraction, swrc)
			if err != nil {
				return nil, err
			}
			l.SWCMin = swc300
		}
	}
	if l.SWCInit <= l.SWCMin {
		l.SWCInit = l.SWCFieldCap
	}
	if l.SWCWet <= l.SWCMin {
		l.SWCWet = l.SWCFieldCap
	}
	l.SWCToday, l.SWCYesterday = l.SWCInit, l.SWCInit
	l.TempToday, l.TempYesterday = cfg.InitialSoilTemp, cfg.InitialSoilTemp

	if l.SWCMin > l.SWCHalfWP || l.SWCHalfWP > l.SWCWiltPt || l.SWCWiltPt > l.SWCFieldCap || l.SWCFieldCap > l.SWCSat {
		return nil, &ConfigError{"thresholds", fmt.Sprintf("layer %d: require swc_min<=swc_halfwp<=swc_wp<=swc_fc<=swc_sat", cfg.ID)}
	}

	l.cfg.EvapCoeff = cfg.EvapCoeff
	l.cfg.TranspCoeff = cfg.TranspCoeff
	return l, nil
}
