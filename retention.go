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
)

// BarToCM is the pressure conversion used throughout the core: 1 bar is
// equivalent to 1024 cm of water column.
const BarToCM = 1024.0

// SWRCFamily tags which closed-form retention curve a layer's parameter
// vector belongs to.
type SWRCFamily int

const (
	// SWRCCampbell1974 is a Campbell (1974) power law: psi = psiS * (theta/thetaS)^-b.
	SWRCCampbell1974 SWRCFamily = iota
	// SWRCVanGenuchten1980 is a van Genuchten (1980) closed form.
	SWRCVanGenuchten1980
)

// PTF identifies a pedotransfer function used to derive SWRC parameters
// from soil texture.
type PTF int

const (
	// PTFCosby1984 is the default Campbell-style PTF.
	PTFCosby1984 PTF = iota
	// PTFSaxton2006 estimates thetaS directly via a two-step regression;
	// shape parameters still come from Cosby.
	PTFSaxton2006
	// PTFNone means parameters were supplied directly and must not be
	// estimated from texture.
	PTFNone
)

// SWRCParams holds up to six retention-curve parameters. Their meaning is
// family-dependent:
//
//	Campbell1974:     [0]=psiS (bar), [1]=thetaS (cm/cm), [2]=b
//	VanGenuchten1980: [0]=thetaR, [1]=thetaS, [2]=alpha, [3]=n
type SWRCParams struct {
	Family SWRCFamily
	P      [6]float64
}

// Validate checks a parameter vector is in its family's legal domain.
// ConfigError is fatal at load time per §7.
func (p SWRCParams) Validate() error {
	switch p.Family {
	case SWRCCampbell1974:
		psiS, thetaS, b := p.P[0], p.P[1], p.P[2]
		if psiS <= 0 {
			return &ConfigError{"psiS", "must be > 0"}
		}
		if thetaS <= 0 || thetaS > 1 {
			return &ConfigError{"thetaS", "must be in (0, 1]"}
		}
		if b == 0 {
			return &ConfigError{"b", "must be != 0"}
		}
	case SWRCVanGenuchten1980:
		thetaR, thetaS, alpha, n := p.P[0], p.P[1], p.P[2], p.P[3]
		if !(thetaR >= 0 && thetaR < thetaS) || thetaS > 1 {
			return &ConfigError{"thetaR/thetaS", "require 0 <= thetaR < thetaS <= 1"}
		}
		if alpha <= 0 {
			return &ConfigError{"alpha", "must be > 0"}
		}
		if n <= 1 {
			return &ConfigError{"n", "must be > 1"}
		}
	default:
		return &ConfigError{"Family", "unknown SWRC family"}
	}
	return nil
}

// EstimateFromTexture derives SWRCParams from sand/clay mass fractions
// using the requested PTF. Only the Campbell family has a supported PTF
// pairing in this core; requesting a PTF for van Genuchten parameters
// returns an unimplemented-PTF ConfigError, matching §4.1's note that
// "unused curve families ... may return an unimplemented-PTF error".
func EstimateFromTexture(family SWRCFamily, ptf PTF, sand, clay float64) (SWRCParams, error) {
	if family != SWRCCampbell1974 {
		return SWRCParams{}, &ConfigError{"Family", "no pedotransfer function implemented for this SWRC family"}
	}
	var p SWRCParams
	p.Family = SWRCCampbell1974
	switch ptf {
	case PTFCosby1984:
		psiS := math.Pow(10, -1.58*sand-0.63*clay+2.17)
		thetaS := -0.142*sand - 0.037*clay + 0.505
		b := -0.3*sand + 15.7*clay + 3.10
		p.P[0], p.P[1], p.P[2] = psiS, thetaS, b
	case PTFSaxton2006:
		// Saxton & Rawls (2006) two-step regression for thetaS; shape
		// parameters (psiS, b) still come from Cosby per §4.1.
		thetaS33t := 0.299 - 0.251*sand + 0.195*clay + 0.011*sand*clay
		thetaS33 := thetaS33t + 1.283*thetaS33t*thetaS33t - 0.374*thetaS33t - 0.015
		thetaS := thetaS33 + (0.475 - 0.157*sand - 0.143*clay) // porosity term approximated per Saxton 2006
		psiS := math.Pow(10, -1.58*sand-0.63*clay+2.17)
		b := -0.3*sand + 15.7*clay + 3.10
		p.P[0], p.P[1], p.P[2] = psiS, thetaS, b
	default:
		return SWRCParams{}, &ConfigError{"PTF", "unimplemented pedotransfer function"}
	}
	if err := p.Validate(); err != nil {
		return SWRCParams{}, err
	}
	return p, nil
}

// SWCtoSWP converts bulk soil water content (cm, per layer) to matric
// potential (bar, positive magnitude). SWC <= 0 or missing returns 0
// ("wet/no potential") rather than an error, per §4.1.
func SWCtoSWP(swc, width, gravel float64, p SWRCParams) (float64, error) {
	if swc <= 0 || width <= 0 {
		return 0, nil
	}
	thetaM := (swc / width) / (1 - gravel)
	switch p.Family {
	case SWRCCampbell1974:
		psiS, thetaS, b := p.P[0], p.P[1], p.P[2]
		ratio := thetaM / thetaS
		pw := math.Pow(ratio, b)
		if pw == 0 || math.IsNaN(pw) || math.IsInf(pw, 0) {
			return 0, &RetentionDomainError{Msg: fmt.Sprintf("SWC->SWP underflow: theta/thetaS=%g b=%g", ratio, b)}
		}
		return psiS / pw, nil
	case SWRCVanGenuchten1980:
		thetaR, thetaS, alpha, n := p.P[0], p.P[1], p.P[2], p.P[3]
		m := 1 - 1/n
		se := (thetaM - thetaR) / (thetaS - thetaR)
		if se <= 0 {
			return 0, &RetentionDomainError{Msg: "van Genuchten Se <= 0"}
		}
		if se >= 1 {
			return 0, nil
		}
		inner := math.Pow(se, -1/m) - 1
		if inner <= 0 {
			return 0, &RetentionDomainError{Msg: "van Genuchten inner term <= 0"}
		}
		psiBar := math.Pow(inner, 1/n) / alpha / BarToCM
		return psiBar, nil
	default:
		return 0, &ConfigError{"Family", "unknown SWRC family"}
	}
}

// SWPtoSWC is the inverse of SWCtoSWP: given a matric potential (bar) it
// returns bulk soil water content (cm, per layer).
func SWPtoSWC(swp, width, gravel float64, p SWRCParams) (float64, error) {
	if swp <= 0 {
		return 0, &ConfigError{"swp", "must be > 0"}
	}
	switch p.Family {
	case SWRCCampbell1974:
		psiS, thetaS, b := p.P[0], p.P[1], p.P[2]
		thetaM := thetaS * math.Pow(psiS/(swp), 1/b)
		return thetaM * width * (1 - gravel), nil
	case SWRCVanGenuchten1980:
		thetaR, thetaS, alpha, n := p.P[0], p.P[1], p.P[2], p.P[3]
		m := 1 - 1/n
		psiCM := swp * BarToCM
		se := math.Pow(1+math.Pow(alpha*psiCM, n), -m)
		thetaM := thetaR + se*(thetaS-thetaR)
		return thetaM * width * (1 - gravel), nil
	default:
		return 0, &ConfigError{"Family", "unknown SWRC family"}
	}
}

// ResidualVWC estimates swc_min's volumetric residual water content using
// the Rawls-Brakensiek polynomial, valid only inside the box documented in
// §4.1. Outside the box it returns ok=false so the caller falls back to
// SWPtoSWC at 300 bar.
func ResidualVWC(sand, clay, porosity float64) (theta float64, ok bool) {
	if clay < 0.05 || clay > 0.6 || sand < 0.05 || sand > 0.7 || porosity < 0.1 || porosity >= 1 {
		return 0, false
	}
	// Rawls & Brakensiek (1985) polynomial for residual VWC.
	theta = -0.0182482 + 0.00087269*sand*100 + 0.00513488*clay*100 +
		0.02939286*porosity - 0.00015395*clay*100*clay*100 -
		0.0010827*sand*100*porosity - 0.00018233*clay*100*clay*100*porosity*porosity +
		0.00030703*clay*100*clay*100*porosity - 0.0023584*porosity*porosity*clay*100
	if theta < 0 {
		theta = 0
	}
	return theta, true
}
