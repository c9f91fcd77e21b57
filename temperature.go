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
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxRegressionNodes bounds the regression grid's node count (MAX_ST_RGR
// in the original source, §4.8).
const MaxRegressionNodes = 45

// TempGridParams are the caller-supplied regression-grid parameters of
// §3 "TemperatureGrid" / §6.
type TempGridParams struct {
	DX   float64 // cm, default 15
	Zmax float64 // cm, default 180
}

// defaultTempGridParams are used when validation resets an out-of-range
// request to the documented defaults (§4.8).
var defaultTempGridParams = TempGridParams{DX: 15, Zmax: 180}

// tempGrid holds the once-per-run regression grid state: the depth nodes,
// their interpolated soil properties, and the soil-layer-to-node mapping
// matrix of §3.
type tempGrid struct {
	params TempGridParams
	nR     int // regression node count, not counting the constant-temp boundary

	depth   []float64
	fc      []float64
	wp      []float64
	bulkDen []float64

	tempYesterday []float64
	tempToday     []float64
	minToday      []float64
	maxToday      []float64
	lastAlpha     []float64 // thermal diffusivity per node from the most recent stable diffusion step

	// mapping is the (nR+1) x (nLayers+1) tlyrs_by_slyrs matrix of §3:
	// element (i, j) is the depth contribution of soil layer j to node i.
	// The final column's negative entries mean "copy deepest soil layer"
	// for nodes beyond the soil profile.
	mapping *mat.Dense
}

// newTempGrid builds the regression grid and its soil-layer mapping
// matrix once per run, implementing §4.8 "Grid setup".
func newTempGrid(p TempGridParams, layers []*Layer) (*tempGrid, error) {
	deepest := 0.0
	for _, l := range layers {
		deepest += l.Width()
	}

	if p.DX <= 0 || p.Zmax <= 0 {
		p = defaultTempGridParams
	}
	nR := int(p.Zmax/p.DX) - 1
	if nR+1 >= MaxRegressionNodes {
		return nil, &ConfigError{"TempGrid", "regression grid too coarse/deep: exceeds MAX_ST_RGR"}
	}
	if p.Zmax < deepest {
		return nil, &ConfigError{"TempGrid", "Zmax must be >= deepest soil layer depth"}
	}
	if math.Mod(p.Zmax, p.DX) != 0 {
		p = defaultTempGridParams
		nR = int(p.Zmax/p.DX) - 1
	}

	g := &tempGrid{params: p, nR: nR}
	g.depth = make([]float64, nR+1)
	for i := 0; i <= nR; i++ {
		g.depth[i] = float64(i+1) * p.DX
	}
	g.fc = make([]float64, nR+1)
	g.wp = make([]float64, nR+1)
	g.bulkDen = make([]float64, nR+1)
	g.tempYesterday = make([]float64, nR+1)
	g.tempToday = make([]float64, nR+1)
	g.minToday = make([]float64, nR+1)
	g.maxToday = make([]float64, nR+1)

	nL := len(layers)
	m := mat.NewDense(nR+1, nL+1, nil)
	layerTop := make([]float64, nL)
	acc := 0.0
	for i, l := range layers {
		layerTop[i] = acc
		acc += l.Width()
	}
	for i := 0; i <= nR; i++ {
		top := float64(i) * p.DX
		bot := float64(i+1) * p.DX
		for j, l := range layers {
			lo := max(top, layerTop[j])
			hi := min(bot, layerTop[j]+l.Width())
			contrib := hi - lo
			if contrib > 0 {
				m.Set(i, j, contrib)
			}
		}
		if bot > deepest {
			// Node extends past the soil profile: mark "copy deepest
			// soil layer" with a negative sentinel in the final column.
			m.Set(i, nL, -1)
		}
	}
	g.mapping = m

	g.interpolateStatic(layers)
	for i := range g.tempYesterday {
		g.tempYesterday[i] = g.fromDeepestOrInterp(layers, i, func(l *Layer) float64 { return l.cfg.InitialSoilTemp })
	}
	copy(g.tempToday, g.tempYesterday)
	return g, nil
}

// interpolateStatic interpolates FC, WP, and bulk density onto the
// regression grid using the mapping matrix's contribution widths,
// bilinear in depth (§4.8).
func (g *tempGrid) interpolateStatic(layers []*Layer) {
	for i := 0; i <= g.nR; i++ {
		var fcSum, wpSum, bdSum, wSum float64
		for j, l := range layers {
			w := g.mapping.At(i, j)
			if w <= 0 {
				continue
			}
			fcSum += w * l.SWCFieldCap / l.Width()
			wpSum += w * l.SWCWiltPt / l.Width()
			bdSum += w * l.BulkDensity
			wSum += w
		}
		if wSum > 0 {
			g.fc[i] = fcSum / wSum
			g.wp[i] = wpSum / wSum
			g.bulkDen[i] = bdSum / wSum
		} else if len(layers) > 0 {
			deep := layers[len(layers)-1]
			g.fc[i] = deep.SWCFieldCap / deep.Width()
			g.wp[i] = deep.SWCWiltPt / deep.Width()
			g.bulkDen[i] = deep.BulkDensity
		}
	}
}

// fromDeepestOrInterp interpolates a per-layer quantity onto node i using
// the mapping matrix, falling back to the deepest soil layer's value when
// the node lies past the soil profile.
func (g *tempGrid) fromDeepestOrInterp(layers []*Layer, i int, get func(*Layer) float64) float64 {
	var sum, wSum float64
	for j, l := range layers {
		w := g.mapping.At(i, j)
		if w <= 0 {
			continue
		}
		sum += w * get(l)
		wSum += w
	}
	if wSum > 0 {
		return sum / wSum
	}
	if len(layers) > 0 {
		return get(layers[len(layers)-1])
	}
	return 0
}

// interpolateVWC maps today's soil-layer VWC onto the regression grid
// (§4.8 step 2).
func (g *tempGrid) interpolateVWC(layers []*Layer) []float64 {
	vwc := make([]float64, g.nR+1)
	for i := 0; i <= g.nR; i++ {
		vwc[i] = g.fromDeepestOrInterp(layers, i, func(l *Layer) float64 {
			return l.SWCToday / l.Width()
		})
	}
	return vwc
}

// surfaceTemperatureUnderSnow implements §4.8 step 1's snow-covered
// surface temperature rule.
func surfaceTemperatureUnderSnow(tavg, snow float64) float64 {
	if snow == 0 {
		return 0
	}
	if tavg >= 0 {
		return -2
	}
	return 0.3*tavg*max(-0.15*snow+1, 0) - 2
}

// surfaceTemperatureNoSnow implements §4.8 step 1's snow-free surface
// temperature rule using the t1 constants (15, -4, 600) of §6.
func surfaceTemperatureNoSnow(tair, pet, aet, biomass, limiter, t1a, t1b, t1c float64) float64 {
	if biomass <= limiter {
		frac := 1.0
		if pet > 0 {
			frac = 1 - aet/pet
		}
		return tair + t1a*pet*frac*(1-biomass/limiter)
	}
	return tair + (t1b*(biomass-limiter))/t1c
}

// StepTemperature advances the soil-temperature regression grid by one
// day, implementing §4.8's daily step in full: surface temperature,
// VWC interpolation, adaptive explicit diffusion, min/max damping,
// back-interpolation to layers, and freeze/thaw flagging. It returns a
// *TempUnstableError (non-fatal to the run) if diffusion could not
// stabilize within 16 sub-timestep subdivisions.
func (s *Site) StepTemperature(w DailyWeather, snowDepth, pet, aet, totalBiomass float64) error {
	if s.tempDisabled {
		return nil
	}
	g := s.TempGrid
	p := s.Global

	var surf float64
	if snowDepth > 0 {
		surf = surfaceTemperatureUnderSnow(w.TAvg(), snowDepth)
	} else {
		surf = surfaceTemperatureNoSnow(w.TAvg(), pet, aet, totalBiomass, p.BiomassLimiter, p.T1Param1, p.T1Param2, p.T1Param3)
	}

	vwc := g.interpolateVWC(s.Layers)

	dx2 := g.params.DX * g.params.DX
	const dt = 86400.0
	// Resume the adaptive search at the sub-timestep that last succeeded.
	firstAttempt := 0
	if s.lastTempDt > 0 && s.lastTempDt < dt {
		firstAttempt = int(math.Round(math.Log2(dt / s.lastTempDt)))
	}

	tPrev := make([]float64, g.nR+2) // index 0 = surface, nR+1 = constant boundary
	tPrev[0] = surf
	for i := 0; i <= g.nR; i++ {
		tPrev[i+1] = g.tempYesterday[i]
	}
	tPrev[g.nR+1] = p.TsoilConstant

	const maxSubdivisions = 16
	var success bool
	var tNext []float64
	for attempt := firstAttempt; attempt < maxSubdivisions; attempt++ {
		nSub := 1 << attempt
		subDt := dt / float64(nSub)

		alpha := make([]float64, g.nR+2)
		stable := true
		for k := 0; k <= g.nR; k++ {
			pe := 0.0
			if g.fc[k]-g.wp[k] != 0 {
				pe = (vwc[k] - g.wp[k]) / (g.fc[k] - g.wp[k])
			}
			cs := p.CSParam1 + pe*p.CSParam2
			sh := vwc[k] + p.SHParam*(1-vwc[k])
			if sh <= 0 || g.bulkDen[k] <= 0 {
				alpha[k] = 0
				continue
			}
			a := cs / (sh * g.bulkDen[k])
			alpha[k] = a
			if a*subDt/dx2 >= 0.5 {
				stable = false
			}
		}
		if !stable {
			continue
		}

		cur := append([]float64(nil), tPrev...)
		unstable := false
		for step := 0; step < nSub; step++ {
			next := append([]float64(nil), cur...)
			for i := 1; i <= g.nR; i++ {
				next[i] = cur[i] + alpha[i-1]*(subDt/dx2)*(cur[i-1]-2*cur[i]+cur[i+1])
				if math.Abs(next[i]) > 100 {
					unstable = true
				}
			}
			cur = next
			if unstable {
				break
			}
		}
		if unstable {
			continue
		}
		tNext = cur
		g.lastAlpha = alpha[:g.nR+1]
		s.lastTempDt = subDt
		success = true
		break
	}

	if !success {
		s.tempDisabled = true
		return &TempUnstableError{Year: s.year, DOY: s.doy, Msg: "diffusion failed to stabilize within 16 subdivisions"}
	}

	for i := 0; i <= g.nR; i++ {
		g.tempToday[i] = tNext[i+1]
	}

	g.dampMinMax(w.TMin, w.TMax, surf)

	g.interpolateToLayers(s.Layers)
	s.applyFusionPool() // Open Question #1: exposed, never enabled
	s.flagFreezeThaw()

	copy(g.tempYesterday, g.tempToday)
	return nil
}

// dampMinMax computes today's min/max per regression node by damping the
// surface day-range with depth, per §4.8 step 4:
//
//	exp(-z * sqrt(pi / (86400 * alphaBar)))
func (g *tempGrid) dampMinMax(tmin, tmax, surf float64) {
	const dayLen = 86400.0
	halfRange := (tmax - tmin) / 2
	var alphaSum float64
	for i := 0; i <= g.nR; i++ {
		a := 1e-6
		if g.lastAlpha != nil && i < len(g.lastAlpha) && g.lastAlpha[i] > 0 {
			a = g.lastAlpha[i]
		}
		alphaSum += a
		alphaBar := alphaSum / float64(i+1)
		damp := math.Exp(-g.depth[i] * math.Sqrt(math.Pi/(dayLen*alphaBar)))
		g.minToday[i] = g.tempToday[i] - halfRange*damp
		g.maxToday[i] = g.tempToday[i] + halfRange*damp
	}
}

// interpolateToLayers back-interpolates regression-grid results onto
// soil layers (§4.8 step 5), using the same mapping matrix transposed.
func (g *tempGrid) interpolateToLayers(layers []*Layer) {
	for j, l := range layers {
		var sum, wSum float64
		for i := 0; i <= g.nR; i++ {
			w := g.mapping.At(i, j)
			if w <= 0 {
				continue
			}
			sum += w * g.tempToday[i]
			wSum += w
		}
		if wSum > 0 {
			l.TempToday = sum / wSum
		}
	}
}

// applyFusionPool is Open Question #1 of §9: the fusion-pool freeze/thaw
// adjustment referenced against Eitzinger (2000) is retained as a literal
// no-op, gated by GlobalParams.EnableFusionPool, and must never actually
// change state regardless of the flag.
func (s *Site) applyFusionPool() {
	if !s.Global.EnableFusionPool {
		return
	}
	// Deliberately empty: see SPEC_FULL.md §5 item 1.
}

// flagFreezeThaw sets each layer's Frozen flag per §4.8 step 6:
//
//	frozen = (T_layer <= -1) and (swc > swc_sat - width*0.13)
func (s *Site) flagFreezeThaw() {
	for _, l := range s.Layers {
		l.Frozen = l.TempToday <= -1 && l.SWCToday > l.SWCSat-l.Width()*0.13
	}
}
