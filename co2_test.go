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

import "testing"

func TestApplyCO2ForYearTreesApplyToPctLive(t *testing.T) {
	cfg := newTestSiteConfig()
	cfg.Veg[Trees] = VegTypeConfig{
		Cover:          0,
		MonthlyBiomass: [12]float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100},
		MonthlyPctLive: [12]float64{40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40},
		MonthlyLAIConv: [12]float64{0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02},
		CO2:            CO2Coeffs{BiomassC1: 1, BiomassC2: 0.3, WUEC1: 1, WUEC2: 0.1},
	}
	cfg.Veg[Grasses].Cover = 1
	s, err := NewSite(cfg)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}

	baseBiomass := s.Veg[Trees].DailyBiomass[0]
	basePctLive := s.Veg[Trees].DailyPctLive[0]

	s.ApplyCO2ForYear(600)

	if s.Veg[Trees].DailyBiomass[0] != baseBiomass {
		t.Errorf("trees: DailyBiomass changed under CO2 (want unchanged, biomass mult applies to pct-live): before=%v after=%v", baseBiomass, s.Veg[Trees].DailyBiomass[0])
	}
	if s.Veg[Trees].DailyPctLive[0] == basePctLive {
		t.Error("trees: DailyPctLive did not change under a non-trivial CO2 multiplier")
	}
}

func TestApplyCO2ForYearOthersApplyToBiomass(t *testing.T) {
	cfg := newTestSiteConfig()
	cfg.Veg[Grasses].CO2 = CO2Coeffs{BiomassC1: 1, BiomassC2: 0.3, WUEC1: 1, WUEC2: 0.1}
	s, err := NewSite(cfg)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}

	basePctLive := s.Veg[Grasses].DailyPctLive[0]

	s.ApplyCO2ForYear(600)

	if s.Veg[Grasses].DailyPctLive[0] != basePctLive {
		t.Errorf("grasses: DailyPctLive changed under CO2 (want unchanged, biomass mult applies to biomass): before=%v after=%v", basePctLive, s.Veg[Grasses].DailyPctLive[0])
	}
}

func TestApplyCO2ForYearDefaultMultiplierIsOne(t *testing.T) {
	s := newTestSite(t)
	before := s.Veg[Grasses].DailyLAI[0]

	cfg := newTestSiteConfig()
	cfg.Veg[Grasses].CO2 = CO2Coeffs{}
	s2, err := NewSite(cfg)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	s2.ApplyCO2ForYear(400)

	if s2.Veg[Grasses].DailyLAI[0] != before {
		t.Errorf("zero-valued CO2Coeffs should behave as a 1x multiplier: got %v, want %v", s2.Veg[Grasses].DailyLAI[0], before)
	}
}
