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
	"testing"
)

func TestNewSiteValidConfig(t *testing.T) {
	s := newTestSite(t)
	if len(s.Layers) != 3 {
		t.Fatalf("len(s.Layers) = %d, want 3", len(s.Layers))
	}
	if s.TempGrid == nil {
		t.Fatal("NewSite did not build a temperature grid")
	}
}

func TestNewSiteRejectsZeroLayers(t *testing.T) {
	cfg := newTestSiteConfig()
	cfg.Layers = nil
	if _, err := NewSite(cfg); err == nil {
		t.Error("expected ConfigError for zero layers")
	}
}

func TestNewSiteRejectsBadCover(t *testing.T) {
	cfg := newTestSiteConfig()
	cfg.Veg[Grasses].Cover = 1
	cfg.Veg[Trees] = VegTypeConfig{Cover: 1}
	if _, err := NewSite(cfg); err == nil {
		t.Error("expected ConfigError when veg cover fractions sum past 1")
	}
}

func TestNormalizeCoefficientsSumsToOne(t *testing.T) {
	s := newTestSite(t)

	var evapSum float64
	for _, l := range s.Layers {
		evapSum += l.EvapCoeff()
	}
	if math.Abs(evapSum-1) > 1e-6 {
		t.Errorf("sum(evapCoeff) = %v, want 1", evapSum)
	}

	var transpSum float64
	for _, l := range s.Layers {
		transpSum += l.TranspCoeff(Grasses)
	}
	if math.Abs(transpSum-1) > 1e-6 {
		t.Errorf("sum(transpCoeff[grasses]) = %v, want 1", transpSum)
	}
}

func TestBareGroundCover(t *testing.T) {
	s := newTestSite(t)
	if got := s.bareGroundCover(); got != 0 {
		t.Errorf("bareGroundCover() = %v, want 0 (full grass cover)", got)
	}
}

func TestResetYearPolicy(t *testing.T) {
	s := newTestSite(t)
	s.Global.ResetEachYear = true
	s.Layers[0].SWCToday = s.Layers[0].SWCMin
	s.AnnualDeepDrainage = 5

	s.ResetYear()

	if s.AnnualDeepDrainage != 0 {
		t.Errorf("AnnualDeepDrainage = %v, want 0 after ResetYear", s.AnnualDeepDrainage)
	}
	if s.Layers[0].SWCToday != s.Layers[0].SWCInit {
		t.Errorf("SWCToday = %v, want SWCInit=%v after reset", s.Layers[0].SWCToday, s.Layers[0].SWCInit)
	}
}

func TestResetYearNoOpWhenPolicyDisabled(t *testing.T) {
	s := newTestSite(t)
	s.Global.ResetEachYear = false
	s.Layers[0].SWCToday = s.Layers[0].SWCMin

	s.ResetYear()

	if s.Layers[0].SWCToday != s.Layers[0].SWCMin {
		t.Errorf("SWCToday changed despite ResetEachYear=false: got %v, want %v", s.Layers[0].SWCToday, s.Layers[0].SWCMin)
	}
}
