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

func TestStepDayProducesNonNegativeSWC(t *testing.T) {
	s := newTestSite(t)
	w := testDay(2020, 1, 5, 20, 1.5)
	atmos := AtmosphericInputs{PET: 0.4, SolarRadiation: 18}

	out, err := s.StepDay(w, atmos, nil)
	if err != nil {
		t.Fatalf("StepDay: %v", err)
	}
	for i, lo := range out.Layers {
		if lo.SWC < 0 {
			t.Errorf("layer %d SWC = %v, want >= 0", i, lo.SWC)
		}
	}
	if out.AET < 0 {
		t.Errorf("AET = %v, want >= 0", out.AET)
	}
	if out.AET > out.PET+1e-6 {
		t.Errorf("AET = %v exceeds PET = %v", out.AET, out.PET)
	}
}

func TestStepDayAETEqualsSumOfComponents(t *testing.T) {
	s := newTestSite(t)
	w := testDay(2020, 1, 5, 20, 1.5)
	atmos := AtmosphericInputs{PET: 0.4, SolarRadiation: 18}

	out, err := s.StepDay(w, atmos, nil)
	if err != nil {
		t.Fatalf("StepDay: %v", err)
	}

	var sumE, sumT, bareE, vegE float64
	for v := range AllVegKinds {
		sumE += out.InterceptedEvap[v]
	}
	for i := range out.Layers {
		bareE += out.Layers[i].BareSoilEvap
		for v := range AllVegKinds {
			vegE += out.Layers[i].VegSoilEvap[v]
			sumT += out.Layers[i].Transpiration[v]
		}
	}
	expected := sumE + out.LitterEvap + out.PondEvap + sumT + bareE + vegE + out.SnowLoss

	if diff := math.Abs(out.AET - expected); diff > 1e-6 {
		t.Errorf("AET = %v, sum of components = %v (diff %v)", out.AET, expected, diff)
	}
}

func TestStepDayIsDeterministic(t *testing.T) {
	s1 := newTestSite(t)
	s2 := newTestSite(t)

	days := []DailyWeather{
		testDay(2020, 1, 5, 20, 1.5),
		testDay(2020, 2, 6, 21, 0),
		testDay(2020, 3, 4, 19, 0.3),
	}
	atmos := AtmosphericInputs{PET: 0.4, SolarRadiation: 18}

	var out1, out2 *DayOutput
	for _, w := range days {
		var err error
		out1, err = s1.StepDay(w, atmos, nil)
		if err != nil {
			t.Fatalf("s1.StepDay: %v", err)
		}
		out2, err = s2.StepDay(w, atmos, nil)
		if err != nil {
			t.Fatalf("s2.StepDay: %v", err)
		}
	}

	if out1.AET != out2.AET {
		t.Errorf("AET diverged across identical runs: %v vs %v", out1.AET, out2.AET)
	}
	for i := range out1.Layers {
		if out1.Layers[i].SWC != out2.Layers[i].SWC {
			t.Errorf("layer %d SWC diverged: %v vs %v", i, out1.Layers[i].SWC, out2.Layers[i].SWC)
		}
	}
}

func TestStepDayReturnsStickyErrorAfterFatal(t *testing.T) {
	s := newTestSite(t)
	sentinel := &ConfigError{Field: "test", Msg: "forced"}
	s.err = sentinel

	_, err := s.StepDay(testDay(2020, 1, 5, 20, 0), AtmosphericInputs{PET: 0.4}, nil)
	if err != sentinel {
		t.Errorf("StepDay = %v, want sticky sentinel error %v", err, sentinel)
	}
}

func TestStepDayOverWholeYear(t *testing.T) {
	s := newTestSite(t)
	atmos := AtmosphericInputs{PET: 0.3, SolarRadiation: 15}

	for doy := 1; doy <= 365; doy++ {
		tmin := 5 + 10*math.Sin(float64(doy)/365*2*math.Pi)
		tmax := tmin + 10
		ppt := 0.0
		if doy%7 == 0 {
			ppt = 0.8
		}
		w := testDay(2020, doy, tmin, tmax, ppt)
		if _, err := s.StepDay(w, atmos, nil); err != nil {
			t.Fatalf("StepDay(doy=%d): %v", doy, err)
		}
	}
	if s.Err() != nil {
		t.Fatalf("Site.Err() = %v after a full year", s.Err())
	}
}
