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

func hydRedLayer(t *testing.T, id int, swcFrac float64) *Layer {
	t.Helper()
	l, err := deriveLayer(LayerConfig{
		ID: id, Width: 20, Sand: 0.4, Clay: 0.2,
		TranspCoeff: [NVegKinds]float64{Grasses: 0.3},
		SWRC:        campbellParams(),
	})
	if err != nil {
		t.Fatalf("deriveLayer: %v", err)
	}
	l.SWCCritSWP[Grasses] = 0
	l.SWCToday = l.SWCMin + swcFrac*(l.SWCFieldCap-l.SWCMin)
	return l
}

func hydRedVeg() *VegType {
	return &VegType{
		Kind: Grasses,
		cfg: VegTypeConfig{
			Cover: 0.5,
			HydRed: HydRedParams{
				Enabled:     true,
				MaxCondRoot: 0.0001,
				SWP50:       2.0,
				ShapeCond:   2.0,
			},
		},
	}
}

func TestHydraulicRedistributionDisabledIsNoOp(t *testing.T) {
	layers := []*Layer{hydRedLayer(t, 0, 0.9), hydRedLayer(t, 1, 0.1)}
	v := hydRedVeg()
	v.cfg.HydRed.Enabled = false

	before := layers[1].SWCToday
	hd, err := HydraulicRedistribution(layers, v, 2020, 100)
	if err != nil {
		t.Fatalf("HydraulicRedistribution: %v", err)
	}
	for _, d := range hd {
		if d != 0 {
			t.Errorf("expected all-zero hydred when disabled, got %v", d)
		}
	}
	if layers[1].SWCToday != before {
		t.Errorf("disabled HR mutated SWC: before=%v after=%v", before, layers[1].SWCToday)
	}
}

func TestHydraulicRedistributionConserves(t *testing.T) {
	layers := []*Layer{
		hydRedLayer(t, 0, 0.95),
		hydRedLayer(t, 1, 0.2),
		hydRedLayer(t, 2, 0.6),
	}
	v := hydRedVeg()

	hd, err := HydraulicRedistribution(layers, v, 2020, 100)
	if err != nil {
		t.Fatalf("HydraulicRedistribution: %v", err)
	}
	if len(hd) != len(layers) {
		t.Fatalf("len(hd)=%d, want %d", len(hd), len(layers))
	}
	var sum float64
	for _, d := range hd {
		sum += d
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("hydraulic redistribution does not conserve water: sum(hd) = %v", sum)
	}
}

func TestHydraulicRedistributionNeverPushesBelowFloor(t *testing.T) {
	layers := []*Layer{
		hydRedLayer(t, 0, 0.05),
		hydRedLayer(t, 1, 0.02),
		hydRedLayer(t, 2, 0.98),
	}
	v := hydRedVeg()

	if _, err := HydraulicRedistribution(layers, v, 2020, 100); err != nil {
		if _, ok := err.(*HydRedInfeasible); !ok {
			t.Fatalf("HydraulicRedistribution: unexpected error type %T: %v", err, err)
		}
		return
	}
	for _, l := range layers {
		if l.SWCToday < l.SWCMin-1e-9 {
			t.Errorf("layer %d SWCToday=%v fell below floor %v", l.ID(), l.SWCToday, l.SWCMin)
		}
	}
}
