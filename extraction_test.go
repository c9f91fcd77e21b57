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

func testLayer(t *testing.T, id int, evapCoeff float64) *Layer {
	t.Helper()
	l, err := deriveLayer(LayerConfig{
		ID: id, Width: 20, Sand: 0.4, Clay: 0.2,
		EvapCoeff: evapCoeff,
		SWRC:      campbellParams(),
	})
	if err != nil {
		t.Fatalf("deriveLayer: %v", err)
	}
	return l
}

func TestRemoveFromSoilNonNegativeAndFloored(t *testing.T) {
	layers := []*Layer{testLayer(t, 0, 0.6), testLayer(t, 1, 0.4)}
	floor := func(l *Layer) float64 { return l.SWCMin }
	coeff := func(l *Layer) float64 { return l.EvapCoeff() }

	removed := RemoveFromSoil(layers, coeff, 1000, floor, nil)
	if removed < 0 {
		t.Fatalf("removed = %v, want >= 0", removed)
	}
	for _, l := range layers {
		if l.SWCToday < l.SWCMin-1e-9 {
			t.Errorf("layer %d SWCToday=%v fell below floor %v", l.ID(), l.SWCToday, l.SWCMin)
		}
	}
}

func TestRemoveFromSoilPerLayerSumsToRemoved(t *testing.T) {
	layers := []*Layer{testLayer(t, 0, 0.6), testLayer(t, 1, 0.4), testLayer(t, 2, 0.2)}
	floor := func(l *Layer) float64 { return l.SWCMin }
	coeff := func(l *Layer) float64 { return l.EvapCoeff() }

	perLayer := make([]float64, len(layers))
	removed := RemoveFromSoil(layers, coeff, 0.5, floor, perLayer)

	var sum float64
	for _, d := range perLayer {
		if d < 0 {
			t.Errorf("per-layer share %v is negative", d)
		}
		sum += d
	}
	if diff := sum - removed; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("sum(perLayer)=%v, want %v", sum, removed)
	}
}

func TestRemoveFromSoilSkipsFrozenLayers(t *testing.T) {
	layers := []*Layer{testLayer(t, 0, 0.6), testLayer(t, 1, 0.4)}
	layers[0].Frozen = true
	before := layers[0].SWCToday

	floor := func(l *Layer) float64 { return l.SWCMin }
	coeff := func(l *Layer) float64 { return l.EvapCoeff() }
	RemoveFromSoil(layers, coeff, 1, floor, nil)

	if layers[0].SWCToday != before {
		t.Errorf("frozen layer SWCToday changed: before=%v after=%v", before, layers[0].SWCToday)
	}
}

func TestRemoveFromSoilZeroCoeffRemovesNothing(t *testing.T) {
	layers := []*Layer{testLayer(t, 0, 0), testLayer(t, 1, 0)}
	floor := func(l *Layer) float64 { return l.SWCMin }
	coeff := func(l *Layer) float64 { return l.EvapCoeff() }

	removed := RemoveFromSoil(layers, coeff, 5, floor, nil)
	if removed != 0 {
		t.Errorf("removed = %v, want 0 when all coefficients are zero", removed)
	}
}
