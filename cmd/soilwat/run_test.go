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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const testConfigTOML = `
WeatherFile = %q
OutputFile = %q
LogLevel = "warn"

[Global]
PctRunoff = 0.1
PctRunon = 0.0
PETScale = 1.0
SlowDrainCoeff = 0.02
SlowDrainDepth = 60

[Global.Snow]
TminAccu = -2
TmaxCrit = 1
Lambda = 0.3
RmeltMin = 1
RmeltMax = 3

[Global.TempGrid]
DX = 15
Zmax = 180

[Regions]
LowerBoundLayer = [1]

[[Layers]]
ID = 0
Width = 20
Sand = 0.4
Clay = 0.2
EvapCoeff = 0.4

[[Layers]]
ID = 1
Width = 20
Sand = 0.4
Clay = 0.2
EvapCoeff = 0.3

[Veg.Trees]
Cover = 0.0

[Veg.Shrubs]
Cover = 0.0

[Veg.Forbs]
Cover = 0.0

[Veg.Grasses]
Cover = 1.0
MonthlyBiomass = [50,50,60,80,120,150,150,130,100,70,55,50]
MonthlyPctLive = [20,20,30,50,70,80,70,50,30,20,20,20]
MonthlyLAIConv = [0.02,0.02,0.02,0.02,0.02,0.02,0.02,0.02,0.02,0.02,0.02,0.02]
`

const testWeatherCSV = `Year,DOY,TMin,TMax,PPT,PET,SolarRadiation
2020,1,-2,4,0.1,0.1,8
2020,2,-1,5,0.0,0.15,9
2020,3,1,8,0.3,0.2,10
`

func TestRunSimulationProducesOutputFile(t *testing.T) {
	dir := t.TempDir()
	weatherPath := filepath.Join(dir, "weather.csv")
	outputPath := filepath.Join(dir, "out.csv")
	configPath := filepath.Join(dir, "soilwat.toml")

	if err := os.WriteFile(weatherPath, []byte(testWeatherCSV), 0o644); err != nil {
		t.Fatalf("writing weather file: %v", err)
	}
	body := fmt.Sprintf(testConfigTOML, weatherPath, outputPath)
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if err := startup(configPath); err != nil {
		t.Fatalf("startup: %v", err)
	}
	if err := runSimulation(); err != nil {
		t.Fatalf("runSimulation: %v", err)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if len(out) == 0 {
		t.Error("output file is empty")
	}
}
