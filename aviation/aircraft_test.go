// aviation/aircraft_test.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
)

const c172Profile = `
name: C172S
icao: C172
weight:
  max: 2550
  reference: 2550
vspeeds:
  - {weight: 2550, vr: 55, vx: 62, vy: 74}
  - {weight: 2200, vr: 51, vx: 58, vy: 70}
climb:
  - {altitude: 4000, roc: 560, tas: 78, fuelFlow: 14.5}
  - {altitude: 0, roc: 730, tas: 74, fuelFlow: 16}
  - {altitude: 8000, roc: 390, tas: 81, fuelFlow: 12.5}
takeoff:
  groundRoll: 960
maxDemonstratedCrosswind: 15
deviation:
  - {for: 0, steer: 2}
  - {for: 180, steer: 178}
`

func writeProfile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAircraftPerformanceYAML(t *testing.T) {
	ap, err := LoadAircraftPerformance(writeProfile(t, "c172.yaml", c172Profile))
	if err != nil {
		t.Fatalf("LoadAircraftPerformance: %v", err)
	}

	if ap.Name != "C172S" || ap.Weight.Max != 2550 || ap.Takeoff.GroundRoll != 960 {
		t.Errorf("unexpected profile %+v", ap)
	}
	if lo, hi := ap.ClimbRange(); lo != 0 || hi != 8000 {
		t.Errorf("climb table not sorted: range %f-%f", lo, hi)
	}
	if ap.VSpeeds[0].Weight != 2200 {
		t.Errorf("vspeed table not sorted: %+v", ap.VSpeeds)
	}
	if d, err := ap.DeviationTable(); err != nil || d.Len() != 2 {
		t.Errorf("deviation table: %v, %d entries", err, d.Len())
	}
}

func TestLoadAircraftPerformanceJSON(t *testing.T) {
	profile := `{"name": "PA28", "weight": {"max": 2400, "reference": 2400},
"vspeeds": [{"weight": 2400, "vr": 55, "vx": 64, "vy": 76}],
"climb": [{"altitude": 0, "roc": 660, "tas": 76, "fuelFlow": 12}],
"takeoff": {"groundRoll": 1000}}`
	ap, err := LoadAircraftPerformance(writeProfile(t, "pa28.json", profile))
	if err != nil {
		t.Fatalf("LoadAircraftPerformance: %v", err)
	}
	if ap.Name != "PA28" || len(ap.Climb) != 1 {
		t.Errorf("unexpected profile %+v", ap)
	}
}

func TestLoadAircraftPerformanceErrors(t *testing.T) {
	if _, err := LoadAircraftPerformance(writeProfile(t, "c172.toml", c172Profile)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err := LoadAircraftPerformance(writeProfile(t, "bad.yaml", "name: X\nweight: {max: 0, reference: 2000}\n"))
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, msg := range []string{"maximum weight", "ground roll", "vspeeds: no entries", "climb: no entries"} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("error %q doesn't mention %q", err, msg)
		}
	}
}

func TestLoadAircraftPerformanceDuplicateKeys(t *testing.T) {
	profile := `{"name": "PA28", "weight": {"max": 2400, "reference": 2400, "max": 2550},
"vspeeds": [{"weight": 2400, "vr": 55, "vx": 64, "vy": 76}],
"climb": [{"altitude": 0, "roc": 660, "tas": 76, "fuelFlow": 12}],
"takeoff": {"groundRoll": 1000}}`
	_, err := LoadAircraftPerformance(writeProfile(t, "pa28.json", profile))
	if err == nil || !strings.Contains(err.Error(), `duplicate key "max" in "weight"`) {
		t.Errorf("expected a duplicate key error, got %v", err)
	}

	dupYAML := strings.Replace(c172Profile, "icao: C172", "icao: C172\nname: C172R", 1)
	if _, err := LoadAircraftPerformance(writeProfile(t, "c172.yaml", dupYAML)); err == nil {
		t.Errorf("expected an error for a duplicate YAML key")
	}
}

func TestAircraftCheckContext(t *testing.T) {
	var ap AircraftPerformance
	var e util.ErrorLogger
	ap.Check(&e)
	if !e.HaveErrors() {
		t.Fatalf("expected errors for an empty profile")
	}
	if errs := e.Errors(); errs[0] != ErrNoAircraftName.Error() {
		t.Errorf("first error %q", errs[0])
	}
	e.CheckDepth(0)
}

func TestVSpeedsAt(t *testing.T) {
	ap := &AircraftPerformance{VSpeeds: []VSpeedEntry{
		{Weight: 2200, VR: 51, VX: 58, VY: 70},
		{Weight: 2550, VR: 55, VX: 62, VY: 74},
	}}

	tests := []struct {
		weight float32
		vr     float32
	}{
		{2200, 51},
		{2550, 55},
		{2375, 53},
		{2000, 51}, // clamped
		{3000, 55},
	}
	for _, tt := range tests {
		vs, err := ap.VSpeedsAt(tt.weight)
		if err != nil {
			t.Errorf("%f: %v", tt.weight, err)
		} else if math.Abs(vs.VR-tt.vr) > 1e-3 {
			t.Errorf("VR at %f = %f, expected %f", tt.weight, vs.VR, tt.vr)
		}
	}

	single := &AircraftPerformance{VSpeeds: []VSpeedEntry{{Weight: 2500, VR: 50, VX: 60, VY: 70}}}
	vs, err := single.VSpeedsAt(2500 * 0.81)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(vs.VR-45) > 1e-3 || math.Abs(vs.VX-54) > 1e-3 || math.Abs(vs.VY-63) > 1e-3 {
		t.Errorf("single entry scaling: got %+v", vs)
	}

	if _, err := (&AircraftPerformance{}).VSpeedsAt(2000); !errors.Is(err, math.ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

func TestClimbAt(t *testing.T) {
	ap := &AircraftPerformance{Climb: []ClimbEntry{
		{Altitude: 0, ROC: 730, TAS: 74, FuelFlow: 16},
		{Altitude: 4000, ROC: 560, TAS: 78, FuelFlow: 14.5},
	}}

	cp, err := ap.ClimbAt(2000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cp.ROC-645) > 1e-3 || math.Abs(cp.TAS-76) > 1e-3 || math.Abs(cp.FuelFlow-15.25) > 1e-3 {
		t.Errorf("ClimbAt(2000) = %+v", cp)
	}

	if cp, err := ap.ClimbAt(9000); err != nil || cp.ROC != 560 {
		t.Errorf("ClimbAt(9000) = %+v, %v; expected clamping to 560", cp, err)
	}

	if _, err := (&AircraftPerformance{}).ClimbAt(0); !errors.Is(err, math.ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}
