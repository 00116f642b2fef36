// cmd/vfrcalc/main_test.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	av "github.com/vfrkit/vfrkit/aviation"
	"github.com/vfrkit/vfrkit/nav"
	"github.com/vfrkit/vfrkit/util"
)

// vfrcalc runs the given command with logging and the cache directed to
// temporary directories and color disabled.
func vfrcalc(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()

	cacheDir := t.TempDir()
	saved := util.CacheDir
	util.CacheDir = func() (string, error) { return cacheDir, nil }
	t.Cleanup(func() { util.CacheDir = saved })

	var out bytes.Buffer
	full := append([]string{cmd, "-logdir", t.TempDir(), "-nocolor"}, args...)
	err := run(context.Background(), full, &out)
	return out.String(), err
}

func near(a, b, tol float32) bool {
	return a-b <= tol && b-a <= tol
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(s), v); err != nil {
		t.Fatalf("%v: %s", err, s)
	}
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}} {
		if err := run(context.Background(), args, io.Discard); !errors.Is(err, errUsage) {
			t.Errorf("%v: got %v, expected usage error", args, err)
		}
	}

	var buf bytes.Buffer
	usage(&buf)
	for _, c := range commands {
		if !strings.Contains(buf.String(), c.name) {
			t.Errorf("usage doesn't mention %q", c.name)
		}
	}
}

func TestLegWindTriangle(t *testing.T) {
	out, err := vfrcalc(t, "leg", "-json", "-course", "90", "-tas", "120", "-wind", "180/25")
	if err != nil {
		t.Fatal(err)
	}

	var res struct {
		TrueHeading         float32  `json:"trueHeading"`
		WindCorrectionAngle float32  `json:"windCorrectionAngle"`
		GroundSpeed         float32  `json:"groundSpeed"`
		ETAS                *float32 `json:"etas"`
		Headwind            float32  `json:"headwind"`
		Crosswind           float32  `json:"crosswind"`
		LegFuel             *float32 `json:"legFuel"`
	}
	decodeJSON(t, out, &res)

	if res.WindCorrectionAngle != 12 || res.TrueHeading != 102 {
		t.Errorf("WCA %v TH %v, expected 12 and 102", res.WindCorrectionAngle, res.TrueHeading)
	}
	if res.GroundSpeed != 117.4 || res.ETAS == nil || *res.ETAS != 117.4 {
		t.Errorf("GS %v ETAS %v, expected 117.4", res.GroundSpeed, res.ETAS)
	}
	if res.Crosswind != 25 || res.Headwind != 0 {
		t.Errorf("crosswind %v headwind %v", res.Crosswind, res.Headwind)
	}
	if res.LegFuel != nil {
		t.Errorf("leg fuel %v without a distance", *res.LegFuel)
	}

	if !strings.HasPrefix(strings.TrimSpace(out), `{
  "trueHeading"`) {
		t.Errorf("JSON keys not in order: %s", out)
	}
}

func TestLegVariation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mc      float32
		wantErr bool
	}{
		{"west letter", []string{"-var", "5W"}, 95, false},
		{"negative is west", []string{"-var", "-5"}, 95, false},
		{"legacy negative is east", []string{"-var", "-5", "-varconv", "legacy"}, 85, false},
		{"east", []string{"-var", "3.5E"}, 86.5, false},
		{"bad variation", []string{"-var", "5X"}, 0, true},
		{"bad convention", []string{"-var", "5W", "-varconv", "nope"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-json", "-course", "90", "-tas", "100"}, tt.args...)
			out, err := vfrcalc(t, "leg", args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			var res struct {
				MagneticCourse float32 `json:"magneticCourse"`
			}
			decodeJSON(t, out, &res)
			if res.MagneticCourse != tt.mc {
				t.Errorf("magnetic course %v, expected %v", res.MagneticCourse, tt.mc)
			}
		})
	}
}

func TestLegDeviationFromProfile(t *testing.T) {
	out, err := vfrcalc(t, "leg", "-course", "90", "-tas", "100", "-aircraft", "testdata/c172s.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "MH 090  CC 088") {
		t.Errorf("expected compass course 088:\n%s", out)
	}
}

func TestLegWaypoints(t *testing.T) {
	out, err := vfrcalc(t, "leg", "-json", "-course", "0", "-tas", "100", "-dist", "100", "-ff", "10",
		"-depart", "10:00", "-prior-time", "0:30", "-prior-fuel", "4", "-waypoints", "testdata/waypoints.json")
	if err != nil {
		t.Fatal(err)
	}

	var res struct {
		LegFuel   float32              `json:"legFuel"`
		ETA       string               `json:"eta"`
		Waypoints []nav.WaypointResult `json:"waypoints"`
		Elapsed   nav.Elapsed          `json:"elapsed"`
	}
	decodeJSON(t, out, &res)

	if res.LegFuel != 10 || res.ETA != "11:30" {
		t.Errorf("leg fuel %v ETA %q, expected 10 and 11:30", res.LegFuel, res.ETA)
	}
	if res.Elapsed.Time != 1.5 || res.Elapsed.Fuel != 14 {
		t.Errorf("elapsed %+v, expected 1.5h and 14", res.Elapsed)
	}

	if len(res.Waypoints) != 3 {
		t.Fatalf("got %d waypoints, expected 3", len(res.Waypoints))
	}
	etas := []string{"10:42", "11:06", "11:30"}
	for i, wp := range res.Waypoints {
		if wp.ETA == nil || wp.ETA.String() != etas[i] {
			t.Errorf("%s: ETA %v, expected %s", wp.Name, wp.ETA, etas[i])
		}
	}
	if last := res.Waypoints[2]; !near(last.Elapsed.Fuel, 14, 1e-3) {
		t.Errorf("fuel at destination %v, expected 14", last.Elapsed.Fuel)
	}
}

func TestLegPhasesText(t *testing.T) {
	out, err := vfrcalc(t, "leg", "-course", "90", "-tas", "110", "-dist", "100", "-ff", "30",
		"-climb", "80,10,3", "-descent", "110,20,1", "-extra", "2", "-approach", "1.5", "-final")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"climb", "cruise", "descent", "fuel"} {
		if !strings.Contains(out, s) {
			t.Errorf("output doesn't mention %q:\n%s", s, out)
		}
	}
}

func TestLegErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"missing course", []string{"-tas", "100"}, nav.ErrMissingCourse},
		{"missing TAS", []string{"-course", "90"}, nav.ErrMissingTAS},
		{"climb too long", []string{"-course", "90", "-tas", "100", "-dist", "5", "-climb", "80,10,3"},
			nav.ErrNegativeCruiseDistance},
		{"partial descent", []string{"-course", "90", "-tas", "100", "-descentwind", "270/10"}, nav.ErrPartialDescent},
		{"short climb", []string{"-course", "90", "-tas", "100", "-climb", "80,10"}, nil},
		{"bad wind", []string{"-course", "90", "-tas", "100", "-wind", "abc/10"}, nil},
		{"bad prior time", []string{"-course", "90", "-tas", "100", "-prior-time", "1:75"}, nil},
		{"missing waypoints", []string{"-course", "90", "-tas", "100", "-dist", "10", "-waypoints", "nope.json"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vfrcalc(t, "leg", tt.args...)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("got %v, expected %v", err, tt.err)
			}
		})
	}
}

func TestLegHelp(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), []string{"leg", "-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("got %v, expected flag.ErrHelp", err)
	}
}

type takeoffJSON struct {
	Decision         string   `json:"decision"`
	SafetyMargin     float32  `json:"safetyMargin"`
	GroundRoll       float32  `json:"groundRoll"`
	ObstacleDistance float32  `json:"obstacleDistance"`
	Warnings         []string `json:"warnings"`
	Errors           []string `json:"errors"`
	Weight           float32  `json:"weight"`
}

func TestTakeoff(t *testing.T) {
	out, err := vfrcalc(t, "takeoff", "-json", "-aircraft", "testdata/c172s.yaml", "-da", "5000", "-rwy", "3000")
	if err != nil {
		t.Fatal(err)
	}

	var res takeoffJSON
	decodeJSON(t, out, &res)
	if res.Decision != "GO" || res.Weight != 2550 {
		t.Errorf("decision %s at %v lbs, expected GO at 2550", res.Decision, res.Weight)
	}
	if !near(res.GroundRoll, 1293, 1) || !near(res.ObstacleDistance, 1947, 2) {
		t.Errorf("ground roll %v obstacle %v", res.GroundRoll, res.ObstacleDistance)
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 1 {
		t.Errorf("errors %v warnings %v, expected only the ISA warning", res.Errors, res.Warnings)
	}

	text, err := vfrcalc(t, "takeoff", "-aircraft", "testdata/c172s.yaml", "-da", "5000", "-rwy", "1500")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "NO-GO") {
		t.Errorf("expected NO-GO on a short runway:\n%s", text)
	}
}

func TestTakeoffWind(t *testing.T) {
	components, err := vfrcalc(t, "takeoff", "-json", "-aircraft", "testdata/c172s.yaml", "-pa", "0",
		"-oat", "15", "-rwy", "3000", "-hw", "10")
	if err != nil {
		t.Fatal(err)
	}
	wind, err := vfrcalc(t, "takeoff", "-json", "-aircraft", "testdata/c172s.yaml", "-elev", "0",
		"-qnh", "1013.25", "-oat", "15", "-rwy", "3000", "-wind", "090/10", "-rwyhdg", "90")
	if err != nil {
		t.Fatal(err)
	}

	var a, b takeoffJSON
	decodeJSON(t, components, &a)
	decodeJSON(t, wind, &b)
	if !near(a.GroundRoll, b.GroundRoll, 1) {
		t.Errorf("ground roll %v with components, %v with the wind", a.GroundRoll, b.GroundRoll)
	}
}

func TestTakeoffSweep(t *testing.T) {
	out, err := vfrcalc(t, "takeoff", "-json", "-aircraft", "testdata/c172s.yaml", "-da", "3000",
		"-rwy", "3000", "-surface", "TURF", "-sweep", "2200,2400,2550")
	if err != nil {
		t.Fatal(err)
	}

	var res struct {
		Aircraft string        `json:"aircraft"`
		Results  []takeoffJSON `json:"results"`
	}
	decodeJSON(t, out, &res)
	if res.Aircraft != "C172S" || len(res.Results) != 3 {
		t.Fatalf("unexpected sweep %+v", res)
	}
	for i := 1; i < len(res.Results); i++ {
		if res.Results[i].GroundRoll <= res.Results[i-1].GroundRoll {
			t.Errorf("ground roll not increasing with weight: %+v", res.Results)
		}
	}
}

func TestTakeoffErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"no aircraft", []string{"-da", "0", "-rwy", "3000"}, nil},
		{"no altitude", []string{"-aircraft", "testdata/c172s.yaml", "-rwy", "3000"}, nil},
		{"two altitudes", []string{"-aircraft", "testdata/c172s.yaml", "-pa", "0", "-da", "0", "-rwy", "3000"}, nil},
		{"unknown surface", []string{"-aircraft", "testdata/c172s.yaml", "-da", "0", "-rwy", "3000", "-surface", "XYZ"},
			av.ErrUnknownSurface},
		{"wind without heading", []string{"-aircraft", "testdata/c172s.yaml", "-da", "0", "-rwy", "3000",
			"-wind", "090/10"}, nil},
		{"wind and components", []string{"-aircraft", "testdata/c172s.yaml", "-da", "0", "-rwy", "3000",
			"-wind", "090/10", "-rwyhdg", "90", "-hw", "5"}, nil},
		{"bad sweep", []string{"-aircraft", "testdata/c172s.yaml", "-da", "0", "-rwy", "3000", "-sweep", "2200,x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vfrcalc(t, "takeoff", tt.args...)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("got %v, expected %v", err, tt.err)
			}
		})
	}
}

type runwaysJSON struct {
	Airport           string  `json:"airport"`
	MagneticVariation float32 `json:"magneticVariation"`
	Runways           []struct {
		Runway   string      `json:"runway"`
		Headwind float32     `json:"headwind"`
		Takeoff  takeoffJSON `json:"takeoff"`
	} `json:"runways"`
	Notes []string `json:"notes"`
}

func TestRunways(t *testing.T) {
	out, err := vfrcalc(t, "runways", "-json", "-aircraft", "testdata/c172s.yaml", "-airport", "saez",
		"-runways", "testdata/runways.json", "-airports", "testdata/airports.json", "-date", "2024-06-01",
		"-wind", "290/10", "-oat", "20")
	if err != nil {
		t.Fatal(err)
	}

	var res runwaysJSON
	decodeJSON(t, out, &res)
	if res.MagneticVariation < -13 || res.MagneticVariation > -4 {
		t.Errorf("magnetic variation %v, expected a few degrees west", res.MagneticVariation)
	}
	if len(res.Runways) != 4 {
		t.Fatalf("got %d runway ends, expected 4", len(res.Runways))
	}
	if best := res.Runways[0]; best.Runway != "29" || best.Headwind < 9 {
		t.Errorf("best runway %s with headwind %v, expected 29 into the wind", best.Runway, best.Headwind)
	}
	for i, r := range res.Runways {
		if r.Takeoff.Decision != "GO" {
			t.Errorf("runway %s: %s, expected GO", r.Runway, r.Takeoff.Decision)
		}
		if i > 0 && r.Takeoff.SafetyMargin > res.Runways[i-1].Takeoff.SafetyMargin {
			t.Errorf("runways not sorted by margin")
		}
	}
	if len(res.Notes) != 0 {
		t.Errorf("unexpected notes %v", res.Notes)
	}
}

func TestRunwaysUnusable(t *testing.T) {
	out, err := vfrcalc(t, "runways", "-json", "-aircraft", "testdata/c172s.yaml", "-airport", "SAXG",
		"-runways", "testdata/runways.json", "-airports", "testdata/airports.json", "-date", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}

	var res runwaysJSON
	decodeJSON(t, out, &res)
	if len(res.Runways) != 4 {
		t.Fatalf("got %d runway ends, expected 4", len(res.Runways))
	}
	for i, r := range res.Runways {
		water := r.Runway == "18" || r.Runway == "36"
		if water != (i >= 2) {
			t.Errorf("runway %s at position %d", r.Runway, i)
		}
		if water && (r.Takeoff.Decision != "NO-GO" || len(r.Takeoff.Errors) == 0) {
			t.Errorf("water runway %s: %+v", r.Runway, r.Takeoff)
		}
	}
}

func TestRunwaysErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-aircraft", "testdata/c172s.yaml", "-runways", "testdata/runways.json"},
		{"-aircraft", "testdata/c172s.yaml", "-airport", "KXYZ", "-runways", "testdata/runways.json"},
		{"-aircraft", "testdata/c172s.yaml", "-airport", "SAEZ", "-runways", "testdata/runways.json", "-date", "June"},
	} {
		if _, err := vfrcalc(t, "runways", args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}
