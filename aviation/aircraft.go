// aviation/aircraft.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"

	"gopkg.in/yaml.v3"
)

// AircraftPerformance holds the POH data used by the takeoff model. Tables
// are given at the reference weight in ISA conditions.
type AircraftPerformance struct {
	Name string `json:"name" yaml:"name"`
	ICAO string `json:"icao" yaml:"icao"`

	Weight struct {
		Max       float32 `json:"max" yaml:"max"`             // maximum takeoff weight
		Reference float32 `json:"reference" yaml:"reference"` // weight the tables are given for
	} `json:"weight" yaml:"weight"`

	VSpeeds []VSpeedEntry `json:"vspeeds" yaml:"vspeeds"`
	Climb   []ClimbEntry  `json:"climb" yaml:"climb"`

	Takeoff struct {
		GroundRoll float32 `json:"groundRoll" yaml:"groundRoll"` // ft, sea level ISA, paved, no wind
	} `json:"takeoff" yaml:"takeoff"`

	MaxDemonstratedCrosswind float32 `json:"maxDemonstratedCrosswind" yaml:"maxDemonstratedCrosswind"` // kts

	Deviation []DeviationEntry `json:"deviation,omitempty" yaml:"deviation,omitempty"`
}

// VSpeedEntry gives the takeoff speeds (KIAS) at a given weight.
type VSpeedEntry struct {
	Weight float32 `json:"weight" yaml:"weight"`
	VR     float32 `json:"vr" yaml:"vr"`
	VX     float32 `json:"vx" yaml:"vx"`
	VY     float32 `json:"vy" yaml:"vy"`
}

type VSpeeds struct {
	VR, VX, VY float32
}

// ClimbEntry is one altitude band of the climb table.
type ClimbEntry struct {
	Altitude float32 `json:"altitude" yaml:"altitude"` // density altitude, ft
	ROC      float32 `json:"roc" yaml:"roc"`           // ft/min
	TAS      float32 `json:"tas" yaml:"tas"`           // kts
	FuelFlow float32 `json:"fuelFlow" yaml:"fuelFlow"`
}

type ClimbPerformance struct {
	ROC, TAS, FuelFlow float32
}

// LoadAircraftPerformance reads an aircraft profile from a YAML or JSON
// file, either of which may be zstd-compressed.
func LoadAircraftPerformance(path string) (*AircraftPerformance, error) {
	b, err := util.ReadData(path)
	if err != nil {
		return nil, err
	}

	var ap AircraftPerformance
	ext := strings.ToLower(util.DataExtension(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &ap)
	case ".json":
		err = util.UnmarshalJSONBytes(b, &ap)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var e util.ErrorLogger
	e.Push(path)
	if ext == ".json" {
		// yaml.v3 rejects duplicate keys itself.
		for _, d := range util.FindDuplicateJSONKeys(b) {
			e.ErrorString("duplicate key %q in %q", d.Key, d.Path)
		}
	}
	ap.Check(&e)
	e.Pop()
	if e.HaveErrors() {
		return nil, fmt.Errorf("%s", strings.Join(e.Errors(), "\n"))
	}
	return &ap, nil
}

// Check reports problems with the profile to the ErrorLogger. Tables are
// sorted in place.
func (ap *AircraftPerformance) Check(e *util.ErrorLogger) {
	if ap.Name == "" {
		e.Error(ErrNoAircraftName)
	} else {
		e.Push(ap.Name)
		defer e.Pop()
	}

	if ap.Weight.Max <= 0 {
		e.ErrorString("maximum weight must be positive")
	}
	if ap.Weight.Reference <= 0 {
		e.ErrorString("reference weight must be positive")
	}
	if ap.Takeoff.GroundRoll <= 0 {
		e.ErrorString("takeoff ground roll must be positive")
	}

	slices.SortFunc(ap.VSpeeds, func(a, b VSpeedEntry) int { return cmpFloat(a.Weight, b.Weight) })
	slices.SortFunc(ap.Climb, func(a, b ClimbEntry) int { return cmpFloat(a.Altitude, b.Altitude) })

	e.Push("vspeeds")
	if len(ap.VSpeeds) == 0 {
		e.ErrorString("no entries")
	}
	for _, v := range ap.VSpeeds {
		if v.Weight <= 0 || v.VR <= 0 || v.VX <= 0 || v.VY <= 0 {
			e.ErrorString("%.0f: weight and speeds must be positive", v.Weight)
		}
	}
	e.Pop()

	e.Push("climb")
	if len(ap.Climb) == 0 {
		e.ErrorString("no entries")
	}
	for _, c := range ap.Climb {
		if c.ROC <= 0 {
			e.ErrorString("%.0f': rate of climb must be positive", c.Altitude)
		}
		if c.TAS <= 0 {
			e.ErrorString("%.0f': TAS must be positive", c.Altitude)
		}
	}
	e.Pop()

	if _, err := MakeDeviationTable(ap.Deviation...); err != nil {
		e.Push("deviation")
		e.Error(err)
		e.Pop()
	}
}

func cmpFloat(a, b float32) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// VSpeedsAt returns the takeoff speeds at the given weight, interpolated
// from the V-speed table. With a single entry, speeds are scaled by the
// square root of the weight ratio.
func (ap *AircraftPerformance) VSpeedsAt(weight float32) (VSpeeds, error) {
	switch len(ap.VSpeeds) {
	case 0:
		return VSpeeds{}, fmt.Errorf("vspeeds: %w", math.ErrInvalidTable)
	case 1:
		v := ap.VSpeeds[0]
		if v.Weight <= 0 {
			return VSpeeds{}, fmt.Errorf("vspeeds: %w", math.ErrInvalidTable)
		}
		s := math.Sqrt(weight / v.Weight)
		return VSpeeds{VR: v.VR * s, VX: v.VX * s, VY: v.VY * s}, nil
	}

	lookup := func(f func(VSpeedEntry) float32) (float32, error) {
		bp := util.MapSlice(ap.VSpeeds, func(v VSpeedEntry) math.Breakpoint {
			return math.Breakpoint{X: v.Weight, Y: f(v)}
		})
		return math.Interpolate(bp, weight)
	}

	var vs VSpeeds
	var err error
	if vs.VR, err = lookup(func(v VSpeedEntry) float32 { return v.VR }); err != nil {
		return VSpeeds{}, err
	}
	if vs.VX, err = lookup(func(v VSpeedEntry) float32 { return v.VX }); err != nil {
		return VSpeeds{}, err
	}
	if vs.VY, err = lookup(func(v VSpeedEntry) float32 { return v.VY }); err != nil {
		return VSpeeds{}, err
	}
	return vs, nil
}

// ClimbRange returns the lowest and highest altitudes in the climb table.
func (ap *AircraftPerformance) ClimbRange() (float32, float32) {
	if len(ap.Climb) == 0 {
		return 0, 0
	}
	return ap.Climb[0].Altitude, ap.Climb[len(ap.Climb)-1].Altitude
}

// ClimbAt returns the climb performance at the reference weight for the
// given density altitude. Altitudes outside the table are clamped.
func (ap *AircraftPerformance) ClimbAt(densityAltitude float32) (ClimbPerformance, error) {
	if len(ap.Climb) == 0 {
		return ClimbPerformance{}, fmt.Errorf("climb: %w", math.ErrInvalidTable)
	}

	table := func(f func(ClimbEntry) float32) (math.Table, error) {
		return math.MakeTable(util.MapSlice(ap.Climb, func(c ClimbEntry) math.Breakpoint {
			return math.Breakpoint{X: c.Altitude, Y: f(c)}
		})...)
	}

	var cp ClimbPerformance
	for _, c := range []struct {
		v *float32
		f func(ClimbEntry) float32
	}{
		{&cp.ROC, func(c ClimbEntry) float32 { return c.ROC }},
		{&cp.TAS, func(c ClimbEntry) float32 { return c.TAS }},
		{&cp.FuelFlow, func(c ClimbEntry) float32 { return c.FuelFlow }},
	} {
		t, err := table(c.f)
		if err != nil {
			return ClimbPerformance{}, fmt.Errorf("climb: %w", err)
		}
		if *c.v, err = t.Lookup(densityAltitude); err != nil {
			return ClimbPerformance{}, fmt.Errorf("climb: %w", err)
		}
	}
	return cp, nil
}

// DeviationTable returns the profile's compass deviation card.
func (ap *AircraftPerformance) DeviationTable() (DeviationTable, error) {
	return MakeDeviationTable(ap.Deviation...)
}
